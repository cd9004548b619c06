package audit

import (
	"context"
	"database/sql"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

//go:generate mockgen -source=audit_repo.go -destination=mock/audit_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Append(ctx context.Context, entry *Entry) error
	ListByRequest(ctx context.Context, companyID, requestID string) ([]Entry, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// WithTx rebinds the repository onto an open transaction so entries
// commit or roll back with the decision they describe.
func (r *repository) WithTx(tx *sql.Tx) Repository {
	db, err := gorm.Open(postgres.New(postgres.Config{Conn: tx}), &gorm.Config{})
	if err != nil {
		return r
	}
	return &repository{db: db, tx: tx}
}

func (r *repository) Append(ctx context.Context, entry *Entry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *repository) ListByRequest(ctx context.Context, companyID, requestID string) ([]Entry, error) {
	var entries []Entry
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Where("leave_request_id = ?", requestID).
		Order("occurred_at ASC").
		Find(&entries).Error
	return entries, err
}
