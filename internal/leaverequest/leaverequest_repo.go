package leaverequest

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"go-leaveflow/internal/domain"
)

// ErrStaleVersion signals that the optimistic version check failed: the
// request was mutated between read and save.
var ErrStaleVersion = errors.New("leave request version is stale")

//go:generate mockgen -source=leaverequest_repo.go -destination=mock/leaverequest_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, req *domain.LeaveRequest) error
	FindAllByCompany(ctx context.Context, companyID string) ([]domain.LeaveRequest, error)
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*domain.LeaveRequest, error)
	// FindByIDForUpdate locks the request row for the duration of the
	// surrounding transaction so concurrent decisions serialize.
	FindByIDForUpdate(ctx context.Context, companyID, id string) (*domain.LeaveRequest, error)
	// Save persists the mutated request and its steps, guarded by an
	// optimistic version check on top of the row lock.
	Save(ctx context.Context, req *domain.LeaveRequest, expectedVersion int) error
	HasOverlappingPeriod(ctx context.Context, companyID, employeeID string, startDate, endDate time.Time, excludeID *string) (bool, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// WithTx rebinds the repository onto an open transaction so row locks
// taken here hold until the service commits.
func (r *repository) WithTx(tx *sql.Tx) Repository {
	db, err := gorm.Open(postgres.New(postgres.Config{Conn: tx}), &gorm.Config{})
	if err != nil {
		return r
	}
	return &repository{db: db, tx: tx}
}

func (r *repository) Create(ctx context.Context, req *domain.LeaveRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string) ([]domain.LeaveRequest, error) {
	var requests []domain.LeaveRequest
	err := r.db.WithContext(ctx).
		Preload("Steps", func(db *gorm.DB) *gorm.DB {
			return db.Order("step_order ASC")
		}).
		Where("company_id = ?", companyID).
		Order("applied_at DESC").
		Find(&requests).Error
	return requests, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*domain.LeaveRequest, error) {
	var req domain.LeaveRequest
	err := r.db.WithContext(ctx).
		Preload("Steps", func(db *gorm.DB) *gorm.DB {
			return db.Order("step_order ASC")
		}).
		Where("company_id = ?", companyID).
		First(&req, "id = ?", id).Error
	return &req, err
}

func (r *repository) FindByIDForUpdate(ctx context.Context, companyID, id string) (*domain.LeaveRequest, error) {
	var req domain.LeaveRequest
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("company_id = ?", companyID).
		First(&req, "id = ?", id).Error
	if err != nil {
		return nil, err
	}

	// Steps are loaded separately: FOR UPDATE does not combine with the
	// preload join and only the request row needs the lock.
	err = r.db.WithContext(ctx).
		Where("leave_request_id = ?", req.ID).
		Order("step_order ASC").
		Find(&req.Steps).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *repository) Save(ctx context.Context, req *domain.LeaveRequest, expectedVersion int) error {
	req.Version = expectedVersion + 1

	res := r.db.WithContext(ctx).
		Model(&domain.LeaveRequest{}).
		Where("id = ? AND version = ?", req.ID, expectedVersion).
		Updates(map[string]any{
			"status":         req.Status,
			"current_step":   req.CurrentStep,
			"paid_days":      req.PaidDays,
			"unpaid_days":    req.UnpaidDays,
			"leave_category": req.LeaveCategory,
			"version":        req.Version,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStaleVersion
	}

	for i := range req.Steps {
		if err := r.db.WithContext(ctx).Save(&req.Steps[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *repository) HasOverlappingPeriod(ctx context.Context, companyID, employeeID string, startDate, endDate time.Time, excludeID *string) (bool, error) {
	db := r.db.WithContext(ctx).
		Model(&domain.LeaveRequest{}).
		Where("company_id = ?", companyID).
		Where("employee_id = ?", employeeID).
		Where("status NOT IN ?", []domain.RequestStatus{domain.StatusRejected, domain.StatusWithdrawn}).
		Where("NOT (end_date < ? OR start_date > ?)", startDate, endDate)

	if excludeID != nil && *excludeID != "" {
		db = db.Where("id <> ?", *excludeID)
	}

	var count int64
	err := db.Count(&count).Error
	return count > 0, err
}
