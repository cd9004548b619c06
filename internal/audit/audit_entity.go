package audit

import (
	"time"

	"github.com/google/uuid"

	"go-leaveflow/internal/domain"
)

// Entry is one append-only row in a leave request's decision history.
// Entries are written in the same transaction as the decision they
// record and are never updated or deleted.
type Entry struct {
	ID             uuid.UUID   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID      uuid.UUID   `gorm:"type:uuid;not null"`
	LeaveRequestID uuid.UUID   `gorm:"type:uuid;not null;index:idx_audit_entries_request"`
	ActorID        uuid.UUID   `gorm:"type:uuid;not null"`
	Role           domain.Role `gorm:"type:varchar(20)"`
	Action         string      `gorm:"type:varchar(30);not null"`
	Comment        string      `gorm:"type:text"`
	OccurredAt     time.Time   `gorm:"not null"`

	CreatedAt time.Time
}

func (Entry) TableName() string {
	return "audit_entries"
}
