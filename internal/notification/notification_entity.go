package notification

import (
	"time"

	"github.com/google/uuid"

	"go-leaveflow/internal/domain"
)

// Notification is one recorded decision event awaiting delivery by the
// downstream notification channel. The (leave_request_id, event_type)
// pair is unique so redelivered Kafka messages collapse into one row.
type Notification struct {
	ID             uuid.UUID            `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID      uuid.UUID            `gorm:"type:uuid;not null"`
	LeaveRequestID uuid.UUID            `gorm:"type:uuid;not null;uniqueIndex:uq_notification_request_event"`
	EmployeeID     uuid.UUID            `gorm:"type:uuid;not null"`
	EventType      string               `gorm:"type:varchar(40);not null;uniqueIndex:uq_notification_request_event"`
	LeaveType      domain.LeaveType     `gorm:"type:varchar(20);not null"`
	Status         domain.RequestStatus `gorm:"type:varchar(20);not null"`
	OccurredAt     time.Time            `gorm:"not null"`

	CreatedAt time.Time
}

func (Notification) TableName() string {
	return "notifications"
}
