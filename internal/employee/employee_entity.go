package employee

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"go-leaveflow/internal/domain"
)

// Employee rows are owned by the surrounding HR application; this
// service only reads them.
type Employee struct {
	ID               uuid.UUID               `gorm:"type:uuid;primaryKey"`
	CompanyID        uuid.UUID               `gorm:"type:uuid;not null;index"`
	FullName         string                  `gorm:"type:varchar(120);not null"`
	Email            string                  `gorm:"uniqueIndex"`
	Gender           domain.Gender           `gorm:"type:varchar(10);not null"`
	EmploymentStatus domain.EmploymentStatus `gorm:"type:varchar(20);not null;default:'PROBATION'"`

	Balances []LeaveBalance `gorm:"foreignKey:EmployeeID"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// LeaveBalance is one leave-type bucket of remaining days. Balance
// accounting lives upstream; values here are informational to this core.
type LeaveBalance struct {
	ID            uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID    uuid.UUID        `gorm:"type:uuid;not null;index:idx_leave_balances_employee"`
	LeaveType     domain.LeaveType `gorm:"type:varchar(30);not null"`
	RemainingDays int              `gorm:"type:int;not null;default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
