package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LeaveRequest is the aggregate this workflow mutates. Steps are kept in
// escalation order; CurrentStep is the cursor of the step whose turn it
// is while the request is non-terminal.
type LeaveRequest struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID  uuid.UUID `gorm:"type:uuid;not null;index:idx_leave_requests_company_status"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index:idx_leave_requests_employee_dates"`

	LeaveType LeaveType `gorm:"type:varchar(30);not null"`
	StartDate time.Time `gorm:"type:date;not null;index:idx_leave_requests_employee_dates"`
	EndDate   time.Time `gorm:"type:date;not null;index:idx_leave_requests_employee_dates"`
	TotalDays int       `gorm:"type:int;not null;default:1"`
	Reason    string    `gorm:"type:text"`
	Documents []string  `gorm:"type:text[];serializer:json"`

	Status      RequestStatus `gorm:"type:varchar(20);not null;default:'PENDING';index:idx_leave_requests_company_status"`
	CurrentStep int           `gorm:"type:int;not null;default:0"`
	Steps       []ApprovalStep `gorm:"foreignKey:LeaveRequestID;constraint:OnDelete:CASCADE"`

	// Reconciliation outcome, set only by the final financial approver
	// and fixed once the request is approved.
	PaidDays      *int           `gorm:"type:int"`
	UnpaidDays    *int           `gorm:"type:int"`
	LeaveCategory *LeaveCategory `gorm:"type:varchar(20)"`

	CreatedBy uuid.UUID `gorm:"type:uuid;not null"`
	Version   int       `gorm:"type:int;not null;default:1"`

	AppliedAt time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index:idx_leave_requests_deleted_at"`
}

// ApprovalStep is one role-scoped decision slot in a request's chain.
// ActedBy, ActedAt and Comment stay empty until the step leaves PENDING.
type ApprovalStep struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	LeaveRequestID uuid.UUID  `gorm:"type:uuid;not null;index:idx_approval_steps_request"`
	StepOrder      int        `gorm:"type:int;not null"`
	Role           Role       `gorm:"type:varchar(20);not null"`
	Status         StepStatus `gorm:"type:varchar(20);not null;default:'PENDING'"`
	ActedBy        *uuid.UUID `gorm:"type:uuid"`
	ActedAt        *time.Time
	Comment        string `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// PendingStepIndex scans the chain for the first step still PENDING.
// Kept alongside the CurrentStep cursor as the validating form of the
// same question; -1 means every step has acted.
func (r *LeaveRequest) PendingStepIndex() int {
	for i := range r.Steps {
		if r.Steps[i].Status == StepPending {
			return i
		}
	}
	return -1
}

// StepFor returns the chain step owned by role, or nil when the chain
// has no slot for that role.
func (r *LeaveRequest) StepFor(role Role) *ApprovalStep {
	for i := range r.Steps {
		if r.Steps[i].Role == role {
			return &r.Steps[i]
		}
	}
	return nil
}
