package events

import (
	"time"

	"go-leaveflow/internal/domain"
)

// LeaveDecisionTopic carries every forwarded or terminal transition of a
// leave request. The notification service and the payroll engine consume
// it; this core only publishes.
const LeaveDecisionTopic = "hr.leave.decision.v1"

type LeaveDecisionEvent struct {
	EventType  string               `json:"event_type"`
	RequestID  string               `json:"request_id"`
	CompanyID  string               `json:"company_id"`
	EmployeeID string               `json:"employee_id"`
	LeaveType  domain.LeaveType     `json:"leave_type"`
	Role       domain.Role          `json:"role,omitempty"`
	Decision   domain.Decision      `json:"decision,omitempty"`
	Status     domain.RequestStatus `json:"status"`
	OccurredAt time.Time            `json:"occurred_at"`
}

const (
	EventLeaveForwarded = "leave.forwarded"
	EventLeaveApproved  = "leave.approved"
	EventLeaveRejected  = "leave.rejected"
	EventLeaveWithdrawn = "leave.withdrawn"
)

// EventTypeFor maps a post-decision status to its event type; empty for
// statuses that do not emit (a fresh PENDING request).
func EventTypeFor(status domain.RequestStatus) string {
	switch status {
	case domain.StatusForwarded:
		return EventLeaveForwarded
	case domain.StatusApproved:
		return EventLeaveApproved
	case domain.StatusRejected:
		return EventLeaveRejected
	case domain.StatusWithdrawn:
		return EventLeaveWithdrawn
	default:
		return ""
	}
}
