package leaverequest

type CreateLeaveRequest struct {
	EmployeeID string   `json:"employee_id" binding:"required,uuid"`
	LeaveType  string   `json:"leave_type" binding:"required,oneof=ANNUAL SICK CASUAL MEDICAL MATERNITY"`
	StartDate  string   `json:"start_date" binding:"required"`
	EndDate    string   `json:"end_date" binding:"required"`
	Reason     string   `json:"reason"`
	Documents  []string `json:"documents"`
}

// DecisionRequest is the payload of one approver action. The split and
// category fields are only honored when the acting role is the final
// financial approver for the request's leave type.
type DecisionRequest struct {
	Decision      string  `json:"decision" binding:"required,oneof=APPROVE REJECT"`
	Comment       string  `json:"comment"`
	PaidDays      *int    `json:"paid_days" binding:"omitempty,min=0"`
	UnpaidDays    *int    `json:"unpaid_days" binding:"omitempty,min=0"`
	LeaveCategory *string `json:"leave_category" binding:"omitempty,oneof=MEDICAL_PAID MEDICAL_UNPAID"`
}

type WithdrawRequest struct {
	Comment string `json:"comment"`
}

type ApprovalStepResponse struct {
	StepOrder int     `json:"step_order"`
	Role      string  `json:"role"`
	Status    string  `json:"status"`
	ActedBy   *string `json:"acted_by,omitempty"`
	ActedAt   *string `json:"acted_at,omitempty"`
	Comment   string  `json:"comment,omitempty"`
}

type LeaveRequestResponse struct {
	ID            string                 `json:"id"`
	CompanyID     string                 `json:"company_id"`
	EmployeeID    string                 `json:"employee_id"`
	LeaveType     string                 `json:"leave_type"`
	StartDate     string                 `json:"start_date"`
	EndDate       string                 `json:"end_date"`
	TotalDays     int                    `json:"total_days"`
	Reason        string                 `json:"reason,omitempty"`
	Documents     []string               `json:"documents,omitempty"`
	Status        string                 `json:"status"`
	CurrentStep   int                    `json:"current_step"`
	Steps         []ApprovalStepResponse `json:"approval_chain"`
	PaidDays      *int                   `json:"paid_days,omitempty"`
	UnpaidDays    *int                   `json:"unpaid_days,omitempty"`
	LeaveCategory *string                `json:"leave_category,omitempty"`
	CreatedBy     string                 `json:"created_by"`
	AppliedAt     string                 `json:"applied_at"`
}

type HistoryEntryResponse struct {
	ActorID    string `json:"actor_id"`
	Role       string `json:"role,omitempty"`
	Action     string `json:"action"`
	Comment    string `json:"comment,omitempty"`
	OccurredAt string `json:"occurred_at"`
}
