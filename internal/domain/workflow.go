package domain

// Role is a workflow actor role referenced by approval chain steps.
type Role string

const (
	RoleHOD       Role = "hod"
	RoleDean      Role = "dean"
	RoleVC        Role = "vc"
	RoleHR        Role = "hr"
	RolePresident Role = "president"
)

var validRoles = map[Role]bool{
	RoleHOD:       true,
	RoleDean:      true,
	RoleVC:        true,
	RoleHR:        true,
	RolePresident: true,
}

func (r Role) IsValid() bool {
	return validRoles[r]
}

func (r Role) String() string {
	return string(r)
}

type LeaveType string

const (
	LeaveAnnual    LeaveType = "ANNUAL"
	LeaveSick      LeaveType = "SICK"
	LeaveCasual    LeaveType = "CASUAL"
	LeaveMedical   LeaveType = "MEDICAL"
	LeaveMaternity LeaveType = "MATERNITY"
)

var validLeaveTypes = map[LeaveType]bool{
	LeaveAnnual:    true,
	LeaveSick:      true,
	LeaveCasual:    true,
	LeaveMedical:   true,
	LeaveMaternity: true,
}

func (t LeaveType) IsValid() bool {
	return validLeaveTypes[t]
}

func (t LeaveType) String() string {
	return string(t)
}

// RequestStatus is the overall lifecycle state of a leave request. It is
// derived from the approval chain: a rejected step short-circuits to
// REJECTED, the last step approving yields APPROVED, an intermediate
// approval yields FORWARDED.
type RequestStatus string

const (
	StatusPending   RequestStatus = "PENDING"
	StatusForwarded RequestStatus = "FORWARDED"
	StatusApproved  RequestStatus = "APPROVED"
	StatusRejected  RequestStatus = "REJECTED"
	StatusWithdrawn RequestStatus = "WITHDRAWN"
)

var terminalStatuses = map[RequestStatus]bool{
	StatusApproved:  true,
	StatusRejected:  true,
	StatusWithdrawn: true,
}

// IsTerminal reports whether no further decisions are accepted.
func (s RequestStatus) IsTerminal() bool {
	return terminalStatuses[s]
}

func (s RequestStatus) String() string {
	return string(s)
}

type StepStatus string

const (
	StepPending  StepStatus = "PENDING"
	StepApproved StepStatus = "APPROVED"
	StepRejected StepStatus = "REJECTED"
)

type LeaveCategory string

const (
	CategoryMedicalPaid   LeaveCategory = "MEDICAL_PAID"
	CategoryMedicalUnpaid LeaveCategory = "MEDICAL_UNPAID"
)

func (c LeaveCategory) IsValid() bool {
	return c == CategoryMedicalPaid || c == CategoryMedicalUnpaid
}

type Decision string

const (
	DecisionApprove Decision = "APPROVE"
	DecisionReject  Decision = "REJECT"
)

func (d Decision) IsValid() bool {
	return d == DecisionApprove || d == DecisionReject
}

type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
)

type EmploymentStatus string

const (
	EmploymentProbation EmploymentStatus = "PROBATION"
	EmploymentConfirmed EmploymentStatus = "CONFIRMED"
)

// EmployeeProfile is the read-only slice of an employee this core needs
// for eligibility decisions. Supplied by the employee store.
type EmployeeProfile struct {
	EmployeeID       string                `json:"employee_id"`
	FullName         string                `json:"full_name"`
	Gender           Gender                `json:"gender"`
	EmploymentStatus EmploymentStatus      `json:"employment_status"`
	LeaveBalance     map[LeaveType]int     `json:"leave_balance"`
}
