package workflow

import "go-leaveflow/internal/domain"

// Eligibility is the outcome of the policy gate checked before any
// approval. Reason is human-readable and only set when blocked.
type Eligibility struct {
	Eligible bool
	Reason   string
}

// CheckEligibility decides whether a leave type may be approved for the
// given employee. Maternity leave is restricted to confirmed female
// employees; every other type passes this layer. Pure and repeat-safe,
// so callers may also use it to render eligibility before a decision is
// submitted. A blocked result prevents approval only; rejection of an
// ineligible request remains allowed.
func CheckEligibility(leaveType domain.LeaveType, profile domain.EmployeeProfile) Eligibility {
	if leaveType != domain.LeaveMaternity {
		return Eligibility{Eligible: true}
	}
	if profile.Gender != domain.GenderFemale {
		return Eligibility{Reason: "maternity leave is only available to female employees"}
	}
	if profile.EmploymentStatus != domain.EmploymentConfirmed {
		return Eligibility{Reason: "maternity leave requires confirmed employment status"}
	}
	return Eligibility{Eligible: true}
}
