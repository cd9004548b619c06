package workflow

import (
	"errors"
	"fmt"

	"go-leaveflow/internal/domain"
)

// ErrMissingCategory is returned when a medical leave approval reaches
// the final financial approver without a paid/unpaid categorization.
var ErrMissingCategory = errors.New("medical leave requires a category before approval")

// DaysMismatchError reports a paid/unpaid allocation that does not sum
// exactly to the requested days. Over- and under-allocation are the same
// failure.
type DaysMismatchError struct {
	Allocated int
	Required  int
}

func (e *DaysMismatchError) Error() string {
	return fmt.Sprintf("paid and unpaid days sum to %d, leave requires exactly %d", e.Allocated, e.Required)
}

// ValidateSplit enforces paid >= 0, unpaid >= 0 and paid+unpaid == days
// with no tolerance.
func ValidateSplit(days, paid, unpaid int) error {
	if paid < 0 || unpaid < 0 {
		return &DaysMismatchError{Allocated: paid + unpaid, Required: days}
	}
	if paid+unpaid != days {
		return &DaysMismatchError{Allocated: paid + unpaid, Required: days}
	}
	return nil
}

// ValidateCategory requires a valid category for medical leave; other
// leave types carry none.
func ValidateCategory(leaveType domain.LeaveType, category *domain.LeaveCategory) error {
	if leaveType != domain.LeaveMedical {
		return nil
	}
	if category == nil || !category.IsValid() {
		return ErrMissingCategory
	}
	return nil
}

// ValidateReconciliation runs both checks and joins the failures so a
// split mismatch never masks a missing category or vice versa. Callers
// match the parts with errors.Is / errors.As.
func ValidateReconciliation(leaveType domain.LeaveType, days, paid, unpaid int, category *domain.LeaveCategory) error {
	return errors.Join(
		ValidateSplit(days, paid, unpaid),
		ValidateCategory(leaveType, category),
	)
}
