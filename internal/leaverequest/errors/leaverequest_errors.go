package leaverequesterrors

import (
	"fmt"
	"net/http"

	"go-leaveflow/internal/shared/apperror"
)

var (
	ErrInvalidCompanyID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid company id",
		http.StatusBadRequest,
	)
	ErrInvalidActorID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid actor id",
		http.StatusBadRequest,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"start_date must be before or equal end_date",
		http.StatusBadRequest,
	)
	ErrInvalidLeaveType = apperror.New(
		apperror.CodeInvalidInput,
		"unknown leave type",
		http.StatusBadRequest,
	)
	ErrInvalidRole = apperror.New(
		apperror.CodeInvalidInput,
		"unknown workflow role",
		http.StatusBadRequest,
	)
	ErrEmployeeNotInCompany = apperror.New(
		apperror.CodeInvalidInput,
		"employee does not belong to this company",
		http.StatusBadRequest,
	)
	ErrLeaveOverlap = apperror.New(
		apperror.CodeConflict,
		"leave already exists in overlapping period",
		http.StatusConflict,
	)
	ErrRequestNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave request not found",
		http.StatusNotFound,
	)
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"employee not found",
		http.StatusNotFound,
	)

	// ErrNotYourTurn covers every out-of-order action: acting ahead of an
	// earlier pending step, re-acting on a decided step, or acting on a
	// terminal request. The UI renders it as "no action available".
	ErrNotYourTurn = apperror.New(
		apperror.CodeNotYourTurn,
		"this request is not awaiting a decision from your role",
		http.StatusConflict,
	)
	ErrMissingCategory = apperror.New(
		apperror.CodeMissingCategory,
		"medical leave requires a paid or unpaid categorization before approval",
		http.StatusUnprocessableEntity,
	)
	ErrNotRequestOwner = apperror.New(
		apperror.CodeForbidden,
		"only the requesting employee may withdraw this request",
		http.StatusForbidden,
	)
	ErrConcurrentDecision = apperror.New(
		apperror.CodeConflict,
		"the request was decided concurrently, reload and retry",
		http.StatusConflict,
	)
)

// Ineligible carries the human-readable policy reason so approval can be
// blocked without downgrading to a rejection.
func Ineligible(reason string) *apperror.AppError {
	return apperror.New(
		apperror.CodeIneligible,
		fmt.Sprintf("employee is not eligible for this leave type: %s", reason),
		http.StatusUnprocessableEntity,
	)
}

// DaysMismatch reports the allocated total against the required days so
// the UI can show the discrepancy.
func DaysMismatch(allocated, required int) *apperror.AppError {
	return apperror.New(
		apperror.CodeDaysMismatch,
		fmt.Sprintf("paid and unpaid days sum to %d, leave requires exactly %d", allocated, required),
		http.StatusUnprocessableEntity,
	)
}
