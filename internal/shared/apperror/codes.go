package apperror

const (
	// Client errors (4xx)
	CodeInvalidInput = "INVALID_INPUT"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeNotFound     = "NOT_FOUND"
	CodeConflict     = "CONFLICT"
	CodeInvalidState = "INVALID_STATE"

	// Workflow errors, all recoverable from the caller's side
	CodeNotYourTurn     = "NOT_YOUR_TURN"
	CodeIneligible      = "INELIGIBLE"
	CodeDaysMismatch    = "DAYS_MISMATCH"
	CodeMissingCategory = "MISSING_CATEGORY"

	// Server errors (5xx)
	CodeInternalError      = "INTERNAL_ERROR"
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)
