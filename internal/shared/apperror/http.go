package apperror

import (
	"errors"
	"net/http"
)

// HTTPError is the wire-facing shape of an AppError.
type HTTPError struct {
	Status  int
	Code    string
	Message string
	Details any
}

// ToHTTP maps any error to an HTTPError. Joined errors resolve to the
// first AppError found; the full error text is kept as details so no
// joined part is lost. Unknown errors collapse to INTERNAL_ERROR without
// leaking their message.
func ToHTTP(err error) HTTPError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		httpErr := HTTPError{
			Status:  appErr.HTTPStatus,
			Code:    appErr.Code,
			Message: appErr.Message,
		}
		if full := err.Error(); full != appErr.Message {
			httpErr.Details = full
		}
		return httpErr
	}

	return HTTPError{
		Status:  http.StatusInternalServerError,
		Code:    CodeInternalError,
		Message: "An unexpected error occurred",
	}
}
