package errors

import "errors"

const genericMessage = "An unexpected error occurred"

var statusByType = map[ErrorType]int{
	ErrorTypeInvalidRequest:      StatusBadRequest,
	ErrorTypeUnauthorized:        StatusUnauthorized,
	ErrorTypeNotFound:            StatusNotFound,
	ErrorTypeConflict:            StatusConflict,
	ErrorTypeServiceUnavailable:  StatusServiceUnavailable,
	ErrorTypeDatabaseError:       StatusInternalServerError,
	ErrorTypeInternalServerError: StatusInternalServerError,
}

// HTTPStatusCode maps err to a response status; anything unrecognised is a 500.
func HTTPStatusCode(err error) int {
	if status, ok := statusByType[GetErrorType(err)]; ok {
		return status
	}
	return StatusInternalServerError
}

// GetHumanReadableMessage never exposes the text of an untyped error.
func GetHumanReadableMessage(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	return genericMessage
}

// Envelope is the {code, data, message} body every error response uses.
func Envelope(status int, message string, data any) map[string]any {
	return map[string]any{
		"code":    status,
		"data":    data,
		"message": message,
	}
}

// Render returns the status and envelope for err.
func Render(err error) (int, map[string]any) {
	status := HTTPStatusCode(err)
	return status, Envelope(status, GetHumanReadableMessage(err), nil)
}
