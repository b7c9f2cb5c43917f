package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatusCode(t *testing.T) {
	cause := errors.New("pq: connection refused")

	cases := []struct {
		err  error
		want int
	}{
		{NewInvalidRequestError("Invalid email format", nil), StatusBadRequest},
		{NewUnauthorizedError("Unauthorized", nil), StatusUnauthorized},
		{NewNotFoundError("Subscriber not found", nil), StatusNotFound},
		{NewConflictError("Email already registered", nil), StatusConflict},
		{NewServiceUnavailableError("Database not configured", nil), StatusServiceUnavailable},
		{NewDatabaseError("Database error", cause), StatusInternalServerError},
		{NewInternalServerError("Export failed", cause), StatusInternalServerError},
		{cause, StatusInternalServerError},
		{nil, StatusInternalServerError},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, HTTPStatusCode(tc.err), "%v", tc.err)
	}
}

func TestGetErrorType_SeesThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("count signups: %w", NewServiceUnavailableError("Database not configured", nil))

	assert.Equal(t, ErrorTypeServiceUnavailable, GetErrorType(wrapped))
	assert.True(t, IsServiceUnavailable(wrapped))
	assert.Equal(t, ErrorTypeUnknown, GetErrorType(errors.New("boom")))
	assert.Equal(t, ErrorType(""), GetErrorType(nil))
}

func TestGetHumanReadableMessage_HidesInternals(t *testing.T) {
	assert.Equal(t, "Email already registered", GetHumanReadableMessage(NewConflictError("Email already registered", errors.New("23505"))))
	assert.Equal(t, genericMessage, GetHumanReadableMessage(errors.New(`relation "waitlist" does not exist`)))
	assert.Equal(t, genericMessage, GetHumanReadableMessage(NewDatabaseError("", nil)))
	assert.Equal(t, genericMessage, GetHumanReadableMessage(nil))
}

func TestAppError_ErrorAndUnwrap(t *testing.T) {
	cause := errors.New("timeout")
	err := NewDatabaseError("Database error", cause)

	assert.Equal(t, "DATABASE_ERROR: Database error: timeout", err.Error())
	assert.Equal(t, "NOT_FOUND: Subscriber not found", NewNotFoundError("Subscriber not found", nil).Error())
	assert.ErrorIs(t, err, cause)
}

func TestIsDuplicateKeyError(t *testing.T) {
	assert.True(t, IsDuplicateKeyError(errors.New(`ERROR: duplicate key value violates unique constraint "waitlist_email_key" (SQLSTATE 23505)`)))
	assert.True(t, IsDuplicateKeyError(errors.New("UNIQUE constraint failed: waitlist.email")))
	assert.True(t, IsDuplicateKeyError(NewConflictError("Email already registered", nil)))
	assert.False(t, IsDuplicateKeyError(errors.New("not null constraint failed")))
	assert.False(t, IsDuplicateKeyError(nil))
}

func TestRender(t *testing.T) {
	status, body := Render(NewUnauthorizedError("Unauthorized access", nil))

	assert.Equal(t, StatusUnauthorized, status)
	assert.Equal(t, map[string]any{"code": 401, "data": nil, "message": "Unauthorized access"}, body)

	status, body = Render(errors.New("pq: connection reset"))
	assert.Equal(t, StatusInternalServerError, status)
	assert.Equal(t, genericMessage, body["message"])
}
