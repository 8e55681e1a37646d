package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewAPIError_MessageExtraction(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected string
	}{
		{
			name:     "message field",
			body:     `{"message":"Booking not found"}`,
			expected: "Booking not found",
		},
		{
			name:     "error field",
			body:     `{"error":"Invalid OTP"}`,
			expected: "Invalid OTP",
		},
		{
			name:     "message preferred over error",
			body:     `{"message":"primary","error":"secondary"}`,
			expected: "primary",
		},
		{
			name:     "empty body falls back",
			body:     "",
			expected: GenericFailureMessage,
		},
		{
			name:     "non-json body falls back",
			body:     "<html>502 Bad Gateway</html>",
			expected: GenericFailureMessage,
		},
		{
			name:     "json without known fields falls back",
			body:     `{"status":500}`,
			expected: GenericFailureMessage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewAPIError(http.StatusBadRequest, []byte(tt.body))
			assert.Equal(t, tt.expected, err.Message)
			assert.Equal(t, http.StatusBadRequest, err.StatusCode)
		})
	}
}

func TestNewAPIError_CodeByStatus(t *testing.T) {
	assert.Equal(t, ErrCodeNotFound, NewAPIError(404, nil).Code)
	assert.Equal(t, ErrCodeUnauthorized, NewAPIError(401, nil).Code)
	assert.Equal(t, ErrCodeUnauthorized, NewAPIError(403, nil).Code)
	assert.Equal(t, ErrCodeRequestFailed, NewAPIError(500, nil).Code)
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(NewAPIError(404, nil)))
	assert.False(t, IsNotFound(NewAPIError(500, nil)))
	assert.False(t, IsNotFound(fmt.Errorf("plain error")))
	assert.False(t, IsNotFound(nil))
}

func TestUserMessage(t *testing.T) {
	assert.Equal(t, "Phone number must be 10 digits",
		UserMessage(NewValidationError("phone", "Phone number must be 10 digits")))
	assert.Equal(t, "Slot taken",
		UserMessage(NewAPIError(409, []byte(`{"message":"Slot taken"}`))))
	assert.Equal(t, GenericFailureMessage, UserMessage(fmt.Errorf("dial tcp: refused")))
}
