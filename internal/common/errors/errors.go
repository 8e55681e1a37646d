// Package errors provides the client-side error taxonomy: validation
// errors caught before a request is issued, request failures mapped from
// non-2xx responses, and silent-fail lookups where absence is a normal
// answer.
package errors

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrCodeRequestFailed    ErrorCode = "REQUEST_FAILED"
	ErrCodeNetworkError     ErrorCode = "NETWORK_ERROR"
	ErrCodeDecodeFailed     ErrorCode = "DECODE_FAILED"
	ErrCodeUnauthorized     ErrorCode = "UNAUTHORIZED"
	ErrCodeNotFound         ErrorCode = "NOT_FOUND"

	ErrCodeOTPSendFailed      ErrorCode = "OTP_SEND_FAILED"
	ErrCodeOTPVerifyFailed    ErrorCode = "OTP_VERIFY_FAILED"
	ErrCodeCheckoutDismissed  ErrorCode = "CHECKOUT_DISMISSED"
	ErrCodePaymentVerifyError ErrorCode = "PAYMENT_VERIFY_FAILED"
)

// GenericFailureMessage is shown when a response body carries no usable
// message.
const GenericFailureMessage = "Something went wrong. Please try again."

// APIError represents a non-success response from the NearFix backend.
type APIError struct {
	StatusCode int       `json:"statusCode"`
	Code       ErrorCode `json:"code"`
	Message    string    `json:"message"`
	Body       string    `json:"body,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("APIError[%s]: %d %s", e.Code, e.StatusCode, e.Message)
}

// NewAPIError builds an APIError from a response status and raw body,
// pulling the user-facing message out of common backend envelope shapes.
func NewAPIError(statusCode int, body []byte) *APIError {
	code := ErrCodeRequestFailed
	switch statusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		code = ErrCodeUnauthorized
	case http.StatusNotFound:
		code = ErrCodeNotFound
	}

	return &APIError{
		StatusCode: statusCode,
		Code:       code,
		Message:    messageFromBody(body),
		Body:       string(body),
		Timestamp:  time.Now().UTC(),
	}
}

// NewNetworkError wraps a transport-level failure (DNS, refused
// connection, timeout) where no response was received.
func NewNetworkError(err error) *APIError {
	return &APIError{
		Code:      ErrCodeNetworkError,
		Message:   GenericFailureMessage,
		Body:      err.Error(),
		Timestamp: time.Now().UTC(),
	}
}

// NewDecodeError wraps a malformed success response.
func NewDecodeError(err error) *APIError {
	return &APIError{
		Code:      ErrCodeDecodeFailed,
		Message:   GenericFailureMessage,
		Body:      err.Error(),
		Timestamp: time.Now().UTC(),
	}
}

// ValidationError is a pre-request, field-level failure. It never reaches
// the network.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// UserMessage extracts the string a screen should show for err. Validation
// errors surface their own message, API errors the parsed backend message,
// anything else the generic fallback.
func UserMessage(err error) string {
	switch e := err.(type) {
	case *ValidationError:
		return e.Message
	case *APIError:
		if e.Message != "" {
			return e.Message
		}
	}
	return GenericFailureMessage
}

// IsNotFound reports whether err is an APIError for a missing resource.
// Silent-fail existence probes (payment status, review lookup) use this to
// collapse absence into a normal answer.
func IsNotFound(err error) bool {
	apiErr, ok := err.(*APIError)
	return ok && apiErr.Code == ErrCodeNotFound
}

// IsUnauthorized reports whether err means the session token was rejected.
func IsUnauthorized(err error) bool {
	apiErr, ok := err.(*APIError)
	return ok && apiErr.Code == ErrCodeUnauthorized
}

// messageFromBody reads the backend's error envelope. The backend answers
// with either {"message": "..."} or {"error": "..."}; anything else falls
// back to the generic message.
func messageFromBody(body []byte) string {
	if len(body) == 0 {
		return GenericFailureMessage
	}

	var envelope struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil {
		if envelope.Message != "" {
			return envelope.Message
		}
		if envelope.Error != "" {
			return envelope.Error
		}
	}
	return GenericFailureMessage
}
