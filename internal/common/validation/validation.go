// Package validation holds the pre-request field checks. Anything that
// fails here is reported inline and never reaches the network.
package validation

import (
	"regexp"
	"strings"
	"time"
)

// Indian mobile numbers: exactly 10 digits, first digit 6-9.
var phonePattern = regexp.MustCompile(`^[6-9][0-9]{9}$`)

type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

func (r *ValidationResult) add(field, message, code string) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Message: message, Code: code})
}

func (r *ValidationResult) finish() *ValidationResult {
	r.Valid = len(r.Errors) == 0
	return r
}

// First returns the first error message, or "" when valid.
func (r *ValidationResult) First() string {
	if len(r.Errors) == 0 {
		return ""
	}
	return r.Errors[0].Message
}

// Phone validates a 10-digit Indian mobile number.
func Phone(s string) *ValidationResult {
	result := &ValidationResult{}
	if !phonePattern.MatchString(s) {
		result.add("phone", "Please enter a valid 10-digit mobile number", "INVALID_PHONE")
	}
	return result.finish()
}

// Required rejects empty or whitespace-only values.
func Required(field, label, value string) *ValidationResult {
	result := &ValidationResult{}
	if strings.TrimSpace(value) == "" {
		result.add(field, label+" is required", "REQUIRED_FIELD_MISSING")
	}
	return result.finish()
}

// Rating validates a review rating.
func Rating(rating int) *ValidationResult {
	result := &ValidationResult{}
	if rating < 1 || rating > 5 {
		result.add("rating", "Please select a rating between 1 and 5", "OUT_OF_RANGE")
	}
	return result.finish()
}

// Radius validates a search radius in kilometers.
func Radius(km int) *ValidationResult {
	result := &ValidationResult{}
	if km < 5 || km > 50 {
		result.add("radius", "Search radius must be between 5 and 50 km", "OUT_OF_RANGE")
	}
	return result.finish()
}

// PositivePrice validates a quoted or final price.
func PositivePrice(field string, price float64) *ValidationResult {
	result := &ValidationResult{}
	if price <= 0 {
		result.add(field, "Price must be greater than zero", "OUT_OF_RANGE")
	}
	return result.finish()
}

// DateNotPast rejects a booking date before today. Both values are
// compared at day granularity in the local timezone.
func DateNotPast(date, today time.Time) *ValidationResult {
	result := &ValidationResult{}
	d := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	t := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
	if d.Before(t) {
		result.add("date", "Booking date cannot be in the past", "DATE_IN_PAST")
	}
	return result.finish()
}

// Merge combines several results into one, preserving error order.
func Merge(results ...*ValidationResult) *ValidationResult {
	merged := &ValidationResult{}
	for _, r := range results {
		merged.Errors = append(merged.Errors, r.Errors...)
	}
	return merged.finish()
}
