package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPhone(t *testing.T) {
	tests := []struct {
		phone string
		valid bool
	}{
		{"9876543210", true},
		{"6000000000", true},
		{"7123456789", true},
		{"8999999999", true},
		{"1234567890", false}, // first digit below 6
		{"5876543210", false},
		{"98765432", false},    // too short
		{"98765432100", false}, // too long
		{"987654321a", false},
		{"", false},
		{" 9876543210", false},
		{"+919876543210", false},
	}

	for _, tt := range tests {
		t.Run(tt.phone, func(t *testing.T) {
			assert.Equal(t, tt.valid, Phone(tt.phone).Valid)
		})
	}
}

func TestRequired(t *testing.T) {
	assert.True(t, Required("reason", "Reason", "late arrival").Valid)
	assert.False(t, Required("reason", "Reason", "").Valid)
	assert.False(t, Required("reason", "Reason", "   ").Valid)
	assert.Equal(t, "Reason is required", Required("reason", "Reason", "").First())
}

func TestRating(t *testing.T) {
	for rating := 1; rating <= 5; rating++ {
		assert.True(t, Rating(rating).Valid)
	}
	assert.False(t, Rating(0).Valid)
	assert.False(t, Rating(6).Valid)
	assert.False(t, Rating(-1).Valid)
}

func TestRadius(t *testing.T) {
	assert.True(t, Radius(5).Valid)
	assert.True(t, Radius(50).Valid)
	assert.True(t, Radius(25).Valid)
	assert.False(t, Radius(4).Valid)
	assert.False(t, Radius(51).Valid)
}

func TestDateNotPast(t *testing.T) {
	today := time.Date(2025, 6, 15, 14, 30, 0, 0, time.Local)

	assert.True(t, DateNotPast(today, today).Valid, "same day is allowed")
	assert.True(t, DateNotPast(today.Add(24*time.Hour), today).Valid)
	assert.False(t, DateNotPast(today.Add(-24*time.Hour), today).Valid)

	// Earlier clock time on the same day still counts as today.
	morning := time.Date(2025, 6, 15, 8, 0, 0, 0, time.Local)
	assert.True(t, DateNotPast(morning, today).Valid)
}

func TestMerge(t *testing.T) {
	merged := Merge(
		Phone("123"),
		Required("address", "Address", ""),
		Rating(3),
	)
	assert.False(t, merged.Valid)
	assert.Len(t, merged.Errors, 2)
	assert.Equal(t, "phone", merged.Errors[0].Field)
	assert.Equal(t, "address", merged.Errors[1].Field)

	assert.True(t, Merge(Phone("9876543210"), Rating(5)).Valid)
}
