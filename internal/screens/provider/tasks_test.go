package provider

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"nearfix-client/internal/api"
)

func completeProfile() api.Profile {
	return api.Profile{
		BusinessName: "FixIt Co",
		Address:      "12 MG Road",
		City:         "Bengaluru",
		Pincode:      "560001",
		Latitude:     12.97,
		Longitude:    77.59,
		PhotoURL:     "photos/p1.jpg",
		AadharURL:    "docs/d1.pdf",
	}
}

func TestProfileTasks(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*api.Profile)
		expected []string
	}{
		{
			name:     "complete profile has no tasks",
			mutate:   func(p *api.Profile) {},
			expected: nil,
		},
		{
			name:     "missing business name",
			mutate:   func(p *api.Profile) { p.BusinessName = "" },
			expected: []string{TaskBusinessDetails},
		},
		{
			name:     "missing pincode",
			mutate:   func(p *api.Profile) { p.Pincode = "" },
			expected: []string{TaskBusinessDetails},
		},
		{
			name:     "zero coordinates count as missing",
			mutate:   func(p *api.Profile) { p.Latitude, p.Longitude = 0, 0 },
			expected: []string{TaskBusinessDetails},
		},
		{
			name:     "missing photo",
			mutate:   func(p *api.Profile) { p.PhotoURL = "" },
			expected: []string{TaskProfilePhoto},
		},
		{
			name:     "missing document",
			mutate:   func(p *api.Profile) { p.AadharURL = "" },
			expected: []string{TaskIDDocument},
		},
		{
			name: "everything missing",
			mutate: func(p *api.Profile) {
				*p = api.Profile{}
			},
			expected: []string{TaskBusinessDetails, TaskProfilePhoto, TaskIDDocument},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := completeProfile()
			tt.mutate(&profile)
			assert.Equal(t, tt.expected, ProfileTasks(profile))
		})
	}
}
