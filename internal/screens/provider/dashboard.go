// Package provider holds the provider-facing screens: dashboard, service
// catalog management, booking management and the onboarding wizard.
package provider

import (
	"context"
	"sync"
	"time"

	"nearfix-client/internal/api"
	"nearfix-client/internal/common/errors"
	"nearfix-client/internal/common/logger"
	"nearfix-client/internal/common/metrics"
	"nearfix-client/internal/common/poll"
)

// Stats are derived client-side from the booking list on every refresh.
type Stats struct {
	TotalBookings     int
	CompletedBookings int
	PendingBookings   int
	Earnings          float64
}

// Dashboard re-fetches the provider's profile and bookings on mount and
// every poll interval. The availability toggle is latched while its PUT
// is in flight so a poll landing mid-toggle cannot roll the switch back.
type Dashboard struct {
	provider *api.ProviderClient
	bookings *api.BookingsClient
	logger   logger.Logger

	refresher *poll.Refresher

	mu            sync.Mutex
	profile       *api.Profile
	stats         Stats
	togglePending bool
	errMsg        string
}

func NewDashboard(provider *api.ProviderClient, bookings *api.BookingsClient, interval time.Duration, log logger.Logger) *Dashboard {
	d := &Dashboard{
		provider: provider,
		bookings: bookings,
		logger:   log,
	}
	d.refresher = poll.NewRefresher(interval, d.refresh)
	return d
}

func (d *Dashboard) Mount()   { d.refresher.Start() }
func (d *Dashboard) Unmount() { d.refresher.Stop() }

func (d *Dashboard) Profile() *api.Profile {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.profile == nil {
		return nil
	}
	copied := *d.profile
	return &copied
}

func (d *Dashboard) Stats() Stats {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.stats
}

func (d *Dashboard) Error() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.errMsg
}

func (d *Dashboard) ToggleInFlight() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.togglePending
}

// Tasks returns the outstanding onboarding prompts for the current
// profile snapshot.
func (d *Dashboard) Tasks() []string {
	profile := d.Profile()
	if profile == nil {
		return nil
	}
	return ProfileTasks(*profile)
}

func (d *Dashboard) refresh(ctx context.Context, gen uint64) {
	metrics.ScreenRefreshesTotal.WithLabelValues("provider_dashboard").Inc()

	profile, err := d.provider.Profile(ctx)
	if err != nil {
		if d.refresher.Current(gen) {
			d.setError(errors.UserMessage(err))
		}
		return
	}

	bookings, err := d.bookings.Provider(ctx, api.FilterAll)
	if err != nil {
		if d.refresher.Current(gen) {
			d.setError(errors.UserMessage(err))
		}
		return
	}

	stats := deriveStats(bookings)

	if !d.refresher.Current(gen) {
		return
	}

	d.mu.Lock()
	if d.togglePending && d.profile != nil {
		// Keep the optimistic availability while the toggle is in flight.
		profile.AvailabilityStatus = d.profile.AvailabilityStatus
	}
	d.profile = profile
	d.stats = stats
	d.errMsg = ""
	d.mu.Unlock()
}

func deriveStats(bookings []api.Booking) Stats {
	stats := Stats{TotalBookings: len(bookings)}
	for _, b := range bookings {
		switch b.Status {
		case api.BookingCompleted:
			stats.CompletedBookings++
			if b.FinalPrice != nil {
				stats.Earnings += *b.FinalPrice
			}
		case api.BookingPending:
			stats.PendingBookings++
		}
	}
	return stats
}

// ToggleAvailability flips AVAILABLE and OFFLINE with a single PUT. The
// control is disabled while a request is in flight.
func (d *Dashboard) ToggleAvailability(ctx context.Context) {
	d.mu.Lock()
	if d.togglePending || d.profile == nil {
		d.mu.Unlock()
		return
	}
	target := api.AvailabilityAvailable
	if d.profile.AvailabilityStatus == api.AvailabilityAvailable {
		target = api.AvailabilityOffline
	}
	d.togglePending = true
	d.mu.Unlock()

	err := d.provider.SetAvailability(ctx, target)

	d.mu.Lock()
	d.togglePending = false
	if err != nil {
		d.errMsg = errors.UserMessage(err)
	} else if d.profile != nil {
		d.profile.AvailabilityStatus = target
		d.errMsg = ""
	}
	d.mu.Unlock()
}

func (d *Dashboard) setError(msg string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.errMsg = msg
}
