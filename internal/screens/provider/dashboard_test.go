package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nearfix-client/internal/api"
	"nearfix-client/internal/common/httpclient"
	"nearfix-client/internal/common/logger"
)

type token struct{}

func (token) Token() string { return "t" }

func price(v float64) *float64 { return &v }

type dashStub struct {
	mu           sync.Mutex
	availability string
	bookings     []api.Booking
	toggleGate   chan struct{} // when set, SetAvailability blocks until closed
}

func (s *dashStub) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/api/provider/profile/availability":
			s.mu.Lock()
			gate := s.toggleGate
			s.mu.Unlock()
			if gate != nil {
				<-gate
			}
			var body map[string]string
			json.NewDecoder(r.Body).Decode(&body)
			s.mu.Lock()
			s.availability = body["availabilityStatus"]
			s.mu.Unlock()
			w.Write([]byte(`{}`))
		case r.URL.Path == "/api/provider/profile":
			s.mu.Lock()
			status := s.availability
			s.mu.Unlock()
			json.NewEncoder(w).Encode(api.Profile{
				BusinessName:       "FixIt Co",
				AvailabilityStatus: status,
			})
		case r.URL.Path == "/api/bookings/provider":
			s.mu.Lock()
			bookings := s.bookings
			s.mu.Unlock()
			json.NewEncoder(w).Encode(bookings)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}
}

func newDashboard(t *testing.T, stub *dashStub) *Dashboard {
	server := httptest.NewServer(stub.handler())
	t.Cleanup(server.Close)
	client := api.NewClient(httpclient.New(server.URL, 5*time.Second, token{}, logger.NewNoOpLogger()))
	return NewDashboard(client.Provider, client.Bookings, time.Hour, logger.NewNoOpLogger())
}

func waitForProfile(t *testing.T, d *Dashboard) {
	t.Helper()
	require.Eventually(t, func() bool {
		return d.Profile() != nil
	}, 2*time.Second, 5*time.Millisecond)
}

func TestDeriveStats(t *testing.T) {
	bookings := []api.Booking{
		{Status: api.BookingCompleted, FinalPrice: price(500)},
		{Status: api.BookingCompleted, FinalPrice: price(250)},
		{Status: api.BookingCompleted}, // completed without a final price
		{Status: api.BookingPending},
		{Status: api.BookingAccepted},
		{Status: api.BookingCancelled},
	}

	stats := deriveStats(bookings)
	assert.Equal(t, 6, stats.TotalBookings)
	assert.Equal(t, 3, stats.CompletedBookings)
	assert.Equal(t, 1, stats.PendingBookings)
	assert.Equal(t, 750.0, stats.Earnings)
}

func TestDashboard_RefreshPopulatesProfileAndStats(t *testing.T) {
	stub := &dashStub{
		availability: api.AvailabilityAvailable,
		bookings: []api.Booking{
			{Status: api.BookingCompleted, FinalPrice: price(300)},
			{Status: api.BookingPending},
		},
	}
	d := newDashboard(t, stub)
	d.Mount()
	defer d.Unmount()

	waitForProfile(t, d)
	assert.Equal(t, "FixIt Co", d.Profile().BusinessName)
	assert.Equal(t, 300.0, d.Stats().Earnings)
	assert.Equal(t, 1, d.Stats().PendingBookings)
}

func TestDashboard_ToggleAvailability(t *testing.T) {
	stub := &dashStub{availability: api.AvailabilityAvailable}
	d := newDashboard(t, stub)
	d.Mount()
	defer d.Unmount()
	waitForProfile(t, d)

	d.ToggleAvailability(context.Background())
	assert.Equal(t, api.AvailabilityOffline, d.Profile().AvailabilityStatus)
	assert.False(t, d.ToggleInFlight())

	d.ToggleAvailability(context.Background())
	assert.Equal(t, api.AvailabilityAvailable, d.Profile().AvailabilityStatus)
}

func TestDashboard_PollDoesNotOverwriteLatchedToggle(t *testing.T) {
	stub := &dashStub{availability: api.AvailabilityAvailable}
	gate := make(chan struct{})
	d := newDashboard(t, stub)
	d.Mount()
	defer d.Unmount()
	waitForProfile(t, d)

	// The backend transiently reports OFFLINE while our toggle request is
	// held in flight.
	stub.mu.Lock()
	stub.toggleGate = gate
	stub.availability = api.AvailabilityOffline
	stub.bookings = []api.Booking{{Status: api.BookingPending}}
	stub.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.ToggleAvailability(context.Background())
		close(done)
	}()

	require.Eventually(t, d.ToggleInFlight, 2*time.Second, time.Millisecond)

	// A poll landing mid-toggle keeps the pre-toggle status. The booking
	// count changing proves the poll result was applied.
	d.Mount()
	require.Eventually(t, func() bool {
		return d.Stats().TotalBookings == 1
	}, 2*time.Second, time.Millisecond)
	assert.Equal(t, api.AvailabilityAvailable, d.Profile().AvailabilityStatus,
		"latched toggle must not be overwritten by a poll")

	close(gate)
	<-done
	assert.Equal(t, api.AvailabilityOffline, d.Profile().AvailabilityStatus)
}

func TestDashboard_SecondToggleIgnoredWhileInFlight(t *testing.T) {
	stub := &dashStub{availability: api.AvailabilityAvailable}
	gate := make(chan struct{})
	d := newDashboard(t, stub)
	d.Mount()
	defer d.Unmount()
	waitForProfile(t, d)

	stub.mu.Lock()
	stub.toggleGate = gate
	stub.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.ToggleAvailability(context.Background())
		close(done)
	}()
	require.Eventually(t, d.ToggleInFlight, 2*time.Second, time.Millisecond)

	// Re-click while disabled is a no-op.
	d.ToggleAvailability(context.Background())

	close(gate)
	<-done
	assert.Equal(t, api.AvailabilityOffline, d.Profile().AvailabilityStatus)
}

func TestDashboard_TasksFromProfile(t *testing.T) {
	stub := &dashStub{availability: api.AvailabilityAvailable}
	d := newDashboard(t, stub)
	d.Mount()
	defer d.Unmount()
	waitForProfile(t, d)

	// Stub profile has only a business name, and no address/photo/document.
	tasks := d.Tasks()
	assert.Contains(t, tasks, TaskBusinessDetails)
	assert.Contains(t, tasks, TaskProfilePhoto)
	assert.Contains(t, tasks, TaskIDDocument)
}
