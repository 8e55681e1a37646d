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
	"nearfix-client/internal/common/validation"
)

// BookingsController manages incoming bookings: accept, reject with a
// mandatory reason, complete with a mandatory positive final price.
// Eligibility comes from the server-supplied flags; the client never
// second-guesses them.
type BookingsController struct {
	bookings *api.BookingsClient
	logger   logger.Logger

	refresher *poll.Refresher

	mu      sync.Mutex
	filter  string
	items   []api.Booking
	loading bool
	errMsg  string
}

func NewBookingsController(bookings *api.BookingsClient, interval time.Duration, log logger.Logger) *BookingsController {
	c := &BookingsController{
		bookings: bookings,
		logger:   log,
		filter:   api.FilterAll,
	}
	c.refresher = poll.NewRefresher(interval, c.refresh)
	return c
}

func (c *BookingsController) Mount()   { c.refresher.Start() }
func (c *BookingsController) Unmount() { c.refresher.Stop() }

func (c *BookingsController) Items() []api.Booking {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]api.Booking, len(c.items))
	copy(out, c.items)
	return out
}

func (c *BookingsController) Error() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errMsg
}

func (c *BookingsController) SetFilter(filter string) {
	c.mu.Lock()
	c.filter = filter
	c.mu.Unlock()
	c.refresher.Start()
}

func (c *BookingsController) refresh(ctx context.Context, gen uint64) {
	metrics.ScreenRefreshesTotal.WithLabelValues("provider_bookings").Inc()

	c.mu.Lock()
	filter := c.filter
	c.mu.Unlock()

	bookings, err := c.bookings.Provider(ctx, filter)
	if !c.refresher.Current(gen) {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.errMsg = errors.UserMessage(err)
		return
	}
	c.items = bookings
	c.errMsg = ""
}

func (c *BookingsController) find(id int64) (api.Booking, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, b := range c.items {
		if b.ID == id {
			return b, true
		}
	}
	return api.Booking{}, false
}

// PrefillFinalPrice returns the quoted price as the completion form's
// starting value.
func (c *BookingsController) PrefillFinalPrice(id int64) float64 {
	if booking, ok := c.find(id); ok {
		return booking.QuotedPrice
	}
	return 0
}

func (c *BookingsController) Accept(ctx context.Context, id int64) error {
	booking, ok := c.find(id)
	if !ok || !booking.CanBeAccepted {
		err := errors.NewValidationError("booking", "This booking can no longer be accepted")
		c.setError(err.Message)
		return err
	}

	updated, err := c.bookings.Accept(ctx, id)
	if err != nil {
		c.setError(errors.UserMessage(err))
		return err
	}
	c.replace(*updated)
	return nil
}

func (c *BookingsController) Reject(ctx context.Context, id int64, reason string) error {
	if result := validation.Required("reason", "Rejection reason", reason); !result.Valid {
		c.setError(result.First())
		return errors.NewValidationError("reason", result.First())
	}

	updated, err := c.bookings.Reject(ctx, id, reason)
	if err != nil {
		c.setError(errors.UserMessage(err))
		return err
	}
	c.replace(*updated)
	return nil
}

func (c *BookingsController) Complete(ctx context.Context, id int64, finalPrice float64) error {
	booking, ok := c.find(id)
	if !ok || !booking.CanBeCompleted {
		err := errors.NewValidationError("booking", "This booking cannot be completed yet")
		c.setError(err.Message)
		return err
	}
	if result := validation.PositivePrice("finalPrice", finalPrice); !result.Valid {
		c.setError(result.First())
		return errors.NewValidationError("finalPrice", result.First())
	}

	updated, err := c.bookings.Complete(ctx, id, finalPrice)
	if err != nil {
		c.setError(errors.UserMessage(err))
		return err
	}
	c.replace(*updated)
	return nil
}

func (c *BookingsController) replace(booking api.Booking) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].ID == booking.ID {
			c.items[i] = booking
		}
	}
	c.errMsg = ""
}

func (c *BookingsController) setError(msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.errMsg = msg
}
