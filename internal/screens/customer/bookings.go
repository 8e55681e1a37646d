package customer

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

// Item is one row of the customer's bookings list with its derived
// affordances. The flags mirror backend state; the only client-side rule
// is the pay/review ordering.
type Item struct {
	Booking   api.Booking
	Payment   api.PaymentStatus
	HasReview bool
	CanPay    bool
	CanReview bool
}

// BookingsController fetches the customer's bookings per status filter
// and keeps them fresh with a polling refresher while mounted. For each
// COMPLETED booking it probes payment and review state once per refresh.
type BookingsController struct {
	bookings *api.BookingsClient
	payments *api.PaymentsClient
	reviews  *api.ReviewsClient
	logger   logger.Logger

	refresher *poll.Refresher

	mu      sync.Mutex
	filter  string
	items   []Item
	loading bool
	errMsg  string
}

func NewBookingsController(client *api.Client, interval time.Duration, log logger.Logger) *BookingsController {
	c := &BookingsController{
		bookings: client.Bookings,
		payments: client.Payments,
		reviews:  client.Reviews,
		logger:   log,
		filter:   api.FilterAll,
	}
	c.refresher = poll.NewRefresher(interval, c.refresh)
	return c
}

// Mount starts polling; Unmount stops it. A completion from a stopped
// cycle is discarded by the generation check in refresh.
func (c *BookingsController) Mount()   { c.refresher.Start() }
func (c *BookingsController) Unmount() { c.refresher.Stop() }

func (c *BookingsController) Items() []Item {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

func (c *BookingsController) Error() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errMsg
}

func (c *BookingsController) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

func (c *BookingsController) Filter() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filter
}

// SetFilter switches the status filter and restarts polling so the new
// list loads immediately.
func (c *BookingsController) SetFilter(filter string) {
	c.mu.Lock()
	c.filter = filter
	c.mu.Unlock()
	c.refresher.Start()
}

func (c *BookingsController) refresh(ctx context.Context, gen uint64) {
	metrics.ScreenRefreshesTotal.WithLabelValues("customer_bookings").Inc()

	c.mu.Lock()
	filter := c.filter
	c.loading = len(c.items) == 0
	c.mu.Unlock()

	bookings, err := c.bookings.Customer(ctx, filter)
	if err != nil {
		if c.refresher.Current(gen) {
			c.mu.Lock()
			c.errMsg = errors.UserMessage(err)
			c.loading = false
			c.mu.Unlock()
		}
		return
	}

	items := make([]Item, 0, len(bookings))
	for _, booking := range bookings {
		items = append(items, c.buildItem(ctx, booking))
	}

	if !c.refresher.Current(gen) {
		return
	}

	c.mu.Lock()
	c.items = items
	c.errMsg = ""
	c.loading = false
	c.mu.Unlock()
}

// buildItem probes payment and review state for COMPLETED bookings. Both
// probes are silent-fail lookups: a failure reads as "not paid" / "no
// review", so the affordance simply stays hidden until the next refresh.
func (c *BookingsController) buildItem(ctx context.Context, booking api.Booking) Item {
	item := Item{Booking: booking, Payment: api.PaymentNotPaid}
	if booking.Status != api.BookingCompleted {
		return item
	}

	payment, err := c.payments.Status(ctx, booking.ID)
	if err != nil {
		c.logger.Debug("payment status probe failed", map[string]interface{}{
			"bookingId": booking.ID,
			"error":     err.Error(),
		})
		payment = api.PaymentNotPaid
	}
	item.Payment = payment

	review, err := c.reviews.ForBooking(ctx, booking.ID)
	if err != nil {
		review = nil
	}
	item.HasReview = review != nil

	item.CanPay = payment != api.PaymentPaid
	item.CanReview = payment == api.PaymentPaid && !item.HasReview
	return item
}

// Cancel requires a non-empty reason and applies the returned booking in
// place.
func (c *BookingsController) Cancel(ctx context.Context, bookingID int64, reason string) error {
	if result := validation.Required("reason", "Cancellation reason", reason); !result.Valid {
		err := errors.NewValidationError("reason", result.First())
		c.setError(result.First())
		return err
	}

	booking, err := c.bookings.Cancel(ctx, bookingID, reason)
	if err != nil {
		c.setError(errors.UserMessage(err))
		return err
	}

	c.replaceBooking(*booking)
	return nil
}

// SubmitReview validates locally, posts the review and flips the item's
// affordances.
func (c *BookingsController) SubmitReview(ctx context.Context, bookingID int64, rating int, comment string) error {
	if result := validation.Rating(rating); !result.Valid {
		err := errors.NewValidationError("rating", result.First())
		c.setError(result.First())
		return err
	}

	if _, err := c.reviews.Create(ctx, bookingID, rating, comment); err != nil {
		c.setError(errors.UserMessage(err))
		return err
	}

	c.mu.Lock()
	for i := range c.items {
		if c.items[i].Booking.ID == bookingID {
			c.items[i].HasReview = true
			c.items[i].CanReview = false
		}
	}
	c.errMsg = ""
	c.mu.Unlock()
	return nil
}

// MarkPaid is called after a successful payment so the list reflects it
// without waiting for the next poll.
func (c *BookingsController) MarkPaid(bookingID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].Booking.ID == bookingID {
			c.items[i].Payment = api.PaymentPaid
			c.items[i].CanPay = false
			c.items[i].CanReview = !c.items[i].HasReview
		}
	}
}

func (c *BookingsController) replaceBooking(booking api.Booking) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].Booking.ID == booking.ID {
			c.items[i].Booking = booking
		}
	}
	c.errMsg = ""
}

func (c *BookingsController) setError(msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.errMsg = msg
}
