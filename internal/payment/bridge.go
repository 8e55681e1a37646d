package payment

import (
	"context"
	stderrors "errors"

	"nearfix-client/internal/api"
	"nearfix-client/internal/common/errors"
	"nearfix-client/internal/common/logger"
)

// State tracks a checkout attempt through its lifecycle. A dismissed
// gateway returns the bridge to StateIdle rather than StateFailed, so
// the customer can simply try again.
type State string

const (
	StateIdle                 State = "idle"
	StateOrdering             State = "ordering"
	StateAwaitingConfirmation State = "awaiting_confirmation"
	StateVerifying            State = "verifying"
	StateDone                 State = "done"
	StateFailed               State = "failed"
)

// Dismissed is returned by a Gateway when the user closes the checkout
// without paying.
var Dismissed = stderrors.New("checkout dismissed")

// Order is the server-created payment order handed to the gateway.
type Order struct {
	OrderID  string
	Amount   float64
	Currency string
	KeyID    string
}

// Confirmation is the triple the gateway produces on a successful
// payment; the server verifies the signature.
type Confirmation struct {
	OrderID   string
	PaymentID string
	Signature string
}

// Gateway opens an interactive checkout for an order and blocks until
// the user pays, dismisses it, or ctx is cancelled. Implementations
// return Dismissed for a user-closed checkout.
type Gateway interface {
	Open(ctx context.Context, order Order) (Confirmation, error)
}

// Bridge runs the order → checkout → verify sequence against the
// backend, exposing the current state for rendering. A non-empty keyID
// replaces the order-supplied gateway key, for deployments where the
// client carries its own publishable key.
type Bridge struct {
	payments *api.PaymentsClient
	gateway  Gateway
	keyID    string
	logger   logger.Logger

	state  State
	errMsg string
}

func NewBridge(payments *api.PaymentsClient, gateway Gateway, keyID string, log logger.Logger) *Bridge {
	return &Bridge{
		payments: payments,
		gateway:  gateway,
		keyID:    keyID,
		logger:   log,
		state:    StateIdle,
	}
}

func (b *Bridge) State() State  { return b.state }
func (b *Bridge) Error() string { return b.errMsg }

// Reset returns a finished bridge to idle so another payment can start.
func (b *Bridge) Reset() {
	b.state = StateIdle
	b.errMsg = ""
}

// Pay drives one payment attempt for a booking. It returns nil both on
// success and on dismissal; the caller distinguishes them by State().
func (b *Bridge) Pay(ctx context.Context, bookingID int64) error {
	if b.state != StateIdle {
		return stderrors.New("payment already in progress")
	}

	b.transition(StateOrdering, bookingID)
	order, err := b.payments.CreateOrder(ctx, bookingID)
	if err != nil {
		return b.fail(bookingID, err)
	}

	keyID := order.KeyID
	if b.keyID != "" {
		keyID = b.keyID
	}

	b.transition(StateAwaitingConfirmation, bookingID)
	confirmation, err := b.gateway.Open(ctx, Order{
		OrderID:  order.OrderID,
		Amount:   order.Amount,
		Currency: order.Currency,
		KeyID:    keyID,
	})
	if err != nil {
		if stderrors.Is(err, Dismissed) {
			b.logger.Info("checkout dismissed", map[string]interface{}{
				"bookingId": bookingID,
				"orderId":   order.OrderID,
			})
			b.state = StateIdle
			b.errMsg = ""
			return nil
		}
		return b.fail(bookingID, err)
	}

	b.transition(StateVerifying, bookingID)
	if err := b.payments.Verify(ctx, confirmation.OrderID, confirmation.PaymentID, confirmation.Signature); err != nil {
		return b.fail(bookingID, err)
	}

	b.transition(StateDone, bookingID)
	return nil
}

func (b *Bridge) transition(to State, bookingID int64) {
	b.logger.Info("payment state", map[string]interface{}{
		"bookingId": bookingID,
		"state":     string(to),
	})
	b.state = to
}

func (b *Bridge) fail(bookingID int64, err error) error {
	b.logger.WithError(err).Error("payment failed", map[string]interface{}{
		"bookingId": bookingID,
		"state":     string(b.state),
	})
	b.state = StateFailed
	b.errMsg = errors.UserMessage(err)
	return err
}
