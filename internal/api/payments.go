package api

import (
	"context"
	"net/url"
	"strconv"

	"nearfix-client/internal/common/errors"
	"nearfix-client/internal/common/httpclient"
)

// PaymentsClient covers the three-phase payment lifecycle: create an
// order, hand it to the external checkout, verify the confirmation.
type PaymentsClient struct {
	http *httpclient.Client
}

type createOrderRequest struct {
	BookingID int64 `json:"bookingId"`
}

type verifyRequest struct {
	OrderID   string `json:"orderId"`
	PaymentID string `json:"paymentId"`
	Signature string `json:"signature"`
}

type statusResponse struct {
	Status PaymentStatus `json:"status"`
}

func (c *PaymentsClient) CreateOrder(ctx context.Context, bookingID int64) (*PaymentOrder, error) {
	var order PaymentOrder
	err := c.http.PostJSON(ctx, "/api/payments/create-order", createOrderRequest{BookingID: bookingID}, &order)
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *PaymentsClient) Verify(ctx context.Context, orderID, paymentID, signature string) error {
	return c.http.PostJSON(ctx, "/api/payments/verify",
		verifyRequest{OrderID: orderID, PaymentID: paymentID, Signature: signature}, nil)
}

// Status is a silent-fail lookup: a missing payment record reads as
// NOT_PAID, not as an error.
func (c *PaymentsClient) Status(ctx context.Context, bookingID int64) (PaymentStatus, error) {
	query := url.Values{}
	query.Set("bookingId", strconv.FormatInt(bookingID, 10))

	var resp statusResponse
	err := c.http.GetJSON(ctx, "/api/payments/status", query, &resp)
	if err != nil {
		if errors.IsNotFound(err) {
			return PaymentNotPaid, nil
		}
		return "", err
	}
	if resp.Status == "" {
		return PaymentNotPaid, nil
	}
	return resp.Status, nil
}
