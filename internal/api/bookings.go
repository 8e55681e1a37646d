package api

import (
	"context"
	"fmt"
	"net/url"

	"nearfix-client/internal/common/httpclient"
)

// FilterAll requests the unfiltered booking list; any other filter value
// is sent as a status query parameter.
const FilterAll = "all"

// BookingsClient drives the booking lifecycle from both sides. State
// transitions are backend-enforced; the client only issues the requests
// the server-supplied flags allow.
type BookingsClient struct {
	http *httpclient.Client
}

func (c *BookingsClient) Create(ctx context.Context, req BookingRequest) (*Booking, error) {
	var booking Booking
	if err := c.http.PostJSON(ctx, "/api/bookings", req, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

func (c *BookingsClient) Customer(ctx context.Context, filter string) ([]Booking, error) {
	return c.list(ctx, "/api/bookings/customer", filter)
}

func (c *BookingsClient) Provider(ctx context.Context, filter string) ([]Booking, error) {
	return c.list(ctx, "/api/bookings/provider", filter)
}

func (c *BookingsClient) list(ctx context.Context, path, filter string) ([]Booking, error) {
	var query url.Values
	if filter != "" && filter != FilterAll {
		query = url.Values{}
		query.Set("status", filter)
	}

	var bookings []Booking
	if err := c.http.GetJSON(ctx, path, query, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (c *BookingsClient) Accept(ctx context.Context, id int64) (*Booking, error) {
	return c.transition(ctx, id, "accept", nil)
}

func (c *BookingsClient) Reject(ctx context.Context, id int64, reason string) (*Booking, error) {
	return c.transition(ctx, id, "reject", map[string]string{"reason": reason})
}

func (c *BookingsClient) Complete(ctx context.Context, id int64, finalPrice float64) (*Booking, error) {
	return c.transition(ctx, id, "complete", map[string]float64{"finalPrice": finalPrice})
}

func (c *BookingsClient) Cancel(ctx context.Context, id int64, reason string) (*Booking, error) {
	return c.transition(ctx, id, "cancel", map[string]string{"reason": reason})
}

func (c *BookingsClient) transition(ctx context.Context, id int64, action string, body interface{}) (*Booking, error) {
	var booking Booking
	path := fmt.Sprintf("/api/bookings/%d/%s", id, action)
	if err := c.http.PutJSON(ctx, path, body, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}
