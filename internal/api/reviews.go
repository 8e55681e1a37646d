package api

import (
	"context"
	"fmt"

	"nearfix-client/internal/common/errors"
	"nearfix-client/internal/common/httpclient"
)

// ReviewsClient writes and reads reviews. A booking carries at most one
// review and is only reviewable once completed and paid; the backend
// enforces this, the client mirrors it.
type ReviewsClient struct {
	http *httpclient.Client
}

type createReviewRequest struct {
	BookingID int64  `json:"bookingId"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment,omitempty"`
}

func (c *ReviewsClient) Create(ctx context.Context, bookingID int64, rating int, comment string) (*Review, error) {
	var review Review
	err := c.http.PostJSON(ctx, "/api/reviews",
		createReviewRequest{BookingID: bookingID, Rating: rating, Comment: comment}, &review)
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// ForBooking is a silent-fail lookup: no review yet reads as (nil, nil).
func (c *ReviewsClient) ForBooking(ctx context.Context, bookingID int64) (*Review, error) {
	var review Review
	path := fmt.Sprintf("/api/reviews/booking/%d", bookingID)
	if err := c.http.GetJSON(ctx, path, nil, &review); err != nil {
		if errors.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	if review.ID == 0 {
		return nil, nil
	}
	return &review, nil
}

func (c *ReviewsClient) ForProvider(ctx context.Context, providerID int64) ([]Review, error) {
	var reviews []Review
	path := fmt.Sprintf("/api/reviews/provider/%d", providerID)
	if err := c.http.GetJSON(ctx, path, nil, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

func (c *ReviewsClient) ProviderStats(ctx context.Context, providerID int64) (*ReviewStats, error) {
	var stats ReviewStats
	path := fmt.Sprintf("/api/reviews/provider/%d/stats", providerID)
	if err := c.http.GetJSON(ctx, path, nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
