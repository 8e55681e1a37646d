package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"nearfix-client/internal/common/httpclient"
)

// AdminClient backs the admin console's three views.
type AdminClient struct {
	http *httpclient.Client
}

func (c *AdminClient) Stats(ctx context.Context) (*AdminStats, error) {
	var stats AdminStats
	if err := c.http.GetJSON(ctx, "/api/admin/stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (c *AdminClient) PendingProviders(ctx context.Context, page, size int) (*ProviderPage, error) {
	var result ProviderPage
	if err := c.http.GetJSON(ctx, "/api/admin/providers/pending", pageQuery(page, size), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *AdminClient) VerifyProvider(ctx context.Context, id int64) error {
	return c.http.PutJSON(ctx, fmt.Sprintf("/api/admin/providers/%d/verify", id), nil, nil)
}

func (c *AdminClient) RejectProvider(ctx context.Context, id int64, reason string) error {
	return c.http.PutJSON(ctx, fmt.Sprintf("/api/admin/providers/%d/reject", id),
		map[string]string{"reason": reason}, nil)
}

func (c *AdminClient) Users(ctx context.Context, page, size int) (*UserPage, error) {
	var result UserPage
	if err := c.http.GetJSON(ctx, "/api/admin/users", pageQuery(page, size), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func pageQuery(page, size int) url.Values {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("size", strconv.Itoa(size))
	return query
}
