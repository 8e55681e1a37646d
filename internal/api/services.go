package api

import (
	"context"

	"nearfix-client/internal/common/httpclient"
)

// ServicesClient reads the public service catalog.
type ServicesClient struct {
	http *httpclient.Client
}

func (c *ServicesClient) Catalog(ctx context.Context) ([]Service, error) {
	var services []Service
	if err := c.http.GetJSON(ctx, "/api/services", nil, &services); err != nil {
		return nil, err
	}
	return services, nil
}
