package api

import (
	"context"
	"fmt"
	"io"

	"nearfix-client/internal/common/httpclient"
)

// ProviderClient covers the provider's own profile lifecycle and service
// catalog.
type ProviderClient struct {
	http *httpclient.Client
}

func (c *ProviderClient) Profile(ctx context.Context) (*Profile, error) {
	var profile Profile
	if err := c.http.GetJSON(ctx, "/api/provider/profile", nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (c *ProviderClient) UpdateProfile(ctx context.Context, update ProfileUpdate) (*Profile, error) {
	var profile Profile
	if err := c.http.PutJSON(ctx, "/api/provider/profile", update, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

type availabilityRequest struct {
	AvailabilityStatus string `json:"availabilityStatus"`
}

func (c *ProviderClient) SetAvailability(ctx context.Context, status string) error {
	return c.http.PutJSON(ctx, "/api/provider/profile/availability",
		availabilityRequest{AvailabilityStatus: status}, nil)
}

func (c *ProviderClient) UploadPhoto(ctx context.Context, filename string, file io.Reader) (*Profile, error) {
	var profile Profile
	err := c.http.PostMultipart(ctx, "/api/provider/profile/photo", "file", filename, file, &profile)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (c *ProviderClient) UploadDocument(ctx context.Context, filename string, file io.Reader) (*Profile, error) {
	var profile Profile
	err := c.http.PostMultipart(ctx, "/api/provider/profile/document", "file", filename, file, &profile)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (c *ProviderClient) MyServices(ctx context.Context) ([]ProviderService, error) {
	var services []ProviderService
	if err := c.http.GetJSON(ctx, "/api/provider/services", nil, &services); err != nil {
		return nil, err
	}
	return services, nil
}

func (c *ProviderClient) AddService(ctx context.Context, req ProviderServiceRequest) (*ProviderService, error) {
	var service ProviderService
	if err := c.http.PostJSON(ctx, "/api/provider/services", req, &service); err != nil {
		return nil, err
	}
	return &service, nil
}

func (c *ProviderClient) UpdateService(ctx context.Context, id int64, req ProviderServiceRequest) (*ProviderService, error) {
	var service ProviderService
	path := fmt.Sprintf("/api/provider/services/%d", id)
	if err := c.http.PutJSON(ctx, path, req, &service); err != nil {
		return nil, err
	}
	return &service, nil
}

func (c *ProviderClient) RemoveService(ctx context.Context, id int64) error {
	return c.http.DeleteJSON(ctx, fmt.Sprintf("/api/provider/services/%d", id), nil)
}
