// Package api holds the typed clients for the NearFix backend, one per
// resource. They translate Go calls into the backend's REST surface and
// leave error presentation to the screens.
package api

import (
	"nearfix-client/internal/common/httpclient"
)

// Client bundles every resource client over one shared HTTP wrapper.
type Client struct {
	Auth     *AuthClient
	Services *ServicesClient
	Search   *SearchClient
	Provider *ProviderClient
	Bookings *BookingsClient
	Payments *PaymentsClient
	Reviews  *ReviewsClient
	Admin    *AdminClient
	Files    *FilesClient
}

func NewClient(http *httpclient.Client) *Client {
	return &Client{
		Auth:     &AuthClient{http: http},
		Services: &ServicesClient{http: http},
		Search:   &SearchClient{http: http},
		Provider: &ProviderClient{http: http},
		Bookings: &BookingsClient{http: http},
		Payments: &PaymentsClient{http: http},
		Reviews:  &ReviewsClient{http: http},
		Admin:    &AdminClient{http: http},
		Files:    &FilesClient{http: http},
	}
}
