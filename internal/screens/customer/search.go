// Package customer holds the customer-facing screens: provider search,
// booking creation and the bookings list with its payment and review
// affordances.
package customer

import (
	"context"

	"nearfix-client/internal/api"
	"nearfix-client/internal/common/errors"
	"nearfix-client/internal/common/logger"
	"nearfix-client/internal/common/validation"
)

const (
	minRadiusKm     = 5
	maxRadiusKm     = 50
	defaultRadiusKm = 10
)

type locationSource string

const (
	locationDefault locationSource = "default"
	locationDevice  locationSource = "device"
	locationManual  locationSource = "manual"
)

// SearchController collects the search form and renders the ranked
// provider list. One request per submit; ranking is backend-owned.
type SearchController struct {
	services *api.ServicesClient
	search   *api.SearchClient
	reviews  *api.ReviewsClient
	locator  Locator
	logger   logger.Logger

	catalog   []api.Service
	serviceID int64
	radiusKm  int
	lat, lng  float64
	source    locationSource
	maxPrice  *float64
	minRating *float64
	sortBy    api.SortKey

	results []api.ProviderResult
	loading bool
	errMsg  string
}

func NewSearchController(services *api.ServicesClient, search *api.SearchClient, reviews *api.ReviewsClient, locator Locator, log logger.Logger) *SearchController {
	return &SearchController{
		services: services,
		search:   search,
		reviews:  reviews,
		locator:  locator,
		logger:   log,
		radiusKm: defaultRadiusKm,
		lat:      DefaultLocation.Lat,
		lng:      DefaultLocation.Lng,
		source:   locationDefault,
		sortBy:   api.SortByDistance,
	}
}

// Load fetches the service catalog and attempts device geolocation,
// keeping the fallback location when detection fails.
func (c *SearchController) Load(ctx context.Context) {
	c.loading = true
	c.errMsg = ""

	catalog, err := c.services.Catalog(ctx)
	if err != nil {
		c.loading = false
		c.errMsg = errors.UserMessage(err)
		return
	}
	c.catalog = catalog

	if lat, lng, err := c.locator.Locate(ctx); err == nil {
		c.lat, c.lng = lat, lng
		c.source = locationDevice
	} else {
		c.logger.Debug("geolocation unavailable, using default location", map[string]interface{}{
			"error": err.Error(),
		})
	}
	c.loading = false
}

func (c *SearchController) Catalog() []api.Service        { return c.catalog }
func (c *SearchController) Results() []api.ProviderResult { return c.results }
func (c *SearchController) Error() string                 { return c.errMsg }
func (c *SearchController) Loading() bool                 { return c.loading }
func (c *SearchController) RadiusKm() int                 { return c.radiusKm }
func (c *SearchController) Location() (float64, float64)  { return c.lat, c.lng }

func (c *SearchController) SelectService(serviceID int64) {
	c.serviceID = serviceID
}

// SetRadius clamps to the allowed 5-50 km range.
func (c *SearchController) SetRadius(km int) {
	if km < minRadiusKm {
		km = minRadiusKm
	}
	if km > maxRadiusKm {
		km = maxRadiusKm
	}
	c.radiusKm = km
}

// SetLocation is the manual override.
func (c *SearchController) SetLocation(lat, lng float64) {
	c.lat, c.lng = lat, lng
	c.source = locationManual
}

func (c *SearchController) SetMaxPrice(price float64) {
	if price <= 0 {
		c.maxPrice = nil
		return
	}
	c.maxPrice = &price
}

func (c *SearchController) SetMinRating(rating float64) {
	if rating <= 0 {
		c.minRating = nil
		return
	}
	c.minRating = &rating
}

func (c *SearchController) SetSortBy(key api.SortKey) {
	switch key {
	case api.SortByDistance, api.SortByRating, api.SortByPrice:
		c.sortBy = key
	}
}

// Submit issues the search request and replaces the result list.
func (c *SearchController) Submit(ctx context.Context) {
	if c.serviceID == 0 {
		c.errMsg = "Please choose a service"
		return
	}
	if result := validation.Radius(c.radiusKm); !result.Valid {
		c.errMsg = result.First()
		return
	}

	c.loading = true
	c.errMsg = ""
	results, err := c.search.Providers(ctx, api.SearchRequest{
		ServiceID: c.serviceID,
		Latitude:  c.lat,
		Longitude: c.lng,
		RadiusKm:  c.radiusKm,
		MaxPrice:  c.maxPrice,
		MinRating: c.minRating,
		SortBy:    c.sortBy,
	})
	c.loading = false

	if err != nil {
		c.errMsg = errors.UserMessage(err)
		return
	}
	c.results = results
}

// ProviderView is the detail screen's data: the full provider record
// plus its review summary and recent reviews.
type ProviderView struct {
	Detail  *api.ProviderDetail
	Stats   *api.ReviewStats
	Reviews []api.Review
}

// ProviderDetail fetches the full provider record, catalog included,
// and enriches it with review stats and recent reviews. The review
// lookups are silent-fail: a provider without reviews still renders.
func (c *SearchController) ProviderDetail(ctx context.Context, id int64) (*ProviderView, error) {
	detail, err := c.search.Provider(ctx, id)
	if err != nil {
		c.errMsg = errors.UserMessage(err)
		return nil, err
	}

	view := &ProviderView{Detail: detail}
	if stats, err := c.reviews.ProviderStats(ctx, id); err == nil {
		view.Stats = stats
	}
	if reviews, err := c.reviews.ForProvider(ctx, id); err == nil {
		view.Reviews = reviews
	}
	return view, nil
}
