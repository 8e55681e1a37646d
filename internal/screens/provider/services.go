package provider

import (
	"context"

	"nearfix-client/internal/api"
	"nearfix-client/internal/common/errors"
	"nearfix-client/internal/common/logger"
	"nearfix-client/internal/common/validation"
)

// ServicesController manages the provider's own service offerings. The
// "available to add" set is computed client-side as the public catalog
// minus already-offered service IDs; uniqueness per (provider, service)
// is enforced server-side.
type ServicesController struct {
	provider *api.ProviderClient
	services *api.ServicesClient
	logger   logger.Logger

	catalog []api.Service
	mine    []api.ProviderService
	loading bool
	errMsg  string
}

func NewServicesController(provider *api.ProviderClient, services *api.ServicesClient, log logger.Logger) *ServicesController {
	return &ServicesController{
		provider: provider,
		services: services,
		logger:   log,
	}
}

func (c *ServicesController) Mine() []api.ProviderService { return c.mine }
func (c *ServicesController) Error() string               { return c.errMsg }
func (c *ServicesController) Loading() bool               { return c.loading }

func (c *ServicesController) Load(ctx context.Context) {
	c.loading = true
	c.errMsg = ""

	catalog, err := c.services.Catalog(ctx)
	if err != nil {
		c.loading = false
		c.errMsg = errors.UserMessage(err)
		return
	}

	mine, err := c.provider.MyServices(ctx)
	c.loading = false
	if err != nil {
		c.errMsg = errors.UserMessage(err)
		return
	}

	c.catalog = catalog
	c.mine = mine
}

// Addable returns the catalog entries the provider does not offer yet.
func (c *ServicesController) Addable() []api.Service {
	offered := make(map[int64]bool, len(c.mine))
	for _, s := range c.mine {
		offered[s.ServiceID] = true
	}

	var addable []api.Service
	for _, s := range c.catalog {
		if !offered[s.ID] {
			addable = append(addable, s)
		}
	}
	return addable
}

func (c *ServicesController) Add(ctx context.Context, req api.ProviderServiceRequest) error {
	if err := c.validate(req); err != nil {
		return err
	}

	service, err := c.provider.AddService(ctx, req)
	if err != nil {
		c.errMsg = errors.UserMessage(err)
		return err
	}

	c.mine = append(c.mine, *service)
	c.errMsg = ""
	return nil
}

func (c *ServicesController) Update(ctx context.Context, id int64, req api.ProviderServiceRequest) error {
	if err := c.validate(req); err != nil {
		return err
	}

	service, err := c.provider.UpdateService(ctx, id, req)
	if err != nil {
		c.errMsg = errors.UserMessage(err)
		return err
	}

	for i := range c.mine {
		if c.mine[i].ID == id {
			c.mine[i] = *service
		}
	}
	c.errMsg = ""
	return nil
}

func (c *ServicesController) Remove(ctx context.Context, id int64) error {
	if err := c.provider.RemoveService(ctx, id); err != nil {
		c.errMsg = errors.UserMessage(err)
		return err
	}

	kept := c.mine[:0]
	for _, s := range c.mine {
		if s.ID != id {
			kept = append(kept, s)
		}
	}
	c.mine = kept
	c.errMsg = ""
	return nil
}

func (c *ServicesController) validate(req api.ProviderServiceRequest) error {
	if result := validation.PositivePrice("basePrice", req.BasePrice); !result.Valid {
		c.errMsg = result.First()
		return errors.NewValidationError("basePrice", result.First())
	}
	if req.ExperienceYears < 0 {
		c.errMsg = "Experience years cannot be negative"
		return errors.NewValidationError("experienceYears", c.errMsg)
	}
	return nil
}
