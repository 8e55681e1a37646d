package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nearfix-client/internal/api"
	"nearfix-client/internal/common/httpclient"
	"nearfix-client/internal/common/logger"
)

func newServicesController(t *testing.T, handler http.HandlerFunc) *ServicesController {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client := api.NewClient(httpclient.New(server.URL, 5*time.Second, token{}, logger.NewNoOpLogger()))
	return NewServicesController(client.Provider, client.Services, logger.NewNoOpLogger())
}

func servicesHandler(catalog []api.Service, mine *[]api.ProviderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/api/services":
			json.NewEncoder(w).Encode(catalog)
		case r.URL.Path == "/api/provider/services" && r.Method == http.MethodGet:
			json.NewEncoder(w).Encode(*mine)
		case r.URL.Path == "/api/provider/services" && r.Method == http.MethodPost:
			var req api.ProviderServiceRequest
			json.NewDecoder(r.Body).Decode(&req)
			created := api.ProviderService{ID: 100, ServiceID: req.ServiceID, BasePrice: req.BasePrice}
			*mine = append(*mine, created)
			json.NewEncoder(w).Encode(created)
		case r.Method == http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		case r.Method == http.MethodPut:
			var req api.ProviderServiceRequest
			json.NewDecoder(r.Body).Decode(&req)
			json.NewEncoder(w).Encode(api.ProviderService{ID: 5, ServiceID: req.ServiceID, BasePrice: req.BasePrice})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}
}

func TestServices_AddableExcludesOffered(t *testing.T) {
	catalog := []api.Service{
		{ID: 1, Name: "Plumbing"},
		{ID: 2, Name: "Electrical"},
		{ID: 3, Name: "Carpentry"},
	}
	mine := []api.ProviderService{
		{ID: 5, ServiceID: 2, BasePrice: 300},
	}
	c := newServicesController(t, servicesHandler(catalog, &mine))

	c.Load(context.Background())
	require.Empty(t, c.Error())

	addable := c.Addable()
	require.Len(t, addable, 2)
	assert.Equal(t, int64(1), addable[0].ID)
	assert.Equal(t, int64(3), addable[1].ID)
}

func TestServices_AddValidatesThenShrinksAddable(t *testing.T) {
	catalog := []api.Service{{ID: 1, Name: "Plumbing"}, {ID: 2, Name: "Electrical"}}
	mine := []api.ProviderService{}
	c := newServicesController(t, servicesHandler(catalog, &mine))
	c.Load(context.Background())

	err := c.Add(context.Background(), api.ProviderServiceRequest{ServiceID: 1, BasePrice: 0})
	require.Error(t, err)
	assert.Equal(t, "Price must be greater than zero", c.Error())
	assert.Len(t, c.Addable(), 2)

	err = c.Add(context.Background(), api.ProviderServiceRequest{ServiceID: 1, BasePrice: 250, ExperienceYears: 3})
	require.NoError(t, err)
	assert.Len(t, c.Mine(), 1)

	addable := c.Addable()
	require.Len(t, addable, 1)
	assert.Equal(t, int64(2), addable[0].ID, "newly offered service leaves the addable set")
}

func TestServices_AddRejectsNegativeExperience(t *testing.T) {
	c := newServicesController(t, servicesHandler(nil, &[]api.ProviderService{}))
	c.Load(context.Background())

	err := c.Add(context.Background(), api.ProviderServiceRequest{ServiceID: 1, BasePrice: 100, ExperienceYears: -1})
	require.Error(t, err)
	assert.Equal(t, "Experience years cannot be negative", c.Error())
}

func TestServices_Remove(t *testing.T) {
	mine := []api.ProviderService{
		{ID: 5, ServiceID: 2},
		{ID: 6, ServiceID: 3},
	}
	c := newServicesController(t, servicesHandler(nil, &mine))
	c.Load(context.Background())
	require.Len(t, c.Mine(), 2)

	require.NoError(t, c.Remove(context.Background(), 5))
	require.Len(t, c.Mine(), 1)
	assert.Equal(t, int64(6), c.Mine()[0].ID)
}

func TestServices_Update(t *testing.T) {
	mine := []api.ProviderService{{ID: 5, ServiceID: 2, BasePrice: 300}}
	c := newServicesController(t, servicesHandler(nil, &mine))
	c.Load(context.Background())

	err := c.Update(context.Background(), 5, api.ProviderServiceRequest{ServiceID: 2, BasePrice: 450})
	require.NoError(t, err)
	assert.Equal(t, 450.0, c.Mine()[0].BasePrice)
}
