package api

import (
	"context"
	"fmt"

	"nearfix-client/internal/common/httpclient"
)

// SearchClient runs geospatial provider searches. Ranking is
// backend-owned; the client just submits the filters.
type SearchClient struct {
	http *httpclient.Client
}

func (c *SearchClient) Providers(ctx context.Context, req SearchRequest) ([]ProviderResult, error) {
	var results []ProviderResult
	if err := c.http.PostJSON(ctx, "/api/search/providers", req, &results); err != nil {
		return nil, err
	}
	return results, nil
}

func (c *SearchClient) Provider(ctx context.Context, id int64) (*ProviderDetail, error) {
	var detail ProviderDetail
	path := fmt.Sprintf("/api/search/providers/%d", id)
	if err := c.http.GetJSON(ctx, path, nil, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}
