package client

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"country-data/internal/domain"
)

// DefaultBaseURL is the public REST Countries v3.1 API.
const DefaultBaseURL = "https://restcountries.com/v3.1"

// JSONGetter is the transport the client needs; httpclient.Client satisfies it.
type JSONGetter interface {
	GetJSON(ctx context.Context, url string, out interface{}) error
}

// Observer is notified once per outbound call.
type Observer interface {
	ObserveUpstream(operation string, err error)
}

// RestCountriesClient interacts with the REST Countries API.
type RestCountriesClient struct {
	getter   JSONGetter
	baseURL  string
	observer Observer
}

// NewRestCountriesClient creates a client for the API rooted at baseURL.
// observer may be nil.
func NewRestCountriesClient(getter JSONGetter, baseURL string, observer Observer) *RestCountriesClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &RestCountriesClient{
		getter:   getter,
		baseURL:  strings.TrimRight(baseURL, "/"),
		observer: observer,
	}
}

// All fetches the full upstream collection.
func (c *RestCountriesClient) All(ctx context.Context) ([]domain.Country, error) {
	countries, err := c.fetch(ctx, "all", c.baseURL+"/all")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch all countries: %w", err)
	}
	return countries, nil
}

// ByCode fetches the records matching a country code. Upstream answers with
// an array even for a single match.
func (c *RestCountriesClient) ByCode(ctx context.Context, code string) ([]domain.Country, error) {
	countries, err := c.fetch(ctx, "alpha", c.baseURL+"/alpha/"+url.PathEscape(code))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch country %q: %w", code, err)
	}
	return countries, nil
}

func (c *RestCountriesClient) fetch(ctx context.Context, operation, endpoint string) ([]domain.Country, error) {
	var apiResponse []map[string]interface{}
	err := c.getter.GetJSON(ctx, endpoint, &apiResponse)
	if c.observer != nil {
		c.observer.ObserveUpstream(operation, err)
	}
	if err != nil {
		return nil, err
	}

	countries := make([]domain.Country, 0, len(apiResponse))
	for _, raw := range apiResponse {
		countries = append(countries, domain.FromUpstream(raw))
	}
	return countries, nil
}
