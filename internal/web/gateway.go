package web

import (
	"context"
	"fmt"
	"strings"

	"country-data/internal/domain"
)

// JSONGetter fetches a URL and decodes its JSON body into out.
type JSONGetter interface {
	GetJSON(ctx context.Context, url string, out interface{}) error
}

// Observer records the outcome of a gateway call.
type Observer interface {
	ObserveUpstream(operation string, err error)
}

// GatewayClient reads the country list from the gateway.
type GatewayClient struct {
	getter   JSONGetter
	baseURL  string
	observer Observer
}

// NewGatewayClient creates a client for the gateway at baseURL. observer may be nil.
func NewGatewayClient(getter JSONGetter, baseURL string, observer Observer) *GatewayClient {
	return &GatewayClient{
		getter:   getter,
		baseURL:  strings.TrimSuffix(baseURL, "/"),
		observer: observer,
	}
}

// Countries calls GET {gateway}/countries.
func (c *GatewayClient) Countries(ctx context.Context) ([]domain.Summary, error) {
	var countries []domain.Summary
	err := c.getter.GetJSON(ctx, c.baseURL+"/countries", &countries)
	if c.observer != nil {
		c.observer.ObserveUpstream("countries", err)
	}
	if err != nil {
		return nil, fmt.Errorf("fetching countries from gateway: %w", err)
	}
	return countries, nil
}
