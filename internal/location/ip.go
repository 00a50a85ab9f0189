package location

import (
	"context"

	"localmart_go/internal/domain"
	"localmart_go/internal/infra"
)

// IPProvider adapts the external IP geolocation client into the provider
// chain. Coarse: city-level accuracy at best.
type IPProvider struct {
	client *infra.IPGeoClient
}

// NewIPProvider creates an IP fallback provider.
func NewIPProvider(client *infra.IPGeoClient) *IPProvider {
	return &IPProvider{client: client}
}

func (p *IPProvider) Method() string { return domain.MethodIP }

func (p *IPProvider) Attempt(ctx context.Context) (*domain.LocationEstimate, error) {
	return p.client.Lookup(ctx)
}
