package domain

import "context"

// LocationProvider is a single strategy in the location fallback chain
// (GPS, IP lookup, manual selection). Attempt is single-shot: no retries or
// polling inside a provider.
type LocationProvider interface {
	Method() string
	Attempt(ctx context.Context) (*LocationEstimate, error)
}

// PermissionChecker reports the platform's location permission state,
// one of the Permission* constants.
type PermissionChecker interface {
	PermissionState(ctx context.Context) string
}

// MarketRepository defines how cached market records are accessed.
type MarketRepository interface {
	UpsertMarket(m *MarketRecord) error
	GetMarket(id string) (*MarketRecord, error)
	GetAllMarkets() ([]MarketRecord, error)
}
