// Package location implements the GPS → IP → manual fallback chain as an
// ordered list of providers sharing one capability interface, tried in
// sequence until one succeeds.
package location

import (
	"context"
	"log/slog"

	"localmart_go/internal/domain"
	"localmart_go/internal/infra"
)

// Resolver runs the provider chain. Single-shot: no retries or polling;
// the caller re-invokes it on user action.
type Resolver struct {
	permission domain.PermissionChecker
	providers  []domain.LocationProvider
	logger     *slog.Logger
}

// NewResolver creates a resolver over an ordered provider chain.
// permission may be nil when the platform exposes no permission API.
func NewResolver(permission domain.PermissionChecker, providers ...domain.LocationProvider) *Resolver {
	return &Resolver{
		permission: permission,
		providers:  providers,
		logger:     slog.Default().With("module", "location"),
	}
}

// Resolve tries each provider in order and returns the first valid
// estimate. When every provider fails, the FIRST provider's error is
// surfaced so the caller can route the user to manual selection based on
// the primary acquisition failure, not a fallback's.
func (r *Resolver) Resolve(ctx context.Context) (*domain.LocationEstimate, error) {
	// Only an explicit denial short-circuits. Unknown and prompt states
	// still let the attempt run.
	if r.permission != nil && r.permission.PermissionState(ctx) == domain.PermissionDenied {
		infra.GlobalMetrics.RecordLocationFailure()
		return nil, domain.NewLocationError(domain.LocPermissionDenied, nil)
	}

	var primaryErr error
	for _, p := range r.providers {
		est, err := p.Attempt(ctx)
		if err != nil {
			r.logger.Warn("Location provider failed",
				slog.String("method", p.Method()),
				slog.Any("error", err),
			)
			if primaryErr == nil {
				primaryErr = err
			}
			continue
		}

		if !est.Coordinate.Valid() {
			err := domain.NewLocationError(domain.LocInvalidCoordinates, nil)
			r.logger.Warn("Location provider returned invalid coordinates",
				slog.String("method", p.Method()),
			)
			if primaryErr == nil {
				primaryErr = err
			}
			continue
		}

		infra.GlobalMetrics.RecordLocationResolved()
		r.logger.Info("Location resolved",
			slog.String("method", est.Method),
			slog.Float64("lat", est.Coordinate.Latitude),
			slog.Float64("lon", est.Coordinate.Longitude),
		)
		return est, nil
	}

	infra.GlobalMetrics.RecordLocationFailure()
	if primaryErr == nil {
		primaryErr = domain.NewLocationError(domain.LocPositionUnavailable, nil)
	}
	return nil, primaryErr
}
