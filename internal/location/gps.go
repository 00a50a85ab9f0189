package location

import (
	"context"
	"errors"
	"sync"
	"time"

	"localmart_go/internal/domain"
)

const (
	// DefaultGPSTimeout bounds a single position acquisition.
	DefaultGPSTimeout = 15 * time.Second
	// DefaultCacheWindow is how long a previous fix stays acceptable.
	DefaultCacheWindow = 5 * time.Minute
)

// PositionFunc acquires a device position: coordinate plus accuracy in
// meters. Supplied by the hosting platform; blocks until a fix or ctx ends.
type PositionFunc func(ctx context.Context) (domain.Coordinate, float64, error)

// GPSProvider acquires the device position with a timeout and a positional
// cache window: a fix younger than the window is reused without touching
// the hardware again.
type GPSProvider struct {
	position    PositionFunc
	timeout     time.Duration
	cacheWindow time.Duration

	mu        sync.Mutex
	lastFix   *domain.LocationEstimate
	lastFixAt time.Time
}

// NewGPSProvider creates a GPS provider. Zero timeout or cacheWindow pick
// the defaults.
func NewGPSProvider(position PositionFunc, timeout, cacheWindow time.Duration) *GPSProvider {
	if timeout <= 0 {
		timeout = DefaultGPSTimeout
	}
	if cacheWindow <= 0 {
		cacheWindow = DefaultCacheWindow
	}
	return &GPSProvider{
		position:    position,
		timeout:     timeout,
		cacheWindow: cacheWindow,
	}
}

func (p *GPSProvider) Method() string { return domain.MethodGPS }

// Attempt returns a cached fix when fresh, otherwise acquires a new one.
func (p *GPSProvider) Attempt(ctx context.Context) (*domain.LocationEstimate, error) {
	p.mu.Lock()
	if p.lastFix != nil && time.Since(p.lastFixAt) < p.cacheWindow {
		fix := *p.lastFix
		p.mu.Unlock()
		return &fix, nil
	}
	p.mu.Unlock()

	if p.position == nil {
		return nil, domain.NewLocationError(domain.LocPositionUnavailable, errors.New("no position source"))
	}

	acqCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	coord, accuracy, err := p.position(acqCtx)
	if err != nil {
		return nil, classifyGPSError(err)
	}

	if !coord.Valid() {
		return nil, domain.NewLocationError(domain.LocInvalidCoordinates, nil)
	}

	est := &domain.LocationEstimate{
		Coordinate:     coord,
		AccuracyMeters: accuracy,
		Method:         domain.MethodGPS,
	}

	p.mu.Lock()
	p.lastFix = est
	p.lastFixAt = time.Now()
	p.mu.Unlock()

	fix := *est
	return &fix, nil
}

func classifyGPSError(err error) error {
	var le *domain.LocationError
	if errors.As(err, &le) {
		return err // already classified by the platform callback
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return domain.NewLocationError(domain.LocTimeout, err)
	}
	return domain.NewLocationError(domain.LocPositionUnavailable, err)
}
