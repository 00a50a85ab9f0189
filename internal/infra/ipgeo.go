package infra

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"localmart_go/internal/domain"
)

// ipAPIResponse represents the ip-api.com JSON response
type ipAPIResponse struct {
	Status      string  `json:"status"` // "success" or "fail"
	Message     string  `json:"message"`
	Country     string  `json:"country"`
	CountryCode string  `json:"countryCode"`
	Region      string  `json:"regionName"`
	City        string  `json:"city"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	Query       string  `json:"query"` // caller's public IP
}

// IP geolocation is coarse: city-level at best.
const ipAccuracyMeters = 10000.0

// IPGeoClient resolves an approximate location from the caller's public IP
// via an external lookup service.
type IPGeoClient struct {
	apiURL     string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewIPGeoClient creates a new IP geolocation client
func NewIPGeoClient(apiURL string) *IPGeoClient {
	if apiURL == "" {
		apiURL = "http://ip-api.com/json/"
	}
	return &IPGeoClient{
		apiURL: apiURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: slog.Default().With("module", "ipgeo"),
	}
}

// Lookup fetches the IP-based location estimate with retry logic.
// Failures surface as LocationError(ServiceUnavailable).
func (c *IPGeoClient) Lookup(ctx context.Context) (*domain.LocationEstimate, error) {
	var lastErr error
	for i := 0; i < 3; i++ {
		if i > 0 {
			// Exponential backoff: 1s, 2s
			delay := time.Duration(1<<uint(i-1)) * time.Second
			c.logger.Info("Retrying IP lookup", slog.Int("attempt", i), slog.Duration("delay", delay))
			select {
			case <-ctx.Done():
				return nil, domain.NewLocationError(domain.LocServiceUnavailable, ctx.Err())
			case <-time.After(delay):
			}
		}

		est, err := c.doLookup(ctx)
		if err == nil {
			return est, nil
		}
		lastErr = err
		c.logger.Warn("IP lookup attempt failed", slog.Int("attempt", i+1), slog.Any("error", err))
	}
	return nil, domain.NewLocationError(domain.LocServiceUnavailable, lastErr)
}

func (c *IPGeoClient) doLookup(ctx context.Context) (*domain.LocationEstimate, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", DefaultUserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var data ipAPIResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, err
	}

	if data.Status != "success" {
		return nil, fmt.Errorf("lookup failed: %s", data.Message)
	}

	coord := domain.Coordinate{Latitude: data.Lat, Longitude: data.Lon}
	if !coord.Valid() {
		return nil, fmt.Errorf("service returned invalid coordinates: %v", coord)
	}

	c.logger.Info("IP location resolved",
		slog.String("city", data.City),
		slog.String("country", data.Country),
	)

	return &domain.LocationEstimate{
		Coordinate:     coord,
		AccuracyMeters: ipAccuracyMeters,
		Method:         domain.MethodIP,
		City:           data.City,
		Country:        data.Country,
	}, nil
}
