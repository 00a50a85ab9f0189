package location

import (
	"context"
	"fmt"
	"sort"

	"localmart_go/internal/domain"
)

// City-center accuracy for a manual selection.
const manualAccuracyMeters = 15000.0

// cityGazetteer maps supported city names to their centers.
var cityGazetteer = map[string]domain.Coordinate{
	"Hồ Chí Minh": {Latitude: 10.8231, Longitude: 106.6297},
	"Hà Nội":      {Latitude: 21.0285, Longitude: 105.8542},
	"Đà Nẵng":     {Latitude: 16.0544, Longitude: 108.2022},
	"Cần Thơ":     {Latitude: 10.0452, Longitude: 105.7469},
	"Hải Phòng":   {Latitude: 20.8449, Longitude: 106.6881},
	"Huế":         {Latitude: 16.4637, Longitude: 107.5909},
	"Nha Trang":   {Latitude: 12.2388, Longitude: 109.1967},
	"Đà Lạt":      {Latitude: 11.9404, Longitude: 108.4583},
}

// Cities lists the selectable city names, sorted.
func Cities() []string {
	names := make([]string, 0, len(cityGazetteer))
	for name := range cityGazetteer {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ManualProvider resolves a user-selected city to its center coordinate.
// This is the last resort the caller routes to when GPS and IP both fail.
type ManualProvider struct {
	city string
}

// NewManualProvider creates a provider for the given city selection.
func NewManualProvider(city string) *ManualProvider {
	return &ManualProvider{city: city}
}

func (p *ManualProvider) Method() string { return domain.MethodManual }

func (p *ManualProvider) Attempt(ctx context.Context) (*domain.LocationEstimate, error) {
	if p.city == "" {
		return nil, domain.NewLocationError(domain.LocPositionUnavailable, fmt.Errorf("no city selected"))
	}

	coord, ok := cityGazetteer[p.city]
	if !ok {
		return nil, domain.NewLocationError(domain.LocPositionUnavailable, fmt.Errorf("unknown city: %s", p.city))
	}

	return &domain.LocationEstimate{
		Coordinate:     coord,
		AccuracyMeters: manualAccuracyMeters,
		Method:         domain.MethodManual,
		City:           p.city,
	}, nil
}
