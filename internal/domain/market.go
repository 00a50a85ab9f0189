package domain

import (
	"math"
	"sort"

	"localmart_go/pkg/geo"
)

// Market is a read-only copy of a backend market record, cached per session.
// Coordinates are optional: a market without them is treated as infinitely
// far and never appears in radius-filtered results.
type Market struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Latitude       *float64 `json:"latitude,omitempty"`
	Longitude      *float64 `json:"longitude,omitempty"`
	Address        string   `json:"address"`
	OperatingHours string   `json:"operating_hours,omitempty"`
}

// Coordinate returns the market's position and whether it has one.
func (m *Market) Coordinate() (Coordinate, bool) {
	if m.Latitude == nil || m.Longitude == nil {
		return Coordinate{}, false
	}
	return Coordinate{Latitude: *m.Latitude, Longitude: *m.Longitude}, true
}

// NearbyMarketResult pairs a market with its computed distance from the
// user. Derived and transient: recomputed on every location or radius change.
type NearbyMarketResult struct {
	Market   Market  `json:"market"`
	DistMtrs float64 `json:"distance_meters"`
}

// DistanceLabel renders the distance for display ("950m", "1.5km").
func (r *NearbyMarketResult) DistanceLabel() string {
	return geo.FormatDistance(r.DistMtrs)
}

// NearbyMarkets filters markets to those within maxDistanceKm of the user
// and sorts them ascending by distance, ties keeping input order. Pure and
// restartable: callable repeatedly with different radii on the same input.
// Empty input or zero matches yields an empty slice.
func NearbyMarkets(markets []Market, user Coordinate, maxDistanceKm float64) []NearbyMarketResult {
	maxMeters := maxDistanceKm * 1000

	results := make([]NearbyMarketResult, 0, len(markets))
	for _, m := range markets {
		coord, ok := m.Coordinate()
		if !ok {
			continue
		}
		d := geo.Distance(user.Latitude, user.Longitude, coord.Latitude, coord.Longitude)
		if math.IsNaN(d) || d > maxMeters {
			continue
		}
		results = append(results, NearbyMarketResult{Market: m, DistMtrs: d})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].DistMtrs < results[j].DistMtrs
	})

	return results
}
