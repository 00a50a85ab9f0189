package domain

import (
	"math"
	"testing"
)

func f(v float64) *float64 { return &v }

func sampleMarkets() []Market {
	return []Market{
		{ID: "m1", Name: "Chợ Bến Thành", Latitude: f(10.7721), Longitude: f(106.6983)},
		{ID: "m2", Name: "Chợ Bà Chiểu", Latitude: f(10.8024), Longitude: f(106.6926)},
		{ID: "m3", Name: "Chợ Đồng Xuân", Latitude: f(21.0377), Longitude: f(105.8490)}, // Hanoi
		{ID: "m4", Name: "Chợ chưa định vị"}, // no coordinates
	}
}

func TestNearbyMarkets_FilterAndSort(t *testing.T) {
	user := Coordinate{Latitude: 10.7769, Longitude: 106.7009} // District 1, HCMC

	results := NearbyMarkets(sampleMarkets(), user, 10)

	if len(results) != 2 {
		t.Fatalf("Expected 2 markets within 10km, got %d", len(results))
	}

	// Ascending by distance: Ben Thanh is closer than Ba Chieu
	if results[0].Market.ID != "m1" || results[1].Market.ID != "m2" {
		t.Errorf("Wrong order: got %s, %s", results[0].Market.ID, results[1].Market.ID)
	}

	for _, r := range results {
		if r.DistMtrs > 10*1000 {
			t.Errorf("Market %s beyond radius: %.0fm", r.Market.ID, r.DistMtrs)
		}
	}
}

func TestNearbyMarkets_NearAntipodalUser(t *testing.T) {
	// A user almost exactly opposite a market must see it excluded from a
	// small radius, not retained with a NaN distance.
	markets := []Market{
		{ID: "far", Name: "Chợ đối cực", Latitude: f(89.481), Longitude: f(7.91)},
	}
	user := Coordinate{Latitude: -89.481, Longitude: -172.09}

	results := NearbyMarkets(markets, user, 1)

	if len(results) != 0 {
		t.Fatalf("Antipodal market retained in 1km radius: distance=%v", results[0].DistMtrs)
	}
}

func TestNearbyMarkets_EmptyInput(t *testing.T) {
	results := NearbyMarkets(nil, Coordinate{Latitude: 10, Longitude: 106}, 10)
	if len(results) != 0 {
		t.Errorf("Expected empty result, got %d", len(results))
	}
}

func TestNearbyMarkets_MissingCoordinatesExcluded(t *testing.T) {
	user := Coordinate{Latitude: 10.7769, Longitude: 106.7009}

	// Even a huge radius never surfaces a market without coordinates
	results := NearbyMarkets(sampleMarkets(), user, 100000)

	for _, r := range results {
		if r.Market.ID == "m4" {
			t.Error("Market without coordinates must never appear in results")
		}
	}
	if len(results) != 3 {
		t.Errorf("Expected 3 locatable markets, got %d", len(results))
	}
}

func TestNearbyMarkets_ZeroMatches(t *testing.T) {
	// User in Hanoi with a tight radius excludes all HCMC markets
	user := Coordinate{Latitude: 21.0285, Longitude: 105.8542}

	results := NearbyMarkets(sampleMarkets()[:2], user, 5)
	if len(results) != 0 {
		t.Errorf("Expected no matches, got %d", len(results))
	}
}

func TestNearbyMarkets_Restartable(t *testing.T) {
	markets := sampleMarkets()
	user := Coordinate{Latitude: 10.7769, Longitude: 106.7009}

	first := NearbyMarkets(markets, user, 10)
	second := NearbyMarkets(markets, user, 10)

	if len(first) != len(second) {
		t.Fatalf("Repeat invocations differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Market.ID != second[i].Market.ID {
			t.Errorf("Ordering not deterministic at %d", i)
		}
	}

	// Different radius on the same input must not be affected by prior calls
	wide := NearbyMarkets(markets, user, 2000)
	if len(wide) != 3 {
		t.Errorf("Expected 3 markets within 2000km, got %d", len(wide))
	}
}

func TestMarket_Coordinate(t *testing.T) {
	t.Run("present", func(t *testing.T) {
		m := Market{Latitude: f(10.5), Longitude: f(106.5)}
		c, ok := m.Coordinate()
		if !ok || c.Latitude != 10.5 || c.Longitude != 106.5 {
			t.Errorf("Coordinate() = %v, %v", c, ok)
		}
	})

	t.Run("missing longitude", func(t *testing.T) {
		m := Market{Latitude: f(10.5)}
		if _, ok := m.Coordinate(); ok {
			t.Error("Half-specified coordinates should report missing")
		}
	})
}

func TestCoordinate_Valid(t *testing.T) {
	cases := []struct {
		name  string
		coord Coordinate
		want  bool
	}{
		{"hcmc", Coordinate{10.8231, 106.6297}, true},
		{"poles", Coordinate{-90, 180}, true},
		{"lat out of range", Coordinate{91, 0}, false},
		{"lon out of range", Coordinate{0, -181}, false},
		{"nan", Coordinate{math.NaN(), 0}, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.coord.Valid(); got != c.want {
				t.Errorf("Valid() = %v, want %v", got, c.want)
			}
		})
	}
}
