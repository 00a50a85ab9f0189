package geo

import (
	"math"
	"testing"
)

func TestDistance_Identity(t *testing.T) {
	points := [][2]float64{
		{0, 0},
		{10.8231, 106.6297},
		{-90, 180},
	}

	for _, p := range points {
		if d := Distance(p[0], p[1], p[0], p[1]); d != 0 {
			t.Errorf("Distance of point to itself = %v, want 0", d)
		}
	}
}

func TestDistance_Symmetry(t *testing.T) {
	ab := Distance(10.8231, 106.6297, 21.0285, 105.8542)
	ba := Distance(21.0285, 105.8542, 10.8231, 106.6297)

	if math.Abs(ab-ba) > 1e-6 {
		t.Errorf("Distance not symmetric: %v vs %v", ab, ba)
	}
}

func TestDistance_HCMCToHanoi(t *testing.T) {
	// Known reference: roughly 1138 km between the two city centers
	d := Distance(10.8231, 106.6297, 21.0285, 105.8542)

	if d < 1126000 || d > 1150000 {
		t.Errorf("HCMC-Hanoi distance = %.0f m, want within 1%% of ~1138 km", d)
	}
}

func TestDistance_NearAntipodal(t *testing.T) {
	// Rounding in the Haversine intermediate can exceed 1 for points close
	// to opposite sides of the globe, which used to yield NaN.
	halfCircumference := math.Pi * EarthRadiusMeters

	for lat := -90.0; lat <= 90.0; lat += 0.123 {
		d := Distance(lat, -172.09, -lat, 7.91)
		if math.IsNaN(d) {
			t.Fatalf("Distance(%v,-172.09, %v,7.91) = NaN", lat, -lat)
		}
		if d < 0 || d > halfCircumference+1 {
			t.Fatalf("Distance(%v,-172.09, %v,7.91) = %v, out of [0, half circumference]", lat, -lat, d)
		}
	}
}

func TestDistance_ShortRange(t *testing.T) {
	// Two points ~111m apart (0.001 degrees of latitude)
	d := Distance(10.0, 106.0, 10.001, 106.0)

	if d < 100 || d > 125 {
		t.Errorf("Expected ~111m, got %.1f", d)
	}
}

func TestFormatDistance(t *testing.T) {
	cases := []struct {
		meters float64
		want   string
	}{
		{950, "950m"},
		{1500, "1.5km"},
		{0, "0m"},
		{999, "999m"},
		{1000, "1.0km"},
		{12345, "12.3km"},
	}

	for _, c := range cases {
		if got := FormatDistance(c.meters); got != c.want {
			t.Errorf("FormatDistance(%v) = %q, want %q", c.meters, got, c.want)
		}
	}
}
