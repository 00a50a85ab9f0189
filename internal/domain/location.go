package domain

import "math"

// Location acquisition methods, ordered by precision.
const (
	MethodGPS    = "gps"
	MethodIP     = "ip"
	MethodManual = "manual"
)

// Coordinate is a geographic point in decimal degrees.
// Immutable once obtained.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Valid reports whether both components are finite and within
// [-90,90] / [-180,180].
func (c Coordinate) Valid() bool {
	if math.IsNaN(c.Latitude) || math.IsInf(c.Latitude, 0) {
		return false
	}
	if math.IsNaN(c.Longitude) || math.IsInf(c.Longitude, 0) {
		return false
	}
	return c.Latitude >= -90 && c.Latitude <= 90 &&
		c.Longitude >= -180 && c.Longitude <= 180
}

// LocationEstimate is the outcome of a single location resolution.
// Request-scoped: fetched, used to filter, discarded.
type LocationEstimate struct {
	Coordinate     Coordinate `json:"coordinate"`
	AccuracyMeters float64    `json:"accuracy_meters,omitempty"` // 0 = unknown
	Method         string     `json:"method"`                    // gps, ip, manual
	City           string     `json:"city,omitempty"`
	Country        string     `json:"country,omitempty"`
}

// Permission states reported by the platform for location access.
const (
	PermissionGranted     = "granted"
	PermissionDenied      = "denied"
	PermissionPrompt      = "prompt"
	PermissionUnsupported = "unsupported"
	PermissionUnknown     = "unknown"
)
