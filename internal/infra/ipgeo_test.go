package infra

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"localmart_go/internal/domain"
)

func mockIPResponse(lat, lon float64) ipAPIResponse {
	return ipAPIResponse{
		Status:      "success",
		Country:     "Vietnam",
		CountryCode: "VN",
		City:        "Ho Chi Minh City",
		Lat:         lat,
		Lon:         lon,
		Query:       "203.0.113.7",
	}
}

func TestIPGeoClient_Lookup(t *testing.T) {
	mockBody, _ := json.Marshal(mockIPResponse(10.8231, 106.6297))

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write(mockBody)
	}))
	defer server.Close()

	client := NewIPGeoClient(server.URL)

	est, err := client.Lookup(context.Background())
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}

	if est.Method != domain.MethodIP {
		t.Errorf("Method = %q, want ip", est.Method)
	}
	if est.Coordinate.Latitude != 10.8231 || est.Coordinate.Longitude != 106.6297 {
		t.Errorf("Coordinate = %+v", est.Coordinate)
	}
	if est.City != "Ho Chi Minh City" {
		t.Errorf("City = %q", est.City)
	}
	if est.AccuracyMeters != ipAccuracyMeters {
		t.Errorf("AccuracyMeters = %v, want coarse %v", est.AccuracyMeters, ipAccuracyMeters)
	}
}

func TestIPGeoClient_FailStatus(t *testing.T) {
	body, _ := json.Marshal(ipAPIResponse{Status: "fail", Message: "private range"})

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write(body)
	}))
	defer server.Close()

	client := NewIPGeoClient(server.URL)

	_, err := client.Lookup(context.Background())
	if err == nil {
		t.Fatal("Expected error for fail status")
	}
	if !domain.LocationErrorIs(err, domain.LocServiceUnavailable) {
		t.Errorf("Expected ServiceUnavailable, got %v", err)
	}
}

func TestIPGeoClient_InvalidCoordinates(t *testing.T) {
	body, _ := json.Marshal(mockIPResponse(120.0, 200.0))

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write(body)
	}))
	defer server.Close()

	client := NewIPGeoClient(server.URL)

	if _, err := client.Lookup(context.Background()); err == nil {
		t.Fatal("Out-of-range coordinates should be a resolution failure")
	}
}

func TestIPGeoClient_RetryOnFailure(t *testing.T) {
	callCount := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		callCount++
		if callCount < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		body, _ := json.Marshal(mockIPResponse(10.8231, 106.6297))
		w.WriteHeader(http.StatusOK)
		w.Write(body)
	}))
	defer server.Close()

	client := NewIPGeoClient(server.URL)

	// Should retry twice and succeed on the third attempt
	if _, err := client.Lookup(context.Background()); err != nil {
		t.Fatalf("Lookup should succeed after retries: %v", err)
	}

	if callCount != 3 {
		t.Errorf("Expected 3 calls, got %d", callCount)
	}
}
