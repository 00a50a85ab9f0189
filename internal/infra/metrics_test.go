package infra

import (
	"testing"
)

func TestMetrics_RecordRequest(t *testing.T) {
	m := &Metrics{}

	m.RecordRequest(1000)
	m.RecordRequest(2000)
	m.RecordRequest(3000)

	snap := m.Snapshot()

	if snap.APIRequests != 3 {
		t.Errorf("Expected 3 requests, got %d", snap.APIRequests)
	}

	// Average latency: (1000 + 2000 + 3000) / 3 = 2000
	if snap.AvgLatencyNs != 2000 {
		t.Errorf("Expected avg latency 2000, got %d", snap.AvgLatencyNs)
	}
}

func TestMetrics_LocationCounters(t *testing.T) {
	m := &Metrics{}

	m.RecordLocationResolved()
	m.RecordLocationFailure()
	m.RecordLocationFailure()

	snap := m.Snapshot()
	if snap.LocationResolved != 1 {
		t.Errorf("Expected 1 resolved, got %d", snap.LocationResolved)
	}
	if snap.LocationFailures != 2 {
		t.Errorf("Expected 2 failures, got %d", snap.LocationFailures)
	}
}

func TestMetrics_Connections(t *testing.T) {
	m := &Metrics{}

	m.IncrementConnections()
	m.IncrementConnections()
	m.DecrementConnections()

	snap := m.Snapshot()
	if snap.ActiveConnections != 1 {
		t.Errorf("Expected 1 connection, got %d", snap.ActiveConnections)
	}
}

func TestMetrics_Reset(t *testing.T) {
	m := &Metrics{}
	m.RecordTransition()
	m.RecordCacheHit()
	m.RecordError()

	m.Reset()

	snap := m.Snapshot()
	if snap.TransitionsIssued != 0 || snap.CacheHits != 0 || snap.ErrorsTotal != 0 {
		t.Errorf("Reset should zero all counters: %+v", snap)
	}
}
