package infra

import (
	"sync/atomic"
	"time"
)

// Metrics provides lightweight observability without external dependencies.
// Uses atomic operations for thread-safety.
type Metrics struct {
	// Counters
	apiRequests       atomic.Uint64
	transitionsIssued atomic.Uint64
	locationResolved  atomic.Uint64
	locationFailures  atomic.Uint64
	cacheHits         atomic.Uint64
	errorsTotal       atomic.Uint64

	// Latency tracking
	latencySumNs atomic.Int64
	latencyCount atomic.Uint64

	// Gauges
	activeConnections atomic.Int32
}

// GlobalMetrics is the singleton metrics instance.
var GlobalMetrics = &Metrics{}

// RecordRequest records an API request with its latency.
func (m *Metrics) RecordRequest(latencyNs int64) {
	m.apiRequests.Add(1)
	m.latencySumNs.Add(latencyNs)
	m.latencyCount.Add(1)
}

// RecordTransition records an issued proxy request/order transition trigger.
func (m *Metrics) RecordTransition() {
	m.transitionsIssued.Add(1)
}

// RecordLocationResolved records a successful location resolution.
func (m *Metrics) RecordLocationResolved() {
	m.locationResolved.Add(1)
}

// RecordLocationFailure records a failed location resolution.
func (m *Metrics) RecordLocationFailure() {
	m.locationFailures.Add(1)
}

// RecordCacheHit records a local cache hit.
func (m *Metrics) RecordCacheHit() {
	m.cacheHits.Add(1)
}

// RecordError records an error occurrence.
func (m *Metrics) RecordError() {
	m.errorsTotal.Add(1)
}

// IncrementConnections increments active connections by 1.
func (m *Metrics) IncrementConnections() {
	m.activeConnections.Add(1)
}

// DecrementConnections decrements active connections by 1.
func (m *Metrics) DecrementConnections() {
	m.activeConnections.Add(-1)
}

// MetricsSnapshot is a point-in-time view of all metrics.
type MetricsSnapshot struct {
	APIRequests       uint64
	TransitionsIssued uint64
	LocationResolved  uint64
	LocationFailures  uint64
	CacheHits         uint64
	ErrorsTotal       uint64
	AvgLatencyNs      int64
	ActiveConnections int32
	Timestamp         time.Time
}

// Snapshot returns current metrics as a snapshot.
func (m *Metrics) Snapshot() MetricsSnapshot {
	var avgLatency int64
	count := m.latencyCount.Load()
	if count > 0 {
		avgLatency = m.latencySumNs.Load() / int64(count)
	}

	return MetricsSnapshot{
		APIRequests:       m.apiRequests.Load(),
		TransitionsIssued: m.transitionsIssued.Load(),
		LocationResolved:  m.locationResolved.Load(),
		LocationFailures:  m.locationFailures.Load(),
		CacheHits:         m.cacheHits.Load(),
		ErrorsTotal:       m.errorsTotal.Load(),
		AvgLatencyNs:      avgLatency,
		ActiveConnections: m.activeConnections.Load(),
		Timestamp:         time.Now(),
	}
}

// Reset clears all metrics (for testing).
func (m *Metrics) Reset() {
	m.apiRequests.Store(0)
	m.transitionsIssued.Store(0)
	m.locationResolved.Store(0)
	m.locationFailures.Store(0)
	m.cacheHits.Store(0)
	m.errorsTotal.Store(0)
	m.latencySumNs.Store(0)
	m.latencyCount.Store(0)
	m.activeConnections.Store(0)
}
