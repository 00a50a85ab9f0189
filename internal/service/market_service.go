package service

import (
	"sort"
	"sync"

	"localmart_go/internal/domain"
)

// MarketService holds the session's read-only market cache and answers
// nearby queries against it. Updates are last-write-wins.
type MarketService struct {
	mu      sync.RWMutex
	markets map[string]domain.Market
}

// NewMarketService creates a new MarketService instance
func NewMarketService() *MarketService {
	return &MarketService{
		markets: make(map[string]domain.Market),
	}
}

// ReplaceAll swaps in a fresh market list (a full refetch from the API).
func (s *MarketService) ReplaceAll(markets []domain.Market) {
	next := make(map[string]domain.Market, len(markets))
	for _, m := range markets {
		next[m.ID] = m
	}

	s.mu.Lock()
	s.markets = next
	s.mu.Unlock()
}

// Upsert updates or inserts a single market.
func (s *MarketService) Upsert(m domain.Market) {
	s.mu.Lock()
	s.markets[m.ID] = m
	s.mu.Unlock()
}

// Get returns a market by id.
func (s *MarketService) Get(id string) (domain.Market, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.markets[id]
	return m, ok
}

// All returns all cached markets sorted by id for consistent ordering.
func (s *MarketService) All() []domain.Market {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.Market, 0, len(s.markets))
	for _, m := range s.markets {
		result = append(result, m)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Nearby returns the markets within radiusKm of the user, ascending by
// distance. Pure over the current snapshot; callable repeatedly with
// different radii.
func (s *MarketService) Nearby(user domain.Coordinate, radiusKm float64) []domain.NearbyMarketResult {
	return domain.NearbyMarkets(s.All(), user, radiusKm)
}

// Count returns the number of cached markets.
func (s *MarketService) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.markets)
}
