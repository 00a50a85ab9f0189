package domain

import (
	"time"
)

// MarketRecord is the locally cached copy of a backend market, refreshed by
// the background sync. The live API response stays authoritative; this cache
// only serves offline listing and logo paths.
type MarketRecord struct {
	ID             string    `gorm:"primaryKey" json:"id"`
	Name           string    `json:"name"`
	Latitude       *float64  `json:"latitude"`
	Longitude      *float64  `json:"longitude"`
	Address        string    `json:"address"`
	OperatingHours string    `json:"operating_hours"`
	LogoPath       string    `json:"logo_path"`
	LastSyncedAt   time.Time `json:"last_synced_at"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ToMarket converts the cached record into the read model used by the
// nearby filter.
func (r *MarketRecord) ToMarket() Market {
	return Market{
		ID:             r.ID,
		Name:           r.Name,
		Latitude:       r.Latitude,
		Longitude:      r.Longitude,
		Address:        r.Address,
		OperatingHours: r.OperatingHours,
	}
}

// FollowedStore records a store the buyer follows, mirrored locally so the
// following list renders without a round trip.
type FollowedStore struct {
	StoreID    string    `gorm:"primaryKey" json:"store_id"`
	Name       string    `json:"name"`
	MarketID   string    `json:"market_id" gorm:"index"`
	FollowedAt time.Time `json:"followed_at"`
}

// AppConfig represents user-specific configuration (Key-Value)
type AppConfig struct {
	Key       string    `gorm:"primaryKey" json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}
