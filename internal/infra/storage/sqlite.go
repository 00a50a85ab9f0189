package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"localmart_go/internal/domain"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Storage is the local SQLite cache: market records, followed stores, and
// key-value app config (session token, manual city).
type Storage struct {
	db *gorm.DB
}

// NewStorage creates a new SQLite storage instance
func NewStorage() (*Storage, error) {
	dbPath, err := getDBPath()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve DB path: %w", err)
	}

	// Ensure directory exists
	dbDir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create DB directory: %w", err)
	}

	// Connect to SQLite (Pure Go)
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Auto Migration
	if err := db.AutoMigrate(&domain.MarketRecord{}, &domain.FollowedStore{}, &domain.AppConfig{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &Storage{db: db}, nil
}

// getDBPath resolves the database file path based on OS
func getDBPath() (string, error) {
	var configDir string
	var err error

	if runtime.GOOS == "windows" {
		configDir = os.Getenv("LOCALAPPDATA")
		if configDir == "" {
			configDir, err = os.UserConfigDir()
		}
	} else {
		configDir, err = os.UserConfigDir()
	}

	if err != nil {
		return "", err
	}

	return filepath.Join(configDir, "LocalMart", "data", "localmart.db"), nil
}

// ======================================================================================
// Market Operations
// ======================================================================================

// UpsertMarket creates or updates a cached market record
func (s *Storage) UpsertMarket(m *domain.MarketRecord) error {
	return s.db.Save(m).Error
}

// GetMarket retrieves a cached market by id
func (s *Storage) GetMarket(id string) (*domain.MarketRecord, error) {
	var m domain.MarketRecord
	err := s.db.First(&m, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil // Not found is not an error
	}
	return &m, err
}

// GetAllMarkets retrieves all cached markets
func (s *Storage) GetAllMarkets() ([]domain.MarketRecord, error) {
	var markets []domain.MarketRecord
	err := s.db.Find(&markets).Error
	return markets, err
}

// DeleteMarket removes a market from the cache
func (s *Storage) DeleteMarket(id string) error {
	return s.db.Where("id = ?", id).Delete(&domain.MarketRecord{}).Error
}

// ======================================================================================
// Followed Store Operations
// ======================================================================================

// FollowStore records a followed store locally
func (s *Storage) FollowStore(storeID, name, marketID string) error {
	f := domain.FollowedStore{
		StoreID:    storeID,
		Name:       name,
		MarketID:   marketID,
		FollowedAt: time.Now(),
	}
	return s.db.Save(&f).Error
}

// UnfollowStore removes a followed store locally
func (s *Storage) UnfollowStore(storeID string) error {
	return s.db.Where("store_id = ?", storeID).Delete(&domain.FollowedStore{}).Error
}

// GetFollowedStores retrieves all followed stores
func (s *Storage) GetFollowedStores() ([]domain.FollowedStore, error) {
	var stores []domain.FollowedStore
	err := s.db.Find(&stores).Error
	return stores, err
}

// ======================================================================================
// Config Operations
// ======================================================================================

// SaveConfig saves a user configuration
func (s *Storage) SaveConfig(key, value string) error {
	config := domain.AppConfig{
		Key:   key,
		Value: value,
	}
	return s.db.Save(&config).Error
}

// LoadConfigMap loads all user configurations as a map
func (s *Storage) LoadConfigMap() (map[string]string, error) {
	var configs []domain.AppConfig
	if err := s.db.Find(&configs).Error; err != nil {
		return nil, err
	}

	result := make(map[string]string)
	for _, cfg := range configs {
		result[cfg.Key] = cfg.Value
	}
	return result, nil
}
