package app

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"localmart_go/internal/domain"
	"localmart_go/internal/infra"
	"localmart_go/internal/infra/localmart"
	"localmart_go/internal/infra/storage"
	"localmart_go/internal/session"
)

// Bootstrap orchestrates the application startup sequence
type Bootstrap struct {
	Config     *infra.Config
	Storage    *storage.Storage
	Markets    domain.MarketRepository
	Session    *session.Session
	Client     *localmart.Client
	Downloader *infra.LogoDownloader
}

// NewBootstrap creates a new Bootstrap instance
func NewBootstrap() *Bootstrap {
	return &Bootstrap{}
}

// Initialize performs core system initialization (config, logger, DB, session)
func (b *Bootstrap) Initialize() error {
	slog.Info("Bootstrapping LocalMart client...")

	// 1. Load Config
	cfg, err := infra.LoadConfig("configs/config.yaml")
	if err != nil {
		return err // Let main handle the error
	}
	b.Config = cfg

	// 2. Setup Logger
	logger := infra.NewLogger(cfg)
	slog.SetDefault(logger)

	// 3. Initialize Storage (DB)
	store, err := storage.NewStorage()
	if err != nil {
		return err
	}
	b.Storage = store
	b.Markets = store
	slog.Info("Database initialized")

	// 4. Session: restored from storage, with a config token override
	b.Session = session.New(store)
	if cfg.API.Token != "" {
		b.Session.SetToken(cfg.API.Token, "", "")
	}

	// 5. API client
	b.Client = localmart.NewClient(cfg, b.Session, store)

	// 6. Logo downloader
	downloader, err := infra.NewLogoDownloader(cfg.API.BaseURL)
	if err != nil {
		return err
	}
	b.Downloader = downloader
	slog.Info("Logo downloader ready")

	return nil
}

// SyncMarkets refreshes the local market cache from the backend and pulls
// missing logos in the background. On API failure the existing cached
// records stay in service.
func (b *Bootstrap) SyncMarkets(ctx context.Context) []domain.Market {
	slog.Info("Starting market synchronization...")

	markets, err := b.Client.ListMarkets(ctx)
	if err != nil {
		slog.Warn("Market fetch failed, serving cached copy", slog.Any("error", err))
		records, dbErr := b.Markets.GetAllMarkets()
		if dbErr != nil {
			slog.Error("Cache read failed", slog.Any("error", dbErr))
			return nil
		}
		infra.GlobalMetrics.RecordCacheHit()
		cached := make([]domain.Market, 0, len(records))
		for i := range records {
			cached = append(cached, records[i].ToMarket())
		}
		return cached
	}

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, 5) // Limit concurrent downloads

	for _, m := range markets {
		wg.Add(1)
		go func(m domain.Market) {
			defer wg.Done()
			select {
			case <-ctx.Done():
				return
			case semaphore <- struct{}{}: // Acquire
			}
			defer func() { <-semaphore }() // Release

			record := &domain.MarketRecord{
				ID:             m.ID,
				Name:           m.Name,
				Latitude:       m.Latitude,
				Longitude:      m.Longitude,
				Address:        m.Address,
				OperatingHours: m.OperatingHours,
				LastSyncedAt:   time.Now(),
				UpdatedAt:      time.Now(),
			}

			// Preserve the logo path of an existing record
			if existing, _ := b.Markets.GetMarket(m.ID); existing != nil {
				record.LogoPath = existing.LogoPath
				record.CreatedAt = existing.CreatedAt
			}

			if err := b.Markets.UpsertMarket(record); err != nil {
				slog.Error("Failed to upsert market", slog.String("id", m.ID), slog.Any("error", err))
			}

			path, err := b.Downloader.DownloadLogo(m.ID)
			if err != nil {
				slog.Warn("Failed to download logo", slog.String("id", m.ID), slog.Any("error", err))
			} else if path != "" && path != record.LogoPath {
				record.LogoPath = path
				b.Markets.UpsertMarket(record)
			}
		}(m)
	}

	wg.Wait()
	slog.Info("Market synchronization completed", slog.Int("markets", len(markets)))
	return markets
}
