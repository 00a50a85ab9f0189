package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"localmart_go/internal/app"
	"localmart_go/internal/domain"
	"localmart_go/internal/infra"
	"localmart_go/internal/infra/localmart"
	"localmart_go/internal/location"
	"localmart_go/internal/service"

	_ "net/http/pprof" // For pprof profiling
)

func main() {
	// 1. Pprof Server (for performance profiling)
	go func() {
		// Localhost only for security
		slog.Info("Pprof server started on localhost:6060")
		if err := http.ListenAndServe("localhost:6060", nil); err != nil {
			slog.Error("Pprof server failed", slog.Any("error", err))
		}
	}()

	// 2. System Bootstrapping
	bootstrap := app.NewBootstrap()
	if err := bootstrap.Initialize(); err != nil {
		slog.Error("Bootstrapping failed", slog.Any("error", err))
		os.Exit(1)
	}
	cfg := bootstrap.Config

	// 3. Graceful Shutdown Context
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 4. Market cache sync
	marketService := service.NewMarketService()
	marketService.ReplaceAll(bootstrap.SyncMarkets(ctx))

	// 5. Location chain: GPS (platform-supplied, absent in this CLI) with
	// IP fallback; manual city selection is the caller-side last resort.
	gps := location.NewGPSProvider(nil,
		time.Duration(cfg.Location.GPSTimeoutSec)*time.Second,
		time.Duration(cfg.Location.CacheWindowSec)*time.Second,
	)
	providers := []domain.LocationProvider{gps}
	if cfg.Location.EnableFallback {
		providers = append(providers, location.NewIPProvider(infra.NewIPGeoClient(cfg.Location.IPLookupURL)))
	}
	resolver := location.NewResolver(nil, providers...)

	estimate, err := resolver.Resolve(ctx)
	if err != nil {
		slog.Warn("Automatic location failed, falling back to manual city",
			slog.Any("error", err),
			slog.String("city", cfg.Location.ManualCity),
		)
		manual := location.NewManualProvider(cfg.Location.ManualCity)
		if estimate, err = manual.Attempt(ctx); err != nil {
			slog.Error("No usable location", slog.Any("error", err))
		}
	}

	if estimate != nil {
		nearby := marketService.Nearby(estimate.Coordinate, cfg.Location.DefaultRadiusKm)
		slog.InfoContext(ctx, "Nearby markets",
			slog.String("method", estimate.Method),
			slog.Int("count", len(nearby)),
		)
		for _, r := range nearby {
			slog.InfoContext(ctx, "Market",
				slog.String("name", r.Market.Name),
				slog.String("distance", r.DistanceLabel()),
			)
		}
	}

	// 6. Proxy-shopping snapshot + live status feed
	proxyService := service.NewProxyService(bootstrap.Client)
	proxyService.StartUpdateProcessor(ctx)

	if bootstrap.Session.IsAuthenticated() {
		if err := proxyService.Refresh(ctx); err != nil {
			slog.Warn("Proxy request refresh failed", slog.Any("error", err))
		}

		if stats, err := proxyService.Stats(ctx); err == nil {
			slog.InfoContext(ctx, "Proxy request stats",
				slog.Int("open", stats.Open),
				slog.Int("locked", stats.Locked),
				slog.Int("completed", stats.Completed),
				slog.Int("cancelled", stats.Cancelled),
			)
		}

		if cfg.API.WSURL != "" {
			worker := localmart.NewStatusWorker(cfg.API.WSURL, bootstrap.Session.Token(), proxyService.Updates())
			if err := worker.Connect(ctx); err != nil {
				slog.Error("Failed to connect status feed", slog.Any("error", err))
			}
			defer worker.Disconnect()
			slog.InfoContext(ctx, "Status feed worker started")
		}
	}

	slog.InfoContext(ctx, "LocalMart client operational. Press Ctrl+C to exit.")

	// Wait for shutdown signal
	<-ctx.Done()

	slog.InfoContext(ctx, "Shutting down gracefully...")
}
