package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"nyc-route-optimizer/internal/adapters/cache"
	"nyc-route-optimizer/internal/adapters/googlemaps"
	"nyc-route-optimizer/internal/adapters/ny511"
	"nyc-route-optimizer/internal/adapters/repositories"
	"nyc-route-optimizer/internal/api"
	"nyc-route-optimizer/internal/config"
	"nyc-route-optimizer/internal/platform/db"
	"nyc-route-optimizer/internal/platform/obs"
	"nyc-route-optimizer/internal/ports"
	"nyc-route-optimizer/internal/services"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"go.uber.org/zap"
)

// Entries kept by the in-process response cache when Redis is not configured.
const memoryCacheSize = 1024

// main is the application composition root.
// It wires concrete adapters (Google Maps, 511NY, SQL stores, caches) behind ports
// and starts the HTTP server.
func main() {
	config.LoadDotEnv()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	flush, err := obs.InitLogger(cfg.Env)
	if err != nil {
		log.Fatal(err)
	}
	defer flush()

	if err := run(cfg); err != nil {
		zap.L().Error("server stopped", zap.Error(err))
		flush()
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	conn, geocodes, history, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer conn.Close()

	responses, closeCache, err := openResponseCache(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeCache()

	provider, err := googlemaps.NewProvider(googlemaps.Config{
		APIKey:   cfg.GoogleMapsAPIKey,
		Area:     cfg.ServiceArea,
		Center:   cfg.DefaultCenter,
		CacheTTL: cfg.CacheTTL,
	}, responses, geocodes)
	if err != nil {
		return err
	}

	// Traffic events are optional; the endpoint answers 503 without a key.
	var events ports.TrafficEventSource
	if cfg.NY511APIKey != "" {
		client, err := ny511.NewClient(cfg.NY511APIKey, "", cfg.CacheTTL, responses)
		if err != nil {
			return err
		}
		events = client
	}

	ranker, err := services.NewRanker(cfg.ScoringConfig())
	if err != nil {
		return err
	}

	suggester, err := services.NewRouteSuggester(provider, provider, ranker,
		services.WithHistory(history),
		services.WithServiceArea(cfg.ServiceArea),
		services.WithMaxRoutes(cfg.MaxRoutes),
		services.WithTrafficModel(cfg.TrafficModel),
	)
	if err != nil {
		return err
	}

	router := api.NewRouter(suggester, provider, events, cfg.DefaultCenter)

	// Timeouts are tuned for cold-cache route lookups (external API latency).
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		zap.L().Info("server listening",
			zap.String("addr", srv.Addr),
			zap.String("env", cfg.Env),
			zap.Stringer("service_area", cfg.ServiceArea),
		)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	zap.L().Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// openStore uses Postgres when DATABASE_URL is set (schema managed by dbtool),
// and a local SQLite file otherwise.
func openStore(cfg *config.Config) (*sql.DB, ports.GeocodeCache, ports.SearchHistoryRepository, error) {
	if cfg.DatabaseURL != "" {
		conn, err := db.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, nil, err
		}
		zap.L().Info("using postgres store")
		return conn,
			cache.NewSQLGeocodeCache(conn),
			repositories.NewSQLSearchHistoryRepository(conn, services.HistoryLimit),
			nil
	}

	if dir := filepath.Dir(cfg.DBPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, nil, fmt.Errorf("create db dir %q: %w", dir, err)
		}
	}

	conn, err := db.OpenSqlite(cfg.DBPath)
	if err != nil {
		return nil, nil, nil, err
	}

	// Initialize schema on startup for local runs.
	if err := repositories.InitSchema(conn); err != nil {
		conn.Close()
		return nil, nil, nil, err
	}

	zap.L().Info("using sqlite store", zap.String("path", cfg.DBPath))
	return conn,
		cache.NewSqliteGeocodeCache(conn),
		repositories.NewSqliteSearchHistoryRepository(conn, services.HistoryLimit),
		nil
}

// openResponseCache uses Redis when REDIS_URL is set and an in-process LRU otherwise.
func openResponseCache(ctx context.Context, cfg *config.Config) (ports.ResponseCache, func(), error) {
	if cfg.RedisURL == "" {
		zap.L().Info("using in-memory response cache", zap.Int("size", memoryCacheSize))
		return cache.NewMemoryResponseCache(memoryCacheSize), func() {}, nil
	}

	client, err := cache.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		return nil, nil, err
	}

	zap.L().Info("using redis response cache")
	return cache.NewRedisResponseCache(client, "nyc-route:"), func() { _ = client.Close() }, nil
}
