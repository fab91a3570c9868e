package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"geo-bidder/internal/adapter/file"
	"geo-bidder/internal/adapter/http"
	"geo-bidder/internal/adapter/kafka"
	"geo-bidder/internal/adapter/source"
	"geo-bidder/internal/adapter/usecase"
	"geo-bidder/internal/config"
	"geo-bidder/internal/config/configs"
	"geo-bidder/internal/core/index"
	"geo-bidder/internal/core/port"
	"geo-bidder/internal/db"
	"geo-bidder/internal/metrics"
)

// main is the entry point of the geo-bidder service. It loads configuration,
// loads and validates the campaign catalog, builds the spatial index and
// budget ledger, then starts the HTTP server and the spend publisher. On
// receiving a termination signal it gracefully shuts everything down.
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := slog.New(cfg.Log.Handler(os.Stdout)).With(slog.String("env", cfg.Env))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err = run(ctx, cfg, logger); err != nil {
		logger.Error("geo-bidder stopped", slog.Any("error", err))
		cancel()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	var pool *pgxpool.Pool
	if cfg.Catalog.Source == configs.SourcePostgres {
		var err error
		if pool, err = openDatabase(ctx, cfg.Psql, logger); err != nil {
			return err
		}
		defer pool.Close()
	}

	src, err := source.New(ctx, cfg.Catalog, pool)
	if err != nil {
		return fmt.Errorf("catalog source: %w", err)
	}

	var (
		pub       port.SpendPublisher = port.NopSpendPublisher{}
		publisher *kafkaadapter.SpendPublisher
	)
	if cfg.Kafka.Enabled() {
		publisher = kafkaadapter.NewSpendPublisher(kafkaadapter.NewWriter(cfg.Kafka), cfg.Kafka, logger)
		pub = publisher
	}

	opts := index.Options{CellDegrees: cfg.Index.CellDegrees, MaxCellsPerCampaign: cfg.Index.MaxCellsPerGeofence}
	svc, err := usecase.LoadEngine(ctx, src, opts, pub, logger)
	if err != nil {
		return err
	}
	metrics.RegisterReservationConflicts(svc.ReservationConflicts)

	if cfg.WarmupFile != "" {
		requests, skipped, err := fileadapter.ReadBidRequests(cfg.WarmupFile)
		if err != nil {
			return fmt.Errorf("warm-up: %w", err)
		}
		if skipped > 0 {
			logger.Warn("warm-up requests skipped", slog.Int("skipped", skipped))
		}
		svc.Warmup(ctx, requests)
	}

	handler := httpadapter.NewHandler(svc, logger)
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:      handler.Router(),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	// the publisher outlives the server so that events of in-flight
	// requests are still flushed
	pubCtx, stopPublisher := context.WithCancel(context.Background())
	defer stopPublisher()

	g, gctx := errgroup.WithContext(ctx)
	if publisher != nil {
		g.Go(func() error { return publisher.Run(pubCtx) })
	}
	g.Go(func() error {
		logger.Info("server listening", slog.Int("port", int(cfg.HTTP.Port)))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()
		defer stopPublisher()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown: %w", err)
		}
		logger.Info("server gracefully stopped")
		return nil
	})
	return g.Wait()
}

// openDatabase connects to Postgres and, when configured, applies
// migrations and seeds the campaigns table from a catalog file.
func openDatabase(ctx context.Context, cfg configs.Postgres, logger *slog.Logger) (*pgxpool.Pool, error) {
	if cfg.RunMigrations {
		if err := db.Migrate(cfg.Addr.String()); err != nil {
			return nil, fmt.Errorf("migrate: %w", err)
		}
		logger.Info("migrations applied successfully")
	}

	pool, err := db.NewPostgresPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection: %w", err)
	}

	if cfg.SeedFile != "" {
		records, err := fileadapter.NewCatalogSource(cfg.SeedFile).Load(ctx)
		if err != nil {
			pool.Close()
			return nil, fmt.Errorf("seed: %w", err)
		}
		if err = db.Seed(ctx, pool, records); err != nil {
			pool.Close()
			return nil, fmt.Errorf("seed: %w", err)
		}
		logger.Info("catalog seeded", slog.Int("campaigns", len(records)))
	}
	return pool, nil
}
