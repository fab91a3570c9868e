// Command bidreplay posts a recorded request file to a running bidder and
// prints a conformance and latency report. It exits non-zero when any
// response breaks the protocol.
package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v11"

	"geo-bidder/internal/config/configs"
	"geo-bidder/internal/core/port"
	"geo-bidder/internal/replay"
)

type config struct {
	URL         string         `env:"REPLAY_URL" envDefault:"http://localhost:8080"`
	Requests    string         `env:"REPLAY_REQUESTS" envDefault:"data/test_requests.json"`
	Concurrency int            `env:"REPLAY_CONCURRENCY" envDefault:"32"`
	Timeout     time.Duration  `env:"REPLAY_TIMEOUT" envDefault:"1s"`
	Log         configs.Logger `envPrefix:"LOG_"`
}

func main() {
	var cfg config
	if err := env.Parse(&cfg); err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}
	logger := slog.New(cfg.Log.Handler(os.Stdout))

	data, err := os.ReadFile(cfg.Requests)
	if err != nil {
		logger.Error("read requests", slog.Any("error", err))
		os.Exit(1)
	}
	var requests []port.BidRequestPayload
	if err = json.Unmarshal(data, &requests); err != nil {
		logger.Error("decode requests", slog.String("file", cfg.Requests), slog.Any("error", err))
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	client := replay.NewClient(replay.Options{
		BaseURL:     cfg.URL,
		Concurrency: cfg.Concurrency,
		Timeout:     cfg.Timeout,
	}, nil)
	start := time.Now()
	report, err := client.Run(ctx, requests)
	if err != nil {
		logger.Error("replay aborted", slog.Any("error", err))
		os.Exit(1)
	}

	for _, f := range report.Failures {
		logger.Warn("non-conformant response", slog.String("request_id", f.RequestID), slog.String("reason", f.Reason))
	}
	logger.Info("replay finished",
		slog.Int("requests", report.Total),
		slog.Int("bids", report.Bids),
		slog.Int("no_bids", report.NoBids),
		slog.Int("failures", len(report.Failures)),
		slog.Float64("spend", report.Spend),
		slog.Duration("p50", report.P50),
		slog.Duration("p95", report.P95),
		slog.Duration("p99", report.P99),
		slog.Duration("max", report.Max),
		slog.Duration("elapsed", time.Since(start)),
	)
	if !report.Conformant() {
		os.Exit(1)
	}
}
