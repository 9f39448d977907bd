// Package bootstrap assembles the service graph from configuration.
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/risklens/risklens/internal/config"
	"github.com/risklens/risklens/internal/core/ports"
	"github.com/risklens/risklens/internal/core/usecase"
	"github.com/risklens/risklens/internal/infrastructure/auth"
	"github.com/risklens/risklens/internal/infrastructure/billing"
	"github.com/risklens/risklens/internal/infrastructure/kv/memory"
	"github.com/risklens/risklens/internal/infrastructure/kv/natskv"
	"github.com/risklens/risklens/internal/infrastructure/resilience"
	"github.com/risklens/risklens/internal/infrastructure/summarizer/huggingface"
	"github.com/risklens/risklens/internal/observability/metrics"
)

// Bucket TTLs. Cache and rate windows come from config; usage counters
// are kept past the month they bill for, API usage counters for 30 days
// and account records forever.
const (
	usageTTL    = 62 * 24 * time.Hour
	apiUsageTTL = 30 * 24 * time.Hour
)

type App struct {
	Config config.Config

	AnalyzeUC *usecase.AnalyzeUseCase
	UsageUC   *usecase.UsageUseCase
	Resolver  *auth.Resolver
	Metrics   *metrics.HTTPServerMetrics

	closeFn func()
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	stores, closeFn, err := openStores(ctx, cfg)
	if err != nil {
		return nil, err
	}

	serverMetrics := metrics.NewHTTPServerMetrics("api")

	ledger := billing.NewLedger(stores.accounts, stores.usage)
	tracker := billing.NewAPIUsageTracker(stores.apiUsage)

	summarizer := huggingface.New(huggingface.Config{
		BaseURL:           cfg.HuggingFaceURL,
		Model:             cfg.HuggingFaceModel,
		Token:             cfg.HuggingFaceToken,
		Timeout:           time.Duration(cfg.SummarizerTimeout) * time.Second,
		RequestsPerMinute: cfg.SummarizerRPM,
		Breaker:           resilience.New("huggingface", resilience.DefaultConfig(), huggingface.ClassifyError),
		Reporter:          tracker,
	})

	gate := usecase.NewGate(stores.rates, ledger, cfg.RateLimitPerHour)
	analyzeUC := usecase.NewAnalyzeUseCase(stores.cache, gate, summarizer, ledger, serverMetrics)
	usageUC := usecase.NewUsageUseCase(ledger)
	resolver := auth.NewResolver(cfg.JWTSecret, auth.NewKeyStore(stores.accounts))

	return &App{
		Config:    cfg,
		AnalyzeUC: analyzeUC,
		UsageUC:   usageUC,
		Resolver:  resolver,
		Metrics:   serverMetrics,
		closeFn:   closeFn,
	}, nil
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}

type storeSet struct {
	cache    ports.KeyValueStore
	rates    ports.KeyValueStore
	usage    ports.KeyValueStore
	accounts ports.KeyValueStore
	apiUsage ports.KeyValueStore
}

func openStores(ctx context.Context, cfg config.Config) (storeSet, func(), error) {
	cacheTTL := time.Duration(cfg.CacheTTLSeconds) * time.Second
	rateTTL := time.Duration(cfg.RateTTLSeconds) * time.Second

	if cfg.KVMode == "memory" {
		return storeSet{
			cache:    memory.New(cacheTTL),
			rates:    memory.New(rateTTL),
			usage:    memory.New(usageTTL),
			accounts: memory.New(0),
			apiUsage: memory.New(apiUsageTTL),
		}, func() {}, nil
	}

	conn, err := natskv.Connect(cfg.NATSURL, natskv.Options{})
	if err != nil {
		return storeSet{}, nil, fmt.Errorf("connect kv backend: %w", err)
	}

	open := func(name string, ttl time.Duration) (ports.KeyValueStore, error) {
		return natskv.OpenBucket(ctx, conn, name, ttl)
	}

	var stores storeSet
	for _, b := range []struct {
		name string
		ttl  time.Duration
		dst  *ports.KeyValueStore
	}{
		{"risklens_analysis_cache", cacheTTL, &stores.cache},
		{"risklens_rate_limits", rateTTL, &stores.rates},
		{"risklens_usage", usageTTL, &stores.usage},
		{"risklens_accounts", 0, &stores.accounts},
		{"risklens_api_usage", apiUsageTTL, &stores.apiUsage},
	} {
		store, err := open(b.name, b.ttl)
		if err != nil {
			conn.Close()
			return storeSet{}, nil, fmt.Errorf("open bucket %s: %w", b.name, err)
		}
		*b.dst = store
	}

	return stores, conn.Close, nil
}
