package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"ragclient/internal/config"
	"ragclient/internal/domain"
	"ragclient/internal/history"
	"ragclient/internal/kvstore"
	"ragclient/internal/kvstore/bolt"
	"ragclient/internal/kvstore/memory"
	"ragclient/internal/metrics"
	"ragclient/internal/pager"
	"ragclient/internal/prefs"
	"ragclient/internal/searchapi"
	"ragclient/internal/service"
	"ragclient/internal/suggest"
)

// App holds the assembled components for one process.
type App struct {
	Config  *config.AppConfig
	Logger  *zap.Logger
	Store   kvstore.Storage
	History *history.Store
	Suggest *suggest.Engine
	Theme   *prefs.Store
	Client  *searchapi.Client
	Query   *service.QueryService
	Length  domain.SummaryLength

	registry *prometheus.Registry
}

// NewApp wires every component from cfg. ephemeral keeps preferences and
// history in memory regardless of storage.type.
func NewApp(cfg *config.AppConfig, logger *zap.Logger, ephemeral bool) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var kv kvstore.Storage
	switch {
	case ephemeral || cfg.Storage.Type == "memory":
		kv = memory.NewStorage()
	case cfg.Storage.Type == "bolt":
		st, err := bolt.Open(cfg.Storage.Path)
		if err != nil {
			return nil, err
		}
		kv = st
	default:
		return nil, fmt.Errorf("unknown storage type: %s", cfg.Storage.Type)
	}

	length, err := domain.ParseSummaryLength(cfg.Summary.DefaultLength)
	if err != nil {
		kv.Close()
		return nil, err
	}

	base, err := searchapi.ResolveBaseURL(searchapi.Endpoint{
		BaseURL:     cfg.API.BaseURL,
		Origin:      cfg.API.Origin,
		PagesSuffix: cfg.API.PagesSuffix,
		DevAddress:  cfg.API.DevAddress,
	})
	if err != nil {
		kv.Close()
		return nil, err
	}

	app := &App{Config: cfg, Logger: logger, Store: kv, Length: length}

	opts := []searchapi.Option{searchapi.WithLogger(logger)}
	if cfg.Metrics.Enabled {
		app.registry = prometheus.NewRegistry()
		m, err := metrics.NewAPI(app.registry)
		if err != nil {
			kv.Close()
			return nil, fmt.Errorf("register metrics: %w", err)
		}
		opts = append(opts, searchapi.WithMetrics(m))
	}

	app.Client = searchapi.NewClient(searchapi.Config{
		BaseURL: base,
		Timeout: time.Duration(cfg.API.TimeoutSecs) * time.Second,
	}, opts...)
	app.History = history.New(kv, cfg.History.Capacity, logger)
	app.Suggest = suggest.New(cfg.Suggestions.Curated, app.History, cfg.Suggestions.Limit)
	app.Theme = prefs.New(kv, prefs.Theme(cfg.UI.Theme), logger)
	app.Query = service.NewQueryService(app.Client, app.History, pager.New(cfg.Pager.PageSize), cfg.API.TopK, logger)

	logger.Debug("app assembled",
		zap.String("base_url", base),
		zap.String("storage", storageKind(cfg, ephemeral)),
		zap.Bool("metrics", cfg.Metrics.Enabled))
	return app, nil
}

// Close flushes metrics and releases the store.
func (a *App) Close() error {
	var errs []error
	if a.registry != nil && a.Config.Metrics.Textfile != "" {
		if err := writeMetrics(a.Config.Metrics.Textfile, a.registry); err != nil {
			errs = append(errs, err)
		}
	}
	if err := a.Store.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close store: %w", err))
	}
	_ = a.Logger.Sync()
	return errors.Join(errs...)
}

func writeMetrics(path string, g prometheus.Gatherer) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create metrics directory: %w", err)
	}
	if err := prometheus.WriteToTextfile(path, g); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}
	return nil
}

func storageKind(cfg *config.AppConfig, ephemeral bool) string {
	if ephemeral {
		return "memory"
	}
	return cfg.Storage.Type
}
