package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/lexiqai/ttsdesk/internal/audio"
	"github.com/lexiqai/ttsdesk/internal/catalog"
	"github.com/lexiqai/ttsdesk/internal/config"
	"github.com/lexiqai/ttsdesk/internal/converter"
	"github.com/lexiqai/ttsdesk/internal/observability"
	"github.com/lexiqai/ttsdesk/internal/tts"
)

// app bundles the components shared by every subcommand
type app struct {
	cfg     *config.Config
	catalog *catalog.Catalog
	store   *audio.Store
	worker  *converter.Worker
	logger  zerolog.Logger
}

func catalogSource(cfg *config.Config) catalog.Source {
	if cfg.CatalogURL != "" {
		return catalog.NewHTTPSource(cfg.CatalogURL)
	}
	return catalog.BuiltinSource{}
}

// newApp loads the language catalog and wires the conversion worker
func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	logger := observability.GetLogger()

	cat, err := catalog.Load(ctx, catalogSource(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to load languages: %w", err)
	}
	observability.SetCatalogSize(cat.Len())

	synth := tts.NewGoogleClient(cfg.TTSTLD, cfg.TTSBaseURL)
	store := audio.NewStore(cfg.OutputDir, synth.Format())

	// The output directory is created at startup as well as on first save.
	if err := store.EnsureDir(); err != nil {
		logger.Warn().Err(err).Str("dir", store.Dir()).Msg("Output directory not available yet")
	}

	logger.Info().
		Int("languages", cat.Len()).
		Str("endpoint", synth.Endpoint()).
		Str("output_dir", store.Dir()).
		Msg("Components initialized")

	return &app{
		cfg:     cfg,
		catalog: cat,
		store:   store,
		worker:  converter.NewWorker(synth, store, cat),
		logger:  logger,
	}, nil
}

// defaultLanguage returns the configured language if present, else the catalog default
func (a *app) defaultLanguage() int {
	return a.catalog.Preferred(a.cfg.DefaultLanguage)
}

// startMetricsServer serves /metrics, /health and /ready until ctx is done
func (a *app) startMetricsServer(ctx context.Context) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", observability.HealthCheckHandler())
	mux.HandleFunc("/ready", observability.ReadinessHandler(map[string]observability.HealthCheckFunc{
		"catalog": func(ctx context.Context) (bool, error) {
			return a.catalog.Len() > 0, nil
		},
		"output": func(ctx context.Context) (bool, error) {
			if err := a.store.Writable(); err != nil {
				return false, err
			}
			return true, nil
		},
	}))

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", a.cfg.MetricsPort),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		a.logger.Info().Str("port", a.cfg.MetricsPort).Msg("Metrics server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.logger.Error().Err(err).Msg("Metrics server failed")
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			a.logger.Error().Err(err).Msg("Metrics server forced to shutdown")
		}
	}()
}
