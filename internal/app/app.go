package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/riskibarqy/chess-ratings/internal/config"
	"github.com/riskibarqy/chess-ratings/internal/infrastructure/fide"
	"github.com/riskibarqy/chess-ratings/internal/interfaces/httpapi"
	"github.com/riskibarqy/chess-ratings/internal/observability"
	basecache "github.com/riskibarqy/chess-ratings/internal/platform/cache"
	"github.com/riskibarqy/chess-ratings/internal/platform/logging"
	"github.com/riskibarqy/chess-ratings/internal/usecase"
)

// NewHTTPServer wires storage, use cases and the HTTP router. The returned
// cleanup releases storage and must be called after the server stops.
func NewHTTPServer(ctx context.Context, cfg config.Config, logger *logging.Logger) (*http.Server, func() error, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	var metrics *observability.Metrics
	if cfg.MetricsEnabled {
		metrics = observability.NewMetrics(observability.WithRuntimeCollectors())
	}

	var cacheObserver basecache.Observer
	if metrics != nil {
		cacheObserver = metrics.ObserveCacheLookup
	}
	repos, err := newRepositories(ctx, cfg, logger, cacheObserver)
	if err != nil {
		return nil, nil, err
	}

	pages := usecase.PageConfig{
		DefaultPerPage: cfg.DefaultPerPage,
		MaxPerPage:     cfg.MaxPerPage,
	}
	tournamentCfg := usecase.TournamentServiceConfig{
		Pages:  pages,
		Logger: logger,
	}

	if cfg.FideEnabled {
		clientCfg := fide.ClientConfig{
			BaseURL:        cfg.FideBaseURL,
			Timeout:        cfg.FideTimeout,
			MaxRetries:     cfg.FideMaxRetries,
			Logger:         logger,
			CircuitBreaker: cfg.FideCircuit,
		}
		syncCfg := fide.SynchronizerConfig{
			Workers: cfg.FideSyncWorkers,
			Logger:  logger,
		}
		if metrics != nil {
			clientCfg.OnBreakerStateChange = metrics.ObserveBreakerState
			syncCfg.Observer = metrics.ObserveFideSync
		}

		client := fide.NewClient(clientCfg)
		tournamentCfg.Synchronizer = fide.NewSynchronizer(client, repos.players, repos.tournaments, syncCfg)
		logger.Info("fide sync enabled", "base_url", cfg.FideBaseURL, "workers", cfg.FideSyncWorkers)
	}

	playerSvc := usecase.NewPlayerService(repos.players, pages)
	tournamentSvc := usecase.NewTournamentService(repos.tournaments, repos.players, repos.results, tournamentCfg)

	handler := httpapi.NewHandler(playerSvc, tournamentSvc, httpapi.HandlerConfig{
		DefaultPerPage: cfg.DefaultPerPage,
		MaxSamples:     cfg.FideMatchMaxSamples,
		Logger:         logger,
	})

	routerCfg := httpapi.RouterConfig{
		Logger:             logger,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		AdminToken:         cfg.AdminToken,
		MetricsPath:        cfg.MetricsPath,
	}
	if metrics != nil {
		routerCfg.Metrics = metrics
		routerCfg.MetricsHandler = metrics.Handler()
	}

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      httpapi.NewRouter(handler, routerCfg),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return server, repos.close, nil
}
