package app

import (
	"fmt"
	"net/http"
	"time"

	"github.com/riskibarqy/ftc-team-stats/external/ftcscout"
	"github.com/riskibarqy/ftc-team-stats/internal/config"
	"github.com/riskibarqy/ftc-team-stats/internal/domain/competition"
	"github.com/riskibarqy/ftc-team-stats/internal/interfaces/httpapi"
	"github.com/riskibarqy/ftc-team-stats/internal/observability"
	"github.com/riskibarqy/ftc-team-stats/internal/platform/id"
	"github.com/riskibarqy/ftc-team-stats/internal/platform/logging"
	"github.com/riskibarqy/ftc-team-stats/internal/platform/resilience"
	"github.com/riskibarqy/ftc-team-stats/internal/presentation"
	"github.com/riskibarqy/ftc-team-stats/internal/usecase"
)

// Components is the wired service graph shared by the HTTP server and the
// CLI. Metrics is nil when METRICS_ENABLED=false.
type Components struct {
	Team     competition.TeamIdentity
	Provider *ftcscout.Client
	Stats    *usecase.StatsService
	Charts   presentation.ChartRenderer
	Renderer *presentation.Renderer
	Metrics  *observability.Metrics
}

func NewComponents(cfg config.Config, logger *logging.Logger) (Components, error) {
	if logger == nil {
		logger = logging.Default()
	}

	var metrics *observability.Metrics
	if cfg.MetricsEnabled {
		metrics = observability.NewMetrics()
	}

	team := competition.NewTeamIdentity(cfg.TeamNumber, cfg.Season, time.Now().UTC())

	clientCfg := ftcscout.ClientConfig{
		Endpoint:  cfg.FTCScoutGraphQLURL,
		Timeout:   cfg.FTCScoutTimeout,
		Transport: cfg.FTCScoutTransport,
		Logger:    logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.FTCScoutCircuitEnabled,
			FailureThreshold: cfg.FTCScoutCircuitFailures,
			OpenTimeout:      cfg.FTCScoutCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.FTCScoutCircuitHalfOpenMax,
		},
	}
	statsCfg := usecase.StatsServiceConfig{
		Team:               team,
		TeamPageURL:        cfg.TeamPageURL(),
		LoadTimeout:        cfg.StatsLoadTimeout,
		MatchResultWorkers: cfg.StatsMatchResultWorkers,
		Logger:             logger,
	}
	if metrics != nil {
		clientCfg.Observer = metrics
		statsCfg.Observer = metrics
	}

	provider := ftcscout.NewClient(clientCfg)
	stats := usecase.NewStatsService(provider, statsCfg)

	renderer, err := presentation.NewRenderer()
	if err != nil {
		return Components{}, fmt.Errorf("build renderer: %w", err)
	}

	return Components{
		Team:     team,
		Provider: provider,
		Stats:    stats,
		Charts:   presentation.NewChartJSRenderer(),
		Renderer: renderer,
		Metrics:  metrics,
	}, nil
}

func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, error) {
	components, err := NewComponents(cfg, logger)
	if err != nil {
		return nil, err
	}

	handler := httpapi.NewHandler(components.Stats, components.Renderer, components.Charts, logger)
	routerCfg := httpapi.RouterConfig{
		Logger:             logger,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		SwaggerEnabled:     cfg.SwaggerEnabled,
		IDs:                id.NewUUIDGenerator(),
	}
	if components.Metrics != nil {
		routerCfg.Metrics = components.Metrics
		routerCfg.MetricsHandler = components.Metrics.Handler()
	}

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      httpapi.NewRouter(handler, routerCfg),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, nil
}
