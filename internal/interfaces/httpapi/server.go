package httpapi

import (
	"net/http"

	"github.com/riskibarqy/ftc-team-stats/internal/platform/id"
	"github.com/riskibarqy/ftc-team-stats/internal/platform/logging"
)

// RouterConfig wires the router. Metrics and MetricsHandler stay nil when
// metrics are disabled.
type RouterConfig struct {
	Logger             *logging.Logger
	CORSAllowedOrigins []string
	SwaggerEnabled     bool
	Metrics            HTTPObserver
	MetricsHandler     http.Handler
	IDs                id.Generator
}

func NewRouter(handler *Handler, cfg RouterConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	logger = logger.Named("http")
	ids := cfg.IDs
	if ids == nil {
		ids = id.NewUUIDGenerator()
	}

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler, cfg.SwaggerEnabled, cfg.MetricsHandler)
	registerStatsRoutes(mux, handler)

	inner := RequestMetrics(cfg.Metrics, mux)
	return RequestTracing(RequestID(ids, RequestLogging(logger, CORS(cfg.CORSAllowedOrigins, recoverPanic(logger, inner)))))
}

func recoverPanic(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := startSpan(r.Context(), "httpapi.recoverPanic")
		defer span.End()

		defer func() {
			if rec := recover(); rec != nil {
				logger.ErrorContext(ctx, "panic recovered", "panic", rec)
				writeInternalError(ctx, w)
			}
		}()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
