package httpapi

import (
	"net/http"
	"strings"

	"github.com/riskibarqy/chess-ratings/internal/platform/logging"
)

const defaultMetricsPath = "/metrics"

type RouterConfig struct {
	Logger             *logging.Logger
	CORSAllowedOrigins []string
	AdminToken         string
	// Metrics records per-route request counts and latencies. Optional.
	Metrics        MetricsRecorder
	MetricsHandler http.Handler
	MetricsPath    string
}

func (c RouterConfig) metricsPath() string {
	path := strings.TrimSpace(c.MetricsPath)
	if path == "" {
		return defaultMetricsPath
	}
	return path
}

func NewRouter(handler *Handler, cfg RouterConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler, cfg)
	registerPublicRoutes(mux, handler, cfg.Metrics)
	registerAdminRoutes(mux, handler, cfg.Metrics, cfg.AdminToken)

	return RequestTracing(RequestLogging(logger, CORS(cfg.CORSAllowedOrigins, recoverPanic(logger, mux))))
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
