package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/osse101/LootForge_Go/internal/database"
	"github.com/osse101/LootForge_Go/internal/handler"
	"github.com/osse101/LootForge_Go/internal/logger"
	"github.com/osse101/LootForge_Go/internal/metrics"
	"github.com/osse101/LootForge_Go/internal/sse"
	"github.com/osse101/LootForge_Go/internal/stats"
	"github.com/osse101/LootForge_Go/internal/tracing"
)

// Dependencies are the services the HTTP surface exposes. DBPool,
// Rules and Items may be nil.
type Dependencies struct {
	DBPool     database.Pool
	Roller     handler.Roller
	Rules      handler.RuleResolver
	Items      handler.ItemResolver
	Stats      stats.Service
	Reloader   handler.Reloader
	Difficulty handler.DifficultySetter
	Events     *sse.Hub
}

type Server struct {
	httpServer *http.Server
	deps       Dependencies
}

// NewServer creates a new Server instance. Admin routes are mounted only
// when apiKey is set.
func NewServer(port int, apiKey string, trustedProxies []string, deps Dependencies) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           NewRouter(apiKey, trustedProxies, deps),
			ReadHeaderTimeout: ReadHeaderTimeout,
		},
		deps: deps,
	}
}

// NewRouter builds the route tree.
func NewRouter(apiKey string, trustedProxies []string, deps Dependencies) http.Handler {
	r := chi.NewRouter()

	// Chi middleware executes in order defined (outermost to innermost)
	detector := NewSuspiciousActivityDetector()

	r.Use(SecurityHeadersMiddleware())
	r.Use(SecurityLoggingMiddleware(trustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(MaxRequestBodyBytes))
	r.Use(metrics.Middleware)
	r.Use(tracing.Middleware)
	r.Use(loggingMiddleware)

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(deps.DBPool, deps.Roller))

	// Metrics endpoint (public, for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		lootHandler := handler.NewLootHandler(deps.Roller, deps.Rules, deps.Items)
		r.Route("/loot", func(r chi.Router) {
			r.Post("/roll", lootHandler.HandleRoll)
			r.Post("/multidrop", lootHandler.HandleMultiDrop)
			r.Post("/resolve", lootHandler.HandleResolve)
		})

		if deps.Events != nil {
			r.Get("/events", sse.Handler(deps.Events))
		}

		if deps.Stats != nil {
			statsHandler := handler.NewStatsHandler(deps.Stats, deps.Items)
			r.Route("/stats/{player}", func(r chi.Router) {
				r.Get("/", statsHandler.HandleGet)
				r.Delete("/", statsHandler.HandleReset)
				r.Post("/pickup", statsHandler.HandlePickup)
			})
		}
	})

	if apiKey != "" {
		r.Route("/admin", func(r chi.Router) {
			r.Use(AuthMiddleware(apiKey, trustedProxies, detector))
			if deps.Reloader != nil {
				r.Post("/reload", handler.HandleReload(deps.Reloader))
			}
			r.Get("/difficulty", handler.HandleGetDifficulty(deps.Difficulty))
			r.Put("/difficulty", handler.HandleSetDifficulty(deps.Difficulty))
		})
	}

	return r
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK, // default status
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

func (rw *responseWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		for _, prefix := range QuietPaths {
			if strings.HasPrefix(r.URL.Path, prefix) {
				next.ServeHTTP(w, r)
				return
			}
		}

		requestID := logger.GenerateRequestID()
		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)
		log := logger.FromContext(ctx)

		log.Info(LogMsgRequestStarted,
			LogFieldMethod, r.Method,
			LogFieldPath, r.URL.Path,
			LogFieldRemoteAddr, r.RemoteAddr,
			LogFieldContentLength, r.ContentLength,
			LogFieldUserAgent, r.UserAgent())

		// Sanitize headers for logging
		sanitizedHeaders := make(http.Header)
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderAPIKey) || strings.EqualFold(k, HeaderAuthorization) {
				sanitizedHeaders[k] = []string{RedactedValue}
			} else {
				sanitizedHeaders[k] = v
			}
		}
		log.Debug(LogMsgRequestHeaders, LogFieldHeaders, sanitizedHeaders)

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			LogFieldMethod, r.Method,
			LogFieldPath, r.URL.Path,
			LogFieldStatus, rw.statusCode,
			LogFieldDurationMs, duration.Milliseconds())
	})
}

// Start starts the server. It returns http.ErrServerClosed after Stop.
func (s *Server) Start() error {
	logger.Info(LogMsgServerStarting, LogFieldAddr, s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	logger.Info(LogMsgServerStopping)
	return s.httpServer.Shutdown(ctx)
}
