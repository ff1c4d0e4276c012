// Package server собирает HTTP-шлюз: маршруты API, WebSocket и /metrics.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/iudanet/deltasync/internal/server/handlers"
	"github.com/iudanet/deltasync/internal/server/middleware"
)

// Пути, которые не логируются и не требуют токена
const (
	healthPath  = "/api/v1/health"
	metricsPath = "/metrics"
)

// Service операции, которые шлюз публикует
type Service interface {
	handlers.SyncService
	handlers.QualityService
}

// Options параметры маршрутизатора
type Options struct {
	Gatherer   prometheus.Gatherer // nil отключает /metrics
	Version    string
	JWTSecret  []byte
	RateLimit  int
	RateWindow time.Duration
}

// NewRouter builds the gateway handler. ws serves /ws and may be nil.
func NewRouter(svc Service, ws http.Handler, logger *slog.Logger, opts Options) http.Handler {
	health := handlers.NewHealthHandler(logger, opts.Version)
	syncH := handlers.NewSyncHandler(logger, svc)
	qualityH := handlers.NewQualityHandler(logger, svc)

	mux := http.NewServeMux()

	mux.HandleFunc("GET "+healthPath, health.Health)
	mux.HandleFunc("GET /api/v1/health/system", qualityH.SystemHealth)

	mux.HandleFunc("POST /api/v1/clients", syncH.InitializeClient)
	mux.HandleFunc("DELETE /api/v1/clients/{clientID}", syncH.CleanupClient)
	mux.HandleFunc("POST /api/v1/sync/delta", syncH.Delta)
	mux.HandleFunc("POST /api/v1/sync/batch", syncH.Batch)
	mux.HandleFunc("POST /api/v1/broadcast", syncH.Broadcast)
	mux.HandleFunc("POST /api/v1/entities/invalidate", syncH.Invalidate)
	mux.HandleFunc("POST /api/v1/conflicts/resolve", syncH.ResolveConflict)

	mux.HandleFunc("POST /api/v1/quality/latency", qualityH.Latency)
	mux.HandleFunc("POST /api/v1/quality/packet-loss", qualityH.PacketLoss)
	mux.HandleFunc("POST /api/v1/quality/bandwidth", qualityH.Bandwidth)
	mux.HandleFunc("POST /api/v1/quality/fallback/deactivate", qualityH.DeactivateFallback)
	mux.HandleFunc("GET /api/v1/quality/{clientID}", qualityH.Metrics)
	mux.HandleFunc("GET /api/v1/quality/{clientID}/report", qualityH.Report)
	mux.HandleFunc("GET /api/v1/quality/{clientID}/fallback", qualityH.FallbackHistory)
	mux.HandleFunc("GET /api/v1/alerts", qualityH.Alerts)

	if ws != nil {
		mux.Handle("GET /ws", wsIdentity(ws))
	}
	if opts.Gatherer != nil {
		mux.Handle("GET "+metricsPath, promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}))
	}

	// порядок: recovery снаружи, identity до rate limit (лимит по клиенту)
	var h http.Handler = mux
	h = middleware.RateLimitMiddleware(opts.RateLimit, opts.RateWindow, logger)(h)
	h = middleware.IdentityMiddleware(logger, opts.JWTSecret, []string{healthPath, metricsPath})(h)
	h = middleware.LoggingWithSkip(logger, []string{healthPath, metricsPath})(h)
	h = middleware.RecoveryMiddleware(logger)(h)
	return h
}

// wsIdentity не дает подключиться к каналу чужого клиента
func wsIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if identity, ok := handlers.GetClientID(r.Context()); ok && identity != r.URL.Query().Get("client_id") {
			http.Error(w, "client id does not match token", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Server HTTP-сервер с graceful shutdown
type Server struct {
	http            *http.Server
	logger          *slog.Logger
	shutdownTimeout time.Duration
}

// Config параметры HTTP-сервера
type Config struct {
	Addr            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// New creates a server for the handler
func New(cfg Config, handler http.Handler, logger *slog.Logger) *Server {
	return &Server{
		http: &http.Server{
			Addr:              cfg.Addr,
			Handler:           handler,
			ReadHeaderTimeout: cfg.ReadTimeout,
			ReadTimeout:       cfg.ReadTimeout,
			WriteTimeout:      cfg.WriteTimeout,
		},
		logger:          logger,
		shutdownTimeout: cfg.ShutdownTimeout,
	}
}

// Run serves until ctx is canceled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.http.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.http.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is canceled
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP server listening", "addr", ln.Addr().String())
		errCh <- s.http.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server failed: %w", err)
	case <-ctx.Done():
	}

	timeout := s.shutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	s.logger.Info("Shutting down HTTP server")
	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown http server: %w", err)
	}
	return nil
}
