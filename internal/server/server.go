package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/fancards/fancards-go/internal/burn"
	"github.com/fancards/fancards-go/internal/card"
	"github.com/fancards/fancards-go/internal/database"
	"github.com/fancards/fancards-go/internal/drop"
	"github.com/fancards/fancards-go/internal/economy"
	"github.com/fancards/fancards-go/internal/handler"
	"github.com/fancards/fancards-go/internal/logger"
	"github.com/fancards/fancards-go/internal/metrics"
	"github.com/fancards/fancards-go/internal/progression"
	"github.com/fancards/fancards-go/internal/user"
)

// Services bundles everything the HTTP layer depends on
type Services struct {
	DBPool      database.Pool
	Users       user.Service
	Economy     economy.Service
	Progression progression.Service
	Drops       drop.Service
	Burns       burn.Service
	Collection  card.CollectionService
}

type Server struct {
	httpServer *http.Server
}

// NewServer creates a new Server instance
func NewServer(port int, apiKey string, trustedProxies []string, svcs Services) *Server {
	r := chi.NewRouter()

	// Middleware stack
	// Chi middleware executes in order defined (outermost to innermost)
	detector := NewSuspiciousActivityDetector()

	r.Use(SecurityHeadersMiddleware())
	r.Use(AuthMiddleware(apiKey, trustedProxies, detector))
	r.Use(SecurityLoggingMiddleware(trustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(MaxRequestBodyBytes))
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(svcs.DBPool))

	// Version endpoint (public, for deployment verification)
	r.Get("/version", handler.HandleVersion())

	// Metrics endpoint (public, for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/user", func(r chi.Router) {
			r.Post("/register", handler.HandleRegisterUser(svcs.Users))
			r.Get("/get", handler.HandleGetUser(svcs.Users))
			r.Get("/capacity", handler.HandleGetCapacity(svcs.Users))
			r.Post("/backpack", handler.HandleAddBackpackLevel(svcs.Users))
			r.Get("/level", handler.HandleGetLevel(svcs.Users, svcs.Progression))
		})

		dropHandler := handler.NewDropHandler(svcs.Drops)
		r.Route("/drop", func(r chi.Router) {
			r.Post("/start", dropHandler.HandleStartDrop)
			r.Post("/claim", dropHandler.HandleClaim)
			r.Get("/get", dropHandler.HandleGetDrop)
		})

		cardHandler := handler.NewCardHandler(svcs.Collection)
		burnHandler := handler.NewBurnHandler(svcs.Burns)
		r.Route("/card", func(r chi.Router) {
			r.Get("/collection", cardHandler.HandleGetCollection)
			r.Get("/view", cardHandler.HandleViewCard)
			r.Post("/lock", cardHandler.HandleSetCardLock)

			r.Route("/burn", func(r chi.Router) {
				r.Post("/preview", burnHandler.HandlePreview)
				r.Post("/confirm", burnHandler.HandleConfirm)
			})
		})

		economyHandler := handler.NewEconomyHandler(svcs.Economy, svcs.Users)
		r.Route("/economy", func(r chi.Router) {
			r.Get("/balance", economyHandler.HandleGetBalance)
			r.Get("/inventory", economyHandler.HandleGetInventory)
		})

		// Admin routes
		r.Route("/admin", func(r chi.Router) {
			r.Route("/economy", func(r chi.Router) {
				r.Post("/grant-currency", economyHandler.HandleGrantCurrency)
				r.Post("/grant-item", economyHandler.HandleGrantItem)
			})
		})
	})

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
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

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Skip logging for health check endpoints and metrics.
		// Use HasPrefix to catch variations (e.g. /healthz/)
		if strings.HasPrefix(r.URL.Path, "/healthz") ||
			strings.HasPrefix(r.URL.Path, "/readyz") ||
			strings.HasPrefix(r.URL.Path, "/metrics") {
			next.ServeHTTP(w, r)
			return
		}

		requestID := logger.GenerateRequestID()
		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)

		log := logger.FromContext(ctx)

		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		// Sanitize headers for logging
		sanitizedHeaders := make(http.Header)
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderAPIKey) || strings.EqualFold(k, HeaderAuthorization) {
				sanitizedHeaders[k] = []string{RedactedValue}
			} else {
				sanitizedHeaders[k] = v
			}
		}
		log.Debug(LogMsgRequestHeaders, "headers", sanitizedHeaders)

		rw := newResponseWriter(w)

		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds(),
			"duration", duration)
	})
}

// Start starts the server
func (s *Server) Start() error {
	logger.Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
