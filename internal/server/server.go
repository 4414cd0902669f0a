package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ibcplay/ibcplay/internal/auth"
	"github.com/ibcplay/ibcplay/internal/betting"
	"github.com/ibcplay/ibcplay/internal/casino"
	"github.com/ibcplay/ibcplay/internal/database"
	"github.com/ibcplay/ibcplay/internal/handler"
	"github.com/ibcplay/ibcplay/internal/ledger"
	"github.com/ibcplay/ibcplay/internal/logger"
	"github.com/ibcplay/ibcplay/internal/metrics"
	"github.com/ibcplay/ibcplay/internal/prices"
	"github.com/ibcplay/ibcplay/internal/user"
)

type Server struct {
	httpServer     *http.Server
	dbPool         database.Pool
	userService    user.Service
	ledgerService  ledger.Service
	casinoService  casino.Service
	bettingService betting.Service
	pricesService  prices.Service
}

// NewServer creates a new Server instance with all routes wired
func NewServer(port int, trustedProxies []string, tokens *auth.Manager, dbPool database.Pool,
	userService user.Service, ledgerService ledger.Service, casinoService casino.Service,
	bettingService betting.Service, pricesService prices.Service) *Server {

	r := chi.NewRouter()

	// Middleware stack
	// Chi middleware executes in order defined (outermost to innermost)
	limiter := NewRateLimiter()

	r.Use(SecurityHeadersMiddleware())
	r.Use(RateLimitMiddleware(trustedProxies, limiter))
	r.Use(RequestSizeLimitMiddleware(MaxRequestBodyBytes))
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(dbPool))

	// Version endpoint (public, for deployment verification)
	r.Get("/version", handler.HandleVersion())

	// Metrics endpoint (public, for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Public auth routes
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", handler.HandleRegisterUser(userService, tokens))
			r.Post("/login", handler.HandleLogin(userService, tokens))
		})

		// Everything below requires a valid access token
		r.Group(func(r chi.Router) {
			r.Use(tokens.Middleware)

			r.Get("/me", handler.HandleGetMe(userService))
			r.Get("/prices", handler.HandleGetPrices(pricesService))

			r.Route("/wallet", func(r chi.Router) {
				r.Get("/", handler.HandleGetBalances(ledgerService))
				r.Get("/balances", handler.HandleGetBalances(ledgerService))
				r.Post("/deposit", handler.HandleDeposit(ledgerService))
				r.Post("/withdraw", handler.HandleWithdraw(ledgerService))
				r.Post("/convert", handler.HandleConvert(ledgerService))
			})

			r.Get("/transactions", handler.HandleListTransactions(ledgerService))

			casinoHandler := handler.NewCasinoHandler(casinoService)
			r.Route("/casino", func(r chi.Router) {
				r.Get("/games", casinoHandler.HandleListGames)
				r.Post("/play", casinoHandler.HandlePlay)
				r.Get("/history", casinoHandler.HandleHistory)
				r.Get("/stats", casinoHandler.HandleStats)
			})

			betHandler := handler.NewBetHandler(bettingService)
			r.Route("/bets", func(r chi.Router) {
				r.Post("/", betHandler.HandlePlaceBet)
				r.Get("/history", betHandler.HandleBetHistory)
				r.Get("/{betID}", betHandler.HandleGetBet)
				r.Post("/{betID}/resolve", betHandler.HandleResolveBet)
			})
		})
	})

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           r,
			ReadHeaderTimeout: ReadHeaderTimeout,
		},
		dbPool:         dbPool,
		userService:    userService,
		ledgerService:  ledgerService,
		casinoService:  casinoService,
		bettingService: bettingService,
		pricesService:  pricesService,
	}
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
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
		statusCode:     http.StatusOK,
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

		// Skip logging for health check endpoints and metrics
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
			if strings.EqualFold(k, HeaderAuthorization) {
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
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
