// internal/server/server.go
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"loanpath-api/internal/catalog"
	"loanpath-api/internal/common/auth"
	"loanpath-api/internal/common/config"
	"loanpath-api/internal/common/database"
	apierrors "loanpath-api/internal/common/errors"
	"loanpath-api/internal/common/logger"
	"loanpath-api/internal/common/observability"
	"loanpath-api/internal/notifications"
	"loanpath-api/internal/scoring"
	"loanpath-api/internal/store"
	"loanpath-api/pkg/registry"
)

// marketplaceResultLimit caps the offers returned by the ranking endpoint.
const marketplaceResultLimit = 10

// historyLimit caps the assessment history endpoint.
const historyLimit = 10

// Server owns the HTTP surface and its dependencies.
type Server struct {
	cfg      config.Config
	log      logger.Logger
	errors   *apierrors.ErrorHandler
	registry *registry.EndpointRegistry

	engine  *scoring.Engine
	catalog *catalog.Catalog

	users       *store.UserRepo
	profiles    *store.ProfileRepo
	assessments *store.AssessmentRepo
	scores      *store.ScoreCache

	jwt      *auth.JWTService
	hasher   *auth.PasswordHasher
	notifier *notifications.Notifier
	obs      *observability.Observability

	postgres *database.PostgresClient
	redis    *database.RedisClient

	httpServer *http.Server
}

// Deps carries everything the server needs, built in main.
type Deps struct {
	Config   config.Config
	Logger   logger.Logger
	Registry *registry.EndpointRegistry

	Engine  *scoring.Engine
	Catalog *catalog.Catalog

	Users       *store.UserRepo
	Profiles    *store.ProfileRepo
	Assessments *store.AssessmentRepo
	Scores      *store.ScoreCache

	JWT           *auth.JWTService
	Hasher        *auth.PasswordHasher
	Notifier      *notifications.Notifier
	Observability *observability.Observability

	Postgres *database.PostgresClient
	Redis    *database.RedisClient
}

func New(d Deps) *Server {
	s := &Server{
		cfg:         d.Config,
		log:         d.Logger,
		errors:      apierrors.NewErrorHandler(d.Logger),
		registry:    d.Registry,
		engine:      d.Engine,
		catalog:     d.Catalog,
		users:       d.Users,
		profiles:    d.Profiles,
		assessments: d.Assessments,
		scores:      d.Scores,
		jwt:         d.JWT,
		hasher:      d.Hasher,
		notifier:    d.Notifier,
		obs:         d.Observability,
		postgres:    d.Postgres,
		redis:       d.Redis,
	}

	s.httpServer = &http.Server{
		Addr:         d.Config.Server.Address,
		Handler:      s.Routes(),
		ReadTimeout:  time.Duration(d.Config.Server.ReadTimeout) * time.Millisecond,
		WriteTimeout: time.Duration(d.Config.Server.WriteTimeout) * time.Millisecond,
		IdleTimeout:  time.Duration(d.Config.Server.IdleTimeout) * time.Millisecond,
	}
	return s
}

// Routes builds the full handler chain.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/auth/register", s.handleRegister)
	mux.HandleFunc("POST /api/auth/login", s.handleLogin)
	mux.HandleFunc("GET /api/auth/profile", s.handleAuthProfile)

	mux.HandleFunc("PUT /api/profile", s.handleProfileUpsert)
	mux.HandleFunc("GET /api/profile", s.handleProfileGet)

	mux.HandleFunc("POST /api/loan/calculate", s.handleCalculate)
	mux.HandleFunc("POST /api/simulator/run", s.handleSimulate)
	mux.HandleFunc("POST /api/marketplace/rank", s.handleMarketplaceRank)
	mux.HandleFunc("GET /api/assessment/history", s.handleHistory)

	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())

	authMW := NewAuthMiddleware(s.jwt, s.errors, []string{
		"/api/auth/register",
		"/api/auth/login",
		"/api/health",
		"/metrics",
	})

	var handler http.Handler = authMW.Handler(mux)
	if s.cfg.RateLimit.Enabled {
		limiter := NewRateLimiter(
			s.cfg.RateLimit.RequestsPerIP,
			time.Duration(s.cfg.RateLimit.WindowSeconds)*time.Second,
			s.errors)
		handler = limiter.Handler(handler)
	}
	handler = MetricsMiddleware(handler)
	handler = LoggingMiddleware(s.log)(handler)
	return handler
}

// Start blocks serving HTTP until the listener fails or Shutdown runs.
func (s *Server) Start() error {
	s.log.Info("HTTP server listening", map[string]interface{}{
		"address": s.httpServer.Addr,
	})
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
