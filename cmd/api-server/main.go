// cmd/api-server/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"loanpath-api/internal/catalog"
	"loanpath-api/internal/common/auth"
	"loanpath-api/internal/common/config"
	"loanpath-api/internal/common/database"
	"loanpath-api/internal/common/logger"
	"loanpath-api/internal/common/observability"
	"loanpath-api/internal/notifications"
	"loanpath-api/internal/scoring"
	"loanpath-api/internal/server"
	"loanpath-api/internal/store"
	"loanpath-api/pkg/registry"
)

// retryWithBackoff attempts an operation with exponential backoff.
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log logger.Logger, operationName string) error {
	delay := initialDelay
	var err error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		if err = operation(); err == nil {
			return nil
		}
		if attempt < maxRetries {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName), map[string]interface{}{
				"attempt": attempt,
				"delay":   delay.String(),
				"error":   err.Error(),
			})
			time.Sleep(delay)
			delay *= 2
		}
	}
	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewStructured(cfg.Logging.Level, cfg.Logging.Format)
	log.Info("Starting loanpath-api", map[string]interface{}{
		"version":     cfg.App.Version,
		"environment": cfg.App.Environment,
	})

	ctx := context.Background()

	// --- PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		client, err := database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := client.Ping(pingCtx); err != nil {
			client.Close()
			return err
		}
		pg = client
		return nil
	}, 5, 2*time.Second, log, "PostgreSQL connection")
	if err != nil {
		log.Error("PostgreSQL unavailable", map[string]interface{}{"error": err.Error()})
		os.Exit(1)
	}
	defer pg.Close()

	// --- Redis with retry ---
	var rdb *database.RedisClient
	err = retryWithBackoff(func() error {
		client, err := database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := client.Ping(pingCtx); err != nil {
			client.Close()
			return err
		}
		rdb = client
		return nil
	}, 5, 2*time.Second, log, "Redis connection")
	if err != nil {
		log.Error("Redis unavailable", map[string]interface{}{"error": err.Error()})
		os.Exit(1)
	}
	defer rdb.Close()

	// --- Stores and schema ---
	users := store.NewUserRepo(pg)
	if err := users.EnsureSchema(ctx); err != nil {
		log.Error("Schema setup failed", map[string]interface{}{"error": err.Error()})
		os.Exit(1)
	}
	profiles := store.NewProfileRepo(pg)
	assessments := store.NewAssessmentRepo(pg)
	scores := store.NewScoreCache(rdb, time.Duration(cfg.Database.Redis.ScoreCacheTTL)*time.Second)

	// --- Offer catalog, loaded before the listener opens ---
	cat := catalog.New(cfg.Catalog.CSVPath, log)
	if err := cat.Load(); err != nil {
		log.Error("Offer catalog load failed", map[string]interface{}{"error": err.Error()})
		os.Exit(1)
	}

	// --- Endpoint schema registry ---
	reg := registry.Default()
	if cfg.Catalog.RegistryPath != "" {
		loaded, err := registry.Load(cfg.Catalog.RegistryPath)
		if err != nil {
			log.Error("Endpoint registry load failed", map[string]interface{}{
				"path":  cfg.Catalog.RegistryPath,
				"error": err.Error(),
			})
			os.Exit(1)
		}
		reg = loaded
	}

	// --- Auth ---
	jwtSvc, err := auth.NewJWTService(auth.JWTConfig{
		Secret:     cfg.Auth.JWTSecret,
		Issuer:     cfg.Auth.JWTIssuer,
		Expiration: time.Duration(cfg.Auth.TokenTTLHours) * time.Hour,
	})
	if err != nil {
		log.Error("JWT setup failed", map[string]interface{}{"error": err.Error()})
		os.Exit(1)
	}
	hasher := auth.NewPasswordHasher(cfg.Auth.BcryptCost)

	// --- Notifications (optional channels) ---
	notifier, err := notifications.New(ctx, cfg.Notifications, log)
	if err != nil {
		log.Error("Notification setup failed", map[string]interface{}{"error": err.Error()})
		os.Exit(1)
	}

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	engine := scoring.NewEngine(scoringConfig(cfg.Scoring))

	srv := server.New(server.Deps{
		Config:        *cfg,
		Logger:        log,
		Registry:      reg,
		Engine:        engine,
		Catalog:       cat,
		Users:         users,
		Profiles:      profiles,
		Assessments:   assessments,
		Scores:        scores,
		JWT:           jwtSvc,
		Hasher:        hasher,
		Notifier:      notifier,
		Observability: obs,
		Postgres:      pg,
		Redis:         rdb,
	})

	// pprof on a loopback-only listener, kept off the public surface.
	if cfg.App.Environment == "development" {
		go func() {
			debugMux := http.NewServeMux()
			debugMux.HandleFunc("/debug/pprof/", pprof.Index)
			debugMux.HandleFunc("/debug/pprof/profile", pprof.Profile)
			debugMux.HandleFunc("/debug/pprof/trace", pprof.Trace)
			debugMux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
			if err := http.ListenAndServe("localhost:6060", debugMux); err != nil {
				log.Warn("pprof listener stopped", map[string]interface{}{"error": err.Error()})
			}
		}()
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		log.Error("HTTP server failed", map[string]interface{}{"error": err.Error()})
		os.Exit(1)
	case sig := <-sigCh:
		log.Info("Shutdown signal received, draining...", map[string]interface{}{
			"signal": sig.String(),
		})
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, time.Duration(cfg.Server.ShutdownTimeout)*time.Millisecond)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Graceful shutdown failed", map[string]interface{}{"error": err.Error()})
	}
	log.Info("Server stopped", nil)
}

// scoringConfig builds engine constants from config overrides, keeping the
// defaults wherever a value is unset.
func scoringConfig(overrides config.ScoringConfig) scoring.Config {
	cfg := scoring.DefaultConfig()
	if overrides.Base != 0 {
		cfg.Base = overrides.Base
	}
	if overrides.CreditCoefficient != 0 {
		cfg.CreditCoefficient = overrides.CreditCoefficient
	}
	if overrides.IncomeCoefficient != 0 {
		cfg.IncomeCoefficient = overrides.IncomeCoefficient
	}
	if overrides.DebtCoefficient != 0 {
		cfg.DebtCoefficient = overrides.DebtCoefficient
	}
	if overrides.SavingsCoefficient != 0 {
		cfg.SavingsCoefficient = overrides.SavingsCoefficient
	}
	if overrides.DefaultCreditScore != 0 {
		cfg.DefaultCreditScore = overrides.DefaultCreditScore
	}
	return cfg
}
