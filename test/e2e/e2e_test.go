// test/e2e/e2e_test.go
package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loanpath-api/internal/catalog"
	"loanpath-api/internal/common/auth"
	"loanpath-api/internal/common/config"
	"loanpath-api/internal/common/database"
	"loanpath-api/internal/common/logger"
	"loanpath-api/internal/common/observability"
	"loanpath-api/internal/scoring"
	"loanpath-api/internal/server"
	"loanpath-api/internal/store"
	"loanpath-api/pkg/registry"
)

// These tests exercise the full stack against real PostgreSQL and Redis.
// Set E2E_TESTS=true plus the usual database env vars to run them.

func e2eServer(t *testing.T) http.Handler {
	t.Helper()
	if os.Getenv("E2E_TESTS") != "true" {
		t.Skip("E2E_TESTS not enabled")
	}

	cfg, err := config.Load()
	require.NoError(t, err)
	log := logger.NewTestLogger(t)
	ctx := context.Background()

	pg, err := database.NewPostgres(cfg.Database.Postgres)
	require.NoError(t, err)
	t.Cleanup(func() { pg.Close() })
	require.NoError(t, pg.Ping(ctx))

	rdb, err := database.NewRedis(cfg.Database.Redis)
	require.NoError(t, err)
	t.Cleanup(func() { rdb.Close() })
	require.NoError(t, rdb.Ping(ctx))

	users := store.NewUserRepo(pg)
	require.NoError(t, users.EnsureSchema(ctx))

	cat := catalog.New(cfg.Catalog.CSVPath, log)
	require.NoError(t, cat.Load())

	jwtSvc, err := auth.NewJWTService(auth.JWTConfig{
		Secret:     cfg.Auth.JWTSecret,
		Issuer:     cfg.Auth.JWTIssuer,
		Expiration: time.Hour,
	})
	require.NoError(t, err)

	srv := server.New(server.Deps{
		Config:        *cfg,
		Logger:        log,
		Registry:      registry.Default(),
		Engine:        scoring.NewEngine(scoring.DefaultConfig()),
		Catalog:       cat,
		Users:         users,
		Profiles:      store.NewProfileRepo(pg),
		Assessments:   store.NewAssessmentRepo(pg),
		Scores:        store.NewScoreCache(rdb, time.Duration(cfg.Database.Redis.ScoreCacheTTL)*time.Second),
		JWT:           jwtSvc,
		Hasher:        auth.NewPasswordHasher(cfg.Auth.BcryptCost),
		Observability: observability.New("loanpath-e2e"),
		Postgres:      pg,
		Redis:         rdb,
	})
	return srv.Routes()
}

func post(t *testing.T, h http.Handler, path, token string, body map[string]interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(body))
	req := httptest.NewRequest(http.MethodPost, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func get(t *testing.T, h http.Handler, path, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestFullAssessmentFlow(t *testing.T) {
	h := e2eServer(t)
	email := fmt.Sprintf("e2e-%d@example.com", time.Now().UnixNano())

	// Register
	w := post(t, h, "/api/auth/register", "", map[string]interface{}{
		"name":     "E2E Tester",
		"email":    email,
		"password": "hunter22",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	token := decode(t, w)["token"].(string)
	require.NotEmpty(t, token)

	// Calculate before a profile exists
	w = post(t, h, "/api/loan/calculate", token, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Please complete your financial profile first", decode(t, w)["message"])

	// Save profile
	req := httptest.NewRequest(http.MethodPut, "/api/profile", bytes.NewBufferString(
		`{"monthlyIncome":50000,"creditScore":720,"existingDebt":10000,"savings":80000}`))
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// Score
	w = post(t, h, "/api/loan/calculate", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decode(t, w)
	assert.Equal(t, 100.0, body["loanReadinessScore"])
	assert.Equal(t, 8.0, body["estimatedAPR"])

	// Simulate
	w = post(t, h, "/api/simulator/run", token, map[string]interface{}{"debtChange": 5000})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, decode(t, w), "scoreImprovement")

	// Marketplace
	w = post(t, h, "/api/marketplace/rank", token, map[string]interface{}{
		"goal":            "lowest_monthly_payment",
		"requestedAmount": 200000,
	})
	require.Equal(t, http.StatusOK, w.Code)
	loans := decode(t, w)["loans"].([]interface{})
	assert.NotEmpty(t, loans)

	// History includes the assessment
	w = get(t, h, "/api/assessment/history", token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.GreaterOrEqual(t, decode(t, w)["count"], 1.0)
}

func TestLoginRoundTrip(t *testing.T) {
	h := e2eServer(t)
	email := fmt.Sprintf("e2e-login-%d@example.com", time.Now().UnixNano())

	w := post(t, h, "/api/auth/register", "", map[string]interface{}{
		"name":     "E2E Login",
		"email":    email,
		"password": "hunter22",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = post(t, h, "/api/auth/login", "", map[string]interface{}{
		"email":    email,
		"password": "hunter22",
	})
	require.Equal(t, http.StatusOK, w.Code)
	token := decode(t, w)["token"].(string)

	w = get(t, h, "/api/auth/profile", token)
	require.Equal(t, http.StatusOK, w.Code)
	user := decode(t, w)["user"].(map[string]interface{})
	assert.Equal(t, email, user["email"])
}
