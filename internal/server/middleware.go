// internal/server/middleware.go
package server

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"loanpath-api/internal/common/auth"
	apierrors "loanpath-api/internal/common/errors"
	"loanpath-api/internal/common/logger"
	"loanpath-api/internal/common/metrics"
)

// statusRecorder captures the response status for logging and metrics.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// LoggingMiddleware logs one line per request with latency and status.
func LoggingMiddleware(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			log.Info("Request handled", map[string]interface{}{
				"method":     r.Method,
				"path":       r.URL.Path,
				"status":     rec.status,
				"durationMs": time.Since(start).Milliseconds(),
				"remoteAddr": clientIP(r),
			})
		})
	}
}

// MetricsMiddleware records prometheus counters and latency histograms.
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		metrics.HTTPRequestsInFlight.Inc()
		defer metrics.HTTPRequestsInFlight.Dec()

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		route := routeLabel(r)
		metrics.HTTPRequestsTotal.WithLabelValues(route, r.Method, strconv.Itoa(rec.status)).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(route, r.Method).Observe(time.Since(start).Seconds())
	})
}

// routeLabel uses the matched pattern when available so metrics cardinality
// stays bounded.
func routeLabel(r *http.Request) string {
	if p := r.Pattern; p != "" {
		// Pattern includes the method prefix ("POST /api/...").
		if i := strings.IndexByte(p, ' '); i >= 0 {
			return p[i+1:]
		}
		return p
	}
	return "unmatched"
}

// AuthMiddleware validates the Bearer token and attaches claims to the
// request context. Paths in skipPaths pass through untouched.
type AuthMiddleware struct {
	jwt       *auth.JWTService
	errors    *apierrors.ErrorHandler
	skipPaths map[string]bool
}

func NewAuthMiddleware(jwt *auth.JWTService, errHandler *apierrors.ErrorHandler, skipPaths []string) *AuthMiddleware {
	skip := make(map[string]bool, len(skipPaths))
	for _, p := range skipPaths {
		skip[p] = true
	}
	return &AuthMiddleware{jwt: jwt, errors: errHandler, skipPaths: skip}
}

func (m *AuthMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.skipPaths[r.URL.Path] {
			next.ServeHTTP(w, r)
			return
		}

		header := r.Header.Get("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			m.errors.Write(w, apierrors.NewUnauthorizedError("missing bearer token"))
			return
		}

		claims, err := m.jwt.ValidateToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			m.errors.Write(w, apierrors.NewUnauthorizedError(err.Error()))
			return
		}

		next.ServeHTTP(w, r.WithContext(auth.ContextWithClaims(r.Context(), claims)))
	})
}

// RateLimiter applies a fixed-window per-IP request cap.
type RateLimiter struct {
	mu        sync.Mutex
	counts    map[string]*windowCount
	limit     int
	window    time.Duration
	errors    *apierrors.ErrorHandler
	now       func() time.Time
	lastSweep time.Time
}

type windowCount struct {
	windowStart time.Time
	count       int
}

func NewRateLimiter(limit int, window time.Duration, errHandler *apierrors.ErrorHandler) *RateLimiter {
	return &RateLimiter{
		counts: make(map[string]*windowCount),
		limit:  limit,
		window: window,
		errors: errHandler,
		now:    time.Now,
	}
}

func (rl *RateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.allow(clientIP(r)) {
			rl.errors.Write(w, apierrors.NewRateLimitedError())
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (rl *RateLimiter) allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	rl.sweepLocked(now)

	wc, ok := rl.counts[ip]
	if !ok || now.Sub(wc.windowStart) >= rl.window {
		rl.counts[ip] = &windowCount{windowStart: now, count: 1}
		return true
	}
	wc.count++
	return wc.count <= rl.limit
}

// sweepLocked drops expired windows so the map does not grow unbounded.
func (rl *RateLimiter) sweepLocked(now time.Time) {
	if now.Sub(rl.lastSweep) < rl.window {
		return
	}
	rl.lastSweep = now
	for ip, wc := range rl.counts {
		if now.Sub(wc.windowStart) >= rl.window {
			delete(rl.counts, ip)
		}
	}
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if i := strings.IndexByte(fwd, ','); i >= 0 {
			return strings.TrimSpace(fwd[:i])
		}
		return strings.TrimSpace(fwd)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
