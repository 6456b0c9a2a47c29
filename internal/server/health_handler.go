// internal/server/health_handler.go
package server

import (
	"context"
	"net/http"
	"time"
)

// handleHealth reports process liveness plus dependency status. Degraded
// dependencies flip the status but keep the 200 so load balancers can read
// the detail.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status := "ok"
	db := "ok"
	if s.postgres != nil {
		if err := s.postgres.Ping(ctx); err != nil {
			db = "unreachable"
			status = "degraded"
		}
	}

	cache := "ok"
	if s.redis != nil {
		if err := s.redis.Ping(ctx); err != nil {
			cache = "unreachable"
			status = "degraded"
		}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":        status,
		"db":            db,
		"cache":         cache,
		"catalogOffers": s.catalog.Count(),
	})
}
