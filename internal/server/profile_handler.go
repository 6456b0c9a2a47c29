// internal/server/profile_handler.go
package server

import (
	"errors"
	"net/http"
	"time"

	"loanpath-api/internal/common/auth"
	apierrors "loanpath-api/internal/common/errors"
	"loanpath-api/internal/store"
)

// handleProfileUpsert writes the caller's financial profile and invalidates
// the cached readiness score so stale values never drive offer pricing.
func (s *Server) handleProfileUpsert(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		s.errors.Write(w, apierrors.NewUnauthorizedError("no claims in context"))
		return
	}

	doc, apiErr := s.decodeBody(r, "profile.upsert")
	if apiErr != nil {
		s.errors.Write(w, apiErr)
		return
	}

	profile := profileFromDoc(doc)
	profile.UserID = claims.UserID
	profile.UpdatedAt = time.Now().UTC()

	if err := s.profiles.Upsert(r.Context(), profile); err != nil {
		s.errors.Write(w, apierrors.NewDatabaseError(err))
		return
	}

	if err := s.scores.Invalidate(r.Context(), claims.UserID); err != nil {
		s.log.Warn("Score cache invalidation failed", map[string]interface{}{
			"userId": claims.UserID.String(),
			"error":  err.Error(),
		})
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"profile": profile,
	})
}

// handleProfileGet returns the caller's financial profile.
func (s *Server) handleProfileGet(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		s.errors.Write(w, apierrors.NewUnauthorizedError("no claims in context"))
		return
	}

	profile, err := s.profiles.Get(r.Context(), claims.UserID)
	if errors.Is(err, store.ErrNotFound) {
		s.errors.Write(w, apierrors.NewProfileNotFoundError())
		return
	}
	if err != nil {
		s.errors.Write(w, apierrors.NewDatabaseError(err))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"profile": profile,
	})
}
