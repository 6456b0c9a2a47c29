// internal/server/assessment_handler.go
package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"loanpath-api/internal/common/auth"
	apierrors "loanpath-api/internal/common/errors"
	"loanpath-api/internal/common/metrics"
	"loanpath-api/internal/models"
	"loanpath-api/internal/store"
)

// handleCalculate scores the caller's stored profile, persists a history row,
// and refreshes the latest-score cache.
func (s *Server) handleCalculate(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		s.errors.Write(w, apierrors.NewUnauthorizedError("no claims in context"))
		return
	}

	profile, err := s.profiles.Get(r.Context(), claims.UserID)
	if errors.Is(err, store.ErrNotFound) {
		s.obs.RecordAssessment(r.Context(), "missing_profile", 0)
		s.errors.Write(w, apierrors.NewProfileNotFoundError())
		return
	}
	if err != nil {
		s.errors.Write(w, apierrors.NewDatabaseError(err))
		return
	}

	result := s.engine.ScoreProfile(profile)

	record := models.AssessmentRecord{
		ID:        uuid.New(),
		UserID:    claims.UserID,
		Result:    result,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.assessments.Insert(r.Context(), record); err != nil {
		s.errors.Write(w, apierrors.NewDatabaseError(err))
		return
	}

	if err := s.scores.SetLatest(r.Context(), claims.UserID, result.Score); err != nil {
		s.log.Warn("Latest score cache write failed", map[string]interface{}{
			"userId": claims.UserID.String(),
			"error":  err.Error(),
		})
	}

	metrics.AssessmentsRun.Inc()
	s.obs.RecordAssessment(r.Context(), "success", result.Score)
	s.obs.RecordAssessmentDuration(r.Context(), time.Since(start), "success")

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":            true,
		"loanReadinessScore": result.Score,
		"estimatedAPR":       result.APR,
		"breakdown":          result.Breakdown,
		"debtToIncome":       result.DebtToIncome,
	})
}

// handleHistory lists the caller's most recent assessments, newest first.
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		s.errors.Write(w, apierrors.NewUnauthorizedError("no claims in context"))
		return
	}

	records, err := s.assessments.ListRecent(r.Context(), claims.UserID, historyLimit)
	if err != nil {
		s.errors.Write(w, apierrors.NewDatabaseError(err))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"count":   len(records),
		"history": records,
	})
}
