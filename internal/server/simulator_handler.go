// internal/server/simulator_handler.go
package server

import (
	"errors"
	"net/http"

	"loanpath-api/internal/common/auth"
	apierrors "loanpath-api/internal/common/errors"
	"loanpath-api/internal/scoring"
	"loanpath-api/internal/store"
)

// handleSimulate runs a what-if delta against the caller's stored profile.
// Nothing is persisted; the stored profile and history are untouched.
func (s *Server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		s.errors.Write(w, apierrors.NewUnauthorizedError("no claims in context"))
		return
	}

	doc, apiErr := s.decodeBody(r, "simulator.run")
	if apiErr != nil {
		s.errors.Write(w, apiErr)
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

	delta := scoring.Delta{
		IncomeChange:      numberField(doc, "incomeChange"),
		DebtChange:        numberField(doc, "debtChange"),
		SavingsChange:     numberField(doc, "savingsChange"),
		CreditScoreChange: numberField(doc, "creditScoreChange"),
	}
	result := s.engine.Simulate(profile, delta)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":          true,
		"originalScore":    result.Original.Score,
		"simulatedScore":   result.Simulated.Score,
		"scoreImprovement": result.ScoreImprovement,
		"originalAPR":      result.Original.APR,
		"simulatedAPR":     result.Simulated.APR,
		"message":          result.Message,
		"simulatedValues":  result.SimulatedValues,
	})
}
