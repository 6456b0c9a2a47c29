// internal/server/marketplace_handler.go
package server

import (
	"errors"
	"net/http"

	"loanpath-api/internal/common/auth"
	apierrors "loanpath-api/internal/common/errors"
	"loanpath-api/internal/common/metrics"
	"loanpath-api/internal/marketplace"
	"loanpath-api/internal/store"
)

// handleMarketplaceRank prices and orders eligible offers for the caller.
// The borrower snapshot is best-effort: a missing profile or cache miss
// degrades pricing, it does not fail the request.
func (s *Server) handleMarketplaceRank(w http.ResponseWriter, r *http.Request) {
	if _, ok := auth.ClaimsFromContext(r.Context()); !ok {
		s.errors.Write(w, apierrors.NewUnauthorizedError("no claims in context"))
		return
	}

	doc, apiErr := s.decodeBody(r, "marketplace.rank")
	if apiErr != nil {
		s.errors.Write(w, apiErr)
		return
	}

	offers, err := s.catalog.Offers()
	if err != nil {
		s.errors.Write(w, apierrors.NewCatalogNotLoadedError())
		return
	}

	req := marketplace.Request{
		Goal:            stringField(doc, "goal"),
		RequestedAmount: numberField(doc, "requestedAmount"),
		Borrower:        s.borrowerSnapshot(r),
		Limit:           marketplaceResultLimit,
	}

	ranked, rankErr := marketplace.Rank(offers, req)
	if rankErr != nil {
		s.errors.Write(w, rankErr)
		return
	}

	metrics.MarketplaceRankings.WithLabelValues(req.Goal).Inc()

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":         true,
		"goal":            req.Goal,
		"requestedAmount": req.RequestedAmount,
		"count":           len(ranked),
		"loans":           ranked,
	})
}

// borrowerSnapshot assembles the optional profile and latest cached score.
func (s *Server) borrowerSnapshot(r *http.Request) marketplace.Borrower {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		return marketplace.Borrower{}
	}

	var b marketplace.Borrower
	profile, err := s.profiles.Get(r.Context(), claims.UserID)
	if err == nil {
		b.Profile = &profile
	} else if !errors.Is(err, store.ErrNotFound) {
		s.log.Warn("Profile lookup failed during ranking", map[string]interface{}{
			"userId": claims.UserID.String(),
			"error":  err.Error(),
		})
	}

	score, hit, err := s.scores.GetLatest(r.Context(), claims.UserID)
	if err != nil {
		s.log.Warn("Score cache lookup failed during ranking", map[string]interface{}{
			"userId": claims.UserID.String(),
			"error":  err.Error(),
		})
	} else if hit {
		b.LatestScore = &score
	}
	return b
}
