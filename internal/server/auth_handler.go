// internal/server/auth_handler.go
package server

import (
	"errors"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"loanpath-api/internal/common/auth"
	apierrors "loanpath-api/internal/common/errors"
	"loanpath-api/internal/models"
	"loanpath-api/internal/store"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type authResponse struct {
	Success bool        `json:"success"`
	Token   string      `json:"token"`
	User    models.User `json:"user"`
}

// handleRegister creates an account, optionally seeds the financial profile,
// and issues a token.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	doc, apiErr := s.decodeBody(r, "auth.register")
	if apiErr != nil {
		s.errors.Write(w, apiErr)
		return
	}

	name := strings.TrimSpace(stringField(doc, "name"))
	email := strings.ToLower(strings.TrimSpace(stringField(doc, "email")))
	password := stringField(doc, "password")

	if name == "" {
		s.errors.Write(w, apierrors.NewValidationFailedError("name is required"))
		return
	}
	if !emailPattern.MatchString(email) {
		s.errors.Write(w, apierrors.NewValidationFailedError("email must be a valid email address"))
		return
	}
	if len(password) < s.cfg.Auth.MinPasswordLen {
		s.errors.Write(w, apierrors.NewValidationFailedError("password must be at least 6 characters"))
		return
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		s.errors.Write(w, apierrors.NewInternalError(err))
		return
	}

	user := models.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.users.Create(r.Context(), user); err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			s.errors.Write(w, apierrors.NewUserExistsError())
			return
		}
		s.errors.Write(w, apierrors.NewDatabaseError(err))
		return
	}

	if raw, ok := doc["financialProfile"].(map[string]interface{}); ok {
		if err := s.saveInitialProfile(r, user.ID, raw); err != nil {
			s.log.Warn("Initial profile save failed during registration", map[string]interface{}{
				"userId": user.ID.String(),
				"error":  err.Error(),
			})
		}
	}

	token, err := s.jwt.GenerateToken(user.ID, user.Email)
	if err != nil {
		s.errors.Write(w, apierrors.NewInternalError(err))
		return
	}

	if s.notifier != nil {
		s.notifier.SendWelcome(r.Context(), user.Name, user.Email, stringField(doc, "phone"))
	}

	writeJSON(w, http.StatusCreated, authResponse{Success: true, Token: token, User: user})
}

func (s *Server) saveInitialProfile(r *http.Request, userID uuid.UUID, raw map[string]interface{}) error {
	profile := profileFromDoc(raw)
	profile.UserID = userID
	profile.UpdatedAt = time.Now().UTC()
	return s.profiles.Upsert(r.Context(), profile)
}

// handleLogin verifies credentials and issues a token.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	doc, apiErr := s.decodeBody(r, "auth.login")
	if apiErr != nil {
		s.errors.Write(w, apiErr)
		return
	}

	email := strings.ToLower(strings.TrimSpace(stringField(doc, "email")))
	password := stringField(doc, "password")

	user, err := s.users.GetByEmail(r.Context(), email)
	if errors.Is(err, store.ErrNotFound) {
		s.errors.Write(w, apierrors.NewInvalidCredentialsError())
		return
	}
	if err != nil {
		s.errors.Write(w, apierrors.NewDatabaseError(err))
		return
	}

	if !s.hasher.Compare(user.PasswordHash, password) {
		s.errors.Write(w, apierrors.NewInvalidCredentialsError())
		return
	}

	token, err := s.jwt.GenerateToken(user.ID, user.Email)
	if err != nil {
		s.errors.Write(w, apierrors.NewInternalError(err))
		return
	}
	writeJSON(w, http.StatusOK, authResponse{Success: true, Token: token, User: user})
}

// handleAuthProfile returns the authenticated account plus its financial
// profile when one exists.
func (s *Server) handleAuthProfile(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		s.errors.Write(w, apierrors.NewUnauthorizedError("no claims in context"))
		return
	}

	user, err := s.users.GetByID(r.Context(), claims.UserID)
	if errors.Is(err, store.ErrNotFound) {
		s.errors.Write(w, apierrors.NewResourceNotFoundError("User"))
		return
	}
	if err != nil {
		s.errors.Write(w, apierrors.NewDatabaseError(err))
		return
	}

	response := map[string]interface{}{
		"success": true,
		"user":    user,
	}
	if profile, err := s.profiles.Get(r.Context(), claims.UserID); err == nil {
		response["financialProfile"] = profile
	}
	writeJSON(w, http.StatusOK, response)
}

// profileFromDoc maps a decoded JSON object onto a FinancialProfile.
func profileFromDoc(doc map[string]interface{}) models.FinancialProfile {
	num := func(key string) float64 { return numberField(doc, key) }
	return models.FinancialProfile{
		MonthlyIncome:      num("monthlyIncome"),
		CreditScore:        num("creditScore"),
		ExistingDebt:       num("existingDebt"),
		Savings:            num("savings"),
		MonthlyDebtPayment: num("monthlyDebtPayment"),
		CreditUtilization:  num("creditUtilization"),
		EmploymentYears:    num("employmentYears"),
		ExistingLoans:      num("existingLoans"),
		CreditHistoryYears: num("creditHistoryYears"),
		DesiredLoanAmount:  num("desiredLoanAmount"),
	}
}
