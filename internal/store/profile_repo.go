// internal/store/profile_repo.go
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"loanpath-api/internal/common/database"
	"loanpath-api/internal/models"
)

// ProfileRepo persists financial profiles, one row per user.
type ProfileRepo struct {
	db *database.PostgresClient
}

func NewProfileRepo(db *database.PostgresClient) *ProfileRepo {
	return &ProfileRepo{db: db}
}

// Upsert writes the full profile, replacing any existing row for the user.
func (r *ProfileRepo) Upsert(ctx context.Context, p models.FinancialProfile) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO financial_profiles
			(user_id, monthly_income, credit_score, existing_debt, savings,
			 monthly_debt_payment, credit_utilization, employment_years,
			 existing_loans, credit_history_years, desired_loan_amount, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 ON CONFLICT (user_id) DO UPDATE SET
			monthly_income = EXCLUDED.monthly_income,
			credit_score = EXCLUDED.credit_score,
			existing_debt = EXCLUDED.existing_debt,
			savings = EXCLUDED.savings,
			monthly_debt_payment = EXCLUDED.monthly_debt_payment,
			credit_utilization = EXCLUDED.credit_utilization,
			employment_years = EXCLUDED.employment_years,
			existing_loans = EXCLUDED.existing_loans,
			credit_history_years = EXCLUDED.credit_history_years,
			desired_loan_amount = EXCLUDED.desired_loan_amount,
			updated_at = EXCLUDED.updated_at`,
		p.UserID, p.MonthlyIncome, p.CreditScore, p.ExistingDebt, p.Savings,
		p.MonthlyDebtPayment, p.CreditUtilization, p.EmploymentYears,
		p.ExistingLoans, p.CreditHistoryYears, p.DesiredLoanAmount, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upserting profile: %w", err)
	}
	return nil
}

func (r *ProfileRepo) Get(ctx context.Context, userID uuid.UUID) (models.FinancialProfile, error) {
	var p models.FinancialProfile
	err := r.db.QueryRow(ctx,
		`SELECT user_id, monthly_income, credit_score, existing_debt, savings,
			monthly_debt_payment, credit_utilization, employment_years,
			existing_loans, credit_history_years, desired_loan_amount, updated_at
		 FROM financial_profiles WHERE user_id = $1`,
		userID).Scan(
		&p.UserID, &p.MonthlyIncome, &p.CreditScore, &p.ExistingDebt, &p.Savings,
		&p.MonthlyDebtPayment, &p.CreditUtilization, &p.EmploymentYears,
		&p.ExistingLoans, &p.CreditHistoryYears, &p.DesiredLoanAmount, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.FinancialProfile{}, ErrNotFound
	}
	if err != nil {
		return models.FinancialProfile{}, fmt.Errorf("querying profile: %w", err)
	}
	return p, nil
}
