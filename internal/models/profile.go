// internal/models/profile.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// FinancialProfile holds one user's financial attributes (1:1 with User).
// Numeric fields are coerced to finite numbers upstream; negative inputs are
// not rejected at this layer.
type FinancialProfile struct {
	UserID             uuid.UUID `json:"userId"`
	MonthlyIncome      float64   `json:"monthlyIncome"`
	CreditScore        float64   `json:"creditScore"`
	ExistingDebt       float64   `json:"existingDebt"`
	Savings            float64   `json:"savings"`
	MonthlyDebtPayment float64   `json:"monthlyDebtPayment"`
	CreditUtilization  float64   `json:"creditUtilization"`
	EmploymentYears    float64   `json:"employmentYears"`
	ExistingLoans      float64   `json:"existingLoans"`
	CreditHistoryYears float64   `json:"creditHistoryYears"`
	DesiredLoanAmount  float64   `json:"desiredLoanAmount"`
	UpdatedAt          time.Time `json:"updatedAt"`
}
