// internal/scoring/engine.go
package scoring

import (
	"math"

	"loanpath-api/internal/models"
)

// Factor labels returned in the breakdown. The frontend keys off these.
const (
	FactorCreditScore   = "Credit Score"
	FactorMonthlyIncome = "Monthly Income"
	FactorExistingDebt  = "Existing Debt"
	FactorSavingsBuffer = "Savings Buffer"
)

const (
	TypePositive = "positive"
	TypeNegative = "negative"
)

// Engine computes the Loan Readiness Score. All methods are pure and safe
// for concurrent use.
type Engine struct {
	cfg Config
}

func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

// Inputs are the four profile fields the formula reads, after defaulting.
type Inputs struct {
	MonthlyIncome float64
	CreditScore   float64
	ExistingDebt  float64
	Savings       float64
}

// InputsFromProfile applies the engine defaults: a missing credit score
// (zero value) falls back to the configured default, monetary fields to 0.
func (e *Engine) InputsFromProfile(p models.FinancialProfile) Inputs {
	in := Inputs{
		MonthlyIncome: sanitize(p.MonthlyIncome),
		CreditScore:   sanitize(p.CreditScore),
		ExistingDebt:  sanitize(p.ExistingDebt),
		Savings:       sanitize(p.Savings),
	}
	if in.CreditScore == 0 {
		in.CreditScore = e.cfg.DefaultCreditScore
	}
	return in
}

// Score maps profile inputs to {score, apr, breakdown, debtToIncome}. Total
// over real-number inputs; never returns an error.
func (e *Engine) Score(in Inputs) models.ScoreResult {
	creditImpact := (in.CreditScore - e.cfg.CreditPivot) * e.cfg.CreditCoefficient
	incomeImpact := in.MonthlyIncome * e.cfg.IncomeCoefficient
	debtImpact := in.ExistingDebt * e.cfg.DebtCoefficient
	savingsImpact := in.Savings * e.cfg.SavingsCoefficient

	raw := e.cfg.Base + creditImpact + incomeImpact - debtImpact + savingsImpact
	score := round1(clamp(raw, 0, 100))

	apr := e.cfg.DefaultAPR
	for _, tier := range e.cfg.APRTiers {
		if score > tier.MinScore {
			apr = tier.APR
			break
		}
	}

	// Debt impact is always labeled negative regardless of its arithmetic
	// sign; credit impact follows its sign.
	breakdown := []models.BreakdownEntry{
		{Factor: FactorCreditScore, Impact: round2(creditImpact), Type: signType(creditImpact)},
		{Factor: FactorMonthlyIncome, Impact: round2(incomeImpact), Type: TypePositive},
		{Factor: FactorExistingDebt, Impact: round2(debtImpact), Type: TypeNegative},
		{Factor: FactorSavingsBuffer, Impact: round2(savingsImpact), Type: TypePositive},
	}

	dti := 0.0
	if in.MonthlyIncome > 0 {
		dti = round1(in.ExistingDebt / in.MonthlyIncome * 100)
	}

	return models.ScoreResult{
		Score:        score,
		APR:          apr,
		Breakdown:    breakdown,
		DebtToIncome: dti,
	}
}

// ScoreProfile is the common path: default the profile, then score it.
func (e *Engine) ScoreProfile(p models.FinancialProfile) models.ScoreResult {
	return e.Score(e.InputsFromProfile(p))
}

func signType(v float64) string {
	if v >= 0 {
		return TypePositive
	}
	return TypeNegative
}

// sanitize coerces NaN/Inf to 0 so the formula stays total.
func sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
