// internal/scoring/simulator.go
package scoring

import (
	"fmt"
	"math"

	"loanpath-api/internal/models"
)

// Delta holds the hypothetical changes applied to a profile. DebtChange is
// a reduction: it is subtracted from existing debt.
type Delta struct {
	IncomeChange      float64 `json:"incomeChange"`
	DebtChange        float64 `json:"debtChange"`
	SavingsChange     float64 `json:"savingsChange"`
	CreditScoreChange float64 `json:"creditScoreChange"`
}

// SimulatedValues are the adjusted inputs after clamping.
type SimulatedValues struct {
	NewIncome      float64 `json:"newIncome"`
	NewDebt        float64 `json:"newDebt"`
	NewSavings     float64 `json:"newSavings"`
	NewCreditScore float64 `json:"newCreditScore"`
}

// SimulationResult compares the original and adjusted scores.
type SimulationResult struct {
	Original         models.ScoreResult
	Simulated        models.ScoreResult
	ScoreImprovement float64
	Message          string
	SimulatedValues  SimulatedValues
}

// Simulate applies delta to the profile, scores both, and reports the
// difference. Pure over its inputs; the stored profile is never mutated.
func (e *Engine) Simulate(p models.FinancialProfile, d Delta) SimulationResult {
	orig := e.InputsFromProfile(p)

	adjusted := Inputs{
		MonthlyIncome: math.Max(0, orig.MonthlyIncome+sanitize(d.IncomeChange)),
		ExistingDebt:  math.Max(0, orig.ExistingDebt-sanitize(d.DebtChange)),
		Savings:       math.Max(0, orig.Savings+sanitize(d.SavingsChange)),
		CreditScore:   clamp(orig.CreditScore+sanitize(d.CreditScoreChange), e.cfg.MinCreditScore, e.cfg.MaxCreditScore),
	}

	original := e.Score(orig)
	simulated := e.Score(adjusted)

	return SimulationResult{
		Original:         original,
		Simulated:        simulated,
		ScoreImprovement: round1(simulated.Score - original.Score),
		Message:          aprMessage(simulated.APR - original.APR),
		SimulatedValues: SimulatedValues{
			NewIncome:      adjusted.MonthlyIncome,
			NewDebt:        adjusted.ExistingDebt,
			NewSavings:     adjusted.Savings,
			NewCreditScore: adjusted.CreditScore,
		},
	}
}

func aprMessage(aprDiff float64) string {
	switch {
	case aprDiff < 0:
		return fmt.Sprintf("APR reduced by %s%%", formatNumber(math.Abs(aprDiff)))
	case aprDiff > 0:
		return fmt.Sprintf("APR increased by %s%%", formatNumber(aprDiff))
	default:
		return "APR unchanged"
	}
}

// formatNumber renders without trailing zeros, so a 3-point delta reads "3".
func formatNumber(v float64) string {
	return fmt.Sprintf("%g", v)
}
