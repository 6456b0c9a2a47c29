// internal/marketplace/ranking.go
package marketplace

import (
	"math"
	"sort"

	apierrors "loanpath-api/internal/common/errors"
	"loanpath-api/internal/models"
)

// Ranking goals. lowest_interest and lowest_total_interest are aliases; both
// rank by total interest paid over the tenure.
const (
	GoalLowestInterest      = "lowest_interest"
	GoalLowestTotalInterest = "lowest_total_interest"
	GoalLowestPayment       = "lowest_monthly_payment"
	GoalFastestFunding      = "fastest_funding"
)

// AllowedGoals in the order shown in validation messages.
var AllowedGoals = []string{
	GoalLowestInterest,
	GoalLowestTotalInterest,
	GoalLowestPayment,
	GoalFastestFunding,
}

// Borrower is the snapshot consulted during eligibility filtering and rate
// assignment. Both fields are optional.
type Borrower struct {
	Profile     *models.FinancialProfile
	LatestScore *float64
}

// Request carries the caller's ranking parameters.
type Request struct {
	Goal            string
	RequestedAmount float64
	Borrower        Borrower
	// Limit caps the result length. Zero means no cap.
	Limit int
}

// Rank filters the catalog down to eligible offers, prices each one for the
// borrower, and orders them ascending by the goal metric. The input slice is
// never modified. Deterministic; ties keep catalog order.
func Rank(offers []models.LoanOffer, req Request) ([]models.RankedOffer, *apierrors.APIError) {
	if !validGoal(req.Goal) {
		return nil, apierrors.NewInvalidGoalError(AllowedGoals)
	}
	if math.IsNaN(req.RequestedAmount) || math.IsInf(req.RequestedAmount, 0) || req.RequestedAmount <= 0 {
		return nil, apierrors.NewInvalidAmountError()
	}

	ranked := make([]models.RankedOffer, 0, len(offers))
	for _, offer := range offers {
		if !eligible(offer, req) {
			continue
		}

		rate := assignRate(offer, req.Borrower.LatestScore)
		emi := monthlyPayment(req.RequestedAmount, rate, offer.TenureMonths)
		totalInterest := emi*float64(offer.TenureMonths) - req.RequestedAmount

		ranked = append(ranked, models.RankedOffer{
			LenderName:       offer.LenderName,
			AssignedRate:     rate,
			MaxAmount:        offer.MaxAmount,
			TenureMonths:     offer.TenureMonths,
			FundingSpeedDays: offer.FundingSpeedDays,
			MonthlyPayment:   round2(emi),
			TotalInterest:    round2(totalInterest),
			RankingScore:     round2(goalMetric(req.Goal, emi, totalInterest, offer.FundingSpeedDays)),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].RankingScore < ranked[j].RankingScore
	})

	if req.Limit > 0 && len(ranked) > req.Limit {
		ranked = ranked[:req.Limit]
	}
	return ranked, nil
}

func validGoal(goal string) bool {
	for _, g := range AllowedGoals {
		if goal == g {
			return true
		}
	}
	return false
}

func eligible(offer models.LoanOffer, req Request) bool {
	if offer.MaxAmount < req.RequestedAmount {
		return false
	}
	if offer.MinAmount > 0 && req.RequestedAmount < offer.MinAmount {
		return false
	}
	if p := req.Borrower.Profile; p != nil {
		if offer.MinCreditScore > 0 && p.CreditScore < offer.MinCreditScore {
			return false
		}
		if offer.MinIncome > 0 && p.MonthlyIncome < offer.MinIncome {
			return false
		}
	}
	return true
}

// assignRate prices a range offer by readiness: strong scores get the floor
// rate, middling ones the midpoint, weak or unknown ones lean on the cap.
func assignRate(offer models.LoanOffer, score *float64) float64 {
	if offer.FlatRate() {
		return offer.MinRate
	}
	midpoint := (offer.MinRate + offer.MaxRate) / 2
	if score == nil {
		return midpoint
	}
	switch {
	case *score > 80:
		return offer.MinRate
	case *score > 65:
		return midpoint
	default:
		return offer.MaxRate
	}
}

// monthlyPayment is the standard annuity EMI. A zero rate degenerates to a
// straight principal split.
func monthlyPayment(principal, annualRate float64, tenureMonths int) float64 {
	if tenureMonths <= 0 {
		return principal
	}
	monthlyRate := annualRate / 100 / 12
	if monthlyRate == 0 {
		return principal / float64(tenureMonths)
	}
	return principal * monthlyRate / (1 - math.Pow(1+monthlyRate, -float64(tenureMonths)))
}

func goalMetric(goal string, emi, totalInterest float64, fundingDays int) float64 {
	switch goal {
	case GoalLowestPayment:
		return emi
	case GoalFastestFunding:
		return float64(fundingDays)
	default:
		return totalInterest
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
