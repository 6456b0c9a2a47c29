// internal/models/offer.go
package models

// LoanOffer is one lender catalog entry. Static reference data, loaded once
// at startup and read-only at request time. MinRate == MaxRate represents a
// flat-rate offer.
type LoanOffer struct {
	LenderName       string  `json:"lenderName"`
	MinRate          float64 `json:"minRate"` // annual percent
	MaxRate          float64 `json:"maxRate"`
	MinAmount        float64 `json:"minAmount"` // 0 means no floor
	MaxAmount        float64 `json:"maxAmount"`
	TenureMonths     int     `json:"tenureMonths"`
	ProcessingFeePct float64 `json:"processingFeePercent"`
	FundingSpeedDays int     `json:"fundingSpeedDays"`
	MinCreditScore   float64 `json:"minCreditScore"` // 0 means no floor
	MinIncome        float64 `json:"minIncome"`      // 0 means no floor
}

// FlatRate reports whether the offer carries a single fixed rate.
func (o LoanOffer) FlatRate() bool {
	return o.MinRate == o.MaxRate
}

// RankedOffer is a LoanOffer plus per-request derived figures. Never
// persisted.
type RankedOffer struct {
	LenderName       string  `json:"lenderName"`
	AssignedRate     float64 `json:"interestRate"`
	MaxAmount        float64 `json:"maxAmount"`
	TenureMonths     int     `json:"tenureMonths"`
	FundingSpeedDays int     `json:"fundingSpeedDays"`
	MonthlyPayment   float64 `json:"monthlyPayment"`
	TotalInterest    float64 `json:"totalInterest"`
	RankingScore     float64 `json:"rankingScore"`
}
