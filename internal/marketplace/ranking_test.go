// internal/marketplace/ranking_test.go
package marketplace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loanpath-api/internal/models"
)

func createTestOffers() []models.LoanOffer {
	return []models.LoanOffer{
		{LenderName: "QuickFund", MinRate: 14, MaxRate: 14, MaxAmount: 300000, TenureMonths: 36, FundingSpeedDays: 1},
		{LenderName: "SteadyBank", MinRate: 8, MaxRate: 8, MaxAmount: 500000, TenureMonths: 36, FundingSpeedDays: 7},
		{LenderName: "MidCredit", MinRate: 10, MaxRate: 10, MaxAmount: 250000, TenureMonths: 36, FundingSpeedDays: 3},
	}
}

func floatPtr(v float64) *float64 { return &v }

func TestRank_LowestMonthlyPayment(t *testing.T) {
	ranked, apiErr := Rank(createTestOffers(), Request{
		Goal:            GoalLowestPayment,
		RequestedAmount: 200000,
	})

	require.Nil(t, apiErr)
	require.Len(t, ranked, 3)
	assert.Equal(t, "SteadyBank", ranked[0].LenderName)
	assert.Less(t, ranked[0].MonthlyPayment, ranked[1].MonthlyPayment)
	// 200000 at 8% over 36 months
	assert.InDelta(t, 6267.27, ranked[0].MonthlyPayment, 0.01)
}

func TestRank_FastestFunding(t *testing.T) {
	ranked, apiErr := Rank(createTestOffers(), Request{
		Goal:            GoalFastestFunding,
		RequestedAmount: 100000,
	})

	require.Nil(t, apiErr)
	require.Len(t, ranked, 3)
	assert.Equal(t, "QuickFund", ranked[0].LenderName)
	assert.Equal(t, 1.0, ranked[0].RankingScore)
}

func TestRank_TotalInterestGoalsAlias(t *testing.T) {
	for _, goal := range []string{GoalLowestInterest, GoalLowestTotalInterest} {
		ranked, apiErr := Rank(createTestOffers(), Request{
			Goal:            goal,
			RequestedAmount: 150000,
		})

		require.Nil(t, apiErr)
		require.NotEmpty(t, ranked)
		assert.Equal(t, "SteadyBank", ranked[0].LenderName)
		assert.Equal(t, ranked[0].TotalInterest, ranked[0].RankingScore)
	}
}

func TestRank_AscendingRankingScore(t *testing.T) {
	for _, goal := range AllowedGoals {
		ranked, apiErr := Rank(createTestOffers(), Request{
			Goal:            goal,
			RequestedAmount: 200000,
		})

		require.Nil(t, apiErr)
		for i := 1; i < len(ranked); i++ {
			assert.LessOrEqual(t, ranked[i-1].RankingScore, ranked[i].RankingScore)
		}
	}
}

func TestRank_FiltersByAmount(t *testing.T) {
	offers := createTestOffers()
	offers = append(offers, models.LoanOffer{
		LenderName: "BigTicket", MinRate: 7, MaxRate: 7,
		MinAmount: 400000, MaxAmount: 2000000, TenureMonths: 60, FundingSpeedDays: 10,
	})

	ranked, apiErr := Rank(offers, Request{Goal: GoalLowestPayment, RequestedAmount: 280000})

	require.Nil(t, apiErr)
	for _, r := range ranked {
		assert.GreaterOrEqual(t, r.MaxAmount, 280000.0)
		assert.NotEqual(t, "BigTicket", r.LenderName)
	}
	// MidCredit's 250000 cap excludes it too.
	assert.Len(t, ranked, 2)
}

func TestRank_FiltersByBorrowerFloors(t *testing.T) {
	offers := []models.LoanOffer{
		{LenderName: "PrimeOnly", MinRate: 6, MaxRate: 6, MaxAmount: 500000, TenureMonths: 36, MinCreditScore: 740, MinIncome: 60000},
		{LenderName: "OpenDoor", MinRate: 12, MaxRate: 12, MaxAmount: 500000, TenureMonths: 36},
	}
	profile := &models.FinancialProfile{CreditScore: 690, MonthlyIncome: 45000}

	ranked, apiErr := Rank(offers, Request{
		Goal:            GoalLowestInterest,
		RequestedAmount: 100000,
		Borrower:        Borrower{Profile: profile},
	})

	require.Nil(t, apiErr)
	require.Len(t, ranked, 1)
	assert.Equal(t, "OpenDoor", ranked[0].LenderName)
}

func TestRank_AssignedRateByScore(t *testing.T) {
	rangeOffer := []models.LoanOffer{
		{LenderName: "FlexRate", MinRate: 9, MaxRate: 15, MaxAmount: 500000, TenureMonths: 24, FundingSpeedDays: 5},
	}

	cases := []struct {
		name     string
		score    *float64
		wantRate float64
	}{
		{"strong score gets floor", floatPtr(85), 9},
		{"mid score gets midpoint", floatPtr(70), 12},
		{"weak score gets cap", floatPtr(40), 15},
		{"boundary 80 gets midpoint", floatPtr(80), 12},
		{"boundary 65 gets cap", floatPtr(65), 15},
		{"no score gets midpoint", nil, 12},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ranked, apiErr := Rank(rangeOffer, Request{
				Goal:            GoalLowestInterest,
				RequestedAmount: 50000,
				Borrower:        Borrower{LatestScore: tc.score},
			})

			require.Nil(t, apiErr)
			require.Len(t, ranked, 1)
			assert.Equal(t, tc.wantRate, ranked[0].AssignedRate)
		})
	}
}

func TestRank_ZeroRateOffer(t *testing.T) {
	offers := []models.LoanOffer{
		{LenderName: "PromoZero", MinRate: 0, MaxRate: 0, MaxAmount: 100000, TenureMonths: 12, FundingSpeedDays: 2},
	}

	ranked, apiErr := Rank(offers, Request{Goal: GoalLowestPayment, RequestedAmount: 60000})

	require.Nil(t, apiErr)
	require.Len(t, ranked, 1)
	assert.Equal(t, 5000.0, ranked[0].MonthlyPayment)
	assert.Equal(t, 0.0, ranked[0].TotalInterest)
}

func TestRank_InvalidGoal(t *testing.T) {
	ranked, apiErr := Rank(createTestOffers(), Request{Goal: "cheapest", RequestedAmount: 10000})

	assert.Nil(t, ranked)
	require.NotNil(t, apiErr)
	assert.Equal(t,
		"Invalid or missing goal. Use: lowest_interest, lowest_total_interest, lowest_monthly_payment, or fastest_funding",
		apiErr.Message)
}

func TestRank_InvalidAmount(t *testing.T) {
	for _, amount := range []float64{0, -500} {
		ranked, apiErr := Rank(createTestOffers(), Request{Goal: GoalLowestPayment, RequestedAmount: amount})

		assert.Nil(t, ranked)
		require.NotNil(t, apiErr)
		assert.Equal(t, "requestedAmount must be a positive number", apiErr.Message)
	}
}

func TestRank_EmptyEligibleSet(t *testing.T) {
	ranked, apiErr := Rank(createTestOffers(), Request{Goal: GoalLowestPayment, RequestedAmount: 900000})

	require.Nil(t, apiErr)
	assert.Empty(t, ranked)
}

func TestRank_LimitTruncates(t *testing.T) {
	ranked, apiErr := Rank(createTestOffers(), Request{
		Goal:            GoalLowestPayment,
		RequestedAmount: 100000,
		Limit:           2,
	})

	require.Nil(t, apiErr)
	assert.Len(t, ranked, 2)
}
