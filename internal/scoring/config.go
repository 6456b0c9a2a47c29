// internal/scoring/config.go
package scoring

// APRTier maps a strictly-greater score threshold to an APR. Tiers are
// evaluated in order; the first match wins.
type APRTier struct {
	MinScore float64 // exclusive
	APR      float64
}

// Config parameterizes the readiness score formula so deployments can tune
// the coefficients without a rebuild.
type Config struct {
	Base               float64
	CreditPivot        float64
	CreditCoefficient  float64
	IncomeCoefficient  float64
	DebtCoefficient    float64
	SavingsCoefficient float64

	DefaultCreditScore float64

	MinCreditScore float64
	MaxCreditScore float64

	APRTiers   []APRTier
	DefaultAPR float64
}

// DefaultConfig returns the canonical formula constants.
func DefaultConfig() Config {
	return Config{
		Base:               50,
		CreditPivot:        600,
		CreditCoefficient:  0.1,
		IncomeCoefficient:  0.0005,
		DebtCoefficient:    0.0007,
		SavingsCoefficient: 0.0003,
		DefaultCreditScore: 650,
		MinCreditScore:     300,
		MaxCreditScore:     850,
		APRTiers: []APRTier{
			{MinScore: 80, APR: 8},
			{MinScore: 65, APR: 11},
			{MinScore: 50, APR: 14},
		},
		DefaultAPR: 18,
	}
}
