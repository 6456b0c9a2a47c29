// internal/catalog/catalog.go
package catalog

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"sync"

	"loanpath-api/internal/common/logger"
	"loanpath-api/internal/models"
)

// Catalog holds the lender offer dataset. Loaded once at startup, read-only
// afterwards, safe for concurrent readers.
type Catalog struct {
	csvPath string
	log     logger.Logger

	once    sync.Once
	loadErr error
	offers  []models.LoanOffer
}

func New(csvPath string, log logger.Logger) *Catalog {
	return &Catalog{csvPath: csvPath, log: log}
}

// Load reads the configured CSV dataset into memory. With no path configured
// it falls back to the built-in seed lenders. Subsequent calls are no-ops
// returning the first outcome; call before accepting traffic.
func (c *Catalog) Load() error {
	c.once.Do(func() {
		if c.csvPath == "" {
			c.offers = SeedOffers()
			c.log.Info("Loan offer catalog seeded from built-in list", map[string]interface{}{
				"offers": len(c.offers),
			})
			return
		}

		offers, err := loadCSV(c.csvPath)
		if err != nil {
			c.loadErr = fmt.Errorf("loading offer catalog from %s: %w", c.csvPath, err)
			return
		}
		c.offers = offers
		c.log.Info("Loan offer catalog loaded", map[string]interface{}{
			"path":   c.csvPath,
			"offers": len(c.offers),
		})
	})
	return c.loadErr
}

// Offers returns the full dataset. Returns an error if Load was never called
// or failed; callers must not treat that as an empty catalog.
func (c *Catalog) Offers() ([]models.LoanOffer, error) {
	if c.offers == nil {
		if c.loadErr != nil {
			return nil, c.loadErr
		}
		return nil, fmt.Errorf("offer catalog not loaded; call Load at startup")
	}
	return c.offers, nil
}

// Count reports the loaded dataset size, 0 when not loaded.
func (c *Catalog) Count() int {
	return len(c.offers)
}

func loadCSV(path string) ([]models.LoanOffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}
	if _, ok := col["lenderName"]; !ok {
		return nil, fmt.Errorf("missing lenderName column")
	}

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}

	offers := make([]models.LoanOffer, 0, len(rows))
	for _, row := range rows {
		field := func(name string) string {
			i, ok := col[name]
			if !ok || i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}

		lender := field("lenderName")
		if lender == "" {
			continue
		}
		offers = append(offers, models.LoanOffer{
			LenderName:       lender,
			MinRate:          toNumber(field("minRate")),
			MaxRate:          toNumber(field("maxRate")),
			MinAmount:        toNumber(field("minAmount")),
			MaxAmount:        toNumber(field("maxAmount")),
			TenureMonths:     int(toNumber(field("tenureMonths"))),
			ProcessingFeePct: toNumber(field("processingFeePercent")),
			FundingSpeedDays: int(toNumber(field("fundingSpeedDays"))),
			MinCreditScore:   toNumber(field("minCreditScore")),
			MinIncome:        toNumber(field("minIncome")),
		})
	}
	return offers, nil
}

// toNumber coerces a CSV field, falling back to 0 on anything non-finite.
func toNumber(s string) float64 {
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// SeedOffers is the built-in fallback dataset used when no CSV is configured.
func SeedOffers() []models.LoanOffer {
	return []models.LoanOffer{
		{LenderName: "TrustAxis Finance", MinRate: 9.5, MaxRate: 14.2, MinAmount: 50000, MaxAmount: 1000000, TenureMonths: 72, FundingSpeedDays: 3},
		{LenderName: "NavaCapital", MinRate: 10.2, MaxRate: 16.4, MinAmount: 25000, MaxAmount: 800000, TenureMonths: 60, FundingSpeedDays: 2},
		{LenderName: "SaharaCredit Union", MinRate: 8.9, MaxRate: 13.8, MinAmount: 75000, MaxAmount: 1200000, TenureMonths: 84, FundingSpeedDays: 5},
		{LenderName: "MetroLend", MinRate: 11.1, MaxRate: 17.9, MinAmount: 20000, MaxAmount: 500000, TenureMonths: 48, FundingSpeedDays: 1},
		{LenderName: "HarborLine Bank", MinRate: 9.8, MaxRate: 15.0, MinAmount: 100000, MaxAmount: 1500000, TenureMonths: 96, FundingSpeedDays: 4},
	}
}
