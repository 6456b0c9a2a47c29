// cmd/tools/offer-seeder/main.go
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"strconv"

	"loanpath-api/internal/catalog"
)

var lenderPrefixes = []string{
	"TrustAxis", "Nava", "Sahara", "Metro", "HarborLine", "BlueRock",
	"Crestline", "Summit", "Oakfield", "Lakeside", "Ironbridge", "Northgate",
}

var lenderSuffixes = []string{
	"Finance", "Capital", "Credit Union", "Lend", "Bank", "Funding", "Loans",
}

func main() {
	out := flag.String("out", "data/loan_offers.csv", "output CSV path")
	count := flag.Int("count", 1000, "number of synthetic offers to generate")
	seed := flag.Int64("seed", 42, "RNG seed, fixed for reproducible datasets")
	flag.Parse()

	if err := run(*out, *count, *seed); err != nil {
		fmt.Fprintf(os.Stderr, "offer-seeder: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("wrote %d offers to %s\n", *count, *out)
}

func run(out string, count int, seed int64) error {
	f, err := os.Create(out)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"lenderName", "minRate", "maxRate", "minAmount", "maxAmount",
		"tenureMonths", "processingFeePercent", "fundingSpeedDays",
		"minCreditScore", "minIncome",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	rng := rand.New(rand.NewSource(seed))

	// First rows mirror the built-in seed lenders so a generated dataset is
	// always a superset of the fallback catalog.
	for _, o := range catalog.SeedOffers() {
		row := []string{
			o.LenderName,
			formatRate(o.MinRate), formatRate(o.MaxRate),
			formatAmount(o.MinAmount), formatAmount(o.MaxAmount),
			strconv.Itoa(o.TenureMonths),
			formatRate(o.ProcessingFeePct),
			strconv.Itoa(o.FundingSpeedDays),
			formatAmount(o.MinCreditScore), formatAmount(o.MinIncome),
		}
		if err := w.Write(row); err != nil {
			return err
		}
		count--
	}

	for i := 0; i < count; i++ {
		minRate := 6 + rng.Float64()*8 // 6..14
		maxRate := minRate + rng.Float64()*6
		minAmount := float64(rng.Intn(8)) * 25000
		maxAmount := minAmount + 100000 + float64(rng.Intn(15))*100000
		tenure := []int{12, 24, 36, 48, 60, 72, 84, 96}[rng.Intn(8)]

		row := []string{
			lenderName(rng, i),
			formatRate(minRate), formatRate(maxRate),
			formatAmount(minAmount), formatAmount(maxAmount),
			strconv.Itoa(tenure),
			formatRate(rng.Float64() * 3),
			strconv.Itoa(1 + rng.Intn(10)),
			formatAmount([]float64{0, 580, 620, 660, 700}[rng.Intn(5)]), // 0 means no floor
			formatAmount(float64(rng.Intn(4)) * 15000),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func lenderName(rng *rand.Rand, i int) string {
	prefix := lenderPrefixes[rng.Intn(len(lenderPrefixes))]
	suffix := lenderSuffixes[rng.Intn(len(lenderSuffixes))]
	return fmt.Sprintf("%s %s %d", prefix, suffix, i+1)
}

func formatRate(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 0, 64)
}
