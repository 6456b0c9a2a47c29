// internal/catalog/catalog_test.go
package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loanpath-api/internal/common/logger"
)

func writeTestCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "offers.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestCatalog_LoadsCSV(t *testing.T) {
	path := writeTestCSV(t, `lenderName,minRate,maxRate,minAmount,maxAmount,tenureMonths,processingFeePercent,fundingSpeedDays,minCreditScore,minIncome
Alpha Lending,9.5,14.0,10000,500000,48,1.5,3,680,30000
Beta Capital,11.0,11.0,0,250000,36,0,1,0,0
`)
	cat := New(path, logger.NewNoOpLogger())

	require.NoError(t, cat.Load())
	offers, err := cat.Offers()
	require.NoError(t, err)
	require.Len(t, offers, 2)

	assert.Equal(t, "Alpha Lending", offers[0].LenderName)
	assert.Equal(t, 9.5, offers[0].MinRate)
	assert.Equal(t, 48, offers[0].TenureMonths)
	assert.Equal(t, 680.0, offers[0].MinCreditScore)
	assert.True(t, offers[1].FlatRate())
}

func TestCatalog_DropsRowsWithoutLender(t *testing.T) {
	path := writeTestCSV(t, `lenderName,minRate,maxRate,maxAmount,tenureMonths
Good Lender,8,12,100000,24
,9,13,200000,36
   ,10,14,300000,48
`)
	cat := New(path, logger.NewNoOpLogger())

	require.NoError(t, cat.Load())
	offers, err := cat.Offers()
	require.NoError(t, err)
	require.Len(t, offers, 1)
	assert.Equal(t, "Good Lender", offers[0].LenderName)
}

func TestCatalog_CoercesBadNumbersToZero(t *testing.T) {
	path := writeTestCSV(t, `lenderName,minRate,maxRate,maxAmount,tenureMonths
Odd Lender,not-a-number,12,,36
`)
	cat := New(path, logger.NewNoOpLogger())

	require.NoError(t, cat.Load())
	offers, err := cat.Offers()
	require.NoError(t, err)
	require.Len(t, offers, 1)
	assert.Equal(t, 0.0, offers[0].MinRate)
	assert.Equal(t, 0.0, offers[0].MaxAmount)
}

func TestCatalog_SeedFallback(t *testing.T) {
	cat := New("", logger.NewNoOpLogger())

	require.NoError(t, cat.Load())
	offers, err := cat.Offers()
	require.NoError(t, err)
	assert.Len(t, offers, 5)
	assert.Equal(t, 5, cat.Count())
}

func TestCatalog_OffersBeforeLoad(t *testing.T) {
	cat := New("", logger.NewNoOpLogger())

	offers, err := cat.Offers()
	assert.Nil(t, offers)
	assert.Error(t, err)
}

func TestCatalog_LoadMissingFile(t *testing.T) {
	cat := New(filepath.Join(t.TempDir(), "nope.csv"), logger.NewNoOpLogger())

	err := cat.Load()
	require.Error(t, err)

	// Load is one-shot: the failure sticks.
	assert.Error(t, cat.Load())
	_, err = cat.Offers()
	assert.Error(t, err)
}

func TestCatalog_LoadIsIdempotent(t *testing.T) {
	path := writeTestCSV(t, `lenderName,minRate,maxRate,maxAmount,tenureMonths
Solo,8,8,100000,12
`)
	cat := New(path, logger.NewNoOpLogger())

	require.NoError(t, cat.Load())
	require.NoError(t, cat.Load())
	assert.Equal(t, 1, cat.Count())
}
