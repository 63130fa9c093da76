package pricing

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "insurance-api/internal/common/errors"
	"insurance-api/internal/models"
)

const sampleCSV = `ageMin,ageMax,base,siMultiplier,smokerFactor,goldMultiplier,platinumMultiplier
18,35,1800,1.0,1.15,1.0,1.3
36,60,2400,1.1,1.25,1.0,1.3
61,100,3200,1.2,1.35,1.0,1.3
`

func TestParseUpload_CSV(t *testing.T) {
	table, err := ParseUpload("rates.csv", []byte(sampleCSV))
	require.NoError(t, err)
	require.Len(t, table.Rows, 3)

	assert.Equal(t, 18, table.Rows[0].AgeMin)
	assert.Equal(t, 35, table.Rows[0].AgeMax)
	assert.Equal(t, 1800.0, table.Rows[0].Field("base", 0))
	assert.Equal(t, 1.15, table.Rows[0].Field("smokerFactor", 0))
}

func TestParseUpload_Unreadable(t *testing.T) {
	tests := []struct {
		name string
		file string
		data []byte
	}{
		{"binary garbage xlsx", "rates.xlsx", []byte{0x00, 0x01, 0x02, 0x03}},
		{"header only", "rates.csv", []byte("ageMin,ageMax,base\n")},
		{"empty", "rates.csv", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseUpload(tt.file, tt.data)
			require.Error(t, err)

			var stdErr *apperrors.StandardError
			require.True(t, errors.As(err, &stdErr))
			assert.Equal(t, apperrors.ErrCodeUnreadableTable, stdErr.Code)
		})
	}
}

func TestRateTable_RowSelection(t *testing.T) {
	table, err := ParseUpload("rates.csv", []byte(sampleCSV))
	require.NoError(t, err)

	assert.Equal(t, 1800.0, table.RowFor(30).Field("base", 0))
	assert.Equal(t, 2400.0, table.RowFor(36).Field("base", 0))
	assert.Equal(t, 3200.0, table.RowFor(100).Field("base", 0))

	// No matching range falls back to the first row.
	assert.Equal(t, 1800.0, table.RowFor(10).Field("base", 0))
}

func TestQuoteWithTable_Formula(t *testing.T) {
	table, err := ParseUpload("rates.csv", []byte(sampleCSV))
	require.NoError(t, err)

	req := models.QuoteRequest{
		Applicant:  models.Applicant{Name: "Ravi Nair", Age: 40},
		Plan:       models.PlanPlatinum,
		SumInsured: 1000000,
	}

	result := QuoteWithTable(req, table)

	// base 2400 * (1.1 * 10) * 1.3 = 34320
	assert.Equal(t, 34320, result.Premium)
	assert.Equal(t, result.Premium, int(math.Round(result.BreakdownTotal())))
}

func TestQuoteWithTable_SmokerFactorFromRow(t *testing.T) {
	table, err := ParseUpload("rates.csv", []byte(sampleCSV))
	require.NoError(t, err)

	req := models.QuoteRequest{
		Applicant:  models.Applicant{Name: "Meera Pillai", Age: 25, Smoker: true},
		Plan:       models.PlanGold,
		SumInsured: 500000,
	}

	result := QuoteWithTable(req, table)

	// base 1800 * (1.0 * 5) * 1.15 = 10350
	assert.Equal(t, 10350, result.Premium)
	assert.Equal(t, result.Premium, int(math.Round(result.BreakdownTotal())))
}

func TestQuoteWithTable_MissingFieldsFallBackToDefaults(t *testing.T) {
	csv := "ageMin,ageMax\n18,100\n"
	table, err := ParseUpload("rates.csv", []byte(csv))
	require.NoError(t, err)

	req := models.QuoteRequest{
		Applicant:  models.Applicant{Name: "Dev Kapoor", Age: 45},
		Plan:       models.PlanGold,
		SumInsured: 500000,
	}

	result := QuoteWithTable(req, table)

	// Documented defaults: base 2000, all multipliers 1 -> 2000 * 5
	assert.Equal(t, 10000, result.Premium)
}

func TestQuoteWithTable_PlanMultiplierFallbackChain(t *testing.T) {
	csv := "ageMin,ageMax,base,siMultiplier,planMultiplier\n18,100,2000,1.0,1.1\n"
	table, err := ParseUpload("rates.csv", []byte(csv))
	require.NoError(t, err)

	req := models.QuoteRequest{
		Applicant:  models.Applicant{Name: "Dev Kapoor", Age: 45},
		Plan:       models.PlanGold,
		SumInsured: 500000,
	}

	// goldMultiplier is absent, so the generic planMultiplier applies.
	result := QuoteWithTable(req, table)
	assert.Equal(t, 11000, result.Premium)
}

func TestQuoteWithTable_NilTableUsesDefaults(t *testing.T) {
	req := models.QuoteRequest{
		Applicant:  models.Applicant{Name: "Asha Verma", Age: 30},
		Plan:       models.PlanGold,
		SumInsured: 500000,
	}

	assert.Equal(t, Quote(req), QuoteWithTable(req, nil))
}

func TestQuoteWithTable_RidersStayFlat(t *testing.T) {
	table, err := ParseUpload("rates.csv", []byte(sampleCSV))
	require.NoError(t, err)

	req := models.QuoteRequest{
		Applicant:  models.Applicant{Name: "Asha Verma", Age: 30},
		Plan:       models.PlanGold,
		SumInsured: 500000,
	}
	without := QuoteWithTable(req, table)

	req.Addons.CriticalIllness = true
	with := QuoteWithTable(req, table)

	assert.Equal(t, without.Premium+850, with.Premium)
}
