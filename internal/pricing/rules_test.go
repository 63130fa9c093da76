package pricing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"insurance-api/internal/models"
)

func baseRequest() models.QuoteRequest {
	return models.QuoteRequest{
		Applicant: models.Applicant{
			Name:   "Asha Verma",
			Age:    30,
			Gender: "female",
		},
		Plan:       models.PlanGold,
		SumInsured: 500000,
		Deductible: 0,
	}
}

func TestQuote_CanonicalScenario(t *testing.T) {
	// age 30, SI 500000, gold, non-smoker, no deductible, no addons:
	// (2200 + 150) * 5 = 11750
	result := Quote(baseRequest())

	assert.Equal(t, 11750, result.Premium)
	require.GreaterOrEqual(t, len(result.Breakdown), 4)
	assert.Equal(t, "Base premium", result.Breakdown[0].Label)
	assert.Equal(t, 2200.0, result.Breakdown[0].Amount)
	assert.Equal(t, "Age factor", result.Breakdown[1].Label)
	assert.Equal(t, 150.0, result.Breakdown[1].Amount)
}

func TestQuote_SmokerScenario(t *testing.T) {
	req := baseRequest()
	req.Applicant.Smoker = true

	result := Quote(req)

	assert.Equal(t, 13865, result.Premium) // round(11750 * 1.18)
}

func TestQuote_MaternityRiderAddsExactly500(t *testing.T) {
	without := Quote(baseRequest())

	req := baseRequest()
	req.Addons.Maternity = true
	with := Quote(req)

	assert.Equal(t, without.Premium+500, with.Premium)

	var found *models.BreakdownLine
	for i := range with.Breakdown {
		if with.Breakdown[i].Label == "Maternity rider" {
			found = &with.Breakdown[i]
		}
	}
	require.NotNil(t, found, "expected a maternity rider breakdown line")
	assert.Equal(t, 500.0, found.Amount)
}

func TestQuote_BreakdownReconcilesWithPremium(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(*models.QuoteRequest)
	}{
		{"defaults", func(r *models.QuoteRequest) {}},
		{"smoker", func(r *models.QuoteRequest) { r.Applicant.Smoker = true }},
		{"high deductible", func(r *models.QuoteRequest) { r.Deductible = 5000 }},
		{"platinum all addons", func(r *models.QuoteRequest) {
			r.Plan = models.PlanPlatinum
			r.Addons = models.Addons{Maternity: true, CriticalIllness: true, OPD: true}
		}},
		{"silver old smoker", func(r *models.QuoteRequest) {
			r.Plan = models.PlanSilver
			r.Applicant.Age = 64
			r.Applicant.Smoker = true
			r.SumInsured = 2000000
		}},
		{"max sum insured", func(r *models.QuoteRequest) { r.SumInsured = 5000000 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := baseRequest()
			tt.mutate(&req)

			result := Quote(req)

			assert.Equal(t, result.Premium, int(math.Round(result.BreakdownTotal())),
				"premium must reconcile with the breakdown total")
		})
	}
}

func TestQuote_AgeFactorIsMonotonic(t *testing.T) {
	prev := -1.0
	for age := 18; age <= 100; age++ {
		req := baseRequest()
		req.Applicant.Age = age

		result := Quote(req)
		ageFactor := result.Breakdown[1].Amount

		assert.GreaterOrEqual(t, ageFactor, prev, "age factor decreased at age %d", age)
		prev = ageFactor
	}
}

func TestQuote_PlanOrdering(t *testing.T) {
	silver := baseRequest()
	silver.Plan = models.PlanSilver
	gold := baseRequest()
	platinum := baseRequest()
	platinum.Plan = models.PlanPlatinum

	pSilver := Quote(silver).Premium
	pGold := Quote(gold).Premium
	pPlatinum := Quote(platinum).Premium

	assert.Less(t, pSilver, pGold)
	assert.Less(t, pGold, pPlatinum)
}

func TestQuote_SmokerLoadingFactor(t *testing.T) {
	for _, sumInsured := range models.SupportedSumsInsured {
		req := baseRequest()
		req.SumInsured = sumInsured
		nonSmoker := Quote(req).Premium

		req.Applicant.Smoker = true
		smoker := Quote(req).Premium

		expected := int(math.Round(float64(nonSmoker) * SmokerLoading))
		assert.InDelta(t, expected, smoker, 1, "sumInsured=%d", sumInsured)
	}
}

func TestQuote_HighDeductibleAdjustment(t *testing.T) {
	req := baseRequest()
	full := Quote(req).Premium

	req.Deductible = 5000
	discounted := Quote(req).Premium

	expected := int(math.Round(float64(full) * HighDeductibleFactor))
	assert.InDelta(t, expected, discounted, 1)

	// Below the threshold there is no adjustment.
	req.Deductible = 4999
	assert.Equal(t, full, Quote(req).Premium)
}

func TestQuote_Idempotent(t *testing.T) {
	req := baseRequest()
	req.Applicant.Smoker = true
	req.Addons.OPD = true

	first := Quote(req)
	second := Quote(req)

	assert.Equal(t, first, second)
}

func TestQuote_MinimumSumInsuredFactorIsOne(t *testing.T) {
	req := baseRequest()
	req.SumInsured = 50000 // below one unit

	result := Quote(req)

	// (2200 + 150) * 1, gold multiplier 1.0
	assert.Equal(t, 2350, result.Premium)
}
