// Package pricing computes premiums and itemized breakdowns. It is pure:
// given the same request and rate table it always produces the same result,
// and it never errors on well-formed input.
package pricing

import (
	"fmt"
	"math"

	"insurance-api/internal/models"
)

// Canonical rate constants. The public site and the quick-quote widget of the
// legacy system drifted apart on these; this table is the single source for
// both paths now.
const (
	BasePremium             = 2200.0
	AgeRate                 = 30.0
	AgePivot                = 25
	SmokerLoading           = 1.18
	HighDeductibleFactor    = 0.88
	HighDeductibleThreshold = 5000

	MaternityRider       = 500.0
	CriticalIllnessRider = 850.0
	OPDRider             = 150.0

	// sumInsuredUnit converts a sum insured into its scaling factor.
	sumInsuredUnit = 100000
)

var planMultipliers = map[models.Plan]float64{
	models.PlanSilver:   0.95,
	models.PlanGold:     1.00,
	models.PlanPlatinum: 1.28,
}

// PlanMultiplier returns the price multiplier for a plan, 1.0 for unknown
// plans.
func PlanMultiplier(plan models.Plan) float64 {
	if m, ok := planMultipliers[plan]; ok {
		return m
	}
	return 1.0
}

// SumInsuredFactor scales the premium by sum insured, never below 1.
func SumInsuredFactor(sumInsured int) float64 {
	factor := float64(sumInsured) / sumInsuredUnit
	if factor < 1 {
		return 1
	}
	return factor
}

// Quote computes a premium from the built-in default rules. Each factor
// application emits one breakdown line carrying the incremental amount
// attributable to it; the smoker loading and the high-deductible adjustment
// appear only when applicable. Rounding happens once, at the end.
func Quote(req models.QuoteRequest) models.QuoteResult {
	breakdown := make([]models.BreakdownLine, 0, 8)

	running := BasePremium
	breakdown = append(breakdown, models.BreakdownLine{Label: "Base premium", Amount: BasePremium})

	ageYears := req.Applicant.Age - AgePivot
	if ageYears < 0 {
		ageYears = 0
	}
	ageFactor := float64(ageYears) * AgeRate
	running += ageFactor
	breakdown = append(breakdown, models.BreakdownLine{Label: "Age factor", Amount: ageFactor})

	siFactor := SumInsuredFactor(req.SumInsured)
	breakdown = append(breakdown, models.BreakdownLine{
		Label:  fmt.Sprintf("Sum insured scaling (x%.1f)", siFactor),
		Amount: running * (siFactor - 1),
	})
	running *= siFactor

	planMult := PlanMultiplier(req.Plan)
	breakdown = append(breakdown, models.BreakdownLine{
		Label:  fmt.Sprintf("%s plan adjustment", planTitle(req.Plan)),
		Amount: running * (planMult - 1),
	})
	running *= planMult

	if req.Applicant.Smoker {
		breakdown = append(breakdown, models.BreakdownLine{
			Label:  "Smoker loading",
			Amount: running * (SmokerLoading - 1),
		})
		running *= SmokerLoading
	}

	if req.Deductible >= HighDeductibleThreshold {
		breakdown = append(breakdown, models.BreakdownLine{
			Label:  "High deductible discount",
			Amount: running * (HighDeductibleFactor - 1),
		})
		running *= HighDeductibleFactor
	}

	running, breakdown = applyRiders(req.Addons, running, breakdown)

	return models.QuoteResult{
		Premium:   int(math.Round(running)),
		Breakdown: breakdown,
		Notes:     "Computed locally from default rates",
	}
}

// applyRiders appends the flat addon riders after the multiplicative chain.
func applyRiders(addons models.Addons, running float64, breakdown []models.BreakdownLine) (float64, []models.BreakdownLine) {
	if addons.Maternity {
		breakdown = append(breakdown, models.BreakdownLine{Label: "Maternity rider", Amount: MaternityRider})
		running += MaternityRider
	}
	if addons.CriticalIllness {
		breakdown = append(breakdown, models.BreakdownLine{Label: "Critical illness rider", Amount: CriticalIllnessRider})
		running += CriticalIllnessRider
	}
	if addons.OPD {
		breakdown = append(breakdown, models.BreakdownLine{Label: "OPD rider", Amount: OPDRider})
		running += OPDRider
	}
	return running, breakdown
}

func planTitle(plan models.Plan) string {
	switch plan {
	case models.PlanSilver:
		return "Silver"
	case models.PlanGold:
		return "Gold"
	case models.PlanPlatinum:
		return "Platinum"
	default:
		return "Standard"
	}
}
