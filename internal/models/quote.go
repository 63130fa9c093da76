// internal/models/quote.go
package models

// Plan identifies a coverage tier with an associated price multiplier.
type Plan string

const (
	PlanSilver   Plan = "silver"
	PlanGold     Plan = "gold"
	PlanPlatinum Plan = "platinum"
)

// SupportedSumsInsured is the fixed set of sum-insured values offered.
var SupportedSumsInsured = []int{500000, 1000000, 2000000, 5000000}

// Applicant holds the form input for a prospective policy holder. It is
// immutable once submitted to pricing.
type Applicant struct {
	Name             string `json:"name"`
	Age              int    `json:"age"`
	Gender           string `json:"gender"`
	Smoker           bool   `json:"smoker"`
	PreExistingYears int    `json:"preExistingYears"`
}

// Addons are the optional flat-cost riders.
type Addons struct {
	Maternity       bool `json:"maternity"`
	CriticalIllness bool `json:"criticalIllness"`
	OPD             bool `json:"opd"`
}

// QuoteRequest is one pricing submission. It is constructed per request and
// never persisted independently.
type QuoteRequest struct {
	Applicant  Applicant `json:"applicant"`
	Plan       Plan      `json:"plan"`
	SumInsured int       `json:"sumInsured"`
	Deductible int       `json:"deductible"`
	Addons     Addons    `json:"addons"`
	StartDate  string    `json:"startDate,omitempty"`
}

// BreakdownLine is one named contributor to the total premium. Amounts may be
// negative for discounts. Line order reflects computation order: base, then
// factors, loadings, addon riders, adjustments.
type BreakdownLine struct {
	Label  string  `json:"label"`
	Amount float64 `json:"amount"`
}

// QuoteResult is the outcome of pricing, whether remote or locally computed.
// Premium reconciles with the breakdown: premium == round(sum of amounts).
type QuoteResult struct {
	Premium   int             `json:"premium"`
	Breakdown []BreakdownLine `json:"breakdown"`
	Notes     string          `json:"notes,omitempty"`
}

// BreakdownTotal sums the breakdown line amounts.
func (q QuoteResult) BreakdownTotal() float64 {
	var total float64
	for _, line := range q.Breakdown {
		total += line.Amount
	}
	return total
}
