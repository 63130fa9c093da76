// internal/quote/models.go
package quote

import "insurance-api/internal/models"

// Pricing sources, in fallback order.
const (
	SourceRemote          = "remote"
	SourceFallbackTable   = "fallback_table"
	SourceFallbackDefault = "fallback_default"
)

// remoteRequest is the wire payload sent to the remote pricing endpoint.
type remoteRequest struct {
	Applicant  models.Applicant  `json:"applicant"`
	Plan       models.Plan       `json:"plan"`
	SumInsured int               `json:"sumInsured"`
	Deductible int               `json:"deductible"`
	Addons     models.Addons     `json:"addons"`
	StartDate  string            `json:"startDate,omitempty"`
	Meta       map[string]string `json:"meta,omitempty"`
}

// Outcome pairs a computed quote with the source that produced it.
type Outcome struct {
	Result models.QuoteResult `json:"result"`
	Source string             `json:"source"`
}
