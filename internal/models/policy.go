// internal/models/policy.go
package models

import "time"

// Financing describes an optional installment arrangement for the premium.
type Financing struct {
	Months  int     `json:"months"`
	Monthly float64 `json:"monthly"`
	Total   float64 `json:"total"`
}

// Policy is an issued insurance policy record.
type Policy struct {
	PolicyID  string     `json:"policyId"`
	PaymentID string     `json:"paymentId"`
	Plan      Plan       `json:"plan"`
	Holder    string     `json:"holder"`
	Product   string     `json:"product"`
	Premium   int        `json:"premium"`
	Financing *Financing `json:"financing,omitempty"`
	IssuedAt  time.Time  `json:"issuedAt"`
	// Degraded marks policies whose server-side issuance failed and whose
	// identifier was generated locally, pending reconciliation.
	Degraded bool `json:"degraded,omitempty"`
}

// ReconciliationRecord tracks a degraded issuance so it can be reconciled
// later instead of being silently lost.
type ReconciliationRecord struct {
	ID        int64     `json:"id"`
	PolicyID  string    `json:"policyId"`
	PaymentID string    `json:"paymentId"`
	Reason    string    `json:"reason"`
	Resolved  bool      `json:"resolved"`
	CreatedAt time.Time `json:"createdAt"`
}
