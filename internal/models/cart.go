// internal/models/cart.go
package models

// Coverage is one named benefit inside a cart summary.
type Coverage struct {
	Name        string `json:"name"`
	Amount      int    `json:"amount"`
	Description string `json:"description,omitempty"`
}

// Cart is the single "current quote" slot persisted between the quote and
// checkout steps. It is replaced wholesale on save, never mutated in place.
type Cart struct {
	PolicyNumber string     `json:"policyNumber"`
	Holder       string     `json:"holder"`
	Product      string     `json:"product"`
	Plan         Plan       `json:"plan"`
	Premium      int        `json:"premium"`
	Coverages    []Coverage `json:"coverages"`
	Term         string     `json:"term"`
	Summary      string     `json:"summary,omitempty"`
}

// SampleCart is returned by the cart store when nothing has been saved yet,
// so the checkout page always has something to render.
func SampleCart() Cart {
	return Cart{
		PolicyNumber: "QT-SAMPLE-0001",
		Holder:       "Guest Visitor",
		Product:      "HealthShield Gold",
		Plan:         PlanGold,
		Premium:      11750,
		Coverages: []Coverage{
			{Name: "Hospitalization", Amount: 500000, Description: "In-patient treatment cover"},
			{Name: "Ambulance", Amount: 5000, Description: "Per-incident ambulance charges"},
		},
		Term:    "1 year",
		Summary: "Sample quote shown before any quote has been saved",
	}
}
