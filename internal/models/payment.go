// internal/models/payment.go
package models

import (
	"encoding/json"
	"time"
)

// PaymentMethodSummary is the masked record kept after a successful checkout.
// Only the brand and last four digits are retained, never the full number.
type PaymentMethodSummary struct {
	Brand   string    `json:"brand"`
	Last4   string    `json:"last4"`
	Holder  string    `json:"holder"`
	SavedAt time.Time `json:"savedAt"`
}

// CheckoutSession is a simulated payment-provider session.
type CheckoutSession struct {
	SessionID string    `json:"sessionId"`
	Amount    int       `json:"amount"`
	Currency  string    `json:"currency"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// PaymentEvent is one webhook receipt from the payment provider, recorded
// verbatim for later inspection.
type PaymentEvent struct {
	ID         int64           `json:"id"`
	Provider   string          `json:"provider"`
	Type       string          `json:"type"`
	SessionID  string          `json:"sessionId"`
	Payload    json.RawMessage `json:"payload"`
	ReceivedAt time.Time       `json:"receivedAt"`
}
