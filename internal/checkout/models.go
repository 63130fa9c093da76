// internal/checkout/models.go
package checkout

import (
	"math"
	"regexp"

	"insurance-api/internal/models"
)

// FinancingOption is the installment choice submitted at checkout.
type FinancingOption struct {
	Months int `json:"months"`
}

// Request carries the payment details for one checkout attempt. The card
// number never leaves this struct unmasked.
type Request struct {
	CardNumber string           `json:"cardNumber"`
	Holder     string           `json:"holder"`
	Expiry     string           `json:"expiry,omitempty"`
	CVV        string           `json:"cvv,omitempty"`
	Financing  *FinancingOption `json:"financing,omitempty"`
}

// Result is the outcome of a successful checkout. Degraded marks policies
// whose server-side issuance failed; the user still sees success.
type Result struct {
	Policy   models.Policy `json:"policy"`
	Degraded bool          `json:"degraded"`
}

var (
	amexPattern       = regexp.MustCompile(`^3[47]`)
	visaPattern       = regexp.MustCompile(`^4`)
	mastercardPattern = regexp.MustCompile(`^5[1-5]`)
)

// InferBrand maps a leading-digit pattern to a card brand.
func InferBrand(cardNumber string) string {
	switch {
	case amexPattern.MatchString(cardNumber):
		return "Amex"
	case visaPattern.MatchString(cardNumber):
		return "Visa"
	case mastercardPattern.MatchString(cardNumber):
		return "MasterCard"
	default:
		return "Card"
	}
}

// Last4 returns the final four digits of a card number.
func Last4(cardNumber string) string {
	if len(cardNumber) < 4 {
		return cardNumber
	}
	return cardNumber[len(cardNumber)-4:]
}

// BuildFinancing converts an installment choice into a financing record.
// A nil or zero-month option means full upfront payment.
func BuildFinancing(premium int, opt *FinancingOption) *models.Financing {
	if opt == nil || opt.Months <= 0 {
		return nil
	}
	monthly := math.Round(float64(premium)/float64(opt.Months)*100) / 100
	return &models.Financing{
		Months:  opt.Months,
		Monthly: monthly,
		Total:   float64(premium),
	}
}
