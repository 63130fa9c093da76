// Package storage is the service-local key-value layer backed by Redis. It
// holds the single current-quote slot, the capped saved-payment-method list,
// the admin chatbot intents, the uploaded rate table, admin sessions and the
// admin view preference.
package storage

// Storage keys live in one registry so components cannot collide on ad-hoc
// key strings.
const (
	KeyCurrentQuote   = "quote:current"
	KeyPaymentMethods = "payments:saved"
	KeyIntents        = "admin:intents"
	KeyAdminViewPref  = "admin:view-pref"
	KeyRateTable      = "pricing:rate-table"

	// Session keys are KeySessionPrefix + token.
	KeySessionPrefix = "admin:session:"
)

// MaxSavedPaymentMethods caps the saved payment summaries, newest first.
const MaxSavedPaymentMethods = 5
