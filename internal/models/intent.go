// internal/models/intent.go
package models

import "time"

// QuickReply is one suggested reply attached to a chatbot intent.
type QuickReply struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Payload string `json:"payload"`
}

// Intent maps trigger phrases to quick replies for the admin-configured
// chatbot. Intents are independent of the pricing and checkout flows.
type Intent struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Triggers     []string     `json:"triggers"`
	QuickReplies []QuickReply `json:"quickReplies"`
	Enabled      bool         `json:"enabled"`
	Notes        string       `json:"notes,omitempty"`
	CreatedAt    time.Time    `json:"createdAt"`
}
