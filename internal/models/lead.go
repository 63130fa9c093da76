// internal/models/lead.go
package models

import "time"

const (
	LeadStatusNew       = "new"
	LeadStatusContacted = "contacted"
	LeadStatusClosed    = "closed"
)

// Lead is a marketing inquiry captured from the public site and worked from
// the admin dashboard.
type Lead struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Message   string    `json:"message,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}
