package checkout

import (
	"strings"

	"github.com/google/uuid"
)

// IDGenerator produces the prefixed identifiers used across checkout.
// Uniqueness is best-effort, not a cryptographic guarantee; the uuid backing
// makes collisions practically irrelevant for this service's scale.
type IDGenerator interface {
	PolicyID() string
	PaymentID() string
	SessionID() string
}

// UUIDGenerator is the production IDGenerator.
type UUIDGenerator struct{}

func (UUIDGenerator) PolicyID() string {
	return "POL-" + shortID()
}

func (UUIDGenerator) PaymentID() string {
	return "PAY-" + shortID()
}

func (UUIDGenerator) SessionID() string {
	return "CS-" + shortID()
}

func shortID() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:12])
}

// FixedIDGenerator returns predetermined identifiers, for tests.
type FixedIDGenerator struct {
	Policy  string
	Payment string
	Session string
}

func (g FixedIDGenerator) PolicyID() string  { return g.Policy }
func (g FixedIDGenerator) PaymentID() string { return g.Payment }
func (g FixedIDGenerator) SessionID() string { return g.Session }
