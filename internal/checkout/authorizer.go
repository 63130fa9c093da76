package checkout

import (
	"context"
	"math/rand"
	"time"
)

// Authorization is the outcome of one simulated payment authorization.
type Authorization struct {
	Approved bool
	// Reason is the decline message, surfaced to the user verbatim.
	Reason string
}

// Authorizer decides whether a payment goes through. Randomness lives behind
// this interface so tests can force either outcome deterministically.
type Authorizer interface {
	Authorize(ctx context.Context, amount int) (Authorization, error)
}

// AlwaysApproveAuthorizer approves every payment.
type AlwaysApproveAuthorizer struct{}

func (AlwaysApproveAuthorizer) Authorize(ctx context.Context, amount int) (Authorization, error) {
	return Authorization{Approved: true}, nil
}

// AlwaysDeclineAuthorizer declines every payment with a fixed reason.
type AlwaysDeclineAuthorizer struct {
	Reason string
}

func (a AlwaysDeclineAuthorizer) Authorize(ctx context.Context, amount int) (Authorization, error) {
	reason := a.Reason
	if reason == "" {
		reason = "Payment was declined by the issuing bank"
	}
	return Authorization{Approved: false, Reason: reason}, nil
}

// ProbabilisticAuthorizer simulates a payment provider: a fixed artificial
// delay, then approval at the configured rate.
type ProbabilisticAuthorizer struct {
	Rate  float64
	Delay time.Duration
	Rand  *rand.Rand
}

func NewProbabilisticAuthorizer(rate float64, delay time.Duration, seed int64) *ProbabilisticAuthorizer {
	return &ProbabilisticAuthorizer{
		Rate:  rate,
		Delay: delay,
		Rand:  rand.New(rand.NewSource(seed)),
	}
}

func (a *ProbabilisticAuthorizer) Authorize(ctx context.Context, amount int) (Authorization, error) {
	if a.Delay > 0 {
		select {
		case <-time.After(a.Delay):
		case <-ctx.Done():
			return Authorization{}, ctx.Err()
		}
	}

	if a.Rand.Float64() < a.Rate {
		return Authorization{Approved: true}, nil
	}
	return Authorization{Approved: false, Reason: "Payment was declined by the issuing bank"}, nil
}
