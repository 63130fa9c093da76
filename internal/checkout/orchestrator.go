package checkout

import (
	"context"
	"time"

	apperrors "insurance-api/internal/common/errors"
	"insurance-api/internal/common/logger"
	"insurance-api/internal/common/metrics"
	"insurance-api/internal/models"
)

// CartSource supplies the stored quote being purchased.
type CartSource interface {
	LoadCart(ctx context.Context) (models.Cart, error)
}

// PaymentMethodSaver persists masked payment summaries.
type PaymentMethodSaver interface {
	SavePaymentMethod(ctx context.Context, summary models.PaymentMethodSummary) error
}

// PolicyIssuer turns an authorized payment into an issued policy. An error
// here must never block the user: the orchestrator degrades to the locally
// generated identifier and records the gap for reconciliation.
type PolicyIssuer interface {
	Issue(ctx context.Context, policy models.Policy) error
}

// Reconciler records degraded issuances so they are not silently lost.
type Reconciler interface {
	RecordDegraded(ctx context.Context, record models.ReconciliationRecord) error
}

// Notifier emits optional post-checkout notifications (confirmation email,
// degraded-issuance alert). Implementations must not fail checkout.
type Notifier interface {
	PolicyIssued(ctx context.Context, policy models.Policy)
	IssuanceDegraded(ctx context.Context, policy models.Policy, cause error)
}

// Orchestrator runs the checkout flow: authorize, persist the masked payment
// method, issue the policy, notify.
type Orchestrator struct {
	carts      CartSource
	payments   PaymentMethodSaver
	issuer     PolicyIssuer
	reconciler Reconciler
	authorizer Authorizer
	ids        IDGenerator
	notifier   Notifier
	logger     logger.Logger
}

func NewOrchestrator(
	carts CartSource,
	payments PaymentMethodSaver,
	issuer PolicyIssuer,
	reconciler Reconciler,
	authorizer Authorizer,
	ids IDGenerator,
	notifier Notifier,
	log logger.Logger,
) *Orchestrator {
	return &Orchestrator{
		carts:      carts,
		payments:   payments,
		issuer:     issuer,
		reconciler: reconciler,
		authorizer: authorizer,
		ids:        ids,
		notifier:   notifier,
		logger:     log.WithFields(map[string]interface{}{"component": "checkout"}),
	}
}

// CreateSession opens a simulated payment session for the stored quote.
func (o *Orchestrator) CreateSession(ctx context.Context) (*models.CheckoutSession, error) {
	cart, err := o.carts.LoadCart(ctx)
	if err != nil {
		return nil, err
	}

	session := &models.CheckoutSession{
		SessionID: o.ids.SessionID(),
		Amount:    cart.Premium,
		Currency:  "INR",
		Status:    "open",
		CreatedAt: time.Now().UTC(),
	}

	o.logger.Info("checkout session created", map[string]interface{}{
		"sessionId": session.SessionID,
		"amount":    session.Amount,
	})
	return session, nil
}

// Process runs one checkout attempt against the stored quote.
func (o *Orchestrator) Process(ctx context.Context, req Request) (*Result, error) {
	cart, err := o.carts.LoadCart(ctx)
	if err != nil {
		return nil, err
	}
	if cart.Premium <= 0 {
		return nil, apperrors.NewCartEmptyError()
	}

	auth, err := o.authorizer.Authorize(ctx, cart.Premium)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	if !auth.Approved {
		metrics.CheckoutsProcessed.WithLabelValues("declined").Inc()
		return nil, apperrors.NewAuthorizationDeclinedError(auth.Reason)
	}

	paymentID := o.ids.PaymentID()

	// The saved summary keeps only the brand and last four digits. A save
	// failure is logged and ignored: it is a convenience list, not part of
	// the purchase.
	summary := models.PaymentMethodSummary{
		Brand:   InferBrand(req.CardNumber),
		Last4:   Last4(req.CardNumber),
		Holder:  req.Holder,
		SavedAt: time.Now().UTC(),
	}
	if err := o.payments.SavePaymentMethod(ctx, summary); err != nil {
		o.logger.Warn("failed to save payment method summary", map[string]interface{}{
			"error": err.Error(),
		})
	}

	policy := models.Policy{
		PolicyID:  o.ids.PolicyID(),
		PaymentID: paymentID,
		Plan:      cart.Plan,
		Holder:    cart.Holder,
		Product:   cart.Product,
		Premium:   cart.Premium,
		Financing: BuildFinancing(cart.Premium, req.Financing),
		IssuedAt:  time.Now().UTC(),
	}

	degraded := false
	if err := o.issuer.Issue(ctx, policy); err != nil {
		// Issuance failure must never block the confirmation. The locally
		// generated policyId stands, and the gap goes to reconciliation.
		degraded = true
		policy.Degraded = true

		o.logger.Error("policy issuance failed, degrading to local identifier", map[string]interface{}{
			"policyId": policy.PolicyID,
			"error":    err.Error(),
		})

		record := models.ReconciliationRecord{
			PolicyID:  policy.PolicyID,
			PaymentID: policy.PaymentID,
			Reason:    err.Error(),
			CreatedAt: time.Now().UTC(),
		}
		if recErr := o.reconciler.RecordDegraded(ctx, record); recErr != nil {
			o.logger.Error("failed to record reconciliation entry", map[string]interface{}{
				"policyId": policy.PolicyID,
				"error":    recErr.Error(),
			})
		}
		if o.notifier != nil {
			o.notifier.IssuanceDegraded(ctx, policy, err)
		}
		metrics.CheckoutsProcessed.WithLabelValues("degraded").Inc()
	} else {
		if o.notifier != nil {
			o.notifier.PolicyIssued(ctx, policy)
		}
		metrics.CheckoutsProcessed.WithLabelValues("succeeded").Inc()
	}

	o.logger.Info("checkout completed", map[string]interface{}{
		"policyId":  policy.PolicyID,
		"paymentId": policy.PaymentID,
		"degraded":  degraded,
	})

	return &Result{Policy: policy, Degraded: degraded}, nil
}
