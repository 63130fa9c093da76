// Package policy owns issued policies, their reconciliation records and the
// payment-provider webhook events, all persisted in PostgreSQL.
package policy

import (
	"context"
	"database/sql"
	"errors"

	apperrors "insurance-api/internal/common/errors"
	"insurance-api/internal/common/logger"
	"insurance-api/internal/models"
)

type Store struct {
	db     *sql.DB
	logger logger.Logger
}

func NewStore(db *sql.DB, log logger.Logger) *Store {
	return &Store{
		db:     db,
		logger: log.WithFields(map[string]interface{}{"component": "policy"}),
	}
}

// EnsureSchema creates the policy tables when they do not exist yet.
func (s *Store) EnsureSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS policies (
			policy_id TEXT PRIMARY KEY,
			payment_id TEXT NOT NULL,
			plan TEXT NOT NULL,
			holder TEXT NOT NULL DEFAULT '',
			product TEXT NOT NULL DEFAULT '',
			premium INTEGER NOT NULL,
			financing_months INTEGER,
			financing_monthly DOUBLE PRECISION,
			financing_total DOUBLE PRECISION,
			degraded BOOLEAN NOT NULL DEFAULT false,
			issued_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS reconciliation_records (
			id BIGSERIAL PRIMARY KEY,
			policy_id TEXT NOT NULL,
			payment_id TEXT NOT NULL,
			reason TEXT NOT NULL,
			resolved BOOLEAN NOT NULL DEFAULT false,
			created_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS payment_events (
			id BIGSERIAL PRIMARY KEY,
			provider TEXT NOT NULL,
			type TEXT NOT NULL,
			session_id TEXT NOT NULL DEFAULT '',
			payload JSONB,
			received_at TIMESTAMPTZ NOT NULL
		)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return apperrors.NewQueryExecutionFailedError("ensure policy schema", err)
		}
	}
	return nil
}

// Issue appends a policy record. Policies are never updated in place.
func (s *Store) Issue(ctx context.Context, policy models.Policy) error {
	var months sql.NullInt64
	var monthly, total sql.NullFloat64
	if policy.Financing != nil {
		months = sql.NullInt64{Int64: int64(policy.Financing.Months), Valid: true}
		monthly = sql.NullFloat64{Float64: policy.Financing.Monthly, Valid: true}
		total = sql.NullFloat64{Float64: policy.Financing.Total, Valid: true}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO policies (policy_id, payment_id, plan, holder, product, premium,
			financing_months, financing_monthly, financing_total, degraded, issued_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		policy.PolicyID, policy.PaymentID, string(policy.Plan), policy.Holder,
		policy.Product, policy.Premium, months, monthly, total, policy.Degraded,
		policy.IssuedAt,
	)
	if err != nil {
		return apperrors.NewQueryExecutionFailedError("issue policy", err)
	}

	s.logger.Info("policy issued", map[string]interface{}{
		"policyId": policy.PolicyID,
		"plan":     policy.Plan,
	})
	return nil
}

// Get returns an issued policy by its identifier.
func (s *Store) Get(ctx context.Context, policyID string) (*models.Policy, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT policy_id, payment_id, plan, holder, product, premium,
			financing_months, financing_monthly, financing_total, degraded, issued_at
		FROM policies WHERE policy_id = $1`, policyID)

	var p models.Policy
	var plan string
	var months sql.NullInt64
	var monthly, total sql.NullFloat64

	err := row.Scan(&p.PolicyID, &p.PaymentID, &plan, &p.Holder, &p.Product,
		&p.Premium, &months, &monthly, &total, &p.Degraded, &p.IssuedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError(apperrors.ErrCodePolicyNotFound, policyID)
	}
	if err != nil {
		return nil, apperrors.NewQueryExecutionFailedError("get policy", err)
	}

	p.Plan = models.Plan(plan)
	if months.Valid {
		p.Financing = &models.Financing{
			Months:  int(months.Int64),
			Monthly: monthly.Float64,
			Total:   total.Float64,
		}
	}
	return &p, nil
}

// RecordDegraded stores a reconciliation entry for a degraded issuance.
func (s *Store) RecordDegraded(ctx context.Context, record models.ReconciliationRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO reconciliation_records (policy_id, payment_id, reason, resolved, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		record.PolicyID, record.PaymentID, record.Reason, record.Resolved, record.CreatedAt,
	)
	if err != nil {
		return apperrors.NewQueryExecutionFailedError("record degraded issuance", err)
	}
	return nil
}

// ListUnresolved returns reconciliation records still waiting to be worked.
func (s *Store) ListUnresolved(ctx context.Context) ([]models.ReconciliationRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, policy_id, payment_id, reason, resolved, created_at
		FROM reconciliation_records WHERE resolved = false
		ORDER BY created_at DESC`)
	if err != nil {
		return nil, apperrors.NewQueryExecutionFailedError("list unresolved", err)
	}
	defer rows.Close()

	var records []models.ReconciliationRecord
	for rows.Next() {
		var r models.ReconciliationRecord
		if err := rows.Scan(&r.ID, &r.PolicyID, &r.PaymentID, &r.Reason, &r.Resolved, &r.CreatedAt); err != nil {
			return nil, apperrors.NewQueryExecutionFailedError("scan reconciliation record", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewQueryExecutionFailedError("list unresolved", err)
	}
	return records, nil
}

// RecordPaymentEvent stores one webhook receipt verbatim.
func (s *Store) RecordPaymentEvent(ctx context.Context, event models.PaymentEvent) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO payment_events (provider, type, session_id, payload, received_at)
		VALUES ($1, $2, $3, $4, $5)`,
		event.Provider, event.Type, event.SessionID, []byte(event.Payload), event.ReceivedAt,
	)
	if err != nil {
		return apperrors.NewQueryExecutionFailedError("record payment event", err)
	}
	return nil
}
