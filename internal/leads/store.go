// Package leads persists marketing inquiries captured from the public site.
package leads

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

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
		logger: log.WithFields(map[string]interface{}{"component": "leads"}),
	}
}

// EnsureSchema creates the leads table when it does not exist yet.
func (s *Store) EnsureSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS leads (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT NOT NULL,
			phone TEXT NOT NULL DEFAULT '',
			message TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT 'new',
			created_at TIMESTAMPTZ NOT NULL
		)`)
	if err != nil {
		return apperrors.NewQueryExecutionFailedError("ensure leads schema", err)
	}
	return nil
}

// Capture stores a new lead with status "new".
func (s *Store) Capture(ctx context.Context, lead models.Lead) (*models.Lead, error) {
	lead.ID = uuid.New().String()
	lead.Status = models.LeadStatusNew
	lead.CreatedAt = time.Now()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO leads (id, name, email, phone, message, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		lead.ID, lead.Name, lead.Email, lead.Phone, lead.Message, lead.Status, lead.CreatedAt,
	)
	if err != nil {
		return nil, apperrors.NewQueryExecutionFailedError("capture lead", err)
	}

	s.logger.Info("lead captured", map[string]interface{}{"leadId": lead.ID})
	return &lead, nil
}

// List returns all leads, newest first.
func (s *Store) List(ctx context.Context) ([]models.Lead, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, email, phone, message, status, created_at
		FROM leads ORDER BY created_at DESC`)
	if err != nil {
		return nil, apperrors.NewQueryExecutionFailedError("list leads", err)
	}
	defer rows.Close()

	var leads []models.Lead
	for rows.Next() {
		var l models.Lead
		if err := rows.Scan(&l.ID, &l.Name, &l.Email, &l.Phone, &l.Message, &l.Status, &l.CreatedAt); err != nil {
			return nil, apperrors.NewQueryExecutionFailedError("scan lead", err)
		}
		leads = append(leads, l)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewQueryExecutionFailedError("list leads", err)
	}
	return leads, nil
}

// UpdateStatus moves a lead through the new/contacted/closed lifecycle.
func (s *Store) UpdateStatus(ctx context.Context, id, status string) (*models.Lead, error) {
	switch status {
	case models.LeadStatusNew, models.LeadStatusContacted, models.LeadStatusClosed:
	default:
		return nil, apperrors.NewValidationFailedError("status must be one of new, contacted, closed")
	}

	row := s.db.QueryRowContext(ctx, `
		UPDATE leads SET status = $1 WHERE id = $2
		RETURNING id, name, email, phone, message, status, created_at`, status, id)

	var l models.Lead
	err := row.Scan(&l.ID, &l.Name, &l.Email, &l.Phone, &l.Message, &l.Status, &l.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError(apperrors.ErrCodeLeadNotFound, id)
	}
	if err != nil {
		return nil, apperrors.NewQueryExecutionFailedError("update lead status", err)
	}
	return &l, nil
}
