package policy

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "insurance-api/internal/common/errors"
	"insurance-api/internal/common/logger"
	"insurance-api/internal/models"
)

func newTestStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewStore(db, logger.NewTestLogger(t)), mock
}

func TestStore_EnsureSchema(t *testing.T) {
	store, mock := newTestStore(t)

	mock.ExpectExec(`(?s)CREATE TABLE IF NOT EXISTS policies`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`(?s)CREATE TABLE IF NOT EXISTS reconciliation_records`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`(?s)CREATE TABLE IF NOT EXISTS payment_events`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, store.EnsureSchema(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Issue(t *testing.T) {
	t.Run("inserts policy with financing", func(t *testing.T) {
		store, mock := newTestStore(t)

		issuedAt := time.Date(2026, 2, 14, 10, 0, 0, 0, time.UTC)
		policy := models.Policy{
			PolicyID:  "POL-AB12CD34EF56",
			PaymentID: "PAY-AB12CD34EF56",
			Plan:      models.PlanGold,
			Holder:    "Asha Rao",
			Product:   "Health Shield",
			Premium:   11750,
			Financing: &models.Financing{Months: 12, Monthly: 979.17, Total: 11750},
			IssuedAt:  issuedAt,
		}

		mock.ExpectExec(`INSERT INTO policies`).
			WithArgs("POL-AB12CD34EF56", "PAY-AB12CD34EF56", "gold", "Asha Rao",
				"Health Shield", 11750, sqlmock.AnyArg(), sqlmock.AnyArg(),
				sqlmock.AnyArg(), false, issuedAt).
			WillReturnResult(sqlmock.NewResult(1, 1))

		err := store.Issue(context.Background(), policy)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("wraps database failure", func(t *testing.T) {
		store, mock := newTestStore(t)

		mock.ExpectExec(`INSERT INTO policies`).
			WillReturnError(assert.AnError)

		err := store.Issue(context.Background(), models.Policy{PolicyID: "POL-X"})
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrCodeQueryExecutionFailed, apperrors.CodeOf(err))
	})
}

func TestStore_Get(t *testing.T) {
	columns := []string{
		"policy_id", "payment_id", "plan", "holder", "product", "premium",
		"financing_months", "financing_monthly", "financing_total", "degraded", "issued_at",
	}

	t.Run("returns policy without financing", func(t *testing.T) {
		store, mock := newTestStore(t)

		issuedAt := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
		rows := sqlmock.NewRows(columns).
			AddRow("POL-AB12CD34EF56", "PAY-AB12CD34EF56", "platinum", "Ravi Menon",
				"Health Shield", 15040, nil, nil, nil, false, issuedAt)
		mock.ExpectQuery(`(?s)SELECT .+ FROM policies WHERE policy_id = \$1`).
			WithArgs("POL-AB12CD34EF56").
			WillReturnRows(rows)

		got, err := store.Get(context.Background(), "POL-AB12CD34EF56")
		require.NoError(t, err)
		assert.Equal(t, models.PlanPlatinum, got.Plan)
		assert.Equal(t, 15040, got.Premium)
		assert.Nil(t, got.Financing)
	})

	t.Run("hydrates financing when present", func(t *testing.T) {
		store, mock := newTestStore(t)

		rows := sqlmock.NewRows(columns).
			AddRow("POL-1", "PAY-1", "gold", "Asha Rao", "Health Shield", 11750,
				12, 979.17, 11750.0, false, time.Now())
		mock.ExpectQuery(`(?s)SELECT .+ FROM policies WHERE policy_id = \$1`).
			WithArgs("POL-1").
			WillReturnRows(rows)

		got, err := store.Get(context.Background(), "POL-1")
		require.NoError(t, err)
		require.NotNil(t, got.Financing)
		assert.Equal(t, 12, got.Financing.Months)
		assert.InDelta(t, 979.17, got.Financing.Monthly, 0.001)
	})

	t.Run("missing policy maps to not found", func(t *testing.T) {
		store, mock := newTestStore(t)

		mock.ExpectQuery(`(?s)SELECT .+ FROM policies WHERE policy_id = \$1`).
			WithArgs("POL-MISSING").
			WillReturnRows(sqlmock.NewRows(columns))

		_, err := store.Get(context.Background(), "POL-MISSING")
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrCodePolicyNotFound, apperrors.CodeOf(err))
	})
}

func TestStore_RecordDegraded(t *testing.T) {
	store, mock := newTestStore(t)

	record := models.ReconciliationRecord{
		PolicyID:  "POL-DEGRADED1",
		PaymentID: "PAY-DEGRADED1",
		Reason:    "issuance endpoint returned status 503",
		CreatedAt: time.Now(),
	}

	mock.ExpectExec(`INSERT INTO reconciliation_records`).
		WithArgs(record.PolicyID, record.PaymentID, record.Reason, false, record.CreatedAt).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := store.RecordDegraded(context.Background(), record)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_ListUnresolved(t *testing.T) {
	store, mock := newTestStore(t)

	rows := sqlmock.NewRows([]string{"id", "policy_id", "payment_id", "reason", "resolved", "created_at"}).
		AddRow(int64(2), "POL-2", "PAY-2", "timeout", false, time.Now()).
		AddRow(int64(1), "POL-1", "PAY-1", "connection refused", false, time.Now().Add(-time.Hour))
	mock.ExpectQuery(`(?s)SELECT .+ FROM reconciliation_records WHERE resolved = false`).
		WillReturnRows(rows)

	records, err := store.ListUnresolved(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "POL-2", records[0].PolicyID)
}

func TestStore_RecordPaymentEvent(t *testing.T) {
	store, mock := newTestStore(t)

	event := models.PaymentEvent{
		Provider:   "simulated",
		Type:       "checkout.session.completed",
		SessionID:  "CS-AB12CD34EF56",
		Payload:    []byte(`{"status":"paid"}`),
		ReceivedAt: time.Now(),
	}

	mock.ExpectExec(`INSERT INTO payment_events`).
		WithArgs(event.Provider, event.Type, event.SessionID, []byte(event.Payload), event.ReceivedAt).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := store.RecordPaymentEvent(context.Background(), event)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
