package policy

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "insurance-api/internal/common/errors"
	"insurance-api/internal/common/logger"
	"insurance-api/internal/models"
)

func TestRemoteIssuer_Issue(t *testing.T) {
	policy := models.Policy{
		PolicyID:  "POL-AB12CD34EF56",
		PaymentID: "PAY-AB12CD34EF56",
		Plan:      models.PlanGold,
		Holder:    "Asha Rao",
		Premium:   11750,
		IssuedAt:  time.Now(),
	}

	t.Run("posts policy and accepts 2xx", func(t *testing.T) {
		var received models.Policy
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
			w.WriteHeader(http.StatusCreated)
		}))
		defer server.Close()

		issuer := NewRemoteIssuer(server.URL, 2*time.Second, logger.NewTestLogger(t))
		err := issuer.Issue(context.Background(), policy)
		require.NoError(t, err)
		assert.Equal(t, "POL-AB12CD34EF56", received.PolicyID)
	})

	t.Run("non-2xx surfaces as degraded issuance", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		issuer := NewRemoteIssuer(server.URL, 2*time.Second, logger.NewTestLogger(t))
		err := issuer.Issue(context.Background(), policy)
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrCodeIssuanceDegraded, apperrors.CodeOf(err))
	})

	t.Run("unreachable endpoint surfaces as degraded issuance", func(t *testing.T) {
		issuer := NewRemoteIssuer("http://127.0.0.1:1/policies", 500*time.Millisecond, logger.NewTestLogger(t))
		err := issuer.Issue(context.Background(), policy)
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrCodeIssuanceDegraded, apperrors.CodeOf(err))
	})
}
