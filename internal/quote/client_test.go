package quote

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
	"insurance-api/internal/models"
)

func TestRemoteClient_Success(t *testing.T) {
	var received remoteRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(models.QuoteResult{
			Premium:   12000,
			Breakdown: []models.BreakdownLine{{Label: "Base premium", Amount: 12000}},
		})
	}))
	defer server.Close()

	client := NewRemoteClient(server.URL, time.Second)
	result, err := client.Quote(context.Background(), testRequest())
	require.NoError(t, err)

	assert.Equal(t, 12000, result.Premium)
	assert.Equal(t, models.PlanGold, received.Plan)
	assert.Equal(t, 500000, received.SumInsured)
	assert.Equal(t, "web", received.Meta["channel"])
}

func TestRemoteClient_Non2xxIsUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewRemoteClient(server.URL, time.Second)
	_, err := client.Quote(context.Background(), testRequest())

	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeRemotePricingUnavailable, apperrors.CodeOf(err))
}

func TestRemoteClient_UnparseableBodyIsUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>not json</html>"))
	}))
	defer server.Close()

	client := NewRemoteClient(server.URL, time.Second)
	_, err := client.Quote(context.Background(), testRequest())

	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeRemotePricingUnavailable, apperrors.CodeOf(err))
}

func TestRemoteClient_TimeoutIsUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	client := NewRemoteClient(server.URL, 20*time.Millisecond)
	_, err := client.Quote(context.Background(), testRequest())

	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeRemotePricingUnavailable, apperrors.CodeOf(err))
}

func TestRemoteClient_ConnectionRefusedIsUnavailable(t *testing.T) {
	client := NewRemoteClient("http://127.0.0.1:1/api/quote", 100*time.Millisecond)
	_, err := client.Quote(context.Background(), testRequest())

	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeRemotePricingUnavailable, apperrors.CodeOf(err))
}
