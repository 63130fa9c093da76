// test/e2e/e2e_test.go
package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var baseURL string

func TestMain(m *testing.M) {
	if os.Getenv("RUN_E2E") == "" {
		fmt.Println("RUN_E2E not set, skipping end-to-end tests")
		os.Exit(0)
	}

	baseURL = os.Getenv("INSURANCE_API_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	os.Exit(m.Run())
}

func postJSON(t *testing.T, path string, payload interface{}) *http.Response {
	t.Helper()
	data, err := json.Marshal(payload)
	require.NoError(t, err)

	resp, err := http.Post(baseURL+path, "application/json", bytes.NewReader(data))
	require.NoError(t, err)
	return resp
}

func TestFullPurchaseJourney(t *testing.T) {
	_, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	t.Log("🚀 Starting full purchase journey against a live server...")

	// --- Health ---
	healthResp, err := http.Get(baseURL + "/health")
	require.NoError(t, err, "❌ server not reachable")
	require.Equal(t, http.StatusOK, healthResp.StatusCode)
	healthResp.Body.Close()
	t.Log("✅ Server healthy")

	// --- Quote ---
	quoteResp := postJSON(t, "/api/quote", map[string]interface{}{
		"applicant":  map[string]interface{}{"name": "E2E Tester", "age": 30, "gender": "other"},
		"plan":       "gold",
		"sumInsured": 500000,
	})
	require.Equal(t, http.StatusOK, quoteResp.StatusCode)

	var quote struct {
		Premium int    `json:"premium"`
		Source  string `json:"source"`
	}
	require.NoError(t, json.NewDecoder(quoteResp.Body).Decode(&quote))
	quoteResp.Body.Close()
	assert.Greater(t, quote.Premium, 0)
	t.Logf("✅ Quote computed: premium=%d source=%s", quote.Premium, quote.Source)

	// --- Save cart ---
	cart := map[string]interface{}{
		"policyNumber": "QT-E2E-0001",
		"holder":       "E2E Tester",
		"product":      "Health Shield",
		"plan":         "gold",
		"premium":      quote.Premium,
		"term":         "1 year",
	}
	req, err := http.NewRequest(http.MethodPut, baseURL+"/api/cart", mustJSON(t, cart))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	cartResp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, cartResp.StatusCode)
	cartResp.Body.Close()
	t.Log("✅ Cart saved")

	// --- Session ---
	sessionResp := postJSON(t, "/api/checkout/session", nil)
	require.Equal(t, http.StatusCreated, sessionResp.StatusCode)
	sessionResp.Body.Close()
	t.Log("✅ Checkout session created")

	// --- Checkout ---
	checkoutResp := postJSON(t, "/api/checkout", map[string]interface{}{
		"cardNumber": "4111111111111111",
		"holder":     "E2E Tester",
	})
	if checkoutResp.StatusCode == http.StatusPaymentRequired {
		// The probabilistic authorizer declined this run; that is a valid
		// outcome of the simulated provider.
		t.Log("⚠️ Authorization declined by the simulated provider")
		checkoutResp.Body.Close()
		return
	}
	require.Equal(t, http.StatusOK, checkoutResp.StatusCode)

	var result struct {
		Policy struct {
			PolicyID string `json:"policyId"`
		} `json:"policy"`
		Degraded bool `json:"degraded"`
	}
	require.NoError(t, json.NewDecoder(checkoutResp.Body).Decode(&result))
	checkoutResp.Body.Close()
	require.NotEmpty(t, result.Policy.PolicyID)
	t.Logf("✅ Policy issued: %s (degraded=%v)", result.Policy.PolicyID, result.Degraded)

	// --- Receipt ---
	if !result.Degraded {
		receiptResp, err := http.Get(baseURL + "/receipt/" + result.Policy.PolicyID)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, receiptResp.StatusCode)
		assert.Equal(t, "application/pdf", receiptResp.Header.Get("Content-Type"))
		receiptResp.Body.Close()
		t.Log("✅ Receipt downloaded")
	}

	t.Log("✅ Full purchase journey passed")
}

func mustJSON(t *testing.T, v interface{}) *bytes.Reader {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(data)
}
