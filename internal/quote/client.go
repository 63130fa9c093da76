package quote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	apperrors "insurance-api/internal/common/errors"
	commonhttp "insurance-api/internal/common/http"
	"insurance-api/internal/models"
)

// RemoteClient calls the external pricing endpoint. One attempt, no retries:
// any network error, timeout, or non-2xx status is reported as
// REMOTE_PRICING_UNAVAILABLE and the caller falls back to local pricing.
type RemoteClient struct {
	url    string
	client *commonhttp.Client
}

func NewRemoteClient(url string, timeout time.Duration) *RemoteClient {
	return &RemoteClient{
		url:    url,
		client: commonhttp.NewClient(timeout),
	}
}

func (c *RemoteClient) Quote(ctx context.Context, req models.QuoteRequest) (*models.QuoteResult, error) {
	payload := remoteRequest{
		Applicant:  req.Applicant,
		Plan:       req.Plan,
		SumInsured: req.SumInsured,
		Deductible: req.Deductible,
		Addons:     req.Addons,
		StartDate:  req.StartDate,
		Meta:       map[string]string{"channel": "web"},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	httpReq, err := http.NewRequest(http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.DoWithContext(ctx, httpReq)
	if err != nil {
		return nil, apperrors.NewRemotePricingUnavailableError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, apperrors.NewRemotePricingUnavailableError(
			fmt.Errorf("pricing endpoint returned %s", resp.Status))
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.NewRemotePricingUnavailableError(err)
	}

	// Pass-through trust boundary: the remote result is returned as-is, with
	// no re-validation of the premium/breakdown reconciliation.
	var result models.QuoteResult
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, apperrors.NewRemotePricingUnavailableError(
			fmt.Errorf("unparseable pricing response: %w", err))
	}

	return &result, nil
}
