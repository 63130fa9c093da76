package policy

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	apperrors "insurance-api/internal/common/errors"
	commonhttp "insurance-api/internal/common/http"
	"insurance-api/internal/common/logger"
	"insurance-api/internal/models"
)

// RemoteIssuer posts issued policies to an external issuance endpoint. It is
// used instead of the local store when an issuance URL is configured; failures
// surface to the checkout orchestrator, which degrades rather than blocks.
type RemoteIssuer struct {
	url    string
	client *commonhttp.Client
	logger logger.Logger
}

func NewRemoteIssuer(url string, timeout time.Duration, log logger.Logger) *RemoteIssuer {
	return &RemoteIssuer{
		url:    url,
		client: commonhttp.NewClient(timeout),
		logger: log.WithFields(map[string]interface{}{"component": "remote-issuer"}),
	}
}

func (ri *RemoteIssuer) Issue(ctx context.Context, policy models.Policy) error {
	body, err := json.Marshal(policy)
	if err != nil {
		return apperrors.NewInternalError(err)
	}

	req, err := http.NewRequest(http.MethodPost, ri.url, bytes.NewReader(body))
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := ri.client.DoWithContext(ctx, req)
	if err != nil {
		ri.logger.Warn("issuance endpoint unreachable", map[string]interface{}{
			"policyId": policy.PolicyID,
			"error":    err.Error(),
		})
		return apperrors.NewIssuanceDegradedError(policy.PolicyID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		err := fmt.Errorf("issuance endpoint returned status %d", resp.StatusCode)
		ri.logger.Warn("issuance endpoint rejected policy", map[string]interface{}{
			"policyId": policy.PolicyID,
			"status":   resp.StatusCode,
		})
		return apperrors.NewIssuanceDegradedError(policy.PolicyID, err)
	}
	return nil
}
