package notify

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"insurance-api/internal/common/config"
	"insurance-api/internal/common/logger"
	"insurance-api/internal/models"
)

type fakeEmail struct {
	sent []*ses.SendEmailInput
	err  error
}

func (f *fakeEmail) SendEmail(_ context.Context, input *ses.SendEmailInput) (*ses.SendEmailOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.sent = append(f.sent, input)
	return &ses.SendEmailOutput{}, nil
}

type fakeAlerts struct {
	published []*sns.PublishInput
	err       error
}

func (f *fakeAlerts) Publish(_ context.Context, input *sns.PublishInput) (*sns.PublishOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.published = append(f.published, input)
	return &sns.PublishOutput{}, nil
}

func enabledConfig() config.NotifyConfig {
	return config.NotifyConfig{
		Enabled:       true,
		FromEmail:     "noreply@example.com",
		OpsEmail:      "ops@example.com",
		AlertTopicARN: "arn:aws:sns:ap-south-1:000000000000:issuance-alerts",
	}
}

func TestNotifier_PolicyIssued(t *testing.T) {
	policy := models.Policy{
		PolicyID: "POL-AB12CD34EF56",
		Plan:     models.PlanGold,
		Holder:   "Asha Rao",
		Premium:  11750,
	}

	t.Run("sends confirmation email", func(t *testing.T) {
		email := &fakeEmail{}
		n := New(email, nil, enabledConfig(), logger.NewTestLogger(t))

		n.PolicyIssued(context.Background(), policy)

		require.Len(t, email.sent, 1)
		assert.Equal(t, "noreply@example.com", *email.sent[0].Source)
		assert.Equal(t, []string{"ops@example.com"}, email.sent[0].Destination.ToAddresses)
		assert.Contains(t, *email.sent[0].Message.Subject.Data, "POL-AB12CD34EF56")
	})

	t.Run("disabled config skips sending", func(t *testing.T) {
		email := &fakeEmail{}
		cfg := enabledConfig()
		cfg.Enabled = false
		n := New(email, nil, cfg, logger.NewTestLogger(t))

		n.PolicyIssued(context.Background(), policy)
		assert.Empty(t, email.sent)
	})

	t.Run("send failure does not panic", func(t *testing.T) {
		email := &fakeEmail{err: assert.AnError}
		n := New(email, nil, enabledConfig(), logger.NewTestLogger(t))

		assert.NotPanics(t, func() {
			n.PolicyIssued(context.Background(), policy)
		})
	})
}

func TestNotifier_IssuanceDegraded(t *testing.T) {
	policy := models.Policy{
		PolicyID:  "POL-DEGRADED1",
		PaymentID: "PAY-DEGRADED1",
		Degraded:  true,
	}

	t.Run("publishes alert", func(t *testing.T) {
		alerts := &fakeAlerts{}
		n := New(nil, alerts, enabledConfig(), logger.NewTestLogger(t))

		n.IssuanceDegraded(context.Background(), policy, assert.AnError)

		require.Len(t, alerts.published, 1)
		assert.Contains(t, *alerts.published[0].Message, "POL-DEGRADED1")
		assert.Contains(t, *alerts.published[0].Message, "reconciliation")
	})

	t.Run("missing topic skips publishing", func(t *testing.T) {
		alerts := &fakeAlerts{}
		cfg := enabledConfig()
		cfg.AlertTopicARN = ""
		n := New(nil, alerts, cfg, logger.NewTestLogger(t))

		n.IssuanceDegraded(context.Background(), policy, assert.AnError)
		assert.Empty(t, alerts.published)
	})
}
