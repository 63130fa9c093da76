// Package notify emits post-checkout notifications: a confirmation email over
// SES when a policy is issued and an SNS alert when issuance degrades. Both
// are best-effort and never fail checkout.
package notify

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	sestypes "github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/aws/aws-sdk-go-v2/service/sns"

	"insurance-api/internal/common/config"
	"insurance-api/internal/common/logger"
	"insurance-api/internal/models"
)

// EmailSender is satisfied by the SES wrapper.
type EmailSender interface {
	SendEmail(ctx context.Context, input *ses.SendEmailInput) (*ses.SendEmailOutput, error)
}

// AlertPublisher is satisfied by the SNS wrapper.
type AlertPublisher interface {
	Publish(ctx context.Context, input *sns.PublishInput) (*sns.PublishOutput, error)
}

type Notifier struct {
	email  EmailSender
	alerts AlertPublisher
	cfg    config.NotifyConfig
	logger logger.Logger
}

// New builds a notifier. Either client may be nil, in which case the
// corresponding notification is skipped.
func New(email EmailSender, alerts AlertPublisher, cfg config.NotifyConfig, log logger.Logger) *Notifier {
	return &Notifier{
		email:  email,
		alerts: alerts,
		cfg:    cfg,
		logger: log.WithFields(map[string]interface{}{"component": "notify"}),
	}
}

// PolicyIssued sends the issuance confirmation email.
func (n *Notifier) PolicyIssued(ctx context.Context, policy models.Policy) {
	if !n.cfg.Enabled || n.email == nil || n.cfg.OpsEmail == "" {
		return
	}

	subject := fmt.Sprintf("Policy %s issued", policy.PolicyID)
	body := fmt.Sprintf(
		"Policy %s (%s plan) was issued to %s for a premium of INR %d.",
		policy.PolicyID, policy.Plan, policy.Holder, policy.Premium,
	)

	_, err := n.email.SendEmail(ctx, &ses.SendEmailInput{
		Source: aws.String(n.cfg.FromEmail),
		Destination: &sestypes.Destination{
			ToAddresses: []string{n.cfg.OpsEmail},
		},
		Message: &sestypes.Message{
			Subject: &sestypes.Content{Data: aws.String(subject)},
			Body: &sestypes.Body{
				Text: &sestypes.Content{Data: aws.String(body)},
			},
		},
	})
	if err != nil {
		n.logger.Warn("confirmation email failed", map[string]interface{}{
			"policyId": policy.PolicyID,
			"error":    err.Error(),
		})
	}
}

// IssuanceDegraded publishes a reconciliation alert.
func (n *Notifier) IssuanceDegraded(ctx context.Context, policy models.Policy, cause error) {
	if !n.cfg.Enabled || n.alerts == nil || n.cfg.AlertTopicARN == "" {
		return
	}

	message := fmt.Sprintf(
		"Degraded issuance for policy %s (payment %s): %v. A reconciliation record was created.",
		policy.PolicyID, policy.PaymentID, cause,
	)

	_, err := n.alerts.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(n.cfg.AlertTopicARN),
		Subject:  aws.String("Degraded policy issuance"),
		Message:  aws.String(message),
	})
	if err != nil {
		n.logger.Warn("degraded-issuance alert failed", map[string]interface{}{
			"policyId": policy.PolicyID,
			"error":    err.Error(),
		})
	}
}
