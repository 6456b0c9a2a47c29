// internal/notifications/notifier.go
package notifications

import (
	"context"
	"fmt"

	sdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	sestypes "github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	snstypes "github.com/aws/aws-sdk-go-v2/service/sns/types"

	"loanpath-api/internal/common/aws"
	"loanpath-api/internal/common/config"
	"loanpath-api/internal/common/logger"
)

// EmailSender is satisfied by aws.SESClient.
type EmailSender interface {
	SendEmail(ctx context.Context, input *ses.SendEmailInput) (*ses.SendEmailOutput, error)
}

// SMSSender is satisfied by aws.SNSClient.
type SMSSender interface {
	Publish(ctx context.Context, input *sns.PublishInput) (*sns.PublishOutput, error)
}

// Notifier delivers account lifecycle notifications. Delivery is best-effort:
// the caller's request must not fail because a welcome message did not send.
type Notifier struct {
	cfg   config.NotificationConfig
	email EmailSender
	sms   SMSSender
	log   logger.Logger
}

// New builds a Notifier from config, constructing AWS clients only for the
// channels that are enabled.
func New(ctx context.Context, cfg config.NotificationConfig, log logger.Logger) (*Notifier, error) {
	n := &Notifier{cfg: cfg, log: log}

	if cfg.Email.Enabled {
		client, err := aws.NewSESClient(ctx, cfg.AWS.Region)
		if err != nil {
			return nil, fmt.Errorf("building ses client: %w", err)
		}
		n.email = client
	}
	if cfg.SMS.Enabled {
		client, err := aws.NewSNSClient(ctx, cfg.AWS.Region)
		if err != nil {
			return nil, fmt.Errorf("building sns client: %w", err)
		}
		n.sms = client
	}
	return n, nil
}

// NewWithSenders wires explicit senders, used by tests.
func NewWithSenders(cfg config.NotificationConfig, email EmailSender, sms SMSSender, log logger.Logger) *Notifier {
	return &Notifier{cfg: cfg, email: email, sms: sms, log: log}
}

// SendWelcome notifies a newly registered user on every enabled channel.
// Errors are logged, never returned.
func (n *Notifier) SendWelcome(ctx context.Context, name, email, phone string) {
	if n.cfg.Email.Enabled && n.email != nil {
		if err := n.sendWelcomeEmail(ctx, name, email); err != nil {
			n.log.Warn("Welcome email delivery failed", map[string]interface{}{
				"email": email,
				"error": err.Error(),
			})
		}
	}
	if n.cfg.SMS.Enabled && n.sms != nil && phone != "" {
		if err := n.sendWelcomeSMS(ctx, name, phone); err != nil {
			n.log.Warn("Welcome SMS delivery failed", map[string]interface{}{
				"phone": phone,
				"error": err.Error(),
			})
		}
	}
}

func (n *Notifier) sendWelcomeEmail(ctx context.Context, name, email string) error {
	subject := "Welcome to LoanPath"
	body := fmt.Sprintf(
		"Hi %s,\n\nYour LoanPath account is ready. Complete your financial profile to see your Loan Readiness Score and matched offers.\n",
		name)

	_, err := n.email.SendEmail(ctx, &ses.SendEmailInput{
		Source: sdk.String(n.cfg.Email.FromEmail),
		Destination: &sestypes.Destination{
			ToAddresses: []string{email},
		},
		Message: &sestypes.Message{
			Subject: &sestypes.Content{Data: sdk.String(subject)},
			Body: &sestypes.Body{
				Text: &sestypes.Content{Data: sdk.String(body)},
			},
		},
	})
	return err
}

func (n *Notifier) sendWelcomeSMS(ctx context.Context, name, phone string) error {
	input := &sns.PublishInput{
		PhoneNumber: sdk.String(phone),
		Message:     sdk.String(fmt.Sprintf("Hi %s, your LoanPath account is ready.", name)),
	}
	if n.cfg.SMS.SenderID != "" {
		input.MessageAttributes = map[string]snstypes.MessageAttributeValue{
			"AWS.SNS.SMS.SenderID": {
				DataType:    sdk.String("String"),
				StringValue: sdk.String(n.cfg.SMS.SenderID),
			},
		}
	}
	_, err := n.sms.Publish(ctx, input)
	return err
}
