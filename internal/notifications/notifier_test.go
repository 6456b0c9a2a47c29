// internal/notifications/notifier_test.go
package notifications

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loanpath-api/internal/common/config"
	"loanpath-api/internal/common/logger"
)

type fakeEmailSender struct {
	inputs []*ses.SendEmailInput
	err    error
}

func (f *fakeEmailSender) SendEmail(_ context.Context, input *ses.SendEmailInput) (*ses.SendEmailOutput, error) {
	f.inputs = append(f.inputs, input)
	return &ses.SendEmailOutput{}, f.err
}

type fakeSMSSender struct {
	inputs []*sns.PublishInput
}

func (f *fakeSMSSender) Publish(_ context.Context, input *sns.PublishInput) (*sns.PublishOutput, error) {
	f.inputs = append(f.inputs, input)
	return &sns.PublishOutput{}, nil
}

func notificationConfig(emailOn, smsOn bool) config.NotificationConfig {
	var cfg config.NotificationConfig
	cfg.Email.Enabled = emailOn
	cfg.Email.FromEmail = "no-reply@loanpath.example"
	cfg.SMS.Enabled = smsOn
	return cfg
}

func TestSendWelcome_EmailOnly(t *testing.T) {
	email := &fakeEmailSender{}
	sms := &fakeSMSSender{}
	n := NewWithSenders(notificationConfig(true, false), email, sms, logger.NewNoOpLogger())

	n.SendWelcome(context.Background(), "Asha", "asha@example.com", "+15550001111")

	require.Len(t, email.inputs, 1)
	assert.Equal(t, "no-reply@loanpath.example", *email.inputs[0].Source)
	assert.Equal(t, []string{"asha@example.com"}, email.inputs[0].Destination.ToAddresses)
	assert.Empty(t, sms.inputs)
}

func TestSendWelcome_SMSSkippedWithoutPhone(t *testing.T) {
	sms := &fakeSMSSender{}
	n := NewWithSenders(notificationConfig(false, true), nil, sms, logger.NewNoOpLogger())

	n.SendWelcome(context.Background(), "Asha", "asha@example.com", "")

	assert.Empty(t, sms.inputs)
}

func TestSendWelcome_SMS(t *testing.T) {
	sms := &fakeSMSSender{}
	n := NewWithSenders(notificationConfig(false, true), nil, sms, logger.NewNoOpLogger())

	n.SendWelcome(context.Background(), "Asha", "asha@example.com", "+15550001111")

	require.Len(t, sms.inputs, 1)
	assert.Equal(t, "+15550001111", *sms.inputs[0].PhoneNumber)
}

func TestSendWelcome_DeliveryFailureIsSwallowed(t *testing.T) {
	email := &fakeEmailSender{err: assert.AnError}
	n := NewWithSenders(notificationConfig(true, false), email, nil, logger.NewNoOpLogger())

	// Must not panic or propagate.
	n.SendWelcome(context.Background(), "Asha", "asha@example.com", "")
	assert.Len(t, email.inputs, 1)
}
