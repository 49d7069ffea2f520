package email

import (
	"errors"
	"testing"

	"github.com/resendlabs/resend-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeSender struct {
	sent []*resend.SendEmailRequest
	err  error
}

func (f *fakeSender) Send(params *resend.SendEmailRequest) (string, error) {
	f.sent = append(f.sent, params)
	if f.err != nil {
		return "", f.err
	}
	return "em_1", nil
}

func newTestService(sender *fakeSender) *EmailService {
	return &EmailService{
		send:     sender.Send,
		from:     "hello@example.com",
		fromName: "Top Funders",
		logger:   zap.NewNop(),
	}
}

func TestSendWelcomeEmail(t *testing.T) {
	sender := &fakeSender{}
	svc := newTestService(sender)

	require.NoError(t, svc.SendWelcomeEmail("a@b.com", "Ada"))
	require.Len(t, sender.sent, 1)

	msg := sender.sent[0]
	assert.Equal(t, "Top Funders <hello@example.com>", msg.From)
	assert.Equal(t, []string{"a@b.com"}, msg.To)
	assert.Contains(t, msg.Html, "Hi Ada,")
	assert.Contains(t, msg.Html, "a@b.com")
}

func TestSendWelcomeEmailWithoutName(t *testing.T) {
	sender := &fakeSender{}
	require.NoError(t, newTestService(sender).SendWelcomeEmail("a@b.com", ""))
	assert.Contains(t, sender.sent[0].Html, "Hi there,")
}

func TestSendWelcomeEmailError(t *testing.T) {
	sender := &fakeSender{err: errors.New("rate limited")}
	err := newTestService(sender).SendWelcomeEmail("a@b.com", "")
	assert.ErrorContains(t, err, "rate limited")
}

func TestNewEmailServiceUsesResendClient(t *testing.T) {
	svc := NewEmailService("re_test", "hello@example.com", "Top Funders", zap.NewNop())
	assert.NotNil(t, svc.send)
}
