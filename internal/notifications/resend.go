package notifications

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"
)

type resendSender struct {
	client *resend.Client
}

// NewResendSender builds an EmailSender over the Resend API.
func NewResendSender(apiKey string) (EmailSender, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("resend api key required")
	}
	return &resendSender{client: resend.NewClient(apiKey)}, nil
}

func (s *resendSender) Send(ctx context.Context, msg EmailMessage) (string, error) {
	sent, err := s.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    msg.From,
		To:      msg.To,
		Subject: msg.Subject,
		Html:    msg.HTML,
		ReplyTo: msg.ReplyTo,
	})
	if err != nil {
		return "", err
	}
	return sent.Id, nil
}
