package notifications

import (
	"context"
	"fmt"
	"time"

	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
)

type twilioSender struct {
	client *twilio.RestClient
	create func(params *openapi.CreateMessageParams) (*openapi.ApiV2010Message, error)
}

// NewTwilioSender builds a MessageSender over the Twilio REST API.
func NewTwilioSender(accountSID, authToken string) (MessageSender, error) {
	if accountSID == "" || authToken == "" {
		return nil, fmt.Errorf("twilio credentials required")
	}
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	return &twilioSender{client: client, create: client.Api.CreateMessage}, nil
}

// Send honors the context deadline even though the generated Twilio API is
// not context-aware: the HTTP client timeout is derived from the deadline,
// and the call itself is abandoned once the context expires.
func (s *twilioSender) Send(ctx context.Context, from, to, body string) (string, error) {
	if deadline, ok := ctx.Deadline(); ok && s.client != nil {
		s.client.SetTimeout(time.Until(deadline))
	}

	params := &openapi.CreateMessageParams{}
	params.SetFrom(from)
	params.SetTo(to)
	params.SetBody(body)

	type outcome struct {
		sid string
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		msg, err := s.create(params)
		if err != nil {
			done <- outcome{err: err}
			return
		}
		if msg.Sid == nil {
			done <- outcome{err: fmt.Errorf("twilio response missing message sid")}
			return
		}
		done <- outcome{sid: *msg.Sid}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-done:
		return res.sid, res.err
	}
}
