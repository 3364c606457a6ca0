package notifications

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chexseeds/chexseeds-backend/pkg/config"
	pkgerrors "github.com/chexseeds/chexseeds-backend/pkg/errors"
)

type stubMessageSender struct {
	from, to, body string
	err            error
}

func (s *stubMessageSender) Send(_ context.Context, from, to, body string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.from, s.to, s.body = from, to, body
	return "SM123", nil
}

func whatsAppConfig() config.WhatsAppConfig {
	return config.WhatsAppConfig{
		AccountSID:   "AC123",
		AuthToken:    "token",
		SenderNumber: "+14155238886",
		ClientNumber: "+56922222222",
	}
}

func TestNotifyOrder_SendsToMerchantNumber(t *testing.T) {
	sender := &stubMessageSender{}
	svc := NewWhatsAppService(sender, whatsAppConfig())

	sid, err := svc.NotifyOrder(context.Background(), sampleOrder())
	require.NoError(t, err)

	assert.Equal(t, "SM123", sid)
	assert.Equal(t, "whatsapp:+14155238886", sender.from)
	assert.Equal(t, "whatsapp:+56922222222", sender.to)
	assert.Contains(t, sender.body, "CHX-1700000000000-AAAAAAAAA")
}

func TestNotifyOrder_MissingCredentialsIsConfigError(t *testing.T) {
	cfg := whatsAppConfig()
	cfg.AuthToken = ""
	svc := NewWhatsAppService(&stubMessageSender{}, cfg)

	_, err := svc.NotifyOrder(context.Background(), sampleOrder())
	require.Error(t, err)

	var coded *pkgerrors.Error
	require.True(t, errors.As(err, &coded))
	assert.Equal(t, pkgerrors.CodeConfig, coded.Code())
}

func TestNotifyOrder_ProviderFailureIsDependencyError(t *testing.T) {
	svc := NewWhatsAppService(&stubMessageSender{err: errors.New("twilio 500")}, whatsAppConfig())

	_, err := svc.NotifyOrder(context.Background(), sampleOrder())
	require.Error(t, err)

	var coded *pkgerrors.Error
	require.True(t, errors.As(err, &coded))
	assert.Equal(t, pkgerrors.CodeDependency, coded.Code())
}

func TestWhatsAppAddress(t *testing.T) {
	assert.Equal(t, "whatsapp:+56911111111", whatsAppAddress("+56911111111"))
	assert.Equal(t, "whatsapp:+56911111111", whatsAppAddress("whatsapp:+56911111111"))
	assert.Equal(t, "whatsapp:+56911111111", whatsAppAddress("  +56911111111  "))
}
