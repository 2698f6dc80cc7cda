package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zaptest"

	"github.com/barberops/backend/config"
)

func TestNoopEmailService(t *testing.T) {
	svc := NewNoopEmailService(zaptest.NewLogger(t))
	assert.NoError(t, svc.Send("owner@example.com", "Your shop account", "hello"))
}

func TestSMTPEmailService_NotConfigured(t *testing.T) {
	svc := NewSMTPEmailService(config.SMTPConfig{}, zaptest.NewLogger(t))

	err := svc.Send("owner@example.com", "Your shop account", "hello")
	assert.Error(t, err)
	assert.ErrorIs(t, err, ErrEmailDeliveryFailed)
}
