package mailer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendCancelledContext(t *testing.T) {
	s := NewSMTPSender("smtp.gmail.com", 465, "sender@example.com", "Sender", "passkey")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.Send(ctx, "recipient@example.com", "Subject", "Body")
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestSendUnreachableHost(t *testing.T) {
	// Nothing listens on port 1, so the dial fails without touching a real
	// SMTP server.
	s := NewSMTPSender("127.0.0.1", 1, "sender@example.com", "Sender", "passkey")

	err := s.Send(context.Background(), "recipient@example.com", "Subject", "Body")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "recipient@example.com")
}
