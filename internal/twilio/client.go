// Package twilio wraps the pieces of the Twilio WhatsApp channel the
// assistant touches: decoding inbound webhook forms and sending replies
// through the Messages REST API.
package twilio

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const defaultBaseURL = "https://api.twilio.com"

type Messenger interface {
	SendWhatsApp(ctx context.Context, to, body string) error
}

type Client struct {
	client     *resty.Client
	accountSID string
	from       string
	mock       bool
}

type Option func(*Client)

// WithBaseURL points the client at a different API host, used in tests.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.client.SetBaseURL(baseURL)
	}
}

// WithMockMode logs outbound messages instead of sending them.
func WithMockMode(mock bool) Option {
	return func(c *Client) {
		c.mock = mock
	}
}

func NewClient(accountSID, authToken, from string, opts ...Option) *Client {
	client := &Client{
		client: resty.New().
			SetBaseURL(defaultBaseURL).
			SetBasicAuth(accountSID, authToken).
			SetTimeout(30 * time.Second),
		accountSID: accountSID,
		from:       from,
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

type messageResponse struct {
	Sid     string `json:"sid"`
	Message string `json:"message"`
}

func (c *Client) SendWhatsApp(ctx context.Context, to, body string) error {
	if !strings.HasPrefix(to, "whatsapp:") {
		to = "whatsapp:" + to
	}

	if c.mock {
		slog.Info("mock mode: would send whatsapp message", "to", to, "body", body)
		return nil
	}

	var result messageResponse
	res, err := c.client.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"From": "whatsapp:" + c.from,
			"To":   to,
			"Body": body,
		}).
		SetResult(&result).
		SetError(&result).
		Post(fmt.Sprintf("/2010-04-01/Accounts/%s/Messages.json", c.accountSID))
	if err != nil {
		return fmt.Errorf("error sending whatsapp message: %w", err)
	}
	if res.IsError() {
		return fmt.Errorf("error sending whatsapp message: status %d: %s", res.StatusCode(), result.Message)
	}

	slog.Info("whatsapp message sent", "to", to, "sid", result.Sid)
	return nil
}
