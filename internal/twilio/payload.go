package twilio

import (
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/gorilla/schema"
)

// Payload is the inbound WhatsApp webhook form. Media fields arrive as
// indexed keys (MediaUrl0, MediaContentType0, ...) and are collected
// separately in ParsePayload.
type Payload struct {
	From     string `schema:"From"`
	Body     string `schema:"Body"`
	WaId     string `schema:"WaId"`
	SmsSid   string `schema:"SmsSid"`
	NumMedia int    `schema:"NumMedia"`

	MediaContentTypes []string `schema:"-"`
	MediaURLs         []string `schema:"-"`
}

// Phone strips the channel prefix, e.g. "whatsapp:+1555" -> "+1555".
func (p Payload) Phone() string {
	return strings.TrimPrefix(p.From, "whatsapp:")
}

// ParsePayload decodes the webhook form and keeps only PDF media. Non-PDF
// attachments are logged and dropped.
func ParsePayload(form url.Values) (Payload, error) {
	var p Payload

	decoder := schema.NewDecoder()
	decoder.IgnoreUnknownKeys(true)
	if err := decoder.Decode(&p, form); err != nil {
		return Payload{}, fmt.Errorf("error decoding webhook form: %w", err)
	}

	for i := 0; i < p.NumMedia; i++ {
		contentType := form.Get(fmt.Sprintf("MediaContentType%d", i))
		mediaURL := form.Get(fmt.Sprintf("MediaUrl%d", i))
		if contentType == "" || mediaURL == "" {
			continue
		}

		if !strings.EqualFold(contentType, "application/pdf") {
			slog.Warn("dropping non-pdf media", "content_type", contentType)
			continue
		}

		p.MediaContentTypes = append(p.MediaContentTypes, contentType)
		p.MediaURLs = append(p.MediaURLs, mediaURL)
	}

	return p, nil
}
