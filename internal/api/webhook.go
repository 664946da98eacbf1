package api

import (
	"log/slog"
	"net/http"

	"email-assistant/internal/twilio"
)

const emptyTwiML = "<?xml version='1.0' encoding='UTF-8'?><Response></Response>"

const unknownNumberReply = "Sorry, I couldn't identify your phone number."

// WhatsAppWebhook handles one inbound message. The transport expects a
// well-formed TwiML acknowledgment on every call, so no internal failure is
// allowed to change the response: errors are logged and an empty ack is
// returned regardless.
func (s *Service) WhatsAppWebhook(w http.ResponseWriter, r *http.Request) {
	defer writeTwiML(w)

	if err := r.ParseForm(); err != nil {
		slog.Error("error parsing webhook form", "error", err)
		return
	}

	payload, err := twilio.ParsePayload(r.PostForm)
	if err != nil {
		slog.Error("error parsing webhook payload", "error", err)
		return
	}

	if payload.WaId == "" {
		slog.Warn("received message without WaId", "from", payload.From)
		s.reply(r, payload.From, unknownNumberReply)
		return
	}

	slog.Info("whatsapp message received",
		"from", payload.From, "media_count", len(payload.MediaURLs), "sms_sid", payload.SmsSid)

	reply, err := s.assistant.HandleMessage(r.Context(), payload.Phone(), payload.Body, payload.MediaURLs)
	if err != nil {
		slog.Error("error handling message", "from", payload.From, "error", err)
	}
	if reply != "" {
		s.reply(r, payload.From, reply)
	}
}

func (s *Service) reply(r *http.Request, to, body string) {
	if err := s.messenger.SendWhatsApp(r.Context(), to, body); err != nil {
		slog.Error("error sending whatsapp reply", "to", to, "error", err)
	}
}

func writeTwiML(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/xml")
	if _, err := w.Write([]byte(emptyTwiML)); err != nil {
		slog.Error("error writing twiml response", "error", err)
	}
}
