package api

import (
	"net/http"

	"email-assistant/internal/assistant"
	"email-assistant/internal/store"
	"email-assistant/internal/twilio"
	"email-assistant/pkg/api"

	"github.com/go-chi/chi/v5"
)

type Service struct {
	store     *store.Store
	assistant *assistant.Assistant
	messenger twilio.Messenger
}

func NewService(s *store.Store, a *assistant.Assistant, messenger twilio.Messenger) *Service {
	return &Service{
		store:     s,
		assistant: a,
		messenger: messenger,
	}
}

func (s *Service) AddRoutes(r chi.Router) {
	r.Get("/", RestHandler(s.Health))
	r.Post("/webhook/whatsapp", s.WhatsAppWebhook)

	r.Route("/chats", func(r chi.Router) {
		r.Get("/", RestHandler(s.GetChats))
		r.Get("/{chat_id}", RestHandler(s.GetChat))
		r.Get("/{chat_id}/messages", RestHandler(s.GetMessages))
		r.Post("/{chat_id}/end", RestHandler(s.EndChat))
	})
}

func (s *Service) Health(r *http.Request) (any, error) {
	return api.HealthResponse{Message: "Email Assistant System is running"}, nil
}
