package api

import (
	"net/http"

	"email-assistant/internal/database"
	"email-assistant/pkg/api"
)

type getChatsQuery struct {
	Status string `schema:"status"`
}

func (s *Service) GetChats(r *http.Request) (any, error) {
	query, err := ParseRequestQueryParams[getChatsQuery](r)
	if err != nil {
		return nil, err
	}
	if query.Status != "" && query.Status != database.ChatActive && query.Status != database.ChatEnded {
		return nil, CodedErrorf(http.StatusBadRequest, "invalid status filter '%s'", query.Status)
	}

	chats, err := s.store.ListChats(r.Context(), query.Status)
	if err != nil {
		return nil, CodedError(http.StatusInternalServerError, err)
	}

	return api.GetChatsResponse{Chats: convertChats(chats)}, nil
}

func (s *Service) GetChat(r *http.Request) (any, error) {
	chatId, err := URLParamUUID(r, "chat_id")
	if err != nil {
		return nil, err
	}

	chat, err := s.store.GetChat(r.Context(), chatId)
	if err != nil {
		return nil, CodedErrorf(http.StatusNotFound, "chat %v not found", chatId)
	}

	return convertChat(*chat), nil
}

func (s *Service) GetMessages(r *http.Request) (any, error) {
	chatId, err := URLParamUUID(r, "chat_id")
	if err != nil {
		return nil, err
	}

	messages, err := s.store.ListMessages(r.Context(), chatId)
	if err != nil {
		return nil, CodedError(http.StatusInternalServerError, err)
	}

	return api.GetMessagesResponse{Messages: convertMessages(messages)}, nil
}

func (s *Service) EndChat(r *http.Request) (any, error) {
	chatId, err := URLParamUUID(r, "chat_id")
	if err != nil {
		return nil, err
	}

	if err := s.assistant.Terminate(r.Context(), chatId); err != nil {
		return nil, CodedError(http.StatusConflict, err)
	}

	return nil, nil
}
