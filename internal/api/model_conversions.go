package api

import (
	"encoding/json"
	"log/slog"

	"email-assistant/internal/database"
	"email-assistant/pkg/api"
)

func convertChat(c database.Chat) api.ChatMetadata {
	return api.ChatMetadata{
		Id:        c.Id,
		UserId:    c.UserId,
		Status:    c.Status,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func convertChats(cs []database.Chat) []api.ChatMetadata {
	chats := make([]api.ChatMetadata, 0, len(cs))
	for _, c := range cs {
		chats = append(chats, convertChat(c))
	}
	return chats
}

func convertMessage(m database.Message) api.ChatTurn {
	turn := api.ChatTurn{
		UserMessage: m.UserMessage,
		BotReply:    m.BotReply,
		CreatedAt:   m.CreatedAt,
	}
	if len(m.Media) > 0 {
		if err := json.Unmarshal(m.Media, &turn.Media); err != nil {
			slog.Error("error unmarshalling message media", "message_id", m.Id, "error", err)
		}
	}
	return turn
}

func convertMessages(ms []database.Message) []api.ChatTurn {
	messages := make([]api.ChatTurn, 0, len(ms))
	for _, m := range ms {
		messages = append(messages, convertMessage(m))
	}
	return messages
}
