package api

import (
	"time"

	"github.com/google/uuid"
)

type ChatMetadata struct {
	Id        uuid.UUID `json:"id"`
	UserId    uuid.UUID `json:"user_id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type GetChatsResponse struct {
	Chats []ChatMetadata `json:"chats"`
}

type ChatTurn struct {
	UserMessage string    `json:"user_message"`
	BotReply    string    `json:"bot_reply"`
	Media       []string  `json:"media,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type GetMessagesResponse struct {
	Messages []ChatTurn `json:"messages"`
}

type HealthResponse struct {
	Message string `json:"message"`
}
