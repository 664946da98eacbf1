package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"email-assistant/internal/database"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Store is the sole mutator of persisted users, chats and messages.
type Store struct {
	db *gorm.DB

	// SQLite only supports one writer at a time, so writes take this lock.
	write sync.Mutex
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// FindUserByPhone returns the non-deleted user for the phone number, or nil
// if no such user exists.
func (s *Store) FindUserByPhone(ctx context.Context, phone string) (*database.User, error) {
	var user database.User
	err := s.db.WithContext(ctx).
		Where("phone = ? AND is_deleted = ?", phone, false).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error querying user by phone: %w", err)
	}
	return &user, nil
}

func (s *Store) CreateUser(ctx context.Context, user *database.User) error {
	s.write.Lock()
	defer s.write.Unlock()
	if user.Id == uuid.Nil {
		user.Id = uuid.New()
	}
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("error creating user: %w", err)
	}
	return nil
}

// FindActiveChat returns the user's most recent active chat, or nil if none.
func (s *Store) FindActiveChat(ctx context.Context, userId uuid.UUID) (*database.Chat, error) {
	var chat database.Chat
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userId, database.ChatActive).
		Order("created_at DESC").
		First(&chat).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error querying active chat: %w", err)
	}
	return &chat, nil
}

func (s *Store) CreateChat(ctx context.Context, userId uuid.UUID) (*database.Chat, error) {
	s.write.Lock()
	defer s.write.Unlock()

	chat := database.Chat{
		Id:     uuid.New(),
		UserId: userId,
		Status: database.ChatActive,
	}
	if err := s.db.WithContext(ctx).Create(&chat).Error; err != nil {
		return nil, fmt.Errorf("error creating chat: %w", err)
	}
	return &chat, nil
}

func (s *Store) GetChat(ctx context.Context, chatId uuid.UUID) (*database.Chat, error) {
	var chat database.Chat
	if err := s.db.WithContext(ctx).First(&chat, "id = ?", chatId).Error; err != nil {
		return nil, fmt.Errorf("error querying chat %v: %w", chatId, err)
	}
	return &chat, nil
}

func (s *Store) ListChats(ctx context.Context, status string) ([]database.Chat, error) {
	query := s.db.WithContext(ctx).Order("created_at DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	var chats []database.Chat
	if err := query.Find(&chats).Error; err != nil {
		return nil, fmt.Errorf("error listing chats: %w", err)
	}
	return chats, nil
}

func (s *Store) EndChat(ctx context.Context, chatId uuid.UUID) error {
	s.write.Lock()
	defer s.write.Unlock()

	updates := map[string]any{
		"status":     database.ChatEnded,
		"updated_at": time.Now().UTC(),
	}
	res := s.db.WithContext(ctx).Model(&database.Chat{Id: chatId}).Updates(updates)
	if res.Error != nil {
		return fmt.Errorf("error ending chat %v: %w", chatId, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("error ending chat %v: %w", chatId, gorm.ErrRecordNotFound)
	}
	return nil
}

// AppendMessage persists one turn: the inbound user message plus the bot reply
// and the media URLs that arrived with the turn.
func (s *Store) AppendMessage(ctx context.Context, chatId, userId uuid.UUID, userMessage, botReply string, media []string) error {
	s.write.Lock()
	defer s.write.Unlock()

	var mediaJSON datatypes.JSON
	if len(media) > 0 {
		b, err := json.Marshal(media)
		if err != nil {
			return fmt.Errorf("could not marshal media urls: %w", err)
		}
		mediaJSON = datatypes.JSON(b)
	}

	message := database.Message{
		ChatId:      chatId,
		UserId:      userId,
		UserMessage: userMessage,
		BotReply:    botReply,
		Media:       mediaJSON,
	}
	if err := s.db.WithContext(ctx).Create(&message).Error; err != nil {
		return fmt.Errorf("error saving message: %w", err)
	}
	return nil
}

// ListMessages returns the chat's turns oldest first. The id is part of the
// ordering so turns created within the same timestamp keep insertion order.
func (s *Store) ListMessages(ctx context.Context, chatId uuid.UUID) ([]database.Message, error) {
	var messages []database.Message
	err := s.db.WithContext(ctx).
		Where("chat_id = ?", chatId).
		Order("created_at ASC, id ASC").
		Find(&messages).Error
	if err != nil {
		return nil, fmt.Errorf("error listing messages: %w", err)
	}
	return messages, nil
}
