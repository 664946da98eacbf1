package migration_0

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Snapshot of the initial schema. Later migrations alter these tables, so the
// structs here are frozen copies rather than references to the live schema.

type User struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"not null"`
	Phone     string    `gorm:"uniqueIndex;not null"`
	Email     string
	IsMember  bool `gorm:"default:false"`
	IsDeleted bool `gorm:"default:false"`
	CreatedAt time.Time
}

type Chat struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserId    uuid.UUID `gorm:"type:uuid;index;not null"`
	Status    string    `gorm:"size:20;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Message struct {
	Id          uint      `gorm:"primaryKey"`
	ChatId      uuid.UUID `gorm:"type:uuid;index;not null"`
	UserId      uuid.UUID `gorm:"type:uuid;not null"`
	UserMessage string
	BotReply    string
	Media       datatypes.JSON
	CreatedAt   time.Time `gorm:"index"`
}

func Migration(db *gorm.DB) error {
	if err := db.AutoMigrate(&User{}, &Chat{}, &Message{}); err != nil {
		return fmt.Errorf("error creating initial tables: %w", err)
	}

	// Backstop for the one-active-chat-per-user invariant. Both sqlite and
	// postgres support partial indexes.
	err := db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_chats_one_active_per_user ON chats(user_id) WHERE status = 'active'`).Error
	if err != nil {
		return fmt.Errorf("error creating active chat index: %w", err)
	}
	return nil
}
