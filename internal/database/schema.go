package database

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	ChatActive string = "active"
	ChatEnded  string = "ended"
)

type User struct {
	Id uuid.UUID `gorm:"type:uuid;primaryKey"`

	Name  string `gorm:"not null"`
	Phone string `gorm:"uniqueIndex;not null"`
	Email string

	IsMember  bool `gorm:"default:false"`
	IsDeleted bool `gorm:"default:false"`

	CreatedAt time.Time
}

type Chat struct {
	Id uuid.UUID `gorm:"type:uuid;primaryKey"`

	UserId uuid.UUID `gorm:"type:uuid;index;not null"`
	User   *User     `gorm:"foreignKey:UserId"`

	Status string `gorm:"size:20;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time

	Messages []Message `gorm:"foreignKey:ChatId;constraint:OnDelete:CASCADE"`
}

type Message struct {
	Id uint `gorm:"primaryKey"`

	ChatId uuid.UUID `gorm:"type:uuid;index;not null"`
	UserId uuid.UUID `gorm:"type:uuid;not null"`

	UserMessage string
	BotReply    string

	// Media holds the attachment URLs delivered with this turn, if any.
	Media datatypes.JSON

	CreatedAt time.Time `gorm:"index"`
}
