package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TgUser is a Telegram chat registered with the foundation's bot.
type TgUser struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	TelegramID int64     `json:"id_telegram" gorm:"column:id_telegram;not null;index"`
	Name       string    `json:"name" gorm:"type:varchar(255);not null"`
	UUID       string    `json:"uuid_id" gorm:"column:uuid_id;type:varchar(36);not null"`
}

func (TgUser) TableName() string {
	return "tg_users"
}

func (u *TgUser) BeforeCreate(tx *gorm.DB) error {
	if u.UUID == "" {
		u.UUID = uuid.NewString()
	}
	return nil
}

type TgUserCreateRequest struct {
	TelegramID int64  `json:"id_telegram" binding:"required"`
	Name       string `json:"name" binding:"required,max=255"`
	UUID       string `json:"uuid_id" binding:"omitempty,uuid"`
}

func (r TgUserCreateRequest) ToModel() (*TgUser, error) {
	return &TgUser{TelegramID: r.TelegramID, Name: r.Name, UUID: r.UUID}, nil
}

type TgUserUpdateRequest struct {
	TelegramID *int64  `json:"id_telegram,omitempty"`
	Name       *string `json:"name,omitempty" binding:"omitempty,max=255"`
	UUID       *string `json:"uuid_id,omitempty" binding:"omitempty,uuid"`
}

func (r TgUserUpdateRequest) Changes() (map[string]interface{}, error) {
	changes := map[string]interface{}{}
	if r.TelegramID != nil {
		changes["id_telegram"] = *r.TelegramID
	}
	setString(changes, "name", r.Name)
	setString(changes, "uuid_id", r.UUID)
	return changes, nil
}
