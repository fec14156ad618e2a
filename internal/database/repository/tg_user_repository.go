package repository

import (
	"context"
	"fmt"

	"github.com/muhajir-foundation/muhajir-api/internal/models"

	"gorm.io/gorm"
)

type TgUserRepository struct {
	*CRUDRepository[models.TgUser]
}

func NewTgUserRepository(db *gorm.DB) *TgUserRepository {
	return &TgUserRepository{NewCRUDRepository[models.TgUser](db, TgUserEntity)}
}

// ListTelegramIDs returns the chat id of every registered user
func (r *TgUserRepository) ListTelegramIDs(ctx context.Context) ([]int64, error) {
	ids := []int64{}
	if err := r.db.WithContext(ctx).Model(&models.TgUser{}).Order("id").Pluck("id_telegram", &ids).Error; err != nil {
		return nil, fmt.Errorf("list telegram ids: %w", err)
	}
	return ids, nil
}
