package repository

import (
	"context"

	"github.com/muhajir-foundation/muhajir-api/internal/models"

	"gorm.io/gorm"
)

type UserRepository struct {
	*CRUDRepository[models.User]
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{NewCRUDRepository[models.User](db, UserEntity)}
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.GetBy(ctx, map[string]interface{}{"email": email})
}
