package repository

import (
	"context"

	"github.com/muhajir-foundation/muhajir-api/internal/models"
	"gorm.io/gorm"
)

// APIKeyRepository handles database operations for APIKey entities
type APIKeyRepository struct {
	*CRUDRepository[models.APIKey]
}

// NewAPIKeyRepository creates a new APIKeyRepository instance
func NewAPIKeyRepository(db *gorm.DB) *APIKeyRepository {
	return &APIKeyRepository{NewCRUDRepository[models.APIKey](db, APIKeyEntity)}
}

// GetByKey retrieves an API key by its public key, active or not
func (r *APIKeyRepository) GetByKey(ctx context.Context, key string) (*models.APIKey, error) {
	return r.GetBy(ctx, map[string]interface{}{"api_key": key})
}

// GetActiveByKey retrieves an API key only while it is active
func (r *APIKeyRepository) GetActiveByKey(ctx context.Context, key string) (*models.APIKey, error) {
	return r.GetBy(ctx, map[string]interface{}{"api_key": key, "is_active": true})
}
