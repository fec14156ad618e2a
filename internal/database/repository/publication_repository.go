package repository

import (
	"context"

	"github.com/muhajir-foundation/muhajir-api/internal/models"

	"gorm.io/gorm"
)

type PublicationRepository struct {
	*CRUDRepository[models.Publication]
}

func NewPublicationRepository(db *gorm.DB) *PublicationRepository {
	return &PublicationRepository{NewCRUDRepository[models.Publication](db, PublicationEntity)}
}

// GetActive retrieves a publication only if it is published
func (r *PublicationRepository) GetActive(ctx context.Context, id uint) (*models.Publication, error) {
	return r.GetBy(ctx, map[string]interface{}{"id": id, "is_active": true})
}

// ListActive returns published items with their media
func (r *PublicationRepository) ListActive(ctx context.Context, skip, limit int) ([]models.Publication, error) {
	return r.ListBy(ctx, map[string]interface{}{"is_active": true}, skip, limit)
}

// IncrementViews bumps the view counter without touching updated_at
func (r *PublicationRepository) IncrementViews(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&models.Publication{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
}
