package repository

import (
	"github.com/muhajir-foundation/muhajir-api/internal/models"
	"gorm.io/gorm"
)

// MediaRepository stores the image and video rows attached to publications.
type MediaRepository struct {
	Images *CRUDRepository[models.PublicationImage]
	Videos *CRUDRepository[models.PublicationVideo]
}

func NewMediaRepository(db *gorm.DB) *MediaRepository {
	return &MediaRepository{
		Images: NewCRUDRepository[models.PublicationImage](db, PublicationImageEntity),
		Videos: NewCRUDRepository[models.PublicationVideo](db, PublicationVideoEntity),
	}
}
