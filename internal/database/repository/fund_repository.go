package repository

import (
	"context"

	"github.com/muhajir-foundation/muhajir-api/internal/models"

	"gorm.io/gorm"
)

type FundRepository struct {
	Info        *CRUDRepository[models.FundInfo]
	SocialLinks *CRUDRepository[models.SocialLink]
	BankDetails *CRUDRepository[models.BankDetail]
}

func NewFundRepository(db *gorm.DB) *FundRepository {
	return &FundRepository{
		Info:        NewCRUDRepository[models.FundInfo](db, FundInfoEntity),
		SocialLinks: NewCRUDRepository[models.SocialLink](db, SocialLinkEntity),
		BankDetails: NewCRUDRepository[models.BankDetail](db, BankDetailEntity),
	}
}

// Current returns the first fund record with its links and bank details
func (r *FundRepository) Current(ctx context.Context) (*models.FundInfo, error) {
	return r.Info.GetBy(ctx, nil)
}
