package repository

import (
	"context"

	"github.com/muhajir-foundation/muhajir-api/internal/models"

	"gorm.io/gorm"
)

type CampaignRepository struct {
	*CRUDRepository[models.DonationCampaign]
}

func NewCampaignRepository(db *gorm.DB) *CampaignRepository {
	return &CampaignRepository{NewCRUDRepository[models.DonationCampaign](db, CampaignEntity)}
}

// GetByUUID retrieves a campaign with its wallets by public identifier
func (r *CampaignRepository) GetByUUID(ctx context.Context, id string) (*models.DonationCampaign, error) {
	return r.GetBy(ctx, map[string]interface{}{"uuid": id})
}

// ListActive returns the campaigns shown on the public site
func (r *CampaignRepository) ListActive(ctx context.Context, skip, limit int) ([]models.DonationCampaign, error) {
	return r.ListBy(ctx, map[string]interface{}{"is_active": true}, skip, limit)
}

type WalletRepository struct {
	*CRUDRepository[models.Wallet]
}

func NewWalletRepository(db *gorm.DB) *WalletRepository {
	return &WalletRepository{NewCRUDRepository[models.Wallet](db, WalletEntity)}
}

// GetByUUID retrieves a wallet by public identifier
func (r *WalletRepository) GetByUUID(ctx context.Context, id string) (*models.Wallet, error) {
	return r.GetBy(ctx, map[string]interface{}{"uuid": id})
}
