package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DonationCampaign groups the wallets donors can send funds to.
type DonationCampaign struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	UUID        string    `json:"uuid" gorm:"column:uuid;type:varchar(36);not null;uniqueIndex"`
	Title       string    `json:"title" gorm:"type:varchar(255);not null"`
	Description string    `json:"description" gorm:"type:text;not null"`
	IsActive    bool      `json:"is_active" gorm:"not null;index"`
	Wallets     []Wallet  `json:"wallets" gorm:"foreignKey:CampaignID;constraint:OnDelete:CASCADE"`
}

func (DonationCampaign) TableName() string {
	return "donation_campaigns"
}

func (c *DonationCampaign) BeforeCreate(tx *gorm.DB) error {
	if c.UUID == "" {
		c.UUID = uuid.NewString()
	}
	return nil
}

// Wallet holds the crypto addresses of a campaign. Empty address means the
// currency is not accepted.
type Wallet struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	UUID       string    `json:"uuid" gorm:"column:uuid;type:varchar(36);not null;uniqueIndex"`
	CampaignID uint      `json:"campaign_id" gorm:"not null;index"`
	Name       string    `json:"name" gorm:"type:varchar(255);not null"`
	USDTTRC20  string    `json:"usdt_trc20" gorm:"column:usdt_trc20;type:varchar(128)"`
	BCH        string    `json:"bch" gorm:"column:bch;type:varchar(128)"`
	ETH        string    `json:"eth" gorm:"column:eth;type:varchar(128)"`
	BTC        string    `json:"btc" gorm:"column:btc;type:varchar(128)"`
}

func (Wallet) TableName() string {
	return "wallets"
}

func (w *Wallet) BeforeCreate(tx *gorm.DB) error {
	if w.UUID == "" {
		w.UUID = uuid.NewString()
	}
	return nil
}

type CampaignCreateRequest struct {
	Title       string `json:"title" binding:"required,max=255"`
	Description string `json:"description" binding:"required"`
	IsActive    *bool  `json:"is_active,omitempty"`
}

func (r CampaignCreateRequest) ToModel() (*DonationCampaign, error) {
	return &DonationCampaign{
		Title:       r.Title,
		Description: r.Description,
		IsActive:    boolOr(r.IsActive, true),
	}, nil
}

type CampaignUpdateRequest struct {
	Title       *string `json:"title,omitempty" binding:"omitempty,max=255"`
	Description *string `json:"description,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

func (r CampaignUpdateRequest) Changes() (map[string]interface{}, error) {
	changes := map[string]interface{}{}
	setString(changes, "title", r.Title)
	setString(changes, "description", r.Description)
	setBool(changes, "is_active", r.IsActive)
	return changes, nil
}

type WalletCreateRequest struct {
	CampaignID uint   `json:"campaign_id" binding:"required"`
	Name       string `json:"name" binding:"required,max=255"`
	USDTTRC20  string `json:"usdt_trc20"`
	BCH        string `json:"bch"`
	ETH        string `json:"eth"`
	BTC        string `json:"btc"`
}

func (r WalletCreateRequest) ToModel() (*Wallet, error) {
	return &Wallet{
		CampaignID: r.CampaignID,
		Name:       r.Name,
		USDTTRC20:  r.USDTTRC20,
		BCH:        r.BCH,
		ETH:        r.ETH,
		BTC:        r.BTC,
	}, nil
}

type WalletUpdateRequest struct {
	CampaignID *uint   `json:"campaign_id,omitempty"`
	Name       *string `json:"name,omitempty" binding:"omitempty,max=255"`
	USDTTRC20  *string `json:"usdt_trc20,omitempty"`
	BCH        *string `json:"bch,omitempty"`
	ETH        *string `json:"eth,omitempty"`
	BTC        *string `json:"btc,omitempty"`
}

func (r WalletUpdateRequest) Changes() (map[string]interface{}, error) {
	changes := map[string]interface{}{}
	if r.CampaignID != nil {
		changes["campaign_id"] = *r.CampaignID
	}
	setString(changes, "name", r.Name)
	setString(changes, "usdt_trc20", r.USDTTRC20)
	setString(changes, "bch", r.BCH)
	setString(changes, "eth", r.ETH)
	setString(changes, "btc", r.BTC)
	return changes, nil
}
