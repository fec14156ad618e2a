package models

import (
	"time"
)

// FundInfo describes the foundation itself. The public API serves the first row.
type FundInfo struct {
	ID          uint         `json:"id" gorm:"primaryKey"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
	Name        string       `json:"name" gorm:"type:varchar(255);not null"`
	Description string       `json:"description" gorm:"type:text"`
	Address     string       `json:"address" gorm:"type:varchar(255)"`
	Phone       string       `json:"phone" gorm:"type:varchar(64)"`
	Email       string       `json:"email" gorm:"type:varchar(255)"`
	IsActive    bool         `json:"is_active" gorm:"not null"`
	SocialLinks []SocialLink `json:"social_links" gorm:"foreignKey:FundID;constraint:OnDelete:CASCADE"`
	BankDetails []BankDetail `json:"bank_details" gorm:"foreignKey:FundID;constraint:OnDelete:CASCADE"`
}

func (FundInfo) TableName() string {
	return "fund_info"
}

type SocialLink struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	FundID    uint      `json:"fund_id" gorm:"not null;index"`
	Platform  string    `json:"platform" gorm:"type:varchar(64);not null"`
	URL       string    `json:"url" gorm:"type:varchar(512);not null"`
}

func (SocialLink) TableName() string {
	return "social_links"
}

type BankDetail struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	FundID        uint      `json:"fund_id" gorm:"not null;index"`
	BankName      string    `json:"bank_name" gorm:"type:varchar(255);not null"`
	AccountNumber string    `json:"account_number" gorm:"type:varchar(64);not null"`
	SwiftCode     string    `json:"swift_code" gorm:"type:varchar(32)"`
	IBAN          string    `json:"iban" gorm:"column:iban;type:varchar(64)"`
	Currency      string    `json:"currency" gorm:"type:varchar(16);not null"`
}

func (BankDetail) TableName() string {
	return "bank_details"
}

type FundInfoCreateRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Address     string `json:"address"`
	Phone       string `json:"phone"`
	Email       string `json:"email" binding:"omitempty,email"`
	IsActive    *bool  `json:"is_active,omitempty"`
}

func (r FundInfoCreateRequest) ToModel() (*FundInfo, error) {
	return &FundInfo{
		Name:        r.Name,
		Description: r.Description,
		Address:     r.Address,
		Phone:       r.Phone,
		Email:       r.Email,
		IsActive:    boolOr(r.IsActive, true),
	}, nil
}

type FundInfoUpdateRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Address     *string `json:"address,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	Email       *string `json:"email,omitempty" binding:"omitempty,email"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

func (r FundInfoUpdateRequest) Changes() (map[string]interface{}, error) {
	changes := map[string]interface{}{}
	setString(changes, "name", r.Name)
	setString(changes, "description", r.Description)
	setString(changes, "address", r.Address)
	setString(changes, "phone", r.Phone)
	setString(changes, "email", r.Email)
	setBool(changes, "is_active", r.IsActive)
	return changes, nil
}

type SocialLinkCreateRequest struct {
	FundID   uint   `json:"fund_id" binding:"required"`
	Platform string `json:"platform" binding:"required,max=64"`
	URL      string `json:"url" binding:"required,url"`
}

func (r SocialLinkCreateRequest) ToModel() (*SocialLink, error) {
	return &SocialLink{FundID: r.FundID, Platform: r.Platform, URL: r.URL}, nil
}

type SocialLinkUpdateRequest struct {
	FundID   *uint   `json:"fund_id,omitempty"`
	Platform *string `json:"platform,omitempty" binding:"omitempty,max=64"`
	URL      *string `json:"url,omitempty" binding:"omitempty,url"`
}

func (r SocialLinkUpdateRequest) Changes() (map[string]interface{}, error) {
	changes := map[string]interface{}{}
	if r.FundID != nil {
		changes["fund_id"] = *r.FundID
	}
	setString(changes, "platform", r.Platform)
	setString(changes, "url", r.URL)
	return changes, nil
}

type BankDetailCreateRequest struct {
	FundID        uint   `json:"fund_id" binding:"required"`
	BankName      string `json:"bank_name" binding:"required"`
	AccountNumber string `json:"account_number" binding:"required"`
	SwiftCode     string `json:"swift_code"`
	IBAN          string `json:"iban"`
	Currency      string `json:"currency" binding:"required,max=16"`
}

func (r BankDetailCreateRequest) ToModel() (*BankDetail, error) {
	return &BankDetail{
		FundID:        r.FundID,
		BankName:      r.BankName,
		AccountNumber: r.AccountNumber,
		SwiftCode:     r.SwiftCode,
		IBAN:          r.IBAN,
		Currency:      r.Currency,
	}, nil
}

type BankDetailUpdateRequest struct {
	FundID        *uint   `json:"fund_id,omitempty"`
	BankName      *string `json:"bank_name,omitempty"`
	AccountNumber *string `json:"account_number,omitempty"`
	SwiftCode     *string `json:"swift_code,omitempty"`
	IBAN          *string `json:"iban,omitempty"`
	Currency      *string `json:"currency,omitempty" binding:"omitempty,max=16"`
}

func (r BankDetailUpdateRequest) Changes() (map[string]interface{}, error) {
	changes := map[string]interface{}{}
	if r.FundID != nil {
		changes["fund_id"] = *r.FundID
	}
	setString(changes, "bank_name", r.BankName)
	setString(changes, "account_number", r.AccountNumber)
	setString(changes, "swift_code", r.SwiftCode)
	setString(changes, "iban", r.IBAN)
	setString(changes, "currency", r.Currency)
	return changes, nil
}
