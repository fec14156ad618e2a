package models

import (
	"time"
)

// APIKey is a machine credential. Callers sign an agreed payload with Secret
// and send Key alongside the signature.
type APIKey struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Key       string    `json:"api_key" gorm:"column:api_key;type:varchar(64);not null;uniqueIndex"`
	Secret    string    `json:"-" gorm:"column:api_secret;type:varchar(128);not null"`
	Name      string    `json:"name" gorm:"type:varchar(100);not null"`
	IsActive  bool      `json:"is_active" gorm:"not null;index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for the APIKey model
func (APIKey) TableName() string {
	return "api_keys"
}

// APIKeyCreateRequest is the admin payload for issuing a key.
type APIKeyCreateRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	IsActive *bool  `json:"is_active,omitempty"`
}

// APIKeyUpdateRequest carries the mutable fields of a key. Key and secret are
// never changed after issue.
type APIKeyUpdateRequest struct {
	Name     *string `json:"name,omitempty" binding:"omitempty,max=100"`
	IsActive *bool   `json:"is_active,omitempty"`
}

func (r APIKeyUpdateRequest) Changes() (map[string]interface{}, error) {
	changes := map[string]interface{}{}
	if r.Name != nil {
		changes["name"] = *r.Name
	}
	if r.IsActive != nil {
		changes["is_active"] = *r.IsActive
	}
	return changes, nil
}

// APIKeyCreatedResponse is returned exactly once, when the key is issued.
type APIKeyCreatedResponse struct {
	ID        uint      `json:"id"`
	Key       string    `json:"api_key"`
	Secret    string    `json:"api_secret"`
	Name      string    `json:"name"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewAPIKeyCreatedResponse(k *APIKey) *APIKeyCreatedResponse {
	return &APIKeyCreatedResponse{
		ID:        k.ID,
		Key:       k.Key,
		Secret:    k.Secret,
		Name:      k.Name,
		IsActive:  k.IsActive,
		CreatedAt: k.CreatedAt,
		UpdatedAt: k.UpdatedAt,
	}
}
