// Package api_key issues API keys and verifies HMAC-signed machine requests.
package api_key

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"gorm.io/gorm"

	"github.com/muhajir-foundation/muhajir-api/internal/database/repository"
	"github.com/muhajir-foundation/muhajir-api/internal/models"
)

const (
	keyAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	keyLength   = 32
	// 43 symbols from nanoid's 64-character URL-safe alphabet is 258 bits.
	secretLength = 43
)

// Service handles API key operations
type Service struct {
	repo *repository.APIKeyRepository
	// signed when the key is unknown so both paths do the same work
	dummySecret string
}

// NewService creates a new API key service
func NewService(db *gorm.DB) *Service {
	dummy, err := GenerateSecret()
	if err != nil {
		panic(fmt.Sprintf("api_key: cannot read random source: %v", err))
	}
	return &Service{
		repo:        repository.NewAPIKeyRepository(db),
		dummySecret: dummy,
	}
}

// Repository exposes the underlying storage for the admin CRUD endpoints
func (s *Service) Repository() *repository.APIKeyRepository {
	return s.repo
}

// GenerateKey returns a 32-character alphanumeric public key.
func GenerateKey() (string, error) {
	return gonanoid.Generate(keyAlphabet, keyLength)
}

// GenerateSecret returns a URL-safe secret with at least 256 bits of entropy.
func GenerateSecret() (string, error) {
	return gonanoid.New(secretLength)
}

// Sign returns the lowercase hex HMAC-SHA256 of data keyed with secret.
func Sign(secret, data string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(data))
	return hex.EncodeToString(mac.Sum(nil))
}

// Create issues a new key pair. The returned record is the only place the
// secret is ever handed out.
func (s *Service) Create(ctx context.Context, req models.APIKeyCreateRequest) (*models.APIKey, error) {
	key, err := GenerateKey()
	if err != nil {
		return nil, fmt.Errorf("failed to generate API key: %w", err)
	}
	secret, err := GenerateSecret()
	if err != nil {
		return nil, fmt.Errorf("failed to generate API secret: %w", err)
	}

	apiKey := &models.APIKey{
		Key:      key,
		Secret:   secret,
		Name:     req.Name,
		IsActive: req.IsActive == nil || *req.IsActive,
	}
	return s.repo.Create(ctx, apiKey)
}

// Verify reports whether signature is the HMAC of data under the secret of
// an active key. Unknown, inactive and mismatched all return false; only
// storage failures return an error.
func (s *Service) Verify(ctx context.Context, key, signature, data string) (bool, error) {
	apiKey, err := s.repo.GetActiveByKey(ctx, key)
	if err != nil {
		return false, fmt.Errorf("failed to look up API key: %w", err)
	}

	secret := s.dummySecret
	if apiKey != nil {
		secret = apiKey.Secret
	}
	expected := Sign(secret, data)
	match := hmac.Equal([]byte(expected), []byte(signature))

	return apiKey != nil && match, nil
}
