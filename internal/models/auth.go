package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// LoginRequest accepts the OAuth2 password-form field names as well as JSON.
type LoginRequest struct {
	Username string `json:"username" form:"username" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

// TokenResponse represents the authentication response
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// JWTClaims carries the user's email in the subject claim.
type JWTClaims struct {
	jwt.RegisteredClaims
}
