package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/muhajir-foundation/muhajir-api/internal/config"
	"github.com/muhajir-foundation/muhajir-api/internal/database/repository"
	"github.com/muhajir-foundation/muhajir-api/internal/models"
	"github.com/muhajir-foundation/muhajir-api/internal/utils"
)

var (
	ErrInvalidCredentials = errors.New("incorrect email or password")
	ErrInvalidToken       = errors.New("could not validate credentials")
	ErrInactiveUser       = errors.New("inactive user")
	ErrForbidden          = errors.New("not enough privileges")
)

type AuthService struct {
	userRepo       *repository.UserRepository
	jwtSecret      []byte
	accessTokenTTL time.Duration
}

func NewAuthService(db *gorm.DB, cfg *config.Config) *AuthService {
	secret := cfg.Security.SecretKey
	if secret == "" {
		// only reachable in debug mode, see config.Validate
		logrus.Warn("SECRET_KEY is empty, using an insecure development key")
		secret = "insecure-development-key"
	}
	logrus.Infof("Access token TTL: %s", cfg.AccessTokenTTL())

	return &AuthService{
		userRepo:       repository.NewUserRepository(db),
		jwtSecret:      []byte(secret),
		accessTokenTTL: cfg.AccessTokenTTL(),
	}
}

// Login checks email and password and issues a bearer token
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.TokenResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil || !utils.VerifyPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrInactiveUser
	}

	token, err := s.GenerateAccessToken(user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	return &models.TokenResponse{AccessToken: token, TokenType: "bearer"}, nil
}

// GenerateAccessToken signs an HS256 token whose subject is the email
func (s *AuthService) GenerateAccessToken(email string) (string, error) {
	now := time.Now()
	claims := &models.JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

// ValidateToken parses the token and returns the active user it names
func (s *AuthService) ValidateToken(ctx context.Context, tokenString string) (*models.User, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*models.JWTClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	user, err := s.userRepo.GetByEmail(ctx, claims.Subject)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidToken
	}
	if !user.IsActive {
		return nil, ErrInactiveUser
	}
	return user, nil
}

// CurrentAdmin is ValidateToken restricted to superusers
func (s *AuthService) CurrentAdmin(ctx context.Context, tokenString string) (*models.User, error) {
	user, err := s.ValidateToken(ctx, tokenString)
	if err != nil {
		return nil, err
	}
	if !user.IsSuperuser {
		return nil, ErrForbidden
	}
	return user, nil
}

// EnsureAdminUser creates the superuser if no account uses email yet.
// Existing accounts are left untouched.
func (s *AuthService) EnsureAdminUser(ctx context.Context, email, password string) error {
	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	admin, err := models.UserCreateRequest{
		Email:       email,
		FullName:    "Admin",
		Password:    password,
		IsSuperuser: true,
	}.ToModel()
	if err != nil {
		return err
	}
	if _, err := s.userRepo.Create(ctx, admin); err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}
	logrus.Infof("Created admin user %s", email)
	return nil
}
