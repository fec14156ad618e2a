package models

import (
	"time"

	"github.com/muhajir-foundation/muhajir-api/internal/utils"
)

// User is an account able to log in with email and password. Only
// superusers reach the admin API.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Email        string    `json:"email" gorm:"type:varchar(255);not null;uniqueIndex"`
	FullName     string    `json:"full_name" gorm:"type:varchar(255)"`
	PasswordHash string    `json:"-" gorm:"column:hashed_password;type:varchar(255);not null"`
	IsActive     bool      `json:"is_active" gorm:"not null;index"`
	IsSuperuser  bool      `json:"is_superuser" gorm:"not null"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}

type UserCreateRequest struct {
	Email       string `json:"email" binding:"required,email"`
	FullName    string `json:"full_name"`
	Password    string `json:"password" binding:"required,min=6,max=72"`
	IsActive    *bool  `json:"is_active,omitempty"`
	IsSuperuser bool   `json:"is_superuser"`
}

func (r UserCreateRequest) ToModel() (*User, error) {
	hash, err := utils.HashPassword(r.Password)
	if err != nil {
		return nil, err
	}
	return &User{
		Email:        r.Email,
		FullName:     r.FullName,
		PasswordHash: hash,
		IsActive:     boolOr(r.IsActive, true),
		IsSuperuser:  r.IsSuperuser,
	}, nil
}

type UserUpdateRequest struct {
	Email       *string `json:"email,omitempty" binding:"omitempty,email"`
	FullName    *string `json:"full_name,omitempty"`
	Password    *string `json:"password,omitempty" binding:"omitempty,min=6,max=72"`
	IsActive    *bool   `json:"is_active,omitempty"`
	IsSuperuser *bool   `json:"is_superuser,omitempty"`
}

func (r UserUpdateRequest) Changes() (map[string]interface{}, error) {
	changes := map[string]interface{}{}
	if r.Email != nil {
		changes["email"] = *r.Email
	}
	if r.FullName != nil {
		changes["full_name"] = *r.FullName
	}
	if r.Password != nil {
		hash, err := utils.HashPassword(*r.Password)
		if err != nil {
			return nil, err
		}
		changes["hashed_password"] = hash
	}
	if r.IsActive != nil {
		changes["is_active"] = *r.IsActive
	}
	if r.IsSuperuser != nil {
		changes["is_superuser"] = *r.IsSuperuser
	}
	return changes, nil
}
