package models

import (
	"time"
)

// Feedback is a message left through the public contact form.
type Feedback struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Name      string    `json:"name" gorm:"type:varchar(255);not null"`
	Email     string    `json:"email" gorm:"type:varchar(255);not null"`
	Message   string    `json:"message" gorm:"type:text;not null"`
	IsRead    bool      `json:"is_read" gorm:"not null;index"`
}

func (Feedback) TableName() string {
	return "feedback"
}

type FeedbackCreateRequest struct {
	Name    string `json:"name" binding:"required,max=255"`
	Email   string `json:"email" binding:"required,email"`
	Message string `json:"message" binding:"required"`
}

func (r FeedbackCreateRequest) ToModel() (*Feedback, error) {
	return &Feedback{Name: r.Name, Email: r.Email, Message: r.Message}, nil
}

// FeedbackUpdateRequest is used by admins, mostly to mark messages as read.
type FeedbackUpdateRequest struct {
	Name    *string `json:"name,omitempty"`
	Email   *string `json:"email,omitempty" binding:"omitempty,email"`
	Message *string `json:"message,omitempty"`
	IsRead  *bool   `json:"is_read,omitempty"`
}

func (r FeedbackUpdateRequest) Changes() (map[string]interface{}, error) {
	changes := map[string]interface{}{}
	setString(changes, "name", r.Name)
	setString(changes, "email", r.Email)
	setString(changes, "message", r.Message)
	setBool(changes, "is_read", r.IsRead)
	return changes, nil
}
