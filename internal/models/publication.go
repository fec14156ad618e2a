package models

import (
	"time"
)

// Publication is a news item or fundraising appeal.
type Publication struct {
	ID            uint               `json:"id" gorm:"primaryKey"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
	Title         string             `json:"title" gorm:"type:varchar(255);not null"`
	Slug          string             `json:"slug" gorm:"type:varchar(255);not null;uniqueIndex"`
	Photo         string             `json:"photo" gorm:"type:varchar(512)"`
	Text          string             `json:"text" gorm:"type:text;not null"`
	IsActive      bool               `json:"is_active" gorm:"not null;index"`
	IsFundraising bool               `json:"is_fundraising" gorm:"not null"`
	Views         int                `json:"views" gorm:"not null;default:0"`
	SourceLink    string             `json:"source_link" gorm:"type:varchar(512)"`
	FilePath      string             `json:"file_path" gorm:"type:varchar(512)"`
	IPFSLink      string             `json:"ipfs_link" gorm:"column:ipfs_link;type:varchar(512)"`
	Images        []PublicationImage `json:"images" gorm:"foreignKey:PublicationID;constraint:OnDelete:CASCADE"`
	Videos        []PublicationVideo `json:"videos" gorm:"foreignKey:PublicationID;constraint:OnDelete:CASCADE"`
}

func (Publication) TableName() string {
	return "publications"
}

type PublicationImage struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	CreatedAt     time.Time `json:"created_at"`
	PublicationID uint      `json:"publication_id" gorm:"not null;index"`
	Path          string    `json:"image" gorm:"column:image;type:varchar(512);not null"`
}

func (PublicationImage) TableName() string {
	return "publication_images"
}

type PublicationVideo struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	CreatedAt     time.Time `json:"created_at"`
	PublicationID uint      `json:"publication_id" gorm:"not null;index"`
	Path          string    `json:"video" gorm:"column:video;type:varchar(512);not null"`
}

func (PublicationVideo) TableName() string {
	return "publication_videos"
}

type PublicationCreateRequest struct {
	Title         string `json:"title" binding:"required,max=255"`
	Slug          string `json:"slug" binding:"required,max=255"`
	Photo         string `json:"photo"`
	Text          string `json:"text" binding:"required"`
	IsActive      *bool  `json:"is_active,omitempty"`
	IsFundraising bool   `json:"is_fundraising"`
	SourceLink    string `json:"source_link" binding:"omitempty,url"`
	FilePath      string `json:"file_path"`
	IPFSLink      string `json:"ipfs_link"`
}

func (r PublicationCreateRequest) ToModel() (*Publication, error) {
	return &Publication{
		Title:         r.Title,
		Slug:          r.Slug,
		Photo:         r.Photo,
		Text:          r.Text,
		IsActive:      boolOr(r.IsActive, true),
		IsFundraising: r.IsFundraising,
		SourceLink:    r.SourceLink,
		FilePath:      r.FilePath,
		IPFSLink:      r.IPFSLink,
	}, nil
}

type PublicationUpdateRequest struct {
	Title         *string `json:"title,omitempty" binding:"omitempty,max=255"`
	Slug          *string `json:"slug,omitempty" binding:"omitempty,max=255"`
	Photo         *string `json:"photo,omitempty"`
	Text          *string `json:"text,omitempty"`
	IsActive      *bool   `json:"is_active,omitempty"`
	IsFundraising *bool   `json:"is_fundraising,omitempty"`
	Views         *int    `json:"views,omitempty" binding:"omitempty,min=0"`
	SourceLink    *string `json:"source_link,omitempty" binding:"omitempty,url"`
	FilePath      *string `json:"file_path,omitempty"`
	IPFSLink      *string `json:"ipfs_link,omitempty"`
}

func (r PublicationUpdateRequest) Changes() (map[string]interface{}, error) {
	changes := map[string]interface{}{}
	setString(changes, "title", r.Title)
	setString(changes, "slug", r.Slug)
	setString(changes, "photo", r.Photo)
	setString(changes, "text", r.Text)
	setBool(changes, "is_active", r.IsActive)
	setBool(changes, "is_fundraising", r.IsFundraising)
	if r.Views != nil {
		changes["views"] = *r.Views
	}
	setString(changes, "source_link", r.SourceLink)
	setString(changes, "file_path", r.FilePath)
	setString(changes, "ipfs_link", r.IPFSLink)
	return changes, nil
}
