package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/Fuku-x/connect-app/pkg/utils"
)

// Portfolio is a student's showcase document. Skills/Projects/Links are
// free-form JSON arrays edited as a whole by the owner. Only rows with
// IsPublic set show up in the public listing.
type Portfolio struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	UserID string `gorm:"index;not null" json:"user_id"`
	User   User   `gorm:"foreignKey:UserID" json:"-"`

	Title       string `gorm:"size:255;not null" json:"title"`
	Description string `json:"description"`

	Skills   datatypes.JSON `json:"skills"`
	Projects datatypes.JSON `json:"projects"`
	Links    datatypes.JSON `json:"links"`

	IsPublic      bool           `gorm:"default:false" json:"is_public"`
	ThumbnailPath string         `json:"thumbnail_path"`
	GalleryImages datatypes.JSON `json:"gallery_images"`
	GithubURL     string         `json:"github_url"`
	ExternalURL   string         `json:"external_url"`
}

func (p *Portfolio) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = utils.GenerateID()
	}
	return nil
}
