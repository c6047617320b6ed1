package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/Fuku-x/connect-app/pkg/utils"
)

type RecruitmentStatus string

const (
	RecruitmentOpen   RecruitmentStatus = "open"
	RecruitmentClosed RecruitmentStatus = "closed"
)

// Recruitment is a "looking for members" board post.
type Recruitment struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	UserID string `gorm:"index;not null" json:"user_id"`
	User   User   `gorm:"foreignKey:UserID" json:"-"`

	Title           string            `gorm:"size:255;not null" json:"title"`
	Description     string            `gorm:"not null" json:"description"`
	RequiredSkills  datatypes.JSON    `json:"required_skills"`
	ProjectDuration string            `json:"project_duration"`
	Compensation    string            `json:"compensation"`
	Status          RecruitmentStatus `gorm:"type:text;default:'open'" json:"status"`
}

func (r *Recruitment) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = utils.GenerateID()
	}
	return nil
}
