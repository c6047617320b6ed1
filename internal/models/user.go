package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/Fuku-x/connect-app/pkg/utils"
)

// User is a registered student. Accounts are created with a school email
// (@st.kobedenshi.ac.jp) and are soft-deleted only.
type User struct {
	ID        string         `gorm:"primaryKey;type:text" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Name     string `json:"name"`
	Email    string `gorm:"uniqueIndex" json:"email"`
	Password string `json:"-"`

	// Profile
	StudentID    string `gorm:"size:50" json:"student_id"`
	Department   string `json:"department"`
	Grade        *int   `json:"grade"`
	Bio          string `gorm:"size:1000" json:"bio"`
	ProfileImage string `json:"profile_image"`

	ResetToken       string    `json:"-"`
	ResetTokenExpiry time.Time `json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = utils.GenerateID()
	}
	return nil
}

// PublicUser is the identity shape exposed to other users (inbox rows,
// portfolio authors, recruitment posts).
type PublicUser struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Department   string `json:"department,omitempty"`
	ProfileImage string `json:"profile_image,omitempty"`
}

func (u *User) Public() PublicUser {
	return PublicUser{
		ID:           u.ID,
		Name:         u.Name,
		Department:   u.Department,
		ProfileImage: u.ProfileImage,
	}
}
