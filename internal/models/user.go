package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is the owning identity for resumes and job applications. Identity
// fields are immutable after registration.
type User struct {
	ID           string `gorm:"type:char(36);primaryKey" json:"id"`
	Email        string `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Name         string `gorm:"size:255" json:"name,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`

	Resumes      []Resume         `gorm:"foreignKey:UserID" json:"-"`
	Applications []JobApplication `gorm:"foreignKey:UserID" json:"-"`
}

// BeforeCreate assigns a uuid primary key when none was supplied.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// TableName overrides the table name for User
func (User) TableName() string {
	return "users"
}
