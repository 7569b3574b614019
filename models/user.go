package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents a designer account in the system. The atelier is a
// single-designer business, but the role field is kept for schema
// compatibility with existing data.
type User struct {
	ID              string    `gorm:"type:uuid;primaryKey" json:"id"`
	Name            string    `gorm:"not null" json:"name"`
	Email           string    `gorm:"uniqueIndex;not null" json:"email"`
	Password        string    `gorm:"not null" json:"-"` // bcrypt hash
	Role            string    `gorm:"not null;default:'designer'" json:"role"`
	BusinessName    *string   `json:"business_name,omitempty"`
	BusinessPhone   *string   `json:"business_phone,omitempty"`
	BusinessAddress *string   `json:"business_address,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}

// BeforeCreate assigns a UUID primary key when none was provided
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
