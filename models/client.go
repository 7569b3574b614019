package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Client represents a customer of the atelier. Phone is the natural key used
// by the booking flow to reuse an existing client record.
type Client struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Phone     string    `gorm:"not null;index" json:"phone"`
	Whatsapp  *string   `json:"whatsapp,omitempty"`
	Email     *string   `json:"email,omitempty"`
	Address   *string   `json:"address,omitempty"`
	CreatedAt time.Time `json:"created_at"`

	Measurements   []Measurement  `gorm:"foreignKey:ClientID;constraint:OnDelete:CASCADE" json:"measurements,omitempty"`
	Orders         []Order        `gorm:"foreignKey:ClientID" json:"orders,omitempty"`
	BillingEntries []BillingEntry `gorm:"foreignKey:ClientID" json:"billing_entries,omitempty"`
}

// TableName specifies the table name for the Client model
func (Client) TableName() string {
	return "clients"
}

// BeforeCreate assigns a UUID primary key when none was provided
func (c *Client) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
