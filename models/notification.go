package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Notification types produced by the lifecycle
const (
	NotificationTypeNewOrder        = "new_order"
	NotificationTypePaymentReceived = "payment_received"
)

// Notification is a user-facing notification record. This model only defines
// the record shape; delivery (push, email) is outside the API.
type Notification struct {
	ID        string                 `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    string                 `gorm:"type:uuid;not null;index" json:"user_id"`
	Type      string                 `gorm:"not null" json:"type"`
	Title     string                 `gorm:"not null" json:"title"`
	Message   string                 `gorm:"not null" json:"message"`
	Read      bool                   `gorm:"not null;default:false" json:"read"`
	Metadata  map[string]interface{} `gorm:"serializer:json" json:"metadata,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}

// TableName specifies the table name for the Notification model
func (Notification) TableName() string {
	return "notifications"
}

// BeforeCreate assigns a UUID primary key when none was provided
func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	return nil
}
