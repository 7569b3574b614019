package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// BillingEntry is one line item of cost for an order. ClientID is denormalized
// from the owning order at append time and never re-derived. Entries are never
// deleted individually; they go away only with their parent order.
type BillingEntry struct {
	ID          string          `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID     string          `gorm:"type:uuid;not null;index" json:"order_id"`
	ClientID    string          `gorm:"type:uuid;not null;index" json:"client_id"`
	Description string          `gorm:"not null" json:"description"`
	Amount      decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	Paid        bool            `gorm:"not null;default:false" json:"paid"`
	CreatedAt   time.Time       `json:"created_at"`
}

// TableName specifies the table name for the BillingEntry model
func (BillingEntry) TableName() string {
	return "billing_entries"
}

// BeforeCreate assigns a UUID primary key when none was provided
func (e *BillingEntry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}
