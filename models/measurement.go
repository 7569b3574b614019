package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Measurement is a named snapshot of a client's body measurements taken during
// a fitting session. Records are never mutated after creation; a correction is
// a new record with a new label (e.g. "Initial Measurements" vs "Revised
// Measurements").
type Measurement struct {
	ID                 string            `gorm:"type:uuid;primaryKey" json:"id"`
	ClientID           string            `gorm:"type:uuid;not null;index" json:"client_id"`
	Label              string            `gorm:"not null" json:"label"`
	Chest              *decimal.Decimal  `gorm:"type:decimal(6,2)" json:"chest,omitempty"`
	Waist              *decimal.Decimal  `gorm:"type:decimal(6,2)" json:"waist,omitempty"`
	Hips               *decimal.Decimal  `gorm:"type:decimal(6,2)" json:"hips,omitempty"`
	Shoulder           *decimal.Decimal  `gorm:"type:decimal(6,2)" json:"shoulder,omitempty"`
	Sleeve             *decimal.Decimal  `gorm:"type:decimal(6,2)" json:"sleeve,omitempty"`
	Length             *decimal.Decimal  `gorm:"type:decimal(6,2)" json:"length,omitempty"`
	Inseam             *decimal.Decimal  `gorm:"type:decimal(6,2)" json:"inseam,omitempty"`
	Neck               *decimal.Decimal  `gorm:"type:decimal(6,2)" json:"neck,omitempty"`
	CustomMeasurements map[string]string `gorm:"serializer:json" json:"custom_measurements,omitempty"`
	Notes              *string           `json:"notes,omitempty"`
	CreatedAt          time.Time         `json:"created_at"`
}

// TableName specifies the table name for the Measurement model
func (Measurement) TableName() string {
	return "measurements"
}

// BeforeCreate assigns a UUID primary key when none was provided
func (m *Measurement) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// Validate checks that every populated numeric field is a positive value
// representable with at most two decimal places.
func (m *Measurement) Validate() error {
	fields := map[string]*decimal.Decimal{
		"chest":    m.Chest,
		"waist":    m.Waist,
		"hips":     m.Hips,
		"shoulder": m.Shoulder,
		"sleeve":   m.Sleeve,
		"length":   m.Length,
		"inseam":   m.Inseam,
		"neck":     m.Neck,
	}
	for name, v := range fields {
		if v == nil {
			continue
		}
		if v.Sign() <= 0 {
			return fmt.Errorf("measurement %s must be positive, got %s", name, v.String())
		}
		if v.Exponent() < -2 {
			return fmt.Errorf("measurement %s must have at most 2 decimal places, got %s", name, v.String())
		}
	}
	return nil
}
