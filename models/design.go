package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Design represents a published or draft design in the catalog
type Design struct {
	ID          string          `gorm:"type:uuid;primaryKey" json:"id"`
	DesignerID  string          `gorm:"type:uuid;not null;index" json:"designer_id"`
	Designer    User            `gorm:"foreignKey:DesignerID" json:"-"`
	Title       string          `gorm:"not null" json:"title"`
	Description *string         `json:"description,omitempty"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Category    string          `gorm:"not null" json:"category"`
	IsPublished bool            `gorm:"not null;default:false" json:"is_published"`
	CreatedAt   time.Time       `json:"created_at"`

	Images []DesignImage `gorm:"foreignKey:DesignID;constraint:OnDelete:CASCADE" json:"images,omitempty"`
}

// TableName specifies the table name for the Design model
func (Design) TableName() string {
	return "designs"
}

// BeforeCreate assigns a UUID primary key when none was provided
func (d *Design) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}

// DesignImage is one image of a design's carousel, ordered by SortOrder
type DesignImage struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	DesignID  string    `gorm:"type:uuid;not null;index" json:"design_id"`
	ImageURL  string    `gorm:"not null" json:"image_url"`
	SortOrder int       `gorm:"not null;default:0" json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for the DesignImage model
func (DesignImage) TableName() string {
	return "design_images"
}

// BeforeCreate assigns a UUID primary key when none was provided
func (i *DesignImage) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}

// Category is a catalog category name
type Category struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for the Category model
func (Category) TableName() string {
	return "categories"
}

// BeforeCreate assigns a UUID primary key when none was provided
func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
