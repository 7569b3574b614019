package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderStatus represents the status of an order
type OrderStatus string

const (
	OrderStatusRequested        OrderStatus = "requested"
	OrderStatusAccepted         OrderStatus = "accepted"
	OrderStatusInProgress       OrderStatus = "in_progress"
	OrderStatusReadyForDelivery OrderStatus = "ready_for_delivery"
	OrderStatusDelivered        OrderStatus = "delivered"
)

// statusRank fixes the forward ordering of the lifecycle. Higher rank means
// further along; transitions may only move to a higher rank.
var statusRank = map[OrderStatus]int{
	OrderStatusRequested:        0,
	OrderStatusAccepted:         1,
	OrderStatusInProgress:       2,
	OrderStatusReadyForDelivery: 3,
	OrderStatusDelivered:        4,
}

// OrderStatuses lists all statuses in lifecycle order
var OrderStatuses = []OrderStatus{
	OrderStatusRequested,
	OrderStatusAccepted,
	OrderStatusInProgress,
	OrderStatusReadyForDelivery,
	OrderStatusDelivered,
}

// IsValid checks if the status is a valid OrderStatus
func (s OrderStatus) IsValid() bool {
	_, ok := statusRank[s]
	return ok
}

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// Rank returns the position of the status in the lifecycle ordering,
// or -1 for an unknown status.
func (s OrderStatus) Rank() int {
	rank, ok := statusRank[s]
	if !ok {
		return -1
	}
	return rank
}

// CanTransitionTo checks if the status can transition to the target status.
// Backward transitions are never allowed. When allowSkip is false the target
// must be the immediately next status; when true any forward move is allowed.
func (s OrderStatus) CanTransitionTo(target OrderStatus, allowSkip bool) bool {
	from, ok := statusRank[s]
	if !ok {
		return false
	}
	to, ok := statusRank[target]
	if !ok {
		return false
	}
	if allowSkip {
		return to > from
	}
	return to == from+1
}

// IsTerminal reports whether the status is the end of the lifecycle
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered
}

// Order represents a single client engagement to have one design produced,
// tracked through the status lifecycle.
type Order struct {
	ID            string       `gorm:"type:uuid;primaryKey" json:"id"`
	ClientID      string       `gorm:"type:uuid;not null;index" json:"client_id"`
	Client        Client       `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	DesignID      string       `gorm:"type:uuid;not null;index" json:"design_id"`
	Design        Design       `gorm:"foreignKey:DesignID" json:"design,omitempty"`
	DesignerID    string       `gorm:"type:uuid;not null;index" json:"designer_id"`
	Designer      User         `gorm:"foreignKey:DesignerID" json:"-"`
	Status        OrderStatus  `gorm:"type:string;not null;default:'requested'" json:"status"`
	PreferredDate *time.Time   `json:"preferred_date,omitempty"`
	Notes         *string      `json:"notes,omitempty"`
	MeasurementID *string      `gorm:"type:uuid" json:"measurement_id,omitempty"`
	Measurement   *Measurement `gorm:"foreignKey:MeasurementID" json:"measurement,omitempty"`
	CreatedAt     time.Time    `json:"created_at"`

	Files          []OrderFile    `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"files,omitempty"`
	BillingEntries []BillingEntry `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"billing_entries,omitempty"`
}

// TableName specifies the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// BeforeCreate assigns a UUID primary key when none was provided
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}

// OrderFile is a reference file (sketch, fabric photo, fitting document)
// attached to an order.
type OrderFile struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID   string    `gorm:"type:uuid;not null;index" json:"order_id"`
	FileURL   string    `gorm:"not null" json:"file_url"`
	FileType  string    `gorm:"not null" json:"file_type"`
	FileName  *string   `json:"file_name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for the OrderFile model
func (OrderFile) TableName() string {
	return "order_files"
}

// BeforeCreate assigns a UUID primary key when none was provided
func (f *OrderFile) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	return nil
}
