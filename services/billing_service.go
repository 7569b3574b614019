package services

import (
	"log"

	"github.com/atelier-studio/atelier-api/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// BillingService maintains the append-only billing ledger. Entries are added
// when cost items are identified and mutated only by toggling the paid flag;
// they are removed only by the cascade of a deleted order.
type BillingService struct {
	db       *gorm.DB
	notifier *NotificationService
}

// NewBillingService creates a billing service backed by db
func NewBillingService(db *gorm.DB, notifier *NotificationService) *BillingService {
	return &BillingService{db: db, notifier: notifier}
}

// AddEntry appends a billing entry to an order. The client reference is
// denormalized from the order at creation time. Amount must be a positive
// value with at most two decimal places.
func (s *BillingService) AddEntry(orderID, description string, amount decimal.Decimal, paid bool) (*models.BillingEntry, error) {
	if description == "" {
		return nil, &ValidationError{Field: "description", Message: "description is required"}
	}
	if amount.Sign() <= 0 {
		return nil, &ValidationError{Field: "amount", Message: "amount must be positive"}
	}
	if amount.Exponent() < -2 {
		return nil, &ValidationError{Field: "amount", Message: "amount must have at most 2 decimal places"}
	}

	var order models.Order
	if err := s.db.First(&order, "id = ?", orderID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, notFound("order", orderID)
		}
		return nil, err
	}

	entry := models.BillingEntry{
		OrderID:     order.ID,
		ClientID:    order.ClientID,
		Description: description,
		Amount:      amount,
		Paid:        paid,
	}
	if err := s.db.Create(&entry).Error; err != nil {
		return nil, err
	}

	if paid {
		// Created already settled: that still counts as the paid flag flipping on
		if err := s.notifier.NotifyPaymentReceived(&entry); err != nil {
			log.Printf("Failed to emit payment_received notification for entry %s: %v", entry.ID, err)
		}
	}

	return &entry, nil
}

// MarkPaid flips an entry to paid. Marking an already-paid entry is a no-op,
// not an error, and emits no second notification.
func (s *BillingService) MarkPaid(entryID string) (*models.BillingEntry, error) {
	var entry models.BillingEntry
	if err := s.db.First(&entry, "id = ?", entryID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, notFound("billing entry", entryID)
		}
		return nil, err
	}

	if entry.Paid {
		return &entry, nil
	}

	if err := s.db.Model(&entry).Update("paid", true).Error; err != nil {
		return nil, err
	}
	entry.Paid = true

	if err := s.notifier.NotifyPaymentReceived(&entry); err != nil {
		log.Printf("Failed to emit payment_received notification for entry %s: %v", entry.ID, err)
	}

	return &entry, nil
}

// MarkUnpaid flips an entry back to unpaid. Idempotent.
func (s *BillingService) MarkUnpaid(entryID string) (*models.BillingEntry, error) {
	var entry models.BillingEntry
	if err := s.db.First(&entry, "id = ?", entryID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, notFound("billing entry", entryID)
		}
		return nil, err
	}

	if !entry.Paid {
		return &entry, nil
	}

	if err := s.db.Model(&entry).Update("paid", false).Error; err != nil {
		return nil, err
	}
	entry.Paid = false
	return &entry, nil
}

// ListForOrder returns an order's billing entries in append order
func (s *BillingService) ListForOrder(orderID string) ([]models.BillingEntry, error) {
	var entries []models.BillingEntry
	err := s.db.Where("order_id = ?", orderID).Order("created_at ASC").Find(&entries).Error
	return entries, err
}
