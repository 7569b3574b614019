package services

import (
	"fmt"

	"github.com/atelier-studio/atelier-api/models"
	"gorm.io/gorm"
)

// NotificationService produces notification records for lifecycle events.
// It only writes rows; delivery is someone else's job.
type NotificationService struct {
	db *gorm.DB
}

// NewNotificationService creates a notification service backed by db
func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{db: db}
}

// NotifyNewOrder records a new_order notification for the order's designer
func (s *NotificationService) NotifyNewOrder(order *models.Order, clientName, designTitle string) error {
	notification := models.Notification{
		UserID:  order.DesignerID,
		Type:    models.NotificationTypeNewOrder,
		Title:   "New Order Request",
		Message: fmt.Sprintf("%s requested \"%s\"", clientName, designTitle),
		Metadata: map[string]interface{}{
			"order_id":  order.ID,
			"client_id": order.ClientID,
			"design_id": order.DesignID,
		},
	}
	return s.db.Create(&notification).Error
}

// NotifyPaymentReceived records a payment_received notification for the
// designer of the entry's order. Called only when the paid flag flips to true.
func (s *NotificationService) NotifyPaymentReceived(entry *models.BillingEntry) error {
	var order models.Order
	if err := s.db.First(&order, "id = ?", entry.OrderID).Error; err != nil {
		return fmt.Errorf("failed to load order for payment notification: %w", err)
	}

	notification := models.Notification{
		UserID:  order.DesignerID,
		Type:    models.NotificationTypePaymentReceived,
		Title:   "Payment Received",
		Message: fmt.Sprintf("Payment of $%s received for %q", entry.Amount.StringFixed(2), entry.Description),
		Metadata: map[string]interface{}{
			"order_id":         entry.OrderID,
			"client_id":        entry.ClientID,
			"billing_entry_id": entry.ID,
		},
	}
	return s.db.Create(&notification).Error
}

// List returns a user's notifications, newest first
func (s *NotificationService) List(userID string) ([]models.Notification, error) {
	var notifications []models.Notification
	err := s.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&notifications).Error
	return notifications, err
}

// UnreadCount returns the number of unread notifications for a user
func (s *NotificationService) UnreadCount(userID string) (int64, error) {
	var count int64
	err := s.db.Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Count(&count).Error
	return count, err
}

// MarkRead marks one of the user's notifications as read
func (s *NotificationService) MarkRead(id, userID string) (*models.Notification, error) {
	var notification models.Notification
	if err := s.db.First(&notification, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, notFound("notification", id)
		}
		return nil, err
	}
	if notification.Read {
		return &notification, nil
	}
	if err := s.db.Model(&notification).Update("read", true).Error; err != nil {
		return nil, err
	}
	notification.Read = true
	return &notification, nil
}

// MarkAllRead marks all of a user's notifications as read
func (s *NotificationService) MarkAllRead(userID string) error {
	return s.db.Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Update("read", true).Error
}
