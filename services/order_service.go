package services

import (
	"fmt"
	"log"
	"time"

	"github.com/atelier-studio/atelier-api/models"
	"gorm.io/gorm"
)

// OrderService owns the order lifecycle: creation, status transitions, and
// measurement attachment. Transitions are forward-only; whether intermediate
// states may be skipped is a policy decision made at construction time.
type OrderService struct {
	db        *gorm.DB
	notifier  *NotificationService
	allowSkip bool
}

// NewOrderService creates an order service. allowSkip controls the transition
// policy: false requires strictly sequential transitions, true allows any
// forward move. Backward transitions are rejected in both modes.
func NewOrderService(db *gorm.DB, notifier *NotificationService, allowSkip bool) *OrderService {
	return &OrderService{db: db, notifier: notifier, allowSkip: allowSkip}
}

// CreateOrderInput carries everything needed to open a new order
type CreateOrderInput struct {
	ClientID      string
	DesignID      string
	DesignerID    string
	PreferredDate *time.Time
	Notes         *string
	MeasurementID *string
	// WithDesignFee appends the design's price as an unpaid "Design fee" billing
	// entry in the same transaction as the order itself.
	WithDesignFee bool
}

// Create opens a new order in the requested state. The client, design, and
// designer must all exist; a supplied measurement must belong to the client.
// When WithDesignFee is set, the order and its base fee entry are written
// atomically. A new_order notification is emitted after commit.
func (s *OrderService) Create(input CreateOrderInput) (*models.Order, error) {
	var client models.Client
	if err := s.db.First(&client, "id = ?", input.ClientID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, notFound("client", input.ClientID)
		}
		return nil, err
	}

	var design models.Design
	if err := s.db.First(&design, "id = ?", input.DesignID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, notFound("design", input.DesignID)
		}
		return nil, err
	}

	var designer models.User
	if err := s.db.First(&designer, "id = ?", input.DesignerID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, notFound("designer", input.DesignerID)
		}
		return nil, err
	}

	if input.MeasurementID != nil {
		var measurement models.Measurement
		if err := s.db.First(&measurement, "id = ?", *input.MeasurementID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, notFound("measurement", *input.MeasurementID)
			}
			return nil, err
		}
		if measurement.ClientID != input.ClientID {
			return nil, &ReferentialError{
				Entity:  "measurement",
				ID:      *input.MeasurementID,
				Message: "measurement belongs to a different client",
			}
		}
	}

	order := models.Order{
		ClientID:      input.ClientID,
		DesignID:      input.DesignID,
		DesignerID:    input.DesignerID,
		Status:        models.OrderStatusRequested,
		PreferredDate: input.PreferredDate,
		Notes:         input.Notes,
		MeasurementID: input.MeasurementID,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		if input.WithDesignFee {
			entry := models.BillingEntry{
				OrderID:     order.ID,
				ClientID:    order.ClientID,
				Description: fmt.Sprintf("Design fee: %s", design.Title),
				Amount:      design.Price,
				Paid:        false,
			}
			if err := tx.Create(&entry).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.notifier.NotifyNewOrder(&order, client.Name, design.Title); err != nil {
		// The order is committed; a lost notification is not worth failing over
		log.Printf("Failed to emit new_order notification for order %s: %v", order.ID, err)
	}

	return s.Get(order.ID)
}

// TransitionStatus moves an order to target. The policy check runs against the
// freshly loaded status, then the update is a compare-and-swap on (id, status)
// so two concurrent transitions cannot both apply; the loser gets a
// ConflictError and must reload before retrying.
func (s *OrderService) TransitionStatus(orderID string, target models.OrderStatus) (*models.Order, error) {
	if !target.IsValid() {
		return nil, &ValidationError{Field: "status", Message: fmt.Sprintf("unknown status %q", target)}
	}

	var order models.Order
	if err := s.db.First(&order, "id = ?", orderID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, notFound("order", orderID)
		}
		return nil, err
	}

	if !order.Status.CanTransitionTo(target, s.allowSkip) {
		return nil, &InvalidTransitionError{From: order.Status, To: target}
	}

	result := s.db.Model(&models.Order{}).
		Where("id = ? AND status = ?", orderID, order.Status).
		Update("status", target)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, &ConflictError{Message: fmt.Sprintf("order %s was modified concurrently, reload and retry", orderID)}
	}

	log.Printf("Order %s transitioned %s -> %s", orderID, order.Status, target)
	return s.Get(orderID)
}

// AttachMeasurement sets the order's measurement reference. The measurement
// must belong to the order's client.
func (s *OrderService) AttachMeasurement(orderID, measurementID string) (*models.Order, error) {
	var order models.Order
	if err := s.db.First(&order, "id = ?", orderID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, notFound("order", orderID)
		}
		return nil, err
	}

	var measurement models.Measurement
	if err := s.db.First(&measurement, "id = ?", measurementID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, notFound("measurement", measurementID)
		}
		return nil, err
	}

	if measurement.ClientID != order.ClientID {
		return nil, &ReferentialError{
			Entity:  "measurement",
			ID:      measurementID,
			Message: "measurement belongs to a different client",
		}
	}

	if err := s.db.Model(&order).Update("measurement_id", measurementID).Error; err != nil {
		return nil, err
	}
	return s.Get(orderID)
}

// AddFile attaches a reference file record to an order
func (s *OrderService) AddFile(orderID, fileURL, fileType string, fileName *string) (*models.OrderFile, error) {
	var order models.Order
	if err := s.db.First(&order, "id = ?", orderID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, notFound("order", orderID)
		}
		return nil, err
	}

	file := models.OrderFile{
		OrderID:  order.ID,
		FileURL:  fileURL,
		FileType: fileType,
		FileName: fileName,
	}
	if err := s.db.Create(&file).Error; err != nil {
		return nil, err
	}
	return &file, nil
}

// Get loads an order with its client, design (and images), measurement,
// billing entries, and files.
func (s *OrderService) Get(orderID string) (*models.Order, error) {
	var order models.Order
	err := s.db.
		Preload("Client").
		Preload("Design").
		Preload("Design.Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Preload("Measurement").
		Preload("BillingEntries").
		Preload("Files").
		First(&order, "id = ?", orderID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, notFound("order", orderID)
		}
		return nil, err
	}
	return &order, nil
}

// List returns all orders, newest first, with client and design loaded
func (s *OrderService) List() ([]models.Order, error) {
	var orders []models.Order
	err := s.db.
		Preload("Client").
		Preload("Design").
		Preload("BillingEntries").
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

// ListForClient returns a client's orders, newest first
func (s *OrderService) ListForClient(clientID string) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.
		Preload("Design").
		Preload("BillingEntries").
		Where("client_id = ?", clientID).
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

// Delete removes an order together with its billing entries and files.
// The cascade runs explicitly inside one transaction so it behaves the same
// on every database backend.
func (s *OrderService) Delete(orderID string) error {
	var order models.Order
	if err := s.db.First(&order, "id = ?", orderID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return notFound("order", orderID)
		}
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", orderID).Delete(&models.BillingEntry{}).Error; err != nil {
			return err
		}
		if err := tx.Where("order_id = ?", orderID).Delete(&models.OrderFile{}).Error; err != nil {
			return err
		}
		return tx.Delete(&order).Error
	})
}
