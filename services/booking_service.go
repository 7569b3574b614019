package services

import (
	"time"

	"github.com/atelier-studio/atelier-api/models"
	"gorm.io/gorm"
)

// BookingService accepts public booking requests: it reuses or creates the
// client record keyed by phone, optionally records an initial measurement
// snapshot, and opens the order with its base design fee.
type BookingService struct {
	db           *gorm.DB
	orders       *OrderService
	measurements *MeasurementService
}

// NewBookingService creates a booking service
func NewBookingService(db *gorm.DB, orders *OrderService, measurements *MeasurementService) *BookingService {
	return &BookingService{db: db, orders: orders, measurements: measurements}
}

// BookingInput is what the public booking form submits
type BookingInput struct {
	DesignID      string
	Name          string
	Phone         string
	Email         *string
	Whatsapp      *string
	PreferredDate *time.Time
	Notes         *string
	// Measurement, when non-nil, is stored as a new record labeled
	// "Initial Measurements" and attached to the order.
	Measurement *models.Measurement
}

// Book processes a booking request and returns the created order
func (s *BookingService) Book(input BookingInput) (*models.Order, error) {
	if input.Name == "" {
		return nil, &ValidationError{Field: "name", Message: "name is required"}
	}
	if input.Phone == "" {
		return nil, &ValidationError{Field: "phone", Message: "phone is required"}
	}

	var design models.Design
	if err := s.db.First(&design, "id = ?", input.DesignID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, notFound("design", input.DesignID)
		}
		return nil, err
	}

	// Reuse the client record when the phone number is already known
	var client models.Client
	err := s.db.First(&client, "phone = ?", input.Phone).Error
	switch err {
	case nil:
		// existing client
	case gorm.ErrRecordNotFound:
		client = models.Client{
			Name:     input.Name,
			Phone:    input.Phone,
			Email:    input.Email,
			Whatsapp: input.Whatsapp,
		}
		if err := s.db.Create(&client).Error; err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	var measurementID *string
	if input.Measurement != nil {
		measurement := *input.Measurement
		measurement.ClientID = client.ID
		if measurement.Label == "" {
			measurement.Label = "Initial Measurements"
		}
		created, err := s.measurements.Create(&measurement)
		if err != nil {
			return nil, err
		}
		measurementID = &created.ID
	}

	return s.orders.Create(CreateOrderInput{
		ClientID:      client.ID,
		DesignID:      design.ID,
		DesignerID:    design.DesignerID,
		PreferredDate: input.PreferredDate,
		Notes:         input.Notes,
		MeasurementID: measurementID,
		WithDesignFee: true,
	})
}
