package services

import (
	"testing"

	"github.com/atelier-studio/atelier-api/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func newBookingService(db *gorm.DB) *BookingService {
	return NewBookingService(db, newOrderService(db, false), NewMeasurementService(db))
}

func TestBookCreatesClientAndOrder(t *testing.T) {
	db := setupTestDB(t)
	designer := seedDesigner(t, db)
	design := seedDesign(t, db, designer.ID, "Elegant Evening Gown", "2500.00")
	bookings := newBookingService(db)

	email := "sarah@example.com"
	order, err := bookings.Book(BookingInput{
		DesignID: design.ID,
		Name:     "Sarah Johnson",
		Phone:    "+15551234567",
		Email:    &email,
	})
	assert.NoError(t, err)
	assert.Equal(t, models.OrderStatusRequested, order.Status)
	assert.Equal(t, designer.ID, order.DesignerID)

	var client models.Client
	assert.NoError(t, db.First(&client, "id = ?", order.ClientID).Error)
	assert.Equal(t, "Sarah Johnson", client.Name)
	assert.Equal(t, "+15551234567", client.Phone)

	// Booking opens the order with its design fee already on the ledger
	var entries []models.BillingEntry
	assert.NoError(t, db.Where("order_id = ?", order.ID).Find(&entries).Error)
	assert.Len(t, entries, 1)
	assert.Equal(t, "Design fee: Elegant Evening Gown", entries[0].Description)
	assert.True(t, entries[0].Amount.Equal(decimal.RequireFromString("2500.00")))
	assert.False(t, entries[0].Paid)
}

func TestBookReusesClientByPhone(t *testing.T) {
	db := setupTestDB(t)
	designer := seedDesigner(t, db)
	design := seedDesign(t, db, designer.ID, "Elegant Evening Gown", "2500.00")
	existing := seedClient(t, db, "Sarah Johnson", "+15551234567")
	bookings := newBookingService(db)

	order, err := bookings.Book(BookingInput{
		DesignID: design.ID,
		Name:     "S. Johnson",
		Phone:    "+15551234567",
	})
	assert.NoError(t, err)
	assert.Equal(t, existing.ID, order.ClientID)

	var count int64
	db.Model(&models.Client{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestBookWithMeasurement(t *testing.T) {
	db := setupTestDB(t)
	designer := seedDesigner(t, db)
	design := seedDesign(t, db, designer.ID, "Elegant Evening Gown", "2500.00")
	bookings := newBookingService(db)

	chest := decimal.RequireFromString("92.00")
	waist := decimal.RequireFromString("78.50")
	order, err := bookings.Book(BookingInput{
		DesignID:    design.ID,
		Name:        "Sarah Johnson",
		Phone:       "+15551234567",
		Measurement: &models.Measurement{Chest: &chest, Waist: &waist},
	})
	assert.NoError(t, err)
	assert.NotNil(t, order.MeasurementID)

	var measurement models.Measurement
	assert.NoError(t, db.First(&measurement, "id = ?", *order.MeasurementID).Error)
	assert.Equal(t, "Initial Measurements", measurement.Label)
	assert.Equal(t, order.ClientID, measurement.ClientID)
	assert.True(t, measurement.Waist.Equal(waist))
}

func TestBookValidation(t *testing.T) {
	db := setupTestDB(t)
	designer := seedDesigner(t, db)
	design := seedDesign(t, db, designer.ID, "Elegant Evening Gown", "2500.00")
	bookings := newBookingService(db)

	tests := []struct {
		name  string
		input BookingInput
	}{
		{"missing name", BookingInput{DesignID: design.ID, Phone: "+15551234567"}},
		{"missing phone", BookingInput{DesignID: design.ID, Name: "Sarah Johnson"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := bookings.Book(tt.input)
			assert.Error(t, err)
			assert.IsType(t, &ValidationError{}, err)
		})
	}

	_, err := bookings.Book(BookingInput{DesignID: "missing-design", Name: "Sarah Johnson", Phone: "+15551234567"})
	assert.Error(t, err)
	assert.IsType(t, &ReferentialError{}, err)
}

func TestBookInvalidMeasurementRejected(t *testing.T) {
	db := setupTestDB(t)
	designer := seedDesigner(t, db)
	design := seedDesign(t, db, designer.ID, "Elegant Evening Gown", "2500.00")
	bookings := newBookingService(db)

	bad := decimal.RequireFromString("-5.00")
	_, err := bookings.Book(BookingInput{
		DesignID:    design.ID,
		Name:        "Sarah Johnson",
		Phone:       "+15551234567",
		Measurement: &models.Measurement{Waist: &bad},
	})
	assert.Error(t, err)
	assert.IsType(t, &ValidationError{}, err)

	var orders int64
	db.Model(&models.Order{}).Count(&orders)
	assert.Equal(t, int64(0), orders)
}
