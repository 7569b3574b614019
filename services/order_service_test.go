package services

import (
	"testing"

	"github.com/atelier-studio/atelier-api/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func newOrderService(db *gorm.DB, allowSkip bool) *OrderService {
	return NewOrderService(db, NewNotificationService(db), allowSkip)
}

func TestCreateOrder(t *testing.T) {
	db := setupTestDB(t)
	designer := seedDesigner(t, db)
	client := seedClient(t, db, "Sarah Johnson", "+15551234567")
	design := seedDesign(t, db, designer.ID, "Elegant Evening Gown", "2500.00")
	svc := newOrderService(db, false)

	order, err := svc.Create(CreateOrderInput{
		ClientID:      client.ID,
		DesignID:      design.ID,
		DesignerID:    designer.ID,
		WithDesignFee: true,
	})
	assert.NoError(t, err)
	assert.Equal(t, models.OrderStatusRequested, order.Status)
	assert.Equal(t, client.ID, order.ClientID)

	// Base design fee written atomically with the order
	assert.Len(t, order.BillingEntries, 1)
	entry := order.BillingEntries[0]
	assert.Equal(t, "Design fee: Elegant Evening Gown", entry.Description)
	assert.True(t, entry.Amount.Equal(decimal.RequireFromString("2500.00")))
	assert.False(t, entry.Paid)
	assert.Equal(t, client.ID, entry.ClientID)

	// new_order notification addressed to the designer
	var notifications []models.Notification
	db.Find(&notifications)
	assert.Len(t, notifications, 1)
	assert.Equal(t, designer.ID, notifications[0].UserID)
	assert.Equal(t, models.NotificationTypeNewOrder, notifications[0].Type)
	assert.False(t, notifications[0].Read)
}

func TestCreateOrderWithoutDesignFee(t *testing.T) {
	db := setupTestDB(t)
	designer := seedDesigner(t, db)
	client := seedClient(t, db, "Amina Diallo", "+15550000001")
	design := seedDesign(t, db, designer.ID, "Minimalist Blazer", "650.00")
	svc := newOrderService(db, false)

	order, err := svc.Create(CreateOrderInput{
		ClientID:   client.ID,
		DesignID:   design.ID,
		DesignerID: designer.ID,
	})
	assert.NoError(t, err)
	assert.Empty(t, order.BillingEntries)
}

func TestCreateOrderMissingReferences(t *testing.T) {
	db := setupTestDB(t)
	designer := seedDesigner(t, db)
	client := seedClient(t, db, "Sarah Johnson", "+15551234567")
	design := seedDesign(t, db, designer.ID, "Silk Cocktail Dress", "850.00")
	svc := newOrderService(db, false)

	tests := []struct {
		name  string
		input CreateOrderInput
	}{
		{"unknown client", CreateOrderInput{ClientID: "missing", DesignID: design.ID, DesignerID: designer.ID}},
		{"unknown design", CreateOrderInput{ClientID: client.ID, DesignID: "missing", DesignerID: designer.ID}},
		{"unknown designer", CreateOrderInput{ClientID: client.ID, DesignID: design.ID, DesignerID: "missing"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(tt.input)
			assert.Error(t, err)
			refErr, ok := err.(*ReferentialError)
			assert.True(t, ok, "expected ReferentialError, got %T", err)
			assert.True(t, refErr.NotFound)
		})
	}

	// Nothing committed by the failed attempts
	var count int64
	db.Model(&models.Order{}).Count(&count)
	assert.Zero(t, count)
}

func TestCreateOrderMeasurementOwnership(t *testing.T) {
	db := setupTestDB(t)
	designer := seedDesigner(t, db)
	client := seedClient(t, db, "Sarah Johnson", "+15551234567")
	other := seedClient(t, db, "Priya Patel", "+15559876543")
	design := seedDesign(t, db, designer.ID, "Vintage-Inspired Gown", "1950.00")
	svc := newOrderService(db, false)

	own := seedMeasurement(t, db, client.ID, "Initial Measurements")
	foreign := seedMeasurement(t, db, other.ID, "Initial Measurements")

	order, err := svc.Create(CreateOrderInput{
		ClientID:      client.ID,
		DesignID:      design.ID,
		DesignerID:    designer.ID,
		MeasurementID: &own.ID,
	})
	assert.NoError(t, err)
	assert.Equal(t, own.ID, *order.MeasurementID)

	_, err = svc.Create(CreateOrderInput{
		ClientID:      client.ID,
		DesignID:      design.ID,
		DesignerID:    designer.ID,
		MeasurementID: &foreign.ID,
	})
	assert.Error(t, err)
	refErr, ok := err.(*ReferentialError)
	assert.True(t, ok, "expected ReferentialError, got %T", err)
	assert.False(t, refErr.NotFound)
}

func TestTransitionStatusSequential(t *testing.T) {
	db := setupTestDB(t)
	designer := seedDesigner(t, db)
	client := seedClient(t, db, "Sarah Johnson", "+15551234567")
	design := seedDesign(t, db, designer.ID, "Classic Tailored Suit", "1800.00")
	svc := newOrderService(db, false)

	order, err := svc.Create(CreateOrderInput{ClientID: client.ID, DesignID: design.ID, DesignerID: designer.ID})
	assert.NoError(t, err)

	// The full forward chain succeeds one step at a time
	for _, next := range models.OrderStatuses[1:] {
		order, err = svc.TransitionStatus(order.ID, next)
		assert.NoError(t, err, "transition to %s should succeed", next)
		assert.Equal(t, next, order.Status)
	}

	// Terminal state: no further transitions
	_, err = svc.TransitionStatus(order.ID, models.OrderStatusDelivered)
	assert.Error(t, err)
	_, ok := err.(*InvalidTransitionError)
	assert.True(t, ok, "expected InvalidTransitionError, got %T", err)
}

func TestTransitionStatusRejectsSkipsAndBackward(t *testing.T) {
	db := setupTestDB(t)
	designer := seedDesigner(t, db)
	client := seedClient(t, db, "Sarah Johnson", "+15551234567")
	design := seedDesign(t, db, designer.ID, "Bohemian Summer Dress", "450.00")
	svc := newOrderService(db, false)

	order, err := svc.Create(CreateOrderInput{ClientID: client.ID, DesignID: design.ID, DesignerID: designer.ID})
	assert.NoError(t, err)

	// Skip from requested straight to delivered
	_, err = svc.TransitionStatus(order.ID, models.OrderStatusDelivered)
	assert.Error(t, err)
	assert.IsType(t, &InvalidTransitionError{}, err)

	// Move forward legitimately, then try to go backward
	_, err = svc.TransitionStatus(order.ID, models.OrderStatusAccepted)
	assert.NoError(t, err)
	_, err = svc.TransitionStatus(order.ID, models.OrderStatusInProgress)
	assert.NoError(t, err)
	_, err = svc.TransitionStatus(order.ID, models.OrderStatusRequested)
	assert.Error(t, err)
	assert.IsType(t, &InvalidTransitionError{}, err)

	// Status unchanged by the rejected transitions
	reloaded, err := svc.Get(order.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.OrderStatusInProgress, reloaded.Status)
}

func TestTransitionStatusAllowSkipPolicy(t *testing.T) {
	db := setupTestDB(t)
	designer := seedDesigner(t, db)
	client := seedClient(t, db, "Sarah Johnson", "+15551234567")
	design := seedDesign(t, db, designer.ID, "Traditional Wedding Lehenga", "4500.00")
	svc := newOrderService(db, true)

	order, err := svc.Create(CreateOrderInput{ClientID: client.ID, DesignID: design.ID, DesignerID: designer.ID})
	assert.NoError(t, err)

	// Forward skip is allowed under this policy
	order, err = svc.TransitionStatus(order.ID, models.OrderStatusReadyForDelivery)
	assert.NoError(t, err)
	assert.Equal(t, models.OrderStatusReadyForDelivery, order.Status)

	// Backward is still rejected
	_, err = svc.TransitionStatus(order.ID, models.OrderStatusAccepted)
	assert.Error(t, err)
	assert.IsType(t, &InvalidTransitionError{}, err)
}

func TestTransitionStatusUnknownValue(t *testing.T) {
	db := setupTestDB(t)
	designer := seedDesigner(t, db)
	client := seedClient(t, db, "Sarah Johnson", "+15551234567")
	design := seedDesign(t, db, designer.ID, "Silk Scarf Collection", "175.00")
	svc := newOrderService(db, false)

	order, err := svc.Create(CreateOrderInput{ClientID: client.ID, DesignID: design.ID, DesignerID: designer.ID})
	assert.NoError(t, err)

	_, err = svc.TransitionStatus(order.ID, models.OrderStatus("cancelled"))
	assert.Error(t, err)
	assert.IsType(t, &ValidationError{}, err)

	_, err = svc.TransitionStatus("missing-order", models.OrderStatusAccepted)
	assert.Error(t, err)
	assert.IsType(t, &ReferentialError{}, err)
}

func TestTransitionStatusConcurrentWriteConflicts(t *testing.T) {
	db := setupTestDB(t)
	designer := seedDesigner(t, db)
	client := seedClient(t, db, "Sarah Johnson", "+15551234567")
	design := seedDesign(t, db, designer.ID, "Elegant Evening Gown", "2500.00")
	svc := newOrderService(db, false)

	order, err := svc.Create(CreateOrderInput{ClientID: client.ID, DesignID: design.ID, DesignerID: designer.ID})
	assert.NoError(t, err)

	// Simulate a competing transition landing between the policy check and the
	// compare-and-swap update: the hook flips the row out-of-band right before
	// the first update statement runs, so the swap finds zero matching rows.
	fired := false
	err = db.Callback().Update().Before("gorm:update").Register("competing_transition", func(tx *gorm.DB) {
		if fired {
			return
		}
		fired = true
		tx.Session(&gorm.Session{NewDB: true, SkipHooks: true}).
			Model(&models.Order{}).
			Where("id = ?", order.ID).
			Update("status", models.OrderStatusAccepted)
	})
	assert.NoError(t, err)
	defer db.Callback().Update().Remove("competing_transition") //nolint:errcheck

	_, err = svc.TransitionStatus(order.ID, models.OrderStatusAccepted)
	assert.Error(t, err)
	assert.IsType(t, &ConflictError{}, err)

	// The competing write is what stuck; the loser changed nothing
	reloaded, err := svc.Get(order.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.OrderStatusAccepted, reloaded.Status)
}

func TestAttachMeasurement(t *testing.T) {
	db := setupTestDB(t)
	designer := seedDesigner(t, db)
	client := seedClient(t, db, "Sarah Johnson", "+15551234567")
	other := seedClient(t, db, "Priya Patel", "+15559876543")
	design := seedDesign(t, db, designer.ID, "Elegant Evening Gown", "2500.00")
	svc := newOrderService(db, false)

	order, err := svc.Create(CreateOrderInput{ClientID: client.ID, DesignID: design.ID, DesignerID: designer.ID})
	assert.NoError(t, err)
	assert.Nil(t, order.MeasurementID)

	measurement := seedMeasurement(t, db, client.ID, "Revised Measurements")
	order, err = svc.AttachMeasurement(order.ID, measurement.ID)
	assert.NoError(t, err)
	assert.Equal(t, measurement.ID, *order.MeasurementID)

	foreign := seedMeasurement(t, db, other.ID, "Initial Measurements")
	_, err = svc.AttachMeasurement(order.ID, foreign.ID)
	assert.Error(t, err)
	refErr, ok := err.(*ReferentialError)
	assert.True(t, ok, "expected ReferentialError, got %T", err)
	assert.False(t, refErr.NotFound)
}

func TestDeleteOrderCascades(t *testing.T) {
	db := setupTestDB(t)
	designer := seedDesigner(t, db)
	client := seedClient(t, db, "Sarah Johnson", "+15551234567")
	design := seedDesign(t, db, designer.ID, "Elegant Evening Gown", "2500.00")
	svc := newOrderService(db, false)
	billing := NewBillingService(db, NewNotificationService(db))
	finance := NewFinanceService(db)

	order, err := svc.Create(CreateOrderInput{ClientID: client.ID, DesignID: design.ID, DesignerID: designer.ID, WithDesignFee: true})
	assert.NoError(t, err)

	entry, err := billing.AddEntry(order.ID, "Beadwork add-on", decimal.RequireFromString("250.00"), false)
	assert.NoError(t, err)
	_, err = billing.MarkPaid(entry.ID)
	assert.NoError(t, err)

	fileName := "sketch.png"
	_, err = svc.AddFile(order.ID, "orders/"+order.ID+"/sketch.png", "image", &fileName)
	assert.NoError(t, err)

	totals, err := finance.Totals(client.ID)
	assert.NoError(t, err)
	assert.True(t, totals.TotalSpent.Equal(decimal.RequireFromString("250.00")))
	assert.True(t, totals.OutstandingBalance.Equal(decimal.RequireFromString("2500.00")))

	assert.NoError(t, svc.Delete(order.ID))

	var entryCount, fileCount int64
	db.Model(&models.BillingEntry{}).Where("order_id = ?", order.ID).Count(&entryCount)
	db.Model(&models.OrderFile{}).Where("order_id = ?", order.ID).Count(&fileCount)
	assert.Zero(t, entryCount)
	assert.Zero(t, fileCount)

	// Aggregates no longer count the removed entries
	totals, err = finance.Totals(client.ID)
	assert.NoError(t, err)
	assert.True(t, totals.TotalSpent.IsZero())
	assert.True(t, totals.OutstandingBalance.IsZero())
}
