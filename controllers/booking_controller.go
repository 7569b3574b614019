package controllers

import (
	"net/http"
	"time"

	"github.com/atelier-studio/atelier-api/models"
	"github.com/atelier-studio/atelier-api/services"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// BookingController handles the public booking form
type BookingController struct {
	bookings *services.BookingService
}

// NewBookingController creates a booking controller
func NewBookingController(bookings *services.BookingService) *BookingController {
	return &BookingController{bookings: bookings}
}

// BookingMeasurements are the optional measurement values a client can supply
// on the booking form. Values are decimal strings (e.g. "96.50").
type BookingMeasurements struct {
	Chest    *decimal.Decimal `json:"chest"`
	Waist    *decimal.Decimal `json:"waist"`
	Hips     *decimal.Decimal `json:"hips"`
	Shoulder *decimal.Decimal `json:"shoulder"`
	Sleeve   *decimal.Decimal `json:"sleeve"`
	Length   *decimal.Decimal `json:"length"`
	Notes    *string          `json:"notes"`
}

// CreateBookingRequest represents the request body for booking a design
type CreateBookingRequest struct {
	DesignID      string               `json:"design_id" binding:"required"`
	Name          string               `json:"name" binding:"required,min=2"`
	Phone         string               `json:"phone" binding:"required,min=10"`
	Email         *string              `json:"email" binding:"omitempty,email"`
	Whatsapp      *string              `json:"whatsapp"`
	PreferredDate *string              `json:"preferred_date"` // RFC 3339
	Notes         *string              `json:"notes"`
	Measurements  *BookingMeasurements `json:"measurements"`
}

// Create handles POST /api/v1/bookings - the public entry point that turns a
// catalog browse into an order request.
func (ctrl *BookingController) Create(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	var preferredDate *time.Time
	if req.PreferredDate != nil && *req.PreferredDate != "" {
		parsed, err := time.Parse(time.RFC3339, *req.PreferredDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "VALIDATION_ERROR",
					"message": "preferred_date must be an RFC 3339 timestamp",
				},
			})
			return
		}
		preferredDate = &parsed
	}

	input := services.BookingInput{
		DesignID:      req.DesignID,
		Name:          req.Name,
		Phone:         req.Phone,
		Email:         req.Email,
		Whatsapp:      req.Whatsapp,
		PreferredDate: preferredDate,
		Notes:         req.Notes,
	}

	if m := req.Measurements; m != nil {
		input.Measurement = &models.Measurement{
			Chest:    m.Chest,
			Waist:    m.Waist,
			Hips:     m.Hips,
			Shoulder: m.Shoulder,
			Sleeve:   m.Sleeve,
			Length:   m.Length,
			Notes:    m.Notes,
		}
	}

	order, err := ctrl.bookings.Book(input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    order,
	})
}
