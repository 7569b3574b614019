package controllers

import (
	"net/http"

	"github.com/atelier-studio/atelier-api/models"
	"github.com/atelier-studio/atelier-api/services"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// MeasurementController records and lists client fitting measurements
type MeasurementController struct {
	measurements *services.MeasurementService
}

// NewMeasurementController creates a measurement controller
func NewMeasurementController(measurements *services.MeasurementService) *MeasurementController {
	return &MeasurementController{measurements: measurements}
}

// CreateMeasurementRequest represents the request body for recording a
// measurement snapshot. Values are decimal strings (e.g. "96.50").
type CreateMeasurementRequest struct {
	Label              string            `json:"label" binding:"required"`
	Chest              *decimal.Decimal  `json:"chest"`
	Waist              *decimal.Decimal  `json:"waist"`
	Hips               *decimal.Decimal  `json:"hips"`
	Shoulder           *decimal.Decimal  `json:"shoulder"`
	Sleeve             *decimal.Decimal  `json:"sleeve"`
	Length             *decimal.Decimal  `json:"length"`
	Inseam             *decimal.Decimal  `json:"inseam"`
	Neck               *decimal.Decimal  `json:"neck"`
	CustomMeasurements map[string]string `json:"custom_measurements"`
	Notes              *string           `json:"notes"`
}

// Create handles POST /api/v1/admin/clients/:id/measurements
func (ctrl *MeasurementController) Create(c *gin.Context) {
	var req CreateMeasurementRequest
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

	measurement := models.Measurement{
		ClientID:           c.Param("id"),
		Label:              req.Label,
		Chest:              req.Chest,
		Waist:              req.Waist,
		Hips:               req.Hips,
		Shoulder:           req.Shoulder,
		Sleeve:             req.Sleeve,
		Length:             req.Length,
		Inseam:             req.Inseam,
		Neck:               req.Neck,
		CustomMeasurements: req.CustomMeasurements,
		Notes:              req.Notes,
	}

	created, err := ctrl.measurements.Create(&measurement)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    created,
	})
}

// ListForClient handles GET /api/v1/admin/clients/:id/measurements
func (ctrl *MeasurementController) ListForClient(c *gin.Context) {
	measurements, err := ctrl.measurements.ListForClient(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    measurements,
	})
}
