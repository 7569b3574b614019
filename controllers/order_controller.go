package controllers

import (
	"net/http"

	"github.com/atelier-studio/atelier-api/models"
	"github.com/atelier-studio/atelier-api/services"
	"github.com/atelier-studio/atelier-api/utils"
	"github.com/gin-gonic/gin"
)

// OrderController is the designer's view of the order lifecycle
type OrderController struct {
	orders *services.OrderService
}

// NewOrderController creates an order controller
func NewOrderController(orders *services.OrderService) *OrderController {
	return &OrderController{orders: orders}
}

// UpdateStatusRequest represents the request body for a status transition
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// AttachMeasurementRequest represents the request body for attaching a
// measurement record to an order
type AttachMeasurementRequest struct {
	MeasurementID string `json:"measurement_id" binding:"required"`
}

// List handles GET /api/v1/admin/orders
func (ctrl *OrderController) List(c *gin.Context) {
	orders, err := ctrl.orders.List()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    orders,
	})
}

// Get handles GET /api/v1/admin/orders/:id
func (ctrl *OrderController) Get(c *gin.Context) {
	order, err := ctrl.orders.Get(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}

// UpdateStatus handles PATCH /api/v1/admin/orders/:id/status
func (ctrl *OrderController) UpdateStatus(c *gin.Context) {
	var req UpdateStatusRequest
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

	order, err := ctrl.orders.TransitionStatus(c.Param("id"), models.OrderStatus(req.Status))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}

// AttachMeasurement handles PATCH /api/v1/admin/orders/:id/measurement
func (ctrl *OrderController) AttachMeasurement(c *gin.Context) {
	var req AttachMeasurementRequest
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

	order, err := ctrl.orders.AttachMeasurement(c.Param("id"), req.MeasurementID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}

// UploadFile handles POST /api/v1/admin/orders/:id/files - stores a reference
// file (sketch, fabric photo, fitting document) for an order.
func (ctrl *OrderController) UploadFile(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "MISSING_FILE",
				"message": "A file is required",
			},
		})
		return
	}

	if err := utils.ValidateOrderFile(fileHeader); err != nil {
		uploadErr := err.(*utils.FileUploadError)
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    uploadErr.Code,
				"message": uploadErr.Message,
			},
		})
		return
	}

	s3Service := services.GetS3Service()
	if s3Service == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "STORAGE_UNAVAILABLE",
				"message": "File storage is not configured",
			},
		})
		return
	}

	orderID := c.Param("id")
	s3Key, err := s3Service.UploadFile(fileHeader, "orders/"+orderID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UPLOAD_FAILED",
				"message": "Failed to store file",
			},
		})
		return
	}

	fileName := fileHeader.Filename
	file, err := ctrl.orders.AddFile(orderID, s3Key, utils.FileTypeFor(fileName), &fileName)
	if err != nil {
		// The order does not exist; remove the stray object
		if delErr := s3Service.DeleteFile(s3Key); delErr != nil {
			c.Error(delErr) //nolint:errcheck
		}
		respondServiceError(c, err)
		return
	}

	if url, err := s3Service.GetPresignedURL(s3Key); err == nil {
		c.JSON(http.StatusCreated, gin.H{
			"success": true,
			"data": gin.H{
				"file": file,
				"url":  url,
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    gin.H{"file": file},
	})
}

// Delete handles DELETE /api/v1/admin/orders/:id - removes an order together
// with its billing entries and files. Not part of the normal lifecycle; kept
// for correcting mistaken bookings.
func (ctrl *OrderController) Delete(c *gin.Context) {
	if err := ctrl.orders.Delete(c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"deleted": true},
	})
}
