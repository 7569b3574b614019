package controllers

import (
	"net/http"

	"github.com/atelier-studio/atelier-api/services"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// BillingController exposes the order billing ledger to the designer
type BillingController struct {
	billing *services.BillingService
}

// NewBillingController creates a billing controller
func NewBillingController(billing *services.BillingService) *BillingController {
	return &BillingController{billing: billing}
}

// AddEntryRequest represents the request body for appending a billing entry.
// Amount is a decimal string (e.g. "250.00").
type AddEntryRequest struct {
	Description string          `json:"description" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Paid        bool            `json:"paid"`
}

// AddEntry handles POST /api/v1/admin/orders/:id/billing
func (ctrl *BillingController) AddEntry(c *gin.Context) {
	var req AddEntryRequest
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

	entry, err := ctrl.billing.AddEntry(c.Param("id"), req.Description, req.Amount, req.Paid)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    entry,
	})
}

// ListForOrder handles GET /api/v1/admin/orders/:id/billing
func (ctrl *BillingController) ListForOrder(c *gin.Context) {
	entries, err := ctrl.billing.ListForOrder(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    entries,
	})
}

// MarkPaid handles PATCH /api/v1/admin/billing/:id/paid
func (ctrl *BillingController) MarkPaid(c *gin.Context) {
	entry, err := ctrl.billing.MarkPaid(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    entry,
	})
}

// MarkUnpaid handles PATCH /api/v1/admin/billing/:id/unpaid
func (ctrl *BillingController) MarkUnpaid(c *gin.Context) {
	entry, err := ctrl.billing.MarkUnpaid(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    entry,
	})
}
