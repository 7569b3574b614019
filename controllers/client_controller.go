package controllers

import (
	"net/http"

	"github.com/atelier-studio/atelier-api/models"
	"github.com/atelier-studio/atelier-api/services"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ClientController manages the designer's client records
type ClientController struct {
	db      *gorm.DB
	finance *services.FinanceService
	orders  *services.OrderService
}

// NewClientController creates a client controller
func NewClientController(db *gorm.DB, finance *services.FinanceService, orders *services.OrderService) *ClientController {
	return &ClientController{db: db, finance: finance, orders: orders}
}

// CreateClientRequest represents the request body for creating a client
type CreateClientRequest struct {
	Name     string  `json:"name" binding:"required"`
	Phone    string  `json:"phone" binding:"required"`
	Whatsapp *string `json:"whatsapp"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Address  *string `json:"address"`
}

// UpdateClientRequest represents the request body for updating a client
type UpdateClientRequest struct {
	Name     *string `json:"name"`
	Phone    *string `json:"phone"`
	Whatsapp *string `json:"whatsapp"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Address  *string `json:"address"`
}

// List handles GET /api/v1/admin/clients
func (ctrl *ClientController) List(c *gin.Context) {
	var clients []models.Client
	if err := ctrl.db.Order("created_at DESC").Find(&clients).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load clients",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    clients,
	})
}

// Get handles GET /api/v1/admin/clients/:id - a client with measurements,
// orders, billing entries, and the derived financial aggregates.
func (ctrl *ClientController) Get(c *gin.Context) {
	id := c.Param("id")

	var client models.Client
	err := ctrl.db.
		Preload("Measurements", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		Preload("BillingEntries").
		First(&client, "id = ?", id).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "Client not found",
			},
		})
		return
	}

	orders, err := ctrl.orders.ListForClient(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	client.Orders = orders

	totals, err := ctrl.finance.Totals(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"client":              client,
			"total_spent":         totals.TotalSpent,
			"outstanding_balance": totals.OutstandingBalance,
		},
	})
}

// Create handles POST /api/v1/admin/clients
func (ctrl *ClientController) Create(c *gin.Context) {
	var req CreateClientRequest
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

	client := models.Client{
		Name:     req.Name,
		Phone:    req.Phone,
		Whatsapp: req.Whatsapp,
		Email:    req.Email,
		Address:  req.Address,
	}
	if err := ctrl.db.Create(&client).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create client",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    client,
	})
}

// Update handles PUT /api/v1/admin/clients/:id
func (ctrl *ClientController) Update(c *gin.Context) {
	var client models.Client
	if err := ctrl.db.First(&client, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "Client not found",
			},
		})
		return
	}

	var req UpdateClientRequest
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

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Phone != nil {
		if *req.Phone == "" {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "VALIDATION_ERROR",
					"message": "Phone must not be empty",
				},
			})
			return
		}
		updates["phone"] = *req.Phone
	}
	if req.Whatsapp != nil {
		updates["whatsapp"] = *req.Whatsapp
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.Address != nil {
		updates["address"] = *req.Address
	}

	if len(updates) > 0 {
		if err := ctrl.db.Model(&client).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DATABASE_ERROR",
					"message": "Failed to update client",
				},
			})
			return
		}
	}

	if err := ctrl.db.First(&client, "id = ?", client.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load updated client",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    client,
	})
}

// Delete handles DELETE /api/v1/admin/clients/:id - removes a client and
// their measurement records. Clients with orders cannot be deleted.
func (ctrl *ClientController) Delete(c *gin.Context) {
	id := c.Param("id")

	var client models.Client
	if err := ctrl.db.First(&client, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "Client not found",
			},
		})
		return
	}

	var orderCount int64
	ctrl.db.Model(&models.Order{}).Where("client_id = ?", id).Count(&orderCount)
	if orderCount > 0 {
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "CONFLICT",
				"message": "Client has orders and cannot be deleted",
			},
		})
		return
	}

	err := ctrl.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("client_id = ?", id).Delete(&models.Measurement{}).Error; err != nil {
			return err
		}
		return tx.Delete(&client).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to delete client",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"deleted": true},
	})
}
