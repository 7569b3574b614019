package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/atelier-studio/atelier-api/middleware"
	"github.com/atelier-studio/atelier-api/models"
	"github.com/atelier-studio/atelier-api/services"
	"github.com/atelier-studio/atelier-api/utils"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DesignController handles the public catalog and the designer's design management
type DesignController struct {
	db *gorm.DB
}

// NewDesignController creates a design controller
func NewDesignController(db *gorm.DB) *DesignController {
	return &DesignController{db: db}
}

// CreateDesignRequest represents the request body for creating a design
type CreateDesignRequest struct {
	Title       string          `json:"title" binding:"required"`
	Description *string         `json:"description"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	Category    string          `json:"category" binding:"required"`
	IsPublished bool            `json:"is_published"`
}

// UpdateDesignRequest represents the request body for updating a design
type UpdateDesignRequest struct {
	Title       *string          `json:"title"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Category    *string          `json:"category"`
	IsPublished *bool            `json:"is_published"`
}

// AddImageRequest represents the request body for attaching an image to a design
type AddImageRequest struct {
	ImageURL  string `json:"image_url" binding:"required"`
	SortOrder int    `json:"sort_order"`
}

// ListPublished handles GET /api/v1/designs - the public catalog.
// Supports ?category= filtering.
func (ctrl *DesignController) ListPublished(c *gin.Context) {
	query := ctrl.db.
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Where("is_published = ?", true)

	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	var designs []models.Design
	if err := query.Order("created_at DESC").Find(&designs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load designs",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    designs,
	})
}

// GetPublished handles GET /api/v1/designs/:id - a single published design
func (ctrl *DesignController) GetPublished(c *gin.Context) {
	var design models.Design
	err := ctrl.db.
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		First(&design, "id = ? AND is_published = ?", c.Param("id"), true).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "Design not found",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    design,
	})
}

// List handles GET /api/v1/admin/designs - all designs including drafts
func (ctrl *DesignController) List(c *gin.Context) {
	var designs []models.Design
	err := ctrl.db.
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Order("created_at DESC").
		Find(&designs).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load designs",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    designs,
	})
}

// Create handles POST /api/v1/admin/designs
func (ctrl *DesignController) Create(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UNAUTHORIZED",
				"message": "Could not extract user information",
			},
		})
		return
	}

	var req CreateDesignRequest
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

	if req.Price.Sign() <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Price must be positive",
			},
		})
		return
	}

	design := models.Design{
		DesignerID:  userID,
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		IsPublished: req.IsPublished,
	}
	if err := ctrl.db.Create(&design).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create design",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    design,
	})
}

// Update handles PUT /api/v1/admin/designs/:id
func (ctrl *DesignController) Update(c *gin.Context) {
	var design models.Design
	if err := ctrl.db.First(&design, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "Design not found",
			},
		})
		return
	}

	var req UpdateDesignRequest
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
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Price != nil {
		if req.Price.Sign() <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "VALIDATION_ERROR",
					"message": "Price must be positive",
				},
			})
			return
		}
		updates["price"] = *req.Price
	}
	if req.Category != nil {
		if *req.Category == "" {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "VALIDATION_ERROR",
					"message": "Category must not be empty",
				},
			})
			return
		}
		updates["category"] = *req.Category
	}
	if req.IsPublished != nil {
		updates["is_published"] = *req.IsPublished
	}

	if len(updates) > 0 {
		if err := ctrl.db.Model(&design).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DATABASE_ERROR",
					"message": "Failed to update design",
				},
			})
			return
		}
	}

	if err := ctrl.db.Preload("Images").First(&design, "id = ?", design.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load updated design",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    design,
	})
}

// Delete handles DELETE /api/v1/admin/designs/:id - removes a design and its
// images. Designs referenced by orders cannot be deleted.
func (ctrl *DesignController) Delete(c *gin.Context) {
	id := c.Param("id")

	var design models.Design
	if err := ctrl.db.First(&design, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "Design not found",
			},
		})
		return
	}

	var orderCount int64
	ctrl.db.Model(&models.Order{}).Where("design_id = ?", id).Count(&orderCount)
	if orderCount > 0 {
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "CONFLICT",
				"message": "Design has orders and cannot be deleted",
			},
		})
		return
	}

	err := ctrl.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("design_id = ?", id).Delete(&models.DesignImage{}).Error; err != nil {
			return err
		}
		return tx.Delete(&design).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to delete design",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"deleted": true},
	})
}

// AddImage handles POST /api/v1/admin/designs/:id/images
func (ctrl *DesignController) AddImage(c *gin.Context) {
	var design models.Design
	if err := ctrl.db.First(&design, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "Design not found",
			},
		})
		return
	}

	var req AddImageRequest
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

	image := models.DesignImage{
		DesignID:  design.ID,
		ImageURL:  req.ImageURL,
		SortOrder: req.SortOrder,
	}
	if err := ctrl.db.Create(&image).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to attach image",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    image,
	})
}

// UploadImage handles POST /api/v1/admin/designs/:id/images/upload - stores a
// carousel image for a design and attaches it. Accepts an optional sort_order
// form field.
func (ctrl *DesignController) UploadImage(c *gin.Context) {
	var design models.Design
	if err := ctrl.db.First(&design, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "Design not found",
			},
		})
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "MISSING_FILE",
				"message": "An image file is required",
			},
		})
		return
	}

	if err := utils.ValidateImageFile(fileHeader); err != nil {
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

	s3Key, err := s3Service.UploadFile(fileHeader, "designs/"+design.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UPLOAD_FAILED",
				"message": "Failed to store image",
			},
		})
		return
	}

	sortOrder, _ := strconv.Atoi(c.PostForm("sort_order"))

	image := models.DesignImage{
		DesignID:  design.ID,
		ImageURL:  s3Key,
		SortOrder: sortOrder,
	}
	if err := ctrl.db.Create(&image).Error; err != nil {
		// Nothing references the object; remove it again
		if delErr := s3Service.DeleteFile(s3Key); delErr != nil {
			c.Error(delErr) //nolint:errcheck
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to attach image",
			},
		})
		return
	}

	if url, err := s3Service.GetPresignedURL(s3Key); err == nil {
		c.JSON(http.StatusCreated, gin.H{
			"success": true,
			"data": gin.H{
				"image": image,
				"url":   url,
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    gin.H{"image": image},
	})
}

// ListCategories handles GET /api/v1/categories
func (ctrl *DesignController) ListCategories(c *gin.Context) {
	var categories []models.Category
	if err := ctrl.db.Order("name ASC").Find(&categories).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load categories",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    categories,
	})
}

// CreateCategoryRequest represents the request body for creating a category
type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required"`
}

// CreateCategory handles POST /api/v1/admin/categories
func (ctrl *DesignController) CreateCategory(c *gin.Context) {
	var req CreateCategoryRequest
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

	category := models.Category{Name: req.Name}
	if err := ctrl.db.Create(&category).Error; err != nil {
		// Works with both PostgreSQL and SQLite
		errMsg := strings.ToLower(err.Error())
		if strings.Contains(errMsg, "duplicate") || strings.Contains(errMsg, "unique") {
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "CATEGORY_EXISTS",
					"message": "A category with this name already exists",
				},
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create category",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    category,
	})
}
