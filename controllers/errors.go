package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/atelier-studio/atelier-api/services"
	"github.com/gin-gonic/gin"
)

// respondServiceError translates a service-layer error into the standard
// response envelope. Unknown errors are logged and reported as DATABASE_ERROR.
func respondServiceError(c *gin.Context, err error) {
	var validationErr *services.ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": validationErr.Error(),
			},
		})
		return
	}

	var referentialErr *services.ReferentialError
	if errors.As(err, &referentialErr) {
		if referentialErr.NotFound {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "NOT_FOUND",
					"message": referentialErr.Error(),
				},
			})
			return
		}
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "OWNERSHIP_MISMATCH",
				"message": referentialErr.Error(),
			},
		})
		return
	}

	var transitionErr *services.InvalidTransitionError
	if errors.As(err, &transitionErr) {
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_TRANSITION",
				"message": transitionErr.Error(),
			},
		})
		return
	}

	var conflictErr *services.ConflictError
	if errors.As(err, &conflictErr) {
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "CONFLICT",
				"message": conflictErr.Error(),
			},
		})
		return
	}

	log.Printf("Unhandled service error: %v", err)
	c.JSON(http.StatusInternalServerError, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "DATABASE_ERROR",
			"message": "Internal server error",
		},
	})
}
