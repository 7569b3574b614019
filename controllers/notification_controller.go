package controllers

import (
	"net/http"

	"github.com/atelier-studio/atelier-api/middleware"
	"github.com/atelier-studio/atelier-api/services"
	"github.com/gin-gonic/gin"
)

// NotificationController serves the designer's notification feed
type NotificationController struct {
	notifications *services.NotificationService
}

// NewNotificationController creates a notification controller
func NewNotificationController(notifications *services.NotificationService) *NotificationController {
	return &NotificationController{notifications: notifications}
}

func (ctrl *NotificationController) userID(c *gin.Context) (string, bool) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UNAUTHORIZED",
				"message": "Could not extract user information",
			},
		})
		return "", false
	}
	return userID, true
}

// List handles GET /api/v1/admin/notifications
func (ctrl *NotificationController) List(c *gin.Context) {
	userID, ok := ctrl.userID(c)
	if !ok {
		return
	}

	notifications, err := ctrl.notifications.List(userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    notifications,
	})
}

// UnreadCount handles GET /api/v1/admin/notifications/unread-count
func (ctrl *NotificationController) UnreadCount(c *gin.Context) {
	userID, ok := ctrl.userID(c)
	if !ok {
		return
	}

	count, err := ctrl.notifications.UnreadCount(userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"count": count},
	})
}

// MarkRead handles PATCH /api/v1/admin/notifications/:id/read
func (ctrl *NotificationController) MarkRead(c *gin.Context) {
	userID, ok := ctrl.userID(c)
	if !ok {
		return
	}

	notification, err := ctrl.notifications.MarkRead(c.Param("id"), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    notification,
	})
}

// MarkAllRead handles POST /api/v1/admin/notifications/read-all
func (ctrl *NotificationController) MarkAllRead(c *gin.Context) {
	userID, ok := ctrl.userID(c)
	if !ok {
		return
	}

	if err := ctrl.notifications.MarkAllRead(userID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"read": true},
	})
}
