package handlers

import (
	"net/http"

	"bluffpot/internal/db"
	"bluffpot/internal/models"
	"bluffpot/internal/utils"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct{}

func NewNotificationHandler() *NotificationHandler {
	return &NotificationHandler{}
}

// List returns the user's notifications, newest first.
func (h *NotificationHandler) List(c *gin.Context) {
	user, _ := CurrentUser(c)
	limit := atoiDefault(c.Query("limit"), 50)

	var notifications []models.Notification
	db.DB.Where("user_id = ?", user.ID).
		Order("created_at DESC").
		Limit(limit).
		Find(&notifications)

	var unread int64
	db.DB.Model(&models.Notification{}).Where("user_id = ? AND is_read = ?", user.ID, false).Count(&unread)

	c.JSON(http.StatusOK, gin.H{"notifications": notifications, "unread": unread})
}

// Read marks one notification as read.
func (h *NotificationHandler) Read(c *gin.Context) {
	user, _ := CurrentUser(c)
	db.DB.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", utils.StringToUint(c.Param("id")), user.ID).
		UpdateColumn("is_read", true)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ReadAll marks every notification as read.
func (h *NotificationHandler) ReadAll(c *gin.Context) {
	user, _ := CurrentUser(c)
	db.DB.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", user.ID, false).
		UpdateColumn("is_read", true)
	c.JSON(http.StatusOK, gin.H{"success": true})
}
