package handlers

import (
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/0xSujith18/Talkit/internal/apperrors"
	"github.com/0xSujith18/Talkit/internal/middleware"
	"github.com/0xSujith18/Talkit/internal/repositories"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// NotificationHandler handles notification-related HTTP requests
type NotificationHandler struct {
	notificationRepository repositories.NotificationRepository
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notifRepo repositories.NotificationRepository) *NotificationHandler {
	return &NotificationHandler{notificationRepository: notifRepo}
}

// RegisterNotificationRoutes registers notification routes
func (h *NotificationHandler) RegisterNotificationRoutes(g *echo.Group) {
	g.GET("/notifications", h.GetNotifications)
	g.GET("/notifications/unread-count", h.GetUnreadCount)
	g.PUT("/notifications/:id/read", h.MarkAsRead)
	g.PUT("/notifications/read-all", h.MarkAllAsRead)
}

// GetNotifications returns the caller's notifications, newest first
func (h *NotificationHandler) GetNotifications(c echo.Context) error {
	identity := middleware.GetIdentity(c)
	page, limit := pagination(c, 50)

	notifications, total, err := h.notificationRepository.GetByRecipientID(identity.UserID, page, limit)
	if err != nil {
		return apperrors.Internal(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"notifications": notifications,
		"total":         total,
		"pages":         int(math.Ceil(float64(total) / float64(limit))),
	})
}

// GetUnreadCount returns the caller's unread notification count
func (h *NotificationHandler) GetUnreadCount(c echo.Context) error {
	identity := middleware.GetIdentity(c)

	count, err := h.notificationRepository.GetUnreadCount(identity.UserID)
	if err != nil {
		return apperrors.Internal(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"unread_count": count})
}

// MarkAsRead flags one of the caller's notifications as read
func (h *NotificationHandler) MarkAsRead(c echo.Context) error {
	identity := middleware.GetIdentity(c)

	notificationID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return apperrors.Validation("invalid notification id")
	}

	if err := h.notificationRepository.MarkAsRead(uint(notificationID), identity.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("notification not found")
		}
		return apperrors.Internal(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Notification marked as read"})
}

// MarkAllAsRead flags all of the caller's notifications as read
func (h *NotificationHandler) MarkAllAsRead(c echo.Context) error {
	identity := middleware.GetIdentity(c)

	if err := h.notificationRepository.MarkAllAsRead(identity.UserID); err != nil {
		return apperrors.Internal(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "All notifications marked as read"})
}
