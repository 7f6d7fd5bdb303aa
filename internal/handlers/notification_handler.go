package handlers

import (
	"context"
	"math"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/anonto42/nano-midea/socialnet/internal/models"
)

// NotificationReader is the read side of the notification store
type NotificationReader interface {
	GetByReceiverID(ctx context.Context, receiverID uuid.UUID, page, limit int) ([]models.Notification, int64, error)
	GetUnreadCount(ctx context.Context, receiverID uuid.UUID) (int64, error)
	MarkAsRead(ctx context.Context, receiverID, notificationID uuid.UUID) error
	MarkAllAsRead(ctx context.Context, receiverID uuid.UUID) error
}

// NotificationHandler handles notification-related HTTP requests
type NotificationHandler struct {
	notifications NotificationReader
	log           *zap.Logger
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notifications NotificationReader, log *zap.Logger) *NotificationHandler {
	return &NotificationHandler{notifications: notifications, log: log}
}

// RegisterNotificationRoutes registers notification routes
func (h *NotificationHandler) RegisterNotificationRoutes(g *echo.Group) {
	g.GET("/notifications", h.GetNotifications)
	g.GET("/notifications/unread-count", h.GetUnreadCount)
	g.PUT("/notifications/:id/read", h.MarkAsRead)
	g.PUT("/notifications/read-all", h.MarkAllAsRead)
}

// GetNotifications returns paginated notifications, newest first
func (h *NotificationHandler) GetNotifications(c echo.Context) error {
	accountID, err := accountIDFromContext(c)
	if err != nil {
		return err
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 20
	}

	notifications, total, err := h.notifications.GetByReceiverID(c.Request().Context(), accountID, page, limit)
	if err != nil {
		h.log.Error("list notifications", zap.Stringer("receiver_id", accountID), zap.Error(err))
		return httpError(err)
	}

	totalPages := int(math.Ceil(float64(total) / float64(limit)))

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data": echo.Map{
			"notifications": notifications,
		},
		"meta": echo.Map{
			"currentPage":     page,
			"totalPages":      totalPages,
			"totalItems":      total,
			"itemsPerPage":    limit,
			"hasNextPage":     page < totalPages,
			"hasPreviousPage": page > 1,
		},
	})
}

// GetUnreadCount returns the unread notification count
func (h *NotificationHandler) GetUnreadCount(c echo.Context) error {
	accountID, err := accountIDFromContext(c)
	if err != nil {
		return err
	}

	count, err := h.notifications.GetUnreadCount(c.Request().Context(), accountID)
	if err != nil {
		h.log.Error("count unread notifications", zap.Stringer("receiver_id", accountID), zap.Error(err))
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"count": count}})
}

// MarkAsRead marks one of the caller's notifications as read
func (h *NotificationHandler) MarkAsRead(c echo.Context) error {
	accountID, err := accountIDFromContext(c)
	if err != nil {
		return err
	}

	notificationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid notification ID")
	}

	if err := h.notifications.MarkAsRead(c.Request().Context(), accountID, notificationID); err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"success": true}})
}

// MarkAllAsRead marks all notifications as read
func (h *NotificationHandler) MarkAllAsRead(c echo.Context) error {
	accountID, err := accountIDFromContext(c)
	if err != nil {
		return err
	}

	if err := h.notifications.MarkAllAsRead(c.Request().Context(), accountID); err != nil {
		h.log.Error("mark all notifications read", zap.Stringer("receiver_id", accountID), zap.Error(err))
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"success": true}})
}
