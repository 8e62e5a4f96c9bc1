package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"dormhub_app_echo/internal/models"
	"dormhub_app_echo/internal/services"
)

type notificationAPI interface {
	ForUser(ctx context.Context, userID string) ([]models.Notification, error)
	MarkRead(ctx context.Context, notificationID string) error
	MarkAllRead(ctx context.Context, userID string) error
}

// NotificationHandler serves a user's in-app notifications
type NotificationHandler struct {
	store notificationAPI
}

func NewNotificationHandler(store notificationAPI) *NotificationHandler {
	return &NotificationHandler{store: store}
}

// MyNotifications lists the caller's notifications, newest first
func (h *NotificationHandler) MyNotifications(c echo.Context) error {
	out, err := h.store.ForUser(c.Request().Context(), getStringFromContext(c, "userUID"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch notifications")
	}
	return c.JSON(http.StatusOK, out)
}

// MarkRead flags one notification as read
func (h *NotificationHandler) MarkRead(c echo.Context) error {
	if err := h.store.MarkRead(c.Request().Context(), c.Param("id")); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Notification not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update notification")
	}
	return c.NoContent(http.StatusNoContent)
}

// MarkAllRead flags every notification of the caller as read
func (h *NotificationHandler) MarkAllRead(c echo.Context) error {
	if err := h.store.MarkAllRead(c.Request().Context(), getStringFromContext(c, "userUID")); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update notifications")
	}
	return c.NoContent(http.StatusNoContent)
}
