package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"dormhub_app_echo/internal/models"
	"dormhub_app_echo/internal/services"
)

type userAPI interface {
	ByID(ctx context.Context, userID string) (models.User, error)
	All(ctx context.Context) ([]models.User, error)
}

// UserHandler serves the admin resident directory
type UserHandler struct {
	users userAPI
}

func NewUserHandler(users userAPI) *UserHandler {
	return &UserHandler{users: users}
}

// ListUsers returns every resident record
func (h *UserHandler) ListUsers(c echo.Context) error {
	users, err := h.users.All(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch users")
	}
	return c.JSON(http.StatusOK, users)
}

// GetUser returns a single resident record
func (h *UserHandler) GetUser(c echo.Context) error {
	user, err := h.users.ByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch user")
	}
	return c.JSON(http.StatusOK, user)
}
