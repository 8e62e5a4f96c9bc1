package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"dormhub_app_echo/internal/services"
)

// activityCacheTTL keeps dashboard numbers fresh enough without
// rescanning four collections on every page load
const activityCacheTTL = 5 * time.Minute

type activityAPI interface {
	Activity(ctx context.Context, rng services.TimeRange) ([]services.ActivityBucket, error)
}

// DashboardHandler serves the admin activity dashboard
type DashboardHandler struct {
	requests activityAPI
	cache    *services.RedisCache
}

func NewDashboardHandler(requests activityAPI, cache *services.RedisCache) *DashboardHandler {
	return &DashboardHandler{requests: requests, cache: cache}
}

// Activity returns per-day request counts for the chosen time range
func (h *DashboardHandler) Activity(c echo.Context) error {
	rng := services.ParseTimeRange(c.QueryParam("range"))
	ctx := c.Request().Context()

	key := fmt.Sprintf("dashboard-activity:%s", rng)
	buckets, err := services.GetOrSet(h.cache, ctx, key, activityCacheTTL, func() ([]services.ActivityBucket, error) {
		return h.requests.Activity(ctx, rng)
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch activity data")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"data": buckets})
}
