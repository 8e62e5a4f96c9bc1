package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"dormhub_app_echo/internal/models"
	"dormhub_app_echo/internal/services"
)

// reportLockTTL bounds how long a per-student generation lock can linger
// if a crash prevents its release
const reportLockTTL = 30 * time.Second

type financeAPI interface {
	Resolve(ctx context.Context, studentKey string) (models.User, error)
	Profile(ctx context.Context, studentKey string) (models.StudentFinanceProfile, error)
	ProfileForUser(ctx context.Context, user models.User) (models.StudentFinanceProfile, error)
}

type reportAPI interface {
	CreateSnapshot(ctx context.Context, snapshot models.StudentFinanceProfile) (string, error)
	CreateDocument(ctx context.Context, userID, tenantCode string, payload []byte) (string, error)
	ForStudent(ctx context.Context, userID string) ([]models.FinanceReport, error)
	DownloadPayload(ctx context.Context, reportID string) ([]byte, string, string, error)
}

// FinanceHandler serves the finance profile, report generation and
// report retrieval endpoints
type FinanceHandler struct {
	finance financeAPI
	reports reportAPI
	cache   *services.RedisCache
}

func NewFinanceHandler(finance financeAPI, reports reportAPI, cache *services.RedisCache) *FinanceHandler {
	return &FinanceHandler{finance: finance, reports: reports, cache: cache}
}

// GetProfile returns the finance profile for a student key (internal ID
// or tenant code). Admin endpoint.
func (h *FinanceHandler) GetProfile(c echo.Context) error {
	profile, err := h.finance.Profile(c.Request().Context(), c.Param("key"))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Student not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch finance profile")
	}
	return c.JSON(http.StatusOK, profile)
}

// MyProfile returns the caller's own finance profile
func (h *FinanceHandler) MyProfile(c echo.Context) error {
	uid := getStringFromContext(c, "userUID")
	if uid == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "Missing bearer token")
	}

	profile, err := h.finance.Profile(c.Request().Context(), uid)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Student not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch finance profile")
	}
	return c.JSON(http.StatusOK, profile)
}

// lockReportGeneration takes a short per-student lock so two admins
// generating for the same student don't interleave. Best effort: with
// no cache configured, generation proceeds uncoordinated.
func (h *FinanceHandler) lockReportGeneration(ctx context.Context, userID string) (func(), bool) {
	if h.cache == nil {
		return func() {}, true
	}
	key := fmt.Sprintf("report-lock:%s", userID)
	ok, err := h.cache.SetNX(ctx, key, time.Now().Unix(), reportLockTTL)
	if err != nil {
		// Treat a broken cache like an absent one
		return func() {}, true
	}
	if !ok {
		return nil, false
	}
	return func() { _ = h.cache.Delete(ctx, key) }, true
}

// GenerateReport composes a fresh profile for the student and archives
// it as an immutable snapshot report. Admin endpoint.
func (h *FinanceHandler) GenerateReport(c echo.Context) error {
	ctx := c.Request().Context()

	user, err := h.finance.Resolve(ctx, c.Param("key"))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Student not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to resolve student")
	}

	release, ok := h.lockReportGeneration(ctx, user.ID)
	if !ok {
		return echo.NewHTTPError(http.StatusConflict, "Report generation already in progress")
	}
	defer release()

	snapshot, err := h.finance.ProfileForUser(ctx, user)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to compose finance profile")
	}

	reportID, err := h.reports.CreateSnapshot(ctx, snapshot)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate report")
	}

	return c.JSON(http.StatusCreated, map[string]string{"reportId": reportID})
}

// UploadReportDocument archives a rendered document (PDF bytes in the
// request body) as a new report for the student. Admin endpoint.
func (h *FinanceHandler) UploadReportDocument(c echo.Context) error {
	ctx := c.Request().Context()

	user, err := h.finance.Resolve(ctx, c.Param("key"))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Student not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to resolve student")
	}

	payload, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Failed to read document body")
	}

	reportID, err := h.reports.CreateDocument(ctx, user.ID, user.TenantCode, payload)
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			return echo.NewHTTPError(http.StatusBadRequest, "Document payload is required")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to store report document")
	}

	return c.JSON(http.StatusCreated, map[string]string{"reportId": reportID})
}

// UserReports lists a student's reports, newest first. The response
// shape and error bodies match the legacy API.
func (h *FinanceHandler) UserReports(c echo.Context) error {
	reports, err := h.reports.ForStudent(c.Request().Context(), c.Param("userId"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch reports"})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"reports": reports})
}

// DownloadReport streams a report's stored document. Responses are
// byte-compatible with the legacy API: application/pdf body on success,
// {"error": ...} JSON on failure.
func (h *FinanceHandler) DownloadReport(c echo.Context) error {
	reportID := c.Param("reportId")

	payload, filename, contentType, err := h.reports.DownloadPayload(c.Request().Context(), reportID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Report not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to download report"})
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Blob(http.StatusOK, contentType, payload)
}
