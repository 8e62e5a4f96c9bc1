package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"dormhub_app_echo/internal/models"
	"dormhub_app_echo/internal/services"
)

type requestAPI interface {
	CreateComplaint(ctx context.Context, c models.Complaint) (string, error)
	Complaints(ctx context.Context, userID string) ([]models.Complaint, error)
	DecideComplaint(ctx context.Context, complaintID string, newStatus models.RequestStatus, adminResponse *string) error

	CreateMaintenanceRequest(ctx context.Context, m models.MaintenanceRequest) (string, error)
	MaintenanceRequests(ctx context.Context, userID string) ([]models.MaintenanceRequest, error)
	DecideMaintenanceRequest(ctx context.Context, requestID string, newStatus models.RequestStatus, adminResponse *string) error

	CreateSleepoverRequest(ctx context.Context, r models.SleepoverRequest) (string, error)
	SleepoverRequests(ctx context.Context, userID string) ([]models.SleepoverRequest, error)
	DecideSleepoverRequest(ctx context.Context, requestID string, newStatus models.RequestStatus, adminResponse *string) error

	CreateGuestRegistration(ctx context.Context, g models.GuestRegistration) (string, error)
	GuestRegistrations(ctx context.Context, userID string) ([]models.GuestRegistration, error)
	DecideGuestRegistration(ctx context.Context, registrationID string, newStatus models.RequestStatus, adminResponse *string) error

	CreateAnnouncement(ctx context.Context, title, content string) (string, error)
	Announcements(ctx context.Context) ([]models.Announcement, error)
}

// Allowed decision statuses per ticket type. Complaints and maintenance
// tickets move through a triage flow; sleepovers and guest visits get a
// straight approve/reject.
var (
	complaintStatuses = map[models.RequestStatus]bool{
		models.RequestStatusPending:    true,
		models.RequestStatusInProgress: true,
		models.RequestStatusResolved:   true,
		models.RequestStatusRejected:   true,
	}
	maintenanceStatuses = map[models.RequestStatus]bool{
		models.RequestStatusPending:    true,
		models.RequestStatusInProgress: true,
		models.RequestStatusCompleted:  true,
		models.RequestStatusRejected:   true,
	}
	approvalStatuses = map[models.RequestStatus]bool{
		models.RequestStatusPending:  true,
		models.RequestStatusApproved: true,
		models.RequestStatusRejected: true,
	}
)

// RequestHandler serves the student request ticket endpoints
type RequestHandler struct {
	store requestAPI
}

func NewRequestHandler(store requestAPI) *RequestHandler {
	return &RequestHandler{store: store}
}

func (h *RequestHandler) created(c echo.Context, id string, err error) error {
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			return echo.NewHTTPError(http.StatusBadRequest, "Required fields are missing or invalid")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to submit request")
	}
	return c.JSON(http.StatusCreated, idResponse{ID: id})
}

func bindDecision(c echo.Context, allowed map[models.RequestStatus]bool) (models.RequestStatus, *string, error) {
	var body statusUpdateRequest
	if err := c.Bind(&body); err != nil {
		return "", nil, echo.NewHTTPError(http.StatusBadRequest, "Invalid status body")
	}
	newStatus := models.RequestStatus(body.Status)
	if !allowed[newStatus] {
		return "", nil, echo.NewHTTPError(http.StatusBadRequest, "Unknown status for this request type")
	}
	return newStatus, body.AdminResponse, nil
}

func (h *RequestHandler) decide(c echo.Context, err error) error {
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Request not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update request")
	}
	return c.NoContent(http.StatusNoContent)
}

// Complaints

func (h *RequestHandler) CreateComplaint(c echo.Context) error {
	var body models.Complaint
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid complaint body")
	}
	body.UserID = getStringFromContext(c, "userUID")
	id, err := h.store.CreateComplaint(c.Request().Context(), body)
	return h.created(c, id, err)
}

func (h *RequestHandler) MyComplaints(c echo.Context) error {
	out, err := h.store.Complaints(c.Request().Context(), getStringFromContext(c, "userUID"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch complaints")
	}
	return c.JSON(http.StatusOK, out)
}

func (h *RequestHandler) AllComplaints(c echo.Context) error {
	out, err := h.store.Complaints(c.Request().Context(), "")
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch complaints")
	}
	return c.JSON(http.StatusOK, out)
}

func (h *RequestHandler) DecideComplaint(c echo.Context) error {
	newStatus, response, err := bindDecision(c, complaintStatuses)
	if err != nil {
		return err
	}
	return h.decide(c, h.store.DecideComplaint(c.Request().Context(), c.Param("id"), newStatus, response))
}

// Maintenance requests

func (h *RequestHandler) CreateMaintenanceRequest(c echo.Context) error {
	var body models.MaintenanceRequest
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid maintenance request body")
	}
	body.UserID = getStringFromContext(c, "userUID")
	id, err := h.store.CreateMaintenanceRequest(c.Request().Context(), body)
	return h.created(c, id, err)
}

func (h *RequestHandler) MyMaintenanceRequests(c echo.Context) error {
	out, err := h.store.MaintenanceRequests(c.Request().Context(), getStringFromContext(c, "userUID"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch maintenance requests")
	}
	return c.JSON(http.StatusOK, out)
}

func (h *RequestHandler) AllMaintenanceRequests(c echo.Context) error {
	out, err := h.store.MaintenanceRequests(c.Request().Context(), "")
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch maintenance requests")
	}
	return c.JSON(http.StatusOK, out)
}

func (h *RequestHandler) DecideMaintenanceRequest(c echo.Context) error {
	newStatus, response, err := bindDecision(c, maintenanceStatuses)
	if err != nil {
		return err
	}
	return h.decide(c, h.store.DecideMaintenanceRequest(c.Request().Context(), c.Param("id"), newStatus, response))
}

// Sleepover requests

func (h *RequestHandler) CreateSleepoverRequest(c echo.Context) error {
	var body models.SleepoverRequest
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid sleepover request body")
	}
	body.UserID = getStringFromContext(c, "userUID")
	id, err := h.store.CreateSleepoverRequest(c.Request().Context(), body)
	return h.created(c, id, err)
}

func (h *RequestHandler) MySleepoverRequests(c echo.Context) error {
	out, err := h.store.SleepoverRequests(c.Request().Context(), getStringFromContext(c, "userUID"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch sleepover requests")
	}
	return c.JSON(http.StatusOK, out)
}

func (h *RequestHandler) AllSleepoverRequests(c echo.Context) error {
	out, err := h.store.SleepoverRequests(c.Request().Context(), "")
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch sleepover requests")
	}
	return c.JSON(http.StatusOK, out)
}

func (h *RequestHandler) DecideSleepoverRequest(c echo.Context) error {
	newStatus, response, err := bindDecision(c, approvalStatuses)
	if err != nil {
		return err
	}
	return h.decide(c, h.store.DecideSleepoverRequest(c.Request().Context(), c.Param("id"), newStatus, response))
}

// Guest registrations

func (h *RequestHandler) CreateGuestRegistration(c echo.Context) error {
	var body models.GuestRegistration
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid guest registration body")
	}
	body.UserID = getStringFromContext(c, "userUID")
	id, err := h.store.CreateGuestRegistration(c.Request().Context(), body)
	return h.created(c, id, err)
}

func (h *RequestHandler) MyGuestRegistrations(c echo.Context) error {
	out, err := h.store.GuestRegistrations(c.Request().Context(), getStringFromContext(c, "userUID"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch guest registrations")
	}
	return c.JSON(http.StatusOK, out)
}

func (h *RequestHandler) AllGuestRegistrations(c echo.Context) error {
	out, err := h.store.GuestRegistrations(c.Request().Context(), "")
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch guest registrations")
	}
	return c.JSON(http.StatusOK, out)
}

func (h *RequestHandler) DecideGuestRegistration(c echo.Context) error {
	newStatus, response, err := bindDecision(c, approvalStatuses)
	if err != nil {
		return err
	}
	return h.decide(c, h.store.DecideGuestRegistration(c.Request().Context(), c.Param("id"), newStatus, response))
}

// Announcements

func (h *RequestHandler) CreateAnnouncement(c echo.Context) error {
	var body struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid announcement body")
	}
	id, err := h.store.CreateAnnouncement(c.Request().Context(), body.Title, body.Content)
	return h.created(c, id, err)
}

func (h *RequestHandler) Announcements(c echo.Context) error {
	out, err := h.store.Announcements(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch announcements")
	}
	return c.JSON(http.StatusOK, out)
}
