package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"dormhub_app_echo/internal/models"
	"dormhub_app_echo/internal/services"
)

type paymentAPI interface {
	Record(ctx context.Context, in services.RecordPaymentInput) (string, error)
	UpdateStatus(ctx context.Context, paymentID string, newStatus models.PaymentStatus) error
}

// PaymentHandler serves the administrator ledger-entry endpoints
type PaymentHandler struct {
	payments paymentAPI
}

func NewPaymentHandler(payments paymentAPI) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

// RecordPayment appends a transaction to a student's ledger
func (h *PaymentHandler) RecordPayment(c echo.Context) error {
	var in services.RecordPaymentInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid payment body")
	}

	id, err := h.payments.Record(c.Request().Context(), in)
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid payment fields")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to record payment")
	}

	return c.JSON(http.StatusCreated, idResponse{ID: id})
}

// UpdatePaymentStatus mutates the settlement status of a ledger entry
func (h *PaymentHandler) UpdatePaymentStatus(c echo.Context) error {
	var body struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid status body")
	}

	newStatus, ok := models.ParsePaymentStatus(body.Status)
	if !ok {
		return echo.NewHTTPError(http.StatusBadRequest, "Unknown payment status")
	}

	if err := h.payments.UpdateStatus(c.Request().Context(), c.Param("id"), newStatus); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Payment not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update payment")
	}

	return c.NoContent(http.StatusNoContent)
}
