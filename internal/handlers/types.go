package handlers

import (
	"github.com/labstack/echo/v4"
)

// Helper to safely get a string from the request context
func getStringFromContext(c echo.Context, key string) string {
	val := c.Get(key)
	if val == nil {
		return ""
	}
	strVal, ok := val.(string)
	if !ok {
		return ""
	}
	return strVal
}

// statusUpdateRequest is the shared body for ticket status decisions.
// AdminResponse is optional; when omitted the existing response is kept.
type statusUpdateRequest struct {
	Status        string  `json:"status"`
	AdminResponse *string `json:"adminResponse"`
}

type idResponse struct {
	ID string `json:"id"`
}
