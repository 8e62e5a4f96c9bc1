package middleware

import (
	"context"
	"net/http"
	"strings"

	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
)

// AdminChecker reports whether a user holds a staff record. Satisfied by
// services.UserStore.
type AdminChecker interface {
	IsAdmin(ctx context.Context, userID string) (bool, error)
}

// RequireAuth verifies the Firebase ID token carried in the
// Authorization header and stores the caller's identity in the request
// context
func RequireAuth(authClient *auth.Client) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if authClient == nil {
				return echo.NewHTTPError(http.StatusServiceUnavailable, "Authentication is not configured")
			}

			header := c.Request().Header.Get(echo.HeaderAuthorization)
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing bearer token")
			}

			decoded, err := authClient.VerifyIDToken(c.Request().Context(), token)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token")
			}

			c.Set("userUID", decoded.UID)
			if email, ok := decoded.Claims["email"].(string); ok {
				c.Set("userEmail", email)
			}
			if isAdmin, ok := decoded.Claims["admin"].(bool); ok && isAdmin {
				c.Set("isAdmin", true)
			}

			return next(c)
		}
	}
}

// RequireAdmin gates administrator endpoints. The admin custom claim is
// honored first; accounts provisioned before claims were introduced fall
// back to an admins-collection lookup.
func RequireAdmin(admins AdminChecker) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if flagged, ok := c.Get("isAdmin").(bool); ok && flagged {
				return next(c)
			}

			uid, _ := c.Get("userUID").(string)
			if uid == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing bearer token")
			}

			isAdmin, err := admins.IsAdmin(c.Request().Context(), uid)
			if err != nil {
				return echo.NewHTTPError(http.StatusInternalServerError, "Failed to verify permissions")
			}
			if !isAdmin {
				return echo.NewHTTPError(http.StatusForbidden, "Administrator access required")
			}

			return next(c)
		}
	}
}
