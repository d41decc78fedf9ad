package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "contactsapi/internal/errors"
	"contactsapi/internal/model"
)

// Authorize is a pure membership check of the user's role against the
// route's allowed set.
func Authorize(role model.Role, allowed []model.Role) error {
	for _, r := range allowed {
		if role == r {
			return nil
		}
	}
	return apperrors.ErrForbidden
}

// RequireRoles restricts a route to the given roles. It must run after
// Authenticate; a request without a resolved user is treated as
// unauthenticated, not forbidden.
func RequireRoles(allowed ...model.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := CurrentUser(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized,
					apperrors.ErrorResponse{Detail: apperrors.ErrCredentials.Error()})
			}
			if err := Authorize(user.Role, allowed); err != nil {
				return echo.NewHTTPError(http.StatusForbidden,
					apperrors.ErrorResponse{Detail: err.Error()})
			}
			return next(c)
		}
	}
}
