package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"contactsapi/internal/cache"
	apperrors "contactsapi/internal/errors"
)

// RateLimit enforces a fixed-window limit per client IP and route, counted
// in Redis so the limit holds across replicas. It runs before the
// authentication and role gates. When Redis is unreachable the request is
// allowed; losing the limiter must not take the API down with it.
func RateLimit(store *cache.Client, limit int64, window time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := fmt.Sprintf("ratelimit:%s:%s", c.RealIP(), c.Path())
			n, err := store.IncrWindow(c.Request().Context(), key, window)
			if err == nil && n > limit {
				return echo.NewHTTPError(http.StatusTooManyRequests,
					apperrors.ErrorResponse{Detail: "Too many requests"})
			}
			return next(c)
		}
	}
}
