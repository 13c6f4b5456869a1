package middleware

import (
	"net/http"
	"time"

	"notehub/internal/caching"
	"notehub/internal/common"

	"github.com/labstack/echo/v4"
)

// RateLimit throttles requests per client IP and route using a fixed
// window counter in Redis. Intended for the unauthenticated auth
// endpoints; when Redis is unreachable the request is let through.
func RateLimit(cacheSvc caching.CacheService, limit int, window time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := c.RealIP() + ":" + c.Path()

			limited, err := cacheSvc.IsRateLimited(c.Request().Context(), key, limit, window)
			if err != nil {
				return next(c)
			}
			if limited {
				return c.JSON(http.StatusTooManyRequests, common.ErrorResponse{
					Error:   "too_many_requests",
					Message: "Too many requests, please try again later",
				})
			}
			return next(c)
		}
	}
}
