package middleware

import (
	"fmt"

	"github.com/labstack/echo/v4"
)

// EaterID returns the authenticated eater's ID from the context, or 0
// when the request is unauthenticated. JWT numeric claims decode as
// float64, so both paths are handled.
func EaterID(c echo.Context) uint64 {
	switch v := c.Get("eater_id").(type) {
	case float64:
		return uint64(v)
	case uint64:
		return v
	}
	return 0
}

// identityKey builds the per-caller component of Redis keys used by
// the rate limiter and the cache. Authenticated requests key on the
// eater ID, anonymous ones on the client IP.
func identityKey(c echo.Context) string {
	if id := EaterID(c); id != 0 {
		return fmt.Sprintf("eater:%d", id)
	}
	return "ip:" + c.RealIP()
}
