package middleware

import (
	"fmt"

	"github.com/labstack/echo/v4"
)

// requestUser returns a stable identifier for the authenticated user, used
// when building rate-limit and cache keys. Unauthenticated requests map to
// "guest". The user_id claim decodes from JSON as float64, so it is
// stringified through %v rather than asserted to a single type.
func requestUser(c echo.Context) string {
	v := c.Get("user_id")
	if v == nil {
		return "guest"
	}
	switch id := v.(type) {
	case float64:
		return fmt.Sprintf("%.0f", id)
	case string:
		if id != "" {
			return id
		}
	default:
		return fmt.Sprintf("%v", id)
	}
	return "guest"
}
