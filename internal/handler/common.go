// Package handler contains the HTTP endpoints. Handlers assume routing and
// middleware (auth, roles, rate limiting) are applied by the router.
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/soundhaus/booking-api/internal/model"
)

// getUserID extracts the authenticated user's id from context. JWT numeric
// claims decode as float64; other representations are handled for safety.
func getUserID(c echo.Context) (uint64, error) {
	switch t := c.Get("user_id").(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// optionalUserID is getUserID for routes behind OptionalAuth: it returns nil
// for guests instead of an error.
func optionalUserID(c echo.Context) *uint64 {
	if id, err := getUserID(c); err == nil {
		return &id
	}
	return nil
}

// pathID parses a positive numeric :id path parameter.
func pathID(c echo.Context) (uint64, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return id, nil
}

// fieldErrors renders a validation failure in the per-field envelope:
// {"errors": {"<field>": "<message>"}} with HTTP 400.
func fieldErrors(c echo.Context, fe *model.FieldError) error {
	return c.JSON(http.StatusBadRequest, echo.Map{
		"errors": map[string]string{fe.Field: fe.Message},
	})
}
