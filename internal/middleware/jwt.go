// Package middleware provides reusable HTTP middleware: authentication,
// role checks, rate limiting and response caching.
package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// JWTAuth returns a middleware that validates a Bearer access token and
// injects the token's subject and role claims into the request context under
// "user_id" and "role". Requests without a valid token are rejected with 401.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, err := parseBearer(c, secret)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": err.Error()})
			}
			c.Set("user_id", claims["sub"])
			c.Set("role", claims["role"])
			return next(c)
		}
	}
}

// OptionalAuth behaves like JWTAuth when a Bearer token is present but lets
// unauthenticated requests through as guests. A malformed or expired token
// is still rejected rather than silently downgraded to guest.
func OptionalAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !strings.HasPrefix(c.Request().Header.Get("Authorization"), "Bearer ") {
				return next(c)
			}
			claims, err := parseBearer(c, secret)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": err.Error()})
			}
			c.Set("user_id", claims["sub"])
			c.Set("role", claims["role"])
			return next(c)
		}
	}
}

func parseBearer(c echo.Context, secret string) (jwt.MapClaims, error) {
	auth := c.Request().Header.Get("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return nil, errMissingToken
	}
	raw := strings.TrimPrefix(auth, "Bearer ")
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, echo.ErrUnauthorized
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return nil, errInvalidToken
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errInvalidClaims
	}
	return claims, nil
}

var (
	errMissingToken  = &authError{"missing bearer token"}
	errInvalidToken  = &authError{"invalid token"}
	errInvalidClaims = &authError{"invalid claims"}
)

type authError struct{ msg string }

func (e *authError) Error() string { return e.msg }
