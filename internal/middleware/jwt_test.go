package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soundhaus/booking-api/internal/middleware"
	"github.com/soundhaus/booking-api/internal/utils"
)

const testSecret = "test-secret"

func doRequest(t *testing.T, mw echo.MiddlewareFunc, authHeader string) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var captured echo.Context
	handler := mw(func(c echo.Context) error {
		captured = c
		return c.String(http.StatusOK, "ok")
	})
	require.NoError(t, handler(c))
	return rec, captured
}

func bearer(t *testing.T, userID uint64, role string) string {
	t.Helper()
	at, err := utils.NewAccessToken(testSecret, userID, role, 5)
	require.NoError(t, err)
	return "Bearer " + at.Token
}

func TestJWTAuthValidToken(t *testing.T) {
	rec, c := doRequest(t, middleware.JWTAuth(testSecret), bearer(t, 7, "customer"))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(7), c.Get("user_id"))
	assert.Equal(t, "customer", c.Get("role"))
}

func TestJWTAuthMissingToken(t *testing.T) {
	rec, _ := doRequest(t, middleware.JWTAuth(testSecret), "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthWrongSecret(t *testing.T) {
	at, err := utils.NewAccessToken("other-secret", 7, "customer", 5)
	require.NoError(t, err)
	rec, _ := doRequest(t, middleware.JWTAuth(testSecret), "Bearer "+at.Token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestOptionalAuthGuestPassesThrough(t *testing.T) {
	rec, c := doRequest(t, middleware.OptionalAuth(testSecret), "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, c.Get("user_id"))
}

func TestOptionalAuthValidToken(t *testing.T) {
	rec, c := doRequest(t, middleware.OptionalAuth(testSecret), bearer(t, 9, "customer"))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(9), c.Get("user_id"))
}

func TestOptionalAuthRejectsBadToken(t *testing.T) {
	// a present but invalid token is an error, not a guest downgrade
	rec, _ := doRequest(t, middleware.OptionalAuth(testSecret), "Bearer not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireRole(t *testing.T) {
	e := echo.New()

	run := func(role any) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		if role != nil {
			c.Set("role", role)
		}
		h := middleware.RequireRole("staff", "admin")(func(c echo.Context) error {
			return c.String(http.StatusOK, "ok")
		})
		require.NoError(t, h(c))
		return rec
	}

	assert.Equal(t, http.StatusOK, run("staff").Code)
	assert.Equal(t, http.StatusOK, run("admin").Code)
	assert.Equal(t, http.StatusForbidden, run("customer").Code)
	assert.Equal(t, http.StatusForbidden, run(nil).Code)
}
