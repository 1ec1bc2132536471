package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"modshop/pkg/utils"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func invokeAuth(t *testing.T, authHeader string) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/nudges/stats", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := AuthMiddleware()(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, h(c))

	return rec, c
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := utils.GenerateJWT("42", "customer", time.Hour)
	require.NoError(t, err)

	rec, c := invokeAuth(t, "Bearer "+token)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, uint(42), c.Get("user_id"))
	assert.Equal(t, "customer", c.Get("role"))
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	rec, _ := invokeAuth(t, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_MalformedHeader(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	rec, _ := invokeAuth(t, "Token abcdef")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	// Signature is valid but the token expired an hour ago; claim
	// validation rejects it during parsing.
	token, err := utils.GenerateJWT("42", "customer", -time.Hour)
	require.NoError(t, err)

	rec, _ := invokeAuth(t, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_WrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "issuer-secret")
	token, err := utils.GenerateJWT("42", "customer", time.Hour)
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "different-secret")
	rec, _ := invokeAuth(t, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_NonNumericUserID(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := utils.GenerateJWT("not-a-number", "customer", time.Hour)
	require.NoError(t, err)

	rec, _ := invokeAuth(t, "Bearer "+token)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
