package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studiodesk/internal/middleware"
	"studiodesk/pkg/config"
	"studiodesk/pkg/jwtutil"
	"studiodesk/prometheus"
)

func setup(t *testing.T) {
	t.Helper()
	cfg, err := config.Load()
	require.NoError(t, err)
	prometheus.InitMetrics(cfg)
	jwtutil.Initialize(&cfg.JWT)
}

func invoke(t *testing.T, authHeader string) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/api/clients", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)

	h := middleware.AuthMiddleware(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, h(c))
	return rec, c
}

func TestAuthMissingHeader(t *testing.T) {
	setup(t)
	rec, _ := invoke(t, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthBadFormat(t *testing.T) {
	setup(t)
	rec, _ := invoke(t, "Token abc123")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthInvalidToken(t *testing.T) {
	setup(t)
	rec, _ := invoke(t, "Bearer not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthValidToken(t *testing.T) {
	setup(t)

	token, err := jwtutil.GenerateToken("owner@studio.test", 7, "Studio Owner")
	require.NoError(t, err)

	rec, c := invoke(t, "Bearer "+token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, uint(7), c.Get("user_id"))
	assert.Equal(t, "owner@studio.test", c.Get("email"))
}
