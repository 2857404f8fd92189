package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albertcheruiyot/recipebox/internal/api/dto"
	"github.com/albertcheruiyot/recipebox/internal/core/service"
	"github.com/albertcheruiyot/recipebox/internal/infrastructure/sqlite"
	"github.com/albertcheruiyot/recipebox/internal/logger"
	"github.com/albertcheruiyot/recipebox/pkg/config"
)

func newTestServer(t *testing.T, devMode bool) *Server {
	t.Helper()

	db, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	cfg := &config.Config{
		SessionSecret:     "server-test-secret-0123456789",
		APIHost:           "127.0.0.1",
		APIPort:           config.DefaultAPIPort,
		DBPath:            ":memory:",
		SessionTTL:        time.Hour,
		SessionCookieName: config.DefaultSessionCookieName,
		LogLevel:          "error",
		LogFormat:         "json",
		DevMode:           devMode,
	}

	return NewServer(
		cfg,
		logger.Discard(),
		service.NewAuthService(sqlite.NewUserRepository(db)),
		service.NewSessionService(sqlite.NewSessionRepository(db), cfg.SessionSecret, cfg.SessionTTL),
		service.NewRecipeService(sqlite.NewRecipeRepository(db)),
	)
}

func serve(s *Server, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, false)

	w := serve(s, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var body dto.HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body.Status)
	_, err := time.Parse(time.RFC3339, body.Time)
	assert.NoError(t, err)
}

func TestPanicsUseErrorEnvelope(t *testing.T) {
	s := newTestServer(t, false)
	s.router.GET("/boom", func(*gin.Context) { panic("kaput") })

	w := serve(s, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"An unexpected error occurred"}`, w.Body.String())
}

func TestSwaggerOnlyInDevMode(t *testing.T) {
	w := serve(newTestServer(t, false), httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = serve(newTestServer(t, true), httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/check_session")
}

func TestRoutes_SessionFlow(t *testing.T) {
	s := newTestServer(t, false)

	req := httptest.NewRequest(http.MethodPost, "/signup",
		bytes.NewBufferString(`{"username":"chef1","password":"secret"}`))
	req.Header.Set("Content-Type", "application/json")
	w := serve(s, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, config.DefaultSessionCookieName, cookies[0].Name)
	assert.Equal(t, http.SameSiteLaxMode, cookies[0].SameSite)

	req = httptest.NewRequest(http.MethodGet, "/recipes", nil)
	req.AddCookie(cookies[0])
	w = serve(s, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `[]`, mustField(t, w.Body.Bytes(), "recipes"))

	req = httptest.NewRequest(http.MethodDelete, "/logout", nil)
	req.AddCookie(cookies[0])
	w = serve(s, req)
	assert.Equal(t, http.StatusNoContent, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/recipes", nil)
	req.AddCookie(cookies[0])
	w = serve(s, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func mustField(t *testing.T, body []byte, field string) string {
	t.Helper()

	var out map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(body, &out))
	raw, ok := out[field]
	require.True(t, ok, "missing field %q", field)
	return string(raw)
}
