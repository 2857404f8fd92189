package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/albertcheruiyot/recipebox/internal/api/middleware"
	"github.com/albertcheruiyot/recipebox/internal/core/service"
	"github.com/albertcheruiyot/recipebox/internal/infrastructure/sqlite"
	"github.com/albertcheruiyot/recipebox/internal/logger"
)

const testSecret = "handler-test-secret-0123456789ab"

// testEnv holds all test dependencies
type testEnv struct {
	db       *sqlite.DB
	router   *gin.Engine
	auth     *service.AuthService
	sessions *service.SessionService
	recipes  *service.RecipeService
	cookie   middleware.SessionCookie
}

// setupTestEnv creates a test environment with in-memory SQLite database
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	log := logger.Discard()

	authService := service.NewAuthService(sqlite.NewUserRepository(db))
	sessionService := service.NewSessionService(sqlite.NewSessionRepository(db), testSecret, time.Hour)
	recipeService := service.NewRecipeService(sqlite.NewRecipeRepository(db))

	cookie := middleware.SessionCookie{Name: "session", TTL: time.Hour}

	authHandler := NewAuthHandler(authService, sessionService, cookie, log)
	recipeHandler := NewRecipeHandler(authService, recipeService, log)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.ErrorHandlerMiddleware(log))
	router.Use(middleware.SessionMiddleware(sessionService, cookie, log))

	router.POST("/signup", authHandler.Signup)
	router.POST("/login", authHandler.Login)
	router.DELETE("/logout", authHandler.Logout)
	router.GET("/check_session", authHandler.CheckSession)

	requireSession := middleware.RequireSession()
	router.GET("/recipes", requireSession, recipeHandler.ListRecipes)
	router.POST("/recipes", requireSession, recipeHandler.CreateRecipe)

	return &testEnv{
		db:       db,
		router:   router,
		auth:     authService,
		sessions: sessionService,
		recipes:  recipeService,
		cookie:   cookie,
	}
}

// client is a browser stand-in that carries the session cookie between requests.
type client struct {
	env    *testEnv
	cookie *http.Cookie
}

func (env *testEnv) newClient() *client {
	return &client{env: env}
}

// do performs a request, sending body as JSON when it is not nil, and keeps
// any session cookie the server sets.
func (cl *client) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cl.cookie != nil {
		req.AddCookie(cl.cookie)
	}

	w := httptest.NewRecorder()
	cl.env.router.ServeHTTP(w, req)

	for _, c := range w.Result().Cookies() {
		if c.Name != cl.env.cookie.Name {
			continue
		}
		if c.MaxAge < 0 {
			cl.cookie = nil
			continue
		}
		cl.cookie = c
	}
	return w
}

// signup registers username with password and leaves the client logged in.
func (cl *client) signup(t *testing.T, username, password string) map[string]any {
	t.Helper()

	w := cl.do(t, http.MethodPost, "/signup", map[string]any{
		"username": username,
		"password": password,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decodeObject(t, w)
}

// withCookie returns a client presenting a copy of cookie, as a second
// browser holding the same token would.
func (env *testEnv) withCookie(cookie *http.Cookie) *client {
	cl := env.newClient()
	if cookie != nil {
		copied := *cookie
		cl.cookie = &copied
	}
	return cl
}

func decodeObject(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()

	body := decodeObject(t, w)
	msg, ok := body["error"].(string)
	require.True(t, ok, "response has no error field: %s", w.Body.String())
	return msg
}

func instructionsOfLength(n int) string {
	return strings.Repeat("a", n)
}
