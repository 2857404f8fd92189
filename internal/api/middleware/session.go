package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/albertcheruiyot/recipebox/internal/api/dto"
	"github.com/albertcheruiyot/recipebox/internal/core/domain"
	"github.com/albertcheruiyot/recipebox/internal/core/service"
)

const (
	SessionContextKey = "session"

	MsgPleaseLogin = "Please login"
)

// SessionCookie describes the cookie carrying the session token.
type SessionCookie struct {
	Name   string
	TTL    time.Duration
	Secure bool
}

// Write stores token in the response cookie.
func (sc SessionCookie) Write(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sc.Name, token, int(sc.TTL.Seconds()), "/", "", sc.Secure, true)
}

// Expire tells the browser to drop the cookie.
func (sc SessionCookie) Expire(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sc.Name, "", -1, "/", "", sc.Secure, true)
}

// SessionMiddleware loads the session named by the request cookie, if any,
// and stores it in the context. Requests without a valid session continue
// without one.
func SessionMiddleware(sessions *service.SessionService, cookie SessionCookie, log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(cookie.Name)
		if err != nil {
			c.Next()
			return
		}

		session, err := sessions.Load(c.Request.Context(), token)
		if err != nil {
			if !errors.Is(err, service.ErrNoSession) {
				log.Warn("failed to load session", "error", err)
			}
			c.Next()
			return
		}

		c.Set(SessionContextKey, session)
		c.Next()
	}
}

// RequireSession aborts with 401 unless the request carries a session bound
// to a user id. Resolving the user is left to the handler.
func RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := GetSession(c)
		if !ok || !session.HasUser() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
				Error: MsgPleaseLogin,
			})
			return
		}
		c.Next()
	}
}

// GetSession retrieves the session loaded for this request
func GetSession(c *gin.Context) (*domain.Session, bool) {
	value, exists := c.Get(SessionContextKey)
	if !exists {
		return nil, false
	}

	session, ok := value.(*domain.Session)
	return session, ok
}
