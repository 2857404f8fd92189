package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/albertcheruiyot/recipebox/internal/api/dto"
	"github.com/albertcheruiyot/recipebox/internal/core/service"
)

const MsgInternalError = "An unexpected error occurred"

// ErrorHandlerMiddleware handles panics and errors
func ErrorHandlerMiddleware(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error("panic while handling request",
					"method", c.Request.Method,
					"path", c.Request.URL.Path,
					"panic", err,
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, dto.ErrorResponse{
					Error: MsgInternalError,
				})
			}
		}()

		c.Next()

		// Check if there are any errors nobody responded to
		if len(c.Errors) > 0 && !c.Writer.Written() {
			log.Error("unhandled request error", "path", c.Request.URL.Path, "error", c.Errors.Last().Err)
			c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
				Error: MsgInternalError,
			})
		}
	}
}

// StatusFor maps a service error to its HTTP status code.
func StatusFor(err error) int {
	switch service.KindOf(err) {
	case service.KindValidation, service.KindConflict:
		return http.StatusUnprocessableEntity
	case service.KindAuth:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// WriteError responds with the error envelope. Messages of server-side
// failures are logged, and only the generic service message is returned.
func WriteError(c *gin.Context, log *slog.Logger, err error) {
	status := StatusFor(err)

	message := MsgInternalError
	var svcErr *service.ServiceError
	if errors.As(err, &svcErr) {
		message = svcErr.Message
	}

	if status >= http.StatusInternalServerError {
		log.Error("request failed",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"error", err,
		)
	}

	c.AbortWithStatusJSON(status, dto.ErrorResponse{Error: message})
}
