package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/albertcheruiyot/recipebox/internal/api/dto"
	"github.com/albertcheruiyot/recipebox/internal/api/middleware"
	"github.com/albertcheruiyot/recipebox/internal/core/domain"
	"github.com/albertcheruiyot/recipebox/internal/core/service"
)

const (
	MsgInvalidBody        = "Request body must be a JSON object"
	MsgLogoutUnauthorized = "Unauthorized. You need to login to logout"
	MsgCheckUnauthorized  = "Unauthorized: please login"
)

type AuthHandler struct {
	authService    *service.AuthService
	sessionService *service.SessionService
	cookie         middleware.SessionCookie
	log            *slog.Logger
}

func NewAuthHandler(
	authService *service.AuthService,
	sessionService *service.SessionService,
	cookie middleware.SessionCookie,
	log *slog.Logger,
) *AuthHandler {
	return &AuthHandler{
		authService:    authService,
		sessionService: sessionService,
		cookie:         cookie,
		log:            log,
	}
}

// Signup handles POST /signup
//
//	@Summary	Create an account and log in
//	@Tags		auth
//	@Accept		json
//	@Produce	json
//	@Param		body	body		dto.SignupRequest	true	"New user"
//	@Success	201		{object}	dto.UserResponse
//	@Failure	422		{object}	dto.ErrorResponse
//	@Router		/signup [post]
func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{Error: MsgInvalidBody})
		return
	}

	user, err := h.authService.Signup(c.Request.Context(), service.SignupInput{
		Username: req.Username,
		Password: req.Password,
		ImageURL: req.ImageURL,
		Bio:      req.Bio,
	})
	if err != nil {
		middleware.WriteError(c, h.log, err)
		return
	}

	if !h.startSession(c, user) {
		return
	}

	h.log.Info("user signed up", "user_id", user.ID, "username", user.Username)
	c.JSON(http.StatusCreated, dto.ToUserResponse(user))
}

// Login handles POST /login
//
//	@Summary	Log in
//	@Tags		auth
//	@Accept		json
//	@Produce	json
//	@Param		body	body		dto.LoginRequest	true	"Credentials"
//	@Success	200		{object}	dto.UserResponse
//	@Failure	401		{object}	dto.ErrorResponse
//	@Failure	422		{object}	dto.ErrorResponse
//	@Router		/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{Error: MsgInvalidBody})
		return
	}

	user, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		middleware.WriteError(c, h.log, err)
		return
	}

	if !h.startSession(c, user) {
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// Logout handles DELETE /logout
//
//	@Summary	Log out
//	@Tags		auth
//	@Success	204
//	@Failure	401	{object}	dto.ErrorResponse
//	@Router		/logout [delete]
func (h *AuthHandler) Logout(c *gin.Context) {
	session, ok := middleware.GetSession(c)
	if !ok || !session.HasUser() {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: MsgLogoutUnauthorized})
		return
	}

	if err := h.sessionService.Clear(c.Request.Context(), session); err != nil {
		middleware.WriteError(c, h.log, service.NewPersistenceError("Failed to end session", err))
		return
	}

	h.cookie.Expire(c)
	c.Status(http.StatusNoContent)
}

// CheckSession handles GET /check_session
//
//	@Summary	Return the logged-in user
//	@Tags		auth
//	@Produce	json
//	@Success	200	{object}	dto.UserResponse
//	@Failure	401	{object}	dto.ErrorResponse
//	@Router		/check_session [get]
func (h *AuthHandler) CheckSession(c *gin.Context) {
	session, ok := middleware.GetSession(c)
	if !ok || !session.HasUser() {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: MsgCheckUnauthorized})
		return
	}

	user, err := h.authService.CurrentUser(c.Request.Context(), *session.UserID)
	if err != nil {
		if service.KindOf(err) == service.KindAuth {
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: MsgCheckUnauthorized})
			return
		}
		middleware.WriteError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// startSession replaces the browser session with a fresh one for user and
// writes its cookie.
// It reports false after writing an error response.
func (h *AuthHandler) startSession(c *gin.Context, user *domain.User) bool {
	current, _ := middleware.GetSession(c)

	session, token, err := h.sessionService.Establish(c.Request.Context(), current, user.ID)
	if err != nil {
		middleware.WriteError(c, h.log, service.NewPersistenceError("Failed to start session", err))
		return false
	}

	h.cookie.Write(c, token)
	c.Set(middleware.SessionContextKey, session)
	return true
}
