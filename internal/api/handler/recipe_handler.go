package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/albertcheruiyot/recipebox/internal/api/dto"
	"github.com/albertcheruiyot/recipebox/internal/api/middleware"
	"github.com/albertcheruiyot/recipebox/internal/core/service"
)

type RecipeHandler struct {
	authService   *service.AuthService
	recipeService *service.RecipeService
	log           *slog.Logger
}

func NewRecipeHandler(authService *service.AuthService, recipeService *service.RecipeService, log *slog.Logger) *RecipeHandler {
	return &RecipeHandler{
		authService:   authService,
		recipeService: recipeService,
		log:           log,
	}
}

// ListRecipes handles GET /recipes
//
//	@Summary	List the logged-in user's recipes
//	@Tags		recipes
//	@Produce	json
//	@Success	200	{object}	dto.RecipeListResponse
//	@Failure	401	{object}	dto.ErrorResponse
//	@Router		/recipes [get]
func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	userID, ok := sessionUserID(c)
	if !ok {
		return
	}

	user, err := h.authService.CurrentUser(c.Request.Context(), userID)
	if err != nil {
		middleware.WriteError(c, h.log, err)
		return
	}

	recipes, err := h.recipeService.ListForUser(c.Request.Context(), user.ID)
	if err != nil {
		middleware.WriteError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.RecipeListResponse{
		Recipes: dto.ToRecipeResponses(recipes),
		User:    dto.ToUserResponse(user),
	})
}

// CreateRecipe handles POST /recipes
//
//	@Summary	Create a recipe owned by the logged-in user
//	@Tags		recipes
//	@Accept		json
//	@Produce	json
//	@Param		body	body		dto.CreateRecipeRequest	true	"Recipe"
//	@Success	201		{object}	dto.RecipeCreateResponse
//	@Failure	401		{object}	dto.ErrorResponse
//	@Failure	422		{object}	dto.ErrorResponse
//	@Failure	500		{object}	dto.ErrorResponse
//	@Router		/recipes [post]
func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	userID, ok := sessionUserID(c)
	if !ok {
		return
	}

	var req dto.CreateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{Error: MsgInvalidBody})
		return
	}

	// the owner is checked inside the insert transaction, after validation
	recipe, err := h.recipeService.Create(c.Request.Context(), userID, service.CreateRecipeInput{
		Title:             req.Title,
		Instructions:      req.Instructions,
		MinutesToComplete: req.Minutes(),
	})
	if err != nil {
		middleware.WriteError(c, h.log, err)
		return
	}

	user, err := h.authService.CurrentUser(c.Request.Context(), userID)
	if err != nil {
		middleware.WriteError(c, h.log, err)
		return
	}

	h.log.Info("recipe created", "recipe_id", recipe.ID, "user_id", user.ID)
	c.JSON(http.StatusCreated, dto.RecipeCreateResponse{
		RecipeResponse: dto.ToRecipeResponse(recipe),
		User:           dto.ToUserResponse(user),
	})
}

// sessionUserID returns the user id of the request session, answering 401
// when there is none.
func sessionUserID(c *gin.Context) (int64, bool) {
	session, ok := middleware.GetSession(c)
	if !ok || !session.HasUser() {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: middleware.MsgPleaseLogin})
		return 0, false
	}
	return *session.UserID, true
}
