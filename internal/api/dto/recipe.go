package dto

import (
	"bytes"
	"encoding/json"

	"github.com/albertcheruiyot/recipebox/internal/core/domain"
)

// CreateRecipeRequest represents the recipe creation request.
// MinutesToComplete is kept raw so that floats and strings can be told apart
// from integers.
type CreateRecipeRequest struct {
	Title             string          `json:"title"`
	Instructions      string          `json:"instructions"`
	MinutesToComplete json.RawMessage `json:"minutes_to_complete" swaggertype:"integer"`
}

// Minutes returns minutes_to_complete if it is a JSON integer, nil otherwise.
func (r *CreateRecipeRequest) Minutes() *int {
	raw := bytes.TrimSpace(r.MinutesToComplete)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}

	var minutes int
	if err := json.Unmarshal(raw, &minutes); err != nil {
		return nil
	}
	return &minutes
}

// RecipeResponse represents a recipe
type RecipeResponse struct {
	ID                int64  `json:"id"`
	Title             string `json:"title"`
	Instructions      string `json:"instructions"`
	MinutesToComplete int    `json:"minutes_to_complete"`
	UserID            int64  `json:"user_id"`
}

// RecipeListResponse is returned by GET /recipes
type RecipeListResponse struct {
	Recipes []RecipeResponse `json:"recipes"`
	User    UserResponse     `json:"user"`
}

// RecipeCreateResponse is returned by POST /recipes
type RecipeCreateResponse struct {
	RecipeResponse
	User UserResponse `json:"user"`
}

func ToRecipeResponse(recipe *domain.Recipe) RecipeResponse {
	return RecipeResponse{
		ID:                recipe.ID,
		Title:             recipe.Title,
		Instructions:      recipe.Instructions,
		MinutesToComplete: recipe.MinutesToComplete,
		UserID:            recipe.UserID,
	}
}

func ToRecipeResponses(recipes []*domain.Recipe) []RecipeResponse {
	items := make([]RecipeResponse, 0, len(recipes))
	for _, recipe := range recipes {
		items = append(items, ToRecipeResponse(recipe))
	}
	return items
}
