package service

import (
	"context"
	"errors"
	"unicode/utf8"

	"github.com/albertcheruiyot/recipebox/internal/core/domain"
	"github.com/albertcheruiyot/recipebox/internal/core/repository"
)

const (
	MsgTitleEmpty         = "The title should not be empty"
	MsgInstructionsShort  = "The instructions should be at least 50 characters long"
	MsgMinutesNotInteger  = "Minutes to complete should be an integer"
	MsgRecipeCreateFailed = "Failed to create recipe"
)

type RecipeService struct {
	recipeRepo repository.RecipeRepository
}

func NewRecipeService(recipeRepo repository.RecipeRepository) *RecipeService {
	return &RecipeService{
		recipeRepo: recipeRepo,
	}
}

// CreateRecipeInput is a recipe submission. MinutesToComplete is nil when the
// client sent something other than an integer.
type CreateRecipeInput struct {
	Title             string
	Instructions      string
	MinutesToComplete *int
}

// Validate checks the fields in submission order and reports the first
// violation.
func (in CreateRecipeInput) Validate() error {
	if in.Title == "" {
		return NewValidationError(MsgTitleEmpty)
	}
	if utf8.RuneCountInString(in.Instructions) < domain.MinInstructionsLength {
		return NewValidationError(MsgInstructionsShort)
	}
	if in.MinutesToComplete == nil {
		return NewValidationError(MsgMinutesNotInteger)
	}
	return nil
}

func (s *RecipeService) Create(ctx context.Context, userID int64, in CreateRecipeInput) (*domain.Recipe, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	recipe := domain.NewRecipe(userID, in.Title, in.Instructions, *in.MinutesToComplete)
	if err := s.recipeRepo.Create(ctx, recipe); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NewAuthError(MsgUserNotFound)
		}
		return nil, NewPersistenceError(MsgRecipeCreateFailed, err)
	}
	return recipe, nil
}

func (s *RecipeService) ListForUser(ctx context.Context, userID int64) ([]*domain.Recipe, error) {
	recipes, err := s.recipeRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, NewPersistenceError("Failed to list recipes", err)
	}
	return recipes, nil
}
