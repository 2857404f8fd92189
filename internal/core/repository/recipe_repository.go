package repository

import (
	"context"

	"github.com/albertcheruiyot/recipebox/internal/core/domain"
)

type RecipeRepository interface {
	// Create inserts the recipe in a transaction that also checks the owner
	// exists. Nothing is written if either step fails.
	Create(ctx context.Context, recipe *domain.Recipe) error
	ListByUser(ctx context.Context, userID int64) ([]*domain.Recipe, error)
}
