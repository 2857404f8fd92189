package sqlite

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/albertcheruiyot/recipebox/internal/core/domain"
	"github.com/albertcheruiyot/recipebox/internal/core/repository"
)

type recipeRepository struct {
	db *DB
}

func NewRecipeRepository(db *DB) repository.RecipeRepository {
	return &recipeRepository{db: db}
}

func (r *recipeRepository) Create(ctx context.Context, recipe *domain.Recipe) error {
	return WithTx(ctx, r.db, nil, func(ctx context.Context, tx *sqlx.Tx) error {
		var owners int
		if err := tx.GetContext(ctx, &owners, `SELECT COUNT(*) FROM user WHERE id = ?`, recipe.UserID); err != nil {
			return fmt.Errorf("failed to check recipe owner: %w", err)
		}
		if owners == 0 {
			return fmt.Errorf("user %d: %w", recipe.UserID, repository.ErrNotFound)
		}

		query := `
			INSERT INTO recipe (user_id, title, instructions, minutes_to_complete, created_at)
			VALUES (?, ?, ?, ?, ?)
		`
		result, err := tx.ExecContext(ctx, query,
			recipe.UserID,
			recipe.Title,
			recipe.Instructions,
			recipe.MinutesToComplete,
			recipe.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to create recipe: %w", err)
		}

		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get last insert id: %w", err)
		}
		recipe.ID = id

		return nil
	})
}

func (r *recipeRepository) ListByUser(ctx context.Context, userID int64) ([]*domain.Recipe, error) {
	query := `
		SELECT id, user_id, title, instructions, minutes_to_complete, created_at
		FROM recipe
		WHERE user_id = ?
		ORDER BY id
	`
	recipes := []*domain.Recipe{}
	if err := r.db.SelectContext(ctx, &recipes, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	return recipes, nil
}
