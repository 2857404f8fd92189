package domain

import "time"

// MinInstructionsLength is the minimum number of characters a recipe's
// instructions must contain.
const MinInstructionsLength = 50

type Recipe struct {
	ID                int64     `db:"id"`
	UserID            int64     `db:"user_id"`
	Title             string    `db:"title"`
	Instructions      string    `db:"instructions"`
	MinutesToComplete int       `db:"minutes_to_complete"`
	CreatedAt         time.Time `db:"created_at"`
}

func NewRecipe(userID int64, title, instructions string, minutesToComplete int) *Recipe {
	return &Recipe{
		UserID:            userID,
		Title:             title,
		Instructions:      instructions,
		MinutesToComplete: minutesToComplete,
		CreatedAt:         time.Now().UTC(),
	}
}
