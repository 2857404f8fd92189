package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albertcheruiyot/recipebox/internal/core/domain"
	"github.com/albertcheruiyot/recipebox/internal/infrastructure/sqlite"
)

type failingRecipeRepository struct {
	err error
}

func (r *failingRecipeRepository) Create(ctx context.Context, recipe *domain.Recipe) error {
	return r.err
}

func (r *failingRecipeRepository) ListByUser(ctx context.Context, userID int64) ([]*domain.Recipe, error) {
	return nil, r.err
}

func TestCreateRecipeInput_Validate(t *testing.T) {
	fifty := strings.Repeat("a", 50)

	tests := []struct {
		name    string
		input   CreateRecipeInput
		wantMsg string
	}{
		{
			name:  "valid",
			input: CreateRecipeInput{Title: "Soup", Instructions: fifty, MinutesToComplete: ptr(10)},
		},
		{
			name:    "empty title",
			input:   CreateRecipeInput{Title: "", Instructions: fifty, MinutesToComplete: ptr(10)},
			wantMsg: MsgTitleEmpty,
		},
		{
			name:    "49 characters of instructions",
			input:   CreateRecipeInput{Title: "Soup", Instructions: fifty[:49], MinutesToComplete: ptr(10)},
			wantMsg: MsgInstructionsShort,
		},
		{
			name:    "instructions counted in characters not bytes",
			input:   CreateRecipeInput{Title: "Soup", Instructions: strings.Repeat("é", 49), MinutesToComplete: ptr(10)},
			wantMsg: MsgInstructionsShort,
		},
		{
			name:    "minutes not an integer",
			input:   CreateRecipeInput{Title: "Soup", Instructions: fifty},
			wantMsg: MsgMinutesNotInteger,
		},
		{
			name:    "title is checked before instructions",
			input:   CreateRecipeInput{Instructions: "short"},
			wantMsg: MsgTitleEmpty,
		},
		{
			name:    "instructions are checked before minutes",
			input:   CreateRecipeInput{Title: "Soup", Instructions: "short"},
			wantMsg: MsgInstructionsShort,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.input.Validate()
			if tt.wantMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, KindValidation, KindOf(err))
			assert.EqualError(t, err, tt.wantMsg)
		})
	}
}

func TestRecipeService_CreateAndList(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	user := domain.NewUser("chef1", "hash", nil, nil)
	require.NoError(t, sqlite.NewUserRepository(db).Create(ctx, user))

	s := NewRecipeService(sqlite.NewRecipeRepository(db))
	recipe, err := s.Create(ctx, user.ID, CreateRecipeInput{
		Title:             "Soup",
		Instructions:      strings.Repeat("a", 50),
		MinutesToComplete: ptr(10),
	})
	require.NoError(t, err)
	assert.NotZero(t, recipe.ID)
	assert.Equal(t, user.ID, recipe.UserID)

	recipes, err := s.ListForUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, recipes, 1)
	assert.Equal(t, recipe.ID, recipes[0].ID)
}

func TestRecipeService_CreateUnknownUser(t *testing.T) {
	s := NewRecipeService(sqlite.NewRecipeRepository(newTestDB(t)))

	_, err := s.Create(context.Background(), 404, CreateRecipeInput{
		Title:             "Soup",
		Instructions:      strings.Repeat("a", 50),
		MinutesToComplete: ptr(10),
	})
	assert.Equal(t, KindAuth, KindOf(err))
}

func TestRecipeService_PersistenceFailure(t *testing.T) {
	cause := errors.New("database is locked")
	s := NewRecipeService(&failingRecipeRepository{err: cause})

	_, err := s.Create(context.Background(), 1, CreateRecipeInput{
		Title:             "Soup",
		Instructions:      strings.Repeat("a", 50),
		MinutesToComplete: ptr(10),
	})
	require.Error(t, err)
	assert.Equal(t, KindPersistence, KindOf(err))
	assert.ErrorIs(t, err, cause)

	_, err = s.ListForUser(context.Background(), 1)
	assert.Equal(t, KindPersistence, KindOf(err))
}
