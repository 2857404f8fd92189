package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/albertcheruiyot/recipebox/internal/core/domain"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func seedUser(t *testing.T, db *DB, username string) *domain.User {
	t.Helper()
	user := domain.NewUser(username, "$2a$10$hash", nil, nil)
	require.NoError(t, NewUserRepository(db).Create(context.Background(), user))
	return user
}

func ptr[T any](v T) *T {
	return &v
}
