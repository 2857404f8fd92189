package service

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/albertcheruiyot/recipebox/internal/infrastructure/sqlite"
)

func newTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func ptr[T any](v T) *T {
	return &v
}
