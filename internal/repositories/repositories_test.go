package repositories

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/desertthunder/listenr/internal/shared"
)

// setupTestDB creates an in-memory SQLite database with migrations applied
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, shared.RunMigrations(db))
	return db
}

func TestMetadataRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Get Missing", func(t *testing.T) {
		repo := NewMetadataRepository(setupTestDB(t))

		value, err := repo.Get(ctx, "nope")
		require.NoError(t, err)
		require.Nil(t, value)
	})

	t.Run("Set And Overwrite", func(t *testing.T) {
		repo := NewMetadataRepository(setupTestDB(t))

		require.NoError(t, repo.Set(ctx, "theme", []byte("dark")))
		require.NoError(t, repo.Set(ctx, "theme", []byte("light")))

		value, err := repo.Get(ctx, "theme")
		require.NoError(t, err)
		require.Equal(t, "light", string(value))
	})

	t.Run("Delete", func(t *testing.T) {
		repo := NewMetadataRepository(setupTestDB(t))

		require.NoError(t, repo.Set(ctx, "theme", []byte("dark")))
		require.NoError(t, repo.Delete(ctx, "theme"))
		require.NoError(t, repo.Delete(ctx, "theme"))

		value, err := repo.Get(ctx, "theme")
		require.NoError(t, err)
		require.Nil(t, value)
	})

	t.Run("Keys", func(t *testing.T) {
		repo := NewMetadataRepository(setupTestDB(t))

		require.NoError(t, repo.Set(ctx, "b", []byte("2")))
		require.NoError(t, repo.Set(ctx, "a", []byte("1")))

		keys, err := repo.Keys(ctx)
		require.NoError(t, err)
		require.Equal(t, []string{"a", "b"}, keys)
	})

	t.Run("Closed Database", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewMetadataRepository(db)
		db.Close()

		_, err := repo.Get(ctx, "theme")
		require.Error(t, err)
		require.Error(t, repo.Set(ctx, "theme", nil))
		require.Error(t, repo.Delete(ctx, "theme"))
		_, err = repo.Keys(ctx)
		require.Error(t, err)
	})
}

func TestTokenRepository(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewTokenRepository(db)

	token, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Empty(t, token)

	require.NoError(t, repo.Save(ctx, "abc.def.ghi"))

	token, err = repo.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, "abc.def.ghi", token)

	keys, err := NewMetadataRepository(db).Keys(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{TokenKey}, keys)

	require.NoError(t, repo.Clear(ctx))
	token, err = repo.Load(ctx)
	require.NoError(t, err)
	require.Empty(t, token)
}
