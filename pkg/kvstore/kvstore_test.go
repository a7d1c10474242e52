package kvstore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/bookverse/bookverse/pkg/config"
	"github.com/bookverse/bookverse/pkg/database"
	"github.com/bookverse/bookverse/pkg/migrations"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
)

func newTestDB(t *testing.T) *bun.DB {
	t.Helper()

	db, err := database.New(config.NewForTest())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = migrations.BringUpToDate(context.Background(), db)
	require.NoError(t, err)

	return db
}

func newBoltStore(t *testing.T) *BoltStore {
	t.Helper()

	s, err := NewBoltStore(filepath.Join(t.TempDir(), "nested", "bookverse.bolt"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStores(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		store func(t *testing.T) Store
	}{
		{"sql", func(t *testing.T) Store { return NewSQLStore(newTestDB(t)) }},
		{"bolt", func(t *testing.T) Store { return newBoltStore(t) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ctx := context.Background()
			s := tt.store(t)

			_, ok, err := s.Get(ctx, "library:items")
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, s.Set(ctx, "library:items", "[]"))
			v, ok, err := s.Get(ctx, "library:items")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "[]", v)

			require.NoError(t, s.Set(ctx, "library:items", `[{"id":"1"}]`))
			v, _, err = s.Get(ctx, "library:items")
			require.NoError(t, err)
			assert.Equal(t, `[{"id":"1"}]`, v)

			require.NoError(t, s.Set(ctx, "settings:tmdb_enabled", ""))
			v, ok, err = s.Get(ctx, "settings:tmdb_enabled")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Empty(t, v)
		})
	}
}

func TestBoltStore_PersistsAcrossReopen(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "bookverse.bolt")

	s, err := NewBoltStore(path)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, "k", "v"))
	require.NoError(t, s.Close())

	s, err = NewBoltStore(path)
	require.NoError(t, err)
	defer s.Close()

	v, ok, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", v)
}

func TestOpen(t *testing.T) {
	t.Parallel()

	cfg := config.NewForTest()
	s, err := Open(cfg, newTestDB(t))
	require.NoError(t, err)
	assert.IsType(t, &SQLStore{}, s)

	cfg = config.NewForTest()
	cfg.StorageDriver = config.StorageDriverBolt
	cfg.BoltFilePath = filepath.Join(t.TempDir(), "bookverse.bolt")
	s, err = Open(cfg, nil)
	require.NoError(t, err)
	defer s.Close()
	assert.IsType(t, &BoltStore{}, s)

	cfg.StorageDriver = "redis"
	_, err = Open(cfg, nil)
	assert.Error(t, err)
}
