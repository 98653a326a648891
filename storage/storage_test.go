package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eTEats_recipes/config"
)

// exerciseStore checks the contract every driver must satisfy.
func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	_, ok, err := s.Get(ctx, "bookmarks")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(ctx, "bookmarks", `[{"id":"a"}]`))
	v, ok, err := s.Get(ctx, "bookmarks")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"id":"a"}]`, v)

	require.NoError(t, s.Set(ctx, "bookmarks", `[]`))
	v, _, err = s.Get(ctx, "bookmarks")
	require.NoError(t, err)
	assert.Equal(t, `[]`, v)

	require.NoError(t, s.Delete(ctx, "bookmarks"))
	_, ok, err = s.Get(ctx, "bookmarks")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Delete(ctx, "never-set"))
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestFileStore(t *testing.T) {
	exerciseStore(t, NewFileStore(filepath.Join(t.TempDir(), "nested", "storage.json")))
}

func TestFileStore_PersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storage.json")
	ctx := context.Background()

	require.NoError(t, NewFileStore(path).Set(ctx, "location", "abc"))
	v, ok, err := NewFileStore(path).Get(ctx, "location")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "abc", v)
}

func TestFileStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storage.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, _, err := NewFileStore(path).Get(context.Background(), "bookmarks")
	require.Error(t, err)
}

func TestRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	s := NewRedisStore(client, "eteats:")
	exerciseStore(t, s)

	require.NoError(t, s.Set(context.Background(), "location", "xyz"))
	got, err := mr.Get("eteats:location")
	require.NoError(t, err)
	assert.Equal(t, "xyz", got)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	s, closeFn, err := Open(ctx, config.StorageConfig{Driver: "memory"})
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, s)
	assert.NoError(t, closeFn())

	path := filepath.Join(t.TempDir(), "s.json")
	s, _, err = Open(ctx, config.StorageConfig{Driver: "file", Path: path})
	require.NoError(t, err)
	assert.Equal(t, path, s.(*FileStore).Path())

	mr := miniredis.RunT(t)
	s, closeFn, err = Open(ctx, config.StorageConfig{Driver: "redis", RedisAddress: mr.Addr(), RedisPrefix: "p:"})
	require.NoError(t, err)
	assert.IsType(t, &RedisStore{}, s)
	assert.NoError(t, closeFn())

	_, closeFn, err = Open(ctx, config.StorageConfig{Driver: "etcd"})
	require.Error(t, err)
	assert.NotNil(t, closeFn)
}
