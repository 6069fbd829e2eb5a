package channel

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tablesYAML = `
deletion:
  ll: 6
  "#c": 2
substitution:
  yi: 15
transposition: {}
`

func TestDecodeTables(t *testing.T) {
	tables, err := DecodeTables(strings.NewReader(tablesYAML))
	require.NoError(t, err)

	assert.Equal(t, 6, tables.Count(Deletion, "ll"))
	assert.Equal(t, 2, tables.Count(Deletion, "#c"))
	assert.Equal(t, 15, tables.Count(Substitution, "yi"))
	assert.Zero(t, tables.Count(Insertion, "ll"))
	assert.Equal(t, 2, tables.Len(Deletion))
	assert.Zero(t, tables.Len(Transposition))
}

func TestDecodeTablesRejectsUnknownKind(t *testing.T) {
	_, err := DecodeTables(strings.NewReader("swap:\n  ab: 1\n"))
	assert.ErrorIs(t, err, ErrUnknownErrorKind)
}

func TestDecodeTablesEmpty(t *testing.T) {
	tables, err := DecodeTables(strings.NewReader(""))
	require.NoError(t, err)
	assert.Zero(t, tables.Count(Deletion, "ll"))
}

func TestLoadTables(t *testing.T) {
	path := filepath.Join(t.TempDir(), "errors.yaml")
	require.NoError(t, os.WriteFile(path, []byte(tablesYAML), 0o644))

	tables, err := LoadTables(path)
	require.NoError(t, err)
	assert.Equal(t, 15, tables.Count(Substitution, "yi"))

	_, err = LoadTables(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestNilTables(t *testing.T) {
	var tables *ErrorTables
	assert.Zero(t, tables.Count(Deletion, "ll"))
	assert.Empty(t, tables.Raw())
}

func TestTablesAreCopied(t *testing.T) {
	raw := map[string]map[string]int{"insertion": {"ab": 1}}
	tables, err := NewTables(raw)
	require.NoError(t, err)
	raw["insertion"]["ab"] = 99
	assert.Equal(t, 1, tables.Count(Insertion, "ab"))
}

func redisClient(t *testing.T) *redis.Client {
	t.Helper()
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	prefix := "test:" + t.Name() + ":"
	t.Cleanup(func() {
		for _, k := range Kinds() {
			rdb.Del(context.Background(), prefix+k.String())
		}
		rdb.Close()
	})
	return rdb
}

func TestRedisTables(t *testing.T) {
	rdb := redisClient(t)
	ctx := context.Background()
	prefix := "test:" + t.Name() + ":"

	want, err := DecodeTables(strings.NewReader(tablesYAML))
	require.NoError(t, err)
	require.NoError(t, StoreRedisTables(ctx, rdb, prefix, want))

	got, err := LoadRedisTables(ctx, rdb, prefix)
	require.NoError(t, err)
	assert.Equal(t, 6, got.Count(Deletion, "ll"))
	assert.Equal(t, 15, got.Count(Substitution, "yi"))
	assert.Zero(t, got.Count(Insertion, "ab"))
}

func TestRedisTablesReplaceOnStore(t *testing.T) {
	rdb := redisClient(t)
	ctx := context.Background()
	prefix := "test:" + t.Name() + ":"

	first, err := NewTables(map[string]map[string]int{
		"deletion":  {"ll": 6, "ss": 2},
		"insertion": {"ab": 1},
	})
	require.NoError(t, err)
	require.NoError(t, StoreRedisTables(ctx, rdb, prefix, first))

	second, err := NewTables(map[string]map[string]int{"deletion": {"ll": 7}})
	require.NoError(t, err)
	require.NoError(t, StoreRedisTables(ctx, rdb, prefix, second))

	got, err := LoadRedisTables(ctx, rdb, prefix)
	require.NoError(t, err)
	assert.Equal(t, 7, got.Count(Deletion, "ll"))
	assert.Zero(t, got.Count(Deletion, "ss"))
	assert.Zero(t, got.Count(Insertion, "ab"))
	assert.Equal(t, 1, got.Len(Deletion))
	assert.Zero(t, got.Len(Insertion))
}
