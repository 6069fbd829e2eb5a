package channel

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisPrefix namespaces the per kind hashes, e.g. "errtable:deletion".
const DefaultRedisPrefix = "errtable:"

// LoadRedisTables reads one hash per error kind mapping signature to count.
// Missing hashes load as empty tables.
func LoadRedisTables(ctx context.Context, rdb redis.Cmdable, prefix string) (*ErrorTables, error) {
	raw := make(map[string]map[string]int)
	for _, kind := range Kinds() {
		fields, err := rdb.HGetAll(ctx, prefix+kind.String()).Result()
		if err != nil {
			return nil, fmt.Errorf("load %s table: %w", kind, err)
		}
		table := make(map[string]int, len(fields))
		for sig, v := range fields {
			n, err := strconv.Atoi(v)
			if err != nil {
				return nil, fmt.Errorf("load %s table: signature %q: %w", kind, sig, err)
			}
			table[sig] = n
		}
		raw[kind.String()] = table
	}
	return NewTables(raw)
}

// StoreRedisTables replaces the hashes read by LoadRedisTables with t. The
// old hashes are deleted in the same transaction, so signatures missing from
// t do not survive.
func StoreRedisTables(ctx context.Context, rdb redis.Cmdable, prefix string, t *ErrorTables) error {
	raw := t.Raw()
	_, err := rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, kind := range Kinds() {
			key := prefix + kind.String()
			pipe.Del(ctx, key)
			table := raw[kind.String()]
			if len(table) == 0 {
				continue
			}
			values := make(map[string]interface{}, len(table))
			for sig, n := range table {
				values[sig] = n
			}
			pipe.HSet(ctx, key, values)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("store error tables: %w", err)
	}
	return nil
}
