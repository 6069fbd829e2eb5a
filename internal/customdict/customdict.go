// Package customdict stores user words that the spell checker must keep as
// typed.
package customdict

import (
	"context"
	"strings"

	"github.com/redis/go-redis/v9"
)

const DefaultKey = "custom_dict"

// CustomDict keeps a Redis set of custom words.
type CustomDict struct {
	client redis.Cmdable
	key    string
}

// New creates a CustomDict on the default key.
func New(client redis.Cmdable) *CustomDict {
	return NewWithKey(client, DefaultKey)
}

func NewWithKey(client redis.Cmdable, key string) *CustomDict {
	return &CustomDict{client: client, key: key}
}

// Add inserts a word into the custom dictionary. Words are stored lowercased.
func (cd *CustomDict) Add(ctx context.Context, word string) error {
	return cd.client.SAdd(ctx, cd.key, strings.ToLower(word)).Err()
}

// Remove deletes a word from the custom dictionary.
func (cd *CustomDict) Remove(ctx context.Context, word string) error {
	return cd.client.SRem(ctx, cd.key, strings.ToLower(word)).Err()
}

// All returns all words stored in the custom dictionary.
func (cd *CustomDict) All(ctx context.Context) ([]string, error) {
	return cd.client.SMembers(ctx, cd.key).Result()
}

func (cd *CustomDict) Contains(ctx context.Context, word string) (bool, error) {
	return cd.client.SIsMember(ctx, cd.key, strings.ToLower(word)).Result()
}
