package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
)

// ErrMiss is returned by HandleHitCache when the key is absent.
var ErrMiss = errors.New("cache miss")

// HandleHitCache loads a key and unmarshals it into model.
func HandleHitCache(ctx context.Context, model any, c Engine, key string) error {
	byteData, exists, err := c.Get(ctx, key)
	if err != nil {
		return errors.Wrap(err, "get cache")
	}
	if !exists {
		return ErrMiss
	}
	if err := json.Unmarshal(byteData, model); err != nil {
		return errors.Wrap(err, "failed to unmarshal cache")
	}
	return nil
}

// HandleSetCache handles cache set
func HandleSetCache(ctx context.Context, model any, c Engine, key string, ttl time.Duration) error {
	return c.Set(ctx, key, model, ttl)
}

// HandleDeleteCache handles cache delete
func HandleDeleteCache(ctx context.Context, c Engine, key string) error {
	return c.Delete(ctx, key)
}
