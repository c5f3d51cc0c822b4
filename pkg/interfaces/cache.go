package interfaces

import (
	"context"
	"time"
)

// CacheProvider stores values by key. Implementations may ignore ttl when
// expiry is configured globally.
type CacheProvider interface {
	Get(ctx context.Context, key string) (any, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
