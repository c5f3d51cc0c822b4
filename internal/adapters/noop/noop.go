package noop

import (
	"context"
	"time"

	"github.com/Hilal-Ahmad786/Blogweb/pkg/interfaces"
)

// Cache returns an interfaces.CacheProvider that stores nothing. Every Get
// is a miss.
func Cache() interfaces.CacheProvider {
	return cacheAdapter{}
}

type cacheAdapter struct{}

func (cacheAdapter) Get(context.Context, string) (any, error) {
	return nil, nil
}

func (cacheAdapter) Set(context.Context, string, any, time.Duration) error {
	return nil
}

func (cacheAdapter) Delete(context.Context, string) error {
	return nil
}

func (cacheAdapter) Clear(context.Context) error {
	return nil
}
