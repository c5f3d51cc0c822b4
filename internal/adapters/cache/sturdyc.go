// Package cache provides an in-memory interfaces.CacheProvider backed by
// sturdyc.
package cache

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/viccon/sturdyc"

	"github.com/Hilal-Ahmad786/Blogweb/pkg/interfaces"
)

// ErrMiss is returned by Get when the key is absent or expired.
var ErrMiss = errors.New("cache: miss")

const (
	defaultCapacity           = 1024
	defaultShards             = 8
	defaultTTL                = 30 * time.Minute
	defaultEvictionPercentage = 10
)

// Config sizes the cache. Zero values select the defaults.
type Config struct {
	Capacity int
	Shards   int
	TTL      time.Duration
}

// Provider adapts a sturdyc client. The TTL is fixed per client, so the
// ttl passed to Set is ignored.
type Provider struct {
	cfg    Config
	mu     sync.RWMutex
	client *sturdyc.Client[any]
}

var _ interfaces.CacheProvider = (*Provider)(nil)

// New constructs a Provider.
func New(cfg Config) *Provider {
	if cfg.Capacity <= 0 {
		cfg.Capacity = defaultCapacity
	}
	if cfg.Shards <= 0 {
		cfg.Shards = defaultShards
	}
	if cfg.TTL <= 0 {
		cfg.TTL = defaultTTL
	}
	return &Provider{cfg: cfg, client: newClient(cfg)}
}

func newClient(cfg Config) *sturdyc.Client[any] {
	return sturdyc.New[any](cfg.Capacity, cfg.Shards, cfg.TTL, defaultEvictionPercentage)
}

func (p *Provider) current() *sturdyc.Client[any] {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.client
}

func (p *Provider) Get(_ context.Context, key string) (any, error) {
	value, ok := p.current().Get(key)
	if !ok {
		return nil, ErrMiss
	}
	return value, nil
}

func (p *Provider) Set(_ context.Context, key string, value any, _ time.Duration) error {
	p.current().Set(key, value)
	return nil
}

func (p *Provider) Delete(_ context.Context, key string) error {
	p.current().Delete(key)
	return nil
}

// Clear swaps in an empty client.
func (p *Provider) Clear(context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.client = newClient(p.cfg)
	return nil
}
