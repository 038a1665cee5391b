package redis

import (
	"context"
	"sync"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

var NilError = goredis.Nil

type Options = goredis.UniversalOptions

// Adapter is the thin redis surface this service needs: counters with TTLs
// for the fixed-window rate limiter, plus plain get/set for ad hoc state.
type Adapter interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	SetNX(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error)
	Del(ctx context.Context, key string) error
	Incr(ctx context.Context, key string) (int64, error)
	Expire(ctx context.Context, key string, ttl time.Duration) (bool, error)
	TTL(ctx context.Context, key string) (time.Duration, error)
	Ping(ctx context.Context) error
	Client() goredis.UniversalClient
}

type adapter struct {
	prefix string
	conn   goredis.UniversalClient
}

var (
	adapterLock sync.RWMutex
	instances   map[string]Adapter
)

// NewAdapter connects (or returns the already-connected adapter registered
// under connName). All keys are namespaced with keysPrefix.
func NewAdapter(connName string, keysPrefix string, opts *goredis.UniversalOptions) (Adapter, error) {
	adapterLock.RLock()
	if a, ok := instances[connName]; ok {
		adapterLock.RUnlock()
		return a, nil
	}
	adapterLock.RUnlock()

	c := goredis.NewUniversalClient(opts)
	if cmd := c.Ping(context.Background()); cmd.Err() != nil {
		return nil, cmd.Err()
	}

	a := &adapter{conn: c, prefix: keysPrefix}

	adapterLock.Lock()
	if instances == nil {
		instances = make(map[string]Adapter)
	}
	instances[connName] = a
	adapterLock.Unlock()

	return a, nil
}

// NewAdapterWithClient wraps an existing client. Used by tests with miniredis.
func NewAdapterWithClient(client goredis.UniversalClient, keysPrefix string) Adapter {
	return &adapter{conn: client, prefix: keysPrefix}
}

func (a *adapter) key(k string) string {
	if a.prefix == "" {
		return k
	}
	return a.prefix + ":" + k
}

func (a *adapter) Get(ctx context.Context, key string) ([]byte, error) {
	return a.conn.Get(ctx, a.key(key)).Bytes()
}

func (a *adapter) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return a.conn.Set(ctx, a.key(key), value, ttl).Err()
}

func (a *adapter) SetNX(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error) {
	return a.conn.SetNX(ctx, a.key(key), value, ttl).Result()
}

func (a *adapter) Del(ctx context.Context, key string) error {
	return a.conn.Del(ctx, a.key(key)).Err()
}

func (a *adapter) Incr(ctx context.Context, key string) (int64, error) {
	return a.conn.Incr(ctx, a.key(key)).Result()
}

func (a *adapter) Expire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	return a.conn.Expire(ctx, a.key(key), ttl).Result()
}

func (a *adapter) TTL(ctx context.Context, key string) (time.Duration, error) {
	return a.conn.TTL(ctx, a.key(key)).Result()
}

func (a *adapter) Ping(ctx context.Context) error {
	return a.conn.Ping(ctx).Err()
}

func (a *adapter) Client() goredis.UniversalClient {
	return a.conn
}
