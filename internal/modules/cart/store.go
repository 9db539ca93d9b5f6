package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// Store persists cart lines per session key.
type Store interface {
	Load(ctx context.Context, key string) ([]Item, error)
	Save(ctx context.Context, key string, items []Item) error
	Delete(ctx context.Context, key string) error
}

// MemoryStore keeps carts in process. Like RedisStore, a cart expires ttl
// after its last write; a zero ttl keeps carts until they are deleted.
type MemoryStore struct {
	mu    sync.RWMutex
	ttl   time.Duration
	now   func() time.Time
	carts map[string]memoryCart
}

type memoryCart struct {
	items     []Item
	expiresAt time.Time
}

func (c memoryCart) expired(now time.Time) bool {
	return !c.expiresAt.IsZero() && !now.Before(c.expiresAt)
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{ttl: ttl, now: time.Now, carts: make(map[string]memoryCart)}
}

func (m *MemoryStore) Load(_ context.Context, key string) ([]Item, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.carts[key]
	if !ok || c.expired(m.now()) {
		return []Item{}, nil
	}
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out, nil
}

func (m *MemoryStore) Save(_ context.Context, key string, items []Item) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(items) == 0 {
		delete(m.carts, key)
		return nil
	}
	c := memoryCart{items: make([]Item, len(items))}
	copy(c.items, items)
	if m.ttl > 0 {
		c.expiresAt = m.now().Add(m.ttl)
	}
	m.carts[key] = c
	return nil
}

// DeleteExpired drops carts whose ttl has passed and reports how many.
func (m *MemoryStore) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for key, c := range m.carts {
		if c.expired(now) {
			delete(m.carts, key)
			n++
		}
	}
	return n, nil
}

// Len is the number of carts held, expired ones included.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.carts)
}

func (m *MemoryStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.carts, key)
	return nil
}

// RedisStore keeps each cart as a JSON document that expires with the session.
type RedisStore struct {
	rdb    *redis.Client
	prefix string
	ttl    time.Duration
}

func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, prefix: "portal:cart:", ttl: ttl}
}

// NewRedisStoreFromURL parses a redis:// URL.
func NewRedisStoreFromURL(rawURL string, ttl time.Duration) (*RedisStore, error) {
	opt, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("cart: parse REDIS_URL: %w", err)
	}
	return NewRedisStore(redis.NewClient(opt), ttl), nil
}

func (r *RedisStore) Load(ctx context.Context, key string) ([]Item, error) {
	b, err := r.rdb.Get(ctx, r.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cart: redis get: %w", err)
	}
	var items []Item
	if err := json.Unmarshal(b, &items); err != nil {
		return nil, fmt.Errorf("cart: decode: %w", err)
	}
	return items, nil
}

func (r *RedisStore) Save(ctx context.Context, key string, items []Item) error {
	if len(items) == 0 {
		return r.Delete(ctx, key)
	}
	b, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("cart: encode: %w", err)
	}
	return r.rdb.Set(ctx, r.prefix+key, b, r.ttl).Err()
}

func (r *RedisStore) Delete(ctx context.Context, key string) error {
	return r.rdb.Del(ctx, r.prefix+key).Err()
}

func (r *RedisStore) Close() error { return r.rdb.Close() }
