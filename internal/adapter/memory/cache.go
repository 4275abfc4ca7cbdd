package memory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	portidem "github.com/alanyang/assignit/internal/port/idempotency"
)

var ErrNotFound = errors.New("cache: not found")

type cacheEntry struct {
	value     []byte
	expiresAt time.Time
}

// Cache is a TTL map of byte values.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
	now     func() time.Time
}

func NewCache() *Cache {
	return &Cache{
		entries: make(map[string]cacheEntry),
		now:     time.Now,
	}
}

func (c *Cache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return nil, ErrNotFound
	}
	if c.now().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return nil, ErrNotFound
	}
	return entry.value, nil
}

func (c *Cache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	c.entries[key] = cacheEntry{
		value:     value,
		expiresAt: c.now().Add(ttl),
	}
	c.mu.Unlock()
	return nil
}

// SetNX stores value only when key has no live entry. It reports whether it stored.
func (c *Cache) SetNX(_ context.Context, key string, value []byte, ttl time.Duration) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	if entry, ok := c.entries[key]; ok && !now.After(entry.expiresAt) {
		return false
	}
	c.entries[key] = cacheEntry{value: value, expiresAt: now.Add(ttl)}
	return true
}

func (c *Cache) Invalidate(_ context.Context, key string) error {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
	return nil
}

// Purge drops every expired entry and returns how many were removed.
func (c *Cache) Purge() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	n := 0
	for k, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, k)
			n++
		}
	}
	return n
}

// ── Idempotency ───────────────────────────────────────────────────────────────

var _ portidem.Store = (*IdempotencyStore)(nil)

// IdempotencyStore keeps handler responses in a Cache for ttl.
type IdempotencyStore struct {
	cache *Cache
	ttl   time.Duration
}

func NewIdempotencyStore(cache *Cache, ttl time.Duration) *IdempotencyStore {
	return &IdempotencyStore{cache: cache, ttl: ttl}
}

func (s *IdempotencyStore) Check(ctx context.Context, key string) (portidem.Response, bool, error) {
	raw, err := s.cache.Get(ctx, key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return portidem.Response{}, false, nil
		}
		return portidem.Response{}, false, fmt.Errorf("checking idempotency key: %w", err)
	}
	var resp portidem.Response
	if err := json.Unmarshal(raw, &resp); err != nil {
		return portidem.Response{}, false, fmt.Errorf("decoding idempotency entry: %w", err)
	}
	return resp, true, nil
}

func (s *IdempotencyStore) Save(ctx context.Context, key, _ string, resp portidem.Response) error {
	raw, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("encoding idempotency entry: %w", err)
	}
	s.cache.SetNX(ctx, key, raw, s.ttl)
	return nil
}

// Purge drops expired responses.
func (s *IdempotencyStore) Purge(_ context.Context) (int64, error) {
	return int64(s.cache.Purge()), nil
}
