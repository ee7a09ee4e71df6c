// Package cache is an in-process TTL store used to decorate read-mostly
// repositories.
package cache

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Observer is notified of every lookup outcome, e.g. to feed metrics.
type Observer func(namespace string, hit bool)

type entry struct {
	value     any
	expiresAt time.Time
}

type Store struct {
	mu       sync.RWMutex
	entries  map[string]entry
	ttl      time.Duration
	flight   singleflight.Group
	observer Observer
	now      func() time.Time

	// generation is bumped on every invalidation; invalidated records the
	// generation at which each key or prefix was last dropped.
	generation  uint64
	invalidated map[string]uint64
}

func NewStore(ttl time.Duration) *Store {
	return &Store{
		entries:     make(map[string]entry),
		invalidated: make(map[string]uint64),
		ttl:         ttl,
		now:         time.Now,
	}
}

// WithObserver sets the lookup observer. Call before the store is shared.
func (s *Store) WithObserver(observer Observer) *Store {
	s.observer = observer
	return s
}

func (s *Store) Get(_ context.Context, key string) (any, bool) {
	if key == "" {
		return nil, false
	}

	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if s.expired(e) {
		s.mu.Lock()
		if cur, ok := s.entries[key]; ok && s.expired(cur) {
			delete(s.entries, key)
		}
		s.mu.Unlock()
		return nil, false
	}

	return e.value, true
}

func (s *Store) Set(_ context.Context, key string, value any) {
	if key == "" {
		return
	}

	s.mu.Lock()
	s.entries[key] = s.newEntry(value)
	s.mu.Unlock()
}

func (s *Store) Delete(_ context.Context, key string) {
	if key == "" {
		return
	}

	s.mu.Lock()
	s.generation++
	s.invalidated[key] = s.generation
	delete(s.entries, key)
	s.mu.Unlock()
}

// DeletePrefix drops every key under prefix. Loads for those keys that are
// still in flight finish for their own callers but are not stored.
func (s *Store) DeletePrefix(_ context.Context, prefix string) {
	if prefix == "" {
		return
	}

	s.mu.Lock()
	s.generation++
	s.invalidated[prefix] = s.generation
	for key := range s.entries {
		if strings.HasPrefix(key, prefix) {
			delete(s.entries, key)
		}
	}
	s.mu.Unlock()
}

// Len reports stored entries, including ones that expired but were not read.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// GetOrLoad returns the cached value for key or runs loader once across
// concurrent callers and caches a successful result. Errors are not cached.
func (s *Store) GetOrLoad(ctx context.Context, key string, loader func(context.Context) (any, error)) (any, error) {
	if loader == nil {
		return nil, fmt.Errorf("loader is required")
	}
	if key == "" {
		return loader(ctx)
	}

	if value, ok := s.Get(ctx, key); ok {
		s.observe(key, true)
		return value, nil
	}
	s.observe(key, false)

	// Callers arriving after an invalidation must not join a load that
	// started before it, so the flight key carries the key's epoch.
	epoch := s.epoch(key)
	value, err, _ := s.flight.Do(key+"@"+strconv.FormatUint(epoch, 10), func() (any, error) {
		if cached, ok := s.Get(ctx, key); ok {
			return cached, nil
		}

		loaded, loadErr := loader(ctx)
		if loadErr != nil {
			return nil, loadErr
		}
		s.setIfCurrent(key, loaded, epoch)
		return loaded, nil
	})
	if err != nil {
		return nil, err
	}

	return value, nil
}

// Load is a typed GetOrLoad.
func Load[T any](ctx context.Context, s *Store, key string, loader func(context.Context) (T, error)) (T, error) {
	var zero T
	value, err := s.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		return loader(ctx)
	})
	if err != nil {
		return zero, err
	}

	typed, ok := value.(T)
	if !ok {
		return zero, fmt.Errorf("cache key %s holds %T", key, value)
	}
	return typed, nil
}

func (s *Store) newEntry(value any) entry {
	e := entry{value: value}
	if s.ttl > 0 {
		e.expiresAt = s.now().Add(s.ttl)
	}
	return e
}

// epoch is the generation of the latest invalidation covering key.
func (s *Store) epoch(key string) uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.epochLocked(key)
}

func (s *Store) epochLocked(key string) uint64 {
	var latest uint64
	for prefix, gen := range s.invalidated {
		if gen > latest && strings.HasPrefix(key, prefix) {
			latest = gen
		}
	}
	return latest
}

// setIfCurrent stores value unless key was invalidated after epoch.
func (s *Store) setIfCurrent(key string, value any, epoch uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.epochLocked(key) != epoch {
		return false
	}
	s.entries[key] = s.newEntry(value)
	return true
}

func (s *Store) expired(e entry) bool {
	return s.ttl > 0 && !e.expiresAt.After(s.now())
}

func (s *Store) observe(key string, hit bool) {
	if s.observer == nil {
		return
	}
	namespace, _, _ := strings.Cut(key, ":")
	s.observer(namespace, hit)
}
