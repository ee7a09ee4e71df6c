package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestStore_GetOrLoad_DeduplicatesConcurrentLoads(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	var calls atomic.Int32

	loader := func(context.Context) (any, error) {
		calls.Add(1)
		time.Sleep(20 * time.Millisecond)
		return "value", nil
	}

	const workers = 32
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)
	errCh := make(chan error, workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			v, err := store.GetOrLoad(context.Background(), "players:list", loader)
			if err != nil {
				errCh <- err
				return
			}
			if got, _ := v.(string); got != "value" {
				errCh <- errors.New("unexpected loaded value")
			}
		}()
	}

	close(start)
	wg.Wait()
	close(errCh)
	for err := range errCh {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestStore_ExpiresEntries(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	store := NewStore(time.Minute)
	store.now = func() time.Time { return now }

	store.Set(context.Background(), "k", 1)
	if _, ok := store.Get(context.Background(), "k"); !ok {
		t.Fatalf("expected fresh entry")
	}

	now = now.Add(2 * time.Minute)
	if _, ok := store.Get(context.Background(), "k"); ok {
		t.Fatalf("expected expired entry to be dropped")
	}
	if store.Len() != 0 {
		t.Fatalf("expected expired entry to be removed, len=%d", store.Len())
	}
}

func TestStore_ErrorsAreNotCached(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	var calls atomic.Int32
	failing := func(context.Context) (int, error) {
		calls.Add(1)
		return 0, errors.New("boom")
	}

	for i := 0; i < 2; i++ {
		if _, err := Load(context.Background(), store, "k", failing); err == nil {
			t.Fatalf("expected loader error")
		}
	}
	if got := calls.Load(); got != 2 {
		t.Fatalf("loader called %d times, want 2", got)
	}
}

func TestStore_ObserverAndDeletePrefix(t *testing.T) {
	t.Parallel()

	var hits, misses atomic.Int32
	store := NewStore(time.Minute).WithObserver(func(namespace string, hit bool) {
		if namespace != "players" {
			t.Errorf("unexpected namespace %q", namespace)
		}
		if hit {
			hits.Add(1)
			return
		}
		misses.Add(1)
	})

	load := func(context.Context) (string, error) { return "v", nil }
	for i := 0; i < 3; i++ {
		if _, err := Load(context.Background(), store, "players:p1", load); err != nil {
			t.Fatalf("Load: %v", err)
		}
	}
	if hits.Load() != 2 || misses.Load() != 1 {
		t.Fatalf("hits=%d misses=%d", hits.Load(), misses.Load())
	}

	store.Set(context.Background(), "tournaments:t1", "x")
	store.DeletePrefix(context.Background(), "players:")
	if store.Len() != 1 {
		t.Fatalf("expected only tournament entry left, len=%d", store.Len())
	}
}

func TestLoad_TypeMismatch(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	store.Set(context.Background(), "k", "string")
	if _, err := Load(context.Background(), store, "k", func(context.Context) (int, error) { return 1, nil }); err == nil {
		t.Fatalf("expected type mismatch error")
	}
}

func TestStore_LoadStartedBeforeDeletePrefixIsNotStored(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewStore(time.Minute)
	started := make(chan struct{})
	release := make(chan struct{})

	done := make(chan string, 1)
	go func() {
		v, _ := Load(ctx, store, "players:list", func(context.Context) (string, error) {
			close(started)
			<-release
			return "before", nil
		})
		done <- v
	}()

	<-started
	store.DeletePrefix(ctx, "players:")

	// A caller arriving after the invalidation runs its own load.
	fresh, err := Load(ctx, store, "players:list", func(context.Context) (string, error) { return "after", nil })
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if fresh != "after" {
		t.Fatalf("got %q, want after", fresh)
	}

	close(release)
	if got := <-done; got != "before" {
		t.Fatalf("in-flight caller got %q, want before", got)
	}

	v, ok := store.Get(ctx, "players:list")
	if !ok || v != "after" {
		t.Fatalf("cached value = %v (ok=%v), want after", v, ok)
	}
}

func TestStore_DeleteUnrelatedPrefixKeepsLoad(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewStore(time.Minute)
	if _, err := Load(ctx, store, "players:list", func(context.Context) (string, error) {
		store.DeletePrefix(ctx, "tournaments:")
		return "v", nil
	}); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, ok := store.Get(ctx, "players:list"); !ok {
		t.Fatalf("expected load to be cached")
	}
}
