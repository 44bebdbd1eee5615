package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

var errUnexpectedValue = errors.New("unexpected value")

func TestStore_GetOrLoad_UsesSingleFlight(t *testing.T) {
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
			v, err := store.GetOrLoad(context.Background(), "same-key", loader)
			if err != nil {
				errCh <- err
				return
			}
			if got, _ := v.(string); got != "value" {
				errCh <- errUnexpectedValue
			}
		}()
	}

	close(start)
	wg.Wait()
	close(errCh)
	for err := range errCh {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestStore_GetOrLoad_UsesCachedValueAfterFirstLoad(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	var calls atomic.Int32

	loader := func(context.Context) (any, error) {
		calls.Add(1)
		return 42, nil
	}

	for i := 0; i < 3; i++ {
		v, err := store.GetOrLoad(context.Background(), "key", loader)
		if err != nil {
			t.Fatalf("get or load: %v", err)
		}
		if got, _ := v.(int); got != 42 {
			t.Fatalf("unexpected value: %v", v)
		}
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestStore_DeletePrefix(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	ctx := context.Background()

	store.Set(ctx, "standings:39:2024", "a")
	store.Set(ctx, "standings:61:2024", "b")
	store.Set(ctx, "league:list", "c")

	store.DeletePrefix(ctx, "standings:")

	if _, ok := store.Get(ctx, "standings:39:2024"); ok {
		t.Fatalf("expected standings keys to be deleted")
	}
	if _, ok := store.Get(ctx, "league:list"); !ok {
		t.Fatalf("expected unrelated key to survive")
	}
}

func TestStore_ExpiredEntryIsEvicted(t *testing.T) {
	t.Parallel()

	store := NewStore(10 * time.Millisecond)
	ctx := context.Background()

	store.Set(ctx, "key", "value")
	time.Sleep(25 * time.Millisecond)

	if _, ok := store.Get(ctx, "key"); ok {
		t.Fatalf("expected entry to expire")
	}
}
