package jvm

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestNewPool_InvalidSize(t *testing.T) {
	// Size <= 0 should default to 1
	for _, size := range []int{0, -5} {
		if got := NewPool(size).Size(); got != 1 {
			t.Errorf("NewPool(%d).Size() = %d, want 1", size, got)
		}
	}
}

func TestPool_AcquireRelease(t *testing.T) {
	pool := NewPool(2)
	defer func() { _ = pool.Close() }()

	ctx := context.Background()

	if err := pool.Acquire(ctx); err != nil {
		t.Fatalf("Acquire 1 failed: %v", err)
	}
	if err := pool.Acquire(ctx); err != nil {
		t.Fatalf("Acquire 2 failed: %v", err)
	}

	// Third acquire should block - test with timeout
	ctx3, cancel := context.WithTimeout(ctx, 50*time.Millisecond)
	defer cancel()

	if err := pool.Acquire(ctx3); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected DeadlineExceeded, got %v", err)
	}

	// Release one and acquire again should work
	pool.Release()

	if err := pool.Acquire(ctx); err != nil {
		t.Fatalf("Acquire 3 failed: %v", err)
	}

	pool.Release()
	pool.Release()
}

func TestPool_Close_Idempotent(t *testing.T) {
	pool := NewPool(1)

	if err := pool.Close(); err != nil {
		t.Errorf("first Close failed: %v", err)
	}
	if err := pool.Close(); err != nil {
		t.Errorf("second Close failed: %v", err)
	}
	if err := pool.Acquire(context.Background()); !errors.Is(err, ErrPoolClosed) {
		t.Errorf("expected ErrPoolClosed, got %v", err)
	}
}

func TestPool_CloseWakesWaiters(t *testing.T) {
	pool := NewPool(1)
	if err := pool.Acquire(context.Background()); err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}

	errc := make(chan error, 1)
	go func() {
		errc <- pool.Acquire(context.Background())
	}()

	time.Sleep(20 * time.Millisecond)
	_ = pool.Close()

	select {
	case err := <-errc:
		if !errors.Is(err, ErrPoolClosed) {
			t.Errorf("expected ErrPoolClosed, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("waiter was not released by Close")
	}
}

func TestPool_Concurrent(t *testing.T) {
	pool := NewPool(3)
	defer func() { _ = pool.Close() }()

	var (
		wg      sync.WaitGroup
		active  atomic.Int32
		maxSeen atomic.Int32
	)
	for i := 0; i < 12; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := pool.Acquire(context.Background()); err != nil {
				t.Errorf("Acquire failed: %v", err)
				return
			}
			defer pool.Release()

			n := active.Add(1)
			for {
				m := maxSeen.Load()
				if n <= m || maxSeen.CompareAndSwap(m, n) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			active.Add(-1)
		}()
	}
	wg.Wait()

	if got := maxSeen.Load(); got > 3 {
		t.Errorf("observed %d concurrent holders, want <= 3", got)
	}
}
