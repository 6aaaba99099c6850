package jvm

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/sync/semaphore"
)

// ErrPoolClosed is returned by Acquire after Close.
var ErrPoolClosed = errors.New("jvm: pool is closed")

// Pool bounds the number of JVMs running at once.
type Pool struct {
	sem    *semaphore.Weighted
	size   int
	mu     sync.Mutex
	closed bool
	done   chan struct{}
}

// NewPool creates a pool admitting size concurrent launches.
func NewPool(size int) *Pool {
	if size <= 0 {
		size = 1
	}
	return &Pool{
		sem:  semaphore.NewWeighted(int64(size)),
		size: size,
		done: make(chan struct{}),
	}
}

// Acquire takes a slot, blocking until one is free.
// Respects context cancellation. Returns error if pool is closed.
func (p *Pool) Acquire(ctx context.Context) error {
	if p.isClosed() {
		return ErrPoolClosed
	}

	// Closing the pool must wake waiters.
	acquireCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-p.done:
			cancel()
		case <-acquireCtx.Done():
		}
	}()

	if err := p.sem.Acquire(acquireCtx, 1); err != nil {
		if p.isClosed() {
			return ErrPoolClosed
		}
		return err
	}
	if p.isClosed() {
		p.sem.Release(1)
		return ErrPoolClosed
	}
	return nil
}

// Release returns a slot taken by Acquire.
func (p *Pool) Release() {
	p.sem.Release(1)
}

// Close rejects further acquisitions. Launches already running finish.
func (p *Pool) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true
	close(p.done)
	return nil
}

// Size returns the pool size.
func (p *Pool) Size() int {
	return p.size
}

func (p *Pool) isClosed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}
