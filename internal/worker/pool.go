// Package worker runs background tasks on a fixed set of goroutines.
package worker

import (
	"context"
	"errors"
	"sync"
)

var (
	ErrPoolStopped = errors.New("worker pool stopped")
	ErrQueueFull   = errors.New("worker queue full")
)

type Task func(ctx context.Context)

type Pool struct {
	wg     sync.WaitGroup
	mu     sync.RWMutex
	jobs   chan Task
	ctx    context.Context
	cancel context.CancelFunc
	closed bool
	depth  func(int)
}

type Option func(*Pool)

// WithDepthObserver reports the queue length after every submit and dequeue.
func WithDepthObserver(fn func(int)) Option {
	return func(p *Pool) { p.depth = fn }
}

func NewPool(workers, queueSize int, opts ...Option) *Pool {
	if workers < 1 {
		workers = 1
	}
	if queueSize < 1 {
		queueSize = 1024
	}
	ctx, cancel := context.WithCancel(context.Background())
	p := &Pool{
		jobs:   make(chan Task, queueSize),
		ctx:    ctx,
		cancel: cancel,
		depth:  func(int) {},
	}
	for _, opt := range opts {
		opt(p)
	}

	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for job := range p.jobs {
				p.depth(len(p.jobs))
				job(p.ctx)
			}
		}()
	}
	return p
}

// Submit enqueues f without blocking.
func (p *Pool) Submit(f Task) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return ErrPoolStopped
	}
	select {
	case p.jobs <- f:
		p.depth(len(p.jobs))
		return nil
	default:
		return ErrQueueFull
	}
}

// Stop rejects new work and waits for queued tasks to finish. If ctx ends
// first, running tasks see their context cancelled and Stop returns
// ctx.Err() once they exit.
func (p *Pool) Stop(ctx context.Context) error {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.jobs)
	}
	p.mu.Unlock()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		p.cancel()
		return nil
	case <-ctx.Done():
		p.cancel()
		<-done
		return ctx.Err()
	}
}
