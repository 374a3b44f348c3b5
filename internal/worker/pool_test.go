package worker

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPool_RunsSubmittedTasks(t *testing.T) {
	p := NewPool(4, 16)

	var ran int32
	for i := 0; i < 10; i++ {
		require.NoError(t, p.Submit(func(ctx context.Context) {
			atomic.AddInt32(&ran, 1)
		}))
	}

	require.NoError(t, p.Stop(context.Background()))
	assert.EqualValues(t, 10, atomic.LoadInt32(&ran))
}

func TestPool_SubmitAfterStop(t *testing.T) {
	p := NewPool(1, 1)
	require.NoError(t, p.Stop(context.Background()))

	err := p.Submit(func(context.Context) {})
	assert.ErrorIs(t, err, ErrPoolStopped)
}

func TestPool_QueueFull(t *testing.T) {
	p := NewPool(1, 1)
	release := make(chan struct{})
	started := make(chan struct{})

	require.NoError(t, p.Submit(func(context.Context) {
		close(started)
		<-release
	}))
	<-started
	require.NoError(t, p.Submit(func(context.Context) {}))

	err := p.Submit(func(context.Context) {})
	assert.ErrorIs(t, err, ErrQueueFull)

	close(release)
	require.NoError(t, p.Stop(context.Background()))
}

func TestPool_StopDeadlineCancelsTasks(t *testing.T) {
	p := NewPool(1, 1)
	cancelled := make(chan struct{})

	require.NoError(t, p.Submit(func(ctx context.Context) {
		<-ctx.Done()
		close(cancelled)
	}))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := p.Stop(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	<-cancelled
}

func TestPool_DepthObserver(t *testing.T) {
	var calls int32
	p := NewPool(1, 8, WithDepthObserver(func(int) {
		atomic.AddInt32(&calls, 1)
	}))

	require.NoError(t, p.Submit(func(context.Context) {}))
	require.NoError(t, p.Stop(context.Background()))

	// Once on submit, once when the worker picks the task up.
	assert.EqualValues(t, 2, atomic.LoadInt32(&calls))
}
