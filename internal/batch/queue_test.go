package batch

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestQueue(t *testing.T, cfg Config) *Queue {
	t.Helper()
	q := New(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)), nil)
	t.Cleanup(func() { _ = q.Close(context.Background()) })
	return q
}

func TestQueue_SubmitReturnsValue(t *testing.T) {
	q := newTestQueue(t, Config{FlushInterval: 10 * time.Millisecond})

	f := Submit(q, func(context.Context) (string, error) { return "ok", nil })

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	v, err := f.Wait(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ok", v)
}

func TestQueue_FailuresAreIsolated(t *testing.T) {
	q := newTestQueue(t, Config{FlushInterval: 10 * time.Millisecond})
	boom := errors.New("boom")

	failing := Submit(q, func(context.Context) (int, error) { return 0, boom })
	panicking := Submit(q, func(context.Context) (int, error) { panic("kaboom") })
	healthy := Submit(q, func(context.Context) (int, error) { return 7, nil })

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := failing.Wait(ctx)
	assert.ErrorIs(t, err, boom)

	_, err = panicking.Wait(ctx)
	assert.ErrorIs(t, err, ErrOperationPanicked)
	assert.Contains(t, err.Error(), "kaboom")

	v, err := healthy.Wait(ctx)
	require.NoError(t, err)
	assert.Equal(t, 7, v)
}

func TestQueue_BatchSizeCapsParallelism(t *testing.T) {
	q := newTestQueue(t, Config{FlushInterval: 5 * time.Millisecond, BatchSize: 4})

	var (
		running int32
		peak    int32
	)
	futures := make([]*Future[struct{}], 0, 20)
	for i := 0; i < 20; i++ {
		futures = append(futures, Submit(q, func(context.Context) (struct{}, error) {
			now := atomic.AddInt32(&running, 1)
			for {
				old := atomic.LoadInt32(&peak)
				if now <= old || atomic.CompareAndSwapInt32(&peak, old, now) {
					break
				}
			}
			time.Sleep(2 * time.Millisecond)
			atomic.AddInt32(&running, -1)
			return struct{}{}, nil
		}))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for _, f := range futures {
		_, err := f.Wait(ctx)
		require.NoError(t, err)
	}
	assert.LessOrEqual(t, atomic.LoadInt32(&peak), int32(4))
}

func TestQueue_DepthLimitDrainsEarly(t *testing.T) {
	// Тик никогда не наступит за время теста, сработать может только порог глубины
	q := newTestQueue(t, Config{FlushInterval: time.Hour, BatchSize: 10, MaxConcurrentOperations: 5})

	futures := make([]*Future[int], 0, 5)
	for i := 0; i < 5; i++ {
		futures = append(futures, Submit(q, func(context.Context) (int, error) { return i, nil }))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	for i, f := range futures {
		v, err := f.Wait(ctx)
		require.NoError(t, err)
		assert.Equal(t, i, v)
	}
}

func TestQueue_CloseDrainsEverything(t *testing.T) {
	q := New(Config{FlushInterval: time.Hour, BatchSize: 3}, slog.New(slog.NewTextHandler(io.Discard, nil)), nil)

	var executed int32
	futures := make([]*Future[int], 0, 10)
	for i := 0; i < 10; i++ {
		futures = append(futures, Submit(q, func(context.Context) (int, error) {
			atomic.AddInt32(&executed, 1)
			return 1, nil
		}))
	}

	require.NoError(t, q.Close(context.Background()))
	assert.Equal(t, int32(10), atomic.LoadInt32(&executed))
	assert.Equal(t, 0, q.Len())

	for _, f := range futures {
		select {
		case <-f.Done():
		default:
			t.Fatal("future not completed after Close")
		}
	}
}

func TestQueue_SubmitAfterClose(t *testing.T) {
	q := New(DefaultConfig(), slog.New(slog.NewTextHandler(io.Discard, nil)), nil)
	require.NoError(t, q.Close(context.Background()))

	f := Submit(q, func(context.Context) (int, error) { return 1, nil })
	_, err := f.Wait(context.Background())
	assert.ErrorIs(t, err, ErrQueueClosed)

	// Повторный Close безопасен
	assert.NoError(t, q.Close(context.Background()))
}

func TestQueue_CloseRespectsDeadline(t *testing.T) {
	q := New(Config{FlushInterval: time.Millisecond, BatchSize: 1}, slog.New(slog.NewTextHandler(io.Discard, nil)), nil)

	release := make(chan struct{})
	started := make(chan struct{})
	var once sync.Once
	f := Submit(q, func(ctx context.Context) (int, error) {
		once.Do(func() { close(started) })
		select {
		case <-release:
			return 1, nil
		case <-ctx.Done():
			return 0, ctx.Err()
		}
	})
	<-started

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := q.Close(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	// Отмененный контекст очереди прерывает зависшую операцию
	_, err = f.Wait(context.Background())
	assert.ErrorIs(t, err, context.Canceled)
	close(release)
}

func TestFuture_WaitHonorsContext(t *testing.T) {
	q := newTestQueue(t, Config{FlushInterval: time.Hour})
	f := Submit(q, func(context.Context) (int, error) { return 1, nil })

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := f.Wait(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
