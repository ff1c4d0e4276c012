// Package batch ограничивает параллелизм обращений к хранилищу сущностей:
// операции копятся в очереди и выполняются пачками по тикеру.
package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/iudanet/deltasync/internal/metrics"
)

var (
	// ErrQueueClosed returned for operations submitted after Close
	ErrQueueClosed = errors.New("batch queue is closed")

	// ErrOperationPanicked wraps a panic recovered from a queued operation
	ErrOperationPanicked = errors.New("queued operation panicked")
)

// Значения по умолчанию
const (
	DefaultFlushInterval           = 100 * time.Millisecond
	DefaultBatchSize               = 50
	DefaultMaxConcurrentOperations = 1000
)

// Config параметры очереди.
type Config struct {
	FlushInterval           time.Duration `yaml:"flush_interval"`
	BatchSize               int           `yaml:"batch_size"`
	MaxConcurrentOperations int           `yaml:"max_concurrent_operations"`
}

// DefaultConfig returns the default queue settings
func DefaultConfig() Config {
	return Config{
		FlushInterval:           DefaultFlushInterval,
		BatchSize:               DefaultBatchSize,
		MaxConcurrentOperations: DefaultMaxConcurrentOperations,
	}
}

type job func(ctx context.Context) error

// Queue выполняет операции пачками не чаще одного раза за тик.
// При глубине очереди MaxConcurrentOperations пачка запускается немедленно.
type Queue struct {
	ctx     context.Context
	logger  *slog.Logger
	metrics *metrics.Metrics
	cancel  context.CancelFunc
	kickC   chan struct{}
	stopC   chan struct{}
	doneC   chan struct{}
	pending []job
	cfg     Config
	mu      sync.Mutex
	closed  bool
}

// New creates the queue and starts its drain loop
func New(cfg Config, logger *slog.Logger, m *metrics.Metrics) *Queue {
	def := DefaultConfig()
	if cfg.FlushInterval <= 0 {
		cfg.FlushInterval = def.FlushInterval
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = def.BatchSize
	}
	if cfg.MaxConcurrentOperations <= 0 {
		cfg.MaxConcurrentOperations = def.MaxConcurrentOperations
	}

	ctx, cancel := context.WithCancel(context.Background())
	q := &Queue{
		ctx:     ctx,
		cancel:  cancel,
		logger:  logger,
		metrics: m,
		cfg:     cfg,
		kickC:   make(chan struct{}, 1),
		stopC:   make(chan struct{}),
		doneC:   make(chan struct{}),
	}
	go q.loop()
	return q
}

// Future результат отложенной операции.
type Future[T any] struct {
	value T
	err   error
	done  chan struct{}
}

// Done is closed once the operation has finished
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Wait blocks until the operation finishes or ctx is done
func (f *Future[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Submit queues op and returns its future. Errors and panics of op stay in
// its own future and never affect other operations of the batch.
func Submit[T any](q *Queue, op func(ctx context.Context) (T, error)) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}

	run := func(ctx context.Context) (err error) {
		defer close(f.done)
		defer func() {
			if r := recover(); r != nil {
				f.err = fmt.Errorf("%w: %v", ErrOperationPanicked, r)
				err = f.err
			}
		}()

		f.value, f.err = op(ctx)
		return f.err
	}

	if err := q.enqueue(run); err != nil {
		f.err = err
		close(f.done)
	}
	return f
}

// Len returns the number of waiting operations
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

func (q *Queue) enqueue(j job) error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return ErrQueueClosed
	}
	q.pending = append(q.pending, j)
	depth := len(q.pending)
	q.mu.Unlock()

	q.metrics.SetQueueDepth(depth)

	if depth >= q.cfg.MaxConcurrentOperations {
		select {
		case q.kickC <- struct{}{}:
		default:
		}
	}
	return nil
}

func (q *Queue) loop() {
	defer close(q.doneC)

	ticker := time.NewTicker(q.cfg.FlushInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			q.drainBatch()
		case <-q.kickC:
			q.logger.Debug("Batch queue depth limit reached, draining early", "depth", q.Len())
			q.drainBatch()
		case <-q.stopC:
			for q.drainBatch() > 0 {
			}
			return
		}
	}
}

// drainBatch выполняет до BatchSize операций параллельно и ждет их завершения
func (q *Queue) drainBatch() int {
	q.mu.Lock()
	n := min(len(q.pending), q.cfg.BatchSize)
	if n == 0 {
		q.mu.Unlock()
		return 0
	}
	batch := make([]job, n)
	copy(batch, q.pending[:n])
	q.pending = q.pending[n:]
	depth := len(q.pending)
	q.mu.Unlock()

	q.metrics.SetQueueDepth(depth)

	var g errgroup.Group
	g.SetLimit(q.cfg.BatchSize)

	var (
		failedMu sync.Mutex
		failed   int
	)
	for _, j := range batch {
		g.Go(func() error {
			if err := j(q.ctx); err != nil {
				failedMu.Lock()
				failed++
				failedMu.Unlock()
				q.metrics.IncQueueOperation(metrics.ResultFailed)
				return nil
			}
			q.metrics.IncQueueOperation(metrics.ResultOK)
			return nil
		})
	}
	_ = g.Wait()

	if failed > 0 {
		q.logger.Warn("Batch finished with failed operations",
			"batch_size", n,
			"failed", failed,
		)
	}

	// Очередь переполнена: не ждем следующего тика
	if depth >= q.cfg.MaxConcurrentOperations {
		select {
		case q.kickC <- struct{}{}:
		default:
		}
	}
	return n
}

// Close stops accepting operations and drains everything already queued.
// If ctx ends first, running operations see a canceled context.
func (q *Queue) Close(ctx context.Context) error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		select {
		case <-q.doneC:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	q.closed = true
	remaining := len(q.pending)
	q.mu.Unlock()

	q.logger.Info("Draining batch queue", "pending", remaining)
	close(q.stopC)

	select {
	case <-q.doneC:
		q.cancel()
		return nil
	case <-ctx.Done():
		q.cancel()
		return fmt.Errorf("failed to drain batch queue: %w", ctx.Err())
	}
}
