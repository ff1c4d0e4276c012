// Package statesync связывает часы, кэш сущностей, вычисление дельт и
// монитор качества в операции синхронизации состояния клиентов.
package statesync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/iudanet/deltasync/internal/bandwidth"
	"github.com/iudanet/deltasync/internal/batch"
	"github.com/iudanet/deltasync/internal/clock"
	"github.com/iudanet/deltasync/internal/entity"
	"github.com/iudanet/deltasync/internal/fallback"
	"github.com/iudanet/deltasync/internal/metrics"
	"github.com/iudanet/deltasync/internal/models"
	"github.com/iudanet/deltasync/internal/quality"
)

// ErrInvalidInput returned for a malformed request; every other failure is
// logged and degrades to an empty result.
var ErrInvalidInput = errors.New("invalid input")

// Имена операций для логов, метрик и статистики ошибок
const (
	opInitialize = "initialize_client"
	opCalculate  = "calculate_delta"
	opBatch      = "batch_sync"
	opBroadcast  = "broadcast"
	opQuality    = "record_quality"
	opCleanup    = "cleanup_client"
)

// Значения по умолчанию
const (
	DefaultMaxDeltaSize       = 100
	DefaultSlowSyncThreshold  = 2 * time.Second
	DefaultErrorRingSize      = 50
	DefaultErrorResetInterval = 10 * time.Minute
	DefaultPruneInterval      = 5 * time.Minute
	DefaultInactiveAfter      = 30 * time.Minute
	DefaultBatchParallelism   = 8
)

// Config параметры сервиса синхронизации.
type Config struct {
	MaxDeltaSize       int           `yaml:"max_delta_size"`
	SlowSyncThreshold  time.Duration `yaml:"slow_sync_threshold"`
	ErrorRingSize      int           `yaml:"error_ring_size"`
	ErrorResetInterval time.Duration `yaml:"error_reset_interval"`
	PruneInterval      time.Duration `yaml:"prune_interval"`
	InactiveAfter      time.Duration `yaml:"inactive_after"`
	BatchParallelism   int           `yaml:"batch_parallelism"`
}

// DefaultConfig returns the default sync settings
func DefaultConfig() Config {
	return Config{
		MaxDeltaSize:       DefaultMaxDeltaSize,
		SlowSyncThreshold:  DefaultSlowSyncThreshold,
		ErrorRingSize:      DefaultErrorRingSize,
		ErrorResetInterval: DefaultErrorResetInterval,
		PruneInterval:      DefaultPruneInterval,
		InactiveAfter:      DefaultInactiveAfter,
		BatchParallelism:   DefaultBatchParallelism,
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.MaxDeltaSize <= 0 {
		c.MaxDeltaSize = def.MaxDeltaSize
	}
	if c.SlowSyncThreshold <= 0 {
		c.SlowSyncThreshold = def.SlowSyncThreshold
	}
	if c.ErrorRingSize <= 0 {
		c.ErrorRingSize = def.ErrorRingSize
	}
	if c.ErrorResetInterval <= 0 {
		c.ErrorResetInterval = def.ErrorResetInterval
	}
	if c.PruneInterval <= 0 {
		c.PruneInterval = def.PruneInterval
	}
	if c.InactiveAfter <= 0 {
		c.InactiveAfter = def.InactiveAfter
	}
	if c.BatchParallelism <= 0 {
		c.BatchParallelism = def.BatchParallelism
	}
	return c
}

//go:generate moq -out broadcaster_mock.go . Broadcaster

// Broadcaster принимает дельту для доставки клиенту. Подтверждение доставки
// сервису не нужно.
type Broadcaster interface {
	Enqueue(ctx context.Context, clientID string, delta models.StateDelta) error
}

// Deps зависимости сервиса. Broadcaster и Metrics могут быть nil.
type Deps struct {
	Clocks      *clock.Store
	Entities    *entity.Cache
	Queue       *batch.Queue
	Monitor     *quality.Monitor
	Fallback    *fallback.Controller
	Bandwidth   *bandwidth.Validator
	Broadcaster Broadcaster
	Metrics     *metrics.Metrics
	Logger      *slog.Logger
}

// Service реализует операции синхронизации состояния.
type Service struct {
	clocks      *clock.Store
	entities    *entity.Cache
	queue       *batch.Queue
	monitor     *quality.Monitor
	fallback    *fallback.Controller
	bandwidth   *bandwidth.Validator
	broadcaster Broadcaster
	metrics     *metrics.Metrics
	logger      *slog.Logger
	stats       *errorStats
	now         func() time.Time
	cancel      context.CancelFunc
	wg          sync.WaitGroup
	cfg         Config
	mu          sync.Mutex
	started     bool
}

// New creates the sync service
func New(d Deps, cfg Config) *Service {
	cfg = cfg.withDefaults()
	return &Service{
		clocks:      d.Clocks,
		entities:    d.Entities,
		queue:       d.Queue,
		monitor:     d.Monitor,
		fallback:    d.Fallback,
		bandwidth:   d.Bandwidth,
		broadcaster: d.Broadcaster,
		metrics:     d.Metrics,
		logger:      d.Logger,
		cfg:         cfg,
		now:         time.Now,
		stats:       newErrorStats(cfg.ErrorRingSize),
	}
}

// SetBroadcaster sets the delivery target; the hub is built after the service
func (s *Service) SetBroadcaster(b Broadcaster) {
	s.mu.Lock()
	s.broadcaster = b
	s.mu.Unlock()
}

func (s *Service) getBroadcaster() Broadcaster {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.broadcaster
}

// Start launches the background loops: error stats reset, inactive client
// pruning, fallback auto-recovery and the quality event log. They stop on Close.
func (s *Service) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return
	}
	s.started = true

	ctx, s.cancel = context.WithCancel(ctx)

	events, unsubscribe := s.monitor.Bus().Subscribe(quality.DefaultSubscriberBuffer)

	s.wg.Add(4)
	go func() {
		defer s.wg.Done()
		defer unsubscribe()
		s.watchEvents(ctx, events)
	}()
	go func() {
		defer s.wg.Done()
		s.every(ctx, s.cfg.ErrorResetInterval, func(context.Context) {
			n := s.stats.reset(s.now(), s.cfg.InactiveAfter)
			s.logger.Debug("Client error stats reset", "clients", n)
		})
	}()
	go func() {
		defer s.wg.Done()
		s.every(ctx, s.cfg.PruneInterval, s.pruneInactive)
	}()
	go func() {
		defer s.wg.Done()
		s.fallback.Run(ctx)
	}()

	s.logger.Info("State sync service started")
}

// watchEvents пишет в лог смены режима доставки и алерты монитора
func (s *Service) watchEvents(ctx context.Context, events <-chan quality.Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			switch ev.Type {
			case quality.EventFallbackActivated:
				s.logger.Warn("Client switched to polling", "client_id", ev.ClientID, "reasons", ev.Reasons)
			case quality.EventFallbackDeactivated:
				s.logger.Info("Client returned to push delivery", "client_id", ev.ClientID, "reasons", ev.Reasons)
			case quality.EventAlert:
				if ev.Alert != nil {
					s.logger.Warn("Connection quality alert",
						"client_id", ev.ClientID,
						"alert_type", ev.Alert.AlertType,
						"severity", ev.Alert.Severity,
					)
				}
			}
		}
	}
}

func (s *Service) every(ctx context.Context, interval time.Duration, fn func(context.Context)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			fn(ctx)
		}
	}
}

// Close stops the background loops and drains the batch queue. Queued
// operations still run; ctx bounds the wait.
func (s *Service) Close(ctx context.Context) error {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		return fmt.Errorf("failed to stop background loops: %w", ctx.Err())
	}

	if err := s.queue.Close(ctx); err != nil {
		return fmt.Errorf("failed to drain batch queue: %w", err)
	}

	s.logger.Info("State sync service stopped")
	return nil
}

func (s *Service) pruneInactive(ctx context.Context) {
	pruned, err := s.monitor.PruneInactive(ctx, s.cfg.InactiveAfter)
	if err != nil {
		s.logger.Error("Failed to prune inactive clients", "error", err)
		return
	}

	for _, id := range pruned {
		s.entities.ForgetClient(id)
		s.stats.forget(id)
		if err := s.fallback.Forget(ctx, id); err != nil {
			s.logger.Warn("Failed to drop fallback history", "client_id", id, "error", err)
		}
	}
}

// upstreamFailure логирует сбой хранилища, учитывает ошибку и переводит
// клиента на опрос: корректность дельт не гарантирована
func (s *Service) upstreamFailure(ctx context.Context, clientID, op string, err error) {
	s.logger.Error("Upstream failure",
		"client_id", clientID,
		"operation", op,
		"error", err,
	)
	s.stats.recordError(clientID, op, err, s.now())

	if _, ferr := s.fallback.Activate(ctx, clientID, "upstream failure during "+op); ferr != nil {
		s.logger.Error("Failed to activate fallback after upstream failure",
			"client_id", clientID,
			"error", ferr,
		)
	}
}

// ClientErrorStats returns a copy of the client's in-memory error stats
func (s *Service) ClientErrorStats(clientID string) (models.ClientErrorStats, bool) {
	return s.stats.get(clientID)
}
