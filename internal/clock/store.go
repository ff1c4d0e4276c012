// Package clock хранит векторные часы и часы Лампорта клиентов в ключевом хранилище.
package clock

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/EagleChen/mapmutex"

	"github.com/iudanet/deltasync/internal/crdt"
	"github.com/iudanet/deltasync/internal/keystore"
	"github.com/iudanet/deltasync/internal/models"
)

var (
	// ErrInvalidInput returned for an empty or malformed client id
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound returned when the client has no clock (missing, expired or corrupted)
	ErrNotFound = errors.New("clock not found")

	// ErrBusy returned when the per-client lock could not be taken in time
	ErrBusy = errors.New("clock is busy")
)

// DefaultTTL срок жизни часов клиента.
const DefaultTTL = 24 * time.Hour

const (
	fieldCounter   = "counter"
	fieldTimestamp = "timestamp"
)

// Store управляет часами клиентов.
// Счетчики Лампорта меняются атомарной операцией хранилища HMaxIncr,
// векторные часы - под блокировкой на клиента.
type Store struct {
	kv     keystore.Store
	logger *slog.Logger
	locks  *mapmutex.Mutex
	now    func() time.Time
	ttl    time.Duration
}

// NewStore creates a clock store. ttl <= 0 selects DefaultTTL.
func NewStore(kv keystore.Store, logger *slog.Logger, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		kv:     kv,
		logger: logger,
		ttl:    ttl,
		now:    time.Now,
		// 200 попыток с экспоненциальной задержкой до 50 мс
		locks: mapmutex.NewCustomizedMapMutex(200, 50_000_000, 1000, 1.5, 0.2),
	}
}

// VectorKey ключ векторных часов клиента.
func VectorKey(clientID string) string { return "vclock:" + clientID }

// LamportKey ключ часов Лампорта участника.
func LamportKey(clientID string) string { return "lamport:" + clientID }

// InitializeClient creates zeroed vector and Lamport clocks for the client.
// An existing clock is reset.
func (s *Store) InitializeClient(ctx context.Context, clientID string) (*models.VectorClock, error) {
	if clientID == "" {
		return nil, fmt.Errorf("%w: empty client id", ErrInvalidInput)
	}

	vc := crdt.NewVectorClock(clientID, models.ServerNodeID)
	vc.Timestamp = s.now().UnixMilli()

	data, err := json.Marshal(vc)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal vector clock: %w", err)
	}

	lamportKey := LamportKey(clientID)
	err = s.kv.Pipelined(ctx, func(p keystore.Pipeliner) error {
		p.Set(VectorKey(clientID), data, s.ttl)
		p.Delete(lamportKey)
		p.HSet(lamportKey, fieldCounter, 0)
		p.HSet(lamportKey, fieldTimestamp, vc.Timestamp)
		p.Expire(lamportKey, s.ttl)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to persist client clocks: %w", err)
	}

	s.logger.Debug("Client clocks initialized", "client_id", clientID)
	return vc, nil
}

// GetVectorClock loads the client's vector clock. A malformed or invalid
// record is deleted and reported as ErrNotFound.
func (s *Store) GetVectorClock(ctx context.Context, clientID string) (*models.VectorClock, error) {
	if clientID == "" {
		return nil, fmt.Errorf("%w: empty client id", ErrInvalidInput)
	}

	data, err := s.kv.Get(ctx, VectorKey(clientID))
	if err != nil {
		if errors.Is(err, keystore.ErrKeyNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load vector clock: %w", err)
	}

	vc, err := decodeVectorClock(data)
	if err == nil && vc.ClientID != clientID {
		err = fmt.Errorf("%w: client_id %q stored under %q", crdt.ErrInvalidClock, vc.ClientID, clientID)
	}
	if err != nil {
		s.discardCorrupted(ctx, clientID, err)
		return nil, ErrNotFound
	}
	return vc, nil
}

// UpdateVectorClock applies fn to the stored clock and saves the result.
// fn must not block; the client's clock is locked while it runs.
func (s *Store) UpdateVectorClock(ctx context.Context, clientID string, fn func(vc *models.VectorClock) error) (*models.VectorClock, error) {
	if clientID == "" {
		return nil, fmt.Errorf("%w: empty client id", ErrInvalidInput)
	}

	if !s.locks.TryLock(clientID) {
		return nil, fmt.Errorf("%w: %s", ErrBusy, clientID)
	}
	defer s.locks.Unlock(clientID)

	vc, err := s.GetVectorClock(ctx, clientID)
	if err != nil {
		return nil, err
	}

	if err := fn(vc); err != nil {
		return nil, err
	}
	if err := crdt.ValidateVectorClock(vc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	data, err := json.Marshal(vc)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal vector clock: %w", err)
	}
	if err := s.kv.Set(ctx, VectorKey(clientID), data, s.ttl); err != nil {
		return nil, fmt.Errorf("failed to save vector clock: %w", err)
	}
	return vc, nil
}

// IncrementLamport atomically bumps the client's Lamport counter
func (s *Store) IncrementLamport(ctx context.Context, clientID string) (models.LamportClock, error) {
	return s.advance(ctx, clientID, 0)
}

// MergeLamport applies the Lamport receive rule: counter = max(local, received) + 1
func (s *Store) MergeLamport(ctx context.Context, clientID string, received models.LamportClock) (models.LamportClock, error) {
	floor := received.Counter
	if floor > math.MaxInt64-1 {
		floor = math.MaxInt64 - 1
	}
	return s.advance(ctx, clientID, int64(floor))
}

// ServerClock advances the clock of the server participant
func (s *Store) ServerClock(ctx context.Context) (models.LamportClock, error) {
	return s.advance(ctx, models.ServerNodeID, 0)
}

func (s *Store) advance(ctx context.Context, clientID string, floor int64) (models.LamportClock, error) {
	if clientID == "" {
		return models.LamportClock{}, fmt.Errorf("%w: empty client id", ErrInvalidInput)
	}

	key := LamportKey(clientID)
	counter, err := s.kv.HMaxIncr(ctx, key, fieldCounter, floor)
	if err != nil {
		return models.LamportClock{}, fmt.Errorf("failed to advance lamport clock: %w", err)
	}

	ts := s.now().UnixMilli()
	err = s.kv.Pipelined(ctx, func(p keystore.Pipeliner) error {
		p.HSet(key, fieldTimestamp, ts)
		p.Expire(key, s.ttl)
		return nil
	})
	if err != nil {
		// Счетчик уже увеличен, метка времени вторична
		s.logger.Warn("Failed to refresh lamport clock metadata", "client_id", clientID, "error", err)
	}

	return models.LamportClock{
		NodeID:    clientID,
		Counter:   uint64(counter),
		Timestamp: ts,
	}, nil
}

// GetLamport returns the stored Lamport clock of the participant
func (s *Store) GetLamport(ctx context.Context, clientID string) (models.LamportClock, error) {
	if clientID == "" {
		return models.LamportClock{}, fmt.Errorf("%w: empty client id", ErrInvalidInput)
	}

	fields, err := s.kv.HGetAll(ctx, LamportKey(clientID))
	if err != nil {
		return models.LamportClock{}, fmt.Errorf("failed to load lamport clock: %w", err)
	}
	counter, ok := fields[fieldCounter]
	if !ok || counter < 0 {
		return models.LamportClock{}, ErrNotFound
	}

	return models.LamportClock{
		NodeID:    clientID,
		Counter:   uint64(counter),
		Timestamp: fields[fieldTimestamp],
	}, nil
}

// DeleteClient removes both clocks of the client
func (s *Store) DeleteClient(ctx context.Context, clientID string) error {
	if clientID == "" {
		return fmt.Errorf("%w: empty client id", ErrInvalidInput)
	}
	if err := s.kv.Delete(ctx, VectorKey(clientID), LamportKey(clientID)); err != nil {
		return fmt.Errorf("failed to delete client clocks: %w", err)
	}
	return nil
}

func (s *Store) discardCorrupted(ctx context.Context, clientID string, cause error) {
	s.logger.Warn("Corrupted vector clock discarded",
		"client_id", clientID,
		"error", cause,
	)
	if err := s.kv.Delete(ctx, VectorKey(clientID)); err != nil {
		s.logger.Error("Failed to delete corrupted vector clock", "client_id", clientID, "error", err)
	}
}

// decodeVectorClock разбирает и проверяет сохраненные часы
func decodeVectorClock(data []byte) (*models.VectorClock, error) {
	var vc models.VectorClock
	if err := json.Unmarshal(data, &vc); err != nil {
		return nil, fmt.Errorf("%w: %v", crdt.ErrInvalidClock, err)
	}
	if err := crdt.ValidateVectorClock(&vc); err != nil {
		return nil, err
	}
	return &vc, nil
}
