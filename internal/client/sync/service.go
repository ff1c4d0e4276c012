// Package sync применяет дельты сервера к локальной копии сущностей.
package sync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	httpClient "github.com/iudanet/deltasync/internal/client/api"
	"github.com/iudanet/deltasync/internal/client/storage"
	"github.com/iudanet/deltasync/internal/crdt"
	"github.com/iudanet/deltasync/internal/delta"
	"github.com/iudanet/deltasync/internal/models"
	"github.com/iudanet/deltasync/pkg/api"
)

// ErrNotInitialized возвращается до выполнения Init
var ErrNotInitialized = errors.New("client is not initialized, run init first")

//go:generate moq -out service_mock.go . Service

// Service определяет интерфейс для sync.Service
type Service interface {
	// Init регистрирует клиента на сервере и сбрасывает локальное состояние
	Init(ctx context.Context, clientID string) (*models.VectorClock, error)

	// Sync запрашивает дельту по сущности (или по всему типу при пустом id)
	// и применяет ее локально
	Sync(ctx context.Context, entityType models.EntityType, id string) (*SyncResult, error)

	// Watch применяет дельты из канала доставки до отмены ctx.
	// onApplied вызывается после сохранения каждой дельты.
	Watch(ctx context.Context, onApplied func(models.StateDelta)) error

	// ClientID возвращает идентификатор, сохраненный при Init
	ClientID(ctx context.Context) (string, error)
}

// SyncResult contains sync operation results
type SyncResult struct {
	Mode     string // режим доставки на сервере: NORMAL или DEGRADED
	Received int    // количество полученных дельт
	Applied  int    // количество сохраненных сущностей
	Deleted  int    // количество удаленных сущностей
}

// Service handles synchronization between client and server
type service struct {
	apiClient httpClient.ClientAPI
	store     storage.StateStorage
	logger    *slog.Logger
}

// NewService creates a new sync service
func NewService(apiClient httpClient.ClientAPI, store storage.StateStorage, logger *slog.Logger) Service {
	return &service{
		apiClient: apiClient,
		store:     store,
		logger:    logger,
	}
}

func (s *service) Init(ctx context.Context, clientID string) (*models.VectorClock, error) {
	vc, err := s.apiClient.InitializeClient(ctx, clientID)
	if err != nil {
		return nil, err
	}

	// новые часы сервера не связаны с прежними документами
	if err := s.store.Reset(ctx); err != nil {
		return nil, fmt.Errorf("failed to reset local state: %w", err)
	}
	if err := s.store.SaveClientID(ctx, clientID); err != nil {
		return nil, fmt.Errorf("failed to save client id: %w", err)
	}
	if err := s.store.SaveVectorClock(ctx, vc); err != nil {
		return nil, fmt.Errorf("failed to save vector clock: %w", err)
	}

	s.logger.Info("Client initialized", "client_id", clientID)
	return vc, nil
}

func (s *service) ClientID(ctx context.Context) (string, error) {
	clientID, err := s.store.GetClientID(ctx)
	if errors.Is(err, storage.ErrNotFound) {
		return "", ErrNotInitialized
	}
	if err != nil {
		return "", fmt.Errorf("failed to load client id: %w", err)
	}
	return clientID, nil
}

func (s *service) Sync(ctx context.Context, entityType models.EntityType, id string) (*SyncResult, error) {
	clientID, err := s.ClientID(ctx)
	if err != nil {
		return nil, err
	}

	lastKnown, err := s.store.GetVectorClock(ctx)
	if err != nil {
		return nil, err
	}

	// запрос дельты событие клиента: счетчик Лампорта продвигается
	local := restoreLamport(clientID, lastKnown)
	counter := local.Tick()
	if lastKnown != nil {
		lastKnown = lastKnown.Clone()
		lastKnown.LamportCounter = counter
	}

	s.logger.Info("Starting synchronization",
		"client_id", clientID,
		"entity_type", entityType,
		"entity_id", id,
		"lamport", counter,
	)

	resp, err := s.apiClient.Delta(ctx, api.DeltaRequest{
		ClientID:             clientID,
		EntityType:           string(entityType),
		EntityID:             id,
		LastKnownVectorClock: lastKnown,
	})
	if err != nil {
		return nil, err
	}

	result := &SyncResult{Mode: resp.Mode, Received: len(resp.Deltas)}
	for _, d := range resp.Deltas {
		deleted, err := s.apply(ctx, d, local)
		if err != nil {
			return result, err
		}
		if deleted {
			result.Deleted++
		} else {
			result.Applied++
		}
	}

	s.logger.Info("Synchronization completed",
		"received", result.Received,
		"applied", result.Applied,
		"deleted", result.Deleted,
		"mode", result.Mode,
	)
	return result, nil
}

func (s *service) Watch(ctx context.Context, onApplied func(models.StateDelta)) error {
	clientID, err := s.ClientID(ctx)
	if err != nil {
		return err
	}

	lastKnown, err := s.store.GetVectorClock(ctx)
	if err != nil {
		return err
	}
	local := restoreLamport(clientID, lastKnown)

	s.logger.Info("Watching deltas", "client_id", clientID)
	return s.apiClient.Subscribe(ctx, clientID, func(d models.StateDelta) error {
		if _, err := s.apply(ctx, d, local); err != nil {
			return err
		}
		if onApplied != nil {
			onApplied(d)
		}
		return nil
	})
}

// apply материализует дельту в локальном документе и запоминает ее часы.
// Возвращает true, если сущность удалена.
func (s *service) apply(ctx context.Context, d models.StateDelta, local *crdt.LamportClock) (bool, error) {
	var previous models.Document
	if !onlyCreates(d.Changes) {
		doc, err := s.store.GetEntity(ctx, d.EntityType, d.EntityID)
		if err != nil && !errors.Is(err, storage.ErrNotFound) {
			return false, fmt.Errorf("failed to load %s/%s: %w", d.EntityType, d.EntityID, err)
		}
		previous = doc
	}

	doc := delta.Apply(previous, d.Changes)

	deleted := len(doc) == 0 && onlyDeletes(d.Changes)
	if deleted {
		if err := s.store.DeleteEntity(ctx, d.EntityType, d.EntityID); err != nil {
			return false, fmt.Errorf("failed to delete %s/%s: %w", d.EntityType, d.EntityID, err)
		}
	} else if err := s.store.SaveEntity(ctx, d.EntityType, d.EntityID, doc); err != nil {
		return false, fmt.Errorf("failed to save %s/%s: %w", d.EntityType, d.EntityID, err)
	}

	if d.LamportClock != nil {
		local.Update(d.LamportClock.Counter)
	}
	if err := s.saveClock(ctx, d.VectorClock, local.Counter()); err != nil {
		return deleted, err
	}

	s.logger.Debug("Delta applied",
		"entity_type", d.EntityType,
		"entity_id", d.EntityID,
		"changes", len(d.Changes),
		"deleted", deleted,
	)
	return deleted, nil
}

// saveClock вливает часы дельты в сохраненные. Часы не откатываются:
// устаревшая дельта меняет только счетчик Лампорта.
func (s *service) saveClock(ctx context.Context, vc *models.VectorClock, lamport uint64) error {
	if vc == nil {
		return nil
	}

	current, err := s.store.GetVectorClock(ctx)
	if err != nil {
		return err
	}

	var next *models.VectorClock
	if current == nil {
		next = vc.Clone()
	} else {
		next = current.Clone()
		switch crdt.CompareVector(vc, current) {
		case crdt.After, crdt.Concurrent:
			crdt.MergeVector(next, vc)
		default:
			if lamport <= current.LamportCounter {
				return nil
			}
		}
	}
	next.LamportCounter = max(next.LamportCounter, lamport)

	if err := s.store.SaveVectorClock(ctx, next); err != nil {
		return fmt.Errorf("failed to save vector clock: %w", err)
	}
	return nil
}

// restoreLamport локальные часы клиента продолжают сохраненный счетчик
func restoreLamport(clientID string, vc *models.VectorClock) *crdt.LamportClock {
	if vc == nil {
		return crdt.NewLamportClock(clientID, 0)
	}
	return crdt.NewLamportClock(clientID, vc.LamportCounter)
}

// onlyCreates полная пересылка сущности: документ строится с нуля
func onlyCreates(changes []models.StateChange) bool {
	return allOf(changes, models.ChangeCreate)
}

func onlyDeletes(changes []models.StateChange) bool {
	return allOf(changes, models.ChangeDelete)
}

func allOf(changes []models.StateChange, ct models.ChangeType) bool {
	if len(changes) == 0 {
		return false
	}
	for _, c := range changes {
		if c.ChangeType != ct {
			return false
		}
	}
	return true
}
