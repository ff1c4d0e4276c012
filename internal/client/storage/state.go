// Package storage описывает локальное хранилище клиента синхронизации.
package storage

import (
	"context"
	"errors"

	"github.com/iudanet/deltasync/internal/models"
)

// ErrNotFound indicates that the requested record does not exist
var ErrNotFound = errors.New("record not found")

//go:generate moq -out state_mock.go . StateStorage

// StateStorage хранит часы последней полученной дельты и примененные
// документы сущностей.
type StateStorage interface {
	// SaveClientID запоминает идентификатор клиента после init
	SaveClientID(ctx context.Context, clientID string) error
	// GetClientID returns ErrNotFound before init
	GetClientID(ctx context.Context) (string, error)

	// SaveVectorClock сохраняет часы последней полученной дельты
	SaveVectorClock(ctx context.Context, vc *models.VectorClock) error
	// GetVectorClock returns nil without error before the first sync
	GetVectorClock(ctx context.Context) (*models.VectorClock, error)

	SaveEntity(ctx context.Context, entityType models.EntityType, id string, doc models.Document) error
	// GetEntity returns ErrNotFound for unknown entities
	GetEntity(ctx context.Context, entityType models.EntityType, id string) (models.Document, error)
	DeleteEntity(ctx context.Context, entityType models.EntityType, id string) error
	ListEntities(ctx context.Context, entityType models.EntityType) (map[string]models.Document, error)

	// Reset удаляет часы и все документы, идентификатор клиента остается
	Reset(ctx context.Context) error
}
