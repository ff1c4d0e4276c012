// Package entity читает снимки синхронизируемых сущностей и кэширует их.
package entity

import (
	"context"
	"errors"
	"time"

	"github.com/iudanet/deltasync/internal/models"
)

// ErrNotFound returned by Store when the entity does not exist
var ErrNotFound = errors.New("entity not found")

// Filter условия выборки FindMany. Пустые поля не ограничивают выборку,
// поля, отсутствующие у типа сущности, игнорируются.
type Filter struct {
	UpdatedAfter time.Time
	Status       string
	Category     string
	UserID       string
}

//go:generate moq -out store_mock.go . Store

// Store источник канонических записей сущностей (только чтение).
type Store interface {
	// FindOne returns the entity or ErrNotFound
	FindOne(ctx context.Context, entityType models.EntityType, id string) (models.Entity, error)

	// FindMany returns up to limit entities ordered by id
	FindMany(ctx context.Context, entityType models.EntityType, filter Filter, limit int) ([]models.Entity, error)
}
