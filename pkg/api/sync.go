package api

import "github.com/iudanet/deltasync/internal/models"

// InitializeClientRequest представляет запрос на регистрацию клиента синхронизации
type InitializeClientRequest struct {
	ClientID string `json:"client_id"`
}

// InitializeClientResponse содержит обнуленные векторные часы клиента
type InitializeClientResponse struct {
	VectorClock *models.VectorClock `json:"vector_clock"`
}

// DeltaRequest представляет запрос дельты по одной сущности или по всем сущностям типа
type DeltaRequest struct {
	LastKnownVectorClock *models.VectorClock `json:"last_known_vector_clock,omitempty"` // часы из последней полученной дельты
	ClientID             string              `json:"client_id"`
	EntityType           string              `json:"entity_type"`
	EntityID             string              `json:"entity_id,omitempty"` // пустой - список сущностей типа
	MaxDeltaSize         int                 `json:"max_delta_size,omitempty"`
}

// DeltaResponse представляет результат синхронизации
type DeltaResponse struct {
	Deltas    []models.StateDelta `json:"deltas"`
	Mode      string              `json:"mode"` // NORMAL или DEGRADED
	Timestamp int64               `json:"timestamp"`
}

// EntityRef ссылка на сущность в пакетном запросе
type EntityRef struct {
	EntityType string `json:"entity_type"`
	EntityID   string `json:"entity_id,omitempty"`
}

// BatchSyncRequest представляет пакетный запрос дельт
type BatchSyncRequest struct {
	ClientID string      `json:"client_id"`
	Entities []EntityRef `json:"entities"`
}

// BroadcastRequest представляет запрос рассылки дельты клиентам
type BroadcastRequest struct {
	Targets []string          `json:"targets"`
	Delta   models.StateDelta `json:"delta"`
}

// BroadcastResponse итог рассылки по клиентам
type BroadcastResponse struct {
	Delivered []string `json:"delivered"`
	Skipped   []string `json:"skipped"` // клиенты в режиме опроса
	Failed    []string `json:"failed"`
}

// InvalidateRequest представляет запрос сброса кэша сущностей
type InvalidateRequest struct {
	EntityType string `json:"entity_type"`
	EntityID   string `json:"entity_id,omitempty"` // пустой - весь тип
}

// InvalidateResponse количество удаленных снимков
type InvalidateResponse struct {
	Removed int `json:"removed"`
}

// ResolveConflictRequest представляет конкурирующие версии сущности
type ResolveConflictRequest struct {
	ConflictType string                  `json:"conflict_type"`
	States       []models.VersionedState `json:"states"`
}
