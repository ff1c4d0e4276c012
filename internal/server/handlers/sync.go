package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/iudanet/deltasync/internal/models"
	"github.com/iudanet/deltasync/internal/statesync"
	"github.com/iudanet/deltasync/pkg/api"
)

// SyncHandler handles synchronization requests
type SyncHandler struct {
	logger  *slog.Logger
	service SyncService
}

// NewSyncHandler creates a new sync handler
func NewSyncHandler(logger *slog.Logger, service SyncService) *SyncHandler {
	return &SyncHandler{
		logger:  logger,
		service: service,
	}
}

// InitializeClient обрабатывает POST /api/v1/clients
func (h *SyncHandler) InitializeClient(w http.ResponseWriter, r *http.Request) {
	var req api.InitializeClientRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.logger.Warn("Failed to decode initialize request", "error", err)
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !authorize(w, r, req.ClientID) {
		return
	}

	vc, err := h.service.InitializeClient(r.Context(), req.ClientID)
	if err != nil {
		writeServiceError(w, h.logger, "initialize", err)
		return
	}

	writeJSON(w, h.logger, http.StatusCreated, api.InitializeClientResponse{VectorClock: vc})
}

// CleanupClient обрабатывает DELETE /api/v1/clients/{clientID}
func (h *SyncHandler) CleanupClient(w http.ResponseWriter, r *http.Request) {
	clientID := r.PathValue("clientID")
	if !authorize(w, r, clientID) {
		return
	}

	if err := h.service.CleanupClient(r.Context(), clientID); err != nil {
		writeServiceError(w, h.logger, "cleanup", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Delta обрабатывает POST /api/v1/sync/delta
func (h *SyncHandler) Delta(w http.ResponseWriter, r *http.Request) {
	var req api.DeltaRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.logger.Warn("Failed to decode delta request", "error", err)
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !authorize(w, r, req.ClientID) {
		return
	}

	deltas, err := h.service.CalculateStateDelta(r.Context(), statesync.DeltaRequest{
		LastKnownVectorClock: req.LastKnownVectorClock,
		ClientID:             req.ClientID,
		EntityType:           models.EntityType(req.EntityType),
		EntityID:             req.EntityID,
		MaxDeltaSize:         req.MaxDeltaSize,
	})
	if err != nil {
		writeServiceError(w, h.logger, "delta", err)
		return
	}

	h.respondDeltas(w, r, req.ClientID, deltas)
}

// Batch обрабатывает POST /api/v1/sync/batch
func (h *SyncHandler) Batch(w http.ResponseWriter, r *http.Request) {
	var req api.BatchSyncRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.logger.Warn("Failed to decode batch request", "error", err)
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !authorize(w, r, req.ClientID) {
		return
	}

	refs := make([]statesync.EntityRef, 0, len(req.Entities))
	for _, e := range req.Entities {
		refs = append(refs, statesync.EntityRef{EntityType: models.EntityType(e.EntityType), EntityID: e.EntityID})
	}

	deltas, err := h.service.BatchSyncEntities(r.Context(), req.ClientID, refs)
	if err != nil {
		writeServiceError(w, h.logger, "batch", err)
		return
	}

	h.respondDeltas(w, r, req.ClientID, deltas)
}

func (h *SyncHandler) respondDeltas(w http.ResponseWriter, r *http.Request, clientID string, deltas []models.StateDelta) {
	if deltas == nil {
		deltas = []models.StateDelta{}
	}
	writeJSON(w, h.logger, http.StatusOK, api.DeltaResponse{
		Deltas:    deltas,
		Mode:      string(h.service.DeliveryMode(r.Context(), clientID)),
		Timestamp: time.Now().UnixMilli(),
	})
}

// Broadcast обрабатывает POST /api/v1/broadcast
func (h *SyncHandler) Broadcast(w http.ResponseWriter, r *http.Request) {
	var req api.BroadcastRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.logger.Warn("Failed to decode broadcast request", "error", err)
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	res, err := h.service.BroadcastStateDelta(r.Context(), req.Delta, req.Targets)
	if err != nil {
		writeServiceError(w, h.logger, "broadcast", err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, api.BroadcastResponse{
		Delivered: orEmpty(res.Delivered),
		Skipped:   orEmpty(res.Skipped),
		Failed:    orEmpty(res.Failed),
	})
}

// Invalidate обрабатывает POST /api/v1/entities/invalidate
func (h *SyncHandler) Invalidate(w http.ResponseWriter, r *http.Request) {
	var req api.InvalidateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.logger.Warn("Failed to decode invalidate request", "error", err)
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	removed, err := h.service.InvalidateEntityCache(models.EntityType(req.EntityType), req.EntityID)
	if err != nil {
		writeServiceError(w, h.logger, "invalidate", err)
		return
	}

	h.logger.Info("Entity cache invalidated",
		"entity_type", req.EntityType,
		"entity_id", req.EntityID,
		"removed", removed,
	)
	writeJSON(w, h.logger, http.StatusOK, api.InvalidateResponse{Removed: removed})
}

// ResolveConflict обрабатывает POST /api/v1/conflicts/resolve
func (h *SyncHandler) ResolveConflict(w http.ResponseWriter, r *http.Request) {
	var req api.ResolveConflictRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.logger.Warn("Failed to decode conflict request", "error", err)
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	res, err := h.service.ResolveConflict(req.ConflictType, req.States)
	if err != nil {
		writeServiceError(w, h.logger, "resolve", err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, res)
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
