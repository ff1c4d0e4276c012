package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/deltasync/internal/fallback"
	"github.com/iudanet/deltasync/internal/models"
	"github.com/iudanet/deltasync/internal/statesync"
	"github.com/iudanet/deltasync/pkg/api"
)

func jsonBody(t *testing.T, v any) *bytes.Reader {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(data)
}

func withIdentity(req *http.Request, clientID string) *http.Request {
	return req.WithContext(WithClientID(req.Context(), clientID))
}

func normalMode(context.Context, string) fallback.State { return fallback.StateNormal }

func TestSyncHandler_InitializeClient(t *testing.T) {
	svc := &SyncServiceMock{
		InitializeClientFunc: func(_ context.Context, clientID string) (*models.VectorClock, error) {
			return &models.VectorClock{Versions: map[string]uint64{}}, nil
		},
	}
	h := NewSyncHandler(setupTestLogger(), svc)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/clients", jsonBody(t, api.InitializeClientRequest{ClientID: "c1"}))
	w := httptest.NewRecorder()
	h.InitializeClient(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, svc.InitializeClientCalls(), 1)
	assert.Equal(t, "c1", svc.InitializeClientCalls()[0].ClientID)

	var resp api.InitializeClientResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.NotNil(t, resp.VectorClock)
}

func TestSyncHandler_InitializeClient_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		identity   string
		serviceErr error
		wantStatus int
	}{
		{name: "bad json", body: "{", wantStatus: http.StatusBadRequest},
		{name: "invalid client", body: `{"client_id":"bad:id"}`, serviceErr: statesync.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{name: "identity mismatch", body: `{"client_id":"c1"}`, identity: "c2", wantStatus: http.StatusForbidden},
		{name: "store failure", body: `{"client_id":"c1"}`, serviceErr: errors.New("store down"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &SyncServiceMock{
				InitializeClientFunc: func(context.Context, string) (*models.VectorClock, error) {
					return nil, tt.serviceErr
				},
			}
			h := NewSyncHandler(setupTestLogger(), svc)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/clients", strings.NewReader(tt.body))
			if tt.identity != "" {
				req = withIdentity(req, tt.identity)
			}
			w := httptest.NewRecorder()
			h.InitializeClient(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestSyncHandler_Delta(t *testing.T) {
	lastKnown := &models.VectorClock{Versions: map[string]uint64{"server": 3}}
	svc := &SyncServiceMock{
		CalculateStateDeltaFunc: func(_ context.Context, req statesync.DeltaRequest) ([]models.StateDelta, error) {
			return []models.StateDelta{{EntityType: req.EntityType, EntityID: req.EntityID}}, nil
		},
		DeliveryModeFunc: func(context.Context, string) fallback.State { return fallback.StateDegraded },
	}
	h := NewSyncHandler(setupTestLogger(), svc)

	body := api.DeltaRequest{
		ClientID:             "c1",
		EntityType:           "market",
		EntityID:             "m1",
		MaxDeltaSize:         10,
		LastKnownVectorClock: lastKnown,
	}
	req := withIdentity(httptest.NewRequest(http.MethodPost, "/api/v1/sync/delta", jsonBody(t, body)), "c1")
	w := httptest.NewRecorder()
	h.Delta(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	calls := svc.CalculateStateDeltaCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, models.EntityMarket, calls[0].Req.EntityType)
	assert.Equal(t, 10, calls[0].Req.MaxDeltaSize)
	assert.Equal(t, uint64(3), calls[0].Req.LastKnownVectorClock.Versions["server"])

	var resp api.DeltaResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.Len(t, resp.Deltas, 1)
	assert.Equal(t, "m1", resp.Deltas[0].EntityID)
	assert.Equal(t, "DEGRADED", resp.Mode)
}

func TestSyncHandler_Delta_EmptyIsArray(t *testing.T) {
	svc := &SyncServiceMock{
		CalculateStateDeltaFunc: func(context.Context, statesync.DeltaRequest) ([]models.StateDelta, error) {
			return nil, nil
		},
		DeliveryModeFunc: normalMode,
	}
	h := NewSyncHandler(setupTestLogger(), svc)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/sync/delta", strings.NewReader(`{"client_id":"c1","entity_type":"user"}`))
	w := httptest.NewRecorder()
	h.Delta(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"deltas":[]`)
	assert.Contains(t, w.Body.String(), `"mode":"NORMAL"`)
}

func TestSyncHandler_Batch(t *testing.T) {
	svc := &SyncServiceMock{
		BatchSyncEntitiesFunc: func(_ context.Context, _ string, refs []statesync.EntityRef) ([]models.StateDelta, error) {
			out := make([]models.StateDelta, 0, len(refs))
			for _, r := range refs {
				out = append(out, models.StateDelta{EntityType: r.EntityType, EntityID: r.EntityID})
			}
			return out, nil
		},
		DeliveryModeFunc: normalMode,
	}
	h := NewSyncHandler(setupTestLogger(), svc)

	body := api.BatchSyncRequest{
		ClientID: "c1",
		Entities: []api.EntityRef{{EntityType: "market", EntityID: "m1"}, {EntityType: "broker"}},
	}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/sync/batch", jsonBody(t, body))
	w := httptest.NewRecorder()
	h.Batch(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	refs := svc.BatchSyncEntitiesCalls()[0].Refs
	require.Len(t, refs, 2)
	assert.Equal(t, models.EntityBroker, refs[1].EntityType)

	var resp api.DeltaResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Len(t, resp.Deltas, 2)
}

func TestSyncHandler_CleanupClient(t *testing.T) {
	svc := &SyncServiceMock{
		CleanupClientFunc: func(context.Context, string) error { return nil },
	}
	h := NewSyncHandler(setupTestLogger(), svc)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/clients/c1", nil)
	req.SetPathValue("clientID", "c1")
	w := httptest.NewRecorder()
	h.CleanupClient(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	require.Len(t, svc.CleanupClientCalls(), 1)

	// чужой клиент
	req = withIdentity(httptest.NewRequest(http.MethodDelete, "/api/v1/clients/c1", nil), "c2")
	req.SetPathValue("clientID", "c1")
	w = httptest.NewRecorder()
	h.CleanupClient(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Len(t, svc.CleanupClientCalls(), 1)
}

func TestSyncHandler_Broadcast(t *testing.T) {
	svc := &SyncServiceMock{
		BroadcastStateDeltaFunc: func(_ context.Context, _ models.StateDelta, targets []string) (statesync.BroadcastResult, error) {
			return statesync.BroadcastResult{Delivered: targets[:1], Skipped: targets[1:]}, nil
		},
	}
	h := NewSyncHandler(setupTestLogger(), svc)

	body := api.BroadcastRequest{
		Targets: []string{"c1", "c2"},
		Delta:   models.StateDelta{EntityType: models.EntityMarket, EntityID: "m1"},
	}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/broadcast", jsonBody(t, body))
	w := httptest.NewRecorder()
	h.Broadcast(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp api.BroadcastResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, []string{"c1"}, resp.Delivered)
	assert.Equal(t, []string{"c2"}, resp.Skipped)
	assert.NotNil(t, resp.Failed)
	assert.Equal(t, "m1", svc.BroadcastStateDeltaCalls()[0].D.EntityID)
}

func TestSyncHandler_Invalidate(t *testing.T) {
	svc := &SyncServiceMock{
		InvalidateEntityCacheFunc: func(entityType models.EntityType, id string) (int, error) {
			if entityType == "wallet" {
				return 0, statesync.ErrInvalidInput
			}
			return 3, nil
		},
	}
	h := NewSyncHandler(setupTestLogger(), svc)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/entities/invalidate", strings.NewReader(`{"entity_type":"market"}`))
	w := httptest.NewRecorder()
	h.Invalidate(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp api.InvalidateResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, 3, resp.Removed)

	req = httptest.NewRequest(http.MethodPost, "/api/v1/entities/invalidate", strings.NewReader(`{"entity_type":"wallet"}`))
	w = httptest.NewRecorder()
	h.Invalidate(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSyncHandler_ResolveConflict(t *testing.T) {
	svc := &SyncServiceMock{
		ResolveConflictFunc: func(conflictType string, states []models.VersionedState) (*models.Resolution, error) {
			if len(states) == 0 {
				return nil, statesync.ErrInvalidInput
			}
			return &models.Resolution{WinnerNodeID: states[0].NodeID}, nil
		},
	}
	h := NewSyncHandler(setupTestLogger(), svc)

	body := api.ResolveConflictRequest{
		ConflictType: "market",
		States:       []models.VersionedState{{NodeID: "n1"}},
	}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/conflicts/resolve", jsonBody(t, body))
	w := httptest.NewRecorder()
	h.ResolveConflict(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var res models.Resolution
	require.NoError(t, json.NewDecoder(w.Body).Decode(&res))
	assert.Equal(t, "n1", res.WinnerNodeID)

	req = httptest.NewRequest(http.MethodPost, "/api/v1/conflicts/resolve", strings.NewReader(`{"conflict_type":"market","states":[]}`))
	w = httptest.NewRecorder()
	h.ResolveConflict(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
