package sync

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpClient "github.com/iudanet/deltasync/internal/client/api"
	"github.com/iudanet/deltasync/internal/client/storage"
	"github.com/iudanet/deltasync/internal/client/storage/boltdb"
	"github.com/iudanet/deltasync/internal/models"
	"github.com/iudanet/deltasync/pkg/api"
)

func setupTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func setupStore(t *testing.T) *boltdb.Storage {
	t.Helper()
	s, err := boltdb.New(context.Background(), filepath.Join(t.TempDir(), "client.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func serverClock(counter uint64) *models.VectorClock {
	return &models.VectorClock{
		ClientID: "c1",
		Versions: map[string]uint64{"c1": 0, models.ServerNodeID: counter},
	}
}

func initialized(t *testing.T, store storage.StateStorage) {
	t.Helper()
	require.NoError(t, store.SaveClientID(context.Background(), "c1"))
}

func TestService_Init(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	require.NoError(t, store.SaveEntity(ctx, models.EntityUser, "stale", models.Document{"name": "old"}))

	mockAPI := &httpClient.ClientAPIMock{
		InitializeClientFunc: func(ctx context.Context, clientID string) (*models.VectorClock, error) {
			return serverClock(0), nil
		},
	}
	svc := NewService(mockAPI, store, setupTestLogger())

	vc, err := svc.Init(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "c1", vc.ClientID)

	clientID, err := svc.ClientID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "c1", clientID)

	stored, err := store.GetVectorClock(ctx)
	require.NoError(t, err)
	assert.Equal(t, vc.Versions, stored.Versions)

	list, err := store.ListEntities(ctx, models.EntityUser)
	require.NoError(t, err)
	assert.Empty(t, list, "init drops documents of the previous registration")
}

func TestService_InitServerError(t *testing.T) {
	store := setupStore(t)
	mockAPI := &httpClient.ClientAPIMock{
		InitializeClientFunc: func(ctx context.Context, clientID string) (*models.VectorClock, error) {
			return nil, httpClient.ErrServer
		},
	}
	svc := NewService(mockAPI, store, setupTestLogger())

	_, err := svc.Init(context.Background(), "c1")
	assert.ErrorIs(t, err, httpClient.ErrServer)

	_, err = svc.ClientID(context.Background())
	assert.ErrorIs(t, err, ErrNotInitialized)
}

func TestService_SyncNotInitialized(t *testing.T) {
	svc := NewService(&httpClient.ClientAPIMock{}, setupStore(t), setupTestLogger())

	_, err := svc.Sync(context.Background(), models.EntityMarket, "m1")
	assert.ErrorIs(t, err, ErrNotInitialized)
}

func TestService_SyncAppliesDeltas(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	initialized(t, store)
	require.NoError(t, store.SaveVectorClock(ctx, serverClock(3)))
	require.NoError(t, store.SaveEntity(ctx, models.EntityMarket, "m1", models.Document{"price": 1.0, "name": "EURUSD"}))
	require.NoError(t, store.SaveEntity(ctx, models.EntityMarket, "m2", models.Document{"price": 2.0}))

	mockAPI := &httpClient.ClientAPIMock{
		DeltaFunc: func(ctx context.Context, req api.DeltaRequest) (*api.DeltaResponse, error) {
			return &api.DeltaResponse{
				Mode: "NORMAL",
				Deltas: []models.StateDelta{
					{
						EntityType:  models.EntityMarket,
						EntityID:    "m1",
						VectorClock: serverClock(4),
						Changes: []models.StateChange{
							{Field: "price", OldValue: 1.0, NewValue: 1.5, ChangeType: models.ChangeUpdate},
						},
					},
					{
						EntityType:  models.EntityMarket,
						EntityID:    "m2",
						VectorClock: serverClock(5),
						Changes: []models.StateChange{
							{Field: "price", OldValue: 2.0, ChangeType: models.ChangeDelete},
						},
					},
				},
			}, nil
		},
	}
	svc := NewService(mockAPI, store, setupTestLogger())

	result, err := svc.Sync(ctx, models.EntityMarket, "")
	require.NoError(t, err)
	assert.Equal(t, &SyncResult{Mode: "NORMAL", Received: 2, Applied: 1, Deleted: 1}, result)

	// запрос несет часы последней полученной дельты
	require.Len(t, mockAPI.DeltaCalls(), 1)
	req := mockAPI.DeltaCalls()[0].Req
	assert.Equal(t, "c1", req.ClientID)
	assert.Equal(t, "market", req.EntityType)
	assert.Empty(t, req.EntityID)
	require.NotNil(t, req.LastKnownVectorClock)
	assert.Equal(t, uint64(3), req.LastKnownVectorClock.Versions[models.ServerNodeID])

	doc, err := store.GetEntity(ctx, models.EntityMarket, "m1")
	require.NoError(t, err)
	assert.Equal(t, models.Document{"price": 1.5, "name": "EURUSD"}, doc)

	_, err = store.GetEntity(ctx, models.EntityMarket, "m2")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	vc, err := store.GetVectorClock(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(5), vc.Versions[models.ServerNodeID])
}

func TestService_FullResendReplacesDocument(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	initialized(t, store)
	require.NoError(t, store.SaveEntity(ctx, models.EntityUser, "u1", models.Document{"name": "Ann", "removed": true}))

	mockAPI := &httpClient.ClientAPIMock{
		DeltaFunc: func(ctx context.Context, req api.DeltaRequest) (*api.DeltaResponse, error) {
			return &api.DeltaResponse{
				Mode: "DEGRADED",
				Deltas: []models.StateDelta{{
					EntityType: models.EntityUser,
					EntityID:   "u1",
					Changes: []models.StateChange{
						{Field: "name", NewValue: "Ann", ChangeType: models.ChangeCreate},
						{Field: "preferences.theme", NewValue: "dark", ChangeType: models.ChangeCreate},
					},
				}},
			}, nil
		},
	}
	svc := NewService(mockAPI, store, setupTestLogger())

	result, err := svc.Sync(ctx, models.EntityUser, "u1")
	require.NoError(t, err)
	assert.Equal(t, "DEGRADED", result.Mode)

	doc, err := store.GetEntity(ctx, models.EntityUser, "u1")
	require.NoError(t, err)
	assert.Equal(t, models.Document{
		"name":        "Ann",
		"preferences": map[string]any{"theme": "dark"},
	}, doc)
}

func TestService_ClockNeverMovesBack(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	initialized(t, store)
	require.NoError(t, store.SaveVectorClock(ctx, serverClock(9)))

	mockAPI := &httpClient.ClientAPIMock{
		DeltaFunc: func(ctx context.Context, req api.DeltaRequest) (*api.DeltaResponse, error) {
			return &api.DeltaResponse{Deltas: []models.StateDelta{{
				EntityType:  models.EntityBroker,
				EntityID:    "b1",
				VectorClock: serverClock(7),
				Changes:     []models.StateChange{{Field: "name", NewValue: "Acme", ChangeType: models.ChangeCreate}},
			}}}, nil
		},
	}
	svc := NewService(mockAPI, store, setupTestLogger())

	_, err := svc.Sync(ctx, models.EntityBroker, "b1")
	require.NoError(t, err)

	vc, err := store.GetVectorClock(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(9), vc.Versions[models.ServerNodeID])
}

func TestService_LamportAndConcurrentClocks(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	initialized(t, store)
	require.NoError(t, store.SaveVectorClock(ctx, &models.VectorClock{
		ClientID:       "c1",
		Versions:       map[string]uint64{"c1": 2, models.ServerNodeID: 3},
		LamportCounter: 4,
	}))

	mockAPI := &httpClient.ClientAPIMock{
		DeltaFunc: func(ctx context.Context, req api.DeltaRequest) (*api.DeltaResponse, error) {
			return &api.DeltaResponse{Deltas: []models.StateDelta{{
				EntityType:   models.EntityMarket,
				EntityID:     "m1",
				LamportClock: &models.LamportClock{NodeID: "c1", Counter: 10},
				VectorClock: &models.VectorClock{
					ClientID: "c1",
					Versions: map[string]uint64{"c1": 1, models.ServerNodeID: 4},
				},
				Changes: []models.StateChange{{Field: "price", NewValue: 1.1, ChangeType: models.ChangeCreate}},
			}}}, nil
		},
	}
	svc := NewService(mockAPI, store, setupTestLogger())

	_, err := svc.Sync(ctx, models.EntityMarket, "m1")
	require.NoError(t, err)

	req := mockAPI.DeltaCalls()[0].Req
	assert.Equal(t, uint64(5), req.LastKnownVectorClock.LamportCounter, "request is a local event")

	vc, err := store.GetVectorClock(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]uint64{"c1": 2, models.ServerNodeID: 4}, vc.Versions)
	assert.Equal(t, uint64(11), vc.LamportCounter)
}

func TestService_SyncStorageError(t *testing.T) {
	boom := errors.New("disk full")
	store := &storage.StateStorageMock{
		GetClientIDFunc:    func(ctx context.Context) (string, error) { return "c1", nil },
		GetVectorClockFunc: func(ctx context.Context) (*models.VectorClock, error) { return nil, nil },
		GetEntityFunc: func(ctx context.Context, entityType models.EntityType, id string) (models.Document, error) {
			return nil, storage.ErrNotFound
		},
		SaveEntityFunc: func(ctx context.Context, entityType models.EntityType, id string, doc models.Document) error {
			return boom
		},
	}
	mockAPI := &httpClient.ClientAPIMock{
		DeltaFunc: func(ctx context.Context, req api.DeltaRequest) (*api.DeltaResponse, error) {
			assert.Nil(t, req.LastKnownVectorClock)
			return &api.DeltaResponse{Deltas: []models.StateDelta{{
				EntityType: models.EntityUser,
				EntityID:   "u1",
				Changes:    []models.StateChange{{Field: "name", NewValue: "Bob", ChangeType: models.ChangeUpdate}},
			}}}, nil
		},
	}
	svc := NewService(mockAPI, store, setupTestLogger())

	_, err := svc.Sync(context.Background(), models.EntityUser, "u1")
	assert.ErrorIs(t, err, boom)
}

func TestService_Watch(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	initialized(t, store)

	mockAPI := &httpClient.ClientAPIMock{
		SubscribeFunc: func(ctx context.Context, clientID string, fn func(models.StateDelta) error) error {
			assert.Equal(t, "c1", clientID)
			for _, price := range []float64{1.1, 1.2} {
				err := fn(models.StateDelta{
					EntityType: models.EntityMarket,
					EntityID:   "m1",
					Changes:    []models.StateChange{{Field: "price", NewValue: price, ChangeType: models.ChangeUpdate}},
				})
				if err != nil {
					return err
				}
			}
			return nil
		},
	}
	svc := NewService(mockAPI, store, setupTestLogger())

	var seen int
	require.NoError(t, svc.Watch(ctx, func(models.StateDelta) { seen++ }))
	assert.Equal(t, 2, seen)

	doc, err := store.GetEntity(ctx, models.EntityMarket, "m1")
	require.NoError(t, err)
	assert.Equal(t, 1.2, doc["price"])
}
