package statesync

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/deltasync/internal/bandwidth"
	"github.com/iudanet/deltasync/internal/batch"
	"github.com/iudanet/deltasync/internal/clock"
	"github.com/iudanet/deltasync/internal/entity"
	"github.com/iudanet/deltasync/internal/fallback"
	"github.com/iudanet/deltasync/internal/keystore/memory"
	"github.com/iudanet/deltasync/internal/models"
	"github.com/iudanet/deltasync/internal/quality"
)

// markets изменяемый набор рынков для StoreMock
type markets struct {
	byID map[string]*models.Market
	err  error
	mu   sync.Mutex
}

func (m *markets) set(mk *models.Market) {
	m.mu.Lock()
	m.byID[mk.ID] = mk
	m.mu.Unlock()
}

func (m *markets) remove(id string) {
	m.mu.Lock()
	delete(m.byID, id)
	m.mu.Unlock()
}

func (m *markets) fail(err error) {
	m.mu.Lock()
	m.err = err
	m.mu.Unlock()
}

func (m *markets) store() *entity.StoreMock {
	return &entity.StoreMock{
		FindOneFunc: func(_ context.Context, _ models.EntityType, id string) (models.Entity, error) {
			m.mu.Lock()
			defer m.mu.Unlock()
			if m.err != nil {
				return nil, m.err
			}
			mk, ok := m.byID[id]
			if !ok {
				return nil, entity.ErrNotFound
			}
			cp := *mk
			return &cp, nil
		},
		FindManyFunc: func(_ context.Context, _ models.EntityType, _ entity.Filter, limit int) ([]models.Entity, error) {
			m.mu.Lock()
			defer m.mu.Unlock()
			if m.err != nil {
				return nil, m.err
			}
			out := make([]models.Entity, 0, len(m.byID))
			for _, id := range []string{"m1", "m2", "m3"} {
				if mk, ok := m.byID[id]; ok && len(out) < limit {
					cp := *mk
					out = append(out, &cp)
				}
			}
			return out, nil
		},
	}
}

type env struct {
	svc      *Service
	clocks   *clock.Store
	monitor  *quality.Monitor
	fallback *fallback.Controller
	bw       *bandwidth.Validator
	markets  *markets
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newEnv(t *testing.T) *env {
	t.Helper()
	logger := testLogger()

	kv := memory.New(time.Minute)
	t.Cleanup(func() { _ = kv.Close() })

	q := batch.New(batch.Config{FlushInterval: time.Millisecond}, logger, nil)
	t.Cleanup(func() { _ = q.Close(context.Background()) })

	mk := &markets{byID: map[string]*models.Market{
		"m1": {ID: "m1", Symbol: "EURUSD", Price: 1.08, Status: "open"},
		"m2": {ID: "m2", Symbol: "GBPUSD", Price: 1.27, Status: "open"},
		"m3": {ID: "m3", Symbol: "USDJPY", Price: 151.2, Status: "open"},
	}}

	// короткий TTL текущих снимков, чтобы изменения в хранилище были видны
	cache := entity.NewCache(mk.store(), q, logger, entity.CacheConfig{CurrentTTL: time.Millisecond})

	mon, err := quality.NewMonitor(kv, nil, nil, nil, logger, quality.DefaultConfig())
	require.NoError(t, err)

	clocks := clock.NewStore(kv, logger, 0)
	fb := fallback.New(mon, kv, mon.Bus(), nil, logger, fallback.DefaultConfig())
	bw := bandwidth.NewValidator(kv, mon, nil, logger, bandwidth.DefaultTargetReduction)

	svc := New(Deps{
		Clocks:    clocks,
		Entities:  cache,
		Queue:     q,
		Monitor:   mon,
		Fallback:  fb,
		Bandwidth: bw,
		Logger:    logger,
	}, DefaultConfig())

	return &env{svc: svc, clocks: clocks, monitor: mon, fallback: fb, bw: bw, markets: mk}
}

func expireCurrent() { time.Sleep(5 * time.Millisecond) }

func changeTypes(d models.StateDelta) map[models.ChangeType]int {
	out := make(map[models.ChangeType]int)
	for _, c := range d.Changes {
		out[c.ChangeType]++
	}
	return out
}

func TestService_InitializeClient(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	vc, err := e.svc.InitializeClient(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "c1", vc.ClientID)
	assert.Equal(t, models.ServerNodeID, vc.NodeID)
	assert.Empty(t, vc.Versions)

	for _, id := range []string{"", "server", "bad:id"} {
		_, err := e.svc.InitializeClient(ctx, id)
		assert.ErrorIs(t, err, ErrInvalidInput, "client id %q", id)
	}
}

func TestService_CalculateStateDelta_FirstSyncCreatesEverything(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	_, err := e.svc.InitializeClient(ctx, "c1")
	require.NoError(t, err)

	deltas, err := e.svc.CalculateStateDelta(ctx, DeltaRequest{
		ClientID:   "c1",
		EntityType: models.EntityMarket,
		EntityID:   "m1",
	})
	require.NoError(t, err)
	require.Len(t, deltas, 1)

	d := deltas[0]
	assert.Equal(t, models.EntityMarket, d.EntityType)
	assert.Equal(t, "m1", d.EntityID)
	assert.Equal(t, len(d.Changes), changeTypes(d)[models.ChangeCreate])
	require.NotNil(t, d.LamportClock)
	assert.Equal(t, "c1", d.LamportClock.NodeID)
	assert.Equal(t, uint64(1), d.LamportClock.Counter)
	require.NotNil(t, d.VectorClock)
	assert.Positive(t, d.VectorClock.Versions[models.ServerNodeID])

	// без изменений дельты нет
	expireCurrent()
	deltas, err = e.svc.CalculateStateDelta(ctx, DeltaRequest{ClientID: "c1", EntityType: models.EntityMarket, EntityID: "m1"})
	require.NoError(t, err)
	assert.Empty(t, deltas)

	stats, ok := e.svc.ClientErrorStats("c1")
	require.True(t, ok)
	assert.Zero(t, stats.ErrorCount)
	assert.Positive(t, stats.LastSyncTime)
}

func TestService_CalculateStateDelta_Update(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	req := DeltaRequest{ClientID: "c1", EntityType: models.EntityMarket, EntityID: "m1"}

	_, err := e.svc.CalculateStateDelta(ctx, req)
	require.NoError(t, err)

	e.markets.set(&models.Market{ID: "m1", Symbol: "EURUSD", Price: 1.09, Status: "open"})
	expireCurrent()

	deltas, err := e.svc.CalculateStateDelta(ctx, req)
	require.NoError(t, err)
	require.Len(t, deltas, 1)
	require.Len(t, deltas[0].Changes, 1)

	ch := deltas[0].Changes[0]
	assert.Equal(t, "price", ch.Field)
	assert.Equal(t, models.ChangeUpdate, ch.ChangeType)
	assert.Equal(t, 1.08, ch.OldValue)
	assert.Equal(t, 1.09, ch.NewValue)
}

func TestService_CalculateStateDelta_AfterInvalidationAllCreate(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	req := DeltaRequest{ClientID: "c1", EntityType: models.EntityMarket, EntityID: "m1"}

	first, err := e.svc.CalculateStateDelta(ctx, req)
	require.NoError(t, err)
	require.Len(t, first, 1)

	e.markets.set(&models.Market{ID: "m1", Symbol: "EURUSD", Price: 1.10, Status: "halted"})
	removed, err := e.svc.InvalidateEntityCache(models.EntityMarket, "m1")
	require.NoError(t, err)
	assert.Positive(t, removed)

	deltas, err := e.svc.CalculateStateDelta(ctx, req)
	require.NoError(t, err)
	require.Len(t, deltas, 1)
	assert.Len(t, deltas[0].Changes, len(first[0].Changes))
	for _, ch := range deltas[0].Changes {
		assert.Equal(t, models.ChangeCreate, ch.ChangeType, ch.Field)
	}

	_, err = e.svc.InvalidateEntityCache("account", "")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_CalculateStateDelta_DeletedEntity(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	req := DeltaRequest{ClientID: "c1", EntityType: models.EntityMarket, EntityID: "m1"}

	_, err := e.svc.CalculateStateDelta(ctx, req)
	require.NoError(t, err)

	e.markets.remove("m1")
	expireCurrent()

	deltas, err := e.svc.CalculateStateDelta(ctx, req)
	require.NoError(t, err)
	require.Len(t, deltas, 1)
	for _, ch := range deltas[0].Changes {
		assert.Equal(t, models.ChangeDelete, ch.ChangeType)
	}

	deltas, err = e.svc.CalculateStateDelta(ctx, req)
	require.NoError(t, err)
	assert.Empty(t, deltas, "deletion is sent once")
}

func TestService_CalculateStateDelta_PerClientPrevious(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.svc.CalculateStateDelta(ctx, DeltaRequest{ClientID: "c1", EntityType: models.EntityMarket, EntityID: "m1"})
	require.NoError(t, err)

	// второй клиент не видел снимок и получает его целиком
	deltas, err := e.svc.CalculateStateDelta(ctx, DeltaRequest{ClientID: "c2", EntityType: models.EntityMarket, EntityID: "m1"})
	require.NoError(t, err)
	require.Len(t, deltas, 1)
	assert.Equal(t, len(deltas[0].Changes), changeTypes(deltas[0])[models.ChangeCreate])
}

func TestService_CalculateStateDelta_StaleClientGetsFullState(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	initial, err := e.svc.InitializeClient(ctx, "c1")
	require.NoError(t, err)

	first, err := e.svc.CalculateStateDelta(ctx, DeltaRequest{ClientID: "c1", EntityType: models.EntityMarket, EntityID: "m1"})
	require.NoError(t, err)
	require.Len(t, first, 1)
	expireCurrent()

	// клиент подтверждает полученные часы: изменений нет
	deltas, err := e.svc.CalculateStateDelta(ctx, DeltaRequest{
		ClientID:             "c1",
		EntityType:           models.EntityMarket,
		EntityID:             "m1",
		LastKnownVectorClock: first[0].VectorClock,
	})
	require.NoError(t, err)
	assert.Empty(t, deltas)

	// клиент присылает старые часы: ответ потерян, отправляем все заново
	deltas, err = e.svc.CalculateStateDelta(ctx, DeltaRequest{
		ClientID:             "c1",
		EntityType:           models.EntityMarket,
		EntityID:             "m1",
		LastKnownVectorClock: initial,
	})
	require.NoError(t, err)
	require.Len(t, deltas, 1)
	assert.Equal(t, len(deltas[0].Changes), changeTypes(deltas[0])[models.ChangeCreate])
}

func TestService_CalculateStateDelta_LamportMerge(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	vc, err := e.svc.InitializeClient(ctx, "c1")
	require.NoError(t, err)
	vc.LamportCounter = 100

	deltas, err := e.svc.CalculateStateDelta(ctx, DeltaRequest{
		ClientID:             "c1",
		EntityType:           models.EntityMarket,
		EntityID:             "m1",
		LastKnownVectorClock: vc,
	})
	require.NoError(t, err)
	require.Len(t, deltas, 1)
	assert.Equal(t, uint64(101), deltas[0].LamportClock.Counter)
	assert.Equal(t, uint64(101), deltas[0].VectorClock.LamportCounter)

	lc, err := e.clocks.GetLamport(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, uint64(101), lc.Counter)
}

func TestService_CalculateStateDelta_RecreatesExpiredClock(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.svc.CalculateStateDelta(ctx, DeltaRequest{ClientID: "c1", EntityType: models.EntityMarket, EntityID: "m1"})
	require.NoError(t, err)
	_, err = e.svc.CalculateStateDelta(ctx, DeltaRequest{ClientID: "c1", EntityType: models.EntityMarket, EntityID: "m2"})
	require.NoError(t, err)

	// векторные часы пропали, счетчик Лампорта должен продолжиться
	require.NoError(t, e.clocks.DeleteClient(ctx, "c1"))
	_, err = e.clocks.IncrementLamport(ctx, "c1")
	require.NoError(t, err)

	deltas, err := e.svc.CalculateStateDelta(ctx, DeltaRequest{ClientID: "c1", EntityType: models.EntityMarket, EntityID: "m3"})
	require.NoError(t, err)
	require.Len(t, deltas, 1)
	assert.Greater(t, deltas[0].LamportClock.Counter, uint64(1))

	vc, err := e.clocks.GetVectorClock(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, deltas[0].LamportClock.Counter, vc.LamportCounter)
}

func TestService_CalculateStateDelta_InvalidInput(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	foreign, err := e.svc.InitializeClient(ctx, "c2")
	require.NoError(t, err)

	tests := []struct {
		name string
		req  DeltaRequest
	}{
		{name: "empty client", req: DeltaRequest{EntityType: models.EntityMarket}},
		{name: "unknown type", req: DeltaRequest{ClientID: "c1", EntityType: "account"}},
		{name: "bad entity id", req: DeltaRequest{ClientID: "c1", EntityType: models.EntityMarket, EntityID: "a b"}},
		{name: "negative size", req: DeltaRequest{ClientID: "c1", EntityType: models.EntityMarket, MaxDeltaSize: -1}},
		{name: "foreign clock", req: DeltaRequest{ClientID: "c1", EntityType: models.EntityMarket, LastKnownVectorClock: foreign}},
		{name: "invalid clock", req: DeltaRequest{ClientID: "c1", EntityType: models.EntityMarket, LastKnownVectorClock: &models.VectorClock{ClientID: "c1"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deltas, err := e.svc.CalculateStateDelta(ctx, tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Nil(t, deltas)
		})
	}
}

func TestService_CalculateStateDelta_ListAndTruncation(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	deltas, err := e.svc.CalculateStateDelta(ctx, DeltaRequest{
		ClientID:     "c1",
		EntityType:   models.EntityMarket,
		MaxDeltaSize: 2,
	})
	require.NoError(t, err)
	require.Len(t, deltas, 2)
	assert.Equal(t, "m1", deltas[0].EntityID)
	assert.Equal(t, "m2", deltas[1].EntityID)

	// усеченная сущность не считается отправленной
	deltas, err = e.svc.CalculateStateDelta(ctx, DeltaRequest{ClientID: "c1", EntityType: models.EntityMarket})
	require.NoError(t, err)
	require.Len(t, deltas, 1)
	assert.Equal(t, "m3", deltas[0].EntityID)
}

func TestService_CalculateStateDelta_BandwidthValidation(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	req := DeltaRequest{ClientID: "c1", EntityType: models.EntityMarket, EntityID: "m1"}

	_, err := e.svc.CalculateStateDelta(ctx, req)
	require.NoError(t, err)

	res, err := e.bw.Last(ctx, "c1")
	require.NoError(t, err)
	assert.False(t, res.IsValid, "full creation is larger than the snapshot")
	assert.Positive(t, res.FullSize)

	totals, err := e.monitor.Totals(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, res.DeltaSize, totals.BytesSent)
	assert.Equal(t, int64(1), totals.Messages)

	expireCurrent()
	_, err = e.svc.CalculateStateDelta(ctx, req)
	require.NoError(t, err)

	res, err = e.bw.Last(ctx, "c1")
	require.NoError(t, err)
	assert.True(t, res.IsValid)
	assert.Equal(t, float64(100), res.ActualReduction)
}

func TestService_CalculateStateDelta_UpstreamFailure(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	e.markets.fail(errors.New("db is down"))

	deltas, err := e.svc.CalculateStateDelta(ctx, DeltaRequest{ClientID: "c1", EntityType: models.EntityMarket, EntityID: "m1"})
	require.NoError(t, err)
	assert.Empty(t, deltas)
	assert.NotNil(t, deltas)

	state, reasons, err := e.fallback.State(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, fallback.StateDegraded, state)
	require.Len(t, reasons, 1)
	assert.Contains(t, reasons[0], "upstream failure")

	stats, ok := e.svc.ClientErrorStats("c1")
	require.True(t, ok)
	assert.Equal(t, int64(1), stats.ErrorCount)
	require.Len(t, stats.Errors, 1)
	assert.Equal(t, opCalculate, stats.Errors[0].Operation)
	assert.Contains(t, stats.Errors[0].Message, "db is down")
}

func TestService_CalculateStateDelta_SlowSyncActivatesFallback(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	var (
		mu  sync.Mutex
		now = time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	)
	// каждое обращение к часам сервиса сдвигает время на секунду
	e.svc.now = func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		now = now.Add(time.Second)
		return now
	}

	deltas, err := e.svc.CalculateStateDelta(ctx, DeltaRequest{ClientID: "c1", EntityType: models.EntityMarket, EntityID: "m1"})
	require.NoError(t, err)
	assert.Len(t, deltas, 1, "slow sync still returns its result")

	state, reasons, err := e.fallback.State(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, fallback.StateDegraded, state)
	require.NotEmpty(t, reasons)
	assert.Contains(t, reasons[0], "slow sync")
}

func TestService_BatchSyncEntities(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	deltas, err := e.svc.BatchSyncEntities(ctx, "c1", []EntityRef{
		{EntityType: models.EntityMarket, EntityID: "m1"},
		{EntityType: models.EntityMarket, EntityID: "m2"},
		{EntityType: models.EntityMarket, EntityID: "missing"},
	})
	require.NoError(t, err)
	require.Len(t, deltas, 2)
	assert.Equal(t, "m1", deltas[0].EntityID)
	assert.Equal(t, "m2", deltas[1].EntityID)
	assert.NotEqual(t, deltas[0].LamportClock.Counter, deltas[1].LamportClock.Counter)

	_, err = e.svc.BatchSyncEntities(ctx, "c1", []EntityRef{{EntityType: "account"}})
	assert.ErrorIs(t, err, ErrInvalidInput)

	tooMany := make([]EntityRef, 101)
	for i := range tooMany {
		tooMany[i] = EntityRef{EntityType: models.EntityMarket}
	}
	_, err = e.svc.BatchSyncEntities(ctx, "c1", tooMany)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_BatchSyncEntities_TruncatedEntityStaysUnsent(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.svc.cfg.MaxDeltaSize = 1

	deltas, err := e.svc.BatchSyncEntities(ctx, "c1", []EntityRef{
		{EntityType: models.EntityMarket, EntityID: "m1"},
		{EntityType: models.EntityMarket, EntityID: "m2"},
		{EntityType: models.EntityMarket, EntityID: "m1"},
	})
	require.NoError(t, err)
	require.Len(t, deltas, 1)
	assert.Equal(t, "m1", deltas[0].EntityID)

	// m2 не ушел клиенту и приходит целиком
	deltas, err = e.svc.CalculateStateDelta(ctx, DeltaRequest{ClientID: "c1", EntityType: models.EntityMarket, EntityID: "m2"})
	require.NoError(t, err)
	require.Len(t, deltas, 1)
	assert.Equal(t, len(deltas[0].Changes), changeTypes(deltas[0])[models.ChangeCreate])

	expireCurrent()
	deltas, err = e.svc.CalculateStateDelta(ctx, DeltaRequest{ClientID: "c1", EntityType: models.EntityMarket, EntityID: "m1"})
	require.NoError(t, err)
	assert.Empty(t, deltas)
}

func TestService_CalculateStateDelta_ListReportsDeleted(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	req := DeltaRequest{ClientID: "c1", EntityType: models.EntityMarket}

	deltas, err := e.svc.CalculateStateDelta(ctx, req)
	require.NoError(t, err)
	require.Len(t, deltas, 3)

	e.markets.remove("m2")
	expireCurrent()

	deltas, err = e.svc.CalculateStateDelta(ctx, req)
	require.NoError(t, err)
	require.Len(t, deltas, 1)
	assert.Equal(t, "m2", deltas[0].EntityID)
	assert.Equal(t, len(deltas[0].Changes), changeTypes(deltas[0])[models.ChangeDelete])

	expireCurrent()
	deltas, err = e.svc.CalculateStateDelta(ctx, req)
	require.NoError(t, err)
	assert.Empty(t, deltas, "deletion is sent once")
}

func TestService_PruneInactive_KeepsDegradedAndSyncingClients(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.svc.cfg.InactiveAfter = 50 * time.Millisecond

	for _, id := range []string{"c1", "c2", "c3"} {
		_, err := e.svc.RecordLatency(ctx, id, 40)
		require.NoError(t, err)
	}
	changed, err := e.fallback.Activate(ctx, "c1", "slow sync")
	require.NoError(t, err)
	require.True(t, changed)

	time.Sleep(80 * time.Millisecond)

	// c1 опрашивает по HTTP, c3 синхронизируется без замеров качества
	for _, id := range []string{"c1", "c3"} {
		_, err := e.svc.CalculateStateDelta(ctx, DeltaRequest{ClientID: id, EntityType: models.EntityMarket, EntityID: "m1"})
		require.NoError(t, err)
	}

	e.svc.pruneInactive(ctx)

	ids, err := e.monitor.ListClients(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"c1", "c3"}, ids)

	state, _, err := e.fallback.State(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, fallback.StateDegraded, state)

	history, err := e.fallback.History(ctx, "c1")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, fallback.StateDegraded, history[0].To)
}

func TestService_BroadcastStateDelta(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	var mu sync.Mutex
	got := make(map[string]models.StateDelta)
	b := &BroadcasterMock{
		EnqueueFunc: func(_ context.Context, clientID string, d models.StateDelta) error {
			if clientID == "c4" {
				return errors.New("outbox full")
			}
			mu.Lock()
			got[clientID] = d
			mu.Unlock()
			return nil
		},
	}
	e.svc.SetBroadcaster(b)

	_, err := e.svc.InitializeClient(ctx, "c1")
	require.NoError(t, err)
	_, err = e.fallback.Activate(ctx, "c2", "manual test")
	require.NoError(t, err)

	d := models.StateDelta{
		EntityType: models.EntityMarket,
		EntityID:   "m1",
		Changes:    []models.StateChange{{Field: "price", NewValue: 1.1, ChangeType: models.ChangeUpdate}},
	}
	res, err := e.svc.BroadcastStateDelta(ctx, d, []string{"c1", "c2", "bad:id", "c4"})
	require.NoError(t, err)

	assert.Equal(t, []string{"c1"}, res.Delivered)
	assert.Equal(t, []string{"c2"}, res.Skipped)
	assert.ElementsMatch(t, []string{"bad:id", "c4"}, res.Failed)

	require.Contains(t, got, "c1")
	assert.Equal(t, "c1", got["c1"].LamportClock.NodeID)
	assert.Equal(t, uint64(1), got["c1"].LamportClock.Counter)
	require.NotNil(t, got["c1"].VectorClock)
	assert.Equal(t, "c1", got["c1"].VectorClock.ClientID)
	assert.Positive(t, got["c1"].Timestamp)
	assert.Nil(t, d.LamportClock, "input delta is not modified")

	_, err = e.svc.BroadcastStateDelta(ctx, models.StateDelta{EntityType: "account"}, []string{"c1"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_BroadcastWithoutBroadcaster(t *testing.T) {
	e := newEnv(t)

	res, err := e.svc.BroadcastStateDelta(context.Background(),
		models.StateDelta{EntityType: models.EntityMarket, EntityID: "m1"}, []string{"c1"})
	require.NoError(t, err)
	assert.Equal(t, []string{"c1"}, res.Skipped)
	assert.Empty(t, res.Delivered)
}

func TestService_RecordLatencyTriggersFallback(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	var qm *models.ConnectionQualityMetrics
	var err error
	for i := 0; i < 10; i++ {
		qm, err = e.svc.RecordLatency(ctx, "c1", 250)
		require.NoError(t, err)
	}
	require.NotNil(t, qm)
	assert.True(t, qm.UsingPollingFallback)
	assert.NotEmpty(t, qm.FallbackReasons)

	got, err := e.svc.GetQualityMetrics(ctx, "c1")
	require.NoError(t, err)
	assert.True(t, got.UsingPollingFallback)

	_, err = e.svc.RecordLatency(ctx, "c1", -5)
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = e.svc.RecordLatency(ctx, "", 5)
	assert.ErrorIs(t, err, ErrInvalidInput)

	history, err := e.svc.FallbackHistory(ctx, "c1")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, fallback.StateDegraded, history[0].To)

	alerts, err := e.svc.GetAlerts(ctx, "c1", time.Time{})
	require.NoError(t, err)
	assert.NotEmpty(t, alerts)

	changed, err := e.svc.DeactivateFallback(ctx, "c1", "")
	require.NoError(t, err)
	assert.True(t, changed)

	history, err = e.svc.FallbackHistory(ctx, "c1")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.True(t, history[0].Manual)
}

func TestService_RecordPacketLossAndBandwidth(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	qm, err := e.svc.RecordPacketLoss(ctx, "c1", 1, 100)
	require.NoError(t, err)
	require.NotNil(t, qm)
	assert.InDelta(t, 0.01, qm.PacketLoss, 1e-9)

	_, err = e.svc.RecordPacketLoss(ctx, "c1", 5, 1)
	assert.ErrorIs(t, err, ErrInvalidInput)

	require.NoError(t, e.svc.RecordBandwidthUsage(ctx, "c1", 100, 40))
	assert.ErrorIs(t, e.svc.RecordBandwidthUsage(ctx, "c1", -1, 0), ErrInvalidInput)

	report, err := e.svc.QualityReport(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, fallback.StateNormal, report.Mode)
	assert.Equal(t, int64(100), report.Totals.BytesSent)
	assert.Equal(t, int64(40), report.Totals.BytesReceived)
	assert.NotNil(t, report.Metrics)
	assert.Positive(t, report.Thresholds.PingIntervalMs)
}

func TestService_GetQualityMetrics_Unknown(t *testing.T) {
	e := newEnv(t)

	qm, err := e.svc.GetQualityMetrics(context.Background(), "ghost")
	require.NoError(t, err)
	assert.Nil(t, qm)
}

func TestService_GetSystemHealthMetrics(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	for _, id := range []string{"c1", "c2"} {
		_, err := e.svc.RecordLatency(ctx, id, 40)
		require.NoError(t, err)
	}
	_, err := e.fallback.Activate(ctx, "c2", "manual test")
	require.NoError(t, err)

	h, err := e.svc.GetSystemHealthMetrics(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, h.TotalClients)
	assert.Equal(t, 1, h.ClientsInFallback)
	assert.Positive(t, h.AverageQualityScore)
}

func TestService_ResolveConflict(t *testing.T) {
	e := newEnv(t)

	res, err := e.svc.ResolveConflict("market_price", []models.VersionedState{
		{NodeID: "b", LamportCounter: 7, State: models.Document{"price": 1.0}},
		{NodeID: "a", LamportCounter: 7, State: models.Document{"price": 2.0}},
		{NodeID: "c", LamportCounter: 3, State: models.Document{"price": 3.0}},
	})
	require.NoError(t, err)
	assert.Equal(t, "a", res.WinnerNodeID)
	assert.Equal(t, models.StrategyLastWriteWins, res.Strategy)
	assert.Equal(t, 2.0, res.MergedState["price"])

	_, err = e.svc.ResolveConflict("market_price", nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_CleanupClient(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.svc.CalculateStateDelta(ctx, DeltaRequest{ClientID: "c1", EntityType: models.EntityMarket, EntityID: "m1"})
	require.NoError(t, err)
	_, err = e.svc.RecordLatency(ctx, "c1", 40)
	require.NoError(t, err)

	require.NoError(t, e.svc.CleanupClient(ctx, "c1"))

	_, err = e.clocks.GetVectorClock(ctx, "c1")
	assert.ErrorIs(t, err, clock.ErrNotFound)

	qm, err := e.svc.GetQualityMetrics(ctx, "c1")
	require.NoError(t, err)
	assert.Nil(t, qm)

	_, err = e.bw.Last(ctx, "c1")
	assert.ErrorIs(t, err, bandwidth.ErrNotFound)

	_, ok := e.svc.ClientErrorStats("c1")
	assert.False(t, ok)

	// предыдущие снимки забыты: следующая синхронизация отдает все заново
	expireCurrent()
	deltas, err := e.svc.CalculateStateDelta(ctx, DeltaRequest{ClientID: "c1", EntityType: models.EntityMarket, EntityID: "m1"})
	require.NoError(t, err)
	require.Len(t, deltas, 1)
	assert.Equal(t, len(deltas[0].Changes), changeTypes(deltas[0])[models.ChangeCreate])

	assert.ErrorIs(t, e.svc.CleanupClient(ctx, ""), ErrInvalidInput)
}

func TestService_StartClose(t *testing.T) {
	e := newEnv(t)
	e.svc.Start(context.Background())
	e.svc.Start(context.Background())

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, e.svc.Close(ctx))
}
