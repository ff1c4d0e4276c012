package statesync

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/iudanet/deltasync/internal/clock"
	"github.com/iudanet/deltasync/internal/crdt"
	"github.com/iudanet/deltasync/internal/delta"
	"github.com/iudanet/deltasync/internal/entity"
	"github.com/iudanet/deltasync/internal/metrics"
	"github.com/iudanet/deltasync/internal/models"
	"github.com/iudanet/deltasync/internal/validation"
)

// DeltaRequest запрос дельты для клиента. Пустой EntityID означает
// список сущностей типа.
type DeltaRequest struct {
	LastKnownVectorClock *models.VectorClock
	ClientID             string
	EntityType           models.EntityType
	EntityID             string
	MaxDeltaSize         int
}

// EntityRef ссылка на сущность в пакетной синхронизации.
type EntityRef struct {
	EntityType models.EntityType `json:"entity_type"`
	EntityID   string            `json:"entity_id,omitempty"`
}

// BroadcastResult итог рассылки дельты.
type BroadcastResult struct {
	Delivered []string `json:"delivered"`
	Skipped   []string `json:"skipped"`
	Failed    []string `json:"failed"`
}

// entityKey сущность в пределах одного клиента
type entityKey struct {
	entityType models.EntityType
	id         string
}

// calculation дельты, вычисленные для клиента, но еще не отправленные.
// pending станут предыдущими снимками только для отправленных дельт.
type calculation struct {
	deltas   []models.StateDelta
	pending  map[entityKey]entity.Previous
	fullSize int64
	start    time.Time
	degraded bool
	failed   bool
}

// syncStamp логические часы, которыми помечаются дельты одного запроса
type syncStamp struct {
	vector        *models.VectorClock
	lamport       models.LamportClock
	serverCounter uint64
}

// InitializeClient registers the client: zeroed clocks and no previous snapshots
func (s *Service) InitializeClient(ctx context.Context, clientID string) (*models.VectorClock, error) {
	if err := validation.ValidateClientID(clientID); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	start := s.now()
	vc, err := s.clocks.InitializeClient(ctx, clientID)
	if err != nil {
		s.metrics.ObserveSync(opInitialize, metrics.ResultFailed, time.Since(start).Seconds())
		s.stats.recordError(clientID, opInitialize, err, s.now())
		return nil, fmt.Errorf("failed to initialize client: %w", err)
	}

	s.entities.ForgetClient(clientID)
	s.stats.recordOperation(clientID, s.now())
	s.metrics.ObserveSync(opInitialize, metrics.ResultOK, time.Since(start).Seconds())

	s.logger.Info("Client initialized", "client_id", clientID)
	return vc, nil
}

// CalculateStateDelta computes the changes the client has not seen yet.
// Only malformed requests fail; storage failures are logged, switch the
// client to polling and yield an empty result.
func (s *Service) CalculateStateDelta(ctx context.Context, req DeltaRequest) ([]models.StateDelta, error) {
	if err := s.validateRequest(req); err != nil {
		s.metrics.ObserveSync(opCalculate, metrics.ResultInvalid, 0)
		return nil, err
	}

	calc := s.calculate(ctx, req)
	if calc.failed {
		return calc.deltas, nil
	}

	deltas := s.truncate(req.ClientID, calc.deltas, req.MaxDeltaSize)
	s.remember(req.ClientID, deltas, calc.pending)
	s.finish(ctx, req.ClientID, deltas, calc.fullSize, calc.start)

	result := metrics.ResultOK
	if calc.degraded {
		result = metrics.ResultFallback
	}
	s.metrics.ObserveSync(opCalculate, result, time.Since(calc.start).Seconds())
	return deltas, nil
}

// calculate продвигает часы и строит дельты по проверенному запросу.
// Сбой хранилища дает failed и пустой список.
func (s *Service) calculate(ctx context.Context, req DeltaRequest) calculation {
	start := s.now()
	s.stats.recordOperation(req.ClientID, start)
	s.touch(ctx, req.ClientID)

	degraded, err := s.fallback.Evaluate(ctx, req.ClientID)
	if err != nil {
		// оценка качества не должна мешать синхронизации
		s.logger.Warn("Failed to evaluate fallback", "client_id", req.ClientID, "error", err)
	}

	calc := calculation{deltas: []models.StateDelta{}, start: start, degraded: degraded}

	stamp, err := s.advanceClocks(ctx, req.ClientID, req.LastKnownVectorClock)
	if err == nil {
		calc.deltas, calc.pending, calc.fullSize, err = s.collect(ctx, req, stamp)
	}
	if err != nil {
		s.upstreamFailure(ctx, req.ClientID, opCalculate, err)
		s.metrics.ObserveSync(opCalculate, metrics.ResultFailed, time.Since(start).Seconds())
		return calculation{deltas: []models.StateDelta{}, start: start, failed: true}
	}
	return calc
}

// touch отмечает активность клиента для очистки неактивных
func (s *Service) touch(ctx context.Context, clientID string) {
	if err := s.monitor.Touch(ctx, clientID); err != nil {
		s.logger.Warn("Failed to record client activity", "client_id", clientID, "error", err)
	}
}

func (s *Service) validateRequest(req DeltaRequest) error {
	if err := validation.ValidateClientID(req.ClientID); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := validation.ValidateEntityType(req.EntityType); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := validation.ValidateEntityID(req.EntityID); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if req.MaxDeltaSize < 0 {
		return fmt.Errorf("%w: negative max delta size", ErrInvalidInput)
	}

	if vc := req.LastKnownVectorClock; vc != nil {
		if err := crdt.ValidateVectorClock(vc); err != nil {
			return fmt.Errorf("%w: last known vector clock: %v", ErrInvalidInput, err)
		}
		if vc.ClientID != req.ClientID {
			return fmt.Errorf("%w: last known vector clock belongs to %q", ErrInvalidInput, vc.ClientID)
		}
	}
	return nil
}

// advanceClocks фиксирует событие синхронизации: счетчик клиента
// увеличивается (или сливается с присланным), сервер получает новую версию,
// векторные часы клиента вбирают присланные версии
func (s *Service) advanceClocks(ctx context.Context, clientID string, lastKnown *models.VectorClock) (syncStamp, error) {
	if err := s.ensureClock(ctx, clientID); err != nil {
		return syncStamp{}, err
	}

	var (
		lamport models.LamportClock
		err     error
	)
	if lastKnown != nil {
		lamport, err = s.clocks.MergeLamport(ctx, clientID, models.LamportClock{
			NodeID:  clientID,
			Counter: lastKnown.LamportCounter,
		})
	} else {
		lamport, err = s.clocks.IncrementLamport(ctx, clientID)
	}
	if err != nil {
		return syncStamp{}, err
	}

	server, err := s.clocks.ServerClock(ctx)
	if err != nil {
		return syncStamp{}, err
	}

	vc, err := s.clocks.UpdateVectorClock(ctx, clientID, func(vc *models.VectorClock) error {
		crdt.MergeVector(vc, lastKnown)
		if server.Counter > vc.Versions[models.ServerNodeID] {
			vc.Versions[models.ServerNodeID] = server.Counter
		}
		if lamport.Counter > vc.LamportCounter {
			vc.LamportCounter = lamport.Counter
		}
		vc.Timestamp = s.now().UnixMilli()
		return nil
	})
	if err != nil {
		return syncStamp{}, err
	}

	return syncStamp{vector: vc, lamport: lamport, serverCounter: server.Counter}, nil
}

// ensureClock регистрирует клиента, чьи часы истекли или были повреждены.
// Счетчик Лампорта при этом не откатывается.
func (s *Service) ensureClock(ctx context.Context, clientID string) error {
	_, err := s.clocks.GetVectorClock(ctx, clientID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, clock.ErrNotFound) {
		return err
	}

	kept, lerr := s.clocks.GetLamport(ctx, clientID)
	if lerr != nil && !errors.Is(lerr, clock.ErrNotFound) {
		return lerr
	}

	if _, err := s.clocks.InitializeClient(ctx, clientID); err != nil {
		return err
	}
	if kept.Counter > 0 {
		if _, err := s.clocks.MergeLamport(ctx, clientID, kept); err != nil {
			return err
		}
	}

	s.logger.Info("Client clocks recreated", "client_id", clientID)
	return nil
}

// collect загружает снимки и строит дельты. Возвращает снимки, которые
// станут предыдущими после отправки, и размер полного состояния для
// оценки экономии трафика.
func (s *Service) collect(ctx context.Context, req DeltaRequest, stamp syncStamp) ([]models.StateDelta, map[entityKey]entity.Previous, int64, error) {
	var snapshots []entity.Snapshot

	if req.EntityID != "" {
		doc, err := s.entities.GetEntityState(ctx, req.EntityType, req.EntityID)
		if err != nil {
			return nil, nil, 0, err
		}
		// nil означает удаленную сущность: клиенту уходят delete-изменения
		snapshots = []entity.Snapshot{{ID: req.EntityID, Document: doc}}
	} else {
		list, err := s.entities.GetEntityList(ctx, req.EntityType)
		if err != nil {
			return nil, nil, 0, err
		}
		gone, err := s.vanished(ctx, req.ClientID, req.EntityType, list)
		if err != nil {
			return nil, nil, 0, err
		}
		// кэшированный список не изменяется
		snapshots = make([]entity.Snapshot, 0, len(list)+len(gone))
		snapshots = append(snapshots, list...)
		snapshots = append(snapshots, gone...)
	}

	var fullSize int64
	deltas := make([]models.StateDelta, 0, len(snapshots))
	pending := make(map[entityKey]entity.Previous, len(snapshots))
	ts := s.now().UnixMilli()

	for _, snap := range snapshots {
		if snap.Document != nil {
			fullSize += payloadSize(snap.Document)
		}

		prev := s.previousFor(req.ClientID, req.EntityType, snap.ID, req.LastKnownVectorClock)
		changes := delta.ComputeChangesAt(prev, snap.Document, ts)
		if len(changes) == 0 {
			continue
		}

		deltas = append(deltas, models.StateDelta{
			EntityType:   req.EntityType,
			EntityID:     snap.ID,
			Changes:      changes,
			VectorClock:  stamp.vector.Clone(),
			LamportClock: &models.LamportClock{NodeID: stamp.lamport.NodeID, Counter: stamp.lamport.Counter, Timestamp: stamp.lamport.Timestamp},
			Timestamp:    ts,
		})
		pending[entityKey{entityType: req.EntityType, id: snap.ID}] = entity.Previous{
			Document:      snap.Document,
			ServerCounter: stamp.serverCounter,
		}
	}

	return deltas, pending, fullSize, nil
}

// vanished находит сущности, которые клиент видел, но которых нет в списке.
// Список ограничен, поэтому отсутствие проверяется точечным чтением.
func (s *Service) vanished(ctx context.Context, clientID string, entityType models.EntityType, list []entity.Snapshot) ([]entity.Snapshot, error) {
	listed := make(map[string]struct{}, len(list))
	for _, snap := range list {
		listed[snap.ID] = struct{}{}
	}

	var gone []entity.Snapshot
	for _, id := range s.entities.PreviousIDs(clientID, entityType) {
		if _, ok := listed[id]; ok {
			continue
		}
		doc, err := s.entities.GetEntityState(ctx, entityType, id)
		if err != nil {
			return nil, err
		}
		if doc == nil {
			gone = append(gone, entity.Snapshot{ID: id})
		}
	}
	return gone, nil
}

// remember делает предыдущими снимки только реально отправленных дельт
func (s *Service) remember(clientID string, sent []models.StateDelta, pending map[entityKey]entity.Previous) {
	for _, d := range sent {
		prev, ok := pending[entityKey{entityType: d.EntityType, id: d.EntityID}]
		if !ok {
			continue
		}
		if prev.Document == nil {
			s.entities.ForgetPrevious(clientID, d.EntityType, d.EntityID)
			continue
		}
		s.entities.RememberPrevious(clientID, d.EntityType, d.EntityID, prev)
	}
}

// previousFor возвращает снимок, от которого считается дельта. Если клиент
// прислал часы, не покрывающие отправку снимка, он его не получил и
// получает полное состояние.
func (s *Service) previousFor(clientID string, entityType models.EntityType, id string, lastKnown *models.VectorClock) models.Document {
	prev, ok := s.entities.Previous(clientID, entityType, id)
	if !ok {
		return nil
	}
	if lastKnown != nil && lastKnown.Versions[models.ServerNodeID] < prev.ServerCounter {
		s.logger.Debug("Client missed previous snapshot, sending full state",
			"client_id", clientID,
			"entity_type", entityType,
			"entity_id", id,
		)
		return nil
	}
	return prev.Document
}

func (s *Service) truncate(clientID string, deltas []models.StateDelta, limit int) []models.StateDelta {
	if limit <= 0 {
		limit = s.cfg.MaxDeltaSize
	}
	if len(deltas) <= limit {
		return deltas
	}

	s.logger.Warn("Delta size limit reached, result truncated",
		"client_id", clientID,
		"deltas", len(deltas),
		"limit", limit,
	)
	s.metrics.IncTruncations()
	return deltas[:limit]
}

// finish записывает телеметрию синхронизации: экономию трафика, объем
// отправленного и длительность. Медленная синхронизация переводит клиента
// на опрос.
func (s *Service) finish(ctx context.Context, clientID string, deltas []models.StateDelta, fullSize int64, start time.Time) {
	var deltaSize int64
	if len(deltas) > 0 {
		deltaSize = payloadSize(deltas)
	}

	if fullSize > 0 {
		s.bandwidth.Validate(ctx, clientID, fullSize, deltaSize)
	}
	if deltaSize > 0 {
		if err := s.monitor.RecordBandwidthUsage(ctx, clientID, deltaSize, 0); err != nil {
			s.logger.Warn("Failed to record bandwidth usage", "client_id", clientID, "error", err)
		}
	}
	s.metrics.AddDeltas(len(deltas))
	s.stats.recordSync(clientID, s.now())

	elapsed := s.now().Sub(start)
	if elapsed > s.cfg.SlowSyncThreshold {
		s.logger.Warn("Slow sync",
			"client_id", clientID,
			"duration", elapsed,
			"threshold", s.cfg.SlowSyncThreshold,
		)
		reason := fmt.Sprintf("slow sync: %s", elapsed.Round(time.Millisecond))
		if _, err := s.fallback.Activate(ctx, clientID, reason); err != nil {
			s.logger.Error("Failed to activate fallback", "client_id", clientID, "error", err)
		}
	}
}

// BatchSyncEntities computes deltas for several entities of one client in
// parallel. A failing entity does not affect the others; the combined
// result is truncated to MaxDeltaSize and only the returned deltas count
// as sent.
func (s *Service) BatchSyncEntities(ctx context.Context, clientID string, refs []EntityRef) ([]models.StateDelta, error) {
	if err := validation.ValidateClientID(clientID); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if len(refs) > validation.MaxBatchSize {
		return nil, fmt.Errorf("%w: batch of %d entities exceeds %d", ErrInvalidInput, len(refs), validation.MaxBatchSize)
	}
	for _, ref := range refs {
		if err := validation.ValidateEntityType(ref.EntityType); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		if err := validation.ValidateEntityID(ref.EntityID); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	}
	refs = uniqueRefs(refs)

	start := s.now()

	// часы создаются до параллельной части, иначе запросы сбросят их друг другу
	if err := s.ensureClock(ctx, clientID); err != nil {
		s.upstreamFailure(ctx, clientID, opBatch, err)
		s.metrics.ObserveSync(opBatch, metrics.ResultFailed, time.Since(start).Seconds())
		return []models.StateDelta{}, nil
	}

	results := make([]calculation, len(refs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.BatchParallelism)
	for i, ref := range refs {
		i, ref := i, ref
		g.Go(func() error {
			// сбой одной сущности уже учтен в calculate и не прерывает остальные
			results[i] = s.calculate(gctx, DeltaRequest{
				ClientID:   clientID,
				EntityType: ref.EntityType,
				EntityID:   ref.EntityID,
			})
			return nil
		})
	}
	_ = g.Wait()

	out := []models.StateDelta{}
	pending := make(map[entityKey]entity.Previous)
	var fullSize int64
	for _, r := range results {
		out = append(out, r.deltas...)
		fullSize += r.fullSize
		for k, v := range r.pending {
			pending[k] = v
		}
	}

	out = s.truncate(clientID, out, 0)
	s.remember(clientID, out, pending)
	s.finish(ctx, clientID, out, fullSize, start)

	s.metrics.ObserveSync(opBatch, metrics.ResultOK, time.Since(start).Seconds())
	return out, nil
}

// uniqueRefs убирает повторы: одна сущность не считается дважды от одного снимка
func uniqueRefs(refs []EntityRef) []EntityRef {
	seen := make(map[EntityRef]struct{}, len(refs))
	out := make([]EntityRef, 0, len(refs))
	for _, ref := range refs {
		if _, ok := seen[ref]; ok {
			continue
		}
		seen[ref] = struct{}{}
		out = append(out, ref)
	}
	return out
}

// BroadcastStateDelta queues the delta for every target. Each target gets
// its own Lamport stamp; clients on polling fallback are skipped and pick
// the change up on their next poll.
func (s *Service) BroadcastStateDelta(ctx context.Context, d models.StateDelta, targets []string) (BroadcastResult, error) {
	if err := validation.ValidateEntityType(d.EntityType); err != nil {
		return BroadcastResult{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if len(targets) > validation.MaxTargets {
		return BroadcastResult{}, fmt.Errorf("%w: %d targets exceed %d", ErrInvalidInput, len(targets), validation.MaxTargets)
	}

	res := BroadcastResult{Delivered: []string{}, Skipped: []string{}, Failed: []string{}}
	b := s.getBroadcaster()
	if b == nil {
		s.logger.Warn("Broadcast without delivery target", "targets", len(targets))
		res.Skipped = append(res.Skipped, targets...)
		return res, nil
	}

	start := s.now()
	for _, target := range targets {
		if err := validation.ValidateClientID(target); err != nil {
			s.logger.Warn("Invalid broadcast target", "client_id", target, "error", err)
			res.Failed = append(res.Failed, target)
			s.metrics.IncBroadcast(metrics.ResultInvalid)
			continue
		}

		if degraded, err := s.fallback.Evaluate(ctx, target); err == nil && degraded {
			res.Skipped = append(res.Skipped, target)
			s.metrics.IncBroadcast(metrics.ResultFallback)
			continue
		}

		stamped, err := s.stampFor(ctx, target, d)
		if err == nil {
			err = b.Enqueue(ctx, target, stamped)
		}
		if err != nil {
			s.logger.Warn("Failed to queue delta",
				"client_id", target,
				"entity_type", d.EntityType,
				"entity_id", d.EntityID,
				"error", err,
			)
			s.stats.recordError(target, opBroadcast, err, s.now())
			res.Failed = append(res.Failed, target)
			s.metrics.IncBroadcast(metrics.ResultFailed)
			continue
		}

		s.touch(ctx, target)
		res.Delivered = append(res.Delivered, target)
		s.metrics.IncBroadcast(metrics.ResultOK)
	}

	s.metrics.ObserveSync(opBroadcast, metrics.ResultOK, time.Since(start).Seconds())
	s.logger.Debug("Delta broadcast",
		"entity_type", d.EntityType,
		"entity_id", d.EntityID,
		"delivered", len(res.Delivered),
		"skipped", len(res.Skipped),
		"failed", len(res.Failed),
	)
	return res, nil
}

// stampFor копирует дельту и помечает ее часами получателя
func (s *Service) stampFor(ctx context.Context, clientID string, d models.StateDelta) (models.StateDelta, error) {
	lamport, err := s.clocks.IncrementLamport(ctx, clientID)
	if err != nil {
		return models.StateDelta{}, err
	}

	out := d
	out.Changes = append([]models.StateChange(nil), d.Changes...)
	out.LamportClock = &lamport
	if out.Timestamp == 0 {
		out.Timestamp = s.now().UnixMilli()
	}

	vc, err := s.clocks.GetVectorClock(ctx, clientID)
	switch {
	case err == nil:
		out.VectorClock = vc
	case errors.Is(err, clock.ErrNotFound):
		out.VectorClock = nil
	default:
		return models.StateDelta{}, err
	}
	return out, nil
}

// payloadSize размер JSON-представления, как его увидит транспорт
func payloadSize(v any) int64 {
	data, err := json.Marshal(v)
	if err != nil {
		return 0
	}
	return int64(len(data))
}
