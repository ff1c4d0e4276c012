package statesync

import (
	"sync"
	"time"

	"github.com/iudanet/deltasync/internal/models"
)

// errorStats статистика ошибок по клиентам, только в памяти
type errorStats struct {
	byClient map[string]*models.ClientErrorStats
	ringSize int
	mu       sync.Mutex
}

func newErrorStats(ringSize int) *errorStats {
	return &errorStats{
		byClient: make(map[string]*models.ClientErrorStats),
		ringSize: ringSize,
	}
}

func (e *errorStats) entry(clientID string, now time.Time) *models.ClientErrorStats {
	st, ok := e.byClient[clientID]
	if !ok {
		st = &models.ClientErrorStats{LastReset: now.UnixMilli()}
		e.byClient[clientID] = st
	}
	return st
}

func (e *errorStats) recordOperation(clientID string, now time.Time) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.entry(clientID, now).TotalOperations++
}

func (e *errorStats) recordSync(clientID string, now time.Time) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.entry(clientID, now).LastSyncTime = now.UnixMilli()
}

func (e *errorStats) recordError(clientID, op string, err error, now time.Time) {
	e.mu.Lock()
	defer e.mu.Unlock()

	st := e.entry(clientID, now)
	st.ErrorCount++
	st.Errors = append(st.Errors, models.ClientError{
		Operation: op,
		Message:   err.Error(),
		Timestamp: now.UnixMilli(),
	})
	// кольцо: храним только последние ringSize ошибок
	if over := len(st.Errors) - e.ringSize; over > 0 {
		st.Errors = append(st.Errors[:0:0], st.Errors[over:]...)
	}
}

func (e *errorStats) get(clientID string) (models.ClientErrorStats, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	st, ok := e.byClient[clientID]
	if !ok {
		return models.ClientErrorStats{}, false
	}
	out := *st
	out.Errors = append([]models.ClientError(nil), st.Errors...)
	return out, true
}

func (e *errorStats) forget(clientID string) {
	e.mu.Lock()
	delete(e.byClient, clientID)
	e.mu.Unlock()
}

// reset обнуляет счетчики и удаляет клиентов без синхронизаций за idle.
// Возвращает число оставшихся клиентов.
func (e *errorStats) reset(now time.Time, idle time.Duration) int {
	e.mu.Lock()
	defer e.mu.Unlock()

	cutoff := now.Add(-idle).UnixMilli()
	for id, st := range e.byClient {
		if st.LastSyncTime < cutoff {
			delete(e.byClient, id)
			continue
		}
		st.Errors = nil
		st.ErrorCount = 0
		st.TotalOperations = 0
		st.LastReset = now.UnixMilli()
	}
	return len(e.byClient)
}
