package memory

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/iudanet/deltasync/internal/keystore"
)

// Backend хранит записи в памяти процесса.
// Подходит для тестов и одноузловых развертываний.
type Backend struct {
	records map[string]*keystore.Record
	stopC   chan struct{}
	mu      sync.RWMutex
	closed  bool
}

// New creates an in-memory keyed store. A non-zero sweepInterval starts a
// janitor goroutine removing expired records.
func New(sweepInterval time.Duration) *keystore.RecordStore {
	b := &Backend{
		records: make(map[string]*keystore.Record),
		stopC:   make(chan struct{}),
	}
	if sweepInterval > 0 {
		go b.janitor(sweepInterval)
	}
	return keystore.NewRecordStore(b)
}

// janitor периодически удаляет просроченные записи
func (b *Backend) janitor(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			b.sweep(time.Now())
		case <-b.stopC:
			return
		}
	}
}

func (b *Backend) sweep(now time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for key, rec := range b.records {
		if rec.Expired(now) {
			delete(b.records, key)
		}
	}
}

// View runs fn under a read lock
func (b *Backend) View(fn func(tx keystore.RecordTx) error) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return keystore.ErrStoreClosed
	}
	return fn(&memTx{b: b})
}

// Update runs fn under the write lock. Writes are staged and committed only
// when fn succeeds.
func (b *Backend) Update(fn func(tx keystore.RecordTx) error) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return keystore.ErrStoreClosed
	}

	tx := &memTx{b: b, staged: make(map[string]*keystore.Record)}
	if err := fn(tx); err != nil {
		return err
	}
	for key, rec := range tx.staged {
		if rec == nil {
			delete(b.records, key)
			continue
		}
		b.records[key] = rec
	}
	return nil
}

// ScanPrefix returns live keys with the prefix in sorted order
func (b *Backend) ScanPrefix(prefix string, limit int, now time.Time) ([]string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return nil, keystore.ErrStoreClosed
	}

	keys := make([]string, 0)
	for key, rec := range b.records {
		if strings.HasPrefix(key, prefix) && !rec.Expired(now) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	if limit > 0 && len(keys) > limit {
		keys = keys[:limit]
	}
	return keys, nil
}

// Close stops the janitor
func (b *Backend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true
	close(b.stopC)
	return nil
}

type memTx struct {
	b      *Backend
	staged map[string]*keystore.Record // nil value - удаление
}

func (tx *memTx) Load(key string) (*keystore.Record, error) {
	if tx.staged != nil {
		if rec, ok := tx.staged[key]; ok {
			return clone(rec), nil
		}
	}
	rec, ok := tx.b.records[key]
	if !ok {
		return nil, nil
	}
	return clone(rec), nil
}

func (tx *memTx) Save(key string, rec *keystore.Record) error {
	tx.staged[key] = clone(rec)
	return nil
}

func (tx *memTx) Remove(key string) error {
	tx.staged[key] = nil
	return nil
}

// clone копирует запись, чтобы вызывающий код не менял состояние напрямую
func clone(rec *keystore.Record) *keystore.Record {
	if rec == nil {
		return nil
	}
	out := &keystore.Record{
		Kind:      rec.Kind,
		ExpiresAt: rec.ExpiresAt,
	}
	if rec.Value != nil {
		out.Value = append([]byte(nil), rec.Value...)
	}
	if rec.Hash != nil {
		out.Hash = make(map[string]int64, len(rec.Hash))
		for k, v := range rec.Hash {
			out.Hash[k] = v
		}
	}
	if rec.List != nil {
		out.List = make([][]byte, len(rec.List))
		for i, v := range rec.List {
			out.List[i] = append([]byte(nil), v...)
		}
	}
	return out
}
