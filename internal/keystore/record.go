package keystore

import (
	"context"
	"fmt"
	"strconv"
	"time"
)

// Kind вид значения, хранящегося по ключу.
type Kind string

// Виды значений
const (
	KindString Kind = "string"
	KindHash   Kind = "hash"
	KindList   Kind = "list"
)

// Record представляет значение по ключу во встроенных хранилищах.
// Сериализуется в JSON для BoltDB, в памяти хранится как есть.
type Record struct {
	Hash      map[string]int64 `json:"h,omitempty"`
	Kind      Kind             `json:"k"`
	Value     []byte           `json:"v,omitempty"`
	List      [][]byte         `json:"l,omitempty"`
	ExpiresAt int64            `json:"e,omitempty"` // ExpiresAt unix nano, 0 - без срока
}

// Expired проверяет истечение срока жизни записи.
func (r *Record) Expired(now time.Time) bool {
	return r.ExpiresAt != 0 && now.UnixNano() >= r.ExpiresAt
}

func (r *Record) setTTL(now time.Time, ttl time.Duration) {
	if ttl <= 0 {
		r.ExpiresAt = 0
		return
	}
	r.ExpiresAt = now.Add(ttl).UnixNano()
}

// RecordTx транзакция над записями встроенного хранилища.
// Load возвращает nil, nil если ключа нет.
type RecordTx interface {
	Load(key string) (*Record, error)
	Save(key string, rec *Record) error
	Remove(key string) error
}

// Backend встроенное хранилище записей (память, BoltDB).
// Update сериализует писателей, что и обеспечивает атомарность операций.
type Backend interface {
	View(fn func(tx RecordTx) error) error
	Update(fn func(tx RecordTx) error) error
	ScanPrefix(prefix string, limit int, now time.Time) ([]string, error)
	Close() error
}

// RecordStore реализует Store поверх Backend.
type RecordStore struct {
	backend Backend
	now     func() time.Time
}

// NewRecordStore creates a Store over an embedded backend
func NewRecordStore(backend Backend) *RecordStore {
	return &RecordStore{backend: backend, now: time.Now}
}

// load возвращает запись, считая просроченную отсутствующей
func (s *RecordStore) load(tx RecordTx, key string, kind Kind) (*Record, error) {
	rec, err := tx.Load(key)
	if err != nil {
		return nil, err
	}
	if rec == nil || rec.Expired(s.now()) {
		return nil, nil
	}
	if kind != "" && rec.Kind != kind {
		return nil, fmt.Errorf("%w: key %q holds %s", ErrWrongType, key, rec.Kind)
	}
	return rec, nil
}

// Get returns the blob stored at key
func (s *RecordStore) Get(ctx context.Context, key string) ([]byte, error) {
	var out []byte
	err := s.backend.View(func(tx RecordTx) error {
		rec, err := s.load(tx, key, KindString)
		if err != nil {
			return err
		}
		if rec == nil {
			return ErrKeyNotFound
		}
		out = append([]byte(nil), rec.Value...)
		return nil
	})
	return out, err
}

// Set stores a blob with an optional TTL
func (s *RecordStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return s.backend.Update(func(tx RecordTx) error {
		return s.applySet(tx, key, value, ttl)
	})
}

// Delete removes keys
func (s *RecordStore) Delete(ctx context.Context, keys ...string) error {
	return s.backend.Update(func(tx RecordTx) error {
		return s.applyDelete(tx, keys...)
	})
}

// Expire sets the TTL of an existing key
func (s *RecordStore) Expire(ctx context.Context, key string, ttl time.Duration) error {
	return s.backend.Update(func(tx RecordTx) error {
		return s.applyExpire(tx, key, ttl)
	})
}

// IncrBy atomically adds delta to a numeric key
func (s *RecordStore) IncrBy(ctx context.Context, key string, delta int64) (int64, error) {
	var result int64
	err := s.backend.Update(func(tx RecordTx) error {
		rec, err := s.load(tx, key, KindString)
		if err != nil {
			return err
		}
		var current int64
		if rec == nil {
			rec = &Record{Kind: KindString}
		} else if len(rec.Value) > 0 {
			current, err = strconv.ParseInt(string(rec.Value), 10, 64)
			if err != nil {
				return fmt.Errorf("%w: key %q is not an integer", ErrWrongType, key)
			}
		}
		result = current + delta
		rec.Value = []byte(strconv.FormatInt(result, 10))
		return tx.Save(key, rec)
	})
	return result, err
}

// HIncrBy atomically adds delta to a hash field
func (s *RecordStore) HIncrBy(ctx context.Context, key, field string, delta int64) (int64, error) {
	var result int64
	err := s.backend.Update(func(tx RecordTx) error {
		var err error
		result, err = s.applyHIncrBy(tx, key, field, delta)
		return err
	})
	return result, err
}

// HMaxIncr atomically sets field = max(field, floor) + 1
func (s *RecordStore) HMaxIncr(ctx context.Context, key, field string, floor int64) (int64, error) {
	var result int64
	err := s.backend.Update(func(tx RecordTx) error {
		rec, err := s.hashRecord(tx, key)
		if err != nil {
			return err
		}
		current := rec.Hash[field]
		if floor > current {
			current = floor
		}
		result = current + 1
		rec.Hash[field] = result
		return tx.Save(key, rec)
	})
	return result, err
}

// HSet sets a hash field
func (s *RecordStore) HSet(ctx context.Context, key, field string, value int64) error {
	return s.backend.Update(func(tx RecordTx) error {
		return s.applyHSet(tx, key, field, value)
	})
}

// HGetAll returns every field of a hash
func (s *RecordStore) HGetAll(ctx context.Context, key string) (map[string]int64, error) {
	out := make(map[string]int64)
	err := s.backend.View(func(tx RecordTx) error {
		rec, err := s.load(tx, key, KindHash)
		if err != nil || rec == nil {
			return err
		}
		for k, v := range rec.Hash {
			out[k] = v
		}
		return nil
	})
	return out, err
}

// LPush prepends values to a list
func (s *RecordStore) LPush(ctx context.Context, key string, values ...[]byte) error {
	return s.backend.Update(func(tx RecordTx) error {
		return s.applyLPush(tx, key, values...)
	})
}

// LTrim keeps the inclusive range of a list
func (s *RecordStore) LTrim(ctx context.Context, key string, start, stop int64) error {
	return s.backend.Update(func(tx RecordTx) error {
		return s.applyLTrim(tx, key, start, stop)
	})
}

// LRange returns the inclusive range of a list
func (s *RecordStore) LRange(ctx context.Context, key string, start, stop int64) ([][]byte, error) {
	var out [][]byte
	err := s.backend.View(func(tx RecordTx) error {
		rec, err := s.load(tx, key, KindList)
		if err != nil || rec == nil {
			return err
		}
		from, to, ok := normalizeRange(int64(len(rec.List)), start, stop)
		if !ok {
			return nil
		}
		out = make([][]byte, 0, to-from+1)
		for _, v := range rec.List[from : to+1] {
			out = append(out, append([]byte(nil), v...))
		}
		return nil
	})
	return out, err
}

// ScanPrefix returns keys with the prefix
func (s *RecordStore) ScanPrefix(ctx context.Context, prefix string, limit int) ([]string, error) {
	return s.backend.ScanPrefix(prefix, limit, s.now())
}

// Pipelined applies the queued writes inside one backend transaction
func (s *RecordStore) Pipelined(ctx context.Context, fn func(p Pipeliner) error) error {
	p := &recordPipeline{}
	if err := fn(p); err != nil {
		return err
	}
	if len(p.ops) == 0 {
		return nil
	}
	return s.backend.Update(func(tx RecordTx) error {
		for _, op := range p.ops {
			if err := op(s, tx); err != nil {
				return err
			}
		}
		return nil
	})
}

// Close closes the backend
func (s *RecordStore) Close() error {
	return s.backend.Close()
}

func (s *RecordStore) applySet(tx RecordTx, key string, value []byte, ttl time.Duration) error {
	rec := &Record{Kind: KindString, Value: append([]byte(nil), value...)}
	rec.setTTL(s.now(), ttl)
	return tx.Save(key, rec)
}

func (s *RecordStore) applyDelete(tx RecordTx, keys ...string) error {
	for _, key := range keys {
		if err := tx.Remove(key); err != nil {
			return err
		}
	}
	return nil
}

func (s *RecordStore) applyExpire(tx RecordTx, key string, ttl time.Duration) error {
	rec, err := s.load(tx, key, "")
	if err != nil || rec == nil {
		return err
	}
	rec.setTTL(s.now(), ttl)
	return tx.Save(key, rec)
}

func (s *RecordStore) hashRecord(tx RecordTx, key string) (*Record, error) {
	rec, err := s.load(tx, key, KindHash)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		rec = &Record{Kind: KindHash}
	}
	if rec.Hash == nil {
		rec.Hash = make(map[string]int64)
	}
	return rec, nil
}

func (s *RecordStore) applyHIncrBy(tx RecordTx, key, field string, delta int64) (int64, error) {
	rec, err := s.hashRecord(tx, key)
	if err != nil {
		return 0, err
	}
	rec.Hash[field] += delta
	return rec.Hash[field], tx.Save(key, rec)
}

func (s *RecordStore) applyHSet(tx RecordTx, key, field string, value int64) error {
	rec, err := s.hashRecord(tx, key)
	if err != nil {
		return err
	}
	rec.Hash[field] = value
	return tx.Save(key, rec)
}

func (s *RecordStore) applyLPush(tx RecordTx, key string, values ...[]byte) error {
	rec, err := s.load(tx, key, KindList)
	if err != nil {
		return err
	}
	if rec == nil {
		rec = &Record{Kind: KindList}
	}
	head := make([][]byte, 0, len(values)+len(rec.List))
	for i := len(values) - 1; i >= 0; i-- {
		head = append(head, append([]byte(nil), values[i]...))
	}
	rec.List = append(head, rec.List...)
	return tx.Save(key, rec)
}

func (s *RecordStore) applyLTrim(tx RecordTx, key string, start, stop int64) error {
	rec, err := s.load(tx, key, KindList)
	if err != nil || rec == nil {
		return err
	}
	from, to, ok := normalizeRange(int64(len(rec.List)), start, stop)
	if !ok {
		return tx.Remove(key)
	}
	rec.List = append([][]byte(nil), rec.List[from:to+1]...)
	return tx.Save(key, rec)
}

// normalizeRange переводит индексы в стиле Redis в границы слайса.
func normalizeRange(length, start, stop int64) (int64, int64, bool) {
	if start < 0 {
		start += length
	}
	if stop < 0 {
		stop += length
	}
	if start < 0 {
		start = 0
	}
	if stop >= length {
		stop = length - 1
	}
	if length == 0 || start > stop || start >= length {
		return 0, 0, false
	}
	return start, stop, true
}

type recordOp func(s *RecordStore, tx RecordTx) error

type recordPipeline struct {
	ops []recordOp
}

func (p *recordPipeline) Set(key string, value []byte, ttl time.Duration) {
	p.ops = append(p.ops, func(s *RecordStore, tx RecordTx) error { return s.applySet(tx, key, value, ttl) })
}

func (p *recordPipeline) Delete(keys ...string) {
	p.ops = append(p.ops, func(s *RecordStore, tx RecordTx) error { return s.applyDelete(tx, keys...) })
}

func (p *recordPipeline) Expire(key string, ttl time.Duration) {
	p.ops = append(p.ops, func(s *RecordStore, tx RecordTx) error { return s.applyExpire(tx, key, ttl) })
}

func (p *recordPipeline) HIncrBy(key, field string, delta int64) {
	p.ops = append(p.ops, func(s *RecordStore, tx RecordTx) error {
		_, err := s.applyHIncrBy(tx, key, field, delta)
		return err
	})
}

func (p *recordPipeline) HSet(key, field string, value int64) {
	p.ops = append(p.ops, func(s *RecordStore, tx RecordTx) error { return s.applyHSet(tx, key, field, value) })
}

func (p *recordPipeline) LPush(key string, values ...[]byte) {
	p.ops = append(p.ops, func(s *RecordStore, tx RecordTx) error { return s.applyLPush(tx, key, values...) })
}

func (p *recordPipeline) LTrim(key string, start, stop int64) {
	p.ops = append(p.ops, func(s *RecordStore, tx RecordTx) error { return s.applyLTrim(tx, key, start, stop) })
}
