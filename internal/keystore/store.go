package keystore

import (
	"context"
	"errors"
	"time"
)

// Common keyed store errors
var (
	// ErrKeyNotFound indicates that the key does not exist or has expired
	ErrKeyNotFound = errors.New("key not found")

	// ErrWrongType indicates an operation against a key holding another kind of value
	ErrWrongType = errors.New("operation against a key holding the wrong kind of value")

	// ErrStoreClosed indicates that the store is closed
	ErrStoreClosed = errors.New("store is closed")
)

//go:generate moq -out store_mock.go . Store

// Store определяет интерфейс ключевого хранилища для часов и метрик.
// Любое KV-хранилище (встроенное или сетевое), реализующее его, подходит.
// ttl == 0 означает отсутствие срока жизни.
type Store interface {
	// Get returns the blob stored at key or ErrKeyNotFound
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a blob with an optional TTL
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes keys; missing keys are ignored
	Delete(ctx context.Context, keys ...string) error

	// Expire sets the TTL of an existing key; missing keys are ignored
	Expire(ctx context.Context, key string, ttl time.Duration) error

	// IncrBy atomically adds delta to a numeric key and returns the new value
	IncrBy(ctx context.Context, key string, delta int64) (int64, error)

	// HIncrBy atomically adds delta to a numeric hash field
	HIncrBy(ctx context.Context, key, field string, delta int64) (int64, error)

	// HMaxIncr atomically sets field = max(field, floor) + 1 and returns it.
	// floor == 0 is a plain increment; floor == received is a Lamport merge.
	HMaxIncr(ctx context.Context, key, field string, floor int64) (int64, error)

	// HSet sets a numeric hash field
	HSet(ctx context.Context, key, field string, value int64) error

	// HGetAll returns every numeric field of a hash (empty map when absent)
	HGetAll(ctx context.Context, key string) (map[string]int64, error)

	// LPush prepends values to a list, the last value ends up at the head
	LPush(ctx context.Context, key string, values ...[]byte) error

	// LTrim keeps the inclusive [start, stop] range; negative indexes count from the tail
	LTrim(ctx context.Context, key string, start, stop int64) error

	// LRange returns the inclusive [start, stop] range of a list
	LRange(ctx context.Context, key string, start, stop int64) ([][]byte, error)

	// ScanPrefix returns up to limit keys with the prefix (limit <= 0 means no limit)
	ScanPrefix(ctx context.Context, prefix string, limit int) ([]string, error)

	// Pipelined batches writes and applies them in order as one unit
	Pipelined(ctx context.Context, fn func(p Pipeliner) error) error

	// Close releases the store
	Close() error
}

// Pipeliner accumulates writes for Store.Pipelined.
type Pipeliner interface {
	Set(key string, value []byte, ttl time.Duration)
	Delete(keys ...string)
	Expire(key string, ttl time.Duration)
	HIncrBy(key, field string, delta int64)
	HSet(key, field string, value int64)
	LPush(key string, values ...[]byte)
	LTrim(key string, start, stop int64)
}
