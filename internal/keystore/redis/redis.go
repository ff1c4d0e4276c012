package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	goredis "github.com/go-redis/redis/v8"

	"github.com/iudanet/deltasync/internal/keystore"
)

// hMaxIncrScript атомарно выполняет field = max(field, floor) + 1
var hMaxIncrScript = goredis.NewScript(`
local current = tonumber(redis.call('HGET', KEYS[1], ARGV[1]) or '0')
local floor = tonumber(ARGV[2])
if floor > current then current = floor end
current = current + 1
redis.call('HSET', KEYS[1], ARGV[1], current)
return current
`)

// scanBatch количество ключей, запрашиваемых за один SCAN
const scanBatch = 200

// Options параметры подключения к Redis.
type Options struct {
	Addr     string
	Password string
	DB       int
}

// Store реализует keystore.Store поверх Redis.
type Store struct {
	rdb goredis.UniversalClient
}

// New connects to Redis and verifies the connection with PING
func New(ctx context.Context, opts Options) (*Store, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return &Store{rdb: rdb}, nil
}

// NewWithClient wraps an existing client
func NewWithClient(rdb goredis.UniversalClient) *Store {
	return &Store{rdb: rdb}
}

// Get returns the blob stored at key
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return nil, translate(err)
	}
	return data, nil
}

// Set stores a blob with an optional TTL
func (s *Store) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return translate(s.rdb.Set(ctx, key, value, ttl).Err())
}

// Delete removes keys
func (s *Store) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return translate(s.rdb.Del(ctx, keys...).Err())
}

// Expire sets the TTL of an existing key
func (s *Store) Expire(ctx context.Context, key string, ttl time.Duration) error {
	if ttl <= 0 {
		return translate(s.rdb.Persist(ctx, key).Err())
	}
	return translate(s.rdb.Expire(ctx, key, ttl).Err())
}

// IncrBy atomically adds delta to a numeric key
func (s *Store) IncrBy(ctx context.Context, key string, delta int64) (int64, error) {
	v, err := s.rdb.IncrBy(ctx, key, delta).Result()
	return v, translate(err)
}

// HIncrBy atomically adds delta to a hash field
func (s *Store) HIncrBy(ctx context.Context, key, field string, delta int64) (int64, error) {
	v, err := s.rdb.HIncrBy(ctx, key, field, delta).Result()
	return v, translate(err)
}

// HMaxIncr atomically sets field = max(field, floor) + 1 using a Lua script
func (s *Store) HMaxIncr(ctx context.Context, key, field string, floor int64) (int64, error) {
	v, err := hMaxIncrScript.Run(ctx, s.rdb, []string{key}, field, floor).Int64()
	return v, translate(err)
}

// HSet sets a hash field
func (s *Store) HSet(ctx context.Context, key, field string, value int64) error {
	return translate(s.rdb.HSet(ctx, key, field, value).Err())
}

// HGetAll returns every field of a hash
func (s *Store) HGetAll(ctx context.Context, key string) (map[string]int64, error) {
	raw, err := s.rdb.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, translate(err)
	}

	out := make(map[string]int64, len(raw))
	for field, v := range raw {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: field %q of %q is not an integer", keystore.ErrWrongType, field, key)
		}
		out[field] = n
	}
	return out, nil
}

// LPush prepends values to a list
func (s *Store) LPush(ctx context.Context, key string, values ...[]byte) error {
	if len(values) == 0 {
		return nil
	}
	return translate(s.rdb.LPush(ctx, key, toArgs(values)...).Err())
}

// LTrim keeps the inclusive range of a list
func (s *Store) LTrim(ctx context.Context, key string, start, stop int64) error {
	return translate(s.rdb.LTrim(ctx, key, start, stop).Err())
}

// LRange returns the inclusive range of a list
func (s *Store) LRange(ctx context.Context, key string, start, stop int64) ([][]byte, error) {
	raw, err := s.rdb.LRange(ctx, key, start, stop).Result()
	if err != nil {
		return nil, translate(err)
	}

	out := make([][]byte, len(raw))
	for i, v := range raw {
		out[i] = []byte(v)
	}
	return out, nil
}

// ScanPrefix iterates with SCAN MATCH, never with KEYS
func (s *Store) ScanPrefix(ctx context.Context, prefix string, limit int) ([]string, error) {
	pattern := escapeGlob(prefix) + "*"
	keys := make([]string, 0)
	seen := make(map[string]struct{})

	var cursor uint64
	for {
		batch, next, err := s.rdb.Scan(ctx, cursor, pattern, scanBatch).Result()
		if err != nil {
			return nil, translate(err)
		}
		for _, k := range batch {
			// SCAN может вернуть один ключ несколько раз
			if _, dup := seen[k]; dup {
				continue
			}
			seen[k] = struct{}{}
			keys = append(keys, k)
			if limit > 0 && len(keys) >= limit {
				return keys, nil
			}
		}
		if next == 0 {
			return keys, nil
		}
		cursor = next
	}
}

// Pipelined sends the queued writes as one MULTI/EXEC transaction
func (s *Store) Pipelined(ctx context.Context, fn func(p keystore.Pipeliner) error) error {
	_, err := s.rdb.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		return fn(&pipeliner{ctx: ctx, pipe: pipe})
	})
	return translate(err)
}

// Close closes the client
func (s *Store) Close() error {
	return s.rdb.Close()
}

type pipeliner struct {
	ctx  context.Context
	pipe goredis.Pipeliner
}

func (p *pipeliner) Set(key string, value []byte, ttl time.Duration) {
	p.pipe.Set(p.ctx, key, value, ttl)
}

func (p *pipeliner) Delete(keys ...string) {
	if len(keys) > 0 {
		p.pipe.Del(p.ctx, keys...)
	}
}

func (p *pipeliner) Expire(key string, ttl time.Duration) {
	if ttl <= 0 {
		p.pipe.Persist(p.ctx, key)
		return
	}
	p.pipe.Expire(p.ctx, key, ttl)
}

func (p *pipeliner) HIncrBy(key, field string, delta int64) {
	p.pipe.HIncrBy(p.ctx, key, field, delta)
}

func (p *pipeliner) HSet(key, field string, value int64) {
	p.pipe.HSet(p.ctx, key, field, value)
}

func (p *pipeliner) LPush(key string, values ...[]byte) {
	if len(values) > 0 {
		p.pipe.LPush(p.ctx, key, toArgs(values)...)
	}
}

func (p *pipeliner) LTrim(key string, start, stop int64) {
	p.pipe.LTrim(p.ctx, key, start, stop)
}

func toArgs(values [][]byte) []interface{} {
	args := make([]interface{}, len(values))
	for i, v := range values {
		args[i] = v
	}
	return args
}

// escapeGlob экранирует спецсимволы шаблона SCAN MATCH
func escapeGlob(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '*', '?', '[', ']', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, goredis.Nil):
		return keystore.ErrKeyNotFound
	case errors.Is(err, goredis.ErrClosed):
		return keystore.ErrStoreClosed
	case strings.HasPrefix(err.Error(), "WRONGTYPE"):
		return fmt.Errorf("%w: %v", keystore.ErrWrongType, err)
	default:
		return err
	}
}
