// Package keystoretest содержит общий контрактный тест для реализаций keystore.Store.
package keystoretest

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/deltasync/internal/keystore"
)

// Factory creates a fresh, empty store for one subtest.
type Factory func(t *testing.T) keystore.Store

// Advance moves the store's notion of time forward: a sleep for embedded
// backends, FastForward for miniredis.
type Advance func(d time.Duration)

// Sleep is the Advance of backends using the wall clock.
func Sleep(d time.Duration) { time.Sleep(d) }

// Run checks that the store behaves like every other keystore backend.
func Run(t *testing.T, newStore Factory, advance Advance) {
	t.Run("get set delete", func(t *testing.T) {
		ctx := context.Background()
		s := newStore(t)

		_, err := s.Get(ctx, "missing")
		assert.ErrorIs(t, err, keystore.ErrKeyNotFound)

		require.NoError(t, s.Set(ctx, "a", []byte("1"), 0))
		got, err := s.Get(ctx, "a")
		require.NoError(t, err)
		assert.Equal(t, []byte("1"), got)

		require.NoError(t, s.Set(ctx, "a", []byte("2"), time.Hour))
		got, err = s.Get(ctx, "a")
		require.NoError(t, err)
		assert.Equal(t, []byte("2"), got)

		require.NoError(t, s.Delete(ctx, "a", "never-existed"))
		_, err = s.Get(ctx, "a")
		assert.ErrorIs(t, err, keystore.ErrKeyNotFound)
	})

	t.Run("ttl expiry", func(t *testing.T) {
		ctx := context.Background()
		s := newStore(t)

		require.NoError(t, s.Set(ctx, "short", []byte("x"), 50*time.Millisecond))
		require.NoError(t, s.Set(ctx, "long", []byte("y"), time.Hour))
		require.NoError(t, s.Set(ctx, "extended", []byte("z"), 50*time.Millisecond))
		require.NoError(t, s.Expire(ctx, "extended", time.Hour))

		advance(100 * time.Millisecond)

		_, err := s.Get(ctx, "short")
		assert.ErrorIs(t, err, keystore.ErrKeyNotFound)
		_, err = s.Get(ctx, "long")
		assert.NoError(t, err)
		_, err = s.Get(ctx, "extended")
		assert.NoError(t, err)
	})

	t.Run("counters", func(t *testing.T) {
		ctx := context.Background()
		s := newStore(t)

		v, err := s.IncrBy(ctx, "n", 5)
		require.NoError(t, err)
		assert.Equal(t, int64(5), v)
		v, err = s.IncrBy(ctx, "n", -2)
		require.NoError(t, err)
		assert.Equal(t, int64(3), v)

		h, err := s.HIncrBy(ctx, "h", "bytes", 100)
		require.NoError(t, err)
		assert.Equal(t, int64(100), h)
		require.NoError(t, s.HSet(ctx, "h", "ts", 42))

		all, err := s.HGetAll(ctx, "h")
		require.NoError(t, err)
		assert.Equal(t, map[string]int64{"bytes": 100, "ts": 42}, all)

		empty, err := s.HGetAll(ctx, "no-such-hash")
		require.NoError(t, err)
		assert.Empty(t, empty)
	})

	t.Run("hmaxincr", func(t *testing.T) {
		ctx := context.Background()
		s := newStore(t)

		v, err := s.HMaxIncr(ctx, "clock", "counter", 0)
		require.NoError(t, err)
		assert.Equal(t, int64(1), v)

		v, err = s.HMaxIncr(ctx, "clock", "counter", 10)
		require.NoError(t, err)
		assert.Equal(t, int64(11), v)

		// floor ниже текущего значения - обычный инкремент
		v, err = s.HMaxIncr(ctx, "clock", "counter", 3)
		require.NoError(t, err)
		assert.Equal(t, int64(12), v)
	})

	t.Run("hmaxincr concurrent", func(t *testing.T) {
		ctx := context.Background()
		s := newStore(t)

		const workers = 20
		var wg sync.WaitGroup
		results := make([]int64, workers)
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				v, err := s.HMaxIncr(ctx, "clock", "counter", 0)
				assert.NoError(t, err)
				results[i] = v
			}(i)
		}
		wg.Wait()

		sort.Slice(results, func(a, b int) bool { return results[a] < results[b] })
		for i, v := range results {
			assert.Equal(t, int64(i+1), v)
		}
	})

	t.Run("lists", func(t *testing.T) {
		ctx := context.Background()
		s := newStore(t)

		require.NoError(t, s.LPush(ctx, "l", []byte("a"), []byte("b")))
		require.NoError(t, s.LPush(ctx, "l", []byte("c")))

		all, err := s.LRange(ctx, "l", 0, -1)
		require.NoError(t, err)
		assert.Equal(t, [][]byte{[]byte("c"), []byte("b"), []byte("a")}, all)

		require.NoError(t, s.LTrim(ctx, "l", 0, 1))
		all, err = s.LRange(ctx, "l", 0, -1)
		require.NoError(t, err)
		assert.Equal(t, [][]byte{[]byte("c"), []byte("b")}, all)

		tail, err := s.LRange(ctx, "l", -1, -1)
		require.NoError(t, err)
		assert.Equal(t, [][]byte{[]byte("b")}, tail)

		none, err := s.LRange(ctx, "missing", 0, -1)
		require.NoError(t, err)
		assert.Empty(t, none)
	})

	t.Run("wrong type", func(t *testing.T) {
		ctx := context.Background()
		s := newStore(t)

		require.NoError(t, s.LPush(ctx, "l", []byte("a")))
		_, err := s.Get(ctx, "l")
		assert.ErrorIs(t, err, keystore.ErrWrongType)
	})

	t.Run("scan prefix", func(t *testing.T) {
		ctx := context.Background()
		s := newStore(t)

		for i := 0; i < 5; i++ {
			require.NoError(t, s.Set(ctx, fmt.Sprintf("quality:metrics:c%d", i), []byte("{}"), 0))
		}
		require.NoError(t, s.Set(ctx, "quality:latency:c0", []byte("x"), 0))
		require.NoError(t, s.Set(ctx, "vclock:c0", []byte("x"), 0))

		keys, err := s.ScanPrefix(ctx, "quality:metrics:", 0)
		require.NoError(t, err)
		sort.Strings(keys)
		assert.Equal(t, []string{
			"quality:metrics:c0", "quality:metrics:c1", "quality:metrics:c2",
			"quality:metrics:c3", "quality:metrics:c4",
		}, keys)

		limited, err := s.ScanPrefix(ctx, "quality:metrics:", 2)
		require.NoError(t, err)
		assert.Len(t, limited, 2)
	})

	t.Run("pipelined", func(t *testing.T) {
		ctx := context.Background()
		s := newStore(t)

		err := s.Pipelined(ctx, func(p keystore.Pipeliner) error {
			p.LPush("win", []byte("1"), []byte("2"), []byte("3"))
			p.LTrim("win", 0, 1)
			p.Expire("win", time.Hour)
			p.HIncrBy("totals", "messages", 1)
			p.HIncrBy("totals", "messages", 1)
			p.HSet("totals", "bytes", 10)
			p.Set("blob", []byte("v"), time.Hour)
			p.Delete("gone")
			return nil
		})
		require.NoError(t, err)

		win, err := s.LRange(ctx, "win", 0, -1)
		require.NoError(t, err)
		assert.Equal(t, [][]byte{[]byte("3"), []byte("2")}, win)

		totals, err := s.HGetAll(ctx, "totals")
		require.NoError(t, err)
		assert.Equal(t, map[string]int64{"messages": 2, "bytes": 10}, totals)

		blob, err := s.Get(ctx, "blob")
		require.NoError(t, err)
		assert.Equal(t, []byte("v"), blob)
	})
}
