package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/deltasync/internal/keystore"
	"github.com/iudanet/deltasync/internal/keystore/keystoretest"
)

func TestRedisStore_Contract(t *testing.T) {
	var mr *miniredis.Miniredis

	keystoretest.Run(t, func(t *testing.T) keystore.Store {
		mr = miniredis.RunT(t)
		s, err := New(context.Background(), Options{Addr: mr.Addr()})
		require.NoError(t, err)
		t.Cleanup(func() { _ = s.Close() })
		return s
	}, func(d time.Duration) { mr.FastForward(d) })
}

func TestRedisStore_NewFailsWithoutServer(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := New(ctx, Options{Addr: addr})
	assert.Error(t, err)
}

func TestRedisStore_HMaxIncrKeepsTTL(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	s := NewWithClient(goredis.NewClient(&goredis.Options{Addr: mr.Addr()}))
	defer s.Close()

	_, err := s.HMaxIncr(ctx, "lamport:c1", "counter", 0)
	require.NoError(t, err)
	require.NoError(t, s.Expire(ctx, "lamport:c1", time.Hour))

	v, err := s.HMaxIncr(ctx, "lamport:c1", "counter", 5)
	require.NoError(t, err)
	assert.Equal(t, int64(6), v)
	assert.Equal(t, time.Hour, mr.TTL("lamport:c1"))
}

func TestEscapeGlob(t *testing.T) {
	assert.Equal(t, `quality:metrics:`, escapeGlob("quality:metrics:"))
	assert.Equal(t, `a\*b\?c\[d\]`, escapeGlob("a*b?c[d]"))
}
