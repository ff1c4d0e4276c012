package boltdb

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.etcd.io/bbolt"

	"github.com/iudanet/deltasync/internal/keystore"
	"github.com/iudanet/deltasync/internal/keystore/keystoretest"
)

// создаём тестовое BoltDB хранилище во временной директории
func createTestStorage(t *testing.T) (*keystore.RecordStore, string) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "keystore_test.db")
	store, err := New(dbPath, 0)
	require.NoError(t, err)
	require.NotNil(t, store)

	t.Cleanup(func() { _ = store.Close() })
	return store, dbPath
}

func TestBoltStore_Contract(t *testing.T) {
	keystoretest.Run(t, func(t *testing.T) keystore.Store {
		store, _ := createTestStorage(t)
		return store
	}, keystoretest.Sleep)
}

func TestBoltStore_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "reopen.db")

	store, err := New(dbPath, 0)
	require.NoError(t, err)
	_, err = store.HMaxIncr(ctx, "lamport:c1", "counter", 41)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	reopened, err := New(dbPath, 0)
	require.NoError(t, err)
	defer reopened.Close()

	fields, err := reopened.HGetAll(ctx, "lamport:c1")
	require.NoError(t, err)
	assert.Equal(t, int64(42), fields["counter"])
}

func TestBoltStore_CorruptRecordSkippedByScan(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "corrupt.db")

	store, err := New(dbPath, 0)
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, "vclock:ok", []byte("{}"), 0))
	require.NoError(t, store.Close())

	// Пишем мусор напрямую в bucket
	db, err := bbolt.Open(dbPath, 0600, &bbolt.Options{Timeout: time.Second})
	require.NoError(t, err)
	require.NoError(t, db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketRecords).Put([]byte("vclock:bad"), []byte("{not json"))
	}))
	require.NoError(t, db.Close())

	reopened, err := New(dbPath, 0)
	require.NoError(t, err)
	defer reopened.Close()

	keys, err := reopened.ScanPrefix(ctx, "vclock:", 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"vclock:ok"}, keys)

	_, err = reopened.Get(ctx, "vclock:bad")
	assert.Error(t, err)
}

func TestBoltStore_SweepRemovesExpired(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "sweep.db")

	store, err := New(dbPath, 10*time.Millisecond)
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Set(ctx, "quality:metrics:c1", []byte("{}"), 20*time.Millisecond))
	require.NoError(t, store.Set(ctx, "quality:metrics:c2", []byte("{}"), time.Hour))

	assert.Eventually(t, func() bool {
		keys, err := store.ScanPrefix(ctx, "quality:metrics:", 0)
		return err == nil && len(keys) == 1
	}, time.Second, 10*time.Millisecond)
}

func TestBoltStore_ClosedStore(t *testing.T) {
	store, _ := createTestStorage(t)
	require.NoError(t, store.Close())

	_, err := store.Get(context.Background(), "k")
	assert.ErrorIs(t, err, keystore.ErrStoreClosed)
}
