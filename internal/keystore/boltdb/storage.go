package boltdb

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"go.etcd.io/bbolt"

	"github.com/iudanet/deltasync/internal/keystore"
)

var (
	// bucketRecords хранит все записи ключевого хранилища
	bucketRecords = []byte("records")
)

// Backend represents BoltDB implementation of the keyed store backend
type Backend struct {
	db    *bbolt.DB
	stopC chan struct{}
}

// New creates a BoltDB keyed store.
// dbPath is the path to the BoltDB database file.
// A non-zero sweepInterval starts a goroutine removing expired records.
func New(dbPath string, sweepInterval time.Duration) (*keystore.RecordStore, error) {
	// Открываем BoltDB
	db, err := bbolt.Open(dbPath, 0600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open boltdb: %w", err)
	}

	b := &Backend{db: db, stopC: make(chan struct{})}

	// Инициализируем bucket
	if err := b.initBuckets(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize buckets: %w", err)
	}

	if sweepInterval > 0 {
		go b.janitor(sweepInterval)
	}

	return keystore.NewRecordStore(b), nil
}

// initBuckets создает необходимые buckets если они не существуют
func (b *Backend) initBuckets() error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(bucketRecords); err != nil {
			return fmt.Errorf("failed to create records bucket: %w", err)
		}
		return nil
	})
}

// View runs fn in a read-only transaction
func (b *Backend) View(fn func(tx keystore.RecordTx) error) error {
	if b.db == nil {
		return keystore.ErrStoreClosed
	}
	return b.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketRecords)
		if bucket == nil {
			return fmt.Errorf("records bucket not found")
		}
		return fn(&boltTx{bucket: bucket})
	})
}

// Update runs fn in a read-write transaction. BoltDB allows a single writer,
// so every read-modify-write inside fn is atomic.
func (b *Backend) Update(fn func(tx keystore.RecordTx) error) error {
	if b.db == nil {
		return keystore.ErrStoreClosed
	}
	return b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketRecords)
		if bucket == nil {
			return fmt.Errorf("records bucket not found")
		}
		return fn(&boltTx{bucket: bucket})
	})
}

// ScanPrefix seeks to the prefix with a cursor instead of enumerating all keys
func (b *Backend) ScanPrefix(prefix string, limit int, now time.Time) ([]string, error) {
	keys := make([]string, 0)
	p := []byte(prefix)

	err := b.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketRecords)
		if bucket == nil {
			return nil
		}

		c := bucket.Cursor()
		for k, v := c.Seek(p); k != nil && bytes.HasPrefix(k, p); k, v = c.Next() {
			var rec keystore.Record
			if err := json.Unmarshal(v, &rec); err != nil {
				// Поврежденная запись не должна ломать сканирование
				continue
			}
			if rec.Expired(now) {
				continue
			}
			keys = append(keys, string(k))
			if limit > 0 && len(keys) >= limit {
				return nil
			}
		}
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to scan prefix: %w", err)
	}
	return keys, nil
}

// janitor периодически удаляет просроченные записи
func (b *Backend) janitor(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			_ = b.sweep(time.Now())
		case <-b.stopC:
			return
		}
	}
}

func (b *Backend) sweep(now time.Time) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketRecords)
		if bucket == nil {
			return nil
		}

		var expired [][]byte
		err := bucket.ForEach(func(k, v []byte) error {
			var rec keystore.Record
			if err := json.Unmarshal(v, &rec); err != nil || rec.Expired(now) {
				expired = append(expired, append([]byte(nil), k...))
			}
			return nil
		})
		if err != nil {
			return err
		}

		for _, k := range expired {
			if err := bucket.Delete(k); err != nil {
				return fmt.Errorf("failed to delete expired record: %w", err)
			}
		}
		return nil
	})
}

// Close closes the database connection
func (b *Backend) Close() error {
	if b.db == nil {
		return nil
	}
	close(b.stopC)
	err := b.db.Close()
	b.db = nil
	return err
}

type boltTx struct {
	bucket *bbolt.Bucket
}

func (tx *boltTx) Load(key string) (*keystore.Record, error) {
	data := tx.bucket.Get([]byte(key))
	if data == nil {
		return nil, nil
	}

	rec := &keystore.Record{}
	if err := json.Unmarshal(data, rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal record %q: %w", key, err)
	}
	return rec, nil
}

func (tx *boltTx) Save(key string, rec *keystore.Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}
	if err := tx.bucket.Put([]byte(key), data); err != nil {
		return fmt.Errorf("failed to save record: %w", err)
	}
	return nil
}

func (tx *boltTx) Remove(key string) error {
	if err := tx.bucket.Delete([]byte(key)); err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}
	return nil
}
