// Package boltdb реализует локальное хранилище клиента поверх BoltDB.
package boltdb

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/deltasync/internal/client/storage"
	"github.com/iudanet/deltasync/internal/models"
)

var (
	// BoltDB bucket names
	bucketMeta     = []byte("meta")
	bucketEntities = []byte("entities")
)

const (
	keyClientID    = "client_id"
	keyVectorClock = "vector_clock"
)

var _ storage.StateStorage = (*Storage)(nil)

// Storage represents BoltDB storage implementation for client
type Storage struct {
	db *bbolt.DB
}

// New creates a new BoltDB storage instance
// dbPath is the path to the BoltDB database file
func New(ctx context.Context, dbPath string) (*Storage, error) {
	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open boltdb: %w", err)
	}

	s := &Storage{db: db}
	if err := s.initBuckets(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize buckets: %w", err)
	}

	return s, nil
}

// Close closes the database connection
func (s *Storage) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// initBuckets создает необходимые buckets если они не существуют
func (s *Storage) initBuckets() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		for _, name := range [][]byte{bucketMeta, bucketEntities} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return fmt.Errorf("failed to create %s bucket: %w", name, err)
			}
		}
		return nil
	})
}

// entityKey "<type>/<id>": id сущности не содержит '/'
func entityKey(entityType models.EntityType, id string) []byte {
	return []byte(string(entityType) + "/" + id)
}

// SaveClientID saves the client identifier
func (s *Storage) SaveClientID(ctx context.Context, clientID string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketMeta).Put([]byte(keyClientID), []byte(clientID))
	})
}

// GetClientID returns the client identifier
func (s *Storage) GetClientID(ctx context.Context) (string, error) {
	var clientID string
	err := s.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket(bucketMeta).Get([]byte(keyClientID))
		if v == nil {
			return storage.ErrNotFound
		}
		clientID = string(v)
		return nil
	})
	return clientID, err
}

// SaveVectorClock saves the vector clock of the last received delta
func (s *Storage) SaveVectorClock(ctx context.Context, vc *models.VectorClock) error {
	data, err := json.Marshal(vc)
	if err != nil {
		return fmt.Errorf("failed to marshal vector clock: %w", err)
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketMeta).Put([]byte(keyVectorClock), data)
	})
}

// GetVectorClock returns the stored vector clock or nil
func (s *Storage) GetVectorClock(ctx context.Context) (*models.VectorClock, error) {
	var vc *models.VectorClock
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketMeta).Get([]byte(keyVectorClock))
		if data == nil {
			return nil
		}
		vc = &models.VectorClock{}
		return json.Unmarshal(data, vc)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get vector clock: %w", err)
	}
	return vc, nil
}

// SaveEntity stores the entity document
func (s *Storage) SaveEntity(ctx context.Context, entityType models.EntityType, id string, doc models.Document) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal entity: %w", err)
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketEntities).Put(entityKey(entityType, id), data)
	})
}

// GetEntity returns the entity document
func (s *Storage) GetEntity(ctx context.Context, entityType models.EntityType, id string) (models.Document, error) {
	var doc models.Document
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketEntities).Get(entityKey(entityType, id))
		if data == nil {
			return storage.ErrNotFound
		}
		return json.Unmarshal(data, &doc)
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// DeleteEntity removes the entity document; missing entities are ignored
func (s *Storage) DeleteEntity(ctx context.Context, entityType models.EntityType, id string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketEntities).Delete(entityKey(entityType, id))
	})
}

// ListEntities returns every stored document of the type keyed by id
func (s *Storage) ListEntities(ctx context.Context, entityType models.EntityType) (map[string]models.Document, error) {
	out := make(map[string]models.Document)
	prefix := []byte(string(entityType) + "/")

	err := s.db.View(func(tx *bbolt.Tx) error {
		c := tx.Bucket(bucketEntities).Cursor()
		for k, v := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, v = c.Next() {
			var doc models.Document
			if err := json.Unmarshal(v, &doc); err != nil {
				return fmt.Errorf("failed to unmarshal %s: %w", k, err)
			}
			out[string(k[len(prefix):])] = doc
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Reset drops the vector clock and every document
func (s *Storage) Reset(ctx context.Context) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.Bucket(bucketMeta).Delete([]byte(keyVectorClock)); err != nil {
			return err
		}
		if err := tx.DeleteBucket(bucketEntities); err != nil {
			return err
		}
		_, err := tx.CreateBucket(bucketEntities)
		return err
	})
}
