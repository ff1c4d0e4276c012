package entity

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/iudanet/deltasync/internal/batch"
	"github.com/iudanet/deltasync/internal/models"
)

// Значения по умолчанию
const (
	DefaultCurrentTTL  = 5 * time.Minute
	DefaultPreviousTTL = 30 * time.Minute
	DefaultListLimit   = 50
)

// CacheConfig параметры кэша снимков.
type CacheConfig struct {
	CurrentTTL  time.Duration `yaml:"current_ttl"`
	PreviousTTL time.Duration `yaml:"previous_ttl"`
	ListLimit   int           `yaml:"list_limit"`
}

// DefaultCacheConfig returns the default cache settings
func DefaultCacheConfig() CacheConfig {
	return CacheConfig{
		CurrentTTL:  DefaultCurrentTTL,
		PreviousTTL: DefaultPreviousTTL,
		ListLimit:   DefaultListLimit,
	}
}

// Snapshot снимок одной сущности.
type Snapshot struct {
	Document models.Document
	ID       string
}

// Previous снимок, который клиент видел при последней синхронизации.
type Previous struct {
	Document models.Document
	// ServerCounter счетчик Лампорта сервера в момент отправки снимка
	ServerCounter uint64
}

// Cache хранит текущие снимки сущностей (общие для всех клиентов) и
// предыдущие снимки по каждому клиенту для вычисления дельт.
// Снимки в кэше не изменяются: вызывающий код не должен их модифицировать.
type Cache struct {
	store    Store
	queue    *batch.Queue
	logger   *slog.Logger
	current  *gocache.Cache
	previous *gocache.Cache
	cfg      CacheConfig
}

// NewCache creates the entity cache. Backing store reads go through queue.
func NewCache(store Store, queue *batch.Queue, logger *slog.Logger, cfg CacheConfig) *Cache {
	def := DefaultCacheConfig()
	if cfg.CurrentTTL <= 0 {
		cfg.CurrentTTL = def.CurrentTTL
	}
	if cfg.PreviousTTL <= 0 {
		cfg.PreviousTTL = def.PreviousTTL
	}
	if cfg.ListLimit <= 0 {
		cfg.ListLimit = def.ListLimit
	}

	return &Cache{
		store:    store,
		queue:    queue,
		logger:   logger,
		cfg:      cfg,
		current:  gocache.New(cfg.CurrentTTL, 2*cfg.CurrentTTL),
		previous: gocache.New(cfg.PreviousTTL, cfg.PreviousTTL),
	}
}

func currentKey(entityType models.EntityType, id string) string {
	return string(entityType) + ":" + id
}

func listKey(entityType models.EntityType) string {
	return string(entityType) + "|list"
}

func previousKey(clientID string, entityType models.EntityType, id string) string {
	return "prev:" + clientID + ":" + string(entityType) + ":" + id
}

// GetEntityState returns the current snapshot of one entity, or nil when the
// type is unknown or the entity does not exist.
func (c *Cache) GetEntityState(ctx context.Context, entityType models.EntityType, id string) (models.Document, error) {
	if !entityType.Valid() || id == "" {
		return nil, nil
	}

	key := currentKey(entityType, id)
	if v, ok := c.current.Get(key); ok {
		return v.(models.Document), nil
	}

	f := batch.Submit(c.queue, func(context.Context) (models.Entity, error) {
		return c.store.FindOne(ctx, entityType, id)
	})
	e, err := f.Wait(ctx)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch %s %s: %w", entityType, id, err)
	}

	doc := e.Document()
	c.current.SetDefault(key, doc)
	return doc, nil
}

// GetEntityList returns up to ListLimit snapshots of the type, ordered by id.
func (c *Cache) GetEntityList(ctx context.Context, entityType models.EntityType) ([]Snapshot, error) {
	if !entityType.Valid() {
		return nil, nil
	}

	key := listKey(entityType)
	if v, ok := c.current.Get(key); ok {
		return v.([]Snapshot), nil
	}

	limit := c.cfg.ListLimit
	f := batch.Submit(c.queue, func(context.Context) ([]models.Entity, error) {
		return c.store.FindMany(ctx, entityType, Filter{}, limit)
	})
	entities, err := f.Wait(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", entityType, err)
	}

	snapshots := make([]Snapshot, 0, len(entities))
	for _, e := range entities {
		doc := e.Document()
		snapshots = append(snapshots, Snapshot{ID: e.EntityID(), Document: doc})
		c.current.SetDefault(currentKey(entityType, e.EntityID()), doc)
	}
	c.current.SetDefault(key, snapshots)
	return snapshots, nil
}

// Previous returns the snapshot last sent to the client for the entity
func (c *Cache) Previous(clientID string, entityType models.EntityType, id string) (Previous, bool) {
	v, ok := c.previous.Get(previousKey(clientID, entityType, id))
	if !ok {
		return Previous{}, false
	}
	return v.(Previous), true
}

// RememberPrevious stores the snapshot just sent to the client
func (c *Cache) RememberPrevious(clientID string, entityType models.EntityType, id string, prev Previous) {
	c.previous.SetDefault(previousKey(clientID, entityType, id), prev)
}

// ForgetPrevious drops the snapshot kept for one client and entity
func (c *Cache) ForgetPrevious(clientID string, entityType models.EntityType, id string) {
	c.previous.Delete(previousKey(clientID, entityType, id))
}

// PreviousIDs returns the sorted ids of the type the client holds a
// previous snapshot for
func (c *Cache) PreviousIDs(clientID string, entityType models.EntityType) []string {
	var ids []string
	for key := range c.previous.Items() {
		keyClient, keyType, keyID, ok := parsePreviousKey(key)
		if ok && keyClient == clientID && keyType == entityType {
			ids = append(ids, keyID)
		}
	}
	sort.Strings(ids)
	return ids
}

// InvalidateEntityCache drops the current snapshot and every client's
// previous snapshot of the entity, or of all entities of the type when id
// is empty. The next delta for them is a full creation.
func (c *Cache) InvalidateEntityCache(entityType models.EntityType, id string) int {
	removed := 0

	c.current.Delete(listKey(entityType))
	if id != "" {
		if _, ok := c.current.Get(currentKey(entityType, id)); ok {
			removed++
		}
		c.current.Delete(currentKey(entityType, id))
	} else {
		prefix := string(entityType) + ":"
		for key := range c.current.Items() {
			if strings.HasPrefix(key, prefix) {
				c.current.Delete(key)
				removed++
			}
		}
	}

	for key := range c.previous.Items() {
		_, keyType, keyID, ok := parsePreviousKey(key)
		if !ok || keyType != entityType {
			continue
		}
		if id == "" || keyID == id {
			c.previous.Delete(key)
			removed++
		}
	}

	c.logger.Debug("Entity cache invalidated",
		"entity_type", entityType,
		"entity_id", id,
		"removed", removed,
	)
	return removed
}

// ForgetClient drops every previous snapshot kept for the client
func (c *Cache) ForgetClient(clientID string) {
	prefix := "prev:" + clientID + ":"
	for key := range c.previous.Items() {
		if strings.HasPrefix(key, prefix) {
			c.previous.Delete(key)
		}
	}
}

// parsePreviousKey разбирает prev:<client>:<type>:<id>; id может содержать ':'
func parsePreviousKey(key string) (string, models.EntityType, string, bool) {
	parts := strings.SplitN(key, ":", 4)
	if len(parts) != 4 || parts[0] != "prev" {
		return "", "", "", false
	}
	return parts[1], models.EntityType(parts[2]), parts[3], true
}
