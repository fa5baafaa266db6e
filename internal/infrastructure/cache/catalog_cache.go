package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/jhoicas/gestiva/internal/domain/repository"
	"github.com/jhoicas/gestiva/pkg/logger"
)

var _ repository.CatalogCache = (*CatalogCache)(nil)

const keyPrefix = "gestiva:catalog:"

// Stats estadísticas del caché.
type Stats struct {
	Hits    int64 `json:"hits"`
	Misses  int64 `json:"misses"`
	L1Keys  int   `json:"l1_keys"`
	RedisOn bool  `json:"redis"`
}

type l1Entry struct {
	data      []byte
	expiresAt time.Time
}

// CatalogCache caché de dos niveles: L1 en memoria del proceso y L2 opcional en Redis
// compartido entre instancias. Los valores se guardan serializados en JSON en ambos niveles.
type CatalogCache struct {
	l1      map[string]l1Entry
	l1Mutex sync.RWMutex

	redisClient *redis.Client // nil = solo L1

	maxL1Size int
	ttl       time.Duration
	now       func() time.Time

	log *logger.Logger

	statsMutex sync.Mutex
	hits       int64
	misses     int64
}

// NewCatalogCache crea el caché. redisClient puede ser nil.
func NewCatalogCache(redisClient *redis.Client, maxL1Size int, ttl time.Duration, log *logger.Logger) *CatalogCache {
	if maxL1Size <= 0 {
		maxL1Size = 256
	}
	if log == nil {
		log = logger.Nop()
	}
	return &CatalogCache{
		l1:          make(map[string]l1Entry),
		redisClient: redisClient,
		maxL1Size:   maxL1Size,
		ttl:         ttl,
		now:         time.Now,
		log:         log.Named("catalog_cache"),
	}
}

// Get busca primero en L1 y luego en Redis; un acierto en Redis se sube a L1.
func (c *CatalogCache) Get(ctx context.Context, key string, dst interface{}) bool {
	if data, ok := c.getFromL1(key); ok {
		if err := json.Unmarshal(data, dst); err == nil {
			c.record(true)
			return true
		}
	}
	if c.redisClient != nil {
		data, err := c.redisClient.Get(ctx, keyPrefix+key).Bytes()
		switch {
		case err == nil:
			if jsonErr := json.Unmarshal(data, dst); jsonErr == nil {
				c.setToL1(key, data)
				c.record(true)
				return true
			}
		case err != redis.Nil:
			c.log.Warn().Err(err).Str("key", key).Msg("redis no disponible; se continúa sin L2")
		}
	}
	c.record(false)
	return false
}

// Set guarda en ambos niveles. Un fallo de Redis se registra y se devuelve, pero L1 queda actualizado.
func (c *CatalogCache) Set(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.setToL1(key, data)
	if c.redisClient == nil {
		return nil
	}
	if err := c.redisClient.Set(ctx, keyPrefix+key, data, c.ttl).Err(); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("no se pudo escribir en redis")
		return err
	}
	return nil
}

// Delete invalida las llaves en ambos niveles.
func (c *CatalogCache) Delete(ctx context.Context, keys ...string) error {
	c.l1Mutex.Lock()
	for _, k := range keys {
		delete(c.l1, k)
	}
	c.l1Mutex.Unlock()

	if c.redisClient == nil || len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = keyPrefix + k
	}
	return c.redisClient.Del(ctx, full...).Err()
}

// Stats devuelve aciertos, fallos y llaves en L1.
func (c *CatalogCache) Stats() Stats {
	c.l1Mutex.RLock()
	n := len(c.l1)
	c.l1Mutex.RUnlock()

	c.statsMutex.Lock()
	defer c.statsMutex.Unlock()
	return Stats{Hits: c.hits, Misses: c.misses, L1Keys: n, RedisOn: c.redisClient != nil}
}

func (c *CatalogCache) getFromL1(key string) ([]byte, bool) {
	c.l1Mutex.RLock()
	e, ok := c.l1[key]
	c.l1Mutex.RUnlock()
	if !ok {
		return nil, false
	}
	if c.ttl > 0 && c.now().After(e.expiresAt) {
		c.l1Mutex.Lock()
		delete(c.l1, key)
		c.l1Mutex.Unlock()
		return nil, false
	}
	return e.data, true
}

func (c *CatalogCache) setToL1(key string, data []byte) {
	c.l1Mutex.Lock()
	defer c.l1Mutex.Unlock()
	if _, exists := c.l1[key]; !exists && len(c.l1) >= c.maxL1Size {
		c.evictOldest()
	}
	c.l1[key] = l1Entry{data: data, expiresAt: c.now().Add(c.ttl)}
}

// evictOldest quita la entrada que vence primero. Se llama con l1Mutex tomado.
func (c *CatalogCache) evictOldest() {
	var oldest string
	var oldestAt time.Time
	for k, e := range c.l1 {
		if oldest == "" || e.expiresAt.Before(oldestAt) {
			oldest, oldestAt = k, e.expiresAt
		}
	}
	delete(c.l1, oldest)
}

func (c *CatalogCache) record(hit bool) {
	c.statsMutex.Lock()
	if hit {
		c.hits++
	} else {
		c.misses++
	}
	c.statsMutex.Unlock()
}
