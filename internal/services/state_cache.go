package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/ycode/builder-backend/internal/pkg/logger"
	"github.com/ycode/builder-backend/internal/types"
	"github.com/ycode/builder-backend/internal/utils"
)

// StateKey identifies one draft entity's slot in the previous-state cache
// and in the undo/redo write marks.
type StateKey struct {
	EntityType types.EntityType
	EntityID   string
}

func (k StateKey) String() string {
	return string(k.EntityType) + ":" + k.EntityID
}

// PreviousStateCache holds the last fully-materialized draft state the
// version recorder saw per entity. It is a diff baseline, not a source of
// truth: losing an entry means the next edit is treated as a first
// observation (no version recorded) but never corrupts stored data.
type PreviousStateCache interface {
	Get(ctx context.Context, key StateKey) (interface{}, bool, error)
	Set(ctx context.Context, key StateKey, state interface{}) error
	Delete(ctx context.Context, key StateKey) error
}

type memoryStateCache struct {
	mu     sync.RWMutex
	states map[StateKey]interface{}
}

func NewMemoryStateCache() PreviousStateCache {
	return &memoryStateCache{states: map[StateKey]interface{}{}}
}

func (c *memoryStateCache) Get(_ context.Context, key StateKey) (interface{}, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	state, ok := c.states[key]
	return state, ok, nil
}

func (c *memoryStateCache) Set(_ context.Context, key StateKey, state interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.states[key] = state
	return nil
}

func (c *memoryStateCache) Delete(_ context.Context, key StateKey) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.states, key)
	return nil
}

type redisStateCache struct {
	rdb    *goredis.Client
	prefix string
	ttl    time.Duration
	log    *logger.Logger
}

// NewRedisStateCache keeps the diff baseline in redis so it survives
// process restarts within an editing session.
func NewRedisStateCache(log *logger.Logger) (PreviousStateCache, error) {
	addr := strings.TrimSpace(utils.GetEnv("REDIS_ADDR", "", log))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}
	ttlSeconds := utils.GetEnvAsInt("STATE_CACHE_TTL", 86400, log)

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &redisStateCache{
		rdb:    rdb,
		prefix: "builder:prevstate:",
		ttl:    time.Duration(ttlSeconds) * time.Second,
		log:    log.With("service", "RedisStateCache"),
	}, nil
}

func (c *redisStateCache) Get(ctx context.Context, key StateKey) (interface{}, bool, error) {
	raw, err := c.rdb.Get(ctx, c.prefix+key.String()).Bytes()
	if err != nil {
		if err == goredis.Nil {
			return nil, false, nil
		}
		return nil, false, err
	}
	var state interface{}
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, false, fmt.Errorf("decode cached state: %w", err)
	}
	return state, true, nil
}

func (c *redisStateCache) Set(ctx context.Context, key StateKey, state interface{}) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	return c.rdb.Set(ctx, c.prefix+key.String(), raw, c.ttl).Err()
}

func (c *redisStateCache) Delete(ctx context.Context, key StateKey) error {
	return c.rdb.Del(ctx, c.prefix+key.String()).Err()
}

// NewPreviousStateCache picks the cache backend from STATE_CACHE_PROVIDER
// ("memory" default, "redis" opt-in).
func NewPreviousStateCache(log *logger.Logger) (PreviousStateCache, error) {
	provider := strings.ToLower(utils.GetEnv("STATE_CACHE_PROVIDER", "memory", log))
	switch provider {
	case "redis":
		return NewRedisStateCache(log)
	case "memory", "":
		return NewMemoryStateCache(), nil
	default:
		return nil, fmt.Errorf("unknown state cache provider %q", provider)
	}
}
