package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"notefiber-editor/internal/entity"

	gocache "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

const defaultTTL = 10 * time.Minute

// NoteCache holds read-through copies of stored notes keyed by id.
type NoteCache interface {
	Get(ctx context.Context, id string) (*entity.StoredNote, bool, error)
	Set(ctx context.Context, note *entity.StoredNote) error
	Delete(ctx context.Context, id string) error
}

func key(id string) string {
	return "note:" + id
}

type RedisNoteCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisNoteCache(rdb *redis.Client) *RedisNoteCache {
	return &RedisNoteCache{rdb: rdb, ttl: defaultTTL}
}

// NewRedisClient parses a redis:// URL and checks the connection.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return rdb, nil
}

func (c *RedisNoteCache) Get(ctx context.Context, id string) (*entity.StoredNote, bool, error) {
	data, err := c.rdb.Get(ctx, key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var note entity.StoredNote
	if err := json.Unmarshal(data, &note); err != nil {
		return nil, false, fmt.Errorf("corrupt cache entry %s: %w", key(id), err)
	}
	return &note, true, nil
}

func (c *RedisNoteCache) Set(ctx context.Context, note *entity.StoredNote) error {
	data, err := json.Marshal(note)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, key(note.Id), data, c.ttl).Err()
}

func (c *RedisNoteCache) Delete(ctx context.Context, id string) error {
	return c.rdb.Del(ctx, key(id)).Err()
}

type MemoryNoteCache struct {
	cache *gocache.Cache
}

func NewMemoryNoteCache() *MemoryNoteCache {
	return &MemoryNoteCache{cache: gocache.New(defaultTTL, 2*defaultTTL)}
}

func (c *MemoryNoteCache) Get(ctx context.Context, id string) (*entity.StoredNote, bool, error) {
	if x, found := c.cache.Get(key(id)); found {
		note := *x.(*entity.StoredNote)
		return &note, true, nil
	}
	return nil, false, nil
}

func (c *MemoryNoteCache) Set(ctx context.Context, note *entity.StoredNote) error {
	stored := *note
	c.cache.Set(key(note.Id), &stored, gocache.DefaultExpiration)
	return nil
}

func (c *MemoryNoteCache) Delete(ctx context.Context, id string) error {
	c.cache.Delete(key(id))
	return nil
}
