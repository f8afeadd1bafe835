package storage

import (
	"context"
	"strconv"
	"time"

	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"

	"todo-manager-api/domain"
)

type backend interface {
	ListTodos(ctx context.Context, f domain.ListFilter) ([]domain.Todo, error)
	InsertTodo(ctx context.Context, t domain.Todo) (domain.Todo, error)
	GetTodo(ctx context.Context, id string) (*domain.Todo, error)
	MergeTodo(ctx context.Context, id string, p domain.TodoPatch) error
	DeleteTodo(ctx context.Context, id string) error
	EnqueueTodoEvent(ctx context.Context, ev domain.TodoEvent) error
}

const generationKey = "todos:gen"

// Cache wraps a store with Redis-backed caching for list reads. Every
// mutation bumps a generation counter so earlier list entries can no longer
// be hit; stale entries age out via TTL.
type Cache struct {
	base  backend
	redis *redis.Client
	ttl   time.Duration
}

// NewCache creates a caching wrapper using the provided Redis client and TTL.
func NewCache(base backend, client *redis.Client, ttl time.Duration) *Cache {
	if base == nil {
		panic("storage.NewCache: base storage is nil")
	}
	if ttl < 0 {
		ttl = 0
	}
	return &Cache{base: base, redis: client, ttl: ttl}
}

func (c *Cache) ListTodos(ctx context.Context, f domain.ListFilter) ([]domain.Todo, error) {
	key, ok := c.listKey(ctx, f)
	if ok {
		if todos, hit := c.loadList(ctx, key); hit {
			return todos, nil
		}
	}

	todos, err := c.base.ListTodos(ctx, f)
	if err != nil {
		return nil, err
	}
	if ok {
		c.storeList(ctx, key, todos)
	}
	return todos, nil
}

func (c *Cache) InsertTodo(ctx context.Context, t domain.Todo) (domain.Todo, error) {
	created, err := c.base.InsertTodo(ctx, t)
	if err != nil {
		return domain.Todo{}, err
	}
	c.bumpGeneration(ctx)
	return created, nil
}

func (c *Cache) GetTodo(ctx context.Context, id string) (*domain.Todo, error) {
	return c.base.GetTodo(ctx, id)
}

func (c *Cache) MergeTodo(ctx context.Context, id string, p domain.TodoPatch) error {
	if err := c.base.MergeTodo(ctx, id, p); err != nil {
		return err
	}
	c.bumpGeneration(ctx)
	return nil
}

func (c *Cache) DeleteTodo(ctx context.Context, id string) error {
	if err := c.base.DeleteTodo(ctx, id); err != nil {
		return err
	}
	c.bumpGeneration(ctx)
	return nil
}

func (c *Cache) EnqueueTodoEvent(ctx context.Context, ev domain.TodoEvent) error {
	return c.base.EnqueueTodoEvent(ctx, ev)
}

// listKey derives the cache key for a filter under the current generation.
// The second return value is false when Redis is unavailable and the cache
// must be bypassed.
func (c *Cache) listKey(ctx context.Context, f domain.ListFilter) (string, bool) {
	if c.redis == nil || c.ttl == 0 {
		return "", false
	}
	gen, err := c.redis.Get(ctx, generationKey).Result()
	if err != nil {
		if err != redis.Nil {
			return "", false
		}
		gen = "0"
	}
	return "todos:" + gen + ":" + buildFilter(f) + ":limit=" + strconv.Itoa(f.Limit), true
}

func (c *Cache) loadList(ctx context.Context, key string) ([]domain.Todo, bool) {
	data, err := c.redis.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			// On redis errors fall back to the backing storage without failing.
			_ = c.redis.Del(ctx, key).Err()
		}
		return nil, false
	}
	var todos []domain.Todo
	if err := sonic.Unmarshal(data, &todos); err != nil {
		_ = c.redis.Del(ctx, key).Err()
		return nil, false
	}
	return todos, true
}

func (c *Cache) storeList(ctx context.Context, key string, todos []domain.Todo) {
	data, err := sonic.Marshal(todos)
	if err != nil {
		return
	}
	_ = c.redis.Set(ctx, key, data, c.ttl).Err()
}

func (c *Cache) bumpGeneration(ctx context.Context) {
	if c.redis == nil {
		return
	}
	_ = c.redis.Incr(ctx, generationKey).Err()
}
