package spiderkit

import (
	"context"
	"errors"
	"fmt"

	ikeys "github.com/SpiderKit/spiderkit-go/internal/keys"
	"github.com/redis/go-redis/v9"
)

// RedisQueue is a Queue backed by Redis: a LIST of serialized tasks plus a
// SET of seen identities. It lets a crawl outgrow one process's memory and
// survive restarts; the dispatch loop itself stays single-threaded.
type RedisQueue struct {
	rdb     redis.UniversalClient
	name    string
	ctx     context.Context
	encoder Encoder
}

// NewRedisQueue creates a queue named name on the given Redis client. The
// context is used for all Redis calls issued by the queue.
func NewRedisQueue(ctx context.Context, rdb redis.UniversalClient, name string) *RedisQueue {
	if name == "" {
		name = "default"
	}
	return &RedisQueue{rdb: rdb, name: name, ctx: ctx, encoder: &JSONEncoder{}}
}

// Push implements Queue. The identity is reserved in the seen set first; the
// reservation is rolled back if the push itself fails.
func (q *RedisQueue) Push(t *Task) (bool, error) {
	added, err := q.rdb.SAdd(q.ctx, ikeys.Seen(q.name), t.ID()).Result()
	if err != nil {
		return false, fmt.Errorf("reserve identity: %w", err)
	}
	if added == 0 {
		return false, nil
	}
	if err := q.push(t); err != nil {
		_ = q.rdb.SRem(q.ctx, ikeys.Seen(q.name), t.ID()).Err()
		return false, err
	}
	return true, nil
}

// Requeue implements Queue.
func (q *RedisQueue) Requeue(t *Task) error {
	return q.push(t)
}

func (q *RedisQueue) push(t *Task) error {
	raw, err := q.encoder.Encode(t.ToMap())
	if err != nil {
		return fmt.Errorf("encode task: %w", err)
	}
	if err := q.rdb.RPush(q.ctx, ikeys.Pending(q.name), raw).Err(); err != nil {
		return fmt.Errorf("push task: %w", err)
	}
	return nil
}

// Pop implements Queue.
func (q *RedisQueue) Pop() (*Task, error) {
	raw, err := q.rdb.LPop(q.ctx, ikeys.Pending(q.name)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrEmptyQueue
	}
	if err != nil {
		return nil, fmt.Errorf("pop task: %w", err)
	}
	m := make(map[string]any)
	if err := q.encoder.Decode([]byte(raw), &m); err != nil {
		return nil, fmt.Errorf("decode task: %w", err)
	}
	return TaskFromMap(m)
}

// Len implements Queue.
func (q *RedisQueue) Len() (int, error) {
	n, err := q.rdb.LLen(q.ctx, ikeys.Pending(q.name)).Result()
	if err != nil {
		return 0, fmt.Errorf("queue length: %w", err)
	}
	return int(n), nil
}

// Reset drops the pending list and the seen set, so the queue can be reused
// for a fresh run.
func (q *RedisQueue) Reset() error {
	return q.rdb.Del(q.ctx, ikeys.Pending(q.name), ikeys.Seen(q.name)).Err()
}
