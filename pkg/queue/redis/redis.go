// Package redis is a Redis list backed ingestion queue (LPUSH / BRPOP), so
// several service instances can share one stream of uploads.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/artem13815/hr/ingest/pkg/queue"
)

const DefaultKey = "ingest:resumes"

type Options struct {
	Addr     string
	Password string
	DB       int
	Key      string
	Poll     time.Duration
}

type Queue struct {
	client *redis.Client
	key    string
	poll   time.Duration
}

// New connects and pings Redis.
func New(ctx context.Context, opts Options) (*Queue, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping %s: %w", opts.Addr, err)
	}
	return NewWithClient(rdb, opts.Key, opts.Poll), nil
}

// NewWithClient wraps an existing client.
func NewWithClient(rdb *redis.Client, key string, poll time.Duration) *Queue {
	if key == "" {
		key = DefaultKey
	}
	if poll <= 0 {
		poll = 5 * time.Second
	}
	return &Queue{client: rdb, key: key, poll: poll}
}

func (q *Queue) Enqueue(ctx context.Context, id uuid.UUID) error {
	if err := q.client.LPush(ctx, q.key, id.String()).Err(); err != nil {
		return fmt.Errorf("enqueue %s: %w", id, err)
	}
	return nil
}

func (q *Queue) Dequeue(ctx context.Context) (uuid.UUID, error) {
	res, err := q.client.BRPop(ctx, q.poll, q.key).Result()
	if errors.Is(err, redis.Nil) {
		return uuid.Nil, queue.ErrEmpty
	}
	if err != nil {
		if ctx.Err() != nil {
			return uuid.Nil, ctx.Err()
		}
		return uuid.Nil, fmt.Errorf("dequeue: %w", err)
	}
	// BRPOP replies [key, value]
	if len(res) != 2 {
		return uuid.Nil, fmt.Errorf("dequeue: unexpected reply %v", res)
	}
	id, err := uuid.Parse(res[1])
	if err != nil {
		return uuid.Nil, fmt.Errorf("dequeue: bad id %q: %w", res[1], err)
	}
	return id, nil
}

// Client exposes the connection for health checks.
func (q *Queue) Client() *redis.Client { return q.client }

func (q *Queue) Close() error { return q.client.Close() }
