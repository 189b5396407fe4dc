// Package checkers adapts the service's backends to health.Checker.
package checkers

import (
	"context"
	"time"
)

const defaultTimeout = time.Second

// Pinger is anything with a context-aware liveness call.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingChecker bounds a Pinger call with a timeout.
type PingChecker struct {
	name    string
	target  Pinger
	timeout time.Duration
}

func (c *PingChecker) Name() string { return c.name }

func (c *PingChecker) Check(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	return c.target.Ping(ctx)
}

// NewPostgresChecker accepts a *pgxpool.Pool.
func NewPostgresChecker(pool Pinger) *PingChecker {
	return &PingChecker{name: "postgres", target: pool, timeout: defaultTimeout}
}

// NewObjectStoreChecker accepts the MinIO store.
func NewObjectStoreChecker(store Pinger) *PingChecker {
	return &PingChecker{name: "minio", target: store, timeout: 2 * defaultTimeout}
}
