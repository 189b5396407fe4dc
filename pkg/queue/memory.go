// Package queue carries resume ids from the upload path to the ingestion workers.
package queue

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrEmpty is returned by Dequeue when the poll window passed without work.
var ErrEmpty = errors.New("queue: empty")

// ErrFull is returned by Enqueue when an in-process queue has no room left.
var ErrFull = errors.New("queue: full")

// Memory is an in-process queue for single-instance deployments and tests.
type Memory struct {
	ch   chan uuid.UUID
	poll time.Duration
}

// NewMemory creates a queue holding up to size ids. Dequeue waits at most
// poll for an id; a zero poll waits until ctx is done.
func NewMemory(size int, poll time.Duration) *Memory {
	if size < 1 {
		size = 1
	}
	return &Memory{ch: make(chan uuid.UUID, size), poll: poll}
}

func (m *Memory) Enqueue(ctx context.Context, id uuid.UUID) error {
	select {
	case m.ch <- id:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		return ErrFull
	}
}

func (m *Memory) Dequeue(ctx context.Context) (uuid.UUID, error) {
	var timeout <-chan time.Time
	if m.poll > 0 {
		t := time.NewTimer(m.poll)
		defer t.Stop()
		timeout = t.C
	}
	select {
	case id := <-m.ch:
		return id, nil
	case <-timeout:
		return uuid.Nil, ErrEmpty
	case <-ctx.Done():
		return uuid.Nil, ctx.Err()
	}
}

// Len reports how many ids are waiting.
func (m *Memory) Len() int { return len(m.ch) }
