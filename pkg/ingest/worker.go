package ingest

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/phuslu/log"
	"golang.org/x/sync/errgroup"

	"github.com/artem13815/hr/ingest/pkg/queue"
)

// Queue hands document ids to workers. Dequeue blocks until an id arrives,
// the poll window ends (queue.ErrEmpty) or ctx is done.
type Queue interface {
	Enqueue(ctx context.Context, id uuid.UUID) error
	Dequeue(ctx context.Context) (uuid.UUID, error)
}

// Runner processes one document.
type Runner interface {
	Run(ctx context.Context, id uuid.UUID) error
}

// RunnerFunc adapts a function to Runner.
type RunnerFunc func(ctx context.Context, id uuid.UUID) error

func (f RunnerFunc) Run(ctx context.Context, id uuid.UUID) error { return f(ctx, id) }

// AsRunner drops the outcome of a job; the job records it in the status store.
func (j *Job) AsRunner() Runner {
	return RunnerFunc(func(ctx context.Context, id uuid.UUID) error {
		j.Run(ctx, id)
		return nil
	})
}

// Pool runs a fixed number of workers, each pulling ids from the queue one at
// a time. Each id is delivered to exactly one worker.
type Pool struct {
	queue   Queue
	runner  Runner
	workers int
	backoff time.Duration
	log     *log.Logger
}

func NewPool(q Queue, r Runner, workers int, logger *log.Logger) *Pool {
	if workers < 1 {
		workers = 1
	}
	return &Pool{queue: q, runner: r, workers: workers, backoff: time.Second, log: logger}
}

// Run blocks until ctx is cancelled. A job in flight when that happens is
// allowed to finish.
func (p *Pool) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < p.workers; i++ {
		worker := i
		g.Go(func() error {
			p.loop(ctx, worker)
			return nil
		})
	}
	p.log.Info().Int("workers", p.workers).Msg("ingest.pool.started")
	err := g.Wait()
	p.log.Info().Msg("ingest.pool.stopped")
	return err
}

func (p *Pool) loop(ctx context.Context, worker int) {
	for ctx.Err() == nil {
		id, err := p.queue.Dequeue(ctx)
		switch {
		case err == nil:
		case errors.Is(err, queue.ErrEmpty):
			continue
		case ctx.Err() != nil:
			return
		default:
			p.log.Error().Int("worker", worker).Err(err).Msg("ingest.queue.dequeue_failed")
			select {
			case <-ctx.Done():
				return
			case <-time.After(p.backoff):
			}
			continue
		}

		if err := p.runner.Run(ctx, id); err != nil {
			p.log.Error().Int("worker", worker).Str("resume_id", id.String()).Err(err).Msg("ingest.job.error")
		}
	}
}
