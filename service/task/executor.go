package task

import (
	"context"
	"sync"
	"time"

	"github.com/beldeveloper/go-errors-context"
	"github.com/beldeveloper/repo-keeper/model"
	"github.com/rs/zerolog/log"
)

// PollDelay defines the pause of an idle worker between queue polls.
const PollDelay = time.Second

// Runner executes one task kind.
type Runner func(ctx context.Context, t model.Task) error

// Runners maps the task kinds to their runners.
type Runners map[string]Runner

// NewExecutor creates a new instance of the task executor.
func NewExecutor(queue Service, runners Runners, cfg model.Config) Executor {
	return Executor{queue: queue, runners: runners, workers: cfg.Workers}
}

// Executor runs the queued tasks on a fixed-size worker pool and applies the
// retry policy according to the error class.
type Executor struct {
	queue   Service
	runners Runners
	workers int
}

// Run starts the worker pool and blocks until the context is canceled.
func (e Executor) Run(ctx context.Context) {
	var wg sync.WaitGroup
	for i := 0; i < e.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			e.worker(ctx)
		}()
	}
	wg.Wait()
}

func (e Executor) worker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}
		t, err := e.queue.Claim(ctx, time.Now())
		if err != nil {
			if !errors.Is(err, model.ErrNotFound) {
				log.Error().Err(err).Msg("claim task")
			}
			select {
			case <-ctx.Done():
				return
			case <-time.After(PollDelay):
			}
			continue
		}
		e.Handle(ctx, t)
	}
}

// Handle runs one claimed task and settles its terminal or retry state.
func (e Executor) Handle(ctx context.Context, t model.Task) {
	runner, ok := e.runners[t.Kind]
	var err error
	if !ok {
		err = errors.WrapContext(model.ErrUnknownTaskKind, errors.Context{
			Path:   "service.task.Executor.Handle",
			Params: errors.Params{"task": t.ID, "kind": t.Kind},
		})
	} else {
		err = runner(ctx, t)
	}
	switch Classify(err) {
	case ClassNone:
		e.settle(ctx, t)
	case ClassTransient:
		t.Attempts++
		t.RunAfter = time.Now().Add(Backoff(t.Attempts))
		log.Info().
			Uint64("task", t.ID).
			Str("kind", t.Kind).
			Int("attempts", t.Attempts).
			Time("runAfter", t.RunAfter).
			Msg("transient failure, task rescheduled")
		reqErr := e.queue.Requeue(ctx, t)
		if reqErr != nil {
			log.Error().Err(reqErr).Uint64("task", t.ID).Msg("requeue task")
		}
	case ClassDomain:
		// Already persisted as a component alert; the task is done.
		log.Info().Err(err).Uint64("task", t.ID).Str("kind", t.Kind).Msg("domain failure recorded as alert")
		e.settle(ctx, t)
	case ClassNotFound:
		// The target was deleted between enqueue and run.
		e.settle(ctx, t)
	case ClassFatal:
		log.Error().
			Err(err).
			Uint64("task", t.ID).
			Str("kind", t.Kind).
			Uint64("component", t.ComponentID).
			Interface("args", t.Args).
			Msg("task failed")
		failErr := e.queue.Fail(ctx, t)
		if failErr != nil {
			log.Error().Err(failErr).Uint64("task", t.ID).Msg("mark task failed")
		}
	}
}

func (e Executor) settle(ctx context.Context, t model.Task) {
	err := e.queue.Delete(ctx, t.ID)
	if err != nil {
		log.Error().Err(err).Uint64("task", t.ID).Msg("delete finished task")
	}
}
