package task

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Func is the body of a task. It should return promptly once ctx is
// cancelled.
type Func func(ctx context.Context, t *Task) error

// Runner executes tasks on their own goroutines and tracks them in a
// Store.
type Runner struct {
	tasks *Store
	log   *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewRunner creates a runner whose finished tasks are kept for ttl.
func NewRunner(ttl time.Duration, log *slog.Logger) *Runner {
	ctx, cancel := context.WithCancel(context.Background())
	return &Runner{
		tasks:  NewStore(ttl),
		log:    log,
		ctx:    ctx,
		cancel: cancel,
	}
}

// Start launches periodic store cleanup until ctx ends or Stop is called.
func (r *Runner) Start(ctx context.Context, every time.Duration) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		ticker := time.NewTicker(every)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-r.ctx.Done():
				return
			case <-ticker.C:
				r.tasks.Cleanup()
			}
		}
	}()
}

// Submit starts fn on a new goroutine. onDone, if non-nil, runs on that
// goroutine after fn returns and before the task's Done channel closes;
// it must not wait on the same task.
func (r *Runner) Submit(kind Kind, fn Func, onDone func(*Task)) *Task {
	ctx, cancel := context.WithCancel(r.ctx)
	t := newTask(uuid.NewString(), kind, cancel)
	r.tasks.Put(t)

	log := r.log.With("task_id", t.ID, "kind", kind)

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		defer close(t.done)
		defer cancel()

		t.SetStatus(StatusRunning, "running")
		err := r.run(ctx, t, fn)

		switch {
		case err == nil:
			t.finish(StatusCompleted, nil)
			log.Debug("task completed")
		case ctx.Err() != nil && errors.Is(err, context.Canceled):
			t.finish(StatusCancelled, err)
			log.Debug("task cancelled")
		default:
			t.finish(StatusFailed, err)
			log.Warn("task failed", "error", err)
		}

		if onDone != nil {
			r.callback(log, t, onDone)
		}
	}()
	return t
}

func (r *Runner) run(ctx context.Context, t *Task, fn Func) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("task panicked: %v", p)
		}
	}()
	return fn(ctx, t)
}

func (r *Runner) callback(log *slog.Logger, t *Task, onDone func(*Task)) {
	defer func() {
		if p := recover(); p != nil {
			log.Error("task callback panicked", "panic", p)
		}
	}()
	onDone(t)
}

// Get returns a task by ID.
func (r *Runner) Get(id string) *Task {
	return r.tasks.Get(id)
}

// Active returns tasks that are still queued or running.
func (r *Runner) Active() []*Task {
	return r.tasks.Active()
}

// Stop cancels every task and waits for all goroutines to exit.
func (r *Runner) Stop() {
	r.cancel()
	r.wg.Wait()
}
