package task

import (
	"context"
	"sync"
	"time"
)

// Status represents the state of a background task.
type Status string

const (
	StatusQueued    Status = "queued"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
	StatusCancelled Status = "cancelled"
)

// Terminal reports whether no further transitions can happen.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed || s == StatusCancelled
}

// Kind labels what a task does.
type Kind string

const (
	KindPlayback Kind = "playback"
	KindExport   Kind = "export"
)

// Task tracks the state of a single piece of background work.
type Task struct {
	mu sync.Mutex

	ID   string `json:"task_id"`
	Kind Kind   `json:"kind"`

	Status Status `json:"status"`
	Phase  string `json:"phase"`
	Output string `json:"output,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Internal: not serialized.
	err    error
	cancel context.CancelFunc
	done   chan struct{}
}

func newTask(id string, kind Kind, cancel context.CancelFunc) *Task {
	now := time.Now()
	return &Task{
		ID:        id,
		Kind:      kind,
		Status:    StatusQueued,
		Phase:     "queued",
		CreatedAt: now,
		UpdatedAt: now,
		cancel:    cancel,
		done:      make(chan struct{}),
	}
}

// SetStatus updates task status atomically.
func (t *Task) SetStatus(status Status, phase string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.Status = status
	t.Phase = phase
	t.UpdatedAt = time.Now()
}

// SetPhase records progress within the running state.
func (t *Task) SetPhase(phase string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.Phase = phase
	t.UpdatedAt = time.Now()
}

// SetOutput records the file a task produced.
func (t *Task) SetOutput(path string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.Output = path
	t.UpdatedAt = time.Now()
}

// OutputPath returns the recorded output file, if any.
func (t *Task) OutputPath() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.Output
}

// Err returns the error the task finished with.
func (t *Task) Err() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.err
}

func (t *Task) finish(status Status, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.Status = status
	t.Phase = string(status)
	t.err = err
	t.UpdatedAt = time.Now()
}

// Cancel requests cancellation. It does not wait.
func (t *Task) Cancel() {
	if t.cancel != nil {
		t.cancel()
	}
}

// Done is closed once the task and its completion callback have returned.
func (t *Task) Done() <-chan struct{} {
	return t.done
}

// Wait blocks until the task is done and returns its error.
func (t *Task) Wait() error {
	<-t.done
	return t.Err()
}

// Snapshot is a read-only, JSON-safe copy of task state.
type Snapshot struct {
	ID        string    `json:"task_id"`
	Kind      Kind      `json:"kind"`
	Status    Status    `json:"status"`
	Phase     string    `json:"phase"`
	Output    string    `json:"output,omitempty"`
	Error     string    `json:"error,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Snapshot returns a JSON-safe copy of the task state.
func (t *Task) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	s := Snapshot{
		ID:        t.ID,
		Kind:      t.Kind,
		Status:    t.Status,
		Phase:     t.Phase,
		Output:    t.Output,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
	if t.err != nil {
		s.Error = t.err.Error()
	}
	return s
}
