package task

import (
	"sync"
	"time"
)

// Store is a thread-safe in-memory task registry with TTL eviction.
type Store struct {
	mu    sync.Mutex
	tasks map[string]*Task
	ttl   time.Duration
}

func NewStore(ttl time.Duration) *Store {
	return &Store{
		tasks: make(map[string]*Task),
		ttl:   ttl,
	}
}

func (s *Store) Put(t *Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks[t.ID] = t
}

func (s *Store) Get(id string) *Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tasks[id]
}

// Active returns tasks that have not reached a terminal status.
func (s *Store) Active() []*Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*Task
	for _, t := range s.tasks {
		if !t.Snapshot().Status.Terminal() {
			out = append(out, t)
		}
	}
	return out
}

// Len returns the number of tracked tasks.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

// Cleanup removes finished tasks older than the TTL. Running tasks are
// never evicted.
func (s *Store) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, t := range s.tasks {
		snap := t.Snapshot()
		if snap.Status.Terminal() && now.Sub(snap.UpdatedAt) > s.ttl {
			delete(s.tasks, id)
		}
	}
}
