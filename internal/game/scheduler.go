package game

import (
	"sync"
	"time"
)

// scheduler owns the deferred one-shot tasks the engine arms, at most one per
// game. Cancellation is best effort; a task that fires after the game moved
// on observes the status check in AdvanceQuestion and becomes a no-op.
type scheduler struct {
	mu     sync.Mutex
	timers map[string]*time.Timer
}

func newScheduler() *scheduler {
	return &scheduler{timers: make(map[string]*time.Timer)}
}

// schedule arms fn to run after d, replacing any task already pending for
// the same game.
func (s *scheduler) schedule(gameID string, d time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.timers[gameID]; ok {
		t.Stop()
	}
	s.timers[gameID] = time.AfterFunc(d, func() {
		s.cancel(gameID)
		fn()
	})
}

func (s *scheduler) cancel(gameID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.timers[gameID]; ok {
		t.Stop()
		delete(s.timers, gameID)
	}
}

func (s *scheduler) stopAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, t := range s.timers {
		t.Stop()
		delete(s.timers, id)
	}
}
