/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package trivia

import (
	"sync"
	"time"
)

// Scheduler runs delayed tasks keyed by id. Scheduling a key replaces any
// pending task for the same key.
type Scheduler interface {
	Schedule(key string, after time.Duration, task func())
	Cancel(key string)
}

type pending struct {
	timer *time.Timer
}

// loopScheduler fires tasks by posting them back onto the hub loop, so every
// task runs on the same goroutine as inbound events.
type loopScheduler struct {
	mu    sync.Mutex
	tasks map[string]*pending
	post  func(func())
}

func newLoopScheduler(post func(func())) *loopScheduler {
	return &loopScheduler{
		tasks: make(map[string]*pending),
		post:  post,
	}
}

func (s *loopScheduler) Schedule(key string, after time.Duration, task func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if prev, ok := s.tasks[key]; ok {
		prev.timer.Stop()
	}

	entry := &pending{}
	entry.timer = time.AfterFunc(after, func() {
		s.post(func() {
			// A replaced or cancelled entry may still fire once; only the
			// current entry for the key runs.
			s.mu.Lock()
			current := s.tasks[key] == entry
			if current {
				delete(s.tasks, key)
			}
			s.mu.Unlock()

			if current {
				task()
			}
		})
	})

	s.tasks[key] = entry
}

func (s *loopScheduler) Cancel(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if prev, ok := s.tasks[key]; ok {
		prev.timer.Stop()
		delete(s.tasks, key)
	}
}

// stop cancels every pending task.
func (s *loopScheduler) stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, p := range s.tasks {
		p.timer.Stop()
		delete(s.tasks, key)
	}
}

func (s *loopScheduler) pendingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.tasks)
}
