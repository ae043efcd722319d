// Package scheduler owns the process-local timers for ready-checks and veto
// turns. Timers are keyed by entity id so completing or cancelling an entity
// reliably stops its own countdown and refresh tick; a timer that fires
// after its entity transitioned must be neutralized by the callback
// re-checking entity status.
package scheduler

import (
	"sync"
	"time"
)

type TimerSet struct {
	mu      sync.Mutex
	cancels map[string]func()
	stopped bool
}

func NewTimerSet() *TimerSet {
	return &TimerSet{
		cancels: make(map[string]func()),
	}
}

// Schedule arms a one-shot timer under key, replacing any timer already
// registered there. The callback runs on its own goroutine and the key is
// released before it runs.
func (s *TimerSet) Schedule(key string, d time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}

	if cancel, ok := s.cancels[key]; ok {
		cancel()
	}

	t := time.AfterFunc(d, func() {
		s.release(key)
		fn()
	})
	s.cancels[key] = func() { t.Stop() }
}

// Tick runs fn every interval under key until the key is cancelled.
func (s *TimerSet) Tick(key string, interval time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}

	if cancel, ok := s.cancels[key]; ok {
		cancel()
	}

	ticker := time.NewTicker(interval)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-ticker.C:
				fn()
			case <-done:
				ticker.Stop()
				return
			}
		}
	}()

	var once sync.Once
	s.cancels[key] = func() {
		once.Do(func() { close(done) })
	}
}

// Cancel stops and forgets the timer registered under key, if any.
func (s *TimerSet) Cancel(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cancel, ok := s.cancels[key]; ok {
		cancel()
		delete(s.cancels, key)
	}
}

// Shutdown cancels every timer and rejects further scheduling.
func (s *TimerSet) Shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopped = true
	for key, cancel := range s.cancels {
		cancel()
		delete(s.cancels, key)
	}
}

// Active reports whether a timer is registered under key.
func (s *TimerSet) Active(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.cancels[key]
	return ok
}

func (s *TimerSet) release(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.cancels, key)
}
