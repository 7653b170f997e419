// Package autosave debounces editor persistence: edits mark the buffer
// dirty, a quiet period schedules one save, and closing flushes whatever is
// still pending. Each batch of edits results in exactly one persist.
package autosave

import (
	"context"
	"sync"
	"time"
)

type State int

const (
	// StateIdle means the buffer matches what was last persisted.
	StateIdle State = iota
	// StateDirty means edits arrived while a save was already running;
	// another save follows when it finishes.
	StateDirty
	// StateScheduled means a save fires after the quiet period.
	StateScheduled
	// StateSaving means the save function is running.
	StateSaving
)

// DefaultDelay is the quiet period before a scheduled save fires.
const DefaultDelay = 3 * time.Second

// Saver debounces calls to a save function. Notify marks the buffer dirty
// and (re)starts the quiet period; Flush persists immediately.
type Saver struct {
	mu       sync.Mutex
	delay    time.Duration
	save     func(ctx context.Context) error
	timer    *time.Timer
	state    State
	saveDone chan struct{}
	closed   bool
}

func New(delay time.Duration, save func(ctx context.Context) error) *Saver {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Saver{delay: delay, save: save}
}

func (s *Saver) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Notify records an edit. It restarts the quiet period, so a stream of edits
// collapses into one save after the stream goes quiet.
func (s *Saver) Notify() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	if s.state == StateSaving {
		s.state = StateDirty
		return
	}
	s.state = StateScheduled
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.delay, func() {
		s.fire(context.Background())
	})
}

func (s *Saver) fire(ctx context.Context) {
	s.mu.Lock()
	if s.closed || s.state != StateScheduled {
		s.mu.Unlock()
		return
	}
	s.state = StateSaving
	s.saveDone = make(chan struct{})
	s.mu.Unlock()

	err := s.save(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	defer close(s.saveDone)
	if s.state == StateDirty || err != nil {
		// new edits arrived mid-save, or the save failed: go again
		s.state = StateScheduled
		if s.timer != nil {
			s.timer.Stop()
		}
		s.timer = time.AfterFunc(s.delay, func() {
			s.fire(context.Background())
		})
		return
	}
	s.state = StateIdle
}

// Flush persists a pending batch immediately. A save already in flight is
// awaited first, so the caller never returns before the buffer reached the
// server. It is a no-op when nothing is pending.
func (s *Saver) Flush(ctx context.Context) error {
	s.mu.Lock()
	for s.state == StateSaving {
		done := s.saveDone
		s.mu.Unlock()
		select {
		case <-done:
		case <-ctx.Done():
			return ctx.Err()
		}
		s.mu.Lock()
	}
	if s.state == StateIdle || s.closed {
		s.mu.Unlock()
		return nil
	}
	if s.timer != nil {
		s.timer.Stop()
	}
	s.state = StateSaving
	s.saveDone = make(chan struct{})
	s.mu.Unlock()

	err := s.save(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	close(s.saveDone)
	if err != nil {
		s.state = StateScheduled
		return err
	}
	if s.state == StateDirty {
		// edits arrived while the flush was writing
		s.state = StateScheduled
		s.timer = time.AfterFunc(s.delay, func() {
			s.fire(context.Background())
		})
		return nil
	}
	s.state = StateIdle
	return nil
}

// Close flushes any pending batch and stops the saver for good.
func (s *Saver) Close(ctx context.Context) error {
	err := s.Flush(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	if s.timer != nil {
		s.timer.Stop()
	}
	return err
}
