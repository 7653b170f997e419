package autosave

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not reached in time")
}

func TestNotify_CollapsesBurstIntoOneSave(t *testing.T) {
	var saves atomic.Int32
	s := New(30*time.Millisecond, func(ctx context.Context) error {
		saves.Add(1)
		return nil
	})
	defer s.Close(context.Background())

	for range 10 {
		s.Notify()
		time.Sleep(2 * time.Millisecond)
	}

	waitFor(t, func() bool { return s.State() == StateIdle })
	if got := saves.Load(); got != 1 {
		t.Errorf("saves = %d, want 1", got)
	}
}

func TestNotify_DuringSaveReschedules(t *testing.T) {
	var saves atomic.Int32
	block := make(chan struct{})
	s := New(10*time.Millisecond, func(ctx context.Context) error {
		if saves.Add(1) == 1 {
			<-block
		}
		return nil
	})
	defer s.Close(context.Background())

	s.Notify()
	waitFor(t, func() bool { return s.State() == StateSaving })

	s.Notify()
	if got := s.State(); got != StateDirty {
		t.Fatalf("state during save = %v, want StateDirty", got)
	}
	close(block)

	waitFor(t, func() bool { return saves.Load() == 2 && s.State() == StateIdle })
}

func TestFlush(t *testing.T) {
	var saves atomic.Int32
	s := New(time.Hour, func(ctx context.Context) error {
		saves.Add(1)
		return nil
	})

	// nothing pending
	if err := s.Flush(context.Background()); err != nil {
		t.Fatalf("Flush error: %v", err)
	}
	if saves.Load() != 0 {
		t.Fatal("idle flush ran the save function")
	}

	s.Notify()
	if err := s.Flush(context.Background()); err != nil {
		t.Fatalf("Flush error: %v", err)
	}
	if saves.Load() != 1 || s.State() != StateIdle {
		t.Errorf("saves = %d state = %v", saves.Load(), s.State())
	}
}

func TestFlush_FailureKeepsBatchPending(t *testing.T) {
	fail := errors.New("disk full")
	var saves atomic.Int32
	s := New(time.Hour, func(ctx context.Context) error {
		if saves.Add(1) == 1 {
			return fail
		}
		return nil
	})

	s.Notify()
	if err := s.Flush(context.Background()); !errors.Is(err, fail) {
		t.Fatalf("expected save error, got %v", err)
	}
	if s.State() != StateScheduled {
		t.Fatalf("failed flush lost the batch, state = %v", s.State())
	}

	if err := s.Flush(context.Background()); err != nil {
		t.Fatalf("retry error: %v", err)
	}
	if s.State() != StateIdle {
		t.Errorf("state = %v, want StateIdle", s.State())
	}
}

func TestFlush_AwaitsRunningSaveThenPersistsNewEdits(t *testing.T) {
	block := make(chan struct{})
	var saves atomic.Int32
	s := New(10*time.Millisecond, func(ctx context.Context) error {
		if saves.Add(1) == 1 {
			<-block
		}
		return nil
	})
	defer s.Close(context.Background())

	s.Notify()
	waitFor(t, func() bool { return s.State() == StateSaving })
	s.Notify() // edits while the save is running

	go close(block)

	if err := s.Flush(context.Background()); err != nil {
		t.Fatalf("Flush error: %v", err)
	}
	if got := saves.Load(); got != 2 {
		t.Errorf("saves = %d, want 2", got)
	}
	if s.State() != StateIdle {
		t.Errorf("state = %v, want StateIdle", s.State())
	}
}

func TestClose_AwaitsInFlightSave(t *testing.T) {
	block := make(chan struct{})
	var saves atomic.Int32
	s := New(10*time.Millisecond, func(ctx context.Context) error {
		<-block
		saves.Add(1)
		return nil
	})

	s.Notify()
	waitFor(t, func() bool { return s.State() == StateSaving })

	go func() {
		time.Sleep(20 * time.Millisecond)
		close(block)
	}()

	if err := s.Close(context.Background()); err != nil {
		t.Fatalf("Close error: %v", err)
	}
	if saves.Load() != 1 {
		t.Error("close returned before the running save finished")
	}
}

func TestClose_FlushesAndStops(t *testing.T) {
	var saves atomic.Int32
	s := New(time.Hour, func(ctx context.Context) error {
		saves.Add(1)
		return nil
	})

	s.Notify()
	if err := s.Close(context.Background()); err != nil {
		t.Fatalf("Close error: %v", err)
	}
	if saves.Load() != 1 {
		t.Errorf("pending batch not persisted on close")
	}

	s.Notify()
	time.Sleep(20 * time.Millisecond)
	if saves.Load() != 1 {
		t.Errorf("saver still active after close")
	}
}
