package dotgrid

import (
	"sync"
	"time"
)

// TickScheduler is a Scheduler for hosts that drive their own update loop.
// Callbacks requested before a Tick run on that Tick in request order;
// callbacks requested while ticking wait for the next one.
type TickScheduler struct {
	mu      sync.Mutex
	next    FrameID
	pending []scheduled
}

type scheduled struct {
	id FrameID
	fn func(now time.Duration)
}

func (s *TickScheduler) RequestFrame(fn func(now time.Duration)) FrameID {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	s.pending = append(s.pending, scheduled{id: s.next, fn: fn})
	return s.next
}

func (s *TickScheduler) CancelFrame(id FrameID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, p := range s.pending {
		if p.id == id {
			s.pending = append(s.pending[:i], s.pending[i+1:]...)
			return
		}
	}
}

// Pending returns the number of callbacks waiting for the next Tick.
func (s *TickScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// Tick runs every callback requested so far with now and returns how many
// ran.
func (s *TickScheduler) Tick(now time.Duration) int {
	s.mu.Lock()
	due := s.pending
	s.pending = nil
	s.mu.Unlock()

	for _, p := range due {
		p.fn(now)
	}
	return len(due)
}

// SizeWatcher is a ResizeSource fed by its host. Observers run when Update
// reports a size different from the previous one.
type SizeWatcher struct {
	enabled bool

	mu        sync.Mutex
	w, h      int
	observers map[int]func()
	nextID    int
}

// NewSizeWatcher returns a watcher whose Available reports enabled.
func NewSizeWatcher(enabled bool) *SizeWatcher {
	return &SizeWatcher{enabled: enabled, observers: make(map[int]func())}
}

func (w *SizeWatcher) Available() bool { return w.enabled }

func (w *SizeWatcher) Observe(fn func()) (stop func()) {
	w.mu.Lock()
	id := w.nextID
	w.nextID++
	w.observers[id] = fn
	w.mu.Unlock()

	return func() {
		w.mu.Lock()
		delete(w.observers, id)
		w.mu.Unlock()
	}
}

// Update records the current size and notifies observers when it changed.
// It reports whether a change was seen.
func (w *SizeWatcher) Update(width, height int) bool {
	w.mu.Lock()
	if width == w.w && height == w.h {
		w.mu.Unlock()
		return false
	}
	w.w, w.h = width, height
	fns := make([]func(), 0, len(w.observers))
	for _, fn := range w.observers {
		fns = append(fns, fn)
	}
	w.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
	return true
}
