package dotgrid

import (
	"image/color"
	"time"
)

type fakeContainer struct {
	w, h, ratio float64
}

func (c *fakeContainer) Size() (float64, float64) { return c.w, c.h }
func (c *fakeContainer) PixelRatio() float64       { return c.ratio }

type circle struct {
	x, y, r float64
	c       color.RGBA
}

type recordSurface struct {
	pw, ph  int
	scale   float64
	clears  int
	circles []circle
}

func (s *recordSurface) Resize(w, h int, scale float64) { s.pw, s.ph, s.scale = w, h, scale }
func (s *recordSurface) Clear() {
	s.clears++
	s.circles = s.circles[:0]
}
func (s *recordSurface) FillCircle(x, y, r float64, c color.RGBA) {
	s.circles = append(s.circles, circle{x, y, r, c})
}

// manualScheduler runs queued frames only when the test says so.
type manualScheduler struct {
	next     FrameID
	queue    map[FrameID]func(time.Duration)
	canceled []FrameID
}

func newManualScheduler() *manualScheduler {
	return &manualScheduler{queue: map[FrameID]func(time.Duration){}}
}

func (s *manualScheduler) RequestFrame(fn func(time.Duration)) FrameID {
	s.next++
	s.queue[s.next] = fn
	return s.next
}

func (s *manualScheduler) CancelFrame(id FrameID) {
	s.canceled = append(s.canceled, id)
	delete(s.queue, id)
}

func (s *manualScheduler) tick(now time.Duration) {
	q := s.queue
	s.queue = map[FrameID]func(time.Duration){}
	for _, fn := range q {
		fn(now)
	}
}

type fakeResize struct {
	available bool
	fn        func()
	stopped   bool
}

func (r *fakeResize) Available() bool { return r.available }
func (r *fakeResize) Observe(fn func()) func() {
	r.fn = fn
	return func() { r.stopped = true; r.fn = nil }
}
