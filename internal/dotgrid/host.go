package dotgrid

import (
	"image/color"
	"time"
)

// Container reports the logical size and device pixel ratio of the area the
// grid fills.
type Container interface {
	Size() (width, height float64)
	PixelRatio() float64
}

// Surface is the 2D drawing target. Coordinates are logical pixels; the
// surface applies the scale passed to Resize.
type Surface interface {
	Resize(pixelWidth, pixelHeight int, scale float64)
	Clear()
	FillCircle(cx, cy, radius float64, c color.RGBA)
}

// FrameID identifies a pending frame request.
type FrameID uint64

// Scheduler runs callbacks once per display refresh. now is a monotonic
// timestamp supplied by the host.
type Scheduler interface {
	RequestFrame(fn func(now time.Duration)) FrameID
	CancelFrame(id FrameID)
}

// ResizeSource notifies about container size changes. Observe returns a
// function that unsubscribes.
type ResizeSource interface {
	Available() bool
	Observe(fn func()) (stop func())
}

// SelectResizeSource prefers the element-level observer and falls back to
// the window-level source when the observer is missing or unavailable.
func SelectResizeSource(observer, fallback ResizeSource) ResizeSource {
	if observer != nil && observer.Available() {
		return observer
	}
	return fallback
}
