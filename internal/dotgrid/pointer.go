package dotgrid

import (
	"math"
	"time"
)

// Pointer is the tracked pointer state. Positions are container-relative.
type Pointer struct {
	X, Y   float64
	VX, VY float64
	Speed  float64

	lastX, lastY float64
	lastAt       time.Duration
	sampled      bool
}

// sample records a processed move at time at and derives the velocity from
// the previous sample, clamped to maxSpeed.
func (p *Pointer) sample(x, y float64, at time.Duration, maxSpeed float64) {
	dt := nominalFrame
	if p.sampled {
		dt = at - p.lastAt
	}

	var vx, vy float64
	if dt > 0 {
		secs := dt.Seconds()
		vx = (x - p.lastX) / secs
		vy = (y - p.lastY) / secs
	}
	speed := math.Hypot(vx, vy)
	if speed > maxSpeed {
		s := maxSpeed / speed
		vx *= s
		vy *= s
		speed = maxSpeed
	}

	p.lastAt = at
	p.lastX, p.lastY = x, y
	p.sampled = true
	p.X, p.Y = x, y
	p.VX, p.VY = vx, vy
	p.Speed = speed
}

// throttle lets through at most one call per limit, dropping the rest.
type throttle struct {
	limit time.Duration
	last  time.Duration
	seen  bool
}

func (t *throttle) allow(at time.Duration) bool {
	if t.seen && at-t.last < t.limit {
		return false
	}
	t.last = at
	t.seen = true
	return true
}
