package dotgrid

import (
	"math"

	"github.com/Zachkp/neural-glass/internal/ease"
)

// Phase is the state of a dot's inertia displacement.
type Phase int

const (
	Resting Phase = iota
	Displacing
	Returning
)

func (p Phase) String() string {
	switch p {
	case Resting:
		return "resting"
	case Displacing:
		return "displacing"
	case Returning:
		return "returning"
	default:
		return "unknown"
	}
}

// Physics parameterises Motion. Speeds are in px/s, Resistance in px/s²,
// ReturnDuration in seconds.
type Physics struct {
	MaxSpeed       float64
	Resistance     float64
	ReturnDuration float64
	ReturnEase     ease.Func
}

func physicsFor(c Config) Physics {
	return Physics{
		MaxSpeed:       c.MaxSpeed,
		Resistance:     c.Resistance,
		ReturnDuration: c.ReturnDuration,
		ReturnEase:     ease.ElasticOut(1, 0.75),
	}
}

// Motion is one dot's displacement offset and the animation that owns it.
// A dot that is not Resting ignores new pushes.
type Motion struct {
	X, Y float64

	phase  Phase
	vx, vy float64

	fromX, fromY float64
	elapsed      float64
}

func (m *Motion) Phase() Phase { return m.phase }

// Active reports whether an animation currently owns the offset.
func (m *Motion) Active() bool { return m.phase != Resting }

// Start launches the offset with initial velocity (pushX, pushY), clamped to
// MaxSpeed. With zero Resistance nothing slows the offset, so the next
// Advance moves it by the whole push at once and starts the return. It
// returns false and changes nothing while a previous push is still
// animating.
func (m *Motion) Start(pushX, pushY float64, p Physics) bool {
	if m.Active() {
		return false
	}
	if speed := math.Hypot(pushX, pushY); p.MaxSpeed > 0 && speed > p.MaxSpeed {
		s := p.MaxSpeed / speed
		pushX *= s
		pushY *= s
	}
	m.phase = Displacing
	m.vx, m.vy = pushX, pushY
	m.elapsed = 0
	return true
}

// Advance steps the animation by dt seconds.
func (m *Motion) Advance(dt float64, p Physics) {
	if dt <= 0 {
		return
	}
	if m.phase == Displacing {
		dt = m.displace(dt, p)
	}
	if m.phase == Returning && dt > 0 {
		m.ret(dt, p)
	}
}

// displace decelerates the offset and returns the part of dt left over once
// the motion comes to a stop.
func (m *Motion) displace(dt float64, p Physics) float64 {
	speed := math.Hypot(m.vx, m.vy)
	if speed == 0 {
		m.beginReturn()
		return dt
	}
	if p.Resistance <= 0 {
		// nothing arrests the motion, so it lands on the push target at once
		m.X += m.vx
		m.Y += m.vy
		m.beginReturn()
		return dt
	}

	ux, uy := m.vx/speed, m.vy/speed
	stop := speed / p.Resistance
	if dt >= stop {
		d := speed * stop / 2
		m.X += ux * d
		m.Y += uy * d
		m.beginReturn()
		return dt - stop
	}

	next := speed - p.Resistance*dt
	d := (speed + next) / 2 * dt
	m.X += ux * d
	m.Y += uy * d
	m.vx, m.vy = ux*next, uy*next
	return 0
}

func (m *Motion) beginReturn() {
	m.phase = Returning
	m.vx, m.vy = 0, 0
	m.fromX, m.fromY = m.X, m.Y
	m.elapsed = 0
}

func (m *Motion) ret(dt float64, p Physics) {
	m.elapsed += dt
	progress := 1.0
	if p.ReturnDuration > 0 {
		progress = m.elapsed / p.ReturnDuration
	}
	if progress >= 1 {
		m.X, m.Y = 0, 0
		m.phase = Resting
		m.elapsed = 0
		return
	}
	e := progress
	if p.ReturnEase != nil {
		e = p.ReturnEase(progress)
	}
	m.X = m.fromX * (1 - e)
	m.Y = m.fromY * (1 - e)
}
