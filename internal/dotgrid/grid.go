package dotgrid

import (
	"image/color"
	"math"
	"time"
)

// Dot is one lattice point: its resting center plus the displacement
// animation that may currently offset it.
type Dot struct {
	CX, CY float64
	Motion Motion
}

// Grid owns the dots and pointer state of one mounted dot grid. It is not
// safe for concurrent use; every method is expected to run on the host's UI
// loop.
type Grid struct {
	cfg     Config
	base    color.RGBA
	active  color.RGBA
	physics Physics

	layout  Layout
	dots    []Dot
	pointer Pointer
	moves   throttle

	container  Container
	surface    Surface
	scheduler  Scheduler
	stopResize func()

	mounted   bool
	frame     FrameID
	pending   bool
	lastFrame time.Duration
	ticked    bool
}

func New(cfg Config) (*Grid, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Grid{
		cfg:     cfg,
		base:    ParseHex(cfg.BaseColor),
		active:  ParseHex(cfg.ActiveColor),
		physics: physicsFor(cfg),
		moves:   throttle{limit: cfg.MoveThrottle},
	}, nil
}

func (g *Grid) Config() Config   { return g.cfg }
func (g *Grid) Layout() Layout   { return g.layout }
func (g *Grid) Pointer() Pointer { return g.pointer }
func (g *Grid) Mounted() bool    { return g.mounted }

// Dots returns a snapshot of the dot collection.
func (g *Grid) Dots() []Dot {
	out := make([]Dot, len(g.dots))
	copy(out, g.dots)
	return out
}

// Mount builds the grid for the container, subscribes to resizes and starts
// the frame loop. Mounting an already mounted grid is a no-op.
func (g *Grid) Mount(c Container, s Surface, sched Scheduler, resize ResizeSource) {
	if g.mounted {
		return
	}
	g.container = c
	g.surface = s
	g.scheduler = sched
	g.mounted = true

	g.Rebuild()
	if resize != nil {
		g.stopResize = resize.Observe(g.Rebuild)
	}
	g.ticked = false
	g.requestFrame()
}

// Unmount stops the frame loop and the resize subscription. Pointer and click
// input is ignored afterwards.
func (g *Grid) Unmount() {
	if !g.mounted {
		return
	}
	g.mounted = false
	if g.pending && g.scheduler != nil {
		g.scheduler.CancelFrame(g.frame)
	}
	g.pending = false
	if g.stopResize != nil {
		g.stopResize()
		g.stopResize = nil
	}
}

// Rebuild recomputes the lattice from the container's current size and
// resizes the surface to match. Every dot is replaced.
func (g *Grid) Rebuild() {
	if g.container == nil {
		return
	}
	w, h := g.container.Size()
	g.Resize(w, h, g.container.PixelRatio())
}

// Resize rebuilds the lattice for an explicit size.
func (g *Grid) Resize(width, height, scale float64) {
	g.layout = BuildLayout(width, height, scale, g.cfg.DotSize, g.cfg.Gap)
	if g.surface != nil {
		g.surface.Resize(g.layout.PixelWidth, g.layout.PixelHeight, g.layout.Scale)
	}
	g.dots = make([]Dot, len(g.layout.Centers))
	for i, c := range g.layout.Centers {
		g.dots[i] = Dot{CX: c.X, CY: c.Y}
	}
}

func (g *Grid) requestFrame() {
	if g.scheduler == nil {
		return
	}
	g.frame = g.scheduler.RequestFrame(g.onFrame)
	g.pending = true
}

func (g *Grid) onFrame(now time.Duration) {
	g.pending = false
	if !g.mounted {
		return
	}
	if g.ticked {
		g.Advance(now - g.lastFrame)
	}
	g.lastFrame = now
	g.ticked = true

	g.Render(g.surface)
	g.requestFrame()
}

// Advance steps every dot's displacement animation by dt.
func (g *Grid) Advance(dt time.Duration) {
	secs := dt.Seconds()
	for i := range g.dots {
		if g.dots[i].Motion.Active() {
			g.dots[i].Motion.Advance(secs, g.physics)
		}
	}
}

// PointerMove feeds a pointer position at host time at. Samples arriving
// within the throttle window of the last processed one are dropped. It
// reports whether the sample was processed.
func (g *Grid) PointerMove(x, y float64, at time.Duration) bool {
	if !g.mounted || !g.moves.allow(at) {
		return false
	}
	p := &g.pointer
	p.sample(x, y, at, g.cfg.MaxSpeed)

	if p.Speed <= g.cfg.SpeedTrigger {
		return true
	}
	for i := range g.dots {
		d := &g.dots[i]
		if d.Motion.Active() {
			continue
		}
		if math.Hypot(d.CX-p.X, d.CY-p.Y) >= g.cfg.Proximity {
			continue
		}
		pushX := d.CX - p.X + p.VX*g.cfg.VelocityPush
		pushY := d.CY - p.Y + p.VY*g.cfg.VelocityPush
		d.Motion.Start(pushX, pushY, g.physics)
	}
	return true
}

// Click sends a shockwave out from (x, y) and returns the number of dots it
// set in motion.
func (g *Grid) Click(x, y float64) int {
	if !g.mounted {
		return 0
	}
	n := 0
	for i := range g.dots {
		d := &g.dots[i]
		if d.Motion.Active() {
			continue
		}
		dist := math.Hypot(d.CX-x, d.CY-y)
		if dist >= g.cfg.ShockRadius {
			continue
		}
		f := Falloff(dist, g.cfg.ShockRadius)
		pushX := (d.CX - x) * g.cfg.ShockStrength * f
		pushY := (d.CY - y) * g.cfg.ShockStrength * f
		if d.Motion.Start(pushX, pushY, g.physics) {
			n++
		}
	}
	return n
}

// Falloff decays linearly from 1 at the origin to 0 at radius.
func Falloff(dist, radius float64) float64 {
	if radius <= 0 {
		return 0
	}
	return math.Max(0, 1-dist/radius)
}

// ColorAt returns the fill color for a dot resting at (cx, cy) given the
// current pointer position.
func (g *Grid) ColorAt(cx, cy float64) color.RGBA {
	dx := cx - g.pointer.X
	dy := cy - g.pointer.Y
	dsq := dx*dx + dy*dy
	if dsq > g.cfg.Proximity*g.cfg.Proximity {
		return g.base
	}
	t := 1 - math.Sqrt(dsq)/g.cfg.Proximity
	return Lerp(g.base, g.active, t)
}

// Render paints the current state. It reads dots and pointer only; a nil
// surface renders nothing.
func (g *Grid) Render(s Surface) {
	if s == nil {
		return
	}
	s.Clear()
	r := g.cfg.DotSize / 2
	for _, d := range g.dots {
		s.FillCircle(d.CX+d.Motion.X, d.CY+d.Motion.Y, r, g.ColorAt(d.CX, d.CY))
	}
}
