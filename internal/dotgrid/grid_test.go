package dotgrid

import (
	"image/color"
	"math"
	"testing"
	"time"
)

func mountGrid(t *testing.T, cfg Config, w, h float64) (*Grid, *recordSurface, *manualScheduler, *fakeResize) {
	t.Helper()
	g, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	s := &recordSurface{}
	sched := newManualScheduler()
	rs := &fakeResize{available: true}
	g.Mount(&fakeContainer{w: w, h: h, ratio: 1}, s, sched, rs)
	return g, s, sched, rs
}

func blackWhite() Config {
	cfg := DefaultConfig()
	cfg.BaseColor = "#000000"
	cfg.ActiveColor = "#ffffff"
	return cfg
}

func TestNew_RejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DotSize = 0
	if _, err := New(cfg); err == nil {
		t.Fatal("expected error for zero dot size")
	}
}

func TestGrid_MountBuildsLattice(t *testing.T) {
	g, err := New(DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	s := &recordSurface{}
	g.Mount(&fakeContainer{w: 300, h: 300, ratio: 2}, s, newManualScheduler(), nil)

	if l := g.Layout(); l.Cols != 6 || l.Rows != 6 {
		t.Fatalf("layout %dx%d, want 6x6", l.Cols, l.Rows)
	}
	if n := len(g.Dots()); n != 36 {
		t.Errorf("got %d dots, want 36", n)
	}
	if s.pw != 600 || s.ph != 600 || s.scale != 2 {
		t.Errorf("surface sized %dx%d@%v, want 600x600@2", s.pw, s.ph, s.scale)
	}
}

func TestGrid_EmptyContainer(t *testing.T) {
	g, s, sched, _ := mountGrid(t, DefaultConfig(), 5, 5)
	if len(g.Dots()) != 0 {
		t.Fatalf("expected no dots, got %d", len(g.Dots()))
	}
	sched.tick(0)
	if s.clears != 1 || len(s.circles) != 0 {
		t.Errorf("empty grid should clear and draw nothing, got %d clears %d circles", s.clears, len(s.circles))
	}
	if n := g.Click(2, 2); n != 0 {
		t.Errorf("click on empty grid moved %d dots", n)
	}
}

func TestGrid_RenderColors(t *testing.T) {
	g, s, _, _ := mountGrid(t, blackWhite(), 300, 300)
	g.pointer.X, g.pointer.Y = 30, 30

	g.Render(s)
	if len(s.circles) != 36 {
		t.Fatalf("rendered %d circles, want 36", len(s.circles))
	}

	white := color.RGBA{255, 255, 255, 255}
	black := color.RGBA{0, 0, 0, 255}
	for _, c := range s.circles {
		d := math.Hypot(c.x-30, c.y-30)
		switch {
		case d == 0:
			if c.c != white {
				t.Errorf("dot under pointer colored %v, want active", c.c)
			}
		case d > 150:
			if c.c != black {
				t.Errorf("dot at distance %v colored %v, want base", d, c.c)
			}
		default:
			tt := 1 - d/150
			want := uint8(math.Round(255 * tt))
			if c.c.R != want || c.c.G != want || c.c.B != want {
				t.Errorf("dot at distance %v colored %v, want channel %d", d, c.c, want)
			}
		}
		if c.r != 8 {
			t.Errorf("radius %v, want 8", c.r)
		}
	}
}

func TestGrid_RenderIsReadOnly(t *testing.T) {
	g, s, _, _ := mountGrid(t, DefaultConfig(), 300, 300)
	g.Click(150, 150)
	before := g.Dots()

	g.Render(s)
	g.Render(s)
	g.Render(nil)

	after := g.Dots()
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("dot %d changed during render: %+v -> %+v", i, before[i], after[i])
		}
	}
}

func TestGrid_PointerThrottle(t *testing.T) {
	g, _, _, _ := mountGrid(t, DefaultConfig(), 300, 300)

	if !g.PointerMove(10, 10, 0) {
		t.Fatal("first sample should be processed")
	}
	if g.PointerMove(20, 20, 30*time.Millisecond) {
		t.Fatal("sample inside throttle window should be dropped")
	}
	if p := g.Pointer(); p.X != 10 || p.Y != 10 {
		t.Errorf("dropped sample changed pointer to (%v, %v)", p.X, p.Y)
	}
	if !g.PointerMove(20, 20, 50*time.Millisecond) {
		t.Fatal("sample after throttle window should be processed")
	}
}

func TestGrid_PointerVelocity(t *testing.T) {
	g, _, _, _ := mountGrid(t, DefaultConfig(), 300, 300)

	g.PointerMove(10, 0, 0)
	// first sample: delta from origin over the nominal 16ms frame
	if p := g.Pointer(); math.Abs(p.VX-625) > 1e-9 || p.VY != 0 {
		t.Errorf("first velocity = (%v, %v), want (625, 0)", p.VX, p.VY)
	}

	g.PointerMove(20, 0, 100*time.Millisecond)
	p := g.Pointer()
	if math.Abs(p.VX-100) > 1e-9 || math.Abs(p.Speed-100) > 1e-9 {
		t.Errorf("velocity = %v speed %v, want 100", p.VX, p.Speed)
	}
}

func TestGrid_PointerSpeedClamped(t *testing.T) {
	g, _, _, _ := mountGrid(t, DefaultConfig(), 300, 300)

	g.PointerMove(0, 0, 0)
	g.PointerMove(3000, 4000, 100*time.Millisecond)

	p := g.Pointer()
	if math.Abs(p.Speed-5000) > 1e-9 {
		t.Fatalf("speed %v, want clamped to 5000", p.Speed)
	}
	if math.Abs(p.VX-3000) > 1e-9 || math.Abs(p.VY-4000) > 1e-9 {
		t.Errorf("velocity (%v, %v), want (3000, 4000)", p.VX, p.VY)
	}
	if math.Abs(math.Hypot(p.VX, p.VY)-5000) > 1e-9 {
		t.Error("clamped velocity magnitude should equal max speed")
	}
}

func TestGrid_FastPointerPushesNearbyDots(t *testing.T) {
	g, _, _, _ := mountGrid(t, DefaultConfig(), 300, 300)

	g.PointerMove(30, 30, 0) // fast: jumps from the origin in one nominal frame

	for _, d := range g.Dots() {
		near := math.Hypot(d.CX-30, d.CY-30) < 150
		if near != d.Motion.Active() {
			t.Errorf("dot (%v, %v): active %v, want %v", d.CX, d.CY, d.Motion.Active(), near)
		}
	}
}

func TestGrid_SlowPointerLeavesDots(t *testing.T) {
	g, _, _, _ := mountGrid(t, DefaultConfig(), 300, 300)

	g.PointerMove(30, 30, 0)
	g.Advance(10 * time.Second) // settle the first jump

	g.PointerMove(31, 30, time.Second) // 1 px/s
	for _, d := range g.Dots() {
		if d.Motion.Active() {
			t.Fatalf("slow pointer moved dot (%v, %v)", d.CX, d.CY)
		}
	}
}

func TestGrid_NoDoubleDisplacement(t *testing.T) {
	g, _, _, _ := mountGrid(t, DefaultConfig(), 300, 300)

	if n := g.Click(30, 30); n == 0 {
		t.Fatal("click should move nearby dots")
	}
	if n := g.Click(30, 30); n != 0 {
		t.Fatalf("second click moved %d already animating dots", n)
	}

	g.Advance(100 * time.Millisecond)
	snapshot := g.Dots()
	g.PointerMove(60, 60, 0)
	for i, d := range g.Dots() {
		if snapshot[i].Motion.Active() && d.Motion != snapshot[i].Motion {
			t.Fatalf("pointer retriggered animating dot %d", i)
		}
	}
}

func TestGrid_ClickShockwave(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Resistance = 0 // push lands on its target in one step
	g, _, _, _ := mountGrid(t, cfg, 300, 300)

	g.Click(30, 30)
	g.Advance(time.Nanosecond)

	for _, d := range g.Dots() {
		dist := math.Hypot(d.CX-30, d.CY-30)
		f := Falloff(dist, 250)
		wantX := (d.CX - 30) * 5 * f
		wantY := (d.CY - 30) * 5 * f
		if dist >= 250 {
			if d.Motion.Active() {
				t.Errorf("dot at distance %v outside shock radius moved", dist)
			}
			continue
		}
		if math.Abs(d.Motion.X-wantX) > 1e-3 || math.Abs(d.Motion.Y-wantY) > 1e-3 {
			t.Errorf("dot at distance %v offset (%v, %v), want (%v, %v)", dist, d.Motion.X, d.Motion.Y, wantX, wantY)
		}
	}
}

func TestGrid_ClickAtRadiusEdge(t *testing.T) {
	g, _, _, _ := mountGrid(t, DefaultConfig(), 300, 300)
	d := g.Dots()[0]

	// exactly one shock radius to the left of the first dot
	g.Click(d.CX-250, d.CY)
	if g.Dots()[0].Motion.Active() {
		t.Error("dot exactly at the shock radius should not move")
	}
}

func TestFalloff(t *testing.T) {
	tests := []struct {
		dist, radius, want float64
	}{
		{0, 250, 1},
		{125, 250, 0.5},
		{250, 250, 0},
		{300, 250, 0},
		{10, 0, 0},
	}
	for _, tt := range tests {
		if got := Falloff(tt.dist, tt.radius); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("Falloff(%v, %v) = %v, want %v", tt.dist, tt.radius, got, tt.want)
		}
	}
}

func TestGrid_FrameLoopAnimatesAndRenders(t *testing.T) {
	g, s, sched, _ := mountGrid(t, DefaultConfig(), 300, 300)

	g.Click(150, 150)
	sched.tick(0)
	if s.clears != 1 {
		t.Fatalf("first frame should render once, got %d clears", s.clears)
	}

	moved := false
	for i := 1; i <= 10; i++ {
		sched.tick(time.Duration(i) * 16 * time.Millisecond)
		for _, d := range g.Dots() {
			if d.Motion.X != 0 || d.Motion.Y != 0 {
				moved = true
			}
		}
	}
	if !moved {
		t.Error("frames should advance the shockwave")
	}

	sched.tick(5 * time.Second)
	sched.tick(5*time.Second + 16*time.Millisecond)
	for _, d := range g.Dots() {
		if d.Motion.Active() {
			t.Fatal("all dots should be resting after the return duration")
		}
	}
}

func TestGrid_ResizeRebuilds(t *testing.T) {
	g, err := New(DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	c := &fakeContainer{w: 300, h: 300, ratio: 1}
	rs := &fakeResize{available: true}
	g.Mount(c, &recordSurface{}, newManualScheduler(), rs)

	g.Click(150, 150)
	c.w, c.h = 100, 100
	rs.fn()

	if l := g.Layout(); l.Cols != 2 || l.Rows != 2 {
		t.Fatalf("after resize layout %dx%d, want 2x2", l.Cols, l.Rows)
	}
	for _, d := range g.Dots() {
		if d.Motion.Active() {
			t.Fatal("rebuilt dots should start at rest")
		}
	}
}

func TestGrid_Unmount(t *testing.T) {
	g, s, sched, rs := mountGrid(t, DefaultConfig(), 300, 300)

	g.Unmount()
	if len(sched.canceled) != 1 {
		t.Fatalf("expected pending frame to be canceled, got %v", sched.canceled)
	}
	if len(sched.queue) != 0 {
		t.Error("no frames should remain queued")
	}
	if !rs.stopped {
		t.Error("resize subscription should be stopped")
	}
	if g.Click(150, 150) != 0 {
		t.Error("click after unmount should be ignored")
	}
	if g.PointerMove(1, 1, time.Second) {
		t.Error("pointer move after unmount should be ignored")
	}

	sched.tick(time.Second)
	if s.clears != 0 {
		t.Error("no frame should render after unmount")
	}

	g.Unmount() // idempotent
}

func TestSelectResizeSource(t *testing.T) {
	observer := &fakeResize{available: true}
	missing := &fakeResize{available: false}
	fallback := &fakeResize{available: true}

	if got := SelectResizeSource(observer, fallback); got != observer {
		t.Error("available observer should be preferred")
	}
	if got := SelectResizeSource(missing, fallback); got != fallback {
		t.Error("unavailable observer should fall back")
	}
	if got := SelectResizeSource(nil, fallback); got != fallback {
		t.Error("nil observer should fall back")
	}
}
