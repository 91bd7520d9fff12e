package dotgrid

import (
	"math"
	"testing"
)

func testPhysics() Physics {
	return physicsFor(DefaultConfig())
}

func TestMotion_Lifecycle(t *testing.T) {
	p := testPhysics()
	var m Motion

	if !m.Start(150, 0, p) {
		t.Fatal("start on resting motion should succeed")
	}
	if m.Phase() != Displacing {
		t.Fatalf("phase %v, want displacing", m.Phase())
	}

	// 150 px/s against 750 px/s² stops after 0.2s, 15px out.
	m.Advance(0.1, p)
	if m.Phase() != Displacing {
		t.Fatalf("phase %v after 0.1s, want displacing", m.Phase())
	}
	if want := (150.0 + 75.0) / 2 * 0.1; math.Abs(m.X-want) > 1e-9 {
		t.Errorf("offset after 0.1s = %v, want %v", m.X, want)
	}

	m.Advance(0.1, p)
	if m.Phase() != Returning {
		t.Fatalf("phase %v after stop, want returning", m.Phase())
	}
	if math.Abs(m.X-15) > 1e-9 || m.Y != 0 {
		t.Errorf("peak offset = (%v, %v), want (15, 0)", m.X, m.Y)
	}

	for i := 0; i < 14; i++ {
		m.Advance(0.1, p)
	}
	if m.Phase() != Returning {
		t.Fatalf("phase %v before return duration elapsed, want returning", m.Phase())
	}

	m.Advance(0.2, p)
	if m.Phase() != Resting || m.Active() {
		t.Fatalf("phase %v after return, want resting", m.Phase())
	}
	if m.X != 0 || m.Y != 0 {
		t.Errorf("offset after return = (%v, %v), want zero", m.X, m.Y)
	}
}

func TestMotion_IgnoresPushWhileActive(t *testing.T) {
	p := testPhysics()
	var m Motion

	m.Start(100, 0, p)
	if m.Start(0, 500, p) {
		t.Fatal("second start while displacing should be rejected")
	}

	m.Advance(1, p) // stops and begins returning
	if m.Phase() != Returning {
		t.Fatalf("phase %v, want returning", m.Phase())
	}
	if m.Start(0, 500, p) {
		t.Fatal("start while returning should be rejected")
	}

	m.Advance(p.ReturnDuration, p)
	if !m.Start(0, 500, p) {
		t.Fatal("start after returning to rest should succeed")
	}
}

func TestMotion_ClampsPushToMaxSpeed(t *testing.T) {
	p := testPhysics()
	p.Resistance = 1000
	var m Motion

	m.Start(30000, 40000, p)
	// clamped to 5000 px/s -> travel 5000²/(2*1000) = 12500 along (0.6, 0.8)
	m.Advance(10, p)
	if m.Phase() == Displacing {
		t.Fatal("motion should have stopped")
	}
	var peak Motion
	peak.Start(30000, 40000, p)
	peak.Advance(5, p) // exactly the stop time at 5000 px/s
	if math.Abs(peak.X-7500) > 1e-6 || math.Abs(peak.Y-10000) > 1e-6 {
		t.Errorf("peak offset = (%v, %v), want (7500, 10000)", peak.X, peak.Y)
	}
}

func TestMotion_ZeroPushStaysPut(t *testing.T) {
	p := testPhysics()
	var m Motion

	m.Start(0, 0, p)
	for i := 0; i < 10; i++ {
		m.Advance(0.05, p)
		if m.X != 0 || m.Y != 0 {
			t.Fatalf("zero push moved the dot to (%v, %v)", m.X, m.Y)
		}
	}
}

func TestMotion_NoResistanceJumpsToTarget(t *testing.T) {
	p := testPhysics()
	p.Resistance = 0
	var m Motion

	m.Start(10, -20, p)
	m.Advance(1e-9, p)
	if m.Phase() != Returning {
		t.Fatalf("phase %v, want returning", m.Phase())
	}
	if math.Abs(m.X-10) > 1e-6 || math.Abs(m.Y+20) > 1e-6 {
		t.Errorf("offset = (%v, %v), want about (10, -20)", m.X, m.Y)
	}
}
