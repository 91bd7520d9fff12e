// Package ease holds the easing curves shared by the scroll engine and the
// grid animations. Every curve maps progress t in [0,1] to an eased value
// with f(0) = 0 and f(1) = 1.
package ease

import "math"

// Func is an easing curve.
type Func func(t float64) float64

// DefaultBackOvershoot is the gentle overshoot used by the older scroll engine.
const DefaultBackOvershoot = 1.10158

// Linear returns t unchanged.
func Linear(t float64) float64 {
	return clamp01(t)
}

// OutExpo decelerates exponentially and lands exactly on 1.
func OutExpo(t float64) float64 {
	t = clamp01(t)
	if t == 1 {
		return 1
	}
	return 1 - math.Pow(2, -10*t)
}

// OutCubic approximates the CSS "ease-out" timing function.
func OutCubic(t float64) float64 {
	t = clamp01(t)
	u := 1 - t
	return 1 - u*u*u
}

// OutBack overshoots past 1 by an amount controlled by c1 and settles back.
func OutBack(t, c1 float64) float64 {
	t = clamp01(t)
	c3 := c1 + 1
	return 1 + c3*math.Pow(t-1, 3) + c1*math.Pow(t-1, 2)
}

// ElasticOut builds a decaying-oscillation curve. Amplitudes below 1 are
// treated as 1; period is the oscillation length in progress units.
func ElasticOut(amplitude, period float64) Func {
	p1 := amplitude
	if p1 < 1 {
		p1 = 1
	}
	if period <= 0 {
		period = 0.3
	}
	if amplitude > 0 && amplitude < 1 {
		period /= amplitude
	}
	phase := period / (2 * math.Pi) * math.Asin(1/p1)
	freq := 2 * math.Pi / period

	return func(t float64) float64 {
		t = clamp01(t)
		if t == 1 {
			return 1
		}
		return p1*math.Pow(2, -10*t)*math.Sin((t-phase)*freq) + 1
	}
}

func clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}
