// Package effects holds the decorative background animations: rising
// "quantum" particles and the pulsing neural lines.
package effects

import (
	"image/color"
	"math/rand/v2"
	"time"

	"github.com/Zachkp/neural-glass/internal/ease"
)

const (
	SpawnInterval = 1500 * time.Millisecond

	minSize     = 1.0
	sizeRange   = 4.0
	minLife     = 2 * time.Second
	lifeRange   = 3 * time.Second
	driftRange  = 200.0
	glowPalette = 3
)

// Palette is the particle color set.
var Palette = [glowPalette]color.RGBA{
	{0x00, 0xff, 0xff, 0xff},
	{0xff, 0x00, 0x80, 0xff},
	{0x80, 0x00, 0xff, 0xff},
}

// Particle rises from the bottom edge to the top over its lifetime, drifting
// sideways and fading in.
type Particle struct {
	X, StartY float64
	Size      float64
	Color     color.RGBA
	Drift     float64
	Life      time.Duration
	Age       time.Duration
	Rise      float64
}

// Progress is the eased completion of the particle's flight.
func (p *Particle) Progress() float64 {
	if p.Life <= 0 {
		return 1
	}
	return ease.OutCubic(float64(p.Age) / float64(p.Life))
}

// Position returns the particle's current center.
func (p *Particle) Position() (x, y float64) {
	e := p.Progress()
	return p.X + p.Drift*e, p.StartY - p.Rise*e
}

// Opacity fades from 0 at spawn to 1 at the end of the flight.
func (p *Particle) Opacity() float64 {
	return p.Progress()
}

func (p *Particle) Done() bool {
	return p.Age >= p.Life
}

// Field spawns and ages particles inside a viewport.
type Field struct {
	Width, Height float64

	rng       *rand.Rand
	particles []Particle
	sinceLast time.Duration
}

func NewField(width, height float64, rng *rand.Rand) *Field {
	if rng == nil {
		rng = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x9e3779b97f4a7c15))
	}
	return &Field{Width: width, Height: height, rng: rng}
}

// Resize changes the viewport; live particles keep their paths.
func (f *Field) Resize(width, height float64) {
	f.Width, f.Height = width, height
}

func (f *Field) Particles() []Particle { return f.particles }

// Spawn adds one particle at a random horizontal position on the bottom edge.
func (f *Field) Spawn() Particle {
	p := Particle{
		X:      f.rng.Float64() * f.Width,
		StartY: f.Height,
		Size:   f.rng.Float64()*sizeRange + minSize,
		Color:  Palette[f.rng.IntN(glowPalette)],
		Drift:  (f.rng.Float64() - 0.5) * driftRange,
		Life:   minLife + time.Duration(f.rng.Float64()*float64(lifeRange)),
		Rise:   f.Height,
	}
	f.particles = append(f.particles, p)
	return p
}

// Advance ages every particle by dt, drops finished ones and spawns new
// ones on the spawn interval.
func (f *Field) Advance(dt time.Duration) {
	live := f.particles[:0]
	for _, p := range f.particles {
		p.Age += dt
		if !p.Done() {
			live = append(live, p)
		}
	}
	f.particles = live

	f.sinceLast += dt
	for f.sinceLast >= SpawnInterval {
		f.sinceLast -= SpawnInterval
		f.Spawn()
	}
}
