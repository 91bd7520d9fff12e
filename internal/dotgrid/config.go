// Package dotgrid implements the pointer-reactive dot lattice: a grid of
// dots that brighten near the pointer, get shoved aside by fast pointer
// movement or clicks, and spring back to rest.
//
// The package is host-agnostic. The host supplies a Container (size and
// pixel density), a Surface to paint on, a Scheduler that drives frames,
// and a ResizeSource; see host.go.
package dotgrid

import (
	"fmt"
	"time"
)

const (
	DefaultDotSize        = 16.0
	DefaultGap            = 32.0
	DefaultBaseColor      = "#5227FF"
	DefaultActiveColor    = "#5227FF"
	DefaultProximity      = 150.0
	DefaultSpeedTrigger   = 100.0
	DefaultShockRadius    = 250.0
	DefaultShockStrength  = 5.0
	DefaultMaxSpeed       = 5000.0
	DefaultResistance     = 750.0
	DefaultReturnDuration = 1.5
	DefaultVelocityPush   = 0.005
	DefaultMoveThrottle   = 50 * time.Millisecond

	// nominal frame interval used when the pointer has no previous sample
	nominalFrame = 16 * time.Millisecond
)

// Config holds the tunables of a grid. Distances are in logical pixels,
// speeds in pixels per second and ReturnDuration in seconds.
type Config struct {
	DotSize        float64       `yaml:"dot_size"`
	Gap            float64       `yaml:"gap"`
	BaseColor      string        `yaml:"base_color"`
	ActiveColor    string        `yaml:"active_color"`
	Proximity      float64       `yaml:"proximity"`
	SpeedTrigger   float64       `yaml:"speed_trigger"`
	ShockRadius    float64       `yaml:"shock_radius"`
	ShockStrength  float64       `yaml:"shock_strength"`
	MaxSpeed       float64       `yaml:"max_speed"`
	Resistance     float64       `yaml:"resistance"`
	ReturnDuration float64       `yaml:"return_duration"`
	VelocityPush   float64       `yaml:"velocity_push"`
	MoveThrottle   time.Duration `yaml:"move_throttle"`
}

func DefaultConfig() Config {
	return Config{
		DotSize:        DefaultDotSize,
		Gap:            DefaultGap,
		BaseColor:      DefaultBaseColor,
		ActiveColor:    DefaultActiveColor,
		Proximity:      DefaultProximity,
		SpeedTrigger:   DefaultSpeedTrigger,
		ShockRadius:    DefaultShockRadius,
		ShockStrength:  DefaultShockStrength,
		MaxSpeed:       DefaultMaxSpeed,
		Resistance:     DefaultResistance,
		ReturnDuration: DefaultReturnDuration,
		VelocityPush:   DefaultVelocityPush,
		MoveThrottle:   DefaultMoveThrottle,
	}
}

// Validate reports the first setting that would make the grid meaningless.
func (c Config) Validate() error {
	switch {
	case c.DotSize <= 0:
		return fmt.Errorf("dot size must be positive, got %v", c.DotSize)
	case c.Gap < 0:
		return fmt.Errorf("gap must not be negative, got %v", c.Gap)
	case c.Proximity <= 0:
		return fmt.Errorf("proximity must be positive, got %v", c.Proximity)
	case c.ShockRadius <= 0:
		return fmt.Errorf("shock radius must be positive, got %v", c.ShockRadius)
	case c.MaxSpeed <= 0:
		return fmt.Errorf("max speed must be positive, got %v", c.MaxSpeed)
	case c.Resistance < 0:
		return fmt.Errorf("resistance must not be negative, got %v", c.Resistance)
	case c.ReturnDuration <= 0:
		return fmt.Errorf("return duration must be positive, got %v", c.ReturnDuration)
	case c.MoveThrottle < 0:
		return fmt.Errorf("move throttle must not be negative, got %v", c.MoveThrottle)
	}
	return nil
}
