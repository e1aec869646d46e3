package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/udisondev/frontline/internal/game/rotation"
)

// Gamemode holds the flag gamemode tunables.
type Gamemode struct {
	// Loop cadence
	TickRate           time.Duration `yaml:"tick_rate"`            // interval between ticks (default: 250ms)
	EvaluateEveryTicks int           `yaml:"evaluate_every_ticks"` // scoring pass every N ticks
	StagingTicks       int           `yaml:"staging_ticks"`        // ticks spent in staging before active

	// Capture scoring
	CaptureScale             float64 `yaml:"capture_scale"`
	RequiredCapperDifference int     `yaml:"required_capper_difference"`
	AllowPassengerCapture    bool    `yaml:"allow_passenger_capture"`

	// Rotation. MinFlags below rotation.MinRotationFlags is raised to it.
	MinFlags         int `yaml:"min_flags"`
	MaxUIFlags       int `yaml:"max_ui_flags"`
	RotationAttempts int `yaml:"rotation_attempts"`

	PerimeterSpacing float64 `yaml:"perimeter_spacing"`

	// Debug panics on runtime invariant violations instead of logging them.
	Debug bool `yaml:"debug"`
}

// DefaultGamemode returns Gamemode config with sensible defaults.
func DefaultGamemode() Gamemode {
	return Gamemode{
		TickRate:                 250 * time.Millisecond,
		EvaluateEveryTicks:       4,
		StagingTicks:             40,
		CaptureScale:             3,
		RequiredCapperDifference: 2,
		MinFlags:                 rotation.MinRotationFlags,
		MaxUIFlags:               8,
		RotationAttempts:         64,
		PerimeterSpacing:         10,
	}
}

// Validate rejects tunables the match loop cannot run with.
func (g Gamemode) Validate() error {
	switch {
	case g.TickRate <= 0:
		return fmt.Errorf("tick_rate %s must be positive", g.TickRate)
	case g.EvaluateEveryTicks <= 0:
		return fmt.Errorf("evaluate_every_ticks %d must be positive", g.EvaluateEveryTicks)
	case g.StagingTicks < 0:
		return fmt.Errorf("staging_ticks %d must not be negative", g.StagingTicks)
	case !(g.CaptureScale > 0):
		return fmt.Errorf("capture_scale %g must be positive", g.CaptureScale)
	case g.RequiredCapperDifference < 1:
		return fmt.Errorf("required_capper_difference %d must be at least 1", g.RequiredCapperDifference)
	case g.MinFlags < 0:
		return fmt.Errorf("min_flags %d must not be negative", g.MinFlags)
	case g.MaxUIFlags < max(g.MinFlags, rotation.MinRotationFlags):
		// min_flags below the floor is raised by the rotation builder
		return fmt.Errorf("max_ui_flags %d is below min_flags %d (floor %d)",
			g.MaxUIFlags, g.MinFlags, rotation.MinRotationFlags)
	case g.RotationAttempts <= 0:
		return errors.New("rotation_attempts must be positive")
	case g.PerimeterSpacing < 0:
		return fmt.Errorf("perimeter_spacing %g must not be negative", g.PerimeterSpacing)
	}
	return nil
}
