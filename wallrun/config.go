package wallrun

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/wallrun/game"
	"github.com/oomph-ac/wallrun/oerror"
)

// Config holds the wall-running tunables. Speeds are in cm/s, distances in cm
// and the pull-away angle in degrees.
type Config struct {
	MinWallRunSpeed         float64 `yaml:"min_wall_run_speed" toml:"min_wall_run_speed"`
	MaxWallRunSpeed         float64 `yaml:"max_wall_run_speed" toml:"max_wall_run_speed"`
	MaxVerticalWallRunSpeed float64 `yaml:"max_vertical_wall_run_speed" toml:"max_vertical_wall_run_speed"`
	// WallRunPullAwayAngle is how far input may point away from the wall
	// before the character lets go.
	WallRunPullAwayAngle float64 `yaml:"wall_run_pull_away_angle" toml:"wall_run_pull_away_angle"`
	WallAttractionForce  float64 `yaml:"wall_attraction_force" toml:"wall_attraction_force"`
	// MinWallRunHeight is the clearance to the floor required to start running.
	MinWallRunHeight float64 `yaml:"min_wall_run_height" toml:"min_wall_run_height"`
	WallJumpForce    float64 `yaml:"wall_jump_force" toml:"wall_jump_force"`

	// GravityScaleCurve maps the alignment of input with the direction of
	// travel to the fraction of gravity applied. An empty curve disables
	// gravity while wall running.
	GravityScaleCurve game.Curve `yaml:"gravity_scale_curve" toml:"gravity_scale_curve"`
}

// DefaultConfig returns the stock tuning. Its gravity curve is empty.
func DefaultConfig() Config {
	return Config{
		MinWallRunSpeed:         200,
		MaxWallRunSpeed:         800,
		MaxVerticalWallRunSpeed: 200,
		WallRunPullAwayAngle:    75,
		WallAttractionForce:     200,
		MinWallRunHeight:        200,
		WallJumpForce:           300,
	}
}

// Validate returns an error describing the first invalid field.
func (c Config) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"min_wall_run_speed", c.MinWallRunSpeed},
		{"max_wall_run_speed", c.MaxWallRunSpeed},
		{"max_vertical_wall_run_speed", c.MaxVerticalWallRunSpeed},
		{"wall_attraction_force", c.WallAttractionForce},
		{"min_wall_run_height", c.MinWallRunHeight},
		{"wall_jump_force", c.WallJumpForce},
	}
	for _, f := range fields {
		if f.value < 0 || math.IsNaN(f.value) {
			return fmt.Errorf("%w: %s must be non-negative, got %v", oerror.ErrInvalidConfig, f.name, f.value)
		}
	}
	if c.MaxWallRunSpeed < c.MinWallRunSpeed {
		return fmt.Errorf("%w: max_wall_run_speed %v is below min_wall_run_speed %v", oerror.ErrInvalidConfig, c.MaxWallRunSpeed, c.MinWallRunSpeed)
	}
	if c.WallRunPullAwayAngle < 0 || c.WallRunPullAwayAngle > 90 {
		return fmt.Errorf("%w: wall_run_pull_away_angle must be within [0, 90], got %v", oerror.ErrInvalidConfig, c.WallRunPullAwayAngle)
	}
	if err := c.GravityScaleCurve.Validate(); err != nil {
		return fmt.Errorf("%w: gravity_scale_curve: %w", oerror.ErrInvalidConfig, err)
	}
	for i, key := range c.GravityScaleCurve {
		if key.Time < -1 || key.Time > 1 || key.Value < 0 || key.Value > 1 {
			return fmt.Errorf("%w: gravity_scale_curve key %d (%v, %v) must lie within [-1, 1] x [0, 1]", oerror.ErrInvalidConfig, i, key.Time, key.Value)
		}
	}
	return nil
}

// SinPullAwayAngle returns the sine of the pull-away angle. Input whose
// direction has a larger component along the wall normal pulls away.
func (c Config) SinPullAwayAngle() float64 {
	return math.Sin(mgl64.DegToRad(c.WallRunPullAwayAngle))
}

// GravityScale returns the fraction of gravity applied for the given vertical
// velocity and input alignment. Rising characters are not pulled down.
func (c Config) GravityScale(verticalVel, tangentAlignment float64) float64 {
	if c.GravityScaleCurve.Empty() || verticalVel > 0 {
		return 0
	}
	return game.ClampFloat(c.GravityScaleCurve.Sample(tangentAlignment), 0, 1)
}

// GravityDelta returns the change in vertical velocity over dt.
func (c Config) GravityDelta(gravity, verticalVel, tangentAlignment, dt float64) float64 {
	return gravity * c.GravityScale(verticalVel, tangentAlignment) * dt
}
