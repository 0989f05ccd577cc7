package settings

import (
	"fmt"

	"github.com/oomph-ac/wallrun/game"
	"github.com/oomph-ac/wallrun/movement"
	"github.com/oomph-ac/wallrun/oerror"
	"github.com/oomph-ac/wallrun/wallrun"
)

// Settings contains everything an author can tune about a simulation run.
type Settings struct {
	Simulation SimulationSettings `yaml:"simulation" toml:"simulation"`
	Character  CharacterSettings  `yaml:"character" toml:"character"`
	WallRun    wallrun.Config     `yaml:"wall_run" toml:"wall_run"`
	Logging    LoggingSettings    `yaml:"logging" toml:"logging"`
	Sentry     SentrySettings     `yaml:"sentry" toml:"sentry"`
	Stats      StatsSettings      `yaml:"stats" toml:"stats"`
}

// SimulationSettings mirror movement.SimulationOptions.
type SimulationSettings struct {
	// TickRate is the number of frames per second scenarios are advanced at
	// unless they set their own.
	TickRate float64 `yaml:"tick_rate" toml:"tick_rate"`

	Gravity                 float64 `yaml:"gravity" toml:"gravity"`
	MaxSimulationIterations int     `yaml:"max_simulation_iterations" toml:"max_simulation_iterations"`
	MaxSimulationTimeStep   float64 `yaml:"max_simulation_time_step" toml:"max_simulation_time_step"`

	MaxWalkSpeed    float64 `yaml:"max_walk_speed" toml:"max_walk_speed"`
	MaxAcceleration float64 `yaml:"max_acceleration" toml:"max_acceleration"`
	JumpVelocity    float64 `yaml:"jump_velocity" toml:"jump_velocity"`
	AirControl      float64 `yaml:"air_control" toml:"air_control"`
	GroundFriction  float64 `yaml:"ground_friction" toml:"ground_friction"`

	BrakingDecelerationWalking float64 `yaml:"braking_deceleration_walking" toml:"braking_deceleration_walking"`
	BrakingDecelerationFalling float64 `yaml:"braking_deceleration_falling" toml:"braking_deceleration_falling"`
	BrakingFrictionFactor      float64 `yaml:"braking_friction_factor" toml:"braking_friction_factor"`

	OrientRotationToMovement bool    `yaml:"orient_rotation_to_movement" toml:"orient_rotation_to_movement"`
	RotationRate             float64 `yaml:"rotation_rate" toml:"rotation_rate"`

	RunPhysicsWithNoController bool `yaml:"run_physics_with_no_controller" toml:"run_physics_with_no_controller"`
}

// Options converts the settings into simulator options. Debugf is left unset.
func (s SimulationSettings) Options() movement.SimulationOptions {
	return movement.SimulationOptions{
		Gravity:                    s.Gravity,
		MaxSimulationIterations:    s.MaxSimulationIterations,
		MaxSimulationTimeStep:      s.MaxSimulationTimeStep,
		MinTickTime:                game.MinTickTime,
		MaxWalkSpeed:               s.MaxWalkSpeed,
		MaxAcceleration:            s.MaxAcceleration,
		JumpVelocity:               s.JumpVelocity,
		AirControl:                 s.AirControl,
		GroundFriction:             s.GroundFriction,
		BrakingDecelerationWalking: s.BrakingDecelerationWalking,
		BrakingDecelerationFalling: s.BrakingDecelerationFalling,
		BrakingFrictionFactor:      s.BrakingFrictionFactor,
		OrientRotationToMovement:   s.OrientRotationToMovement,
		RotationRate:               s.RotationRate,
		RunPhysicsWithNoController: s.RunPhysicsWithNoController,
	}
}

// TickDuration returns the length of a frame in seconds.
func (s SimulationSettings) TickDuration() float64 {
	return 1 / s.TickRate
}

type CharacterSettings struct {
	CapsuleRadius     float64 `yaml:"capsule_radius" toml:"capsule_radius"`
	CapsuleHalfHeight float64 `yaml:"capsule_half_height" toml:"capsule_half_height"`
}

func (c CharacterSettings) Capsule() movement.Capsule {
	return movement.Capsule{Radius: c.CapsuleRadius, HalfHeight: c.CapsuleHalfHeight}
}

type LoggingSettings struct {
	Level string `yaml:"level" toml:"level"`
	// File enables a rotating log file at the given path when non-empty.
	File       string `yaml:"file" toml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb" toml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups" toml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days" toml:"max_age_days"`
	Compress   bool   `yaml:"compress" toml:"compress"`
}

// SentrySettings enable crash reporting when DSN is set.
type SentrySettings struct {
	DSN         string `yaml:"dsn" toml:"dsn"`
	Environment string `yaml:"environment" toml:"environment"`
}

// StatsSettings enable the runtime stats viewer when Addr is set.
type StatsSettings struct {
	Addr string `yaml:"addr" toml:"addr"`
}

// DefaultGravityScaleCurve pulls harder when input brakes against the
// direction of travel and barely at all when pushing along it.
func DefaultGravityScaleCurve() game.Curve {
	return game.Curve{
		{Time: -1, Value: 1},
		{Time: 0, Value: 0.6},
		{Time: 1, Value: 0.15},
	}
}

// Default returns the default settings.
func Default() *Settings {
	opts := movement.DefaultSimulationOptions()
	wallRun := wallrun.DefaultConfig()
	wallRun.GravityScaleCurve = DefaultGravityScaleCurve()

	return &Settings{
		Simulation: SimulationSettings{
			TickRate:                   60,
			Gravity:                    opts.Gravity,
			MaxSimulationIterations:    opts.MaxSimulationIterations,
			MaxSimulationTimeStep:      opts.MaxSimulationTimeStep,
			MaxWalkSpeed:               opts.MaxWalkSpeed,
			MaxAcceleration:            opts.MaxAcceleration,
			JumpVelocity:               opts.JumpVelocity,
			AirControl:                 opts.AirControl,
			GroundFriction:             opts.GroundFriction,
			BrakingDecelerationWalking: opts.BrakingDecelerationWalking,
			BrakingDecelerationFalling: opts.BrakingDecelerationFalling,
			BrakingFrictionFactor:      opts.BrakingFrictionFactor,
			OrientRotationToMovement:   opts.OrientRotationToMovement,
			RotationRate:               opts.RotationRate,
		},
		Character: CharacterSettings{
			CapsuleRadius:     game.DefaultCapsuleRadius,
			CapsuleHalfHeight: game.DefaultCapsuleHalfHeight,
		},
		WallRun: wallRun,
		Logging: LoggingSettings{
			Level:      "info",
			MaxSizeMB:  50,
			MaxBackups: 3,
			MaxAgeDays: 7,
			Compress:   true,
		},
		Sentry: SentrySettings{Environment: "development"},
	}
}

// Validate returns an error wrapping oerror.ErrInvalidConfig for the first
// invalid setting.
func (s *Settings) Validate() error {
	sim := s.Simulation
	switch {
	case sim.TickRate <= 0:
		return invalid("simulation.tick_rate must be positive, got %v", sim.TickRate)
	case sim.MaxSimulationIterations < 1:
		return invalid("simulation.max_simulation_iterations must be at least 1, got %v", sim.MaxSimulationIterations)
	case sim.MaxSimulationTimeStep <= 0:
		return invalid("simulation.max_simulation_time_step must be positive, got %v", sim.MaxSimulationTimeStep)
	case sim.MaxWalkSpeed < 0, sim.MaxAcceleration < 0, sim.JumpVelocity < 0:
		return invalid("simulation speeds must be non-negative")
	case sim.AirControl < 0, sim.GroundFriction < 0, sim.BrakingFrictionFactor < 0:
		return invalid("simulation friction and air control must be non-negative")
	case sim.BrakingDecelerationWalking < 0, sim.BrakingDecelerationFalling < 0:
		return invalid("simulation braking decelerations must be non-negative")
	case sim.RotationRate < 0:
		return invalid("simulation.rotation_rate must be non-negative, got %v", sim.RotationRate)
	}

	if c := s.Character; c.CapsuleRadius <= 0 || c.CapsuleHalfHeight < c.CapsuleRadius {
		return invalid("character capsule %vx%v must have a positive radius no larger than its half height", c.CapsuleRadius, c.CapsuleHalfHeight)
	}

	switch s.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return invalid("logging.level %q is not one of debug, info, warn, error", s.Logging.Level)
	}

	return s.WallRun.Validate()
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", oerror.ErrInvalidConfig, fmt.Sprintf(format, args...))
}
