package game

// Distances are in centimetres, velocities in cm/s and angles in degrees.
const (
	// MinTickTime is the smallest slice of time any integrator will simulate.
	MinTickTime = 1e-6

	DefaultGravity                 = -980.0
	DefaultMaxSimulationIterations = 8
	DefaultMaxSimulationTimeStep   = 0.05

	DefaultCapsuleRadius     = 42.0
	DefaultCapsuleHalfHeight = 96.0

	DefaultMaxWalkSpeed               = 500.0
	DefaultMaxAcceleration            = 2048.0
	DefaultJumpVelocity               = 700.0
	DefaultAirControl                 = 0.35
	DefaultGroundFriction             = 8.0
	DefaultBrakingDecelerationWalking = 2048.0
	DefaultBrakingDecelerationFalling = 0.0
	DefaultBrakingFrictionFactor      = 2.0
	DefaultRotationRate               = 500.0

	// FloorProbeDistance is how far below the character a floor may be and
	// still count as being stood on.
	FloorProbeDistance = 2.4

	BrakeToStopVelocity = 10.0
	BrakingSubStepTime  = 1.0 / 33.0

	// SmallNumber is the tolerance used for "nearly zero" vector checks.
	SmallNumber = 1e-4
)
