package movement

import (
	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/oomph-ac/wallrun/game"
)

// WorldProvider bridges the collision world used for sweeps and traces.
type WorldProvider interface {
	game.LineTracer
	NearbyBoxes(bb cube.BBox, params game.QueryParams) []cube.BBox
}

// Extension is a named bundle of movement behaviour. When registered, the
// simulator calls whichever of the hook interfaces below it implements.
type Extension interface {
	Name() string
}

// BeforeMovementHook runs after jump input is handled and before physics.
type BeforeMovementHook interface {
	BeforeMovement(sim *Simulator, state *State, dt float64)
}

// JumpHook lets an extension allow jumps outside of walking and react to them.
type JumpHook interface {
	CanAttemptJump(state *State) bool
	// AfterJump runs once the jump impulse has been applied. prev is the mode
	// the character was in before jumping.
	AfterJump(sim *Simulator, state *State, prev Mode)
}

// MaxSpeedHook overrides the maximum speed of the states it reports ok for.
type MaxSpeedHook interface {
	MaxSpeed(state *State) (speed float64, ok bool)
}

// CustomPhysFunc integrates a custom mode over dt. iterations is the number of
// substeps already consumed this tick.
type CustomPhysFunc func(sim *Simulator, state *State, dt float64, iterations int)

// ModeListener observes every mode change, in registration order.
type ModeListener func(state *State, prev, next Mode)
