package movement

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/wallrun/assert"
	"github.com/oomph-ac/wallrun/game"
)

// Advance runs one movement tick of length dt for the character and returns
// the resulting state.
func (s *Simulator) Advance(state *State, input InputState, dt float64) SimulationResult {
	if state == nil {
		return SimulationResult{}
	}
	state.LastPos, state.LastVel = state.Pos, state.Vel
	state.Jumped = false
	prev := state.Mode

	if dt < s.Options.MinTickTime {
		return s.resultFromState(state, prev, SimulationOutcomeSkipped)
	}

	s.applyInput(state, input)
	if !s.CanSimulate(state) {
		state.Accel, state.Vel = mgl64.Vec3{}, mgl64.Vec3{}
		return s.resultFromState(state, prev, SimulationOutcomeNoController)
	}

	if input.Jump && s.CanAttemptJump(state) {
		s.DoJump(state)
	}
	for _, h := range s.beforeMovement {
		h.BeforeMovement(s, state, dt)
	}
	s.StartNewPhysics(state, dt, 0)
	s.physicsRotation(state, dt)

	return s.resultFromState(state, prev, SimulationOutcomeNormal)
}

// StartNewPhysics dispatches the remaining dt of the tick to the integrator of
// the character's current mode. Integrators call it again after changing mode
// so that the rest of the tick is simulated in the new mode.
func (s *Simulator) StartNewPhysics(state *State, dt float64, iterations int) {
	if dt < s.Options.MinTickTime || iterations >= s.Options.MaxSimulationIterations {
		return
	}

	switch mode := state.Mode.(type) {
	case Walking:
		s.physWalking(state, dt, iterations)
	case Falling:
		s.physFalling(state, dt, iterations)
	case CustomMode:
		phys, ok := s.customPhys[mode.CustomID()]
		assert.IsTrue(ok, "unknown custom movement mode %d (%v)", mode.CustomID(), mode)
		phys(s, state, dt, iterations)
	default:
		assert.IsTrue(false, "unknown movement mode %T", state.Mode)
	}
}

// SimulationTimeStep returns the length of the next substep given the time
// remaining in the tick and the number of substeps already started.
func (s *Simulator) SimulationTimeStep(remaining float64, iterations int) float64 {
	if remaining > s.Options.MaxSimulationTimeStep && iterations < s.Options.MaxSimulationIterations {
		// Halve long steps so the final substeps stay close in length.
		remaining = math.Min(s.Options.MaxSimulationTimeStep, remaining*0.5)
	}
	return math.Max(s.Options.MinTickTime, remaining)
}

// CanAttemptJump reports whether a jump may start from the current mode.
func (s *Simulator) CanAttemptJump(state *State) bool {
	if state.IsWalking() {
		return true
	}
	for _, h := range s.jumpHooks {
		if h.CanAttemptJump(state) {
			return true
		}
	}
	return false
}

// DoJump applies the jump impulse, switches the character to Falling and
// lets jump hooks react to the jump.
func (s *Simulator) DoJump(state *State) {
	prev := state.Mode
	state.Vel[1] = math.Max(state.Vel[1], s.Options.JumpVelocity)
	state.Jumped = true
	s.SetMode(state, Falling{})
	for _, h := range s.jumpHooks {
		h.AfterJump(s, state, prev)
	}
}

func (s *Simulator) applyInput(state *State, input InputState) {
	move := input.MoveVector
	if l := move.Len(); l > 1 {
		move = move.Mul(1 / l)
	}
	forward, right := game.DirectionVector(input.Yaw), game.RightVector(input.Yaw)
	state.Accel = forward.Mul(move.Y()).Add(right.Mul(move.X())).Mul(s.Options.MaxAcceleration)
}

func (s *Simulator) physicsRotation(state *State, dt float64) {
	if !s.Options.OrientRotationToMovement {
		return
	}
	accel := game.Vec3Hz(state.Accel)
	if accel.LenSqr() < game.SmallNumber {
		return
	}
	state.Yaw = game.FixedTurn(state.Yaw, game.YawFromDirection(accel), s.Options.RotationRate*dt)
}
