package movement

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/wallrun/game"
)

// CalcVelocity updates state.Vel from state.Accel over dt. With no input, or
// when already above the maximum speed, the velocity brakes using friction and
// brakingDecel. Otherwise friction turns the velocity towards the input and
// the acceleration is added, capped at the maximum speed.
func (s *Simulator) CalcVelocity(state *State, dt, friction, brakingDecel float64) {
	if dt < s.Options.MinTickTime {
		return
	}

	maxSpeed := s.MaxSpeed(state)
	zeroAccel := state.Accel == (mgl64.Vec3{})
	overMax := exceedsSpeed(state.Vel, maxSpeed)

	if zeroAccel || overMax {
		oldVel := state.Vel
		s.applyBraking(state, dt, friction, brakingDecel)
		// Braking must not slow an input-driven character below max speed.
		if overMax && state.Vel.LenSqr() < maxSpeed*maxSpeed && state.Accel.Dot(oldVel) > 0 {
			state.Vel = game.SafeNormal(oldVel).Mul(maxSpeed)
		}
	} else {
		speed := state.Vel.Len()
		accelDir := game.SafeNormal(state.Accel)
		state.Vel = state.Vel.Sub(state.Vel.Sub(accelDir.Mul(speed)).Mul(math.Min(dt*friction, 1)))
	}

	if !zeroAccel {
		limit := maxSpeed
		if exceedsSpeed(state.Vel, maxSpeed) {
			limit = state.Vel.Len()
		}
		state.Vel = game.ClampedToMaxSize(state.Vel.Add(state.Accel.Mul(dt)), limit)
	}
}

func (s *Simulator) applyBraking(state *State, dt, friction, brakingDecel float64) {
	if state.Vel == (mgl64.Vec3{}) || dt < s.Options.MinTickTime {
		return
	}

	friction = math.Max(0, friction*math.Max(0, s.Options.BrakingFrictionFactor))
	brakingDecel = math.Max(0, brakingDecel)
	zeroFriction, zeroBraking := friction == 0, brakingDecel == 0
	if zeroFriction && zeroBraking {
		return
	}

	oldVel := state.Vel
	var revAccel mgl64.Vec3
	if !zeroBraking {
		revAccel = game.SafeNormal(state.Vel).Mul(-brakingDecel)
	}

	maxStep := game.ClampFloat(game.BrakingSubStepTime, 1.0/75.0, 1.0/20.0)
	for remaining := dt; remaining >= s.Options.MinTickTime; {
		step := remaining
		if remaining > maxStep && !zeroFriction {
			step = math.Min(maxStep, remaining*0.5)
		}
		remaining -= step

		state.Vel = state.Vel.Add(state.Vel.Mul(-friction).Add(revAccel).Mul(step))
		// Braking never reverses the direction of travel.
		if state.Vel.Dot(oldVel) <= 0 {
			state.Vel = mgl64.Vec3{}
			return
		}
	}

	lenSqr := state.Vel.LenSqr()
	if lenSqr <= game.SmallNumber || (!zeroBraking && lenSqr <= game.BrakeToStopVelocity*game.BrakeToStopVelocity) {
		state.Vel = mgl64.Vec3{}
	}
}

// MaxSpeed returns the speed cap for the character's current mode.
func (s *Simulator) MaxSpeed(state *State) float64 {
	for _, h := range s.speedHooks {
		if speed, ok := h.MaxSpeed(state); ok {
			return speed
		}
	}
	switch state.Mode.(type) {
	case Walking, Falling:
		return s.Options.MaxWalkSpeed
	}
	return 0
}

// MaxBrakingDeceleration returns the braking deceleration for the character's
// current mode. Custom modes do not brake.
func (s *Simulator) MaxBrakingDeceleration(state *State) float64 {
	switch state.Mode.(type) {
	case Walking:
		return s.Options.BrakingDecelerationWalking
	case Falling:
		return s.Options.BrakingDecelerationFalling
	}
	return 0
}

func exceedsSpeed(vel mgl64.Vec3, maxSpeed float64) bool {
	maxSpeed = math.Max(0, maxSpeed)
	return vel.LenSqr() > maxSpeed*maxSpeed*1.01
}
