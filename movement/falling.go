package movement

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/wallrun/game"
)

func (s *Simulator) physFalling(state *State, dt float64, iterations int) {
	if !s.CanSimulate(state) {
		state.Accel, state.Vel = mgl64.Vec3{}, mgl64.Vec3{}
		return
	}

	remaining := dt
	for remaining >= s.Options.MinTickTime && iterations < s.Options.MaxSimulationIterations {
		iterations++
		tick := s.SimulationTimeStep(remaining, iterations)
		remaining -= tick

		oldVel := state.Vel

		// Air control only steers horizontally.
		inputAccel := state.Accel
		state.Accel = game.Vec3Hz(inputAccel).Mul(s.Options.AirControl)
		state.Vel[1] = 0
		s.CalcVelocity(state, tick, 0, s.MaxBrakingDeceleration(state))
		state.Accel = inputAccel
		state.Vel[1] = oldVel[1] + s.Options.Gravity*tick

		delta := oldVel.Add(state.Vel).Mul(0.5 * tick)
		res := s.SweptMove(state, delta)

		if res.CollideY && delta[1] < 0 {
			remaining += tick * (1 - res.Fraction(1))
			state.Vel[1] = 0
			s.Debugf("landed at %v with %.4fs of the tick left", state.Pos, remaining)
			s.SetMode(state, Walking{})
			s.StartNewPhysics(state, remaining, iterations)
			return
		}
		if res.CollideY {
			state.Vel[1] = 0
		}
		if res.CollideX {
			state.Vel[0] = 0
		}
		if res.CollideZ {
			state.Vel[2] = 0
		}
	}
}
