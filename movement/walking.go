package movement

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/wallrun/game"
)

func (s *Simulator) physWalking(state *State, dt float64, iterations int) {
	if !s.CanSimulate(state) {
		state.Accel, state.Vel = mgl64.Vec3{}, mgl64.Vec3{}
		return
	}

	remaining := dt
	for remaining >= s.Options.MinTickTime && iterations < s.Options.MaxSimulationIterations {
		iterations++
		tick := s.SimulationTimeStep(remaining, iterations)
		remaining -= tick

		oldPos := state.Pos
		state.Accel[1], state.Vel[1] = 0, 0
		s.CalcVelocity(state, tick, s.Options.GroundFriction, s.MaxBrakingDeceleration(state))

		delta := state.Vel.Mul(tick)
		if !game.IsNearlyZero(delta, game.SmallNumber) {
			res := s.SweptMove(state, delta)
			if res.CollideX {
				state.Vel[0] = 0
			}
			if res.CollideZ {
				state.Vel[2] = 0
			}
		}

		floor, ok := s.FindFloor(state)
		if !ok {
			s.Debugf("walked off a ledge at %v", state.Pos)
			s.SetMode(state, Falling{})
			s.StartNewPhysics(state, remaining, iterations)
			return
		}
		if floor.Gap > clipSkin {
			s.SweptMove(state, mgl64.Vec3{0, -floor.Gap, 0})
		}

		if !game.IsNearlyZero(delta, game.SmallNumber) {
			state.Vel = game.Vec3Hz(state.Pos.Sub(oldPos).Mul(1 / tick))
		}
	}
}
