package wallrun

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/wallrun/assert"
	"github.com/oomph-ac/wallrun/game"
	"github.com/oomph-ac/wallrun/movement"
)

// Phys integrates a wall-running character over dt. It is installed as the
// integrator of ModeID by Extension.Register.
func (e *Extension) Phys(sim *movement.Simulator, state *movement.State, dt float64, iterations int) {
	opts := sim.Options
	if dt < opts.MinTickTime {
		return
	}
	side, ok := SideOf(state.Mode)
	assert.IsTrue(ok, "wall run integrator dispatched for %v", state.Mode)

	if !sim.CanSimulate(state) {
		state.Accel, state.Vel = mgl64.Vec3{}, mgl64.Vec3{}
		return
	}

	cfg := e.cfg
	probe := NewProbe(sim, state)
	sinPullAway := cfg.SinPullAwayAngle()
	minSpeedSqr := cfg.MinWallRunSpeed * cfg.MinWallRunSpeed

	remaining := dt
	for remaining >= opts.MinTickTime && iterations < opts.MaxSimulationIterations && sim.CanSimulate(state) {
		iterations++
		tick := sim.SimulationTimeStep(remaining, iterations)
		remaining -= tick
		oldPos := state.Pos

		wall := probe.WallOnSide(state.Pos, state.Right(), side)
		if !wall.Valid {
			e.fall(sim, state, remaining, iterations, "lost the wall")
			return
		}
		if game.SafeNormal(state.Accel).Dot(wall.Normal) > sinPullAway {
			e.fall(sim, state, remaining, iterations, "pulled away from the wall")
			return
		}

		accel := game.PlaneProject(state.Accel, wall.Normal)
		accel[1] = 0
		state.Accel = accel
		sim.CalcVelocity(state, tick, 0, sim.MaxBrakingDeceleration(state))
		state.Vel = game.PlaneProject(state.Vel, wall.Normal)

		alignment := game.SafeNormal(state.Accel).Dot(game.SafeNormalHz(state.Vel))
		state.Vel[1] += cfg.GravityDelta(opts.Gravity, state.Vel[1], alignment, tick)

		if game.Vec3HzDistSqr(state.Vel) < minSpeedSqr {
			e.fall(sim, state, remaining, iterations, "too slow")
			return
		}
		if state.Vel[1] < -cfg.MaxVerticalWallRunSpeed {
			e.fall(sim, state, remaining, iterations, "sliding down too fast")
			return
		}

		delta := state.Vel.Mul(tick)
		if game.IsNearlyZero(delta, game.SmallNumber) {
			remaining = 0
		} else {
			sim.SweptMove(state, delta)
			sim.SweptMove(state, wall.Normal.Mul(-cfg.WallAttractionForce*tick))
		}

		if state.Pos == oldPos {
			break
		}
		state.Vel = state.Pos.Sub(oldPos).Mul(1 / tick)
	}

	wall := probe.WallOnSide(state.Pos, state.Right(), side)
	floor := probe.Floor(state.Pos, cfg.MinWallRunHeight)
	switch {
	case floor.Valid:
		e.fall(sim, state, 0, iterations, "too close to the floor")
	case !wall.Valid:
		e.fall(sim, state, 0, iterations, "lost the wall")
	case game.Vec3HzDistSqr(state.Vel) < minSpeedSqr:
		e.fall(sim, state, 0, iterations, "too slow")
	}
}

// fall ends the wall run and simulates whatever is left of the tick as falling.
func (e *Extension) fall(sim *movement.Simulator, state *movement.State, remaining float64, iterations int, reason string) {
	sim.Debugf("wall run ended at %v: %s", state.Pos, reason)
	sim.SetMode(state, movement.Falling{})
	sim.StartNewPhysics(state, remaining, iterations)
}
