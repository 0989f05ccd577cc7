package wallrun

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/wallrun/movement"
)

// JumpImpulse returns the push away from the wall on the given side of the
// character, or zero if there is no wall there any more.
func (c Config) JumpImpulse(state *movement.State, probe Probe, side Side) mgl64.Vec3 {
	hit := probe.WallOnSide(state.Pos, state.Right(), side)
	if !hit.Valid {
		return mgl64.Vec3{}
	}
	return hit.Normal.Mul(c.WallJumpForce)
}

// CanAttemptJump allows jumping while wall running.
func (e *Extension) CanAttemptJump(state *movement.State) bool {
	return IsWallRunning(state)
}

// AfterJump kicks the character off the wall it was running along.
func (e *Extension) AfterJump(sim *movement.Simulator, state *movement.State, prev movement.Mode) {
	side, ok := SideOf(prev)
	if !ok {
		return
	}
	impulse := e.cfg.JumpImpulse(state, NewProbe(sim, state), side)
	state.Vel = state.Vel.Add(impulse)
	sim.Debugf("wall jump off the %s wall, impulse %v", side, impulse)
}
