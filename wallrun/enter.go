package wallrun

import (
	"github.com/oomph-ac/wallrun/game"
	"github.com/oomph-ac/wallrun/movement"
)

// TryEnter decides whether a falling character can start running along a
// wall. On success the character's velocity is projected onto the wall plane,
// its vertical component clamped to [0, MaxVerticalWallRunSpeed], and the side
// of the wall is returned. The mode is left for the caller to change.
func (c Config) TryEnter(state *movement.State, probe Probe) (Side, bool) {
	if !state.IsFalling() {
		return 0, false
	}

	vel := state.Vel
	minSpeedSqr := c.MinWallRunSpeed * c.MinWallRunSpeed
	if game.Vec3HzDistSqr(vel) < minSpeedSqr || vel.Y() < -c.MaxVerticalWallRunSpeed {
		return 0, false
	}
	if probe.Floor(state.Pos, c.MinWallRunHeight).Valid {
		return 0, false
	}

	right := state.Right()
	side := SideLeft
	hit := probe.WallOnSide(state.Pos, right, SideLeft)
	if !hit.Valid || vel.Dot(hit.Normal) >= 0 {
		side = SideRight
		hit = probe.WallOnSide(state.Pos, right, SideRight)
		if !hit.Valid || vel.Dot(hit.Normal) <= 0 {
			return 0, false
		}
	}

	projected := game.PlaneProject(vel, hit.Normal)
	if game.Vec3HzDistSqr(projected) < minSpeedSqr {
		return 0, false
	}
	projected[1] = game.ClampFloat(projected[1], 0, c.MaxVerticalWallRunSpeed)
	state.Vel = projected
	return side, true
}
