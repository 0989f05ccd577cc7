package movement

import (
	"math"

	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/wallrun/game"
)

// clipSkin is the tolerance under which boxes are treated as touching rather
// than overlapping.
const clipSkin = 1e-7

// sweepOrder is the order axes are resolved in by SweptMove.
var sweepOrder = [3]int{1, 0, 2}

// MoveResult describes a swept move.
type MoveResult struct {
	// Delta is the requested displacement and Applied the one actually taken.
	Delta, Applied mgl64.Vec3

	CollideX, CollideY, CollideZ bool
	// Normal is the averaged normal of the blocking surfaces, zero when unblocked.
	Normal mgl64.Vec3
}

// Blocked reports whether any axis of the move was clipped.
func (r MoveResult) Blocked() bool {
	return r.CollideX || r.CollideY || r.CollideZ
}

// Fraction returns how much of the move along axis was applied, in [0, 1].
func (r MoveResult) Fraction(axis int) float64 {
	if r.Delta[axis] == 0 {
		return 1
	}
	return game.ClampFloat(r.Applied[axis]/r.Delta[axis], 0, 1)
}

// SweptMove moves the character by delta, resolving collisions against the
// world one axis at a time: vertically first, then X, then Z.
func (s *Simulator) SweptMove(state *State, delta mgl64.Vec3) MoveResult {
	result := MoveResult{Delta: delta}
	if delta == (mgl64.Vec3{}) {
		return result
	}

	bb := state.BoundingBox()
	boxes := s.nearbyBoxes(bb.Extend(delta), state.QueryParams())
	for _, axis := range sweepOrder {
		d := delta[axis]
		for _, box := range boxes {
			d = ClipAxis(box, bb, axis, d)
		}
		var offset mgl64.Vec3
		offset[axis] = d
		bb = bb.Translate(offset)
		result.Applied[axis] = d

		if math.Abs(d-delta[axis]) > clipSkin {
			result.Normal[axis] = -math.Copysign(1, delta[axis])
			switch axis {
			case 0:
				result.CollideX = true
			case 1:
				result.CollideY = true
			case 2:
				result.CollideZ = true
			}
		}
	}
	result.Normal = game.SafeNormal(result.Normal)
	state.Pos = state.Pos.Add(result.Applied)
	return result
}

// ClipAxis clips a displacement d of the moving box along axis so that it does
// not pass into the stationary box. Boxes that only touch on another axis do
// not block, and boxes that already overlap are left free to separate.
func ClipAxis(stationary, moving cube.BBox, axis int, d float64) float64 {
	if d == 0 || BBHasZeroVolume(stationary) {
		return d
	}
	for other := range 3 {
		if other == axis {
			continue
		}
		if moving.Max()[other]-stationary.Min()[other] <= clipSkin || stationary.Max()[other]-moving.Min()[other] <= clipSkin {
			return d
		}
	}

	if d > 0 {
		gap := stationary.Min()[axis] - moving.Max()[axis]
		if gap >= -clipSkin && gap < d {
			return math.Max(gap, 0)
		}
		return d
	}
	gap := stationary.Max()[axis] - moving.Min()[axis]
	if gap <= clipSkin && gap > d {
		return math.Min(gap, 0)
	}
	return d
}

// BBHasZeroVolume returns true if the bounding box has zero volume.
func BBHasZeroVolume(bb cube.BBox) bool {
	return bb.Min() == bb.Max()
}

// FloorResult describes the floor beneath a character.
type FloorResult struct {
	// Gap is the distance between the bottom of the character and the floor.
	Gap    float64
	Normal mgl64.Vec3
}

// FindFloor sweeps the character's box down by at most game.FloorProbeDistance
// and reports the floor it would land on.
func (s *Simulator) FindFloor(state *State) (FloorResult, bool) {
	bb := state.BoundingBox()
	probe := mgl64.Vec3{0, -game.FloorProbeDistance, 0}
	d := probe[1]
	for _, box := range s.nearbyBoxes(bb.Extend(probe), state.QueryParams()) {
		d = ClipAxis(box, bb, 1, d)
	}
	if d <= probe[1]+clipSkin {
		return FloorResult{}, false
	}
	return FloorResult{Gap: -d, Normal: mgl64.Vec3{0, 1, 0}}, true
}
