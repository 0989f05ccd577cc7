package world

import (
	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/df-mc/dragonfly/server/block/cube/trace"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/wallrun/game"
)

// LineTrace traces the segment from start to end and returns the nearest hit
// on a box not ignored by params. Boxes containing start are skipped so that a
// trace never reports the surface it starts inside of.
func (w *World) LineTrace(start, end mgl64.Vec3, params game.QueryParams) game.SurfaceHit {
	if start == end {
		return game.SurfaceHit{}
	}

	w.RLock()
	defer w.RUnlock()

	var ids []int
	for pos := range game.CellsBetween(start, end, w.cellSize) {
		ids = append(ids, w.cells[pos]...)
	}

	best := game.SurfaceHit{}
	seen := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}

		box := w.boxes[id]
		if params.Ignores(box.Actor) || contains(box.BBox, start) {
			continue
		}
		res, ok := trace.BBoxIntercept(box.BBox, start, end)
		if !ok {
			continue
		}
		dist := res.Position().Sub(start).Len()
		// Ties keep the lowest box ID since candidates are visited in cell order.
		if best.Valid && dist >= best.Distance {
			continue
		}
		best = game.SurfaceHit{
			Valid:    true,
			Point:    res.Position(),
			Normal:   FaceNormal(res.Face()),
			Distance: dist,
			Actor:    box.Actor,
		}
	}
	return best
}

// FaceNormal returns the outward unit normal of a box face.
func FaceNormal(face cube.Face) mgl64.Vec3 {
	switch face {
	case cube.FaceDown:
		return mgl64.Vec3{0, -1, 0}
	case cube.FaceUp:
		return mgl64.Vec3{0, 1, 0}
	case cube.FaceNorth:
		return mgl64.Vec3{0, 0, -1}
	case cube.FaceSouth:
		return mgl64.Vec3{0, 0, 1}
	case cube.FaceWest:
		return mgl64.Vec3{-1, 0, 0}
	default:
		return mgl64.Vec3{1, 0, 0}
	}
}

func contains(bb cube.BBox, vec mgl64.Vec3) bool {
	lo, hi := bb.Min(), bb.Max()
	return vec[0] > lo[0] && vec[0] < hi[0] &&
		vec[1] > lo[1] && vec[1] < hi[1] &&
		vec[2] > lo[2] && vec[2] < hi[2]
}
