package game

import (
	"iter"
	"math"

	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/go-gl/mathgl/mgl64"
)

// CellsBetween walks every grid cell of the given size that the segment from
// start to end passes through, in order. The cell containing start is always
// yielded first.
// https://github.com/pmmp/Math/blob/stable/src/VoxelRayTrace.php#L67
func CellsBetween(start, end mgl64.Vec3, cellSize float64) iter.Seq[cube.Pos] {
	return func(yield func(cube.Pos) bool) {
		start, end := start.Mul(1/cellSize), end.Mul(1/cellSize)
		current := cube.PosFromVec3(start)
		if !yield(current) {
			return
		}

		dir := SafeNormal(end.Sub(start))
		if dir == (mgl64.Vec3{}) {
			return
		}
		radius := end.Sub(start).Len()

		var step cube.Pos
		var tMax, tDelta mgl64.Vec3
		for axis := range 3 {
			step[axis] = sign(dir[axis])
			tMax[axis] = distanceToBoundary(start[axis], dir[axis])
			if dir[axis] != 0 {
				tDelta[axis] = float64(step[axis]) / dir[axis]
			}
		}

		for {
			axis := 2
			if tMax[0] < tMax[1] && tMax[0] < tMax[2] {
				axis = 0
			} else if tMax[1] < tMax[2] {
				axis = 1
			}
			if tMax[axis] > radius {
				return
			}
			current[axis] += step[axis]
			tMax[axis] += tDelta[axis]
			if !yield(current) {
				return
			}
		}
	}
}

// https://github.com/pmmp/Math/blob/stable/src/VoxelRayTrace.php#L134
func distanceToBoundary(s, ds float64) float64 {
	if ds == 0 {
		return math.MaxFloat64
	}
	if ds < 0 {
		s, ds = -s, -ds
		if math.Floor(s) == s {
			return 0
		}
	}
	return (1 - (s - math.Floor(s))) / ds
}

func sign(v float64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
