package wallrun

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/wallrun/movement"
)

// ModeID is the custom movement mode ID of wall running.
const ModeID uint8 = 1

// Side is the side of the character the wall is on.
type Side uint8

const (
	SideLeft Side = iota
	SideRight
)

func (s Side) String() string {
	if s == SideRight {
		return "right"
	}
	return "left"
}

// Direction returns the lateral direction towards the wall given the
// character's right vector.
func (s Side) Direction(right mgl64.Vec3) mgl64.Vec3 {
	if s == SideRight {
		return right
	}
	return right.Mul(-1)
}

// WallRunning is the movement mode of a character running along a wall.
// Carrying the side in the mode means a wall-running character always has one.
type WallRunning struct {
	Side Side
}

func (WallRunning) CustomID() uint8 { return ModeID }

func (w WallRunning) String() string { return "wall_running_" + w.Side.String() }

// SideOf returns the wall side of mode if it is WallRunning.
func SideOf(mode movement.Mode) (Side, bool) {
	w, ok := mode.(WallRunning)
	return w.Side, ok
}

// IsWallRunning reports whether the character is currently wall running.
func IsWallRunning(state *movement.State) bool {
	_, ok := SideOf(state.Mode)
	return ok
}
