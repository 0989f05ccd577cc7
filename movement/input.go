package movement

import "github.com/go-gl/mathgl/mgl64"

// InputState represents a single tick's player input.
type InputState struct {
	// MoveVector is the movement stick: X strafes right, Y moves forward.
	// Its length is clamped to 1.
	MoveVector mgl64.Vec2
	// Yaw is the control (camera) yaw the move vector is relative to.
	Yaw float64

	Jump bool
}
