package movement

import (
	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/wallrun/game"
)

// Capsule is the collision shape of a character. Collision is resolved against
// its bounding box.
type Capsule struct {
	Radius     float64
	HalfHeight float64
}

// DefaultCapsule returns the standard character capsule.
func DefaultCapsule() Capsule {
	return Capsule{Radius: game.DefaultCapsuleRadius, HalfHeight: game.DefaultCapsuleHalfHeight}
}

// State holds the movement state of a single character. Pos is the centre of
// the capsule.
type State struct {
	Pos, LastPos mgl64.Vec3
	Vel, LastVel mgl64.Vec3
	// Accel is the input acceleration requested for this tick.
	Accel mgl64.Vec3

	// Yaw is the facing of the character, which wall probes are relative to.
	Yaw float64

	Mode    Mode
	Capsule Capsule

	// ActorID identifies the character's own geometry so that queries can skip it.
	ActorID      uint64
	IgnoreActors []uint64

	HasController   bool
	HasForcedMotion bool

	// Jumped is set when a jump was performed during the last tick.
	Jumped bool
}

// NewState returns a controlled, falling character at pos.
func NewState(pos mgl64.Vec3, capsule Capsule) *State {
	return &State{
		Pos:           pos,
		LastPos:       pos,
		Mode:          Falling{},
		Capsule:       capsule,
		HasController: true,
	}
}

// BoundingBox returns the box collision is resolved against.
func (s *State) BoundingBox() cube.BBox {
	r, h := s.Capsule.Radius, s.Capsule.HalfHeight
	return cube.Box(s.Pos[0]-r, s.Pos[1]-h, s.Pos[2]-r, s.Pos[0]+r, s.Pos[1]+h, s.Pos[2]+r)
}

func (s *State) Forward() mgl64.Vec3 {
	return game.DirectionVector(s.Yaw)
}

func (s *State) Right() mgl64.Vec3 {
	return game.RightVector(s.Yaw)
}

// QueryParams returns world query parameters that skip the character itself.
func (s *State) QueryParams() game.QueryParams {
	ignored := make([]uint64, 0, len(s.IgnoreActors)+1)
	if s.ActorID != 0 {
		ignored = append(ignored, s.ActorID)
	}
	return game.QueryParams{IgnoreActors: append(ignored, s.IgnoreActors...)}
}

func (s *State) IsWalking() bool {
	_, ok := s.Mode.(Walking)
	return ok
}

func (s *State) IsFalling() bool {
	_, ok := s.Mode.(Falling)
	return ok
}
