package wallrun

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/wallrun/game"
	"github.com/oomph-ac/wallrun/movement"
)

// Probe traces for walls and floors around a character, ignoring the
// character's own geometry.
type Probe struct {
	Tracer  game.LineTracer
	Params  game.QueryParams
	Capsule movement.Capsule
}

// NewProbe returns a probe for state that traces through tracer.
func NewProbe(tracer game.LineTracer, state *movement.State) Probe {
	return Probe{Tracer: tracer, Params: state.QueryParams(), Capsule: state.Capsule}
}

// Wall traces from origin along lateral for twice the capsule radius.
func (p Probe) Wall(origin, lateral mgl64.Vec3) game.SurfaceHit {
	return p.trace(origin, origin.Add(lateral.Mul(2*p.Capsule.Radius)))
}

// WallOnSide traces towards the given side of a character facing with the
// given right vector.
func (p Probe) WallOnSide(origin, right mgl64.Vec3, side Side) game.SurfaceHit {
	return p.Wall(origin, side.Direction(right))
}

// Floor traces straight down from origin past the bottom of the capsule by
// five times minWallRunHeight.
func (p Probe) Floor(origin mgl64.Vec3, minWallRunHeight float64) game.SurfaceHit {
	return p.trace(origin, origin.Sub(mgl64.Vec3{0, p.Capsule.HalfHeight + minWallRunHeight*5, 0}))
}

func (p Probe) trace(start, end mgl64.Vec3) game.SurfaceHit {
	if p.Tracer == nil {
		return game.SurfaceHit{}
	}
	return p.Tracer.LineTrace(start, end, p.Params)
}
