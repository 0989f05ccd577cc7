package game

import (
	"slices"

	"github.com/go-gl/mathgl/mgl64"
)

// SurfaceHit is the result of a line trace. Point, Normal and Distance are
// only meaningful when Valid is true.
type SurfaceHit struct {
	Valid    bool
	Point    mgl64.Vec3
	Normal   mgl64.Vec3
	Distance float64
	// Actor is the owner of the surface that was hit, 0 for static geometry.
	Actor uint64
}

// QueryParams filters what a world query may report.
type QueryParams struct {
	IgnoreActors []uint64
}

// Ignores reports whether surfaces owned by actor should be skipped.
func (p QueryParams) Ignores(actor uint64) bool {
	return actor != 0 && slices.Contains(p.IgnoreActors, actor)
}

// LineTracer traces a segment against blocking geometry and returns the
// nearest hit, if any.
type LineTracer interface {
	LineTrace(start, end mgl64.Vec3, params QueryParams) SurfaceHit
}
