package wallrun

import (
	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/wallrun/movement"
	"github.com/oomph-ac/wallrun/world"
)

const tick = 1.0 / 60.0

// The character faces +X, so its right side is +Z. Both walls touch a
// character standing at the origin.
var (
	rightWall = cube.Box(-2000, -2000, 42, 2000, 2000, 100)
	leftWall  = cube.Box(-2000, -2000, -100, 2000, 2000, -42)
	// floorBelow is within five times the minimum wall run height but does not
	// touch the character.
	floorBelow = cube.Box(-2000, -600, -2000, 2000, -500, 2000)
)

func newWorld(boxes ...cube.BBox) *world.World {
	w := world.New(0, nil)
	for _, bb := range boxes {
		w.AddBox(0, bb)
	}
	return w
}

func newSimulator(cfg Config, boxes ...cube.BBox) (*movement.Simulator, *Extension) {
	sim := movement.NewSimulator(newWorld(boxes...), movement.DefaultSimulationOptions())
	ext := New(cfg)
	ext.Register(sim)
	return sim, ext
}

func newRunner(mode movement.Mode, vel mgl64.Vec3) *movement.State {
	state := movement.NewState(mgl64.Vec3{}, movement.DefaultCapsule())
	state.Yaw = -90
	state.Mode = mode
	state.Vel = vel
	return state
}
