package wallrun

import (
	"math"
	"testing"

	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/wallrun/game"
	"github.com/oomph-ac/wallrun/movement"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPhysAppliesScaledGravity(t *testing.T) {
	cfg := DefaultConfig()
	cfg.GravityScaleCurve = game.ConstantCurve(1)
	sim, _ := newSimulator(cfg, rightWall)
	state := newRunner(WallRunning{Side: SideRight}, mgl64.Vec3{250, 0, 0})

	sim.StartNewPhysics(state, 0.016, 0)
	require.Equal(t, movement.Mode(WallRunning{Side: SideRight}), state.Mode)
	assert.InDelta(t, -15.68, state.Vel.Y(), 1e-6)
	assert.InDelta(t, 250, state.Vel.X(), 1e-6)
	assert.InDelta(t, 4, state.Pos.X(), 1e-9)
	assert.InDelta(t, 0, state.Pos.Z(), 1e-9, "attraction must not push into the wall")
}

func TestPhysWithoutCurveKeepsHeight(t *testing.T) {
	sim, _ := newSimulator(DefaultConfig(), rightWall)
	state := newRunner(WallRunning{Side: SideRight}, mgl64.Vec3{250, 0, 0})

	sim.StartNewPhysics(state, 0.1, 0)
	assert.True(t, IsWallRunning(state))
	assert.InDelta(t, 0, state.Pos.Y(), 1e-9)
	assert.InDelta(t, 25, state.Pos.X(), 1e-9)
}

func TestPhysExitsNearFloor(t *testing.T) {
	sim, ext := newSimulator(DefaultConfig(), rightWall, floorBelow)
	var exited []Side
	ext.OnExit(func(_ *movement.State, side Side) { exited = append(exited, side) })

	state := newRunner(WallRunning{Side: SideRight}, mgl64.Vec3{250, 0, 0})
	sim.StartNewPhysics(state, 0.016, 0)
	assert.True(t, state.IsFalling())
	assert.Equal(t, []Side{SideRight}, exited)
}

func TestPhysExitsWhenTooSlow(t *testing.T) {
	sim, _ := newSimulator(DefaultConfig(), rightWall)
	state := newRunner(WallRunning{Side: SideRight}, mgl64.Vec3{150, 0, 0})

	sim.StartNewPhysics(state, 0.016, 0)
	assert.True(t, state.IsFalling())
	assert.Equal(t, mgl64.Vec3{}, state.Pos)
}

func TestPhysExitsWhenSlidingTooFast(t *testing.T) {
	cfg := DefaultConfig()
	cfg.GravityScaleCurve = game.ConstantCurve(1)
	sim, _ := newSimulator(cfg, rightWall)
	state := newRunner(WallRunning{Side: SideRight}, mgl64.Vec3{250, -195, 0})

	sim.StartNewPhysics(state, 0.016, 0)
	assert.True(t, state.IsFalling())
}

func TestPhysPullAway(t *testing.T) {
	sim, _ := newSimulator(DefaultConfig(), rightWall)
	state := newRunner(WallRunning{Side: SideRight}, mgl64.Vec3{250, 0, 0})
	state.Accel = mgl64.Vec3{0, 0, -2048}

	sim.StartNewPhysics(state, 0.016, 0)
	assert.True(t, state.IsFalling())
	assert.Equal(t, mgl64.Vec3{250, 0, 0}, state.Vel, "velocity must be untouched by the exiting substep")
	assert.Equal(t, mgl64.Vec3{}, state.Pos)
}

func TestPhysInputAlongWallDoesNotPullAway(t *testing.T) {
	sim, _ := newSimulator(DefaultConfig(), rightWall)
	state := newRunner(WallRunning{Side: SideRight}, mgl64.Vec3{250, 0, 0})
	// 60 degrees off the wall is inside the 75 degree pull-away angle.
	state.Accel = mgl64.Vec3{math.Cos(mgl64.DegToRad(60)), 0, -math.Sin(mgl64.DegToRad(60))}.Mul(2048)

	sim.StartNewPhysics(state, 0.016, 0)
	require.True(t, IsWallRunning(state))
	assert.Greater(t, state.Vel.X(), 250.0)
	assert.InDelta(t, 0, state.Pos.Z(), 1e-9)
}

func TestPhysLosesWall(t *testing.T) {
	sim, _ := newSimulator(DefaultConfig(), cube.Box(-2000, -2000, 42, 2, 2000, 100))
	state := newRunner(WallRunning{Side: SideRight}, mgl64.Vec3{250, 0, 0})

	sim.StartNewPhysics(state, 0.05, 0)
	assert.True(t, state.IsFalling())
	assert.Greater(t, state.Pos.X(), 2.0)
}

func TestPhysStopsWhenStuck(t *testing.T) {
	obstacle := cube.Box(42, -2000, -2000, 100, 2000, 41)
	sim, _ := newSimulator(DefaultConfig(), rightWall, obstacle)
	state := newRunner(WallRunning{Side: SideRight}, mgl64.Vec3{250, 0, 0})

	sim.StartNewPhysics(state, 0.1, 0)
	assert.Equal(t, mgl64.Vec3{}, state.Pos)
	assert.Equal(t, mgl64.Vec3{250, 0, 0}, state.Vel)
	assert.True(t, IsWallRunning(state))
}

func TestPhysWithoutController(t *testing.T) {
	sim, _ := newSimulator(DefaultConfig(), rightWall)
	state := newRunner(WallRunning{Side: SideRight}, mgl64.Vec3{250, 0, 0})
	state.HasController = false
	state.Accel = mgl64.Vec3{2048, 0, 0}

	sim.StartNewPhysics(state, 0.016, 0)
	assert.Equal(t, mgl64.Vec3{}, state.Vel)
	assert.Equal(t, mgl64.Vec3{}, state.Accel)
	assert.Equal(t, mgl64.Vec3{}, state.Pos)
	assert.True(t, IsWallRunning(state))
}

func TestPhysIgnoresTinyTicks(t *testing.T) {
	sim, _ := newSimulator(DefaultConfig(), rightWall)
	state := newRunner(WallRunning{Side: SideRight}, mgl64.Vec3{250, 0, 0})

	sim.StartNewPhysics(state, 1e-7, 0)
	assert.Equal(t, mgl64.Vec3{}, state.Pos)
	assert.Equal(t, mgl64.Vec3{250, 0, 0}, state.Vel)
}

func TestGravityScaleBounded(t *testing.T) {
	curves := []game.Curve{
		nil,
		game.ConstantCurve(1),
		game.ConstantCurve(3),
		game.ConstantCurve(-2),
		{{Time: -1, Value: 1.5}, {Time: 0, Value: 0.4}, {Time: 1, Value: -0.5}},
	}
	const gravity, dt = -980.0, 0.016
	for _, curve := range curves {
		cfg := DefaultConfig()
		cfg.GravityScaleCurve = curve
		for alignment := -1.0; alignment <= 1.0; alignment += 0.125 {
			for _, vy := range []float64{-150, 0, 50} {
				delta := cfg.GravityDelta(gravity, vy, alignment, dt)
				assert.LessOrEqual(t, math.Abs(delta), math.Abs(gravity)*dt+1e-12)
				assert.LessOrEqual(t, delta, 0.0)
				if vy > 0 || curve.Empty() {
					assert.Zero(t, delta)
				}
			}
		}
	}
}

func TestConfigValidate(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())

	cfg := DefaultConfig()
	cfg.MinWallRunSpeed = -1
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.MaxWallRunSpeed = 100
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.WallRunPullAwayAngle = 120
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.GravityScaleCurve = game.Curve{{Time: 1}, {Time: 0}}
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.GravityScaleCurve = game.Curve{{Time: 0, Value: 1.5}}
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.GravityScaleCurve = game.Curve{{Time: -2, Value: 0.5}}
	assert.Error(t, cfg.Validate())

	assert.InDelta(t, math.Sin(mgl64.DegToRad(75)), DefaultConfig().SinPullAwayAngle(), 1e-12)
}
