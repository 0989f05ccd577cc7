package wallrun

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/wallrun/game"
	"github.com/oomph-ac/wallrun/movement"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWallRunLifecycle(t *testing.T) {
	cfg := DefaultConfig()
	cfg.GravityScaleCurve = game.ConstantCurve(0.5)
	sim, ext := newSimulator(cfg, leftWall)

	var events []string
	ext.OnEnter(func(_ *movement.State, side Side) { events = append(events, "enter_"+side.String()) })
	ext.OnExit(func(_ *movement.State, side Side) { events = append(events, "exit_"+side.String()) })

	state := newRunner(movement.Falling{}, mgl64.Vec3{400, 0, -10})
	wallRunTicks := 0
	for i := range 60 {
		sim.Advance(state, movement.InputState{Yaw: -90}, tick)
		if IsWallRunning(state) {
			wallRunTicks++
			assert.Equal(t, 800.0, sim.MaxSpeed(state))
		}
		if i < 5 {
			require.True(t, IsWallRunning(state), "tick %d: expected to be wall running, got %v", i, state.Mode)
		}
	}

	assert.Equal(t, []string{"enter_left", "exit_left"}, events)
	assert.True(t, state.IsFalling())
	assert.Greater(t, wallRunTicks, 20)
	assert.Less(t, wallRunTicks, 60)
	assert.InDelta(t, 0, state.Pos.Z(), 1e-9, "stayed against the wall")
	assert.Equal(t, 500.0, sim.MaxSpeed(state))
}

func TestRegisterWiresHooks(t *testing.T) {
	sim, ext := newSimulator(DefaultConfig())
	require.Len(t, sim.Extensions(), 1)
	assert.Same(t, ext, sim.Extensions()[0])
	assert.Panics(t, func() { ext.Register(sim) })

	ext.SetConfig(Config{MaxWallRunSpeed: 900})
	assert.Equal(t, 900.0, ext.Config().MaxWallRunSpeed)
}

func TestModeStrings(t *testing.T) {
	assert.Equal(t, "wall_running_left", WallRunning{Side: SideLeft}.String())
	assert.Equal(t, "wall_running_right", WallRunning{Side: SideRight}.String())
	assert.True(t, movement.IsCustom(WallRunning{}, ModeID))

	side, ok := SideOf(WallRunning{Side: SideRight})
	assert.True(t, ok)
	assert.Equal(t, SideRight, side)
	_, ok = SideOf(movement.Falling{})
	assert.False(t, ok)
}
