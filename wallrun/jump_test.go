package wallrun

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/wallrun/movement"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJumpImpulse(t *testing.T) {
	sim, ext := newSimulator(DefaultConfig(), rightWall)
	state := newRunner(WallRunning{Side: SideRight}, mgl64.Vec3{300, 0, 0})

	impulse := ext.Config().JumpImpulse(state, NewProbe(sim, state), SideRight)
	assert.Equal(t, mgl64.Vec3{0, 0, -300}, impulse)
	assert.Equal(t, mgl64.Vec3{}, ext.Config().JumpImpulse(state, NewProbe(sim, state), SideLeft))
}

func TestDoJumpFromWallRun(t *testing.T) {
	sim, ext := newSimulator(DefaultConfig(), rightWall)
	var exited []Side
	ext.OnExit(func(_ *movement.State, side Side) { exited = append(exited, side) })

	state := newRunner(WallRunning{Side: SideRight}, mgl64.Vec3{300, 0, 0})
	require.True(t, sim.CanAttemptJump(state))
	sim.DoJump(state)

	normal := mgl64.Vec3{0, 0, -1}
	assert.True(t, state.IsFalling())
	assert.InDelta(t, 300, state.Vel.Dot(normal), 1e-9)
	assert.InDelta(t, 700, state.Vel.Y(), 1e-9)
	assert.Equal(t, []Side{SideRight}, exited)
}

func TestDoJumpWhileFallingHasNoKick(t *testing.T) {
	sim, _ := newSimulator(DefaultConfig(), rightWall)
	state := newRunner(movement.Falling{}, mgl64.Vec3{300, 0, 0})

	require.False(t, sim.CanAttemptJump(state))
	sim.DoJump(state)
	assert.Equal(t, mgl64.Vec3{300, 700, 0}, state.Vel)
}

func TestWallJumpThroughAdvance(t *testing.T) {
	sim, _ := newSimulator(DefaultConfig(), leftWall)
	state := newRunner(WallRunning{Side: SideLeft}, mgl64.Vec3{300, 0, 0})

	res := sim.Advance(state, movement.InputState{Jump: true, Yaw: -90}, tick)
	require.True(t, res.Jumped)
	assert.True(t, state.IsFalling(), "kicked away from the wall, got %v", state.Mode)
	assert.InDelta(t, 300, state.Vel.Z(), 1e-9)
	assert.InDelta(t, 700-980*tick, state.Vel.Y(), 1e-9)
	assert.Greater(t, state.Pos.Z(), 0.0)
}
