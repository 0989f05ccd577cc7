package game

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func vecInDelta(t *testing.T, expected, actual mgl64.Vec3, delta float64) {
	t.Helper()
	for i := range 3 {
		assert.InDelta(t, expected[i], actual[i], delta, "component %d of %v", i, actual)
	}
}

func TestDirectionVectors(t *testing.T) {
	vecInDelta(t, mgl64.Vec3{0, 0, 1}, DirectionVector(0), 1e-9)
	vecInDelta(t, mgl64.Vec3{1, 0, 0}, DirectionVector(-90), 1e-9)
	vecInDelta(t, mgl64.Vec3{0, 0, 1}, RightVector(-90), 1e-9)
	vecInDelta(t, mgl64.Vec3{-1, 0, 0}, RightVector(0), 1e-9)

	for _, yaw := range []float64{-170, -90, -12.5, 0, 45, 90, 179} {
		assert.InDelta(t, yaw, YawFromDirection(DirectionVector(yaw)), 1e-9)
	}
}

func TestPlaneProject(t *testing.T) {
	normal := mgl64.Vec3{0, 0, -1}
	projected := PlaneProject(mgl64.Vec3{300, -50, -20}, normal)
	vecInDelta(t, mgl64.Vec3{300, -50, 0}, projected, 1e-9)
	assert.InDelta(t, 0, projected.Dot(normal), 1e-9)
}

func TestSafeNormal(t *testing.T) {
	require.Equal(t, mgl64.Vec3{}, SafeNormal(mgl64.Vec3{}))
	require.Equal(t, mgl64.Vec3{}, SafeNormal(mgl64.Vec3{1e-5, 0, 0}))
	vecInDelta(t, mgl64.Vec3{0.6, 0, 0.8}, SafeNormal(mgl64.Vec3{3, 0, 4}), 1e-12)
	vecInDelta(t, mgl64.Vec3{1, 0, 0}, SafeNormalHz(mgl64.Vec3{5, 100, 0}), 1e-12)
}

func TestClampedToMaxSize(t *testing.T) {
	v := ClampedToMaxSize(mgl64.Vec3{30, 0, 40}, 10)
	assert.InDelta(t, 10, v.Len(), 1e-9)
	assert.Equal(t, mgl64.Vec3{3, 0, 4}, ClampedToMaxSize(mgl64.Vec3{3, 0, 4}, 10))
}

func TestFixedTurn(t *testing.T) {
	assert.InDelta(t, 10, FixedTurn(0, 90, 10), 1e-9)
	assert.InDelta(t, 90, FixedTurn(85, 90, 10), 1e-9)
	// The short way from 170 to -170 crosses 180.
	assert.InDelta(t, 180, math.Abs(FixedTurn(170, -170, 10)), 1e-9)
	assert.InDelta(t, -10, FixedTurn(0, -90, 10), 1e-9)
}

func TestStatistics(t *testing.T) {
	data := []float64{2, 4, 4, 4, 5, 5, 7, 9}
	assert.Equal(t, 40.0, Sum(data))
	assert.Equal(t, 5.0, Mean(data))
	assert.Equal(t, 9.0, Peak(data))
	assert.InDelta(t, 2.0, StandardDeviation(data), 1e-12)
	assert.Zero(t, Mean(nil))
	assert.Zero(t, Peak(nil))
}
