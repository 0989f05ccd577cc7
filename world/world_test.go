package world

import (
	"sync"
	"testing"

	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/wallrun/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineTraceNearestHit(t *testing.T) {
	w := New(0, nil)
	w.AddBox(0, cube.Box(-500, -500, 42, 500, 500, 100))
	w.AddBox(0, cube.Box(-500, -500, 60, 500, 500, 300))

	hit := w.LineTrace(mgl64.Vec3{}, mgl64.Vec3{0, 0, 84}, game.QueryParams{})
	require.True(t, hit.Valid)
	assert.InDelta(t, 42, hit.Distance, 1e-9)
	assert.Equal(t, mgl64.Vec3{0, 0, -1}, hit.Normal)
	assert.InDelta(t, 42, hit.Point.Z(), 1e-9)
}

func TestLineTraceFaceNormals(t *testing.T) {
	w := New(0, nil)
	w.AddBox(0, cube.Box(-50, -50, -50, 50, 50, 50))

	cases := map[string]struct {
		start, end, normal mgl64.Vec3
	}{
		"west":  {mgl64.Vec3{-200, 0, 0}, mgl64.Vec3{0, 0, 0}, mgl64.Vec3{-1, 0, 0}},
		"east":  {mgl64.Vec3{200, 0, 0}, mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 0, 0}},
		"up":    {mgl64.Vec3{0, 200, 0}, mgl64.Vec3{0, 0, 0}, mgl64.Vec3{0, 1, 0}},
		"down":  {mgl64.Vec3{0, -200, 0}, mgl64.Vec3{0, 0, 0}, mgl64.Vec3{0, -1, 0}},
		"north": {mgl64.Vec3{0, 0, -200}, mgl64.Vec3{0, 0, 0}, mgl64.Vec3{0, 0, -1}},
		"south": {mgl64.Vec3{0, 0, 200}, mgl64.Vec3{0, 0, 0}, mgl64.Vec3{0, 0, 1}},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			hit := w.LineTrace(c.start, c.end, game.QueryParams{})
			require.True(t, hit.Valid)
			assert.Equal(t, c.normal, hit.Normal)
			assert.InDelta(t, 150, hit.Distance, 1e-9)
		})
	}
}

func TestLineTraceMissesAndIgnores(t *testing.T) {
	w := New(0, nil)
	w.AddBox(7, cube.Box(-500, -500, 42, 500, 500, 100))

	assert.False(t, w.LineTrace(mgl64.Vec3{}, mgl64.Vec3{0, 0, -84}, game.QueryParams{}).Valid)
	assert.False(t, w.LineTrace(mgl64.Vec3{}, mgl64.Vec3{0, 0, 30}, game.QueryParams{}).Valid)
	assert.False(t, w.LineTrace(mgl64.Vec3{}, mgl64.Vec3{0, 0, 84}, game.QueryParams{IgnoreActors: []uint64{7}}).Valid)
	assert.False(t, w.LineTrace(mgl64.Vec3{}, mgl64.Vec3{}, game.QueryParams{}).Valid)

	// Starting inside a box never reports that box.
	assert.False(t, w.LineTrace(mgl64.Vec3{0, 0, 50}, mgl64.Vec3{0, 0, 90}, game.QueryParams{}).Valid)
}

func TestNearbyBoxes(t *testing.T) {
	w := New(0, nil)
	floor := cube.Box(-1000, -10, -1000, 1000, 0, 1000)
	w.AddBox(0, floor)
	w.AddBox(3, cube.Box(200, 0, 200, 300, 100, 300))
	far := w.AddBox(0, cube.Box(5000, 0, 5000, 5100, 100, 5100))

	character := cube.Box(-42, 0, -42, 42, 192, 42)
	nearby := w.NearbyBoxes(character, game.QueryParams{})
	require.Len(t, nearby, 1, "touching floor must be reported")
	assert.Equal(t, floor, nearby[0])

	wide := cube.Box(-42, 0, -42, 250, 192, 250)
	assert.Len(t, w.NearbyBoxes(wide, game.QueryParams{}), 2)
	assert.Len(t, w.NearbyBoxes(wide, game.QueryParams{IgnoreActors: []uint64{3}}), 1)

	assert.True(t, w.RemoveBox(far))
	assert.False(t, w.RemoveBox(far))
	assert.Equal(t, 1, w.RemoveActor(3))
	assert.Equal(t, 1, w.Len())
	assert.Len(t, w.Boxes(), 1)
}

func TestConcurrentQueries(t *testing.T) {
	w := New(50, nil)
	for i := range 20 {
		x := float64(i * 100)
		w.AddBox(0, cube.Box(x, -500, 42, x+100, 500, 100))
	}

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			origin := mgl64.Vec3{float64(i * 200), 0, 0}
			for range 100 {
				hit := w.LineTrace(origin, origin.Add(mgl64.Vec3{0, 0, 84}), game.QueryParams{})
				assert.True(t, hit.Valid)
			}
		}()
	}
	wg.Wait()
}
