package world

import (
	"math"
	"slices"

	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/wallrun/game"
	"github.com/sasha-s/go-deadlock"
	"go.uber.org/zap"
)

// DefaultCellSize is the edge length of a grid cell used to bucket boxes.
const DefaultCellSize = 100.0

// queryEpsilon grows query volumes so that boxes exactly touching the query
// are still reported.
const queryEpsilon = 1e-3

// Box is a blocking axis-aligned box owned by an actor. Actor 0 is static
// level geometry.
type Box struct {
	ID    int
	Actor uint64
	BBox  cube.BBox
}

// World is a collection of blocking boxes bucketed into a uniform grid. It is
// safe for concurrent use; queries only take the read lock.
type World struct {
	cellSize float64
	nextID   int

	boxes map[int]Box
	cells map[cube.Pos][]int

	log *zap.Logger

	deadlock.RWMutex
}

// New creates an empty world. A non-positive cellSize selects DefaultCellSize
// and a nil logger discards output.
func New(cellSize float64, log *zap.Logger) *World {
	if cellSize <= 0 {
		cellSize = DefaultCellSize
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &World{
		cellSize: cellSize,
		boxes:    make(map[int]Box),
		cells:    make(map[cube.Pos][]int),
		log:      log,
	}
}

// AddBox adds a blocking box owned by actor and returns its ID.
func (w *World) AddBox(actor uint64, bb cube.BBox) int {
	w.Lock()
	defer w.Unlock()

	w.nextID++
	id := w.nextID
	w.boxes[id] = Box{ID: id, Actor: actor, BBox: bb}
	for pos := range w.cellsOf(bb) {
		w.cells[pos] = append(w.cells[pos], id)
	}
	w.log.Debug("box added", zap.Int("id", id), zap.Uint64("actor", actor), zap.Any("min", bb.Min()), zap.Any("max", bb.Max()))
	return id
}

// RemoveBox removes the box with the given ID, returning false if it did not exist.
func (w *World) RemoveBox(id int) bool {
	w.Lock()
	defer w.Unlock()
	return w.removeBox(id)
}

// RemoveActor removes every box owned by actor and returns how many were removed.
func (w *World) RemoveActor(actor uint64) int {
	w.Lock()
	defer w.Unlock()

	var ids []int
	for id, box := range w.boxes {
		if box.Actor == actor {
			ids = append(ids, id)
		}
	}
	for _, id := range ids {
		w.removeBox(id)
	}
	return len(ids)
}

func (w *World) removeBox(id int) bool {
	box, ok := w.boxes[id]
	if !ok {
		return false
	}
	delete(w.boxes, id)
	for pos := range w.cellsOf(box.BBox) {
		ids := slices.DeleteFunc(w.cells[pos], func(other int) bool { return other == id })
		if len(ids) == 0 {
			delete(w.cells, pos)
			continue
		}
		w.cells[pos] = ids
	}
	return true
}

// Len returns the number of boxes in the world.
func (w *World) Len() int {
	w.RLock()
	defer w.RUnlock()
	return len(w.boxes)
}

// Boxes returns every box in the world ordered by ID.
func (w *World) Boxes() []Box {
	w.RLock()
	defer w.RUnlock()

	boxes := make([]Box, 0, len(w.boxes))
	for _, box := range w.boxes {
		boxes = append(boxes, box)
	}
	slices.SortFunc(boxes, func(a, b Box) int { return a.ID - b.ID })
	return boxes
}

// NearbyBoxes returns the boxes intersecting or touching bb, skipping those
// owned by actors the params ignore. The result is ordered by box ID.
func (w *World) NearbyBoxes(bb cube.BBox, params game.QueryParams) []cube.BBox {
	query := bb.Grow(queryEpsilon)

	w.RLock()
	defer w.RUnlock()

	var result []cube.BBox
	for _, id := range w.candidates(query) {
		box := w.boxes[id]
		if params.Ignores(box.Actor) || !box.BBox.IntersectsWith(query) {
			continue
		}
		result = append(result, box.BBox)
	}
	return result
}

// candidates returns the sorted, deduplicated IDs of boxes sharing a cell with
// bb. The caller must hold the read lock.
func (w *World) candidates(bb cube.BBox) []int {
	var ids []int
	for pos := range w.cellsOf(bb) {
		ids = append(ids, w.cells[pos]...)
	}
	slices.Sort(ids)
	return slices.Compact(ids)
}

func (w *World) cellsOf(bb cube.BBox) func(yield func(cube.Pos) bool) {
	return func(yield func(cube.Pos) bool) {
		lo, hi := w.cellPos(bb.Min()), w.cellPos(bb.Max())
		for x := lo[0]; x <= hi[0]; x++ {
			for y := lo[1]; y <= hi[1]; y++ {
				for z := lo[2]; z <= hi[2]; z++ {
					if !yield(cube.Pos{x, y, z}) {
						return
					}
				}
			}
		}
	}
}

func (w *World) cellPos(vec mgl64.Vec3) cube.Pos {
	return cube.Pos{
		int(math.Floor(vec[0] / w.cellSize)),
		int(math.Floor(vec[1] / w.cellSize)),
		int(math.Floor(vec[2] / w.cellSize)),
	}
}
