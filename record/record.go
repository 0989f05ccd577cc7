package record

import (
	"encoding/binary"
	"iter"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/wallrun/movement"
	"github.com/oomph-ac/wallrun/utils"
	"github.com/zeebo/xxh3"
)

// DefaultHistory is the number of samples a Recorder keeps when none is given.
const DefaultHistory = 256

// Sample is the state of a character after a single tick.
type Sample struct {
	Tick     int
	Position mgl64.Vec3
	Velocity mgl64.Vec3
	Yaw      float64
	Mode     string
	Jumped   bool
	Outcome  movement.SimulationOutcome
}

// Recorder keeps a bounded history of samples and a running checksum over
// every sample ever recorded, including the ones dropped from the history.
type Recorder struct {
	history *utils.CircularQueue[Sample]
	hasher  *xxh3.Hasher
	buf     []byte
	count   int
}

// New returns a Recorder keeping the last history samples. A non-positive
// history uses DefaultHistory.
func New(history int) *Recorder {
	if history <= 0 {
		history = DefaultHistory
	}
	return &Recorder{
		history: utils.NewCircularQueue[Sample](history),
		hasher:  xxh3.New(),
		buf:     make([]byte, 0, 96),
	}
}

// Record adds the result of a tick to the recorder.
func (r *Recorder) Record(tick int, res movement.SimulationResult) Sample {
	mode := "none"
	if res.Mode != nil {
		mode = res.Mode.String()
	}
	s := Sample{
		Tick:     tick,
		Position: res.Position,
		Velocity: res.Velocity,
		Yaw:      res.Yaw,
		Mode:     mode,
		Jumped:   res.Jumped,
		Outcome:  res.Outcome,
	}
	// The history always has capacity, so Append cannot fail.
	_ = r.history.Append(s)
	r.hash(s)
	r.count++
	return s
}

func (r *Recorder) hash(s Sample) {
	b := r.buf[:0]
	b = binary.LittleEndian.AppendUint64(b, uint64(s.Tick))
	for _, v := range [...]float64{s.Position[0], s.Position[1], s.Position[2], s.Velocity[0], s.Velocity[1], s.Velocity[2], s.Yaw} {
		b = binary.LittleEndian.AppendUint64(b, math.Float64bits(v))
	}
	b = append(b, s.Mode...)
	if s.Jumped {
		b = append(b, 1)
	} else {
		b = append(b, 0)
	}
	b = append(b, byte(s.Outcome))
	_, _ = r.hasher.Write(b)
	r.buf = b
}

// Checksum returns the xxh3 digest of every sample recorded so far. Two runs
// produce the same checksum only if every tick matched bit for bit.
func (r *Recorder) Checksum() uint64 {
	return r.hasher.Sum64()
}

// Count returns the total number of samples recorded.
func (r *Recorder) Count() int {
	return r.count
}

// Last returns the most recent sample.
func (r *Recorder) Last() (Sample, bool) {
	return r.history.Last()
}

// Samples yields the retained samples from oldest to newest.
func (r *Recorder) Samples() iter.Seq[Sample] {
	return r.history.Iter()
}

// Reset clears the history and the checksum.
func (r *Recorder) Reset() {
	r.history.Clear()
	r.hasher.Reset()
	r.count = 0
}
