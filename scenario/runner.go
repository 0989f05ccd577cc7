package scenario

import (
	"context"
	"fmt"

	"github.com/elliotchance/orderedmap/v2"
	"github.com/google/uuid"
	"github.com/oomph-ac/wallrun/game"
	"github.com/oomph-ac/wallrun/movement"
	"github.com/oomph-ac/wallrun/record"
	"github.com/oomph-ac/wallrun/settings"
	"github.com/oomph-ac/wallrun/wallrun"
	"go.uber.org/zap"
)

// Runner advances a scenario tick by tick with a fixed configuration.
type Runner struct {
	Options  movement.SimulationOptions
	WallRun  wallrun.Config
	Capsule  movement.Capsule
	TickRate float64
	// History is the number of samples kept by the recorder.
	History int
	Log     *zap.Logger
}

// NewRunner returns a runner configured from s. log may be nil.
func NewRunner(s *settings.Settings, log *zap.Logger) Runner {
	if log == nil {
		log = zap.NewNop()
	}
	opts := s.Simulation.Options()
	if log.Core().Enabled(zap.DebugLevel) {
		opts.Debugf = log.Sugar().Debugf
	}
	return Runner{
		Options:  opts,
		WallRun:  s.WallRun,
		Capsule:  s.Character.Capsule(),
		TickRate: s.Simulation.TickRate,
		History:  record.DefaultHistory,
		Log:      log,
	}
}

// Summary describes a finished run.
type Summary struct {
	RunID    string
	Scenario string
	Ticks    int

	// ModeTicks counts the ticks that ended in each mode, in order of first
	// appearance.
	ModeTicks      *orderedmap.OrderedMap[string, int]
	WallRunEntries int
	WallJumps      int

	MeanSpeed      float64
	PeakSpeed      float64
	SpeedDeviation float64

	Final    record.Sample
	Checksum uint64
}

// Run simulates sc from its initial state. It stops early with the context's
// error if ctx is cancelled.
func (r Runner) Run(ctx context.Context, sc *Scenario) (Summary, error) {
	log := r.Log
	if log == nil {
		log = zap.NewNop()
	}
	tickRate := sc.TickRate
	if tickRate == 0 {
		tickRate = r.TickRate
	}
	if tickRate <= 0 {
		return Summary{}, invalid("no tick rate")
	}
	dt := 1 / tickRate

	w, state := sc.Build(r.Capsule, log)
	sim := movement.NewSimulator(w, r.Options)
	ext := wallrun.New(r.WallRun)
	ext.Register(sim)

	sum := Summary{
		RunID:     uuid.NewString(),
		Scenario:  sc.Name,
		ModeTicks: orderedmap.NewOrderedMap[string, int](),
	}
	ext.OnEnter(func(*movement.State, wallrun.Side) { sum.WallRunEntries++ })

	rec := record.New(r.History)
	speeds := make([]float64, 0, sc.Ticks)
	for tick := range sc.Ticks {
		if err := ctx.Err(); err != nil {
			return sum, fmt.Errorf("scenario %s: tick %d: %w", sc.Name, tick, err)
		}
		prev := state.Mode
		res := sim.Advance(state, sc.InputAt(tick), dt)
		if res.Jumped {
			if _, ok := wallrun.SideOf(prev); ok {
				sum.WallJumps++
			}
		}

		s := rec.Record(tick, res)
		sum.ModeTicks.Set(s.Mode, sum.ModeTicks.GetOrDefault(s.Mode, 0)+1)
		speeds = append(speeds, game.Vec3Hz(res.Velocity).Len())
	}

	sum.Ticks = rec.Count()
	sum.MeanSpeed = game.Mean(speeds)
	sum.PeakSpeed = game.Peak(speeds)
	sum.SpeedDeviation = game.StandardDeviation(speeds)
	sum.Final, _ = rec.Last()
	sum.Checksum = rec.Checksum()

	log.Debug("scenario finished",
		zap.String("run", sum.RunID),
		zap.String("scenario", sum.Scenario),
		zap.Int("ticks", sum.Ticks),
		zap.Uint64("checksum", sum.Checksum),
	)
	return sum, nil
}

// Report returns the summary as ordered key/value pairs.
func (s Summary) Report() *orderedmap.OrderedMap[string, any] {
	data := orderedmap.NewOrderedMap[string, any]()
	data.Set("run", s.RunID)
	data.Set("scenario", s.Scenario)
	data.Set("ticks", s.Ticks)
	for el := s.ModeTicks.Front(); el != nil; el = el.Next() {
		data.Set("ticks_"+el.Key, el.Value)
	}
	data.Set("wall_run_entries", s.WallRunEntries)
	data.Set("wall_jumps", s.WallJumps)
	data.Set("mean_speed", game.Round64(s.MeanSpeed, 2))
	data.Set("peak_speed", game.Round64(s.PeakSpeed, 2))
	data.Set("speed_stddev", game.Round64(s.SpeedDeviation, 2))
	data.Set("final_mode", s.Final.Mode)
	data.Set("final_position", game.RoundVec64(s.Final.Position, 2))
	data.Set("checksum", fmt.Sprintf("%016x", s.Checksum))
	return data
}

// String formats the report on a single line.
func (s Summary) String() string {
	data := s.Report()
	str := "["
	for el := data.Front(); el != nil; el = el.Next() {
		if el != data.Front() {
			str += " "
		}
		str += fmt.Sprintf("%s=%v", el.Key, el.Value)
	}
	return str + "]"
}
