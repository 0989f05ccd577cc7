package wallrun

import (
	"github.com/oomph-ac/wallrun/movement"
)

// Extension adds wall running to a movement.Simulator.
type Extension struct {
	cfg Config

	onEnter []func(state *movement.State, side Side)
	onExit  []func(state *movement.State, side Side)
}

// New returns an extension using cfg. cfg is assumed to be valid.
func New(cfg Config) *Extension {
	return &Extension{cfg: cfg}
}

func (e *Extension) Name() string { return "wall_run" }

func (e *Extension) Config() Config { return e.cfg }

// SetConfig replaces the tuning. It must not be called while a simulator
// using the extension is advancing.
func (e *Extension) SetConfig(cfg Config) { e.cfg = cfg }

// Register installs the wall-run integrator, hooks and mode listener on sim.
func (e *Extension) Register(sim *movement.Simulator) {
	sim.RegisterCustomMode(ModeID, e.Phys)
	sim.Register(e)
	sim.AddModeListener(e.modeChanged)
}

// OnEnter registers fn to be called whenever a character starts wall running.
func (e *Extension) OnEnter(fn func(state *movement.State, side Side)) {
	e.onEnter = append(e.onEnter, fn)
}

// OnExit registers fn to be called whenever a character stops wall running.
func (e *Extension) OnExit(fn func(state *movement.State, side Side)) {
	e.onExit = append(e.onExit, fn)
}

// BeforeMovement starts a wall run for falling characters that qualify.
func (e *Extension) BeforeMovement(sim *movement.Simulator, state *movement.State, _ float64) {
	if !state.IsFalling() {
		return
	}
	if side, ok := e.cfg.TryEnter(state, NewProbe(sim, state)); ok {
		sim.SetMode(state, WallRunning{Side: side})
	}
}

// MaxSpeed caps wall-running characters at MaxWallRunSpeed.
func (e *Extension) MaxSpeed(state *movement.State) (float64, bool) {
	if IsWallRunning(state) {
		return e.cfg.MaxWallRunSpeed, true
	}
	return 0, false
}

func (e *Extension) modeChanged(state *movement.State, prev, next movement.Mode) {
	if side, ok := SideOf(prev); ok {
		for _, fn := range e.onExit {
			fn(state, side)
		}
	}
	if side, ok := SideOf(next); ok {
		for _, fn := range e.onEnter {
			fn(state, side)
		}
	}
}
