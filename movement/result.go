package movement

import "github.com/go-gl/mathgl/mgl64"

// SimulationOutcome describes which path the simulator took for the current tick.
type SimulationOutcome uint8

const (
	SimulationOutcomeNormal SimulationOutcome = iota
	// SimulationOutcomeSkipped is returned when the tick was too short to simulate.
	SimulationOutcomeSkipped
	// SimulationOutcomeNoController is returned when the character may not be
	// simulated and its motion was cleared.
	SimulationOutcomeNoController
)

func (o SimulationOutcome) String() string {
	switch o {
	case SimulationOutcomeNormal:
		return "normal"
	case SimulationOutcomeSkipped:
		return "skipped"
	case SimulationOutcomeNoController:
		return "no_controller"
	}
	return "unknown"
}

// SimulationResult captures the outcome of a single simulation tick.
type SimulationResult struct {
	Position mgl64.Vec3
	Velocity mgl64.Vec3
	Yaw      float64

	PositionDelta mgl64.Vec3

	Mode        Mode
	ModeChanged bool
	Jumped      bool

	Outcome SimulationOutcome
}

func (s *Simulator) resultFromState(state *State, prev Mode, outcome SimulationOutcome) SimulationResult {
	return SimulationResult{
		Position:      state.Pos,
		Velocity:      state.Vel,
		Yaw:           state.Yaw,
		PositionDelta: state.Pos.Sub(state.LastPos),
		Mode:          state.Mode,
		ModeChanged:   state.Mode != prev,
		Jumped:        state.Jumped,
		Outcome:       outcome,
	}
}
