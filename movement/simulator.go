package movement

import (
	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/elliotchance/orderedmap/v2"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"github.com/oomph-ac/wallrun/assert"
	"github.com/oomph-ac/wallrun/game"
)

// SimulationOptions define simulator behaviour. Distances are in centimetres
// and times in seconds.
type SimulationOptions struct {
	// Gravity is the vertical acceleration applied to airborne characters. It
	// is negative for a downward pull.
	Gravity float64

	MaxSimulationIterations int
	MaxSimulationTimeStep   float64
	MinTickTime             float64

	MaxWalkSpeed    float64
	MaxAcceleration float64
	JumpVelocity    float64
	AirControl      float64
	GroundFriction  float64

	BrakingDecelerationWalking float64
	BrakingDecelerationFalling float64
	BrakingFrictionFactor      float64

	// OrientRotationToMovement turns the character towards its acceleration at
	// RotationRate degrees per second.
	OrientRotationToMovement bool
	RotationRate             float64

	RunPhysicsWithNoController bool

	// Debugf receives internal simulation trace logs for callers that need deep diagnostics.
	Debugf func(format string, args ...any)
}

// DefaultSimulationOptions returns the standard third person character setup.
func DefaultSimulationOptions() SimulationOptions {
	return SimulationOptions{
		Gravity:                    game.DefaultGravity,
		MaxSimulationIterations:    game.DefaultMaxSimulationIterations,
		MaxSimulationTimeStep:      game.DefaultMaxSimulationTimeStep,
		MinTickTime:                game.MinTickTime,
		MaxWalkSpeed:               game.DefaultMaxWalkSpeed,
		MaxAcceleration:            game.DefaultMaxAcceleration,
		JumpVelocity:               game.DefaultJumpVelocity,
		AirControl:                 game.DefaultAirControl,
		GroundFriction:             game.DefaultGroundFriction,
		BrakingDecelerationWalking: game.DefaultBrakingDecelerationWalking,
		BrakingDecelerationFalling: game.DefaultBrakingDecelerationFalling,
		BrakingFrictionFactor:      game.DefaultBrakingFrictionFactor,
		OrientRotationToMovement:   true,
		RotationRate:               game.DefaultRotationRate,
	}
}

// Simulator orchestrates movement simulation using the provided world and the
// registered extensions. A Simulator is not safe for concurrent use, but any
// number of simulators may share one WorldProvider.
type Simulator struct {
	World   WorldProvider
	Options SimulationOptions

	extensions     []Extension
	beforeMovement []BeforeMovementHook
	jumpHooks      []JumpHook
	speedHooks     []MaxSpeedHook

	customPhys map[uint8]CustomPhysFunc
	listeners  *orderedmap.OrderedMap[string, ModeListener]
}

// NewSimulator creates a simulator over world. world may be nil, in which
// case nothing blocks movement and traces never hit.
func NewSimulator(world WorldProvider, opts SimulationOptions) *Simulator {
	return &Simulator{
		World:      world,
		Options:    opts,
		customPhys: make(map[uint8]CustomPhysFunc),
		listeners:  orderedmap.NewOrderedMap[string, ModeListener](),
	}
}

// Register adds an extension and wires every hook interface it implements.
func (s *Simulator) Register(ext Extension) {
	for _, existing := range s.extensions {
		assert.IsTrue(existing.Name() != ext.Name(), "extension %q registered twice", ext.Name())
	}
	s.extensions = append(s.extensions, ext)
	if h, ok := ext.(BeforeMovementHook); ok {
		s.beforeMovement = append(s.beforeMovement, h)
	}
	if h, ok := ext.(JumpHook); ok {
		s.jumpHooks = append(s.jumpHooks, h)
	}
	if h, ok := ext.(MaxSpeedHook); ok {
		s.speedHooks = append(s.speedHooks, h)
	}
	s.Debugf("registered extension %s", ext.Name())
}

// Extensions returns the registered extensions in registration order.
func (s *Simulator) Extensions() []Extension {
	return s.extensions
}

// RegisterCustomMode installs the integrator for custom modes with the given ID.
func (s *Simulator) RegisterCustomMode(id uint8, phys CustomPhysFunc) {
	if s.customPhys == nil {
		s.customPhys = make(map[uint8]CustomPhysFunc)
	}
	_, exists := s.customPhys[id]
	assert.IsTrue(!exists, "custom movement mode %d registered twice", id)
	s.customPhys[id] = phys
}

// AddModeListener registers l and returns an ID that can remove it again.
func (s *Simulator) AddModeListener(l ModeListener) string {
	if s.listeners == nil {
		s.listeners = orderedmap.NewOrderedMap[string, ModeListener]()
	}
	id := uuid.NewString()
	s.listeners.Set(id, l)
	return id
}

func (s *Simulator) RemoveModeListener(id string) bool {
	if s.listeners == nil {
		return false
	}
	return s.listeners.Delete(id)
}

// SetMode switches the character to mode and notifies listeners. Setting the
// mode the character is already in does nothing.
func (s *Simulator) SetMode(state *State, mode Mode) {
	prev := state.Mode
	if prev == mode {
		return
	}
	state.Mode = mode
	s.Debugf("mode %v -> %v at %v", prev, mode, state.Pos)
	if s.listeners == nil {
		return
	}
	for el := s.listeners.Front(); el != nil; el = el.Next() {
		el.Value(state, prev, mode)
	}
}

// CanSimulate reports whether physics may run for the character at all.
func (s *Simulator) CanSimulate(state *State) bool {
	return state.HasController || s.Options.RunPhysicsWithNoController || state.HasForcedMotion
}

// LineTrace traces against the simulator's world, never hitting when there is none.
func (s *Simulator) LineTrace(start, end mgl64.Vec3, params game.QueryParams) game.SurfaceHit {
	if s.World == nil {
		return game.SurfaceHit{}
	}
	return s.World.LineTrace(start, end, params)
}

func (s *Simulator) nearbyBoxes(bb cube.BBox, params game.QueryParams) []cube.BBox {
	if s.World == nil {
		return nil
	}
	return s.World.NearbyBoxes(bb, params)
}

// Debugf forwards to Options.Debugf when set.
func (s *Simulator) Debugf(format string, args ...any) {
	if s.Options.Debugf != nil {
		s.Options.Debugf(format, args...)
	}
}
