package scenario

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/wallrun/movement"
	"github.com/oomph-ac/wallrun/oerror"
	"github.com/oomph-ac/wallrun/wallrun"
	"github.com/oomph-ac/wallrun/world"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultScenario []byte

// Scenario describes a static world, a character spawned into it and the input
// the character receives over time.
type Scenario struct {
	Name string `yaml:"name"`
	// TickRate is the number of frames per second. Zero uses the runner's rate.
	TickRate float64 `yaml:"tick_rate"`
	Ticks    int     `yaml:"ticks"`

	Boxes     []Box     `yaml:"boxes"`
	Character Character `yaml:"character"`
	// Inputs are sorted by tick. Each input is held until the next one, except
	// for Jump which is only pressed on its own tick.
	Inputs []Input `yaml:"inputs"`
}

type Box struct {
	Actor uint64    `yaml:"actor"`
	Min   []float64 `yaml:"min"`
	Max   []float64 `yaml:"max"`
}

type Character struct {
	Actor        uint64    `yaml:"actor"`
	IgnoreActors []uint64  `yaml:"ignore_actors"`
	Position     []float64 `yaml:"position"`
	Velocity     []float64 `yaml:"velocity"`
	Yaw          float64   `yaml:"yaw"`
	// Mode is one of walking, falling, wall_running_left or wall_running_right.
	// It defaults to falling.
	Mode string `yaml:"mode"`
}

type Input struct {
	Tick int       `yaml:"tick"`
	Move []float64 `yaml:"move"`
	Yaw  float64   `yaml:"yaw"`
	Jump bool      `yaml:"jump"`
}

// Default returns the built in scenario.
func Default() *Scenario {
	s, err := Load(defaultScenario)
	if err != nil {
		panic(fmt.Errorf("scenario: built in scenario: %w", err))
	}
	return s
}

// LoadFile reads and validates the scenario at path.
func LoadFile(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scenario: %w", err)
	}
	s, err := Load(data)
	if err != nil {
		return nil, fmt.Errorf("scenario: %s: %w", path, err)
	}
	return s, nil
}

// Load decodes and validates a YAML scenario. Unknown fields are rejected.
func Load(data []byte) (*Scenario, error) {
	s := &Scenario{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(s); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, invalid("empty scenario")
		}
		return nil, fmt.Errorf("%w: %w", oerror.ErrInvalidScenario, err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate returns an error wrapping oerror.ErrInvalidScenario for the first
// problem found.
func (s *Scenario) Validate() error {
	if s.TickRate < 0 {
		return invalid("tick_rate must not be negative, got %v", s.TickRate)
	}
	if s.Ticks <= 0 {
		return invalid("ticks must be positive, got %d", s.Ticks)
	}
	for i, b := range s.Boxes {
		if len(b.Min) != 3 || len(b.Max) != 3 {
			return invalid("boxes[%d]: min and max need three components", i)
		}
	}
	c := s.Character
	if len(c.Position) != 3 {
		return invalid("character.position needs three components")
	}
	if c.Velocity != nil && len(c.Velocity) != 3 {
		return invalid("character.velocity needs three components")
	}
	if _, err := parseMode(c.Mode); err != nil {
		return err
	}
	for i, in := range s.Inputs {
		if in.Tick < 0 {
			return invalid("inputs[%d]: tick must not be negative", i)
		}
		if i > 0 && in.Tick <= s.Inputs[i-1].Tick {
			return invalid("inputs[%d]: ticks must be strictly increasing", i)
		}
		if in.Move != nil && len(in.Move) != 2 {
			return invalid("inputs[%d]: move needs two components", i)
		}
	}
	return nil
}

// Build creates the world described by the scenario and the character's
// initial state.
func (s *Scenario) Build(capsule movement.Capsule, log *zap.Logger) (*world.World, *movement.State) {
	w := world.New(0, log)
	for _, b := range s.Boxes {
		w.AddBox(b.Actor, cube.Box(b.Min[0], b.Min[1], b.Min[2], b.Max[0], b.Max[1], b.Max[2]))
	}

	c := s.Character
	state := movement.NewState(vec3(c.Position), capsule)
	if c.Velocity != nil {
		state.Vel = vec3(c.Velocity)
		state.LastVel = state.Vel
	}
	state.Yaw = c.Yaw
	state.ActorID = c.Actor
	state.IgnoreActors = c.IgnoreActors
	// Validate has already rejected unknown modes.
	state.Mode, _ = parseMode(c.Mode)
	return w, state
}

// InputAt returns the input held on the given tick.
func (s *Scenario) InputAt(tick int) movement.InputState {
	var (
		in    movement.InputState
		found bool
	)
	for _, step := range s.Inputs {
		if step.Tick > tick {
			break
		}
		found = true
		in = movement.InputState{Yaw: step.Yaw, Jump: step.Jump && step.Tick == tick}
		if step.Move != nil {
			in.MoveVector = mgl64.Vec2{step.Move[0], step.Move[1]}
		}
	}
	if !found {
		in.Yaw = s.Character.Yaw
	}
	return in
}

func parseMode(name string) (movement.Mode, error) {
	switch name {
	case "", "falling":
		return movement.Falling{}, nil
	case "walking":
		return movement.Walking{}, nil
	case "wall_running_left":
		return wallrun.WallRunning{Side: wallrun.SideLeft}, nil
	case "wall_running_right":
		return wallrun.WallRunning{Side: wallrun.SideRight}, nil
	}
	return nil, fmt.Errorf("%w: character.mode %q: %w", oerror.ErrInvalidScenario, name, oerror.ErrUnknownMode)
}

func vec3(v []float64) mgl64.Vec3 {
	return mgl64.Vec3{v[0], v[1], v[2]}
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", oerror.ErrInvalidScenario, fmt.Sprintf(format, args...))
}
