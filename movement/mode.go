package movement

// Mode is the movement mode a character is simulated in. Implementations must
// be comparable so that mode changes can be detected with ==.
type Mode interface {
	String() string
}

// Walking is the mode of a character standing on a walkable floor.
type Walking struct{}

func (Walking) String() string { return "walking" }

// Falling is the mode of an airborne character.
type Falling struct{}

func (Falling) String() string { return "falling" }

// CustomMode is a mode whose integrator is supplied by an extension through
// Simulator.RegisterCustomMode.
type CustomMode interface {
	Mode
	CustomID() uint8
}

// IsCustom reports whether mode is a custom mode with the given ID.
func IsCustom(mode Mode, id uint8) bool {
	c, ok := mode.(CustomMode)
	return ok && c.CustomID() == id
}
