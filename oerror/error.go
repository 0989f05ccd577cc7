package oerror

import "fmt"

// OomphError is the error type used throughout the simulator. Sentinels are
// compared by identity, so wrap them with fmt.Errorf("%w") to add context.
type OomphError struct {
	Err string
}

func New(format string, args ...any) *OomphError {
	if len(args) == 0 {
		return &OomphError{Err: format}
	}
	return &OomphError{Err: fmt.Sprintf(format, args...)}
}

func (e *OomphError) Error() string {
	return e.Err
}

var (
	ErrUnknownFormat     = New("unknown configuration format")
	ErrInvalidConfig     = New("invalid configuration")
	ErrInvalidScenario   = New("invalid scenario")
	ErrUnknownMode       = New("unknown movement mode")
	ErrOutOfRange        = New("index out of range")
	ErrZeroCapacityQueue = New("append on zero-capacity queue")
)
