package assert

import "github.com/oomph-ac/wallrun/oerror"

// IsTrue panics with an *oerror.OomphError when ok is false. It guards
// programming errors, never runtime input.
func IsTrue(ok bool, message string, args ...any) {
	if !ok {
		panic(oerror.New(message, args...))
	}
}
