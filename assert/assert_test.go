package assert

import (
	"testing"

	"github.com/oomph-ac/wallrun/oerror"
	"github.com/stretchr/testify/require"
)

func TestIsTrue(t *testing.T) {
	require.NotPanics(t, func() { IsTrue(true, "never") })

	defer func() {
		r := recover()
		err, ok := r.(*oerror.OomphError)
		require.True(t, ok, "expected *oerror.OomphError, got %T", r)
		require.Equal(t, "mode 7 not registered", err.Error())
	}()
	IsTrue(false, "mode %d not registered", 7)
}
