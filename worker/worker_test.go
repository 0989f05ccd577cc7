package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/oomph-ac/wallrun/oerror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunAllRespectsLimit(t *testing.T) {
	var running, peak, done atomic.Int32
	jobs := make([]Job, 16)
	for i := range jobs {
		jobs[i] = func(context.Context) error {
			n := running.Add(1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			running.Add(-1)
			done.Add(1)
			return nil
		}
	}
	require.NoError(t, RunAll(context.Background(), 3, jobs...))
	assert.EqualValues(t, 16, done.Load())
	assert.LessOrEqual(t, peak.Load(), int32(3))
}

func TestRunAllReturnsJobError(t *testing.T) {
	errBoom := errors.New("boom")
	err := RunAll(context.Background(), 1,
		func(context.Context) error { return nil },
		func(context.Context) error { return errBoom },
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, errBoom)
}

func TestRunAllRecoversPanics(t *testing.T) {
	err := RunAll(context.Background(), 2, func(context.Context) error {
		panic("bad state")
	})
	require.Error(t, err)
	var oerr *oerror.OomphError
	require.ErrorAs(t, err, &oerr)
	assert.Contains(t, oerr.Error(), "bad state")
}

func TestRunAllCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var ran atomic.Bool
	err := RunAll(ctx, 1, func(context.Context) error {
		ran.Store(true)
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, ran.Load())
}

func TestRunAllNoJobs(t *testing.T) {
	assert.NoError(t, RunAll(context.Background(), 0))
}
