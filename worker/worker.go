package worker

import (
	"context"
	"fmt"
	"runtime"

	"github.com/getsentry/sentry-go"
	"github.com/oomph-ac/wallrun/oerror"
	"golang.org/x/sync/errgroup"
)

// Job is a unit of CPU bound work, such as simulating one character.
type Job func(ctx context.Context) error

// RunAll runs jobs with at most limit of them in flight. A non-positive limit
// uses the number of CPUs. The first error cancels the context passed to the
// remaining jobs and is returned once every started job has finished. A panic
// inside a job is reported to sentry and returned as an error.
func RunAll(ctx context.Context, limit int, jobs ...Job) error {
	if limit <= 0 {
		limit = runtime.NumCPU()
	}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for index, job := range jobs {
		g.Go(func() (err error) {
			defer func() {
				if v := recover(); v != nil {
					sentry.CurrentHub().Recover(v)
					err = oerror.New("worker: job %d panicked: %v", index, v)
				}
			}()
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := job(ctx); err != nil {
				return fmt.Errorf("worker: job %d: %w", index, err)
			}
			return nil
		})
	}
	return g.Wait()
}
