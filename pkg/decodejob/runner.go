package decodejob

import (
	"context"

	"github.com/user/framestep/pkg/ports"
)

// Runner guarantees that at most one job is running. Starting a job cancels
// and joins the previous one first, so two decoders are never open together
// and no two jobs ever write into state the foreground reads.
//
// A Runner belongs to the foreground and is not safe for concurrent use.
type Runner struct {
	factory ports.DecoderFactory
	opts    Options
	logger  ports.Logger
	active  *Job
}

// NewRunner creates a Runner.
func NewRunner(factory ports.DecoderFactory, opts Options, logger ports.Logger) *Runner {
	return &Runner{
		factory: factory,
		opts:    opts.withDefaults(),
		logger:  logger,
	}
}

// Start stops the active job, if any, and starts a new one for path.
func (r *Runner) Start(ctx context.Context, path string) *Job {
	r.Stop()
	r.active = Start(ctx, path, r.factory, r.opts, r.logger)
	return r.active
}

// Stop cancels the active job and waits for it to release its decoder.
func (r *Runner) Stop() {
	if r.active == nil {
		return
	}
	r.active.Cancel()
	r.active.Wait()
	r.active = nil
}

// Active returns the running or last started job, or nil.
func (r *Runner) Active() *Job {
	return r.active
}

// Options returns the effective job options.
func (r *Runner) Options() Options {
	return r.opts
}
