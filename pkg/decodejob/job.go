// Package decodejob runs the background task that decodes one media item into
// a frame store while publishing progress events to the foreground.
package decodejob

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/user/framestep/pkg/framestore"
	"github.com/user/framestep/pkg/media"
	"github.com/user/framestep/pkg/ports"
)

// DefaultMaxFrames is the frame-count ceiling used when Options.MaxFrames is zero.
const DefaultMaxFrames = 5000

// Options configures a decode job. Values are fixed for the lifetime of the job.
type Options struct {
	// MaxFrames is the frame-count ceiling (default: 5000).
	MaxFrames int
	// DefaultFrameRate is used when a container reports no rate (default: 30).
	DefaultFrameRate float64
	// DefaultFrameDurationMs is used when an animated image has no first-frame duration (default: 100).
	DefaultFrameDurationMs int
	// EventBuffer is the capacity of the event channel (default: 64).
	EventBuffer int
}

// DefaultOptions returns Options with default values.
func DefaultOptions() Options {
	return Options{
		MaxFrames:              DefaultMaxFrames,
		DefaultFrameRate:       30.0,
		DefaultFrameDurationMs: 100,
		EventBuffer:            64,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.MaxFrames <= 0 {
		o.MaxFrames = d.MaxFrames
	}
	if o.DefaultFrameRate <= 0 {
		o.DefaultFrameRate = d.DefaultFrameRate
	}
	if o.DefaultFrameDurationMs <= 0 {
		o.DefaultFrameDurationMs = d.DefaultFrameDurationMs
	}
	if o.EventBuffer <= 0 {
		o.EventBuffer = d.EventBuffer
	}
	return o
}

// Job is the handle of one background decode.
//
// Events must be drained by the owner until the channel is closed, or the job
// must be cancelled; a full event channel blocks the decode loop.
type Job struct {
	id     uuid.UUID
	path   string
	kind   media.Kind
	store  *framestore.Store
	events chan Event
	cancel context.CancelFunc
	done   chan struct{}
	state  atomic.Int32
	err    error // written before done is closed

	factory ports.DecoderFactory
	opts    Options
	logger  ports.Logger
}

// Start launches a decode of path and returns its handle immediately.
func Start(ctx context.Context, path string, factory ports.DecoderFactory, opts Options, logger ports.Logger) *Job {
	opts = opts.withDefaults()
	ctx, cancel := context.WithCancel(ctx)

	j := &Job{
		id:      uuid.New(),
		path:    path,
		kind:    media.Classify(path),
		store:   framestore.New(),
		events:  make(chan Event, opts.EventBuffer),
		cancel:  cancel,
		done:    make(chan struct{}),
		factory: factory,
		opts:    opts,
		logger:  logger,
	}
	j.state.Store(int32(StateRunning))

	go j.run(ctx)
	return j
}

// ID returns the unique handle of the job.
func (j *Job) ID() uuid.UUID { return j.id }

// Path returns the media path being decoded.
func (j *Job) Path() string { return j.path }

// Kind returns the media kind derived from the path.
func (j *Job) Kind() media.Kind { return j.kind }

// Store returns the frame store the job writes into.
func (j *Job) Store() *framestore.Store { return j.store }

// Events returns the progress channel. It is closed after the last event.
func (j *Job) Events() <-chan Event { return j.events }

// Done is closed once the decoder has been released.
func (j *Job) Done() <-chan struct{} { return j.done }

// State returns the current lifecycle state.
func (j *Job) State() State { return State(j.state.Load()) }

// Err returns the failure reason after the job has stopped. Cancelled jobs
// report context.Canceled; finished jobs report nil.
func (j *Job) Err() error {
	select {
	case <-j.done:
		return j.err
	default:
		return nil
	}
}

// Cancel requests cancellation. It does not block and is safe to call repeatedly.
func (j *Job) Cancel() {
	j.cancel()
}

// Wait blocks until the background task has stopped and closed its decoder.
func (j *Job) Wait() {
	<-j.done
}

func (j *Job) run(ctx context.Context) {
	defer close(j.done)
	defer close(j.events)
	defer j.cancel()

	err := j.decode(ctx)
	snap := j.store.Snapshot()
	switch {
	case ctx.Err() != nil:
		// A cancel requested while running wins over a stream that ended meanwhile.
		j.finish(StateCancelled, context.Canceled)
		j.logger.Debug("Decode cancelled: %s", j.path)
	case err == nil:
		j.finish(StateFinished, nil)
		j.logger.Info("Loaded %d frames from %s", snap.LoadedFrames, j.path)
		j.send(ctx, Event{
			JobID:        j.id,
			Kind:         EventComplete,
			Store:        j.store,
			LoadedFrames: snap.LoadedFrames,
			TotalFrames:  snap.TotalFrames,
			FrameRate:    snap.FrameRate,
		})
	default:
		j.finish(StateFailed, err)
		j.logger.Warn("Decode failed: %s", err)
		j.send(ctx, Event{
			JobID:        j.id,
			Kind:         EventFailed,
			Err:          err,
			LoadedFrames: snap.LoadedFrames,
			TotalFrames:  snap.TotalFrames,
			FrameRate:    snap.FrameRate,
		})
	}
}

func (j *Job) finish(state State, err error) {
	j.err = err
	j.state.Store(int32(state))
}

// decode drives the decoder. A nil return means the stream completed.
func (j *Job) decode(ctx context.Context) (err error) {
	if j.kind == media.KindUnknown {
		return fmt.Errorf("%w: %s", media.ErrUnsupportedFormat, j.path)
	}

	dec, err := j.factory.NewDecoder(j.kind)
	if err != nil {
		return &media.DecodeError{Path: j.path, Err: err}
	}
	defer func() {
		if cerr := dec.Close(); cerr != nil && err == nil && ctx.Err() == nil {
			err = &media.DecodeError{Path: j.path, Err: cerr}
		}
	}()

	j.logger.Debug("Opening %s (%s)", j.path, j.kind)
	info, err := dec.Open(ctx, j.path)
	if err != nil {
		if errors.Is(err, media.ErrUnsupportedFormat) {
			return err
		}
		return &media.DecodeError{Path: j.path, Err: err}
	}

	if info.FrameCount > j.opts.MaxFrames {
		j.store.Discard()
		return &media.TooManyFramesError{Count: info.FrameCount, Limit: j.opts.MaxFrames}
	}

	rate := j.frameRate(info)
	j.store.Begin(info.FrameCount, rate)
	j.logger.Debug("%s: %d frames at %.2f fps", j.path, info.FrameCount, rate)

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		frame, err := dec.NextFrame()
		if errors.Is(err, io.EOF) {
			break
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err != nil {
			j.store.Seal()
			return &media.DecodeError{Path: j.path, Err: err}
		}

		if j.store.Snapshot().LoadedFrames >= j.opts.MaxFrames {
			// Nothing of an oversized item is kept.
			j.store.Discard()
			return &media.TooManyFramesError{Count: j.opts.MaxFrames + 1, Limit: j.opts.MaxFrames}
		}

		loaded := j.store.Append(frame)
		snap := j.store.Snapshot()
		if !j.send(ctx, Event{
			JobID:        j.id,
			Kind:         EventProgress,
			NewFrame:     frame,
			LoadedFrames: loaded,
			TotalFrames:  snap.TotalFrames,
			FrameRate:    snap.FrameRate,
		}) {
			return ctx.Err()
		}
	}

	if ctx.Err() != nil {
		return ctx.Err()
	}
	j.store.Seal()
	return nil
}

// frameRate picks the single fixed playback rate for the item. Per-frame
// timing of animated images is intentionally not preserved.
func (j *Job) frameRate(info media.Info) float64 {
	switch j.kind {
	case media.KindVideo:
		if info.NominalRate > 0 {
			return info.NominalRate
		}
	case media.KindAnimatedImage:
		d := info.FirstFrameDurationMs
		if d <= 0 {
			d = j.opts.DefaultFrameDurationMs
		}
		return 1000.0 / float64(d)
	}
	return j.opts.DefaultFrameRate
}

// send delivers an event unless the job is cancelled first.
func (j *Job) send(ctx context.Context, ev Event) bool {
	if ctx.Err() != nil {
		return false
	}
	select {
	case j.events <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}
