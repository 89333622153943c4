// Package playlist tracks the ordered list of media paths and which one is
// active, and restarts decoding whenever the active item changes.
package playlist

import (
	"context"

	"github.com/user/framestep/pkg/decodejob"
	"github.com/user/framestep/pkg/playback"
	"github.com/user/framestep/pkg/ports"
)

// Navigator owns the playlist and the handle of the active decode job.
// It belongs to the foreground flow and is not safe for concurrent use.
type Navigator struct {
	ctx        context.Context
	runner     *decodejob.Runner
	controller *playback.Controller
	logger     ports.Logger

	paths []string
	index int
}

// New creates a Navigator with an empty playlist. Jobs started by the
// navigator derive from ctx.
func New(ctx context.Context, runner *decodejob.Runner, controller *playback.Controller, logger ports.Logger) *Navigator {
	return &Navigator{
		ctx:        ctx,
		runner:     runner,
		controller: controller,
		logger:     logger,
		index:      -1,
	}
}

// SetPlaylist replaces the playlist and activates startIndex. An out of
// range start index is clamped. An empty playlist stops decoding.
func (n *Navigator) SetPlaylist(paths []string, startIndex int) *decodejob.Job {
	n.paths = append([]string(nil), paths...)
	if len(n.paths) == 0 {
		n.runner.Stop()
		n.controller.Reset()
		n.index = -1
		return nil
	}
	startIndex = min(max(startIndex, 0), len(n.paths)-1)
	return n.activate(startIndex)
}

// Next activates the following item, wrapping to the first.
func (n *Navigator) Next() *decodejob.Job {
	if len(n.paths) == 0 {
		return nil
	}
	return n.activate((n.index + 1) % len(n.paths))
}

// Previous activates the preceding item, wrapping to the last.
func (n *Navigator) Previous() *decodejob.Job {
	if len(n.paths) == 0 {
		return nil
	}
	return n.activate((n.index - 1 + len(n.paths)) % len(n.paths))
}

// Current returns the active path.
func (n *Navigator) Current() (string, bool) {
	if n.index < 0 {
		return "", false
	}
	return n.paths[n.index], true
}

// Index returns the 0-origin active index, or -1 for an empty playlist.
func (n *Navigator) Index() int { return n.index }

// Len returns the number of items.
func (n *Navigator) Len() int { return len(n.paths) }

// Paths returns a copy of the playlist.
func (n *Navigator) Paths() []string {
	return append([]string(nil), n.paths...)
}

// Job returns the active decode job, or nil.
func (n *Navigator) Job() *decodejob.Job {
	return n.runner.Active()
}

// Close cancels and joins the active job.
func (n *Navigator) Close() {
	n.runner.Stop()
}

// activate switches to index. The previous job is cancelled and joined, and
// the controller reset, before the new job starts, so nothing from the old
// item can reach the controller once this returns.
func (n *Navigator) activate(index int) *decodejob.Job {
	n.runner.Stop()
	n.controller.Reset()

	n.index = index
	path := n.paths[index]
	n.logger.Info("Opening %d / %d: %s", index+1, len(n.paths), path)

	job := n.runner.Start(n.ctx, path)
	n.controller.Load(job.Store())
	return job
}
