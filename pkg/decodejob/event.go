package decodejob

import (
	"github.com/google/uuid"

	"github.com/user/framestep/pkg/framestore"
	"github.com/user/framestep/pkg/media"
)

// State is the lifecycle state of a job.
type State int32

const (
	StateRunning State = iota
	StateFinished
	StateCancelled
	StateFailed
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateFinished:
		return "finished"
	case StateCancelled:
		return "cancelled"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Terminal reports whether the job has stopped.
func (s State) Terminal() bool {
	return s != StateRunning
}

// EventKind distinguishes progress from terminal events.
type EventKind int

const (
	// EventProgress is sent once per decoded frame.
	EventProgress EventKind = iota
	// EventComplete is the terminal event of a job that decoded every frame.
	EventComplete
	// EventFailed is the terminal event of a job that stopped on an error.
	EventFailed
)

// Event is a message from the background job to the foreground.
// A cancelled job sends no terminal event; its channel is simply closed.
type Event struct {
	JobID uuid.UUID
	Kind  EventKind

	// NewFrame is the frame appended by this progress event.
	NewFrame     *media.Frame
	LoadedFrames int
	TotalFrames  int
	FrameRate    float64

	// Store is the full frame store, carried by EventComplete only.
	Store *framestore.Store

	// Err is the failure reason, carried by EventFailed only.
	Err error
}
