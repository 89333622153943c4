// Package framestore holds the progressively growing, append-only sequence of
// decoded frames for the media item currently loading or loaded.
//
// A Store has exactly one writer (the decode job) and any number of readers.
// Every mutation publishes a new immutable state through an atomic pointer, so
// a reader that observes LoadedFrames == n is guaranteed to see frames 0..n-1.
// Readers never block the writer and the writer never waits for readers.
// Once the writer has sealed the store, the foreground may Trim it.
package framestore

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/user/framestep/pkg/media"
)

var (
	// ErrNotYetAvailable is returned for an index that is inside the item but not decoded yet.
	// It is an expected transient state while loading; callers show a placeholder.
	ErrNotYetAvailable = errors.New("framestore: frame not yet available")

	// ErrOutOfRange is returned for an index outside [0, TotalFrames). It indicates a caller bug.
	ErrOutOfRange = errors.New("framestore: frame index out of range")
)

// Snapshot is a consistent view of the store metadata.
type Snapshot struct {
	LoadedFrames int
	TotalFrames  int
	FrameRate    float64
	// Sealed is set once no more frames will be appended.
	Sealed bool
}

// Complete reports whether every declared frame has been decoded.
func (s Snapshot) Complete() bool {
	return s.Sealed && s.LoadedFrames == s.TotalFrames
}

// state is never modified after it has been published.
type state struct {
	frames []*media.Frame
	total  int
	rate   float64
	sealed bool
}

// Store is the frame buffer of one media item.
type Store struct {
	cur atomic.Pointer[state]
}

// New creates an empty store with no declared frames.
func New() *Store {
	s := &Store{}
	s.cur.Store(&state{})
	return s
}

// Begin declares the item metadata. It must be called by the writer before
// the first Append. A total of zero means the count is discovered while decoding.
func (s *Store) Begin(total int, rate float64) {
	prev := s.cur.Load()
	next := *prev
	next.total = max(total, len(prev.frames))
	next.rate = rate
	s.cur.Store(&next)
}

// Append adds the next decoded frame and returns the new loaded count.
// The frame is published together with the count.
func (s *Store) Append(f *media.Frame) int {
	prev := s.cur.Load()
	next := *prev
	// Only the writer appends, and it always extends the latest slice, so
	// entries visible through an older state are never overwritten.
	next.frames = append(prev.frames, f)
	next.total = max(prev.total, len(next.frames))
	s.cur.Store(&next)
	return len(next.frames)
}

// Seal marks the end of the stream. The declared total is kept, so frames
// that were promised but never decoded stay ErrNotYetAvailable until the
// owner calls Trim.
func (s *Store) Seal() {
	prev := s.cur.Load()
	next := *prev
	next.sealed = true
	s.cur.Store(&next)
}

// Discard seals the store with every frame dropped. Readers that already
// hold a frame keep it; the store itself no longer reports any.
func (s *Store) Discard() {
	prev := s.cur.Load()
	s.cur.Store(&state{rate: prev.rate, sealed: true})
}

// Trim shrinks the total of a sealed store to the frames that were decoded
// and reports whether it changed. It is a no-op until the writer has sealed
// the store. Only the owner of the playback cursor calls it, after handling
// the job's terminal event.
func (s *Store) Trim() bool {
	prev := s.cur.Load()
	if !prev.sealed || prev.total == len(prev.frames) {
		return false
	}
	next := *prev
	next.total = len(prev.frames)
	s.cur.Store(&next)
	return true
}

// FrameAt returns the frame at index i.
func (s *Store) FrameAt(i int) (*media.Frame, error) {
	st := s.cur.Load()
	if i < 0 || i >= st.total {
		return nil, fmt.Errorf("%w: %d not in [0, %d)", ErrOutOfRange, i, st.total)
	}
	if i >= len(st.frames) {
		return nil, ErrNotYetAvailable
	}
	return st.frames[i], nil
}

// Snapshot returns the current metadata.
func (s *Store) Snapshot() Snapshot {
	st := s.cur.Load()
	return Snapshot{
		LoadedFrames: len(st.frames),
		TotalFrames:  st.total,
		FrameRate:    st.rate,
		Sealed:       st.sealed,
	}
}
