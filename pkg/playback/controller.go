// Package playback implements the frame cursor and autoplay state machine.
//
// The controller lives on the foreground flow. Manual steps and timer ticks
// are both driven from there, so no locking is needed between them.
package playback

import (
	"errors"
	"fmt"
	"time"

	"github.com/user/framestep/pkg/framestore"
	"github.com/user/framestep/pkg/media"
	"github.com/user/framestep/pkg/ports"
)

// Speed is the autoplay multiplier. Zero means stopped.
type Speed int

const (
	Stopped Speed = 0
	Speed1x Speed = 1
	Speed2x Speed = 2
	Speed4x Speed = 4
	Speed8x Speed = 8
)

// ladder is the order changeSpeed cycles through.
var ladder = []Speed{Stopped, Speed1x, Speed2x, Speed4x, Speed8x}

// String returns the label shown in the status line.
func (s Speed) String() string {
	if s == Stopped {
		return "Stopped"
	}
	return fmt.Sprintf("%dx", int(s))
}

func (s Speed) next() Speed {
	for i, v := range ladder {
		if v == s {
			return ladder[(i+1)%len(ladder)]
		}
	}
	return Stopped
}

// maxCatchUp bounds the ticks a single Poll may fire after a stall.
const maxCatchUp = 16

// Controller owns the current frame cursor and the autoplay timer.
type Controller struct {
	cues  ports.CuePlayer
	clock func() time.Time

	store      *framestore.Store
	current    int
	speed      Speed
	remembered Speed

	armed    bool
	deadline time.Time
}

// New creates a stopped controller with no item loaded.
// A nil clock uses time.Now.
func New(cues ports.CuePlayer, clock func() time.Time) *Controller {
	if clock == nil {
		clock = time.Now
	}
	return &Controller{cues: cues, clock: clock}
}

// Load attaches the store of a newly started item and resets the cursor to
// frame 0 in the stopped state.
func (c *Controller) Load(store *framestore.Store) {
	c.Reset()
	c.store = store
}

// Reset detaches the item and returns to the initial state.
func (c *Controller) Reset() {
	c.store = nil
	c.current = 0
	c.speed = Stopped
	c.remembered = Stopped
	c.disarm()
}

// Store returns the attached store, or nil.
func (c *Controller) Store() *framestore.Store { return c.store }

// Current returns the 0-origin frame cursor.
func (c *Controller) Current() int { return c.current }

// Speed returns the autoplay speed.
func (c *Controller) Speed() Speed { return c.speed }

// Playing reports whether autoplay is active.
func (c *Controller) Playing() bool { return c.speed != Stopped }

// SpeedLabel returns the label of the current speed.
func (c *Controller) SpeedLabel() string { return c.speed.String() }

// Snapshot returns the metadata of the attached store.
func (c *Controller) Snapshot() framestore.Snapshot {
	if c.store == nil {
		return framestore.Snapshot{}
	}
	return c.store.Snapshot()
}

// BaseInterval is the display time of one frame at 1x. It is zero while the
// item's frame rate is not known yet.
func (c *Controller) BaseInterval() time.Duration {
	rate := c.Snapshot().FrameRate
	if rate <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / rate)
}

// Period is the timer period at the current speed, or zero when stopped.
func (c *Controller) Period() time.Duration {
	if c.speed == Stopped {
		return 0
	}
	return c.BaseInterval() / time.Duration(c.speed)
}

// ChangeSpeed resumes a remembered speed, or cycles the speed ladder.
// It does nothing while the item has no frames.
func (c *Controller) ChangeSpeed() {
	if c.Snapshot().TotalFrames == 0 {
		return
	}
	if c.speed == Stopped && c.remembered != Stopped {
		c.speed = c.remembered
		c.remembered = Stopped
		c.arm(c.clock())
		return
	}

	c.speed = c.speed.next()
	if c.speed == Stopped {
		c.remembered = Stopped
		c.disarm()
		return
	}
	c.arm(c.clock())
}

// Stop halts autoplay, remembering the speed for the next ChangeSpeed.
func (c *Controller) Stop() {
	if c.speed != Stopped {
		c.remembered = c.speed
		c.speed = Stopped
	}
	c.disarm()
}

// Tick advances the cursor by one frame, wrapping to frame 0 after the last
// declared frame, and re-arms the timer. It reports whether the cursor moved.
func (c *Controller) Tick() bool {
	moved := c.advance()
	if c.Playing() {
		c.arm(c.clock())
	}
	return moved
}

func (c *Controller) advance() bool {
	total := c.Snapshot().TotalFrames
	if total == 0 {
		return false
	}
	prev := c.current
	c.current = (c.current + 1) % total
	if c.current == 0 && prev == total-1 {
		c.play(ports.CueLoopedAround)
	}
	return c.current != prev
}

// StepForward stops autoplay and moves one frame forward. At the last frame
// the cursor stays put and a boundary cue is played.
func (c *Controller) StepForward() bool {
	c.Stop()
	total := c.Snapshot().TotalFrames
	if total == 0 || c.current >= total-1 {
		c.play(ports.CueBoundaryReached)
		return false
	}
	c.current++
	return true
}

// StepBackward stops autoplay and moves one frame back. At frame 0 the
// cursor stays put and a boundary cue is played.
func (c *Controller) StepBackward() bool {
	c.Stop()
	if c.current <= 0 {
		c.play(ports.CueBoundaryReached)
		return false
	}
	c.current--
	return true
}

// Poll fires the ticks that are due at now and returns how many fired.
func (c *Controller) Poll(now time.Time) int {
	if !c.Playing() {
		return 0
	}
	period := c.Period()
	if period <= 0 {
		// Rate not known yet; start counting once it is.
		c.armed = false
		return 0
	}
	if !c.armed {
		c.arm(now)
		return 0
	}

	ticks := 0
	for !now.Before(c.deadline) && ticks < maxCatchUp {
		c.advance()
		c.deadline = c.deadline.Add(period)
		ticks++
	}
	if !now.Before(c.deadline) {
		c.deadline = now.Add(period)
	}
	return ticks
}

// Clamp trims a sealed store to the frames that were actually decoded and
// pulls the cursor back inside it. It is called once the job's terminal
// event has been handled.
func (c *Controller) Clamp() {
	if c.store != nil {
		c.store.Trim()
	}
	total := c.Snapshot().TotalFrames
	if total == 0 {
		c.current = 0
		if c.Playing() {
			c.speed = Stopped
			c.disarm()
		}
		return
	}
	if c.current >= total {
		c.current = total - 1
	}
}

// Frame returns the frame under the cursor, or nil when it is not decoded yet.
func (c *Controller) Frame() (*media.Frame, error) {
	if c.store == nil {
		return nil, framestore.ErrNotYetAvailable
	}
	f, err := c.store.FrameAt(c.current)
	if errors.Is(err, framestore.ErrOutOfRange) && c.Snapshot().TotalFrames == 0 {
		return nil, framestore.ErrNotYetAvailable
	}
	return f, err
}

// Display builds the record for the renderer.
func (c *Controller) Display(fileIndex, fileCount int) ports.Display {
	snap := c.Snapshot()
	return ports.Display{
		FileIndex:    fileIndex,
		FileCount:    fileCount,
		CurrentFrame: c.current,
		TotalFrames:  snap.TotalFrames,
		LoadedFrames: snap.LoadedFrames,
		FrameRate:    snap.FrameRate,
		SpeedLabel:   c.SpeedLabel(),
	}
}

func (c *Controller) arm(now time.Time) {
	period := c.Period()
	if period <= 0 {
		c.armed = false
		return
	}
	c.armed = true
	c.deadline = now.Add(period)
}

func (c *Controller) disarm() {
	c.armed = false
	c.deadline = time.Time{}
}

func (c *Controller) play(cue ports.Cue) {
	if c.cues != nil {
		c.cues.Play(cue)
	}
}
