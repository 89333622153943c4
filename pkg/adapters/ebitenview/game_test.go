//go:build !headless

package ebitenview

import (
	"testing"
	"testing/fstest"
	"time"

	"github.com/user/framestep/pkg/adapters/logger"
	"github.com/user/framestep/pkg/media"
	"github.com/user/framestep/pkg/ports"
)

// controls records the session calls made by the window.
type controls struct {
	calls   []string
	dropped [][]string
	updates int
}

func (c *controls) Drop(inputs []string) bool {
	c.dropped = append(c.dropped, inputs)
	return true
}
func (c *controls) Next() { c.calls = append(c.calls, "next") }
func (c *controls) Previous() { c.calls = append(c.calls, "previous") }
func (c *controls) StepForward() { c.calls = append(c.calls, "step-forward") }
func (c *controls) StepBackward() { c.calls = append(c.calls, "step-backward") }
func (c *controls) ChangeSpeed() { c.calls = append(c.calls, "change-speed") }
func (c *controls) TogglePlay() { c.calls = append(c.calls, "toggle-play") }
func (c *controls) Export() (string, error) {
	c.calls = append(c.calls, "export")
	return "out.png", nil
}
func (c *controls) CopyFrame() error {
	c.calls = append(c.calls, "copy")
	return nil
}
func (c *controls) Redraw() { c.calls = append(c.calls, "redraw") }
func (c *controls) Update(now time.Time) bool {
	c.updates++
	return false
}

func newGame(c *controls) *Game {
	g := New(Options{Width: 640, Height: 480, Logger: logger.NewNoop()})
	g.Attach(c)
	return g
}

func TestDispatch(t *testing.T) {
	tests := []struct {
		action Action
		want   string
	}{
		{ActionTogglePlay, "toggle-play"},
		{ActionChangeSpeed, "change-speed"},
		{ActionStepBackward, "step-backward"},
		{ActionStepForward, "step-forward"},
		{ActionPrevious, "previous"},
		{ActionNext, "next"},
		{ActionSave, "export"},
		{ActionCopy, "copy"},
	}

	for _, tt := range tests {
		t.Run(tt.action.String(), func(t *testing.T) {
			c := &controls{}
			g := newGame(c)
			g.dispatch(tt.action)
			if len(c.calls) != 1 || c.calls[0] != tt.want {
				t.Errorf("expected [%s], got %v", tt.want, c.calls)
			}
		})
	}
}

func TestDispatch_FitIsDeferred(t *testing.T) {
	c := &controls{}
	g := newGame(c)

	g.dispatch(ActionFit)
	if !g.pendingFit {
		t.Error("expected fit to be scheduled for the next update")
	}
	if len(c.calls) != 0 {
		t.Errorf("fit must not call the session, got %v", c.calls)
	}
}

func TestKeyBindings_CoverEveryAction(t *testing.T) {
	bound := make(map[Action]int)
	for _, b := range keyBindings {
		bound[b.action]++
	}
	for a := ActionTogglePlay; a <= ActionFit; a++ {
		if bound[a] == 0 {
			t.Errorf("action %s has no key", a)
		}
	}
}

func TestRepeating(t *testing.T) {
	tests := []struct {
		ticks int
		want  bool
	}{
		{0, false},
		{1, true},
		{2, false},
		{repeatDelay - 1, false},
		{repeatDelay, true},
		{repeatDelay + 1, false},
		{repeatDelay + repeatInterval, true},
	}

	for _, tt := range tests {
		if got := repeating(tt.ticks); got != tt.want {
			t.Errorf("repeating(%d) = %v, want %v", tt.ticks, got, tt.want)
		}
	}
}

func TestWheelAction(t *testing.T) {
	if got := wheelAction(1); got != ActionStepBackward {
		t.Errorf("wheel up: got %s", got)
	}
	if got := wheelAction(-0.5); got != ActionStepForward {
		t.Errorf("wheel down: got %s", got)
	}
	if got := wheelAction(0); got != ActionNone {
		t.Errorf("no wheel: got %s", got)
	}
}

func TestFit(t *testing.T) {
	tests := []struct {
		name                   string
		srcW, srcH, dstW, dstH int
		scale, offX, offY      float64
	}{
		{"same size", 100, 50, 100, 50, 1, 0, 0},
		{"pillarbox", 100, 100, 200, 100, 1, 50, 0},
		{"letterbox", 200, 100, 200, 200, 1, 0, 50},
		{"shrink", 400, 200, 200, 200, 0.5, 0, 50},
		{"empty source", 0, 0, 200, 200, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scale, offX, offY := fit(tt.srcW, tt.srcH, tt.dstW, tt.dstH)
			if scale != tt.scale || offX != tt.offX || offY != tt.offY {
				t.Errorf("fit = (%v, %v, %v), want (%v, %v, %v)", scale, offX, offY, tt.scale, tt.offX, tt.offY)
			}
		})
	}
}

func TestDroppedPaths(t *testing.T) {
	fsys := fstest.MapFS{
		"b.webp":      {Data: []byte("x")},
		"a.mp4":       {Data: []byte("x")},
		"clips/c.mp4": {Data: []byte("x")},
	}

	got := droppedPaths(fsys)
	want := []string{"a.mp4", "b.webp", "clips"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("path %d: expected %s, got %s", i, want[i], got[i])
		}
	}

	if droppedPaths(nil) != nil {
		t.Error("nil FS must yield no paths")
	}
}

func TestPresent(t *testing.T) {
	g := newGame(&controls{})

	view := ports.View{
		Frame:      &media.Frame{Width: 2, Height: 2, Pix: make([]uint8, 12)},
		StatusLine: "status",
		Title:      "/clips/a.mp4",
	}
	g.Present(view)

	if got := g.View(); got.StatusLine != "status" || got.Frame != view.Frame {
		t.Errorf("unexpected stored view: %+v", got)
	}
	if g.title != "/clips/a.mp4" {
		t.Errorf("expected title to follow the path, got %q", g.title)
	}

	g.Present(ports.View{})
	if g.title != appTitle {
		t.Errorf("expected %q when idle, got %q", appTitle, g.title)
	}
}

func TestLayout_RedrawsOnResize(t *testing.T) {
	c := &controls{}
	g := newGame(c)

	if w, h := g.Layout(640, 480); w != 640 || h != 480 {
		t.Errorf("expected 640x480, got %dx%d", w, h)
	}
	if len(c.calls) != 0 {
		t.Errorf("unchanged size must not redraw, got %v", c.calls)
	}

	g.Layout(800, 600)
	if len(c.calls) != 1 || c.calls[0] != "redraw" {
		t.Errorf("expected one redraw, got %v", c.calls)
	}
	if w, h := g.Size(); w != 800 || h != 600 {
		t.Errorf("expected size 800x600, got %dx%d", w, h)
	}
}

func TestRun_RequiresSession(t *testing.T) {
	g := New(Options{Logger: logger.NewNoop()})
	if err := g.Run(); err == nil {
		t.Error("expected error without an attached session")
	}
}
