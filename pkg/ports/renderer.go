package ports

import (
	"image"

	"github.com/user/framestep/pkg/media"
)

// Display is the record the rendering side needs to draw one state of the player.
type Display struct {
	FileIndex    int // 0-origin, -1 when the playlist is empty
	FileCount    int
	CurrentFrame int // 0-origin
	TotalFrames  int
	LoadedFrames int
	FrameRate    float64
	SpeedLabel   string
}

// View is pushed to the renderer on every state change.
type View struct {
	// Frame is the frame to show. Nil means a placeholder must be shown instead.
	Frame      *media.Frame
	FrameIndex int
	Display    Display
	StatusLine string
	Title      string
}

// Placeholder reports whether the view has no decoded frame to show.
func (v View) Placeholder() bool {
	return v.Frame == nil
}

// Renderer receives views from the core. It never pushes state back.
type Renderer interface {
	Present(view View)
}

// PlaceholderPainter draws the substitute image shown for frames not yet decoded.
type PlaceholderPainter interface {
	Paint(width, height int, d Display) image.Image
}
