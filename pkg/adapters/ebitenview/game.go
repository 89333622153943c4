// Package ebitenview hosts the viewer window: it draws the views pushed by
// the session, turns keys, mouse and dropped files into session calls, and
// drives the autoplay timer from the game loop.
package ebitenview

import (
	"errors"
	"image"
	"image/color"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"

	"github.com/user/framestep/pkg/ports"
)

// Controls is the part of the session the window drives.
type Controls interface {
	Drop(inputs []string) bool
	Next()
	Previous()
	StepForward()
	StepBackward()
	ChangeSpeed()
	TogglePlay()
	Export() (string, error)
	CopyFrame() error
	Redraw()
	Update(now time.Time) bool
}

// Options configures the window.
type Options struct {
	Width      int
	Height     int
	Background color.Color
	StatusBar  color.Color
	Text       color.Color
	Painter    ports.PlaceholderPainter
	Logger     ports.Logger
	// Clock defaults to time.Now.
	Clock func() time.Time
}

const (
	appTitle        = "framestep"
	statusBarHeight = 20
)

// Game implements ebiten.Game and ports.Renderer.
type Game struct {
	opts     Options
	controls Controls
	logger   ports.Logger

	mu    sync.Mutex
	view  ports.View
	title string

	shownTitle string

	width  int
	height int

	frame      *ebiten.Image
	frameSrc   any
	holder     *ebiten.Image
	holderSrc  image.Image
	pendingFit bool
}

// New creates the window host. Attach must be called before Run.
func New(opts Options) *Game {
	if opts.Width <= 0 {
		opts.Width = 800
	}
	if opts.Height <= 0 {
		opts.Height = 600
	}
	if opts.Background == nil {
		opts.Background = color.RGBA{R: 0x1a, G: 0x1a, B: 0x2e, A: 255}
	}
	if opts.StatusBar == nil {
		opts.StatusBar = color.RGBA{A: 180}
	}
	if opts.Text == nil {
		opts.Text = color.White
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	return &Game{
		opts:   opts,
		logger: opts.Logger.WithComponent("window"),
		width:  opts.Width,
		height: opts.Height,
		title:  appTitle,
	}
}

// Attach connects the session the window drives.
func (g *Game) Attach(c Controls) {
	g.controls = c
}

// Present stores the view drawn by the next Draw.
func (g *Game) Present(view ports.View) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.view = view
	g.title = windowTitle(view.Title)
}

// View returns the last presented view.
func (g *Game) View() ports.View {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.view
}

// Size returns the current window size in device-independent pixels.
func (g *Game) Size() (int, int) {
	return g.width, g.height
}

// Run opens the window and blocks until it is closed.
func (g *Game) Run() error {
	if g.controls == nil {
		return errors.New("ebitenview: no session attached")
	}
	ebiten.SetWindowSize(g.opts.Width, g.opts.Height)
	ebiten.SetWindowTitle(g.title)
	g.shownTitle = g.title
	ebiten.SetWindowResizable(true)
	ebiten.SetWindowClosingHandled(true)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

// Update handles input and advances playback.
func (g *Game) Update() error {
	if ebiten.IsWindowBeingClosed() {
		return ebiten.Termination
	}

	if paths := droppedPaths(ebiten.DroppedFiles()); len(paths) > 0 {
		g.logger.Debug("Dropped %d entries", len(paths))
		g.controls.Drop(paths)
	}
	for _, action := range pollActions() {
		g.dispatch(action)
	}
	g.controls.Update(g.opts.Clock())

	g.mu.Lock()
	title := g.title
	g.mu.Unlock()
	if title != g.shownTitle {
		ebiten.SetWindowTitle(title)
		g.shownTitle = title
	}

	if g.pendingFit {
		g.pendingFit = false
		g.fitWindow()
	}
	return nil
}

// dispatch forwards one action to the session.
func (g *Game) dispatch(action Action) {
	switch action {
	case ActionTogglePlay:
		g.controls.TogglePlay()
	case ActionChangeSpeed:
		g.controls.ChangeSpeed()
	case ActionStepBackward:
		g.controls.StepBackward()
	case ActionStepForward:
		g.controls.StepForward()
	case ActionPrevious:
		g.controls.Previous()
	case ActionNext:
		g.controls.Next()
	case ActionSave:
		// The session reports the outcome on the status line.
		if _, err := g.controls.Export(); err != nil {
			g.logger.Debug("Save ignored: %s", err)
		}
	case ActionCopy:
		if err := g.controls.CopyFrame(); err != nil {
			g.logger.Debug("Copy ignored: %s", err)
		}
	case ActionFit:
		g.pendingFit = true
	}
}

// fitWindow resizes the window to the frame size plus the status bar.
func (g *Game) fitWindow() {
	view := g.View()
	if view.Frame == nil {
		return
	}
	w, h := view.Frame.Width, view.Frame.Height+statusBarHeight
	g.logger.Debug("Fitting window to %dx%d", w, h)
	ebiten.SetWindowSize(w, h)
}

// Draw renders the current frame or placeholder and the status line.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.opts.Background)
	view := g.View()

	areaW, areaH := g.width, g.height-statusBarHeight
	if areaH > 0 {
		if view.Frame != nil {
			g.drawFrame(screen, view, areaW, areaH)
		} else if view.Display.FileIndex >= 0 && g.opts.Painter != nil {
			g.drawPlaceholder(screen, view.Display, areaW, areaH)
		}
	}
	g.drawStatus(screen, view.StatusLine)
}

func (g *Game) drawFrame(screen *ebiten.Image, view ports.View, areaW, areaH int) {
	if g.frameSrc != view.Frame {
		if g.frame != nil {
			g.frame.Deallocate()
		}
		g.frame = ebiten.NewImageFromImage(view.Frame.Image())
		g.frameSrc = view.Frame
	}

	scale, offX, offY := fit(view.Frame.Width, view.Frame.Height, areaW, areaH)
	opts := &ebiten.DrawImageOptions{Filter: ebiten.FilterLinear}
	opts.GeoM.Scale(scale, scale)
	opts.GeoM.Translate(offX, offY)
	screen.DrawImage(g.frame, opts)
}

func (g *Game) drawPlaceholder(screen *ebiten.Image, d ports.Display, areaW, areaH int) {
	img := g.opts.Painter.Paint(areaW, areaH, d)
	if g.holderSrc != img {
		if g.holder != nil {
			g.holder.Deallocate()
		}
		g.holder = ebiten.NewImageFromImage(img)
		g.holderSrc = img
	}
	screen.DrawImage(g.holder, nil)
}

func (g *Game) drawStatus(screen *ebiten.Image, line string) {
	y := g.height - statusBarHeight
	if y < 0 {
		return
	}
	ebitenutil.DrawRect(screen, 0, float64(y), float64(g.width), statusBarHeight, g.opts.StatusBar)
	text.Draw(screen, line, basicfont.Face7x13, 6, y+14, g.opts.Text)
}

// Layout follows the window size and redraws after a resize.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		if g.controls != nil {
			g.controls.Redraw()
		}
	}
	return g.width, g.height
}

// windowTitle shows the current path, or the application name when idle.
func windowTitle(path string) string {
	if path == "" {
		return appTitle
	}
	return path
}

// Ensure Game implements ports.Renderer and ebiten.Game
var (
	_ ports.Renderer = (*Game)(nil)
	_ ebiten.Game    = (*Game)(nil)
)
