// Package ggplaceholder draws the card shown in place of frames that are not
// decoded yet, using the gg library.
package ggplaceholder

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"
	"github.com/ideamans/go-l10n"

	"github.com/user/framestep/pkg/ports"
)

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		"Frame %d is loading":  "フレーム %d を読み込み中",
		"%d / %d frames ready": "%d / %d フレーム準備完了",
		"Waiting for decoder":  "デコーダーを待っています",
	})
}

// Theme holds the placeholder colours.
type Theme struct {
	Background  color.Color
	Text        color.Color
	Accent      color.Color
	ProgressBar color.Color
}

// DefaultTheme returns the default colours.
func DefaultTheme() Theme {
	return Theme{
		Background:  color.RGBA{R: 0x1a, G: 0x1a, B: 0x2e, A: 255},
		Text:        color.White,
		Accent:      color.RGBA{R: 0x33, G: 0x33, B: 0x55, A: 255},
		ProgressBar: color.RGBA{R: 0x4a, G: 0xde, B: 0x80, A: 255},
	}
}

type cacheKey struct {
	width, height int
	current       int
	loaded, total int
}

// Painter implements ports.PlaceholderPainter.
type Painter struct {
	theme Theme

	// The last card is reused while nothing it shows has changed.
	key  cacheKey
	last image.Image
}

// New creates a Painter.
func New(theme Theme) *Painter {
	return &Painter{theme: theme}
}

// Paint renders a loading card with the decode progress.
func (p *Painter) Paint(width, height int, d ports.Display) image.Image {
	width, height = max(width, 1), max(height, 1)
	key := cacheKey{width, height, d.CurrentFrame, d.LoadedFrames, d.TotalFrames}
	if p.last != nil && key == p.key {
		return p.last
	}

	dc := gg.NewContext(width, height)
	dc.SetColor(p.theme.Background)
	dc.Clear()

	w, h := float64(width), float64(height)
	cardW := min(w*0.8, 420)
	cardH := min(h*0.5, 120)
	x0, y0 := (w-cardW)/2, (h-cardH)/2

	dc.SetColor(p.theme.Accent)
	dc.DrawRoundedRectangle(x0, y0, cardW, cardH, 8)
	dc.Fill()

	dc.SetColor(p.theme.Text)
	if d.TotalFrames > 0 {
		dc.DrawStringAnchored(l10n.F("Frame %d is loading", d.CurrentFrame+1), w/2, y0+cardH*0.3, 0.5, 0.5)
		dc.DrawStringAnchored(l10n.F("%d / %d frames ready", d.LoadedFrames, d.TotalFrames), w/2, y0+cardH*0.5, 0.5, 0.5)
	} else {
		dc.DrawStringAnchored(l10n.T("Waiting for decoder"), w/2, y0+cardH*0.4, 0.5, 0.5)
	}

	// Progress bar
	barX, barY := x0+16, y0+cardH*0.72
	barW, barH := cardW-32, 8.0
	dc.SetColor(p.theme.Background)
	dc.DrawRectangle(barX, barY, barW, barH)
	dc.Fill()
	if ratio := progress(d); ratio > 0 {
		dc.SetColor(p.theme.ProgressBar)
		dc.DrawRectangle(barX, barY, barW*ratio, barH)
		dc.Fill()
	}

	p.key = key
	p.last = dc.Image()
	return p.last
}

func progress(d ports.Display) float64 {
	if d.TotalFrames <= 0 {
		return 0
	}
	return min(float64(d.LoadedFrames)/float64(d.TotalFrames), 1)
}

// Ensure Painter implements ports.PlaceholderPainter
var _ ports.PlaceholderPainter = (*Painter)(nil)
