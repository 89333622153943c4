package mocks

import (
	"image"
	"sync"

	"github.com/user/framestep/pkg/ports"
)

// Renderer is a mock implementation of ports.Renderer that records every view.
type Renderer struct {
	PresentFunc func(view ports.View)

	mu    sync.Mutex
	Views []ports.View
}

func (m *Renderer) Present(view ports.View) {
	m.mu.Lock()
	m.Views = append(m.Views, view)
	m.mu.Unlock()
	if m.PresentFunc != nil {
		m.PresentFunc(view)
	}
}

// Last returns the most recent view.
func (m *Renderer) Last() (ports.View, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Views) == 0 {
		return ports.View{}, false
	}
	return m.Views[len(m.Views)-1], true
}

// Count returns the number of presented views.
func (m *Renderer) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Views)
}

var _ ports.Renderer = (*Renderer)(nil)

// PlaceholderPainter is a mock implementation of ports.PlaceholderPainter.
type PlaceholderPainter struct {
	PaintCalls int
}

func (m *PlaceholderPainter) Paint(width, height int, d ports.Display) image.Image {
	m.PaintCalls++
	return image.NewRGBA(image.Rect(0, 0, width, height))
}

var _ ports.PlaceholderPainter = (*PlaceholderPainter)(nil)
