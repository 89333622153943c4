// Package clipboardexport copies frames to the system clipboard as PNG images.
package clipboardexport

import (
	"errors"
	"fmt"
	"sync"

	"golang.design/x/clipboard"

	"github.com/user/framestep/pkg/adapters/pngexport"
	"github.com/user/framestep/pkg/ports"
)

// ErrUnavailable is returned when the platform clipboard cannot be used,
// e.g. without a display server.
var ErrUnavailable = errors.New("clipboardexport: clipboard unavailable")

// Exporter implements ports.FrameExporter on top of the clipboard.
type Exporter struct {
	once    sync.Once
	initErr error

	init  func() error
	write func(data []byte)
}

// New creates an Exporter. The clipboard is initialised on first use.
func New() *Exporter {
	return &Exporter{
		init: clipboard.Init,
		write: func(data []byte) {
			clipboard.Write(clipboard.FmtImage, data)
		},
	}
}

// Available reports whether the clipboard could be initialised.
func (e *Exporter) Available() bool {
	return e.ensure() == nil
}

func (e *Exporter) ensure() error {
	e.once.Do(func() {
		if err := e.init(); err != nil {
			e.initErr = fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
	})
	return e.initErr
}

// Export puts the frame on the clipboard and returns a description of the target.
func (e *Exporter) Export(req ports.ExportRequest) (string, error) {
	if err := e.ensure(); err != nil {
		return "", err
	}
	data, err := pngexport.Encode(req.Frame)
	if err != nil {
		return "", err
	}
	e.write(data)
	return "clipboard", nil
}

// Ensure Exporter implements ports.FrameExporter
var _ ports.FrameExporter = (*Exporter)(nil)
