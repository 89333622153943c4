package clipboardexport

import (
	"bytes"
	"errors"
	"image/png"
	"testing"

	"github.com/user/framestep/pkg/adapters/pngexport"
	"github.com/user/framestep/pkg/media"
	"github.com/user/framestep/pkg/ports"
)

func TestExporter_WritesPNG(t *testing.T) {
	var written []byte
	inits := 0
	e := &Exporter{
		init:  func() error { inits++; return nil },
		write: func(data []byte) { written = data },
	}

	frame := &media.Frame{Width: 1, Height: 1, Pix: []uint8{10, 20, 30}}
	dest, err := e.Export(ports.ExportRequest{SourcePath: "clip.mp4", Frame: frame})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dest != "clipboard" {
		t.Errorf("unexpected destination %q", dest)
	}
	if _, err := png.Decode(bytes.NewReader(written)); err != nil {
		t.Errorf("clipboard data is not a PNG: %v", err)
	}

	e.Export(ports.ExportRequest{Frame: frame})
	if inits != 1 {
		t.Errorf("expected a single init, got %d", inits)
	}
}

func TestExporter_Unavailable(t *testing.T) {
	e := &Exporter{
		init:  func() error { return errors.New("no display") },
		write: func(data []byte) { t.Error("write must not be called") },
	}

	if e.Available() {
		t.Error("expected clipboard to be unavailable")
	}
	_, err := e.Export(ports.ExportRequest{Frame: &media.Frame{Width: 1, Height: 1, Pix: make([]uint8, 3)}})
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("expected ErrUnavailable, got %v", err)
	}
}

func TestExporter_NoFrame(t *testing.T) {
	e := &Exporter{
		init:  func() error { return nil },
		write: func(data []byte) {},
	}

	if _, err := e.Export(ports.ExportRequest{}); !errors.Is(err, pngexport.ErrNoFrame) {
		t.Errorf("expected ErrNoFrame, got %v", err)
	}
}
