package pngexport

import (
	"bytes"
	"errors"
	"image/png"
	"path/filepath"
	"testing"

	"github.com/user/framestep/pkg/media"
	"github.com/user/framestep/pkg/mocks"
	"github.com/user/framestep/pkg/ports"
)

func testFrame() *media.Frame {
	return &media.Frame{
		Width:  2,
		Height: 1,
		Pix:    []uint8{255, 0, 0, 0, 0, 255},
	}
}

func TestFileName(t *testing.T) {
	tests := []struct {
		source string
		index  int
		want   string
	}{
		{"clip.mp4", 0, "clip_frm0001.png"},
		{filepath.Join("videos", "run.final.webp"), 41, "run.final_frm0042.png"},
		{"noext", 9999, "noext_frm10000.png"},
	}

	for _, tt := range tests {
		if got := FileName(tt.source, tt.index); got != tt.want {
			t.Errorf("FileName(%q, %d) = %q, want %q", tt.source, tt.index, got, tt.want)
		}
	}
}

func TestExporter_NextToSource(t *testing.T) {
	fs := mocks.NewFileSystem()
	e := New("", fs)

	source := filepath.Join("videos", "clip.mp4")
	path, err := e.Export(ports.ExportRequest{SourcePath: source, FrameIndex: 4, Frame: testFrame()})
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	expectedPath := filepath.Join("videos", "clip_frm0005.png")
	if path != expectedPath {
		t.Errorf("expected %s, got %s", expectedPath, path)
	}

	data, ok := fs.GetFile(expectedPath)
	if !ok {
		t.Fatalf("expected file to be saved at %s", expectedPath)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("saved file is not a PNG: %v", err)
	}
	if img.Bounds().Dx() != 2 || img.Bounds().Dy() != 1 {
		t.Errorf("unexpected size %v", img.Bounds())
	}
	r, _, b, a := img.At(1, 0).RGBA()
	if r != 0 || b != 0xffff || a != 0xffff {
		t.Errorf("unexpected pixel %d %d %d", r, b, a)
	}
}

func TestExporter_FixedDir(t *testing.T) {
	fs := mocks.NewFileSystem()
	exportDir := filepath.Join("out", "frames")
	e := New(exportDir, fs)

	path, err := e.Export(ports.ExportRequest{SourcePath: filepath.Join("videos", "clip.mp4"), Frame: testFrame()})
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(exportDir, "clip_frm0001.png"); path != want {
		t.Errorf("expected %s, got %s", want, path)
	}
}

func TestExporter_Errors(t *testing.T) {
	fs := mocks.NewFileSystem()
	e := New("", fs)

	if _, err := e.Export(ports.ExportRequest{SourcePath: "clip.mp4"}); !errors.Is(err, ErrNoFrame) {
		t.Errorf("expected ErrNoFrame, got %v", err)
	}

	writeErr := errors.New("disk full")
	fs.WriteFileFunc = func(path string, data []byte) error { return writeErr }
	if _, err := e.Export(ports.ExportRequest{SourcePath: "clip.mp4", Frame: testFrame()}); !errors.Is(err, writeErr) {
		t.Errorf("expected write error, got %v", err)
	}
}
