// Package pngexport saves single frames as PNG files.
package pngexport

import (
	"bytes"
	"errors"
	"fmt"
	"image/png"
	"path/filepath"
	"strings"

	"github.com/user/framestep/pkg/media"
	"github.com/user/framestep/pkg/ports"
)

// ErrNoFrame is returned when the request carries no frame.
var ErrNoFrame = errors.New("pngexport: no frame to export")

// Exporter writes frames next to their source file, or into a fixed directory.
type Exporter struct {
	dir string
	fs  ports.FileSystem
}

// New creates an Exporter. An empty dir writes next to the source file.
func New(dir string, fs ports.FileSystem) *Exporter {
	return &Exporter{
		dir: dir,
		fs:  fs,
	}
}

// FileName returns the export name for the 0-origin frame index of source,
// e.g. clip_frm0001.png for the first frame of clip.mp4.
func FileName(source string, index int) string {
	base := filepath.Base(source)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return fmt.Sprintf("%s_frm%04d.png", base, index+1)
}

// Path returns where Export writes the frame.
func (e *Exporter) Path(source string, index int) string {
	dir := e.dir
	if dir == "" {
		dir = filepath.Dir(source)
	}
	return filepath.Join(dir, FileName(source, index))
}

// Export encodes the frame as PNG and writes it.
func (e *Exporter) Export(req ports.ExportRequest) (string, error) {
	data, err := Encode(req.Frame)
	if err != nil {
		return "", err
	}
	path := e.Path(req.SourcePath, req.FrameIndex)
	if err := e.fs.WriteFile(path, data); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

// Encode returns the PNG encoding of the frame.
func Encode(f *media.Frame) ([]byte, error) {
	if f == nil {
		return nil, ErrNoFrame
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, f.Image()); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// Ensure Exporter implements ports.FrameExporter
var _ ports.FrameExporter = (*Exporter)(nil)
