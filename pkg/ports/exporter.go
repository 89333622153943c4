package ports

import (
	"github.com/user/framestep/pkg/media"
)

// ExportRequest identifies the frame being exported.
type ExportRequest struct {
	SourcePath string
	FrameIndex int // 0-origin
	Frame      *media.Frame
}

// FrameExporter saves a single frame somewhere outside the process.
type FrameExporter interface {
	// Export writes the frame and returns a human-readable destination.
	Export(req ExportRequest) (string, error)
}
