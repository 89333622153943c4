package ports

import (
	"context"

	"github.com/user/framestep/pkg/media"
)

// MediaDecoder extracts frames from one media file, in order.
//
// A decoder is opened once, read until NextFrame returns io.EOF or an error,
// and closed exactly once. Close MUST be safe to call while the stream is only
// partly consumed; it releases every resource the decoder holds (file
// handles, child processes) before returning.
type MediaDecoder interface {
	// Open prepares the file and reports container metadata before any frame is decoded.
	Open(ctx context.Context, path string) (media.Info, error)

	// NextFrame decodes the next frame. It returns io.EOF after the last frame.
	NextFrame() (*media.Frame, error)

	// Close releases decoder resources.
	Close() error
}

// DecoderFactory creates a fresh decoder for a media kind.
type DecoderFactory interface {
	NewDecoder(kind media.Kind) (MediaDecoder, error)
}
