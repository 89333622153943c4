// Package smartdecoder selects the decoder for a media item from its kind.
package smartdecoder

import (
	"errors"
	"fmt"

	"github.com/user/framestep/pkg/adapters/ffmpegdecoder"
	"github.com/user/framestep/pkg/adapters/webpdecoder"
	"github.com/user/framestep/pkg/media"
	"github.com/user/framestep/pkg/ports"
)

// Backend represents the decoding backend used.
type Backend string

const (
	// BackendFFmpeg represents ffmpeg-based decoding of container video.
	BackendFFmpeg Backend = "ffmpeg"
	// BackendWebP represents the pure Go WEBP decoder.
	BackendWebP Backend = "webp"
)

// Options configures the smart decoder behavior.
type Options struct {
	// FFmpegPath is an optional custom path to the ffmpeg binary.
	FFmpegPath string
}

var (
	// ErrNoDecoderAvailable is returned when no decoder is available for the kind.
	ErrNoDecoderAvailable = errors.New("smartdecoder: no decoder available")
)

// Factory implements ports.DecoderFactory.
type Factory struct {
	opts   Options
	fs     ports.FileSystem
	logger ports.Logger
}

// New creates a Factory. WEBP files are read through fs.
func New(opts Options, fs ports.FileSystem, logger ports.Logger) *Factory {
	return &Factory{opts: opts, fs: fs, logger: logger}
}

// NewDecoder returns a fresh decoder for kind.
//
// The selection flow:
//   - Video: ffmpeg child process, frame count from the MP4 sample tables
//   - Animated image: in-process WEBP decoder
func (f *Factory) NewDecoder(kind media.Kind) (ports.MediaDecoder, error) {
	switch kind {
	case media.KindVideo:
		if !ffmpegdecoder.Available(f.opts.FFmpegPath) {
			return nil, fmt.Errorf("%w: %w", ErrNoDecoderAvailable, ffmpegdecoder.ErrFFmpegNotFound)
		}
		return ffmpegdecoder.New(f.opts.FFmpegPath, f.logger.WithComponent("ffmpeg")), nil

	case media.KindAnimatedImage:
		return webpdecoder.New(f.fs, f.logger.WithComponent("webp")), nil

	default:
		return nil, media.ErrUnsupportedFormat
	}
}

// BackendFor reports which backend NewDecoder would use for kind.
func BackendFor(kind media.Kind) (Backend, error) {
	switch kind {
	case media.KindVideo:
		return BackendFFmpeg, nil
	case media.KindAnimatedImage:
		return BackendWebP, nil
	default:
		return "", media.ErrUnsupportedFormat
	}
}

// Ensure Factory implements ports.DecoderFactory
var _ ports.DecoderFactory = (*Factory)(nil)
