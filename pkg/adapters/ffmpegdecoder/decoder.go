// Package ffmpegdecoder decodes container video by streaming PNG frames out
// of an ffmpeg child process. Frame count and rate come from the MP4 sample
// tables, so the item size is known before the first frame arrives.
package ffmpegdecoder

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"image/png"
	"io"
	"os/exec"
	"strings"
	"sync"

	"github.com/user/framestep/pkg/adapters/mp4probe"
	"github.com/user/framestep/pkg/media"
	"github.com/user/framestep/pkg/ports"
)

var (
	// ErrFFmpegNotFound is returned when ffmpeg is not found.
	ErrFFmpegNotFound = errors.New("ffmpegdecoder: ffmpeg not found in PATH")

	// ErrNotOpen is returned when NextFrame is called before Open.
	ErrNotOpen = errors.New("ffmpegdecoder: decoder not open")
)

// ProbeFunc reads container metadata for path.
type ProbeFunc func(path string) (media.Info, error)

// Decoder implements ports.MediaDecoder for MP4 files.
type Decoder struct {
	ffmpegPath string
	probe      ProbeFunc
	logger     ports.Logger

	mu     sync.Mutex
	cmd    *exec.Cmd
	cancel context.CancelFunc
	stdout io.ReadCloser
	reader *bufio.Reader
	stderr bytes.Buffer
	closed bool
}

// New creates a decoder. An empty ffmpegPath searches the usual locations.
func New(ffmpegPath string, logger ports.Logger) *Decoder {
	return &Decoder{
		ffmpegPath: ffmpegPath,
		probe:      mp4probe.ProbeFile,
		logger:     logger,
	}
}

// WithProbe replaces the metadata reader. Used by tests and by callers that
// accept containers mp4probe cannot read.
func (d *Decoder) WithProbe(probe ProbeFunc) *Decoder {
	d.probe = probe
	return d
}

// Open probes the container and starts ffmpeg. Cancelling ctx kills the process.
func (d *Decoder) Open(ctx context.Context, path string) (media.Info, error) {
	info, err := d.probe(path)
	if err != nil {
		return media.Info{}, err
	}
	d.logger.Debug("Probed %s: codec %s, %d samples", path, info.Codec, info.FrameCount)

	ffmpeg, err := FindFFmpeg(d.ffmpegPath)
	if err != nil {
		return media.Info{}, err
	}
	d.logger.Debug("Using ffmpeg at %s", ffmpeg)

	ctx, cancel := context.WithCancel(ctx)
	cmd := exec.CommandContext(ctx, ffmpeg, Args(path)...)
	cmd.Stderr = &d.stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		cancel()
		return media.Info{}, fmt.Errorf("stdout pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		cancel()
		return media.Info{}, fmt.Errorf("start ffmpeg: %w", err)
	}

	d.mu.Lock()
	d.cmd = cmd
	d.cancel = cancel
	d.stdout = stdout
	d.reader = bufio.NewReaderSize(stdout, 1<<20)
	d.mu.Unlock()

	return info, nil
}

// Args returns the ffmpeg arguments that stream every frame of path as
// uncompressed PNG images on stdout.
func Args(path string) []string {
	return []string{
		"-v", "error",
		"-nostdin",
		"-i", path,
		"-map", "0:v:0",
		"-vsync", "0",
		"-f", "image2pipe",
		"-vcodec", "png",
		"-compression_level", "0",
		"-",
	}
}

// NextFrame reads the next PNG from the pipe. It returns io.EOF once ffmpeg
// has written every frame and exited cleanly.
func (d *Decoder) NextFrame() (*media.Frame, error) {
	d.mu.Lock()
	r := d.reader
	d.mu.Unlock()
	if r == nil {
		return nil, ErrNotOpen
	}

	if _, err := r.Peek(1); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, d.wait()
		}
		return nil, fmt.Errorf("read ffmpeg output: %w", err)
	}

	img, err := png.Decode(r)
	if err != nil {
		if werr := d.wait(); werr != nil && !errors.Is(werr, io.EOF) {
			return nil, werr
		}
		return nil, fmt.Errorf("decode frame: %w", err)
	}
	return media.NewFrame(img), nil
}

// wait reaps ffmpeg after its output ended and converts the exit status.
func (d *Decoder) wait() error {
	d.mu.Lock()
	cmd := d.cmd
	d.cmd = nil
	d.mu.Unlock()
	if cmd == nil {
		return io.EOF
	}

	if err := cmd.Wait(); err != nil {
		msg := strings.TrimSpace(d.stderr.String())
		d.logger.Debug("ffmpeg exited: %s", err)
		if msg != "" {
			return fmt.Errorf("ffmpeg: %w: %s", err, msg)
		}
		return fmt.Errorf("ffmpeg: %w", err)
	}
	return io.EOF
}

// Close kills ffmpeg if it is still running and waits for it to exit.
// It is safe to call more than once.
func (d *Decoder) Close() error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil
	}
	d.closed = true
	cmd, cancel := d.cmd, d.cancel
	d.cmd = nil
	d.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if cmd != nil {
		// Killed mid-stream; the exit status carries no information.
		_ = cmd.Wait()
	}
	return nil
}

var _ ports.MediaDecoder = (*Decoder)(nil)
