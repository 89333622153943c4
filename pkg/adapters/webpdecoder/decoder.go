// Package webpdecoder decodes still and animated WEBP files frame by frame.
//
// Animation frames are composited onto the canvas following their blend and
// dispose flags. Every frame is played at the rate implied by the first
// frame's duration; per-frame timing is not kept.
package webpdecoder

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"io"

	"golang.org/x/image/draw"
	"golang.org/x/image/webp"

	"github.com/user/framestep/pkg/media"
	"github.com/user/framestep/pkg/ports"
)

// ErrNotOpen is returned when NextFrame is called before Open.
var ErrNotOpen = errors.New("webpdecoder: decoder not open")

// DecodeFunc decodes one standalone WEBP bitstream.
type DecodeFunc func(r io.Reader) (image.Image, error)

// Decoder implements ports.MediaDecoder for WEBP files.
type Decoder struct {
	fs     ports.FileSystem
	decode DecodeFunc
	logger ports.Logger

	data   []byte
	c      *container
	canvas *image.RGBA
	next   int
	prev   *frameHeader
}

// New creates a decoder reading files through fs.
func New(fs ports.FileSystem, logger ports.Logger) *Decoder {
	return &Decoder{
		fs:     fs,
		decode: webp.Decode,
		logger: logger,
	}
}

// WithDecodeFunc replaces the bitstream decoder.
func (d *Decoder) WithDecodeFunc(fn DecodeFunc) *Decoder {
	d.decode = fn
	return d
}

// Open reads and indexes the file. Frame data is decoded lazily.
func (d *Decoder) Open(ctx context.Context, path string) (media.Info, error) {
	data, err := d.fs.ReadFile(path)
	if err != nil {
		return media.Info{}, err
	}
	if err := ctx.Err(); err != nil {
		return media.Info{}, err
	}

	c, err := parseContainer(data)
	if err != nil {
		return media.Info{}, err
	}
	d.data = data
	d.c = c
	d.next = 0
	d.prev = nil

	info := media.Info{
		FrameCount: len(c.Frames),
		Width:      c.CanvasWidth,
		Height:     c.CanvasHeight,
		Codec:      "webp",
	}
	if len(c.Frames) == 0 {
		info.FrameCount = 1
		if info.Width == 0 {
			if cfg, err := webp.DecodeConfig(bytes.NewReader(data)); err == nil {
				info.Width, info.Height = cfg.Width, cfg.Height
			}
		}
	} else {
		info.FirstFrameDurationMs = c.Frames[0].DurationMs
		d.canvas = image.NewRGBA(image.Rect(0, 0, c.CanvasWidth, c.CanvasHeight))
	}
	d.logger.Debug("%s: %dx%d canvas, %d frames", path, info.Width, info.Height, info.FrameCount)
	return info, nil
}

// NextFrame decodes and composites the next frame.
func (d *Decoder) NextFrame() (*media.Frame, error) {
	if d.c == nil {
		return nil, ErrNotOpen
	}

	if len(d.c.Frames) == 0 {
		if d.next > 0 {
			return nil, io.EOF
		}
		d.next++
		img, err := d.decode(bytes.NewReader(d.data))
		if err != nil {
			return nil, fmt.Errorf("decode webp: %w", err)
		}
		return media.NewFrame(img), nil
	}

	if d.next >= len(d.c.Frames) {
		return nil, io.EOF
	}
	fh := d.c.Frames[d.next]
	d.next++

	img, err := d.decode(bytes.NewReader(fh.standalone()))
	if err != nil {
		return nil, fmt.Errorf("decode frame %d: %w", d.next, err)
	}

	d.composite(&fh, img)
	return media.NewFrame(d.canvas), nil
}

// composite applies the previous frame's disposal and draws img at its offset.
func (d *Decoder) composite(fh *frameHeader, img image.Image) {
	if d.prev != nil && d.prev.Dispose {
		draw.Draw(d.canvas, d.prev.rect(), image.Transparent, image.Point{}, draw.Src)
	}

	op := draw.Over
	if !fh.Blend {
		op = draw.Src
	}
	draw.Draw(d.canvas, fh.rect(), img, img.Bounds().Min, op)
	d.prev = fh
}

func (fh *frameHeader) rect() image.Rectangle {
	return image.Rect(fh.X, fh.Y, fh.X+fh.Width, fh.Y+fh.Height)
}

// Close releases the file data.
func (d *Decoder) Close() error {
	d.data = nil
	d.c = nil
	d.canvas = nil
	d.prev = nil
	return nil
}

var _ ports.MediaDecoder = (*Decoder)(nil)
