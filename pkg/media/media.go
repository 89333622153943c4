// Package media defines the media item model shared by decoders, the frame
// store and the playback core.
package media

import (
	"errors"
	"fmt"
	"image"
	"path/filepath"
	"strings"
)

// Kind classifies a media file by how its frames are extracted.
type Kind int

const (
	// KindUnknown is any file the core cannot decode.
	KindUnknown Kind = iota
	// KindVideo is a container video (MP4).
	KindVideo
	// KindAnimatedImage is an animated image (WEBP).
	KindAnimatedImage
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindVideo:
		return "video"
	case KindAnimatedImage:
		return "animated-image"
	default:
		return "unknown"
	}
}

// SupportedExtensions lists the lower-case extensions the core can decode.
var SupportedExtensions = []string{".mp4", ".webp"}

// Classify determines the media kind from the file extension (case-insensitive).
func Classify(path string) Kind {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp4":
		return KindVideo
	case ".webp":
		return KindAnimatedImage
	default:
		return KindUnknown
	}
}

// IsSupported reports whether path has a decodable extension.
func IsSupported(path string) bool {
	return Classify(path) != KindUnknown
}

var (
	// ErrUnsupportedFormat is returned for files whose extension is not decodable.
	ErrUnsupportedFormat = errors.New("media: unsupported format")
)

// TooManyFramesError is returned when an item declares more frames than the
// configured ceiling. No frame is decoded in that case.
type TooManyFramesError struct {
	Count int
	Limit int
}

func (e *TooManyFramesError) Error() string {
	return fmt.Sprintf("media: too many frames: %d (limit %d)", e.Count, e.Limit)
}

// DecodeError wraps a decoder failure for one item.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("media: decode %s: %v", filepath.Base(e.Path), e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Frame is one decoded raster. Pix holds packed RGB, 3 bytes per pixel, row
// after row. A Frame MUST NOT be modified once it has been appended to a store.
type Frame struct {
	Width  int
	Height int
	Pix    []uint8
}

// NewFrame converts any image into a packed RGB frame. Alpha is dropped,
// which for premultiplied sources is the same as compositing over black.
func NewFrame(img image.Image) *Frame {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	pix := make([]uint8, w*h*3)

	if rgba, ok := img.(*image.RGBA); ok {
		for y := 0; y < h; y++ {
			off := rgba.PixOffset(b.Min.X, b.Min.Y+y)
			src := rgba.Pix[off : off+w*4]
			dst := pix[y*w*3 : (y+1)*w*3]
			for x := 0; x < w; x++ {
				dst[x*3] = src[x*4]
				dst[x*3+1] = src[x*4+1]
				dst[x*3+2] = src[x*4+2]
			}
		}
		return &Frame{Width: w, Height: h, Pix: pix}
	}

	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			pix[i] = uint8(r >> 8)
			pix[i+1] = uint8(g >> 8)
			pix[i+2] = uint8(bl >> 8)
			i += 3
		}
	}
	return &Frame{Width: w, Height: h, Pix: pix}
}

// Image returns an opaque RGBA copy of the frame.
func (f *Frame) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	for i, j := 0, 0; i+2 < len(f.Pix); i, j = i+3, j+4 {
		img.Pix[j] = f.Pix[i]
		img.Pix[j+1] = f.Pix[i+1]
		img.Pix[j+2] = f.Pix[i+2]
		img.Pix[j+3] = 255
	}
	return img
}

// Info is the container metadata reported by a decoder before streaming.
type Info struct {
	// FrameCount is the number of frames the container declares.
	// Zero means the count is unknown until the stream ends.
	FrameCount int
	// NominalRate is the container frame rate in frames per second (video).
	NominalRate float64
	// FirstFrameDurationMs is the display duration of the first frame (animated images).
	FirstFrameDurationMs int
	Width                int
	Height               int
	Codec                string
}
