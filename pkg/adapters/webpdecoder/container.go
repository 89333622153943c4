package webpdecoder

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"golang.org/x/image/riff"
)

var (
	fccWEBP = riff.FourCC{'W', 'E', 'B', 'P'}
	fccVP8X = riff.FourCC{'V', 'P', '8', 'X'}
	fccVP8  = riff.FourCC{'V', 'P', '8', ' '}
	fccVP8L = riff.FourCC{'V', 'P', '8', 'L'}
	fccALPH = riff.FourCC{'A', 'L', 'P', 'H'}
	fccANIM = riff.FourCC{'A', 'N', 'I', 'M'}
	fccANMF = riff.FourCC{'A', 'N', 'M', 'F'}
)

const (
	vp8xAlpha     = 0x10
	vp8xAnimation = 0x02

	anmfHeaderLen = 16
	anmfNoBlend   = 0x02
	anmfDispose   = 0x01
)

var (
	// ErrNotWebP is returned when the RIFF form type is not WEBP.
	ErrNotWebP = errors.New("webpdecoder: not a WEBP file")
	// ErrNoFrames is returned when the container holds no image data.
	ErrNoFrames = errors.New("webpdecoder: no frames")
	// ErrBadChunk is returned for truncated or inconsistent chunks.
	ErrBadChunk = errors.New("webpdecoder: malformed chunk")
)

// frameHeader is one animation frame as laid out in an ANMF chunk.
type frameHeader struct {
	X, Y          int
	Width, Height int
	DurationMs    int
	Blend         bool
	Dispose       bool
	// payload holds the frame's ALPH and VP8/VP8L chunks, already framed.
	payload []byte
	hasAlph bool
}

// container is the parsed chunk layout of a WEBP file.
type container struct {
	CanvasWidth  int
	CanvasHeight int
	Animated     bool
	Frames       []frameHeader
}

// parseContainer walks the RIFF chunks. Still images produce a container
// with no frames; the caller decodes the whole file instead.
func parseContainer(data []byte) (*container, error) {
	formType, r, err := riff.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("read riff: %w", err)
	}
	if formType != fccWEBP {
		return nil, ErrNotWebP
	}

	c := &container{}
	sawImage := false
	for {
		id, n, chunk, err := r.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read chunk: %w", err)
		}

		body := make([]byte, n)
		if _, err := io.ReadFull(chunk, body); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrBadChunk, id, err)
		}

		switch id {
		case fccVP8X:
			if len(body) < 10 {
				return nil, fmt.Errorf("%w: VP8X too short", ErrBadChunk)
			}
			c.Animated = body[0]&vp8xAnimation != 0
			c.CanvasWidth = int(uint24(body[4:7])) + 1
			c.CanvasHeight = int(uint24(body[7:10])) + 1
		case fccANMF:
			fh, err := parseFrame(body)
			if err != nil {
				return nil, err
			}
			c.Frames = append(c.Frames, fh)
		case fccVP8, fccVP8L:
			sawImage = true
		}
	}

	if len(c.Frames) == 0 && !sawImage {
		return nil, ErrNoFrames
	}
	if c.CanvasWidth == 0 && len(c.Frames) > 0 {
		// No VP8X header: size the canvas to cover every frame.
		for _, fh := range c.Frames {
			c.CanvasWidth = max(c.CanvasWidth, fh.X+fh.Width)
			c.CanvasHeight = max(c.CanvasHeight, fh.Y+fh.Height)
		}
	}
	return c, nil
}

func parseFrame(body []byte) (frameHeader, error) {
	if len(body) < anmfHeaderLen {
		return frameHeader{}, fmt.Errorf("%w: ANMF too short", ErrBadChunk)
	}
	flags := body[15]
	fh := frameHeader{
		X:          int(uint24(body[0:3])) * 2,
		Y:          int(uint24(body[3:6])) * 2,
		Width:      int(uint24(body[6:9])) + 1,
		Height:     int(uint24(body[9:12])) + 1,
		DurationMs: int(uint24(body[12:15])),
		Blend:      flags&anmfNoBlend == 0,
		Dispose:    flags&anmfDispose != 0,
		payload:    body[anmfHeaderLen:],
	}
	fh.hasAlph = len(fh.payload) >= 4 && riff.FourCC(fh.payload[0:4]) == fccALPH
	return fh, nil
}

// standalone wraps a frame payload into a self-contained WEBP file. Frames
// with an alpha chunk need the extended VP8X header to be decodable.
func (fh frameHeader) standalone() []byte {
	var body bytes.Buffer
	body.Write(fccWEBP[:])
	if fh.hasAlph {
		vp8x := make([]byte, 10)
		vp8x[0] = vp8xAlpha
		putUint24(vp8x[4:7], uint32(fh.Width-1))
		putUint24(vp8x[7:10], uint32(fh.Height-1))
		writeChunk(&body, fccVP8X, vp8x)
	}
	body.Write(fh.payload)

	var out bytes.Buffer
	out.Write([]byte("RIFF"))
	binary.Write(&out, binary.LittleEndian, uint32(body.Len()))
	out.Write(body.Bytes())
	return out.Bytes()
}

func writeChunk(w *bytes.Buffer, id riff.FourCC, data []byte) {
	w.Write(id[:])
	binary.Write(w, binary.LittleEndian, uint32(len(data)))
	w.Write(data)
	if len(data)%2 == 1 {
		w.WriteByte(0)
	}
}

func uint24(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16
}

func putUint24(b []byte, v uint32) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
}
