package mocks

import (
	"context"
	"fmt"
	"io"
	"sync"
	"sync/atomic"

	"github.com/user/framestep/pkg/media"
	"github.com/user/framestep/pkg/ports"
)

// MediaDecoder is a mock implementation of ports.MediaDecoder that yields
// Frames synthetic 2x2 frames. The first byte of each frame is its index.
type MediaDecoder struct {
	Info    media.Info
	OpenErr error
	Frames  int

	// FailAt makes NextFrame return FailErr for the frame with this index.
	FailAt  int
	FailErr error

	// Gate, when set, makes every NextFrame wait for a value (or cancellation).
	Gate chan struct{}

	OpenFunc      func(ctx context.Context, path string) (media.Info, error)
	NextFrameFunc func() (*media.Frame, error)
	CloseFunc     func() error

	// Recorded calls for verification
	mu         sync.Mutex
	ctx        context.Context
	next       int
	OpenedPath string
	CloseCalls int

	factory *DecoderFactory
}

func (m *MediaDecoder) Open(ctx context.Context, path string) (media.Info, error) {
	m.mu.Lock()
	m.ctx = ctx
	m.OpenedPath = path
	m.mu.Unlock()

	if m.factory != nil {
		m.factory.opened()
	}
	if m.OpenFunc != nil {
		return m.OpenFunc(ctx, path)
	}
	if m.OpenErr != nil {
		return media.Info{}, m.OpenErr
	}
	return m.Info, nil
}

func (m *MediaDecoder) NextFrame() (*media.Frame, error) {
	if m.NextFrameFunc != nil {
		return m.NextFrameFunc()
	}

	m.mu.Lock()
	ctx := m.ctx
	m.mu.Unlock()
	if ctx == nil {
		ctx = context.Background()
	}

	if m.Gate != nil {
		select {
		case <-m.Gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.next >= m.Frames {
		return nil, io.EOF
	}
	if m.FailErr != nil && m.next == m.FailAt {
		return nil, m.FailErr
	}
	pix := make([]uint8, 12)
	pix[0] = uint8(m.next)
	m.next++
	return &media.Frame{Width: 2, Height: 2, Pix: pix}, nil
}

func (m *MediaDecoder) Close() error {
	m.mu.Lock()
	m.CloseCalls++
	m.mu.Unlock()

	if m.factory != nil {
		m.factory.closed()
	}
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}

// Closed reports whether Close has been called.
func (m *MediaDecoder) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.CloseCalls > 0
}

var _ ports.MediaDecoder = (*MediaDecoder)(nil)

// DecoderFactory is a mock implementation of ports.DecoderFactory.
type DecoderFactory struct {
	// NewFunc builds the decoder for each request. Defaults to an empty MediaDecoder.
	NewFunc func(kind media.Kind) (*MediaDecoder, error)

	mu       sync.Mutex
	Kinds    []media.Kind
	Decoders []*MediaDecoder

	open    atomic.Int32
	maxOpen atomic.Int32
}

func (f *DecoderFactory) NewDecoder(kind media.Kind) (ports.MediaDecoder, error) {
	var (
		d   *MediaDecoder
		err error
	)
	if f.NewFunc != nil {
		d, err = f.NewFunc(kind)
	} else {
		d = &MediaDecoder{}
	}
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, fmt.Errorf("mock: no decoder for %s", kind)
	}
	d.factory = f

	f.mu.Lock()
	f.Kinds = append(f.Kinds, kind)
	f.Decoders = append(f.Decoders, d)
	f.mu.Unlock()
	return d, nil
}

// Decoder returns the i-th decoder created by the factory.
func (f *DecoderFactory) Decoder(i int) *MediaDecoder {
	f.mu.Lock()
	defer f.mu.Unlock()
	if i < 0 || i >= len(f.Decoders) {
		return nil
	}
	return f.Decoders[i]
}

// MaxOpen returns the highest number of decoders that were open at the same time.
func (f *DecoderFactory) MaxOpen() int {
	return int(f.maxOpen.Load())
}

func (f *DecoderFactory) opened() {
	n := f.open.Add(1)
	for {
		cur := f.maxOpen.Load()
		if n <= cur || f.maxOpen.CompareAndSwap(cur, n) {
			return
		}
	}
}

func (f *DecoderFactory) closed() {
	f.open.Add(-1)
}

var _ ports.DecoderFactory = (*DecoderFactory)(nil)
