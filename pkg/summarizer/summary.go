// Package summarizer builds the report written by the probe command after a
// file has been decoded.
package summarizer

import (
	"time"

	"github.com/user/framestep/pkg/media"
)

// Summary contains everything collected while probing one file.
type Summary struct {
	// Metadata
	GeneratedAt time.Time

	// Source file
	File FileInfo

	// Container metadata, when the container could be read
	Container *ContainerInfo

	// Decode results
	Decode DecodeInfo

	// Settings in effect
	Settings Settings
}

// FileInfo describes the probed file.
type FileInfo struct {
	Path      string
	Kind      string
	SizeBytes int64
}

// ContainerInfo is what the container declares before decoding.
type ContainerInfo struct {
	Codec       string
	Width       int
	Height      int
	FrameCount  int
	NominalRate float64
}

// DecodeInfo contains the outcome of the decode job.
type DecodeInfo struct {
	State        string
	LoadedFrames int
	TotalFrames  int
	FrameRate    float64
	FrameWidth   int
	FrameHeight  int
	ElapsedMs    int
	// Error is the failure reason; empty when the decode succeeded.
	Error string
}

// Settings contains the decoding configuration.
type Settings struct {
	MaxFrames              int
	DefaultFrameRate       float64
	DefaultFrameDurationMs int
	Backend                string
}

// NewSummary creates a new Summary with the current timestamp.
func NewSummary() *Summary {
	return &Summary{
		GeneratedAt: time.Now(),
	}
}

// Builder provides a fluent interface for building a Summary.
type Builder struct {
	summary *Summary
}

// NewBuilder creates a new Builder.
func NewBuilder() *Builder {
	return &Builder{
		summary: NewSummary(),
	}
}

// WithFile sets the source file.
func (b *Builder) WithFile(path string, kind media.Kind, size int64) *Builder {
	b.summary.File = FileInfo{
		Path:      path,
		Kind:      kind.String(),
		SizeBytes: size,
	}
	return b
}

// WithContainer sets the container metadata.
func (b *Builder) WithContainer(info media.Info) *Builder {
	b.summary.Container = &ContainerInfo{
		Codec:       info.Codec,
		Width:       info.Width,
		Height:      info.Height,
		FrameCount:  info.FrameCount,
		NominalRate: info.NominalRate,
	}
	return b
}

// WithDecode sets the decode results.
func (b *Builder) WithDecode(decode DecodeInfo) *Builder {
	b.summary.Decode = decode
	return b
}

// WithSettings sets the decoding configuration.
func (b *Builder) WithSettings(settings Settings) *Builder {
	b.summary.Settings = settings
	return b
}

// Build returns the constructed Summary.
func (b *Builder) Build() *Summary {
	return b.summary
}
