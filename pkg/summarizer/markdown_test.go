package summarizer

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/user/framestep/pkg/mocks"
)

func sampleSummary() *Summary {
	return &Summary{
		GeneratedAt: time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
		File: FileInfo{
			Path:      "/clips/intro.mp4",
			Kind:      "video",
			SizeBytes: 1024 * 1024,
		},
		Container: &ContainerInfo{
			Codec:       "h264",
			Width:       640,
			Height:      360,
			FrameCount:  48,
			NominalRate: 24,
		},
		Decode: DecodeInfo{
			State:        "finished",
			LoadedFrames: 48,
			TotalFrames:  48,
			FrameRate:    24,
			FrameWidth:   640,
			FrameHeight:  360,
			ElapsedMs:    850,
		},
		Settings: Settings{
			MaxFrames:              5000,
			DefaultFrameRate:       30,
			DefaultFrameDurationMs: 100,
			Backend:                "ffmpeg",
		},
	}
}

func TestMarkdownFormatter_Format_Basic(t *testing.T) {
	result := NewMarkdownFormatter().Format(sampleSummary())

	checks := []string{
		"# Decode Summary",
		"2024-01-15 10:30:00",
		"/clips/intro.mp4",
		"1.00 MB",
		"h264",
		"640x360",
		"48 / 48",
		"24.000 fps",
		"850 ms",
		"ffmpeg",
	}

	for _, check := range checks {
		if !strings.Contains(result, check) {
			t.Errorf("expected output to contain %q", check)
		}
	}
	if strings.Contains(result, "| Error |") {
		t.Error("successful decode must not have an error row")
	}
}

func TestMarkdownFormatter_Format_Failure(t *testing.T) {
	s := sampleSummary()
	s.Container = nil
	s.Decode = DecodeInfo{State: "failed", Error: "media: unsupported format | avi"}

	result := NewMarkdownFormatter().Format(s)

	if strings.Contains(result, "## Container") {
		t.Error("container section must be omitted without container info")
	}
	if !strings.Contains(result, `unsupported format \| avi`) {
		t.Error("expected escaped error text in the table")
	}
	if !strings.Contains(result, "| Playback Rate | Unknown |") {
		t.Error("expected unknown rate for a failed decode")
	}
}

func TestMarkdownFormatter_WithTranslator(t *testing.T) {
	translator := func(key string) string {
		translations := map[string]string{
			"Decode Summary": "デコードサマリー",
			"Frame Count":    "フレーム数",
			"finished":       "完了",
		}
		if v, ok := translations[key]; ok {
			return v
		}
		return key
	}

	result := NewMarkdownFormatter(WithTranslator(translator)).Format(sampleSummary())

	for _, want := range []string{"デコードサマリー", "フレーム数", "完了"} {
		if !strings.Contains(result, want) {
			t.Errorf("expected translated %q", want)
		}
	}
}

func TestMarkdownFormatter_WithVersion(t *testing.T) {
	result := NewMarkdownFormatter(WithVersion("v1.2.0")).Format(sampleSummary())

	if !strings.Contains(result, "framestep v1.2.0") {
		t.Error("expected version in footer")
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{512, "512 B"},
		{2048, "2.00 KB"},
		{3 * 1024 * 1024, "3.00 MB"},
	}

	for _, tt := range tests {
		if got := formatBytes(tt.n); got != tt.want {
			t.Errorf("formatBytes(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestWriter_Write(t *testing.T) {
	fs := mocks.NewFileSystem()
	w := NewWriter(FormatFunc(func(s *Summary) string { return "report for " + s.File.Path }), fs)

	if err := w.Write("/out/report.md", sampleSummary()); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	data, ok := fs.GetFile("/out/report.md")
	if !ok {
		t.Fatal("expected report file")
	}
	if string(data) != "report for /clips/intro.mp4" {
		t.Errorf("unexpected content: %q", data)
	}
}

func TestWriter_WriteError(t *testing.T) {
	fs := mocks.NewFileSystem()
	fs.WriteFileFunc = func(path string, data []byte) error {
		return errors.New("disk full")
	}

	w := NewWriter(NewMarkdownFormatter(), fs)
	if err := w.Write("/out/report.md", sampleSummary()); err == nil {
		t.Error("expected write error")
	}
}
