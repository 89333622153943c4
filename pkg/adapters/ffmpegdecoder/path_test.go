package ffmpegdecoder

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestFindFFmpeg_CustomPath(t *testing.T) {
	dir := t.TempDir()
	fake := filepath.Join(dir, "ffmpeg")
	if err := os.WriteFile(fake, []byte("#!/bin/sh\n"), 0755); err != nil {
		t.Fatal(err)
	}

	got, err := FindFFmpeg(fake)
	if err != nil || got != fake {
		t.Errorf("expected %s, got %s (%v)", fake, got, err)
	}

	_, err = FindFFmpeg(filepath.Join(dir, "missing"))
	if !errors.Is(err, ErrFFmpegNotFound) {
		t.Errorf("expected ErrFFmpegNotFound, got %v", err)
	}
	if Available(filepath.Join(dir, "missing")) {
		t.Error("missing custom path must not be available")
	}
}
