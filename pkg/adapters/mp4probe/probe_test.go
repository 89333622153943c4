package mp4probe

import (
	"bytes"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/Eyevinn/mp4ff/av1"
	"github.com/Eyevinn/mp4ff/mp4"
)

// buildFragmentedMP4 writes an ftyp+moov+moof+mdat file with n dummy AV1
// samples of dur timescale units each.
func buildFragmentedMP4(t *testing.T, n int, timescale, dur uint32) []byte {
	t.Helper()

	init := mp4.CreateEmptyInit()
	init.AddEmptyTrack(timescale, "video", "en")
	trak := init.Moov.Trak

	av1C := &mp4.Av1CBox{CodecConfRec: av1.CodecConfRec{
		Version:            1,
		SeqLevelIdx0:       8,
		ChromaSubsamplingX: 1,
		ChromaSubsamplingY: 1,
	}}
	trak.Mdia.Minf.Stbl.Stsd.AddChild(mp4.CreateVisualSampleEntryBox("av01", 320, 240, av1C))
	trak.Tkhd.Width = mp4.Fixed32(320 << 16)
	trak.Tkhd.Height = mp4.Fixed32(240 << 16)

	frag, err := mp4.CreateFragment(1, 1)
	if err != nil {
		t.Fatalf("create fragment: %v", err)
	}
	for i := 0; i < n; i++ {
		data := []byte{0x12, 0x00, byte(i)}
		flags := mp4.NonSyncSampleFlags
		if i == 0 {
			flags = mp4.SyncSampleFlags
		}
		frag.AddFullSample(mp4.FullSample{
			Sample:     mp4.Sample{Flags: flags, Size: uint32(len(data)), Dur: dur},
			DecodeTime: uint64(i) * uint64(dur),
			Data:       data,
		})
	}

	var buf bytes.Buffer
	ftyp := mp4.NewFtyp("isom", 0x200, []string{"isom", "iso2", "av01", "mp41"})
	if err := ftyp.Encode(&buf); err != nil {
		t.Fatalf("encode ftyp: %v", err)
	}
	if err := init.Moov.Encode(&buf); err != nil {
		t.Fatalf("encode moov: %v", err)
	}
	if err := frag.Encode(&buf); err != nil {
		t.Fatalf("encode fragment: %v", err)
	}
	return buf.Bytes()
}

func TestProbe_Fragmented(t *testing.T) {
	data := buildFragmentedMP4(t, 12, 30000, 1001)

	info, err := Probe(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if info.FrameCount != 12 {
		t.Errorf("expected 12 frames, got %d", info.FrameCount)
	}
	if math.Abs(info.NominalRate-29.97) > 0.01 {
		t.Errorf("expected ~29.97 fps, got %f", info.NominalRate)
	}
	if info.Codec != string(CodecAV1) {
		t.Errorf("expected av1, got %s", info.Codec)
	}
	if info.Width != 320 || info.Height != 240 {
		t.Errorf("expected 320x240, got %dx%d", info.Width, info.Height)
	}
}

func TestProbeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clip.mp4")
	if err := os.WriteFile(path, buildFragmentedMP4(t, 5, 1000, 200), 0644); err != nil {
		t.Fatal(err)
	}

	info, err := ProbeFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.FrameCount != 5 || info.NominalRate != 5 {
		t.Errorf("expected 5 frames at 5 fps, got %d at %f", info.FrameCount, info.NominalRate)
	}

	if _, err := ProbeFile(filepath.Join(t.TempDir(), "missing.mp4")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestProbe_NoVideoTrack(t *testing.T) {
	init := mp4.CreateEmptyInit()
	init.AddEmptyTrack(48000, "audio", "en")

	var buf bytes.Buffer
	mp4.NewFtyp("isom", 0x200, []string{"isom"}).Encode(&buf)
	if err := init.Moov.Encode(&buf); err != nil {
		t.Fatal(err)
	}

	_, err := Probe(bytes.NewReader(buf.Bytes()))
	if !errors.Is(err, ErrNoVideoTrack) {
		t.Errorf("expected ErrNoVideoTrack, got %v", err)
	}
}

func TestProbe_Garbage(t *testing.T) {
	if _, err := Probe(bytes.NewReader([]byte("not an mp4 file at all"))); err == nil {
		t.Error("expected error for garbage input")
	}
}

func TestCodecFromType(t *testing.T) {
	tests := []struct {
		boxType string
		want    Codec
	}{
		{"avc1", CodecH264},
		{"avc3", CodecH264},
		{"hev1", CodecHEVC},
		{"av01", CodecAV1},
		{"vp09", CodecVP9},
		{"mp4a", CodecUnknown},
	}

	for _, tt := range tests {
		if got := codecFromType(tt.boxType); got != tt.want {
			t.Errorf("codecFromType(%q) = %s, want %s", tt.boxType, got, tt.want)
		}
	}
}
