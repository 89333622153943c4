package otocue

import (
	"encoding/binary"
	"math"
	"testing"
	"time"

	"github.com/user/framestep/pkg/ports"
)

func TestPatterns_CoverEveryCue(t *testing.T) {
	cues := []ports.Cue{
		ports.CueBoundaryReached,
		ports.CueLoopedAround,
		ports.CueFormatUnsupported,
		ports.CueTooManyFrames,
	}

	for _, cue := range cues {
		if len(patterns[cue]) == 0 {
			t.Errorf("no tone for cue %s", cue)
		}
	}
}

func TestSynthesize(t *testing.T) {
	notes := []note{{440, 10 * time.Millisecond}, {0, 5 * time.Millisecond}}
	pcm := synthesize(notes, 8000)

	if len(pcm) != (80+40)*4 {
		t.Fatalf("expected %d bytes, got %d", (80+40)*4, len(pcm))
	}

	sample := func(i int) float32 {
		return math.Float32frombits(binary.LittleEndian.Uint32(pcm[i*4:]))
	}

	if sample(0) != 0 {
		t.Errorf("tone must fade in from silence, got %f", sample(0))
	}
	peak := float32(0)
	for i := 0; i < 80; i++ {
		v := sample(i)
		if v > 1 || v < -1 {
			t.Fatalf("sample %d out of range: %f", i, v)
		}
		peak = max(peak, v)
	}
	if peak < 0.5 {
		t.Errorf("tone too quiet, peak %f", peak)
	}
	for i := 80; i < 120; i++ {
		if sample(i) != 0 {
			t.Fatalf("rest must be silent at %d", i)
		}
	}
}

func TestEnvelope(t *testing.T) {
	if envelope(0, 1000) != 0 {
		t.Error("envelope must start at 0")
	}
	if envelope(500, 1000) != 1 {
		t.Error("envelope must be flat in the middle")
	}
	if envelope(999, 1000) != 0 {
		t.Error("envelope must end at 0")
	}
	if envelope(0, 1) != 1 {
		t.Error("single-sample tones have no fade")
	}
}
