package otocue

import (
	"encoding/binary"
	"math"
	"time"

	"github.com/user/framestep/pkg/ports"
)

// note is one tone of a cue. A zero frequency is a rest.
type note struct {
	freq float64
	dur  time.Duration
}

// patterns maps every cue to a short, distinguishable melody.
var patterns = map[ports.Cue][]note{
	ports.CueBoundaryReached:   {{220, 60 * time.Millisecond}},
	ports.CueLoopedAround:      {{660, 40 * time.Millisecond}, {0, 20 * time.Millisecond}, {880, 40 * time.Millisecond}},
	ports.CueFormatUnsupported: {{440, 90 * time.Millisecond}, {0, 30 * time.Millisecond}, {330, 120 * time.Millisecond}},
	ports.CueTooManyFrames:     {{196, 70 * time.Millisecond}, {0, 30 * time.Millisecond}, {196, 70 * time.Millisecond}, {0, 30 * time.Millisecond}, {196, 70 * time.Millisecond}},
}

// fadeSamples is the length of the linear fade at both ends of each tone,
// which keeps the speaker from clicking.
const fadeSamples = 64

// synthesize renders notes as mono float32 little-endian PCM.
func synthesize(notes []note, sampleRate int) []byte {
	total := 0
	for _, n := range notes {
		total += samplesFor(n.dur, sampleRate)
	}
	out := make([]byte, 0, total*4)

	for _, n := range notes {
		count := samplesFor(n.dur, sampleRate)
		for i := 0; i < count; i++ {
			var v float64
			if n.freq > 0 {
				v = math.Sin(2*math.Pi*n.freq*float64(i)/float64(sampleRate)) * envelope(i, count)
			}
			out = binary.LittleEndian.AppendUint32(out, math.Float32bits(float32(v)))
		}
	}
	return out
}

func samplesFor(d time.Duration, sampleRate int) int {
	return int(d.Seconds() * float64(sampleRate))
}

func envelope(i, count int) float64 {
	fade := min(fadeSamples, count/2)
	switch {
	case fade == 0:
		return 1
	case i < fade:
		return float64(i) / float64(fade)
	case i >= count-fade:
		return float64(count-1-i) / float64(fade)
	default:
		return 1
	}
}
