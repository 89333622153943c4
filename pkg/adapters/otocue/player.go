// Package otocue plays synthesised audio cues through oto.
package otocue

import (
	"bytes"
	"sync"

	"github.com/ebitengine/oto/v3"

	"github.com/user/framestep/pkg/ports"
)

// SampleRate is the output sample rate of the cue tones.
const SampleRate = 44100

// Player implements ports.CuePlayer. Play never blocks.
type Player struct {
	ctx    *oto.Context
	volume float64

	// pcm holds the rendered tones, built once at startup.
	pcm map[ports.Cue][]byte

	mu      sync.Mutex
	playing []*oto.Player
}

// New opens the audio device. Only one Player may exist per process.
func New(volume float64) (*Player, error) {
	op := &oto.NewContextOptions{
		SampleRate:   SampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, err
	}
	<-ready

	p := &Player{
		ctx:    ctx,
		volume: volume,
		pcm:    make(map[ports.Cue][]byte, len(patterns)),
	}
	for cue, notes := range patterns {
		p.pcm[cue] = synthesize(notes, SampleRate)
	}
	return p, nil
}

// Play starts the tone for cue and returns immediately.
func (p *Player) Play(cue ports.Cue) {
	pcm, ok := p.pcm[cue]
	if !ok {
		return
	}

	player := p.ctx.NewPlayer(bytes.NewReader(pcm))
	player.SetVolume(p.volume)
	player.Play()

	p.mu.Lock()
	defer p.mu.Unlock()
	// Players must stay referenced while they play.
	active := p.playing[:0]
	for _, pl := range p.playing {
		if pl.IsPlaying() {
			active = append(active, pl)
		} else {
			pl.Close()
		}
	}
	p.playing = append(active, player)
}

// Close stops every tone that is still playing.
func (p *Player) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, pl := range p.playing {
		pl.Close()
	}
	p.playing = nil
	return nil
}

// Ensure Player implements ports.CuePlayer
var _ ports.CuePlayer = (*Player)(nil)
