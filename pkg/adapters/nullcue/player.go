// Package nullcue provides a no-op audio cue player.
package nullcue

import (
	"github.com/user/framestep/pkg/ports"
)

// Player is a no-op implementation of ports.CuePlayer.
// It is used when sound is disabled or no audio device is available.
type Player struct{}

// New creates a new null Player.
func New() *Player {
	return &Player{}
}

// Play does nothing.
func (p *Player) Play(cue ports.Cue) {}

// Ensure Player implements ports.CuePlayer
var _ ports.CuePlayer = (*Player)(nil)
