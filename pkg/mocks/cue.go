package mocks

import (
	"sync"

	"github.com/user/framestep/pkg/ports"
)

// CuePlayer is a mock implementation of ports.CuePlayer that records cues.
type CuePlayer struct {
	mu   sync.Mutex
	Cues []ports.Cue
}

func (m *CuePlayer) Play(cue ports.Cue) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Cues = append(m.Cues, cue)
}

// Count returns how many times cue was played.
func (m *CuePlayer) Count(cue ports.Cue) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.Cues {
		if c == cue {
			n++
		}
	}
	return n
}

// Reset forgets recorded cues.
func (m *CuePlayer) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Cues = nil
}

var _ ports.CuePlayer = (*CuePlayer)(nil)
