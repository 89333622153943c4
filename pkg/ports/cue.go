package ports

// Cue is a discrete, named signal for the audio-cue collaborator.
type Cue string

const (
	// CueBoundaryReached fires when a manual step cannot move past the first or last frame.
	CueBoundaryReached Cue = "boundaryReached"
	// CueLoopedAround fires when autoplay wraps from the last frame to the first.
	CueLoopedAround Cue = "loopedAround"
	// CueFormatUnsupported fires when an item cannot be decoded because of its format.
	CueFormatUnsupported Cue = "formatUnsupported"
	// CueTooManyFrames fires when an item exceeds the frame ceiling.
	CueTooManyFrames Cue = "tooManyFrames"
)

// CuePlayer plays audio cues. Play is fire-and-forget and MUST NOT block.
type CuePlayer interface {
	Play(cue Cue)
}
