// Package session is the foreground control flow of the viewer. It wires the
// playlist, the decode job and the playback controller together and turns
// their state into views for the renderer.
//
// All methods must be called from one goroutine (the UI loop).
package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/ideamans/go-l10n"

	"github.com/user/framestep/pkg/collect"
	"github.com/user/framestep/pkg/decodejob"
	"github.com/user/framestep/pkg/framestore"
	"github.com/user/framestep/pkg/media"
	"github.com/user/framestep/pkg/playback"
	"github.com/user/framestep/pkg/playlist"
	"github.com/user/framestep/pkg/ports"
)

// Config holds the settings the core treats as fixed for the process.
type Config struct {
	Job decodejob.Options
}

// DefaultConfig returns the default session configuration.
func DefaultConfig() Config {
	return Config{Job: decodejob.DefaultOptions()}
}

// Deps are the collaborators of a session. Cues, Exporter and Clipboard may be nil.
type Deps struct {
	Factory   ports.DecoderFactory
	Renderer  ports.Renderer
	Cues      ports.CuePlayer
	Exporter  ports.FrameExporter
	Clipboard ports.FrameExporter
	Logger    ports.Logger
	// Clock drives the autoplay timer. Defaults to time.Now.
	Clock func() time.Time
}

// Session is the viewer state shared by the window and its input handlers.
type Session struct {
	nav    *playlist.Navigator
	ctl    *playback.Controller
	deps   Deps
	logger ports.Logger

	jobID  uuid.UUID
	events <-chan decodejob.Event

	// itemStatus describes the active item (loading, failed) and lasts until navigation.
	itemStatus string
	// notice is the result of the last user action and is cleared by the next one.
	notice string
}

// New creates a session with an empty playlist.
func New(ctx context.Context, cfg Config, deps Deps) *Session {
	logger := deps.Logger.WithComponent("session")
	ctl := playback.New(deps.Cues, deps.Clock)
	runner := decodejob.NewRunner(deps.Factory, cfg.Job, deps.Logger.WithComponent("decodejob"))

	return &Session{
		nav:    playlist.New(ctx, runner, ctl, logger),
		ctl:    ctl,
		deps:   deps,
		logger: logger,
	}
}

// Open replaces the playlist and starts decoding startIndex.
func (s *Session) Open(paths []string, startIndex int) {
	s.logger.Info("Playlist: %d files, starting at %d", len(paths), startIndex+1)
	s.notice = ""
	s.attach(s.nav.SetPlaylist(paths, startIndex))
	s.present()
}

// Drop collects dropped files and directories into a new playlist. A drop
// without any playable file leaves the current playlist untouched.
func (s *Session) Drop(inputs []string) bool {
	paths := collect.Paths(inputs)
	if len(paths) == 0 {
		s.logger.Debug("No playable files in drop")
		return false
	}
	s.Open(paths, 0)
	return true
}

// Next activates the next playlist item.
func (s *Session) Next() {
	s.notice = ""
	s.attach(s.nav.Next())
	s.present()
}

// Previous activates the previous playlist item.
func (s *Session) Previous() {
	s.notice = ""
	s.attach(s.nav.Previous())
	s.present()
}

// StepForward moves one frame forward, stopping autoplay.
func (s *Session) StepForward() {
	s.notice = ""
	s.ctl.StepForward()
	s.present()
}

// StepBackward moves one frame back, stopping autoplay.
func (s *Session) StepBackward() {
	s.notice = ""
	s.ctl.StepBackward()
	s.present()
}

// ChangeSpeed resumes or cycles the autoplay speed.
func (s *Session) ChangeSpeed() {
	s.notice = ""
	s.ctl.ChangeSpeed()
	s.present()
}

// TogglePlay is bound to Space and the primary mouse button. It follows the
// speed ladder so repeated presses walk through every speed and back to stop.
func (s *Session) TogglePlay() {
	s.ChangeSpeed()
}

// Export saves the current frame through the file exporter and returns
// where it went.
func (s *Session) Export() (string, error) {
	dest, err := s.export(s.deps.Exporter)
	if err == nil {
		s.notice = l10n.F("Saved: %s", dest)
		s.logger.Info("Exported frame %d to %s", s.ctl.Current()+1, dest)
	}
	s.present()
	return dest, err
}

// CopyFrame puts the current frame on the clipboard.
func (s *Session) CopyFrame() error {
	_, err := s.export(s.deps.Clipboard)
	if err == nil {
		s.notice = l10n.T("Copied to clipboard")
	}
	s.present()
	return err
}

func (s *Session) export(exp ports.FrameExporter) (string, error) {
	path, ok := s.nav.Current()
	if !ok {
		return "", ErrNothingLoaded
	}
	if exp == nil {
		s.notice = l10n.T("Export is not available")
		return "", ErrNoExporter
	}

	frame, err := s.ctl.Frame()
	if err != nil {
		if errors.Is(err, framestore.ErrNotYetAvailable) {
			s.notice = l10n.T("Frame not loaded yet")
		} else {
			s.notice = l10n.F("Error: %s", err)
		}
		return "", err
	}

	dest, err := exp.Export(ports.ExportRequest{
		SourcePath: path,
		FrameIndex: s.ctl.Current(),
		Frame:      frame,
	})
	if err != nil {
		s.logger.Warn("Export failed: %s", err)
		s.notice = l10n.F("Error: %s", err)
		return "", err
	}
	return dest, nil
}

// Redraw re-presents the current state, e.g. after the window was resized.
func (s *Session) Redraw() {
	s.present()
}

// Update drains pending decode events without blocking and fires due
// autoplay ticks. It reports whether a new view was presented.
func (s *Session) Update(now time.Time) bool {
	changed := s.drain()
	if s.ctl.Poll(now) > 0 {
		changed = true
	}
	if changed {
		s.present()
	}
	return changed
}

// Close cancels decoding and waits for the decoder to be released.
func (s *Session) Close() {
	s.nav.Close()
	s.events = nil
}

// View returns the view for the current state.
func (s *Session) View() ports.View {
	path, _ := s.nav.Current()
	frame, _ := s.ctl.Frame()
	d := s.Display()
	return ports.View{
		Frame:      frame,
		FrameIndex: d.CurrentFrame,
		Display:    d,
		StatusLine: s.StatusLine(),
		Title:      path,
	}
}

// Display returns the record describing the current state.
func (s *Session) Display() ports.Display {
	return s.ctl.Display(s.nav.Index(), s.nav.Len())
}

// Controller exposes the playback controller for read-only inspection.
func (s *Session) Controller() *playback.Controller { return s.ctl }

// Navigator exposes the playlist for read-only inspection.
func (s *Session) Navigator() *playlist.Navigator { return s.nav }

// StatusLine renders the localized status text.
func (s *Session) StatusLine() string {
	if s.nav.Len() == 0 {
		return l10n.T("Drop MP4 or WEBP files here")
	}

	d := s.Display()
	frame := 0
	if d.TotalFrames > 0 {
		frame = d.CurrentFrame + 1
	}
	line := l10n.F("File: %d / %d  Frame: %d / %d  Loaded: %d  Speed: %s",
		d.FileIndex+1, d.FileCount, frame, d.TotalFrames, d.LoadedFrames, l10n.T(d.SpeedLabel))
	for _, extra := range []string{s.itemStatus, s.notice} {
		if extra != "" {
			line += "  " + extra
		}
	}
	return line
}

func (s *Session) attach(job *decodejob.Job) {
	if job == nil {
		s.jobID = uuid.Nil
		s.events = nil
		s.itemStatus = ""
		return
	}
	s.jobID = job.ID()
	s.events = job.Events()
	s.itemStatus = l10n.T("Loading...")
}

// drain consumes every queued event of the active job.
func (s *Session) drain() bool {
	changed := false
	for s.events != nil {
		select {
		case ev, ok := <-s.events:
			if !ok {
				s.events = nil
				return changed
			}
			if ev.JobID != s.jobID {
				s.logger.Debug("Ignoring stale event from job %s", ev.JobID)
				continue
			}
			s.handle(ev)
			changed = true
		default:
			return changed
		}
	}
	return changed
}

func (s *Session) handle(ev decodejob.Event) {
	switch ev.Kind {
	case decodejob.EventProgress:
		// The view picks the frame up from the store.
	case decodejob.EventComplete:
		s.itemStatus = ""
		s.ctl.Clamp()
	case decodejob.EventFailed:
		s.fail(ev.Err)
	}
}

func (s *Session) fail(err error) {
	var tooMany *media.TooManyFramesError
	switch {
	case errors.Is(err, media.ErrUnsupportedFormat):
		s.itemStatus = l10n.T("Unsupported format")
		s.play(ports.CueFormatUnsupported)
	case errors.As(err, &tooMany):
		s.itemStatus = l10n.F("Too many frames: %d (limit %d)", tooMany.Count, tooMany.Limit)
		s.play(ports.CueTooManyFrames)
		// Nothing of an oversized item is kept.
		s.ctl.Reset()
	default:
		s.itemStatus = l10n.F("Error: %s", err)
	}
	s.ctl.Clamp()
}

func (s *Session) play(cue ports.Cue) {
	if s.deps.Cues != nil {
		s.deps.Cues.Play(cue)
	}
}

func (s *Session) present() {
	if s.deps.Renderer != nil {
		s.deps.Renderer.Present(s.View())
	}
}
