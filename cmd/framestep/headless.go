package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/ideamans/go-l10n"
	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v2"
	"golang.org/x/term"

	"github.com/user/framestep/pkg/adapters/mp4probe"
	"github.com/user/framestep/pkg/adapters/osfilesystem"
	"github.com/user/framestep/pkg/adapters/pngexport"
	"github.com/user/framestep/pkg/adapters/smartdecoder"
	"github.com/user/framestep/pkg/decodejob"
	"github.com/user/framestep/pkg/framestore"
	"github.com/user/framestep/pkg/media"
	"github.com/user/framestep/pkg/ports"
	"github.com/user/framestep/pkg/summarizer"
)

var (
	errMissingPath  = errors.New("a media file argument is required")
	errInvalidFrame = errors.New("--frame must be 1 or greater")
)

func extractCommand() *cli.Command {
	return &cli.Command{
		Name:      "extract",
		Usage:     l10n.T("Save one frame of a file as PNG"),
		ArgsUsage: l10n.T("<file>"),
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:     "frame",
				Aliases:  []string{"f"},
				Usage:    l10n.T("Frame number to save (1-origin)"),
				Required: true,
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   l10n.T("Output PNG path (default: next to the source)"),
			},
		},
		Action: runExtract,
	}
}

func probeCommand() *cli.Command {
	return &cli.Command{
		Name:      "probe",
		Usage:     l10n.T("Decode a file and report its frames"),
		ArgsUsage: l10n.T("<file>"),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "summary",
				Usage: l10n.T("Write a Markdown report to this file"),
			},
		},
		Action: runProbe,
	}
}

// runExtract decodes up to the requested frame and saves it.
func runExtract(c *cli.Context) error {
	if c.NArg() < 1 {
		return errMissingPath
	}
	number := c.Int("frame")
	if number < 1 {
		return errInvalidFrame
	}
	env, err := setup(c)
	if err != nil {
		return err
	}
	defer env.closeLog()

	path := c.Args().First()
	fs := osfilesystem.New()
	job := startJob(c, env, path)
	defer job.Cancel()

	var failure error
	for ev := range job.Events() {
		if ev.Kind == decodejob.EventFailed {
			failure = ev.Err
		}
		if ev.LoadedFrames >= number {
			// Frames after the requested one are not needed.
			job.Cancel()
		}
	}
	job.Wait()

	frame, err := job.Store().FrameAt(number - 1)
	if err != nil {
		switch {
		case failure != nil:
			return failure
		case c.Context.Err() != nil:
			return c.Context.Err()
		default:
			return fmt.Errorf("%s: %w (%d frames)", path, framestore.ErrOutOfRange, job.Store().Snapshot().TotalFrames)
		}
	}

	req := ports.ExportRequest{SourcePath: path, FrameIndex: number - 1, Frame: frame}
	dest := c.String("output")
	if dest == "" {
		dest, err = pngexport.New(env.cfg.Export.Dir, fs).Export(req)
	} else {
		err = writePNG(fs, dest, frame)
	}
	if err != nil {
		return err
	}

	env.log.Info("Saved: %s", dest)
	return nil
}

func writePNG(fs ports.FileSystem, path string, frame *media.Frame) error {
	data, err := pngexport.Encode(frame)
	if err != nil {
		return err
	}
	return fs.WriteFile(path, data)
}

// runProbe decodes the whole file, showing a live progress line on terminals.
func runProbe(c *cli.Context) error {
	if c.NArg() < 1 {
		return errMissingPath
	}
	env, err := setup(c)
	if err != nil {
		return err
	}
	defer env.closeLog()

	path := c.Args().First()
	out := c.App.Writer
	live := isTerminal(out)
	report := summarizer.NewBuilder().WithSettings(reportSettings(env, path))

	kind := media.Classify(path)
	var size int64
	if fi, err := os.Stat(path); err == nil {
		size = fi.Size()
	}
	report.WithFile(path, kind, size)

	if kind == media.KindVideo {
		if info, err := mp4probe.ProbeFile(path); err == nil {
			report.WithContainer(info)
			fmt.Fprintln(out, l10n.F("Container: %s %dx%d, %d frames at %.3f fps",
				info.Codec, info.Width, info.Height, info.FrameCount, info.NominalRate))
		} else {
			env.log.Debug("Container probe failed: %s", err)
		}
	}

	started := time.Now()
	job := startJob(c, env, path)
	defer job.Cancel()

	var failure error
	for ev := range job.Events() {
		switch ev.Kind {
		case decodejob.EventProgress:
			if live {
				fmt.Fprint(out, "\r"+fitLine(progressLine(ev.LoadedFrames, ev.TotalFrames), terminalWidth(out)))
			}
		case decodejob.EventFailed:
			failure = ev.Err
		}
	}
	job.Wait()
	if live {
		fmt.Fprintln(out)
	}

	snap := job.Store().Snapshot()
	fmt.Fprintln(out, summaryLine(path, snap, job.Store()))

	if dest := c.String("summary"); dest != "" {
		report.WithDecode(decodeInfo(job, failure, time.Since(started)))
		w := summarizer.NewWriter(summarizer.NewMarkdownFormatter(
			summarizer.WithTranslator(func(s string) string { return l10n.T(s) }),
			summarizer.WithVersion(version),
		), osfilesystem.New())
		if err := w.Write(dest, report.Build()); err != nil {
			return err
		}
		env.log.Info("Summary saved to %s", dest)
	}

	if failure == nil && job.State() == decodejob.StateCancelled {
		return c.Context.Err()
	}
	return failure
}

func reportSettings(env *environment, path string) summarizer.Settings {
	backend, _ := smartdecoder.BackendFor(media.Classify(path))
	opts := env.cfg.ToSessionConfig().Job
	return summarizer.Settings{
		MaxFrames:              opts.MaxFrames,
		DefaultFrameRate:       opts.DefaultFrameRate,
		DefaultFrameDurationMs: opts.DefaultFrameDurationMs,
		Backend:                string(backend),
	}
}

func decodeInfo(job *decodejob.Job, failure error, elapsed time.Duration) summarizer.DecodeInfo {
	snap := job.Store().Snapshot()
	info := summarizer.DecodeInfo{
		State:        job.State().String(),
		LoadedFrames: snap.LoadedFrames,
		TotalFrames:  snap.TotalFrames,
		FrameRate:    snap.FrameRate,
		ElapsedMs:    int(elapsed.Milliseconds()),
	}
	if f, err := job.Store().FrameAt(0); err == nil {
		info.FrameWidth, info.FrameHeight = f.Width, f.Height
	}
	if failure != nil {
		info.Error = failure.Error()
	}
	return info
}

func startJob(c *cli.Context, env *environment, path string) *decodejob.Job {
	factory := smartdecoder.New(smartdecoder.Options{FFmpegPath: env.cfg.FFmpegPath}, osfilesystem.New(), env.log)
	opts := env.cfg.ToSessionConfig().Job
	return decodejob.Start(c.Context, path, factory, opts, env.log.WithComponent("decodejob"))
}

func progressLine(loaded, total int) string {
	if total <= 0 {
		return l10n.F("Decoding frame %d", loaded)
	}
	const barWidth = 30
	filled := min(loaded*barWidth/total, barWidth)
	bar := strings.Repeat("#", filled) + strings.Repeat("-", barWidth-filled)
	return l10n.F("[%s] %d / %d frames", bar, loaded, total)
}

func summaryLine(path string, snap framestore.Snapshot, store *framestore.Store) string {
	width, height := 0, 0
	if f, err := store.FrameAt(0); err == nil {
		width, height = f.Width, f.Height
	}
	return l10n.F("%s: %d / %d frames, %.3f fps, %dx%d",
		path, snap.LoadedFrames, snap.TotalFrames, snap.FrameRate, width, height)
}

// fitLine pads or truncates line to exactly width columns so that a shorter
// line fully overwrites a longer one.
func fitLine(line string, width int) string {
	if width <= 1 {
		return line
	}
	width--
	runes := []rune(line)
	if len(runes) > width {
		return string(runes[:width])
	}
	return line + strings.Repeat(" ", width-len(runes))
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok {
		return 80
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}
