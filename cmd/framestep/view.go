package main

import (
	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"

	"github.com/user/framestep/pkg/adapters/clipboardexport"
	"github.com/user/framestep/pkg/adapters/ebitenview"
	"github.com/user/framestep/pkg/adapters/ggplaceholder"
	"github.com/user/framestep/pkg/adapters/nullcue"
	"github.com/user/framestep/pkg/adapters/osfilesystem"
	"github.com/user/framestep/pkg/adapters/otocue"
	"github.com/user/framestep/pkg/adapters/pngexport"
	"github.com/user/framestep/pkg/adapters/smartdecoder"
	"github.com/user/framestep/pkg/config"
	"github.com/user/framestep/pkg/ports"
	"github.com/user/framestep/pkg/session"
)

func viewCommand() *cli.Command {
	return &cli.Command{
		Name:      "view",
		Usage:     l10n.T("Open the viewer window (default)"),
		ArgsUsage: l10n.T("[files or directories...]"),
		Action:    runView,
	}
}

// runView opens the window with the given paths as the first playlist.
func runView(c *cli.Context) error {
	env, err := setup(c)
	if err != nil {
		return err
	}
	defer env.closeLog()
	cfg := env.cfg

	fs := osfilesystem.New()
	factory := smartdecoder.New(smartdecoder.Options{FFmpegPath: cfg.FFmpegPath}, fs, env.log)

	cues, closeCues := newCuePlayer(cfg.Sound, env.log)
	defer closeCues()

	game := ebitenview.New(ebitenview.Options{
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Background: config.ParseColor(cfg.Theme.BackgroundColor),
		Text:       config.ParseColor(cfg.Theme.TextColor),
		Painter:    ggplaceholder.New(theme(cfg.Theme)),
		Logger:     env.log,
	})

	sess := session.New(c.Context, cfg.ToSessionConfig(), session.Deps{
		Factory:   factory,
		Renderer:  game,
		Cues:      cues,
		Exporter:  pngexport.New(cfg.Export.Dir, fs),
		Clipboard: clipboardexport.New(),
		Logger:    env.log,
	})
	defer sess.Close()
	game.Attach(sess)

	if c.NArg() > 0 {
		sess.Drop(c.Args().Slice())
	}
	sess.Redraw()

	if err := game.Run(); err != nil {
		return err
	}

	stored := env.stored
	stored.Window.Width, stored.Window.Height = game.Size()
	saveSettings(env, stored)
	return nil
}

// newCuePlayer returns the audio cue player, or a silent one when sound is
// disabled or no audio device is available.
func newCuePlayer(sound config.SoundConfig, log ports.Logger) (ports.CuePlayer, func()) {
	if !sound.Enabled {
		return nullcue.New(), func() {}
	}
	player, err := otocue.New(sound.Volume)
	if err != nil {
		log.Warn("Audio cues disabled: %s", err)
		return nullcue.New(), func() {}
	}
	return player, func() { player.Close() }
}

func theme(t config.ThemeConfig) ggplaceholder.Theme {
	return ggplaceholder.Theme{
		Background:  config.ParseColor(t.BackgroundColor),
		Text:        config.ParseColor(t.TextColor),
		Accent:      config.ParseColor(t.AccentColor),
		ProgressBar: config.ParseColor(t.ProgressBarColor),
	}
}

// saveSettings writes the settings back so window size and sound survive restarts.
func saveSettings(env *environment, cfg config.Config) {
	if env.cfgPath == "" || cfg.Validate() != nil {
		return
	}
	if err := config.SaveToFile(env.cfgPath, cfg); err != nil {
		env.log.Warn("Failed to save settings: %s", err)
		return
	}
	env.log.Debug("Saved settings to %s", env.cfgPath)
}
