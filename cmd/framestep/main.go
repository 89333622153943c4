// Package main provides the CLI entry point for framestep.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"

	"github.com/user/framestep/pkg/adapters/logger"
	"github.com/user/framestep/pkg/config"
	"github.com/user/framestep/pkg/ports"
)

var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newApp().RunContext(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:                 "framestep",
		Usage:                l10n.T("Step through MP4 and WEBP animations frame by frame"),
		Description:          l10n.T("framestep decodes short animations in the background and lets you play, step and export single frames while they load."),
		Version:              version,
		EnableBashCompletion: true,
		Flags:                globalFlags(),
		Action:               runView,
		ArgsUsage:            l10n.T("[files or directories...]"),
		Commands: []*cli.Command{
			viewCommand(),
			extractCommand(),
			probeCommand(),
			versionCommand(),
		},
	}
}

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "config",
			Aliases:  []string{"c"},
			Usage:    l10n.T("Settings file (default: user config directory)"),
			Category: l10n.T("Configuration"),
		},
		&cli.IntFlag{
			Name:     "max-frames",
			Usage:    l10n.T("Refuse items with more frames than this"),
			Category: l10n.T("Decoding"),
		},
		&cli.StringFlag{
			Name:     "ffmpeg",
			Usage:    l10n.T("Path to the ffmpeg executable"),
			EnvVars:  []string{"FFMPEG_PATH"},
			Category: l10n.T("Decoding"),
		},
		&cli.StringFlag{
			Name:     "log-level",
			Aliases:  []string{"l"},
			Usage:    l10n.T("Log level (debug, info, warn, error)"),
			Category: l10n.T("Logging"),
		},
		&cli.StringFlag{
			Name:     "log-file",
			Usage:    l10n.T("Append logs to this file instead of the console"),
			Category: l10n.T("Logging"),
		},
		&cli.BoolFlag{
			Name:     "quiet",
			Aliases:  []string{"Q"},
			Usage:    l10n.T("Suppress all log output"),
			Category: l10n.T("Logging"),
		},
	}
}

func versionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: l10n.T("Show version information"),
		Action: func(c *cli.Context) error {
			fmt.Fprintln(c.App.Writer, l10n.F("framestep version %s", version))
			return nil
		},
	}
}

// environment is what every command needs: settings and a logger.
type environment struct {
	cfg      config.Config
	// stored is the settings file content without flag overrides.
	stored   config.Config
	cfgPath  string
	log      ports.Logger
	closeLog func() error
}

// setup loads settings, applies flag overrides and creates the logger.
func setup(c *cli.Context) (*environment, error) {
	cfg, path, loaded, err := loadConfig(c.String("config"))
	if err != nil {
		return nil, err
	}
	stored := cfg
	applyFlags(c, &cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	env := &environment{cfg: cfg, stored: stored, cfgPath: path, closeLog: func() error { return nil }}
	switch {
	case c.Bool("quiet"):
		env.log = logger.NewNoop()
	case cfg.LogFile != "":
		fileLog, err := logger.NewFile(cfg.LogFile, cfg.Level())
		if err != nil {
			return nil, err
		}
		env.log = fileLog
		env.closeLog = fileLog.Close
	default:
		env.log = logger.NewConsole(cfg.Level())
	}
	if loaded {
		env.log.Debug("Loaded settings from %s", path)
	}
	return env, nil
}

// loadConfig reads the settings file if there is one. The returned path is
// where settings are saved back, even when the file does not exist yet.
func loadConfig(explicit string) (cfg config.Config, path string, loaded bool, err error) {
	path = config.FindConfigFile(explicit)
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			cfg, err := config.LoadFromFile(path)
			if err != nil {
				return config.Config{}, "", false, err
			}
			return cfg, path, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return config.Config{}, "", false, err
		}
	}

	if path == "" {
		path, _ = config.DefaultPath()
	}
	return config.Defaults(), path, false, nil
}

// applyFlags overrides settings with explicitly given flags.
func applyFlags(c *cli.Context, cfg *config.Config) {
	if c.IsSet("max-frames") {
		cfg.MaxFrames = c.Int("max-frames")
	}
	if c.IsSet("ffmpeg") {
		cfg.FFmpegPath = c.String("ffmpeg")
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
	if c.IsSet("log-file") {
		cfg.LogFile = c.String("log-file")
	}
}
