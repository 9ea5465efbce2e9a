package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/tend/internal/commands"
	"github.com/colonyops/tend/internal/core/config"
	"github.com/colonyops/tend/internal/core/logging"
	"github.com/colonyops/tend/internal/core/styles"
	"github.com/colonyops/tend/internal/core/todo"
	"github.com/colonyops/tend/internal/printer"
	"github.com/colonyops/tend/internal/tend"
	"github.com/colonyops/tend/pkg/logutils"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	// When installed via `go install module@version`, init() populates
	// these from runtime/debug.BuildInfo instead.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func build() string {
	v, c, d := version, commit, date

	// When installed via `go install module@version`, ldflags aren't set
	// so version remains "dev". Fall back to runtime/debug.BuildInfo which
	// Go populates automatically with the module version and VCS metadata.
	if v == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			if mv := info.Main.Version; mv != "" && mv != "(devel)" {
				v = mv
			}
			for _, s := range info.Settings {
				switch s.Key {
				case "vcs.revision":
					c = s.Value
				case "vcs.time":
					d = s.Value
				}
			}
		}
	}

	short := c
	if len(c) > 7 {
		short = c[:7]
	}

	return fmt.Sprintf("%s (%s) %s", v, short, d)
}

// hint returns a follow-up suggestion for storage errors.
func hint(err error) string {
	switch todo.KindOf(err) {
	case todo.KindDataCorrupted:
		return "The stored data could not be read. Import a backup with 'tend data import' or start over with 'tend data reset'."
	case todo.KindQuotaExceeded:
		return "Storage is full. Raise storage.max_bytes in the config file or delete todos."
	case todo.KindStorageUnavailable:
		return "Run 'tend data check' for details."
	}
	return ""
}

func main() {
	ctx := context.Background()

	var (
		logCloser func()
		tendApp   *tend.App
	)

	flags := &commands.Flags{}

	app := commands.NewRootCommand(flags)
	app.Version = build()
	app.Before = func(ctx context.Context, c *cli.Command) (context.Context, error) {
		// Always log to a file; use explicit path or default to <datadir>/tend.log
		logFile := flags.LogFile
		if logFile == "" {
			logFile = filepath.Join(flags.DataDir, "tend.log")
		}

		logger, closer, err := logutils.New(flags.LogLevel, logFile)
		if err != nil {
			return ctx, fmt.Errorf("setup logger: %w", err)
		}
		log.Logger = logger.Hook(logging.ContextHook{})
		logCloser = closer

		cfg, err := config.Load(flags.ConfigPath, flags.DataDir)
		if err != nil {
			return ctx, fmt.Errorf("load config: %w", err)
		}
		if flags.Profile != "" {
			cfg.Storage.Profile = flags.Profile
		}

		// Apply configured theme (validation ensures name is valid)
		palette, _ := styles.GetPalette(cfg.Display.Theme)
		styles.SetTheme(palette)

		flags.Config = cfg
		tendApp = tend.NewApp(cfg, logging.Component("tend"))
		flags.App = tendApp

		ctx = logging.WithProfile(ctx, cfg.Storage.Profile)
		ctx = logging.WithCommand(ctx, c.Args().First())
		ctx = printer.NewContext(ctx, printer.New(os.Stderr, flags.Quiet))
		return ctx, nil
	}
	app.After = func(ctx context.Context, c *cli.Command) error {
		if tendApp != nil {
			if err := tendApp.Close(); err != nil {
				log.Error().Err(err).Msg("failed to close database")
				return err
			}
		}

		if logCloser != nil {
			logCloser()
		}
		return nil
	}

	exitCode := 0
	runErr := app.Run(ctx, os.Args)
	if runErr != nil {
		p := printer.New(os.Stderr, false)
		p.Errorf("%s", runErr.Error())
		if h := hint(runErr); h != "" {
			p.Printf("%s", h)
		}
		exitCode = 1
	}

	os.Exit(exitCode)
}
