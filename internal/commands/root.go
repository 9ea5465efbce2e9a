package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

// NewRootCommand builds the tend command tree with its global flags bound to
// flags. The caller adds Version, Before, and After.
func NewRootCommand(flags *Flags) *cli.Command {
	root := &cli.Command{
		Name:      "tend",
		Usage:     "Track todos from the terminal",
		UsageText: "tend [global options] command [command options]",
		Description: `tend keeps a local list of todos with tags, a category, a priority, and an
optional scheduled date. Deleted todos go to the trash and can be restored.

Run 'tend' with no arguments to list your todos.
Run 'tend add <title>' to create one.`,
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("TEND_LOG_LEVEL"),
				Value:       "info",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (defaults to <data-dir>/tend.log)",
				Sources:     cli.EnvVars("TEND_LOG_FILE"),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Usage:       "path to config file",
				Sources:     cli.EnvVars("TEND_CONFIG"),
				Value:       DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "data-dir",
				Usage:       "path to data directory",
				Sources:     cli.EnvVars("TEND_DATA_DIR"),
				Value:       DefaultDataDir(),
				Destination: &flags.DataDir,
			},
			&cli.StringFlag{
				Name:        "profile",
				Usage:       "storage profile, overrides storage.profile from the config file",
				Sources:     cli.EnvVars("TEND_PROFILE"),
				Destination: &flags.Profile,
			},
			&cli.BoolFlag{
				Name:        "quiet",
				Usage:       "print only errors and command output",
				Destination: &flags.Quiet,
			},
		},
	}

	lsCmd := NewLsCmd(flags)

	root = NewAddCmd(flags).Register(root)
	root = lsCmd.Register(root)
	root = NewShowCmd(flags).Register(root)
	root = NewEditCmd(flags).Register(root)
	root = NewDoneCmd(flags).Register(root)
	root = NewRmCmd(flags).Register(root)
	root = NewBatchCmd(flags).Register(root)
	root = NewLabelCmd(flags).Register(root)
	root = NewDataCmd(flags).Register(root)
	root = NewConfigValidateCmd(flags).Register(root)
	root = NewInitCmd(flags).Register(root)

	// List todos when no subcommand is provided
	root.Action = func(ctx context.Context, c *cli.Command) error {
		if c.Args().Len() > 0 {
			return fmt.Errorf("unknown command %q. Run 'tend --help' for usage", c.Args().First())
		}
		return lsCmd.Run(ctx, c)
	}

	return root
}
