package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/tend/pkg/iojson"
)

type ShowCmd struct {
	flags *Flags

	// flags
	jsonOutput bool
}

// NewShowCmd creates a new show command
func NewShowCmd(flags *Flags) *ShowCmd {
	return &ShowCmd{flags: flags}
}

// Register adds the show command to the application
func (cmd *ShowCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:        "show",
		Usage:       "Show a todo",
		UsageText:   "tend show [--json] <id>",
		Description: "Displays every field of a todo, including deleted ones. The description is rendered as markdown.",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON",
				Destination: &cmd.jsonOutput,
			},
		},
		ShellComplete: TodoIDCompleter(cmd.flags),
		Action:        cmd.run,
	})

	return app
}

func (cmd *ShowCmd) run(ctx context.Context, c *cli.Command) error {
	id := c.Args().First()
	if id == "" {
		return errors.New("todo id is required")
	}

	t, err := cmd.flags.App.Todos.Get(ctx, id)
	if err != nil {
		return err
	}

	if cmd.jsonOutput {
		return iojson.WriteWith(c.Root().Writer, os.Stderr, t)
	}

	ix, err := cmd.flags.App.Index(ctx)
	if err != nil {
		return err
	}

	if err := renderTodo(c.Root().Writer, t, ix, cmd.flags.Config.Display.MarkdownStyle, time.Now()); err != nil {
		return fmt.Errorf("show todo: %w", err)
	}
	return nil
}
