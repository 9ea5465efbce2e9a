package commands

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/tend/internal/core/todo"
)

type DoneCmd struct {
	flags *Flags

	// flags
	jsonOutput bool
}

// NewDoneCmd creates a new done command
func NewDoneCmd(flags *Flags) *DoneCmd {
	return &DoneCmd{flags: flags}
}

// Register adds the done command to the application
func (cmd *DoneCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:        "done",
		Aliases:     []string{"toggle"},
		Usage:       "Toggle completion of todos",
		UsageText:   "tend done <id>...",
		Description: "Marks open todos completed and completed todos open again.",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "print the updated todos as JSON",
				Destination: &cmd.jsonOutput,
			},
		},
		ShellComplete: TodoIDCompleter(cmd.flags),
		Action:        cmd.run,
	})

	return app
}

func (cmd *DoneCmd) run(ctx context.Context, c *cli.Command) error {
	return applyEach(ctx, c, cmd.jsonOutput, cmd.flags.App.Todos.Toggle, func(t todo.Todo) string {
		if t.IsCompleted {
			return "Completed"
		}
		return "Reopened"
	})
}
