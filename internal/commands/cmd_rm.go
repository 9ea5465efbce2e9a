package commands

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/tend/internal/core/todo"
)

type RmCmd struct {
	flags *Flags

	// flags
	jsonOutput bool
}

// NewRmCmd creates a new rm command
func NewRmCmd(flags *Flags) *RmCmd {
	return &RmCmd{flags: flags}
}

// Register adds the rm and restore commands to the application
func (cmd *RmCmd) Register(app *cli.Command) *cli.Command {
	jsonFlag := &cli.BoolFlag{
		Name:        "json",
		Usage:       "print the updated todos as JSON",
		Destination: &cmd.jsonOutput,
	}

	app.Commands = append(app.Commands,
		&cli.Command{
			Name:          "rm",
			Usage:         "Move todos to the trash",
			UsageText:     "tend rm <id>...",
			Description:   "Soft-deletes todos. Deleted todos are listed by 'tend trash' and can be restored.",
			Flags:         []cli.Flag{jsonFlag},
			ShellComplete: TodoIDCompleter(cmd.flags),
			Action: func(ctx context.Context, c *cli.Command) error {
				return applyEach(ctx, c, cmd.jsonOutput, cmd.flags.App.Todos.Delete, func(todo.Todo) string { return "Deleted" })
			},
		},
		&cli.Command{
			Name:      "restore",
			Usage:     "Restore todos from the trash",
			UsageText: "tend restore <id>...",
			Flags: []cli.Flag{&cli.BoolFlag{
				Name:        "json",
				Usage:       "print the restored todos as JSON",
				Destination: &cmd.jsonOutput,
			}},
			Action: func(ctx context.Context, c *cli.Command) error {
				return applyEach(ctx, c, cmd.jsonOutput, cmd.flags.App.Todos.Restore, func(todo.Todo) string { return "Restored" })
			},
		},
	)

	return app
}
