package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/tend/internal/core/todo"
	"github.com/colonyops/tend/internal/tend"
)

// TodoIDCompleter returns a ShellCompleteFunc that suggests the short IDs of
// live todos. Set this as the ShellComplete field on any cli.Command that
// accepts todo IDs as arguments.
//
// When the user's last typed argument starts with "-", it falls back to the
// default flag completion behavior.
func TodoIDCompleter(flags *Flags) cli.ShellCompleteFunc {
	return func(ctx context.Context, cmd *cli.Command) {
		if args := cmd.Args(); args.Present() {
			last := args.Slice()[args.Len()-1]
			if len(last) > 0 && last[0] == '-' {
				cli.DefaultCompleteWithFlags(ctx, cmd)
				return
			}
		}

		if flags.App == nil {
			return
		}

		todos, err := flags.App.Todos.List(ctx, tend.ListOptions{Status: todo.CompletionAll})
		if err != nil {
			return
		}
		ix, err := flags.App.Index(ctx)
		if err != nil {
			return
		}

		w := cmd.Root().Writer
		for _, t := range todos {
			_, _ = fmt.Fprintln(w, ix.ShortID(t.ID))
		}
	}
}
