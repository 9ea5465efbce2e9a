package commands

import (
	"context"
	"errors"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/tend/internal/core/styles"
	"github.com/colonyops/tend/internal/core/todo"
	"github.com/colonyops/tend/internal/printer"
	"github.com/colonyops/tend/pkg/iojson"
)

type todoOp func(ctx context.Context, prefix string) (todo.Todo, error)

// applyEach runs op for every ID argument. Failures are reported and the
// remaining IDs still run; the command exits 1 if any failed.
func applyEach(ctx context.Context, c *cli.Command, jsonOutput bool, op todoOp, describe func(todo.Todo) string) error {
	p := printer.Ctx(ctx)

	ids := c.Args().Slice()
	if len(ids) == 0 {
		return errors.New("at least one todo id is required")
	}

	done := make([]todo.Todo, 0, len(ids))
	failed := 0
	for _, id := range ids {
		t, err := op(ctx, id)
		if err != nil {
			p.Errorf("%s: %v", id, err)
			failed++
			continue
		}
		done = append(done, t)
		p.Successf("%s %s %s", describe(t), styles.IDStyle.Render(t.ID), t.Title)
	}

	if jsonOutput {
		if err := iojson.WriteWith(c.Root().Writer, os.Stderr, done); err != nil {
			return err
		}
	}

	if failed > 0 {
		return cli.Exit("", 1)
	}
	return nil
}
