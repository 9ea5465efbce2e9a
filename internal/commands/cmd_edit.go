package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/tend/internal/core/styles"
	"github.com/colonyops/tend/internal/core/todo"
	"github.com/colonyops/tend/internal/printer"
	"github.com/colonyops/tend/internal/tend"
	"github.com/colonyops/tend/pkg/iojson"
)

type EditCmd struct {
	flags *Flags

	// flags
	title          string
	description    string
	priority       string
	scheduled      string
	clearScheduled bool
	category       string
	clearCategory  bool
	tags           []string
	addTags        []string
	removeTags     []string
	jsonOutput     bool
}

// NewEditCmd creates a new edit command
func NewEditCmd(flags *Flags) *EditCmd {
	return &EditCmd{flags: flags}
}

// Register adds the edit command to the application
func (cmd *EditCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "edit",
		Usage:     "Change fields of a todo",
		UsageText: "tend edit [options] <id>",
		Description: `Updates only the fields given as flags. The todo is addressed by any unique
prefix of its ID.

--tag replaces all tags; --add-tag and --rm-tag adjust the current set.`,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "title", Usage: "new title", Destination: &cmd.title},
			&cli.StringFlag{Name: "description", Aliases: []string{"d"}, Usage: "new description", Destination: &cmd.description},
			&cli.StringFlag{Name: "priority", Aliases: []string{"p"}, Usage: "priority (low, medium, high)", Destination: &cmd.priority},
			&cli.StringFlag{Name: "scheduled", Aliases: []string{"s"}, Usage: "scheduled date", Destination: &cmd.scheduled},
			&cli.BoolFlag{Name: "clear-scheduled", Usage: "remove the scheduled date", Destination: &cmd.clearScheduled},
			&cli.StringFlag{Name: "category", Aliases: []string{"c"}, Usage: "category name", Destination: &cmd.category},
			&cli.BoolFlag{Name: "clear-category", Usage: "remove the category", Destination: &cmd.clearCategory},
			&cli.StringSliceFlag{Name: "tag", Aliases: []string{"t"}, Usage: "replace tags (repeatable, comma-separated)", Destination: &cmd.tags},
			&cli.StringSliceFlag{Name: "add-tag", Usage: "add a tag", Destination: &cmd.addTags},
			&cli.StringSliceFlag{Name: "rm-tag", Usage: "remove a tag", Destination: &cmd.removeTags},
			&cli.BoolFlag{Name: "json", Usage: "print the updated todo as JSON", Destination: &cmd.jsonOutput},
		},
		ShellComplete: TodoIDCompleter(cmd.flags),
		Action:        cmd.run,
	})

	return app
}

func (cmd *EditCmd) run(ctx context.Context, c *cli.Command) error {
	p := printer.Ctx(ctx)

	id := c.Args().First()
	if id == "" {
		return errors.New("todo id is required")
	}

	in, err := cmd.input(c, time.Now())
	if err != nil {
		return err
	}

	updated, err := cmd.flags.App.Todos.Edit(ctx, id, in)
	if err != nil {
		return fmt.Errorf("edit todo: %w", err)
	}

	if cmd.jsonOutput {
		return iojson.WriteWith(c.Root().Writer, os.Stderr, updated)
	}

	p.Successf("Updated %s %s", styles.IDStyle.Render(updated.ID), updated.Title)
	return nil
}

// input builds the partial update from the flags that were set.
func (cmd *EditCmd) input(c *cli.Command, now time.Time) (tend.EditInput, error) {
	var in tend.EditInput

	if c.IsSet("title") {
		in.Title = todo.Some(cmd.title)
	}
	if c.IsSet("description") {
		in.Description = todo.Some(cmd.description)
	}
	if c.IsSet("priority") {
		p, err := parsePriority(cmd.priority)
		if err != nil {
			return in, err
		}
		if p == "" {
			return in, errors.New("priority cannot be empty")
		}
		in.Priority = todo.Some(p)
	}

	switch {
	case cmd.clearScheduled && c.IsSet("scheduled"):
		return in, errors.New("--scheduled and --clear-scheduled are mutually exclusive")
	case cmd.clearScheduled:
		in.ScheduledAt = todo.Some[*string](nil)
	case c.IsSet("scheduled"):
		at, err := parseDate(cmd.scheduled, false, now)
		if err != nil {
			return in, err
		}
		if at == "" {
			in.ScheduledAt = todo.Some[*string](nil)
		} else {
			in.ScheduledAt = todo.Some(&at)
		}
	}

	switch {
	case cmd.clearCategory && c.IsSet("category"):
		return in, errors.New("--category and --clear-category are mutually exclusive")
	case cmd.clearCategory:
		in.Category = todo.Some("")
	case c.IsSet("category"):
		in.Category = todo.Some(cmd.category)
	}

	if c.IsSet("tag") {
		in.Tags = todo.Some(splitList(cmd.tags))
	}
	in.AddTags = splitList(cmd.addTags)
	in.RemoveTags = splitList(cmd.removeTags)

	return in, nil
}
