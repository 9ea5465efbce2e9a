package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/tend/internal/core/todo"
	"github.com/colonyops/tend/internal/printer"
	"github.com/colonyops/tend/internal/tend"
	"github.com/colonyops/tend/pkg/iojson"
)

type LsCmd struct {
	flags *Flags

	// flags
	tags       []string
	categories []string
	priorities []string
	status     string
	from       string
	to         string
	sort       string
	desc       bool
	search     string
	jsonOutput bool
	jsonLines  bool
}

// NewLsCmd creates a new ls command
func NewLsCmd(flags *Flags) *LsCmd {
	return &LsCmd{flags: flags}
}

// Register adds the ls and trash commands to the application
func (cmd *LsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands,
		&cli.Command{
			Name:      "ls",
			Aliases:   []string{"list"},
			Usage:     "List todos",
			UsageText: "tend ls [options]",
			Description: `Displays the todos that pass every filter. Deleted todos are never listed;
see 'tend trash'.

Values within --tag, --category, and --priority match any of the given values.
Different filters must all match. Tag and category names accept glob patterns
such as 'proj-*'.

Without --sort the display.sort setting from the config file applies.`,
			Flags:  cmd.listFlags(),
			Action: cmd.Run,
		},
		&cli.Command{
			Name:      "trash",
			Usage:     "List deleted todos",
			UsageText: "tend trash [--json]",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:        "json",
					Usage:       "output as JSON",
					Destination: &cmd.jsonOutput,
				},
			},
			Action: cmd.runTrash,
		},
	)

	return app
}

func (cmd *LsCmd) listFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringSliceFlag{
			Name:        "tag",
			Aliases:     []string{"t"},
			Usage:       "only todos with one of these tags (repeatable, globs allowed)",
			Destination: &cmd.tags,
		},
		&cli.StringSliceFlag{
			Name:        "category",
			Aliases:     []string{"c"},
			Usage:       "only todos in one of these categories (repeatable, globs allowed)",
			Destination: &cmd.categories,
		},
		&cli.StringSliceFlag{
			Name:        "priority",
			Aliases:     []string{"p"},
			Usage:       "only todos with one of these priorities",
			Destination: &cmd.priorities,
		},
		&cli.StringFlag{
			Name:        "status",
			Usage:       "all, active, or completed",
			Value:       string(todo.CompletionAll),
			Destination: &cmd.status,
		},
		&cli.StringFlag{
			Name:        "from",
			Usage:       "only todos scheduled on or after this date",
			Destination: &cmd.from,
		},
		&cli.StringFlag{
			Name:        "to",
			Usage:       "only todos scheduled on or before this date",
			Destination: &cmd.to,
		},
		&cli.StringFlag{
			Name:        "sort",
			Usage:       "priority, scheduled, created, or none",
			Destination: &cmd.sort,
		},
		&cli.BoolFlag{
			Name:        "desc",
			Usage:       "sort descending",
			Destination: &cmd.desc,
		},
		&cli.StringFlag{
			Name:        "search",
			Usage:       "fuzzy match titles, best match first",
			Destination: &cmd.search,
		},
		&cli.BoolFlag{
			Name:        "json",
			Usage:       "output as a JSON array",
			Destination: &cmd.jsonOutput,
		},
		&cli.BoolFlag{
			Name:        "jsonl",
			Usage:       "output as JSON lines, one todo per line",
			Destination: &cmd.jsonLines,
		},
	}
}

func (cmd *LsCmd) options(now time.Time) (tend.ListOptions, error) {
	priorities, err := parsePriorities(cmd.priorities)
	if err != nil {
		return tend.ListOptions{}, err
	}
	status, err := parseStatus(cmd.status)
	if err != nil {
		return tend.ListOptions{}, err
	}
	from, err := parseDate(cmd.from, false, now)
	if err != nil {
		return tend.ListOptions{}, err
	}
	to, err := parseDate(cmd.to, true, now)
	if err != nil {
		return tend.ListOptions{}, err
	}
	sort, err := parseSort(cmd.sort, cmd.desc)
	if err != nil {
		return tend.ListOptions{}, err
	}

	if sort == nil && cmd.desc {
		configured := cmd.flags.Config.Display.SortState()
		configured.Direction = todo.SortDesc
		sort = &configured
	}

	return tend.ListOptions{
		Tags:       splitList(cmd.tags),
		Categories: splitList(cmd.categories),
		Priorities: priorities,
		Status:     status,
		From:       from,
		To:         to,
		Sort:       sort,
		Search:     cmd.search,
	}, nil
}

// Run lists todos. The root command calls it with every flag unset.
func (cmd *LsCmd) Run(ctx context.Context, c *cli.Command) error {
	now := time.Now()

	opts, err := cmd.options(now)
	if err != nil {
		return err
	}

	todos, err := cmd.flags.App.Todos.List(ctx, opts)
	if err != nil {
		return fmt.Errorf("list todos: %w", err)
	}

	return cmd.output(ctx, c, todos, now, "No todos found")
}

func (cmd *LsCmd) runTrash(ctx context.Context, c *cli.Command) error {
	todos, err := cmd.flags.App.Todos.Trash(ctx)
	if err != nil {
		return fmt.Errorf("list trash: %w", err)
	}

	return cmd.output(ctx, c, todos, time.Now(), "Trash is empty")
}

func (cmd *LsCmd) output(ctx context.Context, c *cli.Command, todos []todo.Todo, now time.Time, empty string) error {
	w := c.Root().Writer

	switch {
	case cmd.jsonLines:
		for _, t := range todos {
			if err := iojson.WriteLine(w, t); err != nil {
				return err
			}
		}
		return nil
	case cmd.jsonOutput:
		return iojson.WriteWith(w, os.Stderr, todos)
	}

	p := printer.Ctx(ctx)
	if len(todos) == 0 {
		p.Infof("%s", empty)
		return nil
	}

	ix, err := cmd.flags.App.Index(ctx)
	if err != nil {
		return err
	}

	renderTodos(w, todos, ix, now)

	active, completed, err := cmd.flags.App.Todos.Counts(ctx)
	if err != nil {
		return err
	}
	p.Infof("%d shown, %d active, %d completed", len(todos), active, completed)
	return nil
}
