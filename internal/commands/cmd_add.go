package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/tend/internal/core/styles"
	"github.com/colonyops/tend/internal/core/todo"
	"github.com/colonyops/tend/internal/core/validate"
	"github.com/colonyops/tend/internal/printer"
	"github.com/colonyops/tend/internal/tend"
	"github.com/colonyops/tend/pkg/iojson"
)

type AddCmd struct {
	flags *Flags

	// flags
	description string
	priority    string
	tags        []string
	category    string
	scheduled   string
	interactive bool
	jsonOutput  bool
}

// NewAddCmd creates a new add command
func NewAddCmd(flags *Flags) *AddCmd {
	return &AddCmd{flags: flags}
}

// Register adds the add command to the application
func (cmd *AddCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "add",
		Usage:     "Add a todo",
		UsageText: "tend add [options] <title>",
		Description: `Creates a todo. All remaining arguments form the title.

Tags and categories are referenced by name and created when they do not exist.
Dates accept YYYY-MM-DD, RFC 3339, "today", or "tomorrow".

With --interactive (or no title), a form prompts for every field.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "description",
				Aliases:     []string{"d"},
				Usage:       "longer description, rendered as markdown by show",
				Destination: &cmd.description,
			},
			&cli.StringFlag{
				Name:        "priority",
				Aliases:     []string{"p"},
				Usage:       "priority (low, medium, high)",
				Value:       string(todo.PriorityMedium),
				Destination: &cmd.priority,
			},
			&cli.StringSliceFlag{
				Name:        "tag",
				Aliases:     []string{"t"},
				Usage:       "tag name (repeatable, comma-separated)",
				Destination: &cmd.tags,
			},
			&cli.StringFlag{
				Name:        "category",
				Aliases:     []string{"c"},
				Usage:       "category name",
				Destination: &cmd.category,
			},
			&cli.StringFlag{
				Name:        "scheduled",
				Aliases:     []string{"s"},
				Usage:       "scheduled date",
				Destination: &cmd.scheduled,
			},
			&cli.BoolFlag{
				Name:        "interactive",
				Aliases:     []string{"i"},
				Usage:       "prompt for fields with a form",
				Destination: &cmd.interactive,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "print the created todo as JSON",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *AddCmd) run(ctx context.Context, c *cli.Command) error {
	p := printer.Ctx(ctx)
	title := strings.Join(c.Args().Slice(), " ")

	if cmd.interactive || strings.TrimSpace(title) == "" {
		if err := cmd.runForm(ctx, &title); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return fmt.Errorf("form: %w", err)
		}
	}

	in, err := cmd.input(title, time.Now())
	if err != nil {
		return err
	}

	created, err := cmd.flags.App.Todos.Add(ctx, in)
	if err != nil {
		return fmt.Errorf("add todo: %w", err)
	}

	if cmd.jsonOutput {
		return iojson.WriteWith(c.Root().Writer, os.Stderr, created)
	}

	p.Successf("Added %s %s", styles.IDStyle.Render(created.ID), created.Title)
	return nil
}

func (cmd *AddCmd) input(title string, now time.Time) (tend.AddInput, error) {
	priority, err := parsePriority(cmd.priority)
	if err != nil {
		return tend.AddInput{}, err
	}

	in := tend.AddInput{
		Title:       title,
		Description: cmd.description,
		Priority:    priority,
		Category:    cmd.category,
		Tags:        splitList(cmd.tags),
	}

	at, err := parseDate(cmd.scheduled, false, now)
	if err != nil {
		return tend.AddInput{}, err
	}
	if at != "" {
		in.ScheduledAt = &at
	}
	return in, nil
}

func (cmd *AddCmd) runForm(ctx context.Context, title *string) error {
	tags := strings.Join(splitList(cmd.tags), ", ")

	priorities := make([]huh.Option[string], 0, len(todo.ValidPriorities()))
	for _, p := range todo.ValidPriorities() {
		priorities = append(priorities, huh.NewOption(string(p), string(p)))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				CharLimit(todo.MaxTitleLength).
				Value(title).
				Validate(func(s string) error {
					return validate.Title(strings.TrimSpace(s))
				}),
			huh.NewText().
				Title("Description").
				Description("Markdown is supported").
				CharLimit(todo.MaxDescriptionLength).
				Value(&cmd.description).
				Validate(validate.Description),
			huh.NewSelect[string]().
				Title("Priority").
				Options(priorities...).
				Value(&cmd.priority),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Tags").
				Description("Comma-separated names").
				Value(&tags),
			huh.NewInput().
				Title("Category").
				Value(&cmd.category),
			huh.NewInput().
				Title("Scheduled").
				Description("YYYY-MM-DD, today, or tomorrow").
				Value(&cmd.scheduled).
				Validate(func(s string) error {
					_, err := parseDate(s, false, time.Now())
					return err
				}),
		),
	).WithTheme(styles.FormTheme())

	if err := form.RunWithContext(ctx); err != nil {
		return err
	}

	cmd.tags = splitList([]string{tags})
	return nil
}
