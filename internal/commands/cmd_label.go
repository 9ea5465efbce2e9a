package commands

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/tend/internal/core/styles"
	"github.com/colonyops/tend/internal/printer"
	"github.com/colonyops/tend/internal/tend"
	"github.com/colonyops/tend/pkg/iojson"
)

// labelKind adapts the tag and category operations to one command shape.
type labelKind struct {
	name   string
	plural string
	chips  bool
	add    func(ctx context.Context, name string) (tend.Label, error)
	list   func(ctx context.Context) ([]tend.Label, error)
	remove func(ctx context.Context, ref string) (tend.Label, error)
}

type LabelCmd struct {
	flags *Flags

	// flags
	jsonOutput bool
}

// NewLabelCmd creates the tag and category commands
func NewLabelCmd(flags *Flags) *LabelCmd {
	return &LabelCmd{flags: flags}
}

// Register adds the tag and category commands to the application
func (cmd *LabelCmd) Register(app *cli.Command) *cli.Command {
	tags := labelKind{
		name:   "tag",
		plural: "tags",
		chips:  true,
		add: func(ctx context.Context, name string) (tend.Label, error) {
			t, err := cmd.flags.App.Labels.AddTag(ctx, name)
			return tend.Label{ID: t.ID, Name: t.Name, Color: t.Color, CreatedAt: t.CreatedAt}, err
		},
		list: func(ctx context.Context) ([]tend.Label, error) {
			return cmd.flags.App.Labels.Tags(ctx)
		},
		remove: func(ctx context.Context, ref string) (tend.Label, error) {
			t, err := cmd.flags.App.Labels.RemoveTag(ctx, ref)
			return tend.Label{ID: t.ID, Name: t.Name, Color: t.Color, CreatedAt: t.CreatedAt}, err
		},
	}

	categories := labelKind{
		name:   "category",
		plural: "categories",
		add: func(ctx context.Context, name string) (tend.Label, error) {
			c, err := cmd.flags.App.Labels.AddCategory(ctx, name)
			return tend.Label{ID: c.ID, Name: c.Name, CreatedAt: c.CreatedAt}, err
		},
		list: func(ctx context.Context) ([]tend.Label, error) {
			return cmd.flags.App.Labels.Categories(ctx)
		},
		remove: func(ctx context.Context, ref string) (tend.Label, error) {
			c, err := cmd.flags.App.Labels.RemoveCategory(ctx, ref)
			return tend.Label{ID: c.ID, Name: c.Name, CreatedAt: c.CreatedAt}, err
		},
	}

	tagCmd := cmd.command(tags)
	tagCmd.Usage = "Manage tags"
	tagCmd.Description = "Tags are labels a todo may carry any number of. Each tag keeps the colour it was created with."

	categoryCmd := cmd.command(categories)
	categoryCmd.Aliases = []string{"cat"}
	categoryCmd.Usage = "Manage categories"
	categoryCmd.Description = "A todo belongs to at most one category."

	app.Commands = append(app.Commands, tagCmd, categoryCmd)
	return app
}

func (cmd *LabelCmd) command(kind labelKind) *cli.Command {
	jsonFlag := func(usage string) cli.Flag {
		return &cli.BoolFlag{Name: "json", Usage: usage, Destination: &cmd.jsonOutput}
	}

	return &cli.Command{
		Name: kind.name,
		Commands: []*cli.Command{
			{
				Name:      "add",
				Usage:     fmt.Sprintf("Create a %s", kind.name),
				UsageText: fmt.Sprintf("tend %s add <name>", kind.name),
				Flags:     []cli.Flag{jsonFlag("print the created " + kind.name + " as JSON")},
				Action: func(ctx context.Context, c *cli.Command) error {
					return cmd.runAdd(ctx, c, kind)
				},
			},
			{
				Name:      "ls",
				Aliases:   []string{"list"},
				Usage:     fmt.Sprintf("List %s with usage counts", kind.plural),
				UsageText: fmt.Sprintf("tend %s ls [--json]", kind.name),
				Flags:     []cli.Flag{jsonFlag("output as JSON")},
				Action: func(ctx context.Context, c *cli.Command) error {
					return cmd.runList(ctx, c, kind)
				},
			},
			{
				Name:        "rm",
				Usage:       fmt.Sprintf("Delete a %s", kind.name),
				UsageText:   fmt.Sprintf("tend %s rm <name-or-id>", kind.name),
				Description: fmt.Sprintf("Deletes the %s and removes it from every todo, including deleted ones.", kind.name),
				Action: func(ctx context.Context, c *cli.Command) error {
					return cmd.runRemove(ctx, c, kind)
				},
			},
		},
	}
}

func (cmd *LabelCmd) runAdd(ctx context.Context, c *cli.Command, kind labelKind) error {
	name := c.Args().First()
	if name == "" {
		return fmt.Errorf("%s name is required", kind.name)
	}

	l, err := kind.add(ctx, name)
	if err != nil {
		return fmt.Errorf("add %s: %w", kind.name, err)
	}

	if cmd.jsonOutput {
		return iojson.WriteWith(c.Root().Writer, os.Stderr, l)
	}

	display := l.Name
	if kind.chips {
		display = styles.TagStyle(l.Color).Render(l.Name)
	}
	printer.Ctx(ctx).Successf("Created %s %s %s", kind.name, display, styles.IDStyle.Render(l.ID))
	return nil
}

func (cmd *LabelCmd) runList(ctx context.Context, c *cli.Command, kind labelKind) error {
	labels, err := kind.list(ctx)
	if err != nil {
		return fmt.Errorf("list %s: %w", kind.plural, err)
	}

	if cmd.jsonOutput {
		return iojson.WriteWith(c.Root().Writer, os.Stderr, labels)
	}

	if len(labels) == 0 {
		printer.Ctx(ctx).Infof("No %s found", kind.plural)
		return nil
	}

	renderLabels(c.Root().Writer, labels, kind.chips)
	return nil
}

func (cmd *LabelCmd) runRemove(ctx context.Context, c *cli.Command, kind labelKind) error {
	ref := c.Args().First()
	if ref == "" {
		return errors.New("name or id is required")
	}

	l, err := kind.remove(ctx, ref)
	if err != nil {
		return fmt.Errorf("remove %s: %w", kind.name, err)
	}

	printer.Ctx(ctx).Successf("Deleted %s %s", kind.name, l.Name)
	return nil
}
