package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/colonyops/tend/internal/core/doctor"
	"github.com/colonyops/tend/internal/core/styles"
	"github.com/colonyops/tend/internal/core/todo"
	"github.com/colonyops/tend/internal/printer"
	"github.com/colonyops/tend/pkg/iojson"
)

type DataCmd struct {
	flags *Flags

	// flags
	output  string
	yes     bool
	format  string
	reader  iojson.FileReader[todo.AppData]
	confirm func(ctx context.Context, title string) (bool, error)
}

// NewDataCmd creates the data command group
func NewDataCmd(flags *Flags) *DataCmd {
	return &DataCmd{flags: flags, confirm: confirmForm}
}

// Register adds the data command group to the application
func (cmd *DataCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "data",
		Usage: "Export, import, check, and repair stored data",
		Commands: []*cli.Command{
			{
				Name:        "export",
				Usage:       "Write the stored snapshot as JSON",
				UsageText:   "tend data export [-o file]",
				Description: "Writes the todos, tags, and categories of the active profile. Filters and sort are not part of a snapshot.",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        "output",
						Aliases:     []string{"o"},
						Usage:       "write to a file instead of stdout",
						Destination: &cmd.output,
					},
				},
				Action: cmd.runExport,
			},
			{
				Name:      "import",
				Usage:     "Replace the stored snapshot with a JSON document",
				UsageText: "tend data import [-f file]",
				Description: `Validates the document the same way stored data is validated on load, then
replaces everything in the active profile. A rejected document changes nothing.

Importing works even when the stored data is corrupted.`,
				Flags:  []cli.Flag{cmd.reader.Flag()},
				Action: cmd.runImport,
			},
			{
				Name:        "reset",
				Usage:       "Delete all stored todos, tags, and categories",
				UsageText:   "tend data reset [--yes]",
				Description: "Removes the snapshot of the active profile. Other profiles are untouched.",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:        "yes",
						Aliases:     []string{"y"},
						Usage:       "skip the confirmation prompt",
						Destination: &cmd.yes,
					},
				},
				Action: cmd.runReset,
			},
			{
				Name:        "check",
				Aliases:     []string{"doctor"},
				Usage:       "Run health checks on configuration and storage",
				UsageText:   "tend data check [--format text|json]",
				Description: "Checks that the config is valid, storage accepts writes, and the stored snapshot decodes.",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        "format",
						Usage:       "output format (text, json)",
						Value:       "text",
						Destination: &cmd.format,
					},
				},
				Action: cmd.runCheck,
			},
			{
				Name:        "recover",
				Usage:       "Move a corrupted database aside",
				UsageText:   "tend data recover",
				Description: "Renames a database file that cannot be opened so the next run starts with empty storage. Only applies to the sqlite backend.",
				Action:      cmd.runRecover,
			},
		},
	})

	return app
}

func (cmd *DataCmd) runExport(ctx context.Context, c *cli.Command) error {
	data, err := cmd.flags.App.Data.Export(ctx)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}

	if cmd.output == "" {
		return iojson.WriteWith(c.Root().Writer, os.Stderr, data)
	}

	f, err := os.Create(cmd.output)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := iojson.WriteWith(f, os.Stderr, data); err != nil {
		return fmt.Errorf("write output file: %w", err)
	}

	printer.Ctx(ctx).Successf("Exported %d todos to %s", len(data.Todos), cmd.output)
	return nil
}

func (cmd *DataCmd) runImport(ctx context.Context, _ *cli.Command) error {
	raw, err := cmd.reader.ReadBytes()
	if err != nil {
		return err
	}

	data, err := cmd.flags.App.Data.Import(ctx, raw)
	if err != nil {
		return fmt.Errorf("import: %w", err)
	}

	printer.Ctx(ctx).Successf("Imported %d todos, %d tags, %d categories",
		len(data.Todos), len(data.Tags), len(data.Categories))
	return nil
}

func (cmd *DataCmd) runReset(ctx context.Context, _ *cli.Command) error {
	p := printer.Ctx(ctx)

	if !cmd.yes {
		ok, err := cmd.confirm(ctx, fmt.Sprintf("Delete all data in profile %q?", cmd.flags.Config.Storage.Profile))
		if err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return err
		}
		if !ok {
			p.Infof("Reset cancelled")
			return nil
		}
	}

	if err := cmd.flags.App.Data.Reset(ctx); err != nil {
		return fmt.Errorf("reset: %w", err)
	}

	p.Successf("Data reset")
	return nil
}

func confirmForm(ctx context.Context, title string) (bool, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return false, errors.New("refusing to reset without a terminal; pass --yes")
	}

	var ok bool
	err := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(title).
			Description("This cannot be undone. Export first to keep a copy.").
			Affirmative("Reset").
			Negative("Cancel").
			Value(&ok),
	)).WithTheme(styles.FormTheme()).RunWithContext(ctx)
	return ok, err
}

func (cmd *DataCmd) runRecover(ctx context.Context, _ *cli.Command) error {
	p := printer.Ctx(ctx)

	backup, err := cmd.flags.App.Data.Recover()
	if err != nil {
		return fmt.Errorf("recover: %w", err)
	}

	if backup == "" {
		p.Infof("No database file found, nothing to recover")
		return nil
	}

	p.Successf("Moved database to %s", backup)
	p.Infof("Run 'tend data import' with an export to restore your todos")
	return nil
}

func (cmd *DataCmd) runCheck(ctx context.Context, c *cli.Command) error {
	results := cmd.flags.App.Doctor.RunChecks(ctx, cmd.flags.ConfigPath)

	if cmd.format == "json" {
		return cmd.checkJSON(c.Root().Writer, results)
	}

	return cmd.checkText(os.Stderr, results)
}

type summaryJSON struct {
	Passed int `json:"passed"`
	Warned int `json:"warned"`
	Failed int `json:"failed"`
}

func (cmd *DataCmd) checkJSON(w io.Writer, results []doctor.Result) error {
	passed, warned, failed := doctor.Summary(results)

	out := struct {
		Healthy bool            `json:"healthy"`
		Summary summaryJSON     `json:"summary"`
		Checks  []doctor.Result `json:"checks"`
		Fixes   []string        `json:"fixes,omitempty"`
	}{
		Healthy: failed == 0,
		Summary: summaryJSON{Passed: passed, Warned: warned, Failed: failed},
		Checks:  results,
		Fixes:   doctor.Fixes(results),
	}

	if err := iojson.WriteWith(w, os.Stderr, out); err != nil {
		return err
	}
	if failed > 0 {
		return cli.Exit("", 1)
	}
	return nil
}

func (cmd *DataCmd) checkText(w io.Writer, results []doctor.Result) error {
	divider := styles.DividerStyle.Render(strings.Repeat("─", 40))

	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, styles.HeaderStyle.Render("tend data check"))
	_, _ = fmt.Fprintln(w, divider)
	_, _ = fmt.Fprintln(w)

	for _, result := range results {
		_, _ = fmt.Fprintln(w, styles.TitleStyle.Render(result.Name))

		for _, item := range result.Items {
			var detail string
			if item.Detail != "" {
				detail = " " + styles.MutedStyle.Render(item.Detail)
			}

			var icon string
			switch item.Status {
			case doctor.StatusPass:
				icon = styles.SuccessStyle.Render("✔")
			case doctor.StatusWarn:
				icon = styles.WarningStyle.Render("●")
			case doctor.StatusFail:
				icon = styles.ErrorStyle.Render("✘")
			}

			_, _ = fmt.Fprintf(w, "  %s %s%s\n", icon, item.Label, detail)
		}

		_, _ = fmt.Fprintln(w)
	}

	passed, warned, failed := doctor.Summary(results)
	_, _ = fmt.Fprintf(w, "%s  %s  %s\n",
		styles.SuccessStyle.Render(fmt.Sprintf("%d passed", passed)),
		styles.WarningStyle.Render(fmt.Sprintf("%d warnings", warned)),
		styles.ErrorStyle.Render(fmt.Sprintf("%d failed", failed)),
	)

	if fixes := doctor.Fixes(results); len(fixes) > 0 {
		_, _ = fmt.Fprintln(w)
		for _, fix := range fixes {
			_, _ = fmt.Fprintln(w, styles.MutedStyle.Render("Try: "+fix))
		}
	}

	if failed > 0 {
		return cli.Exit("", 1)
	}
	return nil
}
