// Package initcmd implements the first-run wizard that writes a config file.
package initcmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/huh"
	"gopkg.in/yaml.v3"

	"github.com/colonyops/tend/internal/core/config"
	"github.com/colonyops/tend/internal/core/doctor"
	"github.com/colonyops/tend/internal/core/styles"
	"github.com/colonyops/tend/internal/core/todo"
	"github.com/colonyops/tend/internal/printer"
)

// WizardOptions configures the wizard behavior.
type WizardOptions struct {
	ConfigPath string
	DataDir    string
	Yes        bool // skip prompts, use defaults
	Force      bool // overwrite existing config
}

// Wizard orchestrates the init process.
type Wizard struct {
	opts WizardOptions
}

// NewWizard creates a new init wizard.
func NewWizard(opts WizardOptions) *Wizard {
	return &Wizard{opts: opts}
}

// Run executes the wizard.
func (w *Wizard) Run(ctx context.Context) error {
	p := printer.Ctx(ctx)

	if ConfigExists(w.opts.ConfigPath) && !w.opts.Force {
		if w.opts.Yes {
			return fmt.Errorf("config exists at %s; use --force to overwrite", w.opts.ConfigPath)
		}

		var overwrite bool
		err := huh.NewConfirm().
			Title("Config file already exists").
			Description(w.opts.ConfigPath + "\nOverwrite? (a backup will be created)").
			Value(&overwrite).
			WithTheme(styles.FormTheme()).
			Run()
		if err != nil {
			return err
		}
		if !overwrite {
			p.Infof("Init cancelled")
			return nil
		}
	}

	cfg := config.DefaultConfig()
	if !w.opts.Yes {
		if err := w.promptUser(ctx, &cfg); err != nil {
			return err
		}
	}

	if ConfigExists(w.opts.ConfigPath) {
		backupPath, err := BackupConfig(w.opts.ConfigPath)
		if err != nil {
			return fmt.Errorf("backup config: %w", err)
		}
		if backupPath != "" {
			p.Successf("Backed up config to: %s", backupPath)
		}
	}

	if err := WriteConfig(cfg, w.opts.ConfigPath); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	p.Successf("Created config: %s", w.opts.ConfigPath)

	cfg.DataDir = w.opts.DataDir
	result := doctor.RunAll(ctx, []doctor.Check{doctor.NewConfigCheck(&cfg, w.opts.ConfigPath)})[0]
	for _, item := range result.Items {
		switch item.Status {
		case doctor.StatusPass:
			p.Successf("%s: %s", item.Label, item.Detail)
		case doctor.StatusWarn:
			p.Warnf("%s: %s", item.Label, item.Detail)
		case doctor.StatusFail:
			p.Errorf("%s: %s", item.Label, item.Detail)
		}
	}

	p.Printf("")
	p.Printf("Run 'tend add <title>' to create your first todo")
	return nil
}

func (w *Wizard) promptUser(ctx context.Context, cfg *config.Config) error {
	themes := make([]huh.Option[string], 0, len(styles.ThemeNames()))
	for _, name := range styles.ThemeNames() {
		themes = append(themes, huh.NewOption(name, name))
	}

	sort := string(cfg.Display.Sort)
	direction := string(cfg.Display.Direction)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Profile").
				Description("Separate lists can share one database under different profiles").
				Value(&cfg.Storage.Profile).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("profile is required")
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Theme").
				Options(themes...).
				Value(&cfg.Display.Theme),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Default sort").
				Options(
					huh.NewOption("none (creation order)", string(todo.SortNone)),
					huh.NewOption("priority", string(todo.SortPriority)),
					huh.NewOption("scheduled date", string(todo.SortScheduledAt)),
					huh.NewOption("created date", string(todo.SortCreatedAt)),
				).
				Value(&sort),
			huh.NewSelect[string]().
				Title("Sort direction").
				Options(
					huh.NewOption("ascending", string(todo.SortAsc)),
					huh.NewOption("descending", string(todo.SortDesc)),
				).
				Value(&direction),
		),
	).WithTheme(styles.FormTheme())

	if err := form.RunWithContext(ctx); err != nil {
		return err
	}

	cfg.Display.Sort = todo.SortCriterion(sort)
	cfg.Display.Direction = todo.SortDirection(direction)
	return nil
}

// WriteConfig writes cfg as YAML, creating parent directories.
func WriteConfig(cfg config.Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0o644)
}
