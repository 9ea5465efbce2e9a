package config

import (
	"fmt"
	"os"

	"github.com/charmbracelet/glamour/styles"
	"github.com/hay-kot/criterio"
)

// ValidationWarning represents a non-fatal configuration issue.
type ValidationWarning struct {
	Category string `json:"category"`
	Item     string `json:"item,omitempty"`
	Message  string `json:"message"`
}

// ValidateDeep performs comprehensive validation of the configuration including
// file accessibility and display settings. The configPath argument specifies
// the config file location to validate (empty string skips config file check).
// This calls Validate() first for basic structural validation, then adds I/O checks.
func (c *Config) ValidateDeep(configPath string) error {
	if err := c.Validate(); err != nil {
		return err
	}

	return criterio.ValidateStruct(
		c.validateFileAccess(configPath),
		criterio.Run("display.markdown_style", c.Display.MarkdownStyle, knownMarkdownStyle),
	)
}

// Warnings returns non-fatal configuration issues.
func (c *Config) Warnings() []ValidationWarning {
	var warnings []ValidationWarning

	if c.Storage.Backend == BackendMemory {
		warnings = append(warnings, ValidationWarning{
			Category: "Storage",
			Item:     "backend",
			Message:  "memory backend keeps nothing after the command exits",
		})
	}

	if c.Storage.MaxBytes == 0 {
		warnings = append(warnings, ValidationWarning{
			Category: "Storage",
			Item:     "max_bytes",
			Message:  "quota is disabled",
		})
	}

	if c.Database.MaxIdleConns > c.Database.MaxOpenConns {
		warnings = append(warnings, ValidationWarning{
			Category: "Database",
			Item:     "max_idle_conns",
			Message:  fmt.Sprintf("max_idle_conns (%d) exceeds max_open_conns (%d) and will be capped", c.Database.MaxIdleConns, c.Database.MaxOpenConns),
		})
	}

	return warnings
}

// validateFileAccess checks the config file and data directory.
func (c *Config) validateFileAccess(configPath string) error {
	return criterio.ValidateStruct(
		validateConfigFile(configPath),
		criterio.Run("data_dir", c.DataDir, isDirectoryOrNotExist),
	)
}

func validateConfigFile(configPath string) error {
	if configPath == "" {
		return nil
	}

	info, err := os.Stat(configPath)
	if os.IsNotExist(err) {
		return nil // not found is fine, using defaults
	}
	if err != nil {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("cannot access: %w", err))
	}
	if info.IsDir() {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("%s is a directory, not a file", configPath))
	}
	return nil
}

// isDirectoryOrNotExist validates that a path is a directory or doesn't exist.
func isDirectoryOrNotExist(path string) error {
	if path == "" {
		return nil
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil // will be created
	}
	if err != nil {
		return fmt.Errorf("cannot access: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("exists but is not a directory")
	}
	return nil
}

// knownMarkdownStyle accepts MarkdownStyleTheme, glamour's built-in style
// names, and paths to style files.
func knownMarkdownStyle(style string) error {
	if style == MarkdownStyleTheme {
		return nil
	}
	if _, ok := styles.DefaultStyles[style]; ok {
		return nil
	}
	if _, err := os.Stat(style); err == nil {
		return nil
	}
	return fmt.Errorf("unknown markdown style %q", style)
}
