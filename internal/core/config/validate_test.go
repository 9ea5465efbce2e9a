package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hay-kot/criterio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validConfig returns a Config with all required fields set for testing.
func validConfig(t *testing.T) *Config {
	t.Helper()
	cfg := DefaultConfig()
	cfg.DataDir = t.TempDir()
	return &cfg
}

func hasField(errs criterio.FieldErrors, field string) bool {
	for _, e := range errs {
		if e.Field == field {
			return true
		}
	}
	return false
}

func TestValidateDeep_ValidConfig(t *testing.T) {
	cfg := validConfig(t)
	assert.NoError(t, cfg.ValidateDeep(""))
}

func TestValidateDeep_UnknownMarkdownStyle(t *testing.T) {
	cfg := validConfig(t)
	cfg.Display.MarkdownStyle = "neon-sunset"

	err := cfg.ValidateDeep("")

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.True(t, hasField(fieldErrs, "display.markdown_style"))
}

func TestValidateDeep_MarkdownStyleFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "style.json")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o644))

	cfg := validConfig(t)
	cfg.Display.MarkdownStyle = path

	assert.NoError(t, cfg.ValidateDeep(""))
}

func TestValidateDeep_DataDirIsFile(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "notadir")
	require.NoError(t, os.WriteFile(tmpFile, []byte("test"), 0o644))

	cfg := validConfig(t)
	cfg.DataDir = tmpFile

	err := cfg.ValidateDeep("")

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.True(t, hasField(fieldErrs, "data_dir"), "expected error about data dir")
}

func TestValidateDeep_ConfigFileIsDirectory(t *testing.T) {
	cfg := validConfig(t)

	err := cfg.ValidateDeep(t.TempDir())

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.True(t, hasField(fieldErrs, "config_file"), "expected error about config file being a directory")
}

func TestValidateDeep_MissingConfigFileIsFine(t *testing.T) {
	cfg := validConfig(t)
	assert.NoError(t, cfg.ValidateDeep(filepath.Join(t.TempDir(), "missing.yaml")))
}

func TestValidateDeep_RunsShallowValidationFirst(t *testing.T) {
	cfg := validConfig(t)
	cfg.Storage.Backend = "redis"
	cfg.Display.MarkdownStyle = "neon-sunset"

	err := cfg.ValidateDeep("")

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.True(t, hasField(fieldErrs, "storage.backend"))
	assert.False(t, hasField(fieldErrs, "display.markdown_style"))
}

func TestWarnings(t *testing.T) {
	t.Run("defaults have none", func(t *testing.T) {
		assert.Empty(t, validConfig(t).Warnings())
	})

	t.Run("memory backend", func(t *testing.T) {
		cfg := validConfig(t)
		cfg.Storage.Backend = BackendMemory

		warnings := cfg.Warnings()
		require.Len(t, warnings, 1)
		assert.Equal(t, "Storage", warnings[0].Category)
		assert.Equal(t, "backend", warnings[0].Item)
	})

	t.Run("quota disabled", func(t *testing.T) {
		cfg := validConfig(t)
		cfg.Storage.MaxBytes = 0

		warnings := cfg.Warnings()
		require.Len(t, warnings, 1)
		assert.Equal(t, "max_bytes", warnings[0].Item)
	})

	t.Run("idle above open", func(t *testing.T) {
		cfg := validConfig(t)
		cfg.Database.MaxOpenConns = 1
		cfg.Database.MaxIdleConns = 3

		warnings := cfg.Warnings()
		require.Len(t, warnings, 1)
		assert.Equal(t, "Database", warnings[0].Category)
		assert.Contains(t, warnings[0].Message, "max_idle_conns (3)")
	})
}
