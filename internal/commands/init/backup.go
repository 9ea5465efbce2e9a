package initcmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

const backupSuffix = ".bak"

// BackupConfig copies the config at configPath to configPath+".bak", keeping
// its permissions, and returns the backup path. A previous backup is
// replaced. Returns "" when there is no config to back up.
func BackupConfig(configPath string) (string, error) {
	info, err := os.Stat(configPath)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("stat config: %w", err)
	}

	content, err := os.ReadFile(configPath)
	if err != nil {
		return "", fmt.Errorf("read existing config: %w", err)
	}

	backupPath := configPath + backupSuffix
	tmp, err := os.CreateTemp(filepath.Dir(configPath), filepath.Base(backupPath)+".*")
	if err != nil {
		return "", fmt.Errorf("create backup: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(content); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("write backup: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("write backup: %w", err)
	}
	if err := os.Chmod(tmp.Name(), info.Mode().Perm()); err != nil {
		return "", fmt.Errorf("chmod backup: %w", err)
	}
	if err := os.Rename(tmp.Name(), backupPath); err != nil {
		return "", fmt.Errorf("replace backup: %w", err)
	}

	return backupPath, nil
}

// ConfigExists reports whether a regular file exists at configPath.
func ConfigExists(configPath string) bool {
	info, err := os.Stat(configPath)
	return err == nil && info.Mode().IsRegular()
}
