package stores

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/colonyops/tend/internal/core/kv"
	"github.com/colonyops/tend/internal/data/db"
)

// IsBusyError returns true if the error is a SQLITE_BUSY error.
func IsBusyError(err error) bool {
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code()&0xff == sqlite3.SQLITE_BUSY
	}
	return false
}

// IsFullError returns true if the error is a SQLITE_FULL error, raised when
// the disk or the database size limit is exhausted.
func IsFullError(err error) bool {
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code()&0xff == sqlite3.SQLITE_FULL
	}
	return false
}

// IsCorruptionError returns true if the error indicates database corruption.
func IsCorruptionError(err error) bool {
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		code := sqliteErr.Code()
		return code == sqlite3.SQLITE_CORRUPT ||
			code == sqlite3.SQLITE_NOTADB ||
			code == sqlite3.SQLITE_CANTOPEN
	}

	// Also check for common corruption error messages
	errStr := err.Error()
	return strings.Contains(errStr, "database disk image is malformed") ||
		strings.Contains(errStr, "file is not a database") ||
		strings.Contains(errStr, "database corruption")
}

// IsNotFoundError returns true if the error is a "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, kv.ErrNotFound) || errors.Is(err, sql.ErrNoRows)
}

// RecoverFromCorruption moves a corrupted database and its WAL/SHM files
// aside so the next Open creates a fresh one. It returns the backup path, or
// "" when there was no database file to move.
func RecoverFromCorruption(dataDir string) (string, error) {
	dbPath := filepath.Join(dataDir, db.FileName)

	// Create backup filename with timestamp
	timestamp := time.Now().Format("20060102-150405")
	backupPath := filepath.Join(dataDir, fmt.Sprintf("%s.corrupt.%s", db.FileName, timestamp))

	if err := os.Rename(dbPath, backupPath); err != nil {
		if !os.IsNotExist(err) {
			return "", fmt.Errorf("failed to backup corrupted database: %w", err)
		}
		backupPath = ""
	}

	// Orphaned WAL/SHM files would be replayed into the new database.
	walPath := dbPath + "-wal"
	if _, err := os.Stat(walPath); err == nil {
		walBackup := dbPath + ".corrupt." + timestamp + "-wal"
		if err := os.Rename(walPath, walBackup); err != nil {
			if delErr := os.Remove(walPath); delErr != nil {
				return "", fmt.Errorf("failed to backup or remove WAL file: %w", err)
			}
		}
	}

	shmPath := dbPath + "-shm"
	if _, err := os.Stat(shmPath); err == nil {
		shmBackup := dbPath + ".corrupt." + timestamp + "-shm"
		if err := os.Rename(shmPath, shmBackup); err != nil {
			if delErr := os.Remove(shmPath); delErr != nil {
				return "", fmt.Errorf("failed to backup or remove SHM file: %w", err)
			}
		}
	}

	return backupPath, nil
}
