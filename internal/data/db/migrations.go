package db

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"embed"
	"encoding/hex"
	"fmt"
	"io/fs"
	"regexp"
	"slices"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/colonyops/tend/internal/core/logging"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// embeddedMigrations is the migration source compiled into the binary.
func embeddedMigrations() fs.FS {
	sub, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		panic(err)
	}
	return sub
}

var migrationName = regexp.MustCompile(`^(\d+)_([a-z0-9_]+)\.(up|down)\.sql$`)

// Migration is one versioned schema change.
type Migration struct {
	Version  int
	Name     string
	UpSQL    string
	DownSQL  string
	Checksum string // sha256 of UpSQL, recorded when applied
}

// parseMigrationName splits "0002_kv_store_updated_at.up.sql" into its
// version, name, and direction.
func parseMigrationName(filename string) (version int, name, direction string, err error) {
	m := migrationName.FindStringSubmatch(filename)
	if m == nil {
		return 0, "", "", fmt.Errorf("expected NNNN_name.{up,down}.sql, got %q", filename)
	}

	version, err = strconv.Atoi(m[1])
	if err != nil {
		return 0, "", "", fmt.Errorf("version %q: %w", m[1], err)
	}
	if version <= 0 {
		return 0, "", "", fmt.Errorf("version must be positive, got %d", version)
	}
	return version, m[2], m[3], nil
}

// readMigrations collects the up/down pairs in source, sorted by version.
func readMigrations(source fs.FS) ([]Migration, error) {
	entries, err := fs.ReadDir(source, ".")
	if err != nil {
		return nil, fmt.Errorf("read migrations: %w", err)
	}

	byVersion := map[int]*Migration{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		version, name, direction, err := parseMigrationName(entry.Name())
		if err != nil {
			return nil, err
		}

		body, err := fs.ReadFile(source, entry.Name())
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", entry.Name(), err)
		}

		m, ok := byVersion[version]
		if !ok {
			m = &Migration{Version: version, Name: name}
			byVersion[version] = m
		}
		if m.Name != name {
			return nil, fmt.Errorf("migration %04d has mismatched names %q and %q", version, m.Name, name)
		}

		slot := &m.UpSQL
		if direction == "down" {
			slot = &m.DownSQL
		}
		if *slot != "" {
			return nil, fmt.Errorf("duplicate %s migration for version %04d", direction, version)
		}
		*slot = string(body)
	}

	out := make([]Migration, 0, len(byVersion))
	for _, m := range byVersion {
		switch {
		case m.UpSQL == "":
			return nil, fmt.Errorf("migration %04d has no up file", m.Version)
		case m.DownSQL == "":
			return nil, fmt.Errorf("migration %04d has no down file", m.Version)
		}
		sum := sha256.Sum256([]byte(m.UpSQL))
		m.Checksum = hex.EncodeToString(sum[:8])
		out = append(out, *m)
	}

	slices.SortFunc(out, func(a, b Migration) int { return a.Version - b.Version })
	return out, nil
}

// migrator applies and reverts migrations from a source against one
// connection. Applied versions are tracked in schema_migrations together with
// the checksum of the SQL that ran.
type migrator struct {
	conn   *sql.DB
	source fs.FS
	log    zerolog.Logger
	now    func() time.Time
}

func newMigrator(conn *sql.DB, source fs.FS) *migrator {
	return &migrator{
		conn:   conn,
		source: source,
		log:    logging.Component("migrate"),
		now:    time.Now,
	}
}

// prepare loads the source and the applied set. An applied migration whose
// SQL has since changed is an error: the database no longer matches the
// schema this binary expects.
func (m *migrator) prepare(ctx context.Context) ([]Migration, map[int]bool, error) {
	migrations, err := readMigrations(m.source)
	if err != nil {
		return nil, nil, err
	}

	if _, err := m.conn.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version    INTEGER PRIMARY KEY,
			name       TEXT NOT NULL,
			checksum   TEXT NOT NULL,
			applied_at INTEGER NOT NULL
		)
	`); err != nil {
		return nil, nil, fmt.Errorf("create schema_migrations: %w", err)
	}

	rows, err := m.conn.QueryContext(ctx, "SELECT version, checksum FROM schema_migrations")
	if err != nil {
		return nil, nil, fmt.Errorf("query schema_migrations: %w", err)
	}
	defer func() { _ = rows.Close() }()

	recorded := map[int]string{}
	for rows.Next() {
		var (
			v   int
			sum string
		)
		if err := rows.Scan(&v, &sum); err != nil {
			return nil, nil, fmt.Errorf("scan schema_migrations: %w", err)
		}
		recorded[v] = sum
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	applied := make(map[int]bool, len(recorded))
	for _, mig := range migrations {
		sum, ok := recorded[mig.Version]
		if !ok {
			continue
		}
		if sum != mig.Checksum {
			return nil, nil, fmt.Errorf("migration %04d (%s) changed after it was applied", mig.Version, mig.Name)
		}
		applied[mig.Version] = true
	}
	return migrations, applied, nil
}

// Up applies every pending migration in version order.
func (m *migrator) Up(ctx context.Context) error {
	migrations, applied, err := m.prepare(ctx)
	if err != nil {
		return err
	}

	for _, mig := range migrations {
		if applied[mig.Version] {
			continue
		}

		m.log.Debug().Int("version", mig.Version).Str("name", mig.Name).Msg("applying migration")
		err := m.inTx(ctx, mig.UpSQL,
			"INSERT INTO schema_migrations (version, name, checksum, applied_at) VALUES (?, ?, ?, ?)",
			mig.Version, mig.Name, mig.Checksum, m.now().UnixNano(),
		)
		if err != nil {
			return fmt.Errorf("migration %04d (%s): %w", mig.Version, mig.Name, err)
		}
	}
	return nil
}

// Down reverts the n most recently applied migrations.
func (m *migrator) Down(ctx context.Context, n int) error {
	if n <= 0 {
		return fmt.Errorf("n must be positive, got %d", n)
	}

	migrations, applied, err := m.prepare(ctx)
	if err != nil {
		return err
	}

	var revert []Migration
	for _, mig := range slices.Backward(migrations) {
		if applied[mig.Version] {
			revert = append(revert, mig)
		}
	}
	if n > len(revert) {
		return fmt.Errorf("requested %d down migrations but only %d are applied", n, len(revert))
	}

	for _, mig := range revert[:n] {
		m.log.Info().Int("version", mig.Version).Str("name", mig.Name).Msg("reverting migration")
		err := m.inTx(ctx, mig.DownSQL, "DELETE FROM schema_migrations WHERE version = ?", mig.Version)
		if err != nil {
			return fmt.Errorf("revert migration %04d (%s): %w", mig.Version, mig.Name, err)
		}
	}
	return nil
}

// inTx runs a migration body and its bookkeeping statement atomically.
func (m *migrator) inTx(ctx context.Context, body, record string, args ...any) error {
	tx, err := m.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, body); err != nil {
		return fmt.Errorf("execute: %w", err)
	}
	if _, err := tx.ExecContext(ctx, record, args...); err != nil {
		return fmt.Errorf("record: %w", err)
	}
	return tx.Commit()
}

// Rollback reverts the n most recently applied migrations of the embedded set.
func (db *DB) Rollback(ctx context.Context, n int) error {
	return newMigrator(db.conn, embeddedMigrations()).Down(ctx, n)
}

// SchemaVersion returns the highest applied migration version, or 0 for an
// empty database.
func (db *DB) SchemaVersion(ctx context.Context) (int, error) {
	var v sql.NullInt64
	if err := db.conn.QueryRowContext(ctx, "SELECT MAX(version) FROM schema_migrations").Scan(&v); err != nil {
		return 0, fmt.Errorf("reading schema version: %w", err)
	}
	return int(v.Int64), nil
}
