package tend

import (
	"context"
	"errors"
	"fmt"

	"github.com/colonyops/tend/internal/core/config"
	"github.com/colonyops/tend/internal/core/todo"
	"github.com/colonyops/tend/internal/data/stores"
)

// ErrNotSQLite is returned by operations that only apply to the sqlite
// backend.
var ErrNotSQLite = errors.New("only the sqlite backend keeps a database file")

// DataService moves whole snapshots in and out of storage.
type DataService struct {
	app *App
}

// Export returns the current snapshot.
func (s *DataService) Export(ctx context.Context) (todo.AppData, error) {
	tr, err := s.app.Tracker(ctx)
	if err != nil {
		return todo.AppData{}, err
	}
	return tr.Snapshot(), nil
}

// Import replaces the stored snapshot with raw. raw goes through the same
// decode and validation path as a load, so a rejected import leaves storage
// untouched. The stored snapshot is not read first, which lets an import
// repair corrupted data.
func (s *DataService) Import(ctx context.Context, raw []byte) (todo.AppData, error) {
	gw, err := s.app.Gateway(ctx)
	if err != nil {
		return todo.AppData{}, err
	}

	data, err := gw.Decode(raw)
	if err != nil {
		return todo.AppData{}, err
	}

	tr := s.app.tracker
	if tr == nil {
		if tr, err = s.app.newTracker(ctx); err != nil {
			return todo.AppData{}, err
		}
	}

	if err := tr.Replace(ctx, data); err != nil {
		return todo.AppData{}, err
	}

	s.app.tracker = tr
	return tr.Snapshot(), nil
}

// Reset removes the stored snapshot. The next load starts empty.
func (s *DataService) Reset(ctx context.Context) error {
	gw, err := s.app.Gateway(ctx)
	if err != nil {
		return err
	}

	if err := gw.Clear(ctx); err != nil {
		return fmt.Errorf("clear data: %w", err)
	}

	s.app.tracker = nil
	return nil
}

// Recover moves a corrupted sqlite database aside. It must run before
// storage is opened and returns the backup path, or "" if there was no
// database file.
func (s *DataService) Recover() (string, error) {
	if s.app.Config.Storage.Backend != config.BackendSQLite {
		return "", ErrNotSQLite
	}
	if s.app.db != nil {
		return "", errors.New("database is open")
	}
	return stores.RecoverFromCorruption(s.app.Config.DataDir)
}
