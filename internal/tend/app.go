// Package tend wires configuration, the storage substrate, the persistence
// gateway, and the tracker into the services the CLI commands call.
package tend

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/colonyops/tend/internal/core/action"
	"github.com/colonyops/tend/internal/core/config"
	"github.com/colonyops/tend/internal/core/kv"
	"github.com/colonyops/tend/internal/core/logging"
	"github.com/colonyops/tend/internal/core/reducer"
	"github.com/colonyops/tend/internal/core/todo"
	"github.com/colonyops/tend/internal/data/db"
	"github.com/colonyops/tend/internal/data/stores"
	"github.com/colonyops/tend/internal/storage"
	"github.com/colonyops/tend/internal/tracker"
)

// App is the central entry point for all tend operations.
// Commands consume App instead of cherry-picking raw dependencies.
//
// The substrate is opened on first use so commands that repair storage can
// run when opening or loading would fail.
type App struct {
	Todos  *TodoService
	Labels *LabelService
	Data   *DataService
	Doctor *DoctorService
	Config *config.Config

	log     zerolog.Logger
	reducer *reducer.Reducer
	base    kv.KV
	db      *db.DB
	gateway *storage.Gateway
	tracker *tracker.Tracker
}

// Option configures an App.
type Option func(*App)

// WithReducer replaces the default reducer. Tests use it to inject a clock
// and ID generator.
func WithReducer(r *reducer.Reducer) Option {
	return func(a *App) { a.reducer = r }
}

// WithStore uses store as the substrate instead of the configured backend.
func WithStore(store kv.KV) Option {
	return func(a *App) { a.base = store }
}

// NewApp constructs an App. No I/O happens until a service needs storage.
func NewApp(cfg *config.Config, log zerolog.Logger, opts ...Option) *App {
	a := &App{
		Config:  cfg,
		log:     log,
		reducer: reducer.New(),
	}
	for _, opt := range opts {
		opt(a)
	}

	a.Todos = &TodoService{app: a}
	a.Labels = &LabelService{app: a}
	a.Data = &DataService{app: a}
	a.Doctor = &DoctorService{app: a}
	return a
}

// Gateway opens the substrate if needed and returns the persistence gateway
// for the configured profile.
func (a *App) Gateway(ctx context.Context) (*storage.Gateway, error) {
	if a.gateway != nil {
		return a.gateway, nil
	}

	if a.base == nil {
		base, err := a.openSubstrate()
		if err != nil {
			return nil, err
		}
		a.base = base
	}

	a.gateway = storage.New(
		kv.Scoped(a.base, a.Config.Storage.Profile),
		storage.WithStrict(a.Config.Storage.Strict),
		storage.WithLogger(logging.Storage("storage", string(a.Config.Storage.Backend))),
	)
	a.log.Debug().Ctx(ctx).
		Str("backend", string(a.Config.Storage.Backend)).
		Str("profile", a.Config.Storage.Profile).
		Msg("storage opened")
	return a.gateway, nil
}

func (a *App) openSubstrate() (kv.KV, error) {
	switch a.Config.Storage.Backend {
	case config.BackendMemory:
		return stores.NewMemoryStore(a.Config.Storage.MaxBytes), nil
	default:
		if err := os.MkdirAll(a.Config.DataDir, 0o755); err != nil {
			return nil, &todo.Error{Kind: todo.KindStorageUnavailable, Msg: "create data directory", Err: err}
		}

		database, err := db.Open(a.Config.DataDir, db.OpenOptions{
			MaxOpenConns: a.Config.Database.MaxOpenConns,
			MaxIdleConns: a.Config.Database.MaxIdleConns,
			BusyTimeout:  a.Config.Database.BusyTimeout,
		})
		if err != nil {
			msg := "open database"
			if stores.IsCorruptionError(err) {
				msg = "database is corrupted, run 'tend data recover'"
			}
			return nil, &todo.Error{Kind: todo.KindStorageUnavailable, Msg: msg, Err: err}
		}

		a.db = database
		return stores.NewKVStore(database, a.Config.Storage.MaxBytes), nil
	}
}

// Tracker returns the tracker, loading the stored snapshot on first use and
// applying the configured default sort.
func (a *App) Tracker(ctx context.Context) (*tracker.Tracker, error) {
	if a.tracker != nil {
		return a.tracker, nil
	}

	tr, err := a.newTracker(ctx)
	if err != nil {
		return nil, err
	}

	if err := tr.Load(ctx); err != nil {
		return nil, err
	}

	a.tracker = tr
	return tr, nil
}

// newTracker builds an unloaded tracker with the configured sort applied.
func (a *App) newTracker(ctx context.Context) (*tracker.Tracker, error) {
	gw, err := a.Gateway(ctx)
	if err != nil {
		return nil, err
	}

	tr := tracker.New(a.reducer, gw, logging.Storage("tracker", string(a.Config.Storage.Backend)))
	if sort := a.Config.Display.SortState(); sort.Criterion != todo.SortNone {
		if err := tr.Dispatch(ctx, action.SetSort{Sort: sort}); err != nil {
			return nil, err
		}
	}
	return tr, nil
}

// DB returns the open database, or nil for the memory backend or before
// storage has been opened.
func (a *App) DB() *db.DB {
	return a.db
}

// Close releases the database connection, if one was opened.
func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	if err := a.db.Close(); err != nil {
		return fmt.Errorf("close database: %w", err)
	}
	a.db = nil
	return nil
}
