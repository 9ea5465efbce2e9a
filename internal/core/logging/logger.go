package logging

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	componentField = "cmp"
	backendField   = "backend"
)

// Component returns the global logger tagged with cmp=name.
func Component(name string) zerolog.Logger {
	return log.With().Str(componentField, name).Logger()
}

// Storage returns a component logger that also names the storage backend, so
// gateway and tracker events can be told apart when several backends are in use
// (tests, `tend data import` from one profile into another).
func Storage(name, backend string) zerolog.Logger {
	return Component(name).With().Str(backendField, backend).Logger()
}
