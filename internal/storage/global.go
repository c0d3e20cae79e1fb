package storage

import (
	"sync"

	"github.com/pkg/errors"
)

// The process-wide default store is constructed lazily on first use from a
// path registered at startup. Explicit injection is still the primary wiring;
// this exists for the one-shot CLI surface where threading a handle through
// every command is not worth it.

var (
	defaultOnce sync.Once
	defaultPath string
	defaultOpts []Option
	defaultDB   *Store
	defaultErr  error
)

// SetDefaultPath registers the database path (and open options) the default
// store will use. It must be called before the first Default call; later
// calls have no effect once the store exists.
func SetDefaultPath(dbPath string, opts ...Option) {
	defaultPath = dbPath
	defaultOpts = opts
}

// Default returns the lazily constructed process-wide store. It fails fast
// with a descriptive error when no path was registered.
func Default() (*Store, error) {
	defaultOnce.Do(func() {
		if defaultPath == "" {
			defaultErr = errors.New("storage: no database path configured; call SetDefaultPath first")
			return
		}
		defaultDB, defaultErr = Open(defaultPath, defaultOpts...)
	})
	return defaultDB, defaultErr
}
