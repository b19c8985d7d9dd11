package store

import (
	"fmt"
	"os"
	"sync"
)

// Driver selects a backend implementation.
//
//	PLANORA_STORE_DRIVER: sqlite|mock (default derived from Options.Persistent)
type Driver string

const (
	DriverSQLite Driver = "sqlite"
	DriverMock   Driver = "mock"
)

// Options describes the execution context a Runtime serves.
type Options struct {
	// Persistent states whether durable storage is available in this
	// context. When false the mock backend is selected.
	Persistent bool
	// Path is the SQLite database file used by the local store.
	Path string
	// Driver overrides selection explicitly; the PLANORA_STORE_DRIVER
	// environment variable takes effect when unset.
	Driver Driver
}

// Runtime owns the backend for one execution context. The backend is opened
// lazily on first use and cached for the runtime's lifetime; distinct
// runtimes never share a backend, so a server-side runtime cannot leak state
// into a persistent one.
type Runtime struct {
	opts    Options
	once    sync.Once
	backend Backend
	err     error
}

func NewRuntime(opts Options) *Runtime {
	return &Runtime{opts: opts}
}

// Backend returns the runtime's backend, selecting and opening it on first
// call. The selection error, if any, is sticky.
func (r *Runtime) Backend() (Backend, error) {
	r.once.Do(func() {
		r.backend, r.err = open(r.opts)
	})
	return r.backend, r.err
}

func (r *Runtime) Close() error {
	if r.backend == nil {
		return nil
	}
	return r.backend.Close()
}

func open(opts Options) (Backend, error) {
	driver := opts.Driver
	if driver == "" {
		driver = Driver(os.Getenv("PLANORA_STORE_DRIVER"))
	}
	if driver == "" {
		if opts.Persistent {
			driver = DriverSQLite
		} else {
			driver = DriverMock
		}
	}

	switch driver {
	case DriverSQLite:
		if !opts.Persistent {
			return nil, fmt.Errorf("sqlite driver requested without persistence: %w", ErrStorageUnavailable)
		}
		return OpenLocal(opts.Path)
	case DriverMock:
		return NewMock(), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", driver)
	}
}
