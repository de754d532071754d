// Package tempfiles tracks files and directories that must be removed when
// the process is done with them.
//
// Go has no exit hooks, so the owner of main flushes the registry:
//
//	func main() {
//		defer tempfiles.Flush()
//		...
//	}
//
// Paths survive a crash, os.Exit or a fatal signal.
package tempfiles

import (
	stderrors "errors"
	"io/fs"
	"os"
	"slices"
	"sync"

	"go.uber.org/multierr"
)

// Registry is an append-only list of paths to delete. It is safe for
// concurrent use.
type Registry struct {
	mu    sync.Mutex
	paths []string
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{}
}

// Register schedules path for deletion. Register a directory before the
// files inside it so Flush removes the files first.
func (r *Registry) Register(path string) {
	r.mu.Lock()
	r.paths = append(r.paths, path)
	r.mu.Unlock()
}

// Paths returns the registered paths in registration order.
func (r *Registry) Paths() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.paths)
}

// Len returns the number of registered paths.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.paths)
}

// Flush removes every registered path in reverse registration order and
// empties the registry. Paths that no longer exist are skipped; every other
// failure is collected into the returned error.
func (r *Registry) Flush() error {
	r.mu.Lock()
	paths := r.paths
	r.paths = nil
	r.mu.Unlock()

	var err error
	for i := len(paths) - 1; i >= 0; i-- {
		if rmErr := os.Remove(paths[i]); rmErr != nil && !stderrors.Is(rmErr, fs.ErrNotExist) {
			err = multierr.Append(err, rmErr)
		}
	}
	return err
}

var defaultRegistry = New()

// Default returns the process-wide registry used by turnkey.Load.
func Default() *Registry {
	return defaultRegistry
}

// Register adds path to the process-wide registry.
func Register(path string) {
	defaultRegistry.Register(path)
}

// Flush flushes the process-wide registry.
func Flush() error {
	return defaultRegistry.Flush()
}
