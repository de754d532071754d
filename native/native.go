package native

import (
	"context"
	"slices"
	"sync"

	"go.uber.org/zap"

	"github.com/wippyai/turnkey/errors"
)

// Handle is a library loaded into the process.
type Handle struct {
	Path   string
	Handle uintptr
}

// Loader loads shared libraries into the process with the operating system's
// dynamic loader. Libraries are never unloaded; handles are kept for the
// lifetime of the Loader.
//
// Loader is safe for concurrent use.
type Loader struct {
	mu      sync.Mutex
	handles []Handle
}

// New creates a loader with no loaded libraries.
func New() *Loader {
	return &Loader{}
}

var defaultLoader = New()

// Default returns the process-wide loader.
func Default() *Loader {
	return defaultLoader
}

// Load loads the shared library at path, resolving all symbols immediately
// and making them available to libraries loaded later.
func (l *Loader) Load(_ context.Context, path string) error {
	h, err := open(path)
	if err != nil {
		return errors.New(errors.PhaseLoad, errors.KindLoadFailure).
			Resource(path).
			Cause(err).
			Detail("%s failed", openCall).
			Build()
	}

	l.mu.Lock()
	l.handles = append(l.handles, Handle{Path: path, Handle: h})
	l.mu.Unlock()

	Logger().Debug("library loaded", zap.String("path", path), zap.Uintptr("handle", h))
	return nil
}

// Handles returns the loaded libraries in load order.
func (l *Loader) Handles() []Handle {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.handles)
}
