package wasm

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"
	"go.uber.org/zap"

	"github.com/wippyai/turnkey/errors"
)

// Config holds configuration for loader creation
type Config struct {
	// MemoryLimitPages sets the maximum memory per instance in pages (64KB each).
	// 0 means default (65536 pages = 4GB).
	MemoryLimitPages uint32

	// WASI instantiates wasi_snapshot_preview1 before any bundled module so
	// modules built for WASI can import it.
	WASI bool
}

// Loader instantiates WebAssembly modules into a single wazero runtime.
//
// Each module is instantiated under its file name without the ".wasm"
// extension, so a module loaded later can import one loaded earlier:
// libb.wasm importing from "liba" must come after liba.wasm in the load
// commands.
//
// Loader is safe for concurrent use.
type Loader struct {
	mu      sync.Mutex
	runtime wazero.Runtime
	modules []string
}

// New creates a loader with the default configuration.
func New(ctx context.Context) (*Loader, error) {
	return NewWithConfig(ctx, nil)
}

// NewWithConfig creates a loader with custom configuration.
func NewWithConfig(ctx context.Context, cfg *Config) (*Loader, error) {
	runtimeCfg := wazero.NewRuntimeConfig()
	if cfg != nil && cfg.MemoryLimitPages > 0 {
		runtimeCfg = runtimeCfg.WithMemoryLimitPages(cfg.MemoryLimitPages)
	}

	r := wazero.NewRuntimeWithConfig(ctx, runtimeCfg)
	if cfg != nil && cfg.WASI {
		if _, err := wasi_snapshot_preview1.Instantiate(ctx, r); err != nil {
			_ = r.Close(ctx)
			return nil, errors.New(errors.PhaseLoad, errors.KindLoadFailure).
				Resource(wasi_snapshot_preview1.ModuleName).
				Cause(err).
				Detail("instantiate WASI").
				Build()
		}
	}
	return &Loader{runtime: r}, nil
}

// ModuleName returns the name a staged file is instantiated under.
func ModuleName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), ".wasm")
}

// Load compiles and instantiates the module at path. A reactor's
// "_initialize" export runs during instantiation.
func (l *Loader) Load(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.LoadFailure(errors.PhaseLoad, path, err)
	}

	name := ModuleName(path)

	l.mu.Lock()
	defer l.mu.Unlock()

	compiled, err := l.runtime.CompileModule(ctx, data)
	if err != nil {
		return errors.New(errors.PhaseLoad, errors.KindLoadFailure).
			Resource(path).
			Cause(err).
			Detail("compile module").
			Build()
	}

	modCfg := wazero.NewModuleConfig().
		WithName(name).
		WithStartFunctions("_initialize")
	if _, err := l.runtime.InstantiateModule(ctx, compiled, modCfg); err != nil {
		_ = compiled.Close(ctx)
		return errors.New(errors.PhaseLoad, errors.KindLoadFailure).
			Resource(path).
			Cause(err).
			Detail("instantiate module %q", name).
			Build()
	}

	l.modules = append(l.modules, name)
	Logger().Debug("module instantiated", zap.String("path", path), zap.String("module", name))
	return nil
}

// Module returns the instantiated module with the given name, or nil.
func (l *Loader) Module(name string) api.Module {
	return l.runtime.Module(name)
}

// Modules returns the names of instantiated modules in load order.
func (l *Loader) Modules() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.modules))
	copy(out, l.modules)
	return out
}

// Close closes the runtime and every module in it.
func (l *Loader) Close(ctx context.Context) error {
	return l.runtime.Close(ctx)
}
