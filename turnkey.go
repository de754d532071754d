package turnkey

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/wippyai/turnkey/errors"
	"github.com/wippyai/turnkey/metadata"
	"github.com/wippyai/turnkey/native"
	"github.com/wippyai/turnkey/platform"
	"github.com/wippyai/turnkey/tempfiles"
)

// MetadataFileName is the name of the metadata file inside every platform
// prefix.
const MetadataFileName = "turnkey.xml"

// Loader loads one staged library file. path is absolute.
type Loader interface {
	Load(ctx context.Context, path string) error
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc func(ctx context.Context, path string) error

// Load calls f(ctx, path).
func (f LoaderFunc) Load(ctx context.Context, path string) error {
	return f(ctx, path)
}

// Config holds configuration for LoadWithConfig. Zero fields take defaults.
type Config struct {
	// Platform overrides host identification. The zero value identifies the
	// running host.
	Platform platform.Platform

	// TempDir is the parent of the staging directory. Empty means
	// os.TempDir().
	TempDir string

	// Loader loads the staged files. nil means native.Default().
	Loader Loader

	// Registry receives every staged path. nil means tempfiles.Default().
	Registry *tempfiles.Registry
}

// Result describes a completed load.
type Result struct {
	Platform platform.Platform
	Prefix   platform.Prefix

	// Dir is the staging directory, absolute.
	Dir string

	// Staged lists the staged files in staging order, absolute.
	Staged []string

	// Loaded lists the paths passed to the loader, in load order.
	Loaded []string
}

// Load unpacks and loads the native bundle of namespace for the running host
// with the default configuration.
//
// namespace is the library's resource root, without leading or trailing "/".
// Staged files are registered with tempfiles.Default(); call tempfiles.Flush
// when the process no longer needs them.
func Load(namespace string, provider ResourceProvider) error {
	_, err := LoadWithConfig(context.Background(), namespace, provider, nil)
	return err
}

// LoadWithConfig unpacks and loads the bundle of namespace:
//
//  1. identify the platform and build the prefix
//  2. read <prefix>/turnkey.xml
//  3. copy every bundled library into a fresh temporary directory
//  4. pass each load command, in order, to the loader
//
// The first failure aborts the call. Files staged or loaded before the
// failure stay in place; they are already registered for deletion.
//
// Error kinds: unsupported_platform when the host or bundle is not supported,
// packaging_inconsistency when a bundled file is missing, load_failure for
// I/O, parse and loader failures, invalid_input for a bad namespace.
func LoadWithConfig(ctx context.Context, namespace string, provider ResourceProvider, cfg *Config) (*Result, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	if provider == nil {
		return nil, errors.InvalidInput(errors.PhaseIdentify, "resource provider is nil")
	}

	l := &loadRun{
		ctx:      ctx,
		provider: provider,
		loader:   cfg.Loader,
		registry: cfg.Registry,
		tempDir:  cfg.TempDir,
		log:      Logger().With(zap.String("namespace", namespace)),
	}
	if l.loader == nil {
		l.loader = native.Default()
	}
	if l.registry == nil {
		l.registry = tempfiles.Default()
	}

	p := cfg.Platform
	if p == (platform.Platform{}) {
		var err error
		if p, err = platform.Identify(); err != nil {
			return nil, err
		}
	}

	prefix, err := platform.NewPrefix(namespace, p)
	if err != nil {
		return nil, err
	}
	l.log.Debug("platform identified",
		zap.Stringer("platform", p),
		zap.String("prefix", prefix.Path()))

	meta, err := l.readMetadata(prefix)
	if err != nil {
		return nil, err
	}

	res := &Result{Platform: p, Prefix: prefix}
	if err := l.stage(prefix, meta, res); err != nil {
		return nil, err
	}
	if err := l.load(meta, res); err != nil {
		return nil, err
	}

	l.log.Info("bundle loaded",
		zap.Stringer("platform", p),
		zap.String("dir", res.Dir),
		zap.Int("staged", len(res.Staged)),
		zap.Int("loaded", len(res.Loaded)))
	return res, nil
}

// loadRun carries the state of one LoadWithConfig call.
type loadRun struct {
	ctx      context.Context
	provider ResourceProvider
	loader   Loader
	registry *tempfiles.Registry
	tempDir  string
	log      *zap.Logger
}

func (l *loadRun) readMetadata(prefix platform.Prefix) (*metadata.Metadata, error) {
	path, err := prefix.Resolve(MetadataFileName)
	if err != nil {
		return nil, err
	}

	rc, err := l.provider.OpenResource(path)
	if err == nil && rc == nil {
		err = fs.ErrNotExist
	}
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.New(errors.PhaseMetadata, errors.KindUnsupportedPlatform).
				Resource(path).
				Cause(err).
				Detail("no bundle for this platform").
				Build()
		}
		return nil, errors.LoadFailure(errors.PhaseMetadata, path, err)
	}
	defer rc.Close()

	meta, err := metadata.Decode(rc)
	if err != nil {
		return nil, errors.LoadFailure(errors.PhaseMetadata, path, err)
	}

	l.log.Debug("metadata read",
		zap.String("path", path),
		zap.Stringer("metadata", meta))
	return meta, nil
}

func (l *loadRun) stage(prefix platform.Prefix, meta *metadata.Metadata, res *Result) error {
	dir, err := os.MkdirTemp(l.tempDir, "turnkey*")
	if err != nil {
		return errors.LoadFailure(errors.PhaseStage, l.tempDir, err)
	}
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	l.registry.Register(dir)
	res.Dir = dir

	created := map[string]bool{dir: true}
	for _, name := range meta.BundledLibraries() {
		resource, err := prefix.Resolve(name)
		if err != nil {
			return errors.Packaging(name, err)
		}
		if !metadata.LocalName(name) {
			return errors.Packaging(resource, fmt.Errorf("bundled name %q is not a local path", name))
		}

		target := filepath.Join(dir, filepath.FromSlash(name))
		if err := l.mkdirs(dir, filepath.Dir(target), created); err != nil {
			return err
		}
		if err := l.stageFile(resource, target); err != nil {
			return err
		}
		res.Staged = append(res.Staged, target)
		l.log.Debug("staged", zap.String("resource", resource), zap.String("file", target))
	}
	return nil
}

// mkdirs creates and registers the directories between root and dir.
// Directories outside root are never touched.
func (l *loadRun) mkdirs(root, dir string, created map[string]bool) error {
	if created[dir] || !strings.HasPrefix(dir, root+string(filepath.Separator)) {
		return nil
	}
	if parent := filepath.Dir(dir); parent != root {
		if err := l.mkdirs(root, parent, created); err != nil {
			return err
		}
	}
	l.registry.Register(dir)
	if err := os.Mkdir(dir, 0o755); err != nil && !stderrors.Is(err, fs.ErrExist) {
		return errors.LoadFailure(errors.PhaseStage, dir, err)
	}
	created[dir] = true
	return nil
}

func (l *loadRun) stageFile(resource, target string) error {
	src, err := l.provider.OpenResource(resource)
	if err == nil && src == nil {
		err = fs.ErrNotExist
	}
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return errors.Packaging(resource, err)
		}
		return errors.LoadFailure(errors.PhaseStage, resource, err)
	}
	defer src.Close()

	l.registry.Register(target)
	dst, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o755)
	if err != nil {
		return errors.LoadFailure(errors.PhaseStage, target, err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return errors.New(errors.PhaseStage, errors.KindLoadFailure).
			Resource(resource).
			Cause(err).
			Detail("copy to %s", target).
			Build()
	}
	if err := dst.Close(); err != nil {
		return errors.LoadFailure(errors.PhaseStage, target, err)
	}
	return nil
}

func (l *loadRun) load(meta *metadata.Metadata, res *Result) error {
	for _, cmd := range meta.LoadCommands() {
		if !metadata.LocalName(cmd) {
			return errors.New(errors.PhaseLoad, errors.KindLoadFailure).
				Resource(cmd).
				Detail("load command is not a local path").
				Build()
		}
		path := filepath.Join(res.Dir, filepath.FromSlash(cmd))

		l.log.Debug("loading", zap.String("file", path))
		if err := l.loader.Load(l.ctx, path); err != nil {
			if errors.KindOf(err) == errors.KindLoadFailure {
				return err
			}
			return errors.LoadFailure(errors.PhaseLoad, path, err)
		}
		res.Loaded = append(res.Loaded, path)
	}
	return nil
}
