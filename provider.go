package turnkey

import (
	stderrors "errors"
	"io"
	"io/fs"
	"os"
	"strings"
)

// ResourceProvider opens bundled resources by absolute resource path, such as
// "/com/example/lib/linux/amd64/turnkey.xml".
//
// A missing resource must be reported with an error for which
// errors.Is(err, fs.ErrNotExist) holds; a nil reader with a nil error is read
// the same way. Any other error is treated as an I/O failure.
type ResourceProvider interface {
	OpenResource(name string) (io.ReadCloser, error)
}

// ResourceProviderFunc adapts a function to ResourceProvider.
type ResourceProviderFunc func(name string) (io.ReadCloser, error)

// OpenResource calls f(name).
func (f ResourceProviderFunc) OpenResource(name string) (io.ReadCloser, error) {
	return f(name)
}

type fsProvider struct {
	fsys fs.FS
}

// FS returns a provider reading from fsys. The leading "/" of resource paths
// is dropped, so "/ns/linux/amd64/liba.so" opens "ns/linux/amd64/liba.so".
//
// Works with embed.FS, os.DirFS and fstest.MapFS:
//
//	//go:embed com
//	var natives embed.FS
//
//	err := turnkey.Load("com/example/lib", turnkey.FS(natives))
func FS(fsys fs.FS) ResourceProvider {
	return fsProvider{fsys: fsys}
}

// FSWithRoot is like FS but resolves resource paths below root, for embed
// directives rooted at a sub-directory (e.g. "lib").
func FSWithRoot(fsys fs.FS, root string) (ResourceProvider, error) {
	sub, err := fs.Sub(fsys, root)
	if err != nil {
		return nil, err
	}
	return FS(sub), nil
}

// Dir returns a provider reading from the directory tree rooted at path.
func Dir(path string) ResourceProvider {
	return FS(os.DirFS(path))
}

func (p fsProvider) OpenResource(name string) (io.ReadCloser, error) {
	rel := strings.TrimPrefix(name, "/")
	if !fs.ValidPath(rel) {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrInvalid}
	}
	f, err := p.fsys.Open(rel)
	if err != nil {
		return nil, err
	}
	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if st.IsDir() {
		f.Close()
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}
	return f, nil
}

type chainProvider []ResourceProvider

// Chain returns a provider that asks each provider in turn and returns the
// first resource found. Errors other than not-found stop the search.
func Chain(providers ...ResourceProvider) ResourceProvider {
	return chainProvider(providers)
}

func (c chainProvider) OpenResource(name string) (io.ReadCloser, error) {
	for _, p := range c {
		rc, err := p.OpenResource(name)
		if err == nil {
			if rc == nil {
				continue
			}
			return rc, nil
		}
		if !stderrors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}
	return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
}
