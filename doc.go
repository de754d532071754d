// Package turnkey locates, unpacks and loads per-platform native library
// bundles shipped as embedded resources.
//
// A library that wraps native code embeds one bundle per supported
// (operating system, CPU architecture) pair, laid out as
//
//	<namespace>/<os>/<cpu>/turnkey.xml
//	<namespace>/<os>/<cpu>/<bundled files...>
//
// with os one of osx, linux, windows and cpu one of x86, amd64, aarch64. At
// startup the library calls Load, which picks the bundle for the running
// host, copies its files into a fresh temporary directory and hands them to
// the dynamic loader in the order listed in turnkey.xml.
//
// # Architecture Overview
//
//	turnkey/        Load, LoadWithConfig, providers and the Loader interface
//	├── platform/   Host identification and resource prefixes
//	├── metadata/   turnkey.xml model and codecs
//	├── tempfiles/  Registry of staged files, flushed by the embedder
//	├── native/     Loader backed by dlopen / LoadLibraryEx
//	├── wasm/       Loader backed by wazero, for WebAssembly bundles
//	├── errors/     Structured error types
//	└── cmd/turnkey CLI to inspect, write and test-load bundles
//
// # Quick Start
//
//	//go:embed com
//	var natives embed.FS
//
//	func main() {
//	    defer tempfiles.Flush()
//
//	    if err := turnkey.Load("com/example/mylib", turnkey.FS(natives)); err != nil {
//	        log.Fatal(err)
//	    }
//	}
//
// # Errors
//
// Every failure is an *errors.Error. Use errors.Is with the kind sentinels to
// tell them apart:
//
//	switch {
//	case errors.Is(err, tkerrors.ErrUnsupportedPlatform):
//	    // no bundle for this host
//	case errors.Is(err, tkerrors.ErrPackagingInconsistency):
//	    // turnkey.xml lists a file that is not packaged
//	case errors.Is(err, tkerrors.ErrLoadFailure):
//	    // I/O, metadata or dynamic loader failure
//	}
//
// # Lifecycle
//
// Loaded libraries are never unloaded, and calling Load twice loads the
// bundle twice. Staged files are registered with tempfiles and are only
// removed when the embedder calls tempfiles.Flush.
package turnkey
