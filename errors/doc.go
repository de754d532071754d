// Package errors provides structured error types for the turnkey library.
//
// Errors are categorized by Phase (which step of unpack-and-load failed) and
// Kind (error category). The Error type carries the resource path or file
// involved, a human-readable detail and the cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseStage, errors.KindPackaging).
//		Resource("/com/example/linux/amd64/libfoo.so").
//		Detail("declared in metadata but not bundled").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.UnsupportedPlatform(errors.PhaseIdentify, "unsupported CPU architecture: riscv64")
//	err := errors.LoadFailure(errors.PhaseLoad, path, cause)
//
// All errors implement the standard error interface and support errors.Is/As.
// The Kind-only sentinels (ErrUnsupportedPlatform, ErrPackagingInconsistency,
// ErrLoadFailure) match any error of that kind regardless of phase:
//
//	if errors.Is(err, errors.ErrUnsupportedPlatform) {
//	    // disable the native feature
//	}
package errors
