package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// Phase indicates which step of unpack-and-load produced the error
type Phase string

const (
	PhaseIdentify Phase = "identify" // host platform identification, prefix construction
	PhaseMetadata Phase = "metadata" // locating and reading turnkey.xml
	PhaseStage    Phase = "stage"    // copying bundled files to the temp dir
	PhaseLoad     Phase = "load"     // dynamic loader invocation
	PhaseParse    Phase = "parse"    // metadata decoding
	PhaseEncode   Phase = "encode"   // metadata encoding
)

// Kind categorizes the error
type Kind string

const (
	KindUnsupportedPlatform Kind = "unsupported_platform"
	KindPackaging           Kind = "packaging_inconsistency"
	KindLoadFailure         Kind = "load_failure"
	KindParse               Kind = "parse"
	KindEncode              Kind = "encode"
	KindInvalidInput        Kind = "invalid_input"
	KindNotFound            Kind = "not_found"
)

// Kind-only targets for errors.Is. They match every error of their kind.
var (
	ErrUnsupportedPlatform    = &Error{Kind: KindUnsupportedPlatform}
	ErrPackagingInconsistency = &Error{Kind: KindPackaging}
	ErrLoadFailure            = &Error{Kind: KindLoadFailure}
)

// Error is the structured error type used throughout turnkey
type Error struct {
	Value    any
	Cause    error
	Phase    Phase
	Kind     Kind
	Resource string
	Detail   string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Resource != "" {
		b.WriteString(" at ")
		b.WriteString(e.Resource)
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error.
// A target without a Phase matches on Kind alone.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Phase == "" {
		return e.Kind == t.Kind
	}
	return e.Phase == t.Phase && e.Kind == t.Kind
}

// KindOf returns the Kind of the first *Error in err's chain, or "" if there is none.
func KindOf(err error) Kind {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Resource sets the resource path or file the error refers to
func (b *Builder) Resource(path string) *Builder {
	b.err.Resource = path
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// UnsupportedPlatform creates an error for a host or bundle that is not supported
func UnsupportedPlatform(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupportedPlatform,
		Detail: detail,
	}
}

// UnsupportedReport creates an error for an unrecognized host report string
func UnsupportedReport(what, report string) *Error {
	return &Error{
		Phase:  PhaseIdentify,
		Kind:   KindUnsupportedPlatform,
		Detail: fmt.Sprintf("unsupported %s: %q", what, report),
		Value:  report,
	}
}

// Packaging creates an error for a bundled file promised by metadata but not retrievable
func Packaging(resource string, cause error) *Error {
	return &Error{
		Phase:    PhaseStage,
		Kind:     KindPackaging,
		Resource: resource,
		Detail:   "missing bundled file, packaging error",
		Cause:    cause,
	}
}

// LoadFailure creates an I/O or loader failure error
func LoadFailure(phase Phase, resource string, cause error) *Error {
	return &Error{
		Phase:    phase,
		Kind:     KindLoadFailure,
		Resource: resource,
		Cause:    cause,
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// NotFound creates a not-found error for a named file or resource
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:    phase,
		Kind:     KindNotFound,
		Resource: name,
		Detail:   fmt.Sprintf("%s %q not found", what, name),
	}
}

// ParseFailed creates a metadata parsing error
func ParseFailed(what string, cause error) *Error {
	return &Error{
		Phase:  PhaseParse,
		Kind:   KindParse,
		Detail: fmt.Sprintf("parse %s", what),
		Cause:  cause,
	}
}

// EncodeFailed creates a metadata encoding error
func EncodeFailed(what string, cause error) *Error {
	return &Error{
		Phase:  PhaseEncode,
		Kind:   KindEncode,
		Detail: fmt.Sprintf("encode %s", what),
		Cause:  cause,
	}
}
