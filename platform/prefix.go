package platform

import (
	"fmt"
	"strings"

	"github.com/wippyai/turnkey/errors"
)

// Prefix is the resolved resource prefix for a library namespace on one platform:
//
//	"/" + namespace + "/" + os.Token() + "/" + cpu.Token() + "/"
//
// Prefix values are immutable and compare equal iff their paths are equal.
type Prefix struct {
	path string
}

// NewPrefix builds the prefix for namespace on p.
//
// namespace is the library-specific resource root without leading or trailing
// "/", usually the library's module or package path. An invalid namespace is a
// programming error and is reported as KindInvalidInput.
func NewPrefix(namespace string, p Platform) (Prefix, error) {
	switch {
	case namespace == "":
		return Prefix{}, errors.InvalidInput(errors.PhaseIdentify, "library namespace must not be empty")
	case strings.HasPrefix(namespace, "/"):
		return Prefix{}, errors.InvalidInput(errors.PhaseIdentify, "library namespace must not start with '/'")
	case strings.HasSuffix(namespace, "/"):
		return Prefix{}, errors.InvalidInput(errors.PhaseIdentify, "library namespace must not end with '/'")
	case !p.Valid():
		return Prefix{}, errors.InvalidInput(errors.PhaseIdentify, "platform is not fully identified")
	}
	return Prefix{path: "/" + namespace + "/" + p.OS.Token() + "/" + p.CPU.Token() + "/"}, nil
}

// MustPrefix is like NewPrefix but panics on an invalid namespace.
// It simplifies initialization of package-level variables.
func MustPrefix(namespace string, p Platform) Prefix {
	prefix, err := NewPrefix(namespace, p)
	if err != nil {
		panic(err)
	}
	return prefix
}

// Resolve returns the resource path of file inside the prefix.
// file must be relative (no leading "/").
func (p Prefix) Resolve(file string) (string, error) {
	if strings.HasPrefix(file, "/") {
		return "", errors.New(errors.PhaseIdentify, errors.KindInvalidInput).
			Resource(file).
			Detail("file must not start with '/'").
			Build()
	}
	return p.path + file, nil
}

// Path returns the full prefix, including the leading and trailing "/".
func (p Prefix) Path() string {
	return p.path
}

// IsZero reports whether p was never constructed.
func (p Prefix) IsZero() bool {
	return p.path == ""
}

// Namespace returns the library namespace part of the prefix.
func (p Prefix) Namespace() string {
	parts := strings.Split(strings.Trim(p.path, "/"), "/")
	if len(parts) < 3 {
		return ""
	}
	return strings.Join(parts[:len(parts)-2], "/")
}

func (p Prefix) String() string {
	parts := strings.Split(strings.Trim(p.path, "/"), "/")
	if len(parts) < 3 {
		return "Prefix{}"
	}
	n := len(parts)
	return fmt.Sprintf("Prefix{library=%q, os=%s, cpu=%s}", p.Namespace(), parts[n-2], parts[n-1])
}
