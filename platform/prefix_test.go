package platform

import (
	stderrors "errors"
	"testing"

	"github.com/wippyai/turnkey/errors"
)

func TestNewPrefix(t *testing.T) {
	p := Platform{OS: MacOS, CPU: AArch64}

	prefix, err := NewPrefix("ns", p)
	if err != nil {
		t.Fatalf("NewPrefix error: %v", err)
	}
	if got := prefix.Path(); got != "/ns/osx/aarch64/" {
		t.Errorf("Path() = %q", got)
	}

	got, err := prefix.Resolve("f")
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if got != "/ns/osx/aarch64/f" {
		t.Errorf("Resolve(f) = %q", got)
	}
}

func TestNewPrefix_NestedNamespace(t *testing.T) {
	prefix := MustPrefix("com/example/lib", Platform{OS: Linux, CPU: X86})

	got, err := prefix.Resolve("turnkey.xml")
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if got != "/com/example/lib/linux/x86/turnkey.xml" {
		t.Errorf("Resolve = %q", got)
	}
	if prefix.Namespace() != "com/example/lib" {
		t.Errorf("Namespace() = %q", prefix.Namespace())
	}
}

func TestNewPrefix_Invalid(t *testing.T) {
	valid := Platform{OS: Windows, CPU: AMD64}
	tests := []struct {
		name      string
		namespace string
		platform  Platform
	}{
		{"empty", "", valid},
		{"leading slash", "/ns", valid},
		{"trailing slash", "ns/", valid},
		{"zero platform", "ns", Platform{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPrefix(tt.namespace, tt.platform)
			if err == nil {
				t.Fatal("expected error")
			}
			if errors.KindOf(err) != errors.KindInvalidInput {
				t.Errorf("KindOf = %q, want invalid_input", errors.KindOf(err))
			}
		})
	}
}

func TestMustPrefix_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustPrefix should panic on an invalid namespace")
		}
	}()
	MustPrefix("", Platform{OS: Linux, CPU: AMD64})
}

func TestResolve_AbsoluteFile(t *testing.T) {
	prefix := MustPrefix("ns", Platform{OS: Linux, CPU: AMD64})

	_, err := prefix.Resolve("/liba.so")
	var e *errors.Error
	if !stderrors.As(err, &e) {
		t.Fatalf("error = %v, want *errors.Error", err)
	}
	if e.Kind != errors.KindInvalidInput || e.Resource != "/liba.so" {
		t.Errorf("got %v", e)
	}
}

func TestPrefix_Equality(t *testing.T) {
	a := MustPrefix("ns", Platform{OS: Linux, CPU: AMD64})
	b := MustPrefix("ns", Platform{OS: Linux, CPU: AMD64})
	c := MustPrefix("ns", Platform{OS: Linux, CPU: AArch64})

	if a != b {
		t.Error("prefixes with the same path should be equal")
	}
	if a == c {
		t.Error("prefixes for different CPUs should differ")
	}

	seen := map[Prefix]bool{a: true}
	if !seen[b] {
		t.Error("equal prefixes should be interchangeable as map keys")
	}
}

func TestPrefix_String(t *testing.T) {
	prefix := MustPrefix("ns", Platform{OS: Linux, CPU: AMD64})
	if got := prefix.String(); got != `Prefix{library="ns", os=linux, cpu=amd64}` {
		t.Errorf("String() = %q", got)
	}
	if got := (Prefix{}).String(); got != "Prefix{}" {
		t.Errorf("zero String() = %q", got)
	}
	if !(Prefix{}).IsZero() || prefix.IsZero() {
		t.Error("IsZero mismatch")
	}
}
