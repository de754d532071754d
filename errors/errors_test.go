package errors

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:    PhaseStage,
				Kind:     KindPackaging,
				Resource: "/com/example/linux/amd64/liba.so",
				Detail:   "missing bundled file",
			},
			contains: []string{"[stage]", "packaging_inconsistency", "/com/example/linux/amd64/liba.so", "missing bundled file"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseIdentify,
				Kind:  KindUnsupportedPlatform,
			},
			contains: []string{"[identify]", "unsupported_platform"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseLoad,
				Kind:   KindLoadFailure,
				Detail: "dlopen",
				Cause:  errors.New("undefined symbol: foo"),
			},
			contains: []string{"[load]", "load_failure", "dlopen", "caused by", "undefined symbol: foo"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	err := LoadFailure(PhaseMetadata, "/x/turnkey.xml", fs.ErrPermission)

	if !errors.Is(err, fs.ErrPermission) {
		t.Error("errors.Is did not reach cause")
	}
	if errors.Unwrap(err) != fs.ErrPermission {
		t.Error("errors.Unwrap did not return cause")
	}
}

func TestError_Is(t *testing.T) {
	err := &Error{
		Phase: PhaseMetadata,
		Kind:  KindUnsupportedPlatform,
	}

	if !err.Is(&Error{Phase: PhaseMetadata, Kind: KindUnsupportedPlatform}) {
		t.Error("Is should match same phase and kind")
	}
	if err.Is(&Error{Phase: PhaseIdentify, Kind: KindUnsupportedPlatform}) {
		t.Error("Is should not match different phase")
	}
	if err.Is(&Error{Phase: PhaseMetadata, Kind: KindLoadFailure}) {
		t.Error("Is should not match different kind")
	}
	if !errors.Is(err, ErrUnsupportedPlatform) {
		t.Error("Kind-only sentinel should match any phase")
	}
	if errors.Is(err, ErrLoadFailure) {
		t.Error("sentinel of another kind should not match")
	}

	wrapped := fmt.Errorf("init native backend: %w", Packaging("/a/b", nil))
	if !errors.Is(wrapped, ErrPackagingInconsistency) {
		t.Error("sentinel should match through fmt wrapping")
	}
}

func TestKindOf(t *testing.T) {
	if got := KindOf(fmt.Errorf("wrap: %w", InvalidInput(PhaseIdentify, "bad"))); got != KindInvalidInput {
		t.Errorf("KindOf = %q, want %q", got, KindInvalidInput)
	}
	if got := KindOf(errors.New("plain")); got != "" {
		t.Errorf("KindOf(plain) = %q, want empty", got)
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("root")
	err := New(PhaseStage, KindLoadFailure).
		Resource("/ns/osx/aarch64/liba.dylib").
		Value(42).
		Cause(cause).
		Detail("copied %d of %d bytes", 10, 20).
		Build()

	if err.Phase != PhaseStage {
		t.Errorf("Phase = %v, want %v", err.Phase, PhaseStage)
	}
	if err.Kind != KindLoadFailure {
		t.Errorf("Kind = %v, want %v", err.Kind, KindLoadFailure)
	}
	if err.Resource != "/ns/osx/aarch64/liba.dylib" {
		t.Errorf("Resource = %v", err.Resource)
	}
	if err.Value != 42 {
		t.Errorf("Value = %v, want 42", err.Value)
	}
	if !errors.Is(err.Cause, cause) {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if err.Detail != "copied 10 of 20 bytes" {
		t.Errorf("Detail = %v", err.Detail)
	}
}

func TestConvenienceConstructors(t *testing.T) {
	t.Run("UnsupportedReport", func(t *testing.T) {
		err := UnsupportedReport("CPU architecture", "riscv64")
		if err.Kind != KindUnsupportedPlatform || err.Phase != PhaseIdentify {
			t.Errorf("got %v/%v", err.Phase, err.Kind)
		}
		if err.Value != "riscv64" {
			t.Errorf("Value = %v", err.Value)
		}
		if !strings.Contains(err.Error(), `"riscv64"`) {
			t.Errorf("message %q should quote the report", err.Error())
		}
	})

	t.Run("Packaging", func(t *testing.T) {
		err := Packaging("/ns/linux/x86/liba.so", fs.ErrNotExist)
		if err.Kind != KindPackaging || err.Phase != PhaseStage {
			t.Errorf("got %v/%v", err.Phase, err.Kind)
		}
		if !errors.Is(err, fs.ErrNotExist) {
			t.Error("cause lost")
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		err := NotFound(PhaseMetadata, "metadata file", "x.xml")
		if err.Kind != KindNotFound {
			t.Errorf("Kind = %v", err.Kind)
		}
		if err.Resource != "x.xml" {
			t.Errorf("Resource = %v", err.Resource)
		}
		if !strings.Contains(err.Detail, `"x.xml"`) {
			t.Errorf("Detail = %v", err.Detail)
		}
	})

	t.Run("ParseFailed", func(t *testing.T) {
		err := ParseFailed("metadata", errors.New("EOF"))
		if err.Kind != KindParse || err.Phase != PhaseParse {
			t.Errorf("got %v/%v", err.Phase, err.Kind)
		}
	})

	t.Run("EncodeFailed", func(t *testing.T) {
		err := EncodeFailed("metadata", errors.New("short write"))
		if err.Kind != KindEncode || err.Phase != PhaseEncode {
			t.Errorf("got %v/%v", err.Phase, err.Kind)
		}
	})
}
