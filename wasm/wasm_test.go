package wasm

import (
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/wippyai/turnkey/errors"
)

// emptyModule is the smallest valid module: magic and version only.
var emptyModule = []byte("\x00asm\x01\x00\x00\x00")

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func newLoader(t *testing.T, cfg *Config) *Loader {
	t.Helper()
	ctx := context.Background()
	l, err := NewWithConfig(ctx, cfg)
	if err != nil {
		t.Fatalf("NewWithConfig: %v", err)
	}
	t.Cleanup(func() { l.Close(ctx) })
	return l
}

func TestLoad(t *testing.T) {
	ctx := context.Background()
	l := newLoader(t, nil)
	dir := t.TempDir()

	for _, name := range []string{"liba.wasm", "libb.wasm"} {
		if err := l.Load(ctx, writeFile(t, dir, name, emptyModule)); err != nil {
			t.Fatalf("Load(%s): %v", name, err)
		}
	}

	if l.Module("liba") == nil || l.Module("libb") == nil {
		t.Error("modules not registered under their file names")
	}
	if got := l.Modules(); len(got) != 2 || got[0] != "liba" || got[1] != "libb" {
		t.Errorf("Modules() = %v", got)
	}
}

func TestLoad_DuplicateName(t *testing.T) {
	ctx := context.Background()
	l := newLoader(t, nil)
	path := writeFile(t, t.TempDir(), "liba.wasm", emptyModule)

	if err := l.Load(ctx, path); err != nil {
		t.Fatalf("first Load: %v", err)
	}
	if err := l.Load(ctx, path); !stderrors.Is(err, errors.ErrLoadFailure) {
		t.Errorf("second Load error = %v, want load failure", err)
	}
}

func TestLoad_Invalid(t *testing.T) {
	ctx := context.Background()
	l := newLoader(t, nil)
	dir := t.TempDir()

	tests := []struct {
		name string
		path string
	}{
		{"garbage", writeFile(t, dir, "bad.wasm", []byte("not wasm"))},
		{"missing", filepath.Join(dir, "missing.wasm")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := l.Load(ctx, tt.path)
			var e *errors.Error
			if !stderrors.As(err, &e) {
				t.Fatalf("error = %v, want *errors.Error", err)
			}
			if e.Kind != errors.KindLoadFailure || e.Resource != tt.path {
				t.Errorf("got %v", e)
			}
		})
	}
	if len(l.Modules()) != 0 {
		t.Error("failed loads must not register modules")
	}
}

func TestNewWithConfig_WASI(t *testing.T) {
	l := newLoader(t, &Config{WASI: true, MemoryLimitPages: 16})
	if l.Module("wasi_snapshot_preview1") == nil {
		t.Error("WASI host module not instantiated")
	}
}

func TestModuleName(t *testing.T) {
	tests := map[string]string{
		"/tmp/turnkey1/liba.wasm": "liba",
		"libb":                    "libb",
		"dir/lib.c.wasm":          "lib.c",
	}
	for in, want := range tests {
		if got := ModuleName(in); got != want {
			t.Errorf("ModuleName(%q) = %q, want %q", in, got, want)
		}
	}
}
