package tempfiles

import (
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"testing"

	"go.uber.org/multierr"
)

func TestFlush_RemovesInReverseOrder(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "stage")
	if err := os.Mkdir(dir, 0o755); err != nil {
		t.Fatal(err)
	}

	r := New()
	r.Register(dir)
	for _, name := range []string{"liba.so", "libb.so"} {
		path := filepath.Join(dir, name)
		r.Register(path)
		if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	if err := r.Flush(); err != nil {
		t.Fatalf("Flush() error: %v", err)
	}
	if _, err := os.Stat(dir); !stderrors.Is(err, fs.ErrNotExist) {
		t.Errorf("directory still present: %v", err)
	}
	if r.Len() != 0 {
		t.Errorf("registry not emptied: %v", r.Paths())
	}
}

func TestFlush_IgnoresMissing(t *testing.T) {
	r := New()
	r.Register(filepath.Join(t.TempDir(), "never-created"))

	if err := r.Flush(); err != nil {
		t.Errorf("Flush() error: %v", err)
	}
}

func TestFlush_AggregatesFailures(t *testing.T) {
	root := t.TempDir()
	// non-empty directories cannot be removed with os.Remove
	var dirs []string
	for _, name := range []string{"a", "b"} {
		dir := filepath.Join(root, name)
		if err := os.MkdirAll(filepath.Join(dir, "unregistered"), 0o755); err != nil {
			t.Fatal(err)
		}
		dirs = append(dirs, dir)
	}

	r := New()
	for _, dir := range dirs {
		r.Register(dir)
	}

	err := r.Flush()
	if err == nil {
		t.Fatal("expected error")
	}
	if n := len(multierr.Errors(err)); n != 2 {
		t.Errorf("got %d errors, want 2: %v", n, err)
	}
	if r.Len() != 0 {
		t.Error("registry must be emptied even when removal fails")
	}
}

func TestRegister_Concurrent(t *testing.T) {
	r := New()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.Register("p")
		}()
	}
	wg.Wait()

	if r.Len() != 50 {
		t.Errorf("Len() = %d, want 50", r.Len())
	}
}

func TestPaths_ReturnsCopy(t *testing.T) {
	r := New()
	r.Register("a")
	r.Register("b")

	paths := r.Paths()
	paths[0] = "changed"
	if got := r.Paths(); !slices.Equal(got, []string{"a", "b"}) {
		t.Errorf("Paths() = %v", got)
	}
}

func TestDefault(t *testing.T) {
	if Default() != Default() {
		t.Fatal("Default() must return the same registry")
	}
	path := filepath.Join(t.TempDir(), "f")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	Register(path)
	if err := Flush(); err != nil {
		t.Fatalf("Flush() error: %v", err)
	}
	if _, err := os.Stat(path); !stderrors.Is(err, fs.ErrNotExist) {
		t.Error("file not removed by package Flush")
	}
}
