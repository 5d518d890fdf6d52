package ingest

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestResolveDirectory(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "b.pdf"))
	touch(t, filepath.Join(dir, "a.png"))
	touch(t, filepath.Join(dir, "notes.txt"))
	if err := os.Mkdir(filepath.Join(dir, "nested"), 0o755); err != nil {
		t.Fatal(err)
	}

	paths, stats, err := Resolve([]string{dir})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	want := []string{filepath.Join(dir, "a.png"), filepath.Join(dir, "b.pdf")}
	if !reflect.DeepEqual(paths, want) {
		t.Errorf("paths: got %v, want %v", paths, want)
	}
	if stats.Matched != 2 {
		t.Errorf("matched: got %d, want 2", stats.Matched)
	}
	if stats.Scanned != 4 {
		t.Errorf("scanned: got %d, want 4", stats.Scanned)
	}
}

func TestResolveExplicitFileBypassesFilter(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scan.webp")
	touch(t, path)

	paths, _, err := Resolve([]string{path})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !reflect.DeepEqual(paths, []string{path}) {
		t.Errorf("paths: got %v", paths)
	}
}

func TestResolveMissingPath(t *testing.T) {
	_, _, err := Resolve([]string{"/no/such/file.pdf"})
	if err == nil {
		t.Fatal("want error for missing path")
	}
	// The stat cause must stay reachable so callers can tell absence from
	// a permission problem.
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("cause not preserved: %v", err)
	}
}

func TestResolveOrderPreserved(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "z.pdf")
	second := filepath.Join(dir, "a.pdf")
	touch(t, first)
	touch(t, second)

	paths, _, err := Resolve([]string{first, second})
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(paths, []string{first, second}) {
		t.Errorf("explicit input order not preserved: %v", paths)
	}
}
