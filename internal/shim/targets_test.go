package shim

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestExpandTarget_NonexistentPathReturnsItself(t *testing.T) {
	path := filepath.Join(t.TempDir(), "does-not-exist.txt")
	got := ExpandTarget(path)
	if !reflect.DeepEqual(got, []string{path}) {
		t.Errorf("got %#v, want [%q]", got, path)
	}
}

func TestExpandTarget_RegularFileReturnsItself(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.txt")
	if err := os.WriteFile(path, []byte("x"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	got := ExpandTarget(path)
	if !reflect.DeepEqual(got, []string{path}) {
		t.Errorf("got %#v, want [%q]", got, path)
	}
}

func TestExpandTarget_DirectoryListsContainedFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.txt", "b.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o600); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	got := ExpandTarget(dir)
	if len(got) != 2 {
		t.Errorf("expected 2 files, got %#v", got)
	}
}

func TestExpandTarget_EmptyDirectoryReturnsItself(t *testing.T) {
	dir := t.TempDir()
	got := ExpandTarget(dir)
	if !reflect.DeepEqual(got, []string{dir}) {
		t.Errorf("expected an empty directory to fall back to itself, got %#v", got)
	}
}
