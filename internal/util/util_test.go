package util

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestListFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b_exonerate.out", "a_exonerate.out", "readme.md"} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "c_exonerate.out"), 0755); err != nil {
		t.Fatal(err)
	}

	got, err := ListFiles(dir, ".out")
	if err != nil {
		t.Fatalf("ListFiles: %v", err)
	}
	if want := []string{"a_exonerate.out", "b_exonerate.out"}; !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}

	if _, err := ListFiles(filepath.Join(dir, "missing"), ".out"); err == nil {
		t.Error("expected error for missing dir")
	}
}

func TestExists(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "f")
	if err := os.WriteFile(file, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	if !DirExists(dir) || DirExists(file) || DirExists(filepath.Join(dir, "nope")) {
		t.Error("DirExists misreports")
	}
	if !FileExists(file) || FileExists(dir) || FileExists(filepath.Join(dir, "nope")) {
		t.Error("FileExists misreports")
	}
}
