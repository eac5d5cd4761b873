package classpath

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestWriteReadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "classpath")
	paths := []string{"/lib/a.jar", "/lib/b.jar", "/srv/classes"}

	if err := WriteFile(path, paths); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}
	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}
	if !reflect.DeepEqual(got, paths) {
		t.Errorf("ReadFile() = %v, want %v", got, paths)
	}
}

func TestWriteFileOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "classpath")
	if err := WriteFile(path, []string{"/old.jar"}); err != nil {
		t.Fatal(err)
	}
	if err := WriteFile(path, []string{"/new.jar"}); err != nil {
		t.Fatal(err)
	}

	got, err := ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0] != "/new.jar" {
		t.Errorf("ReadFile() = %v, want [/new.jar]", got)
	}
}

func TestWriteFileEmptyClasspath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "classpath")
	if err := WriteFile(path, nil); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}

	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("ReadFile() = %v, want empty", got)
	}
}

func TestWriteFileCreatesParentDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "classpath")
	if err := WriteFile(path, []string{"/lib/a.jar"}); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("classpath file not created: %v", err)
	}
}

func TestWriteFileLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "classpath")
	if err := WriteFile(path, []string{"/lib/a.jar"}); err != nil {
		t.Fatal(err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".tmp") {
			t.Errorf("temp file left behind: %s", e.Name())
		}
	}
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "absent"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("ReadFile() error = %v, want os.ErrNotExist", err)
	}
}

func TestReadFileMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "classpath")
	if err := os.WriteFile(path, []byte("/lib/a.jar"+Separator), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadFile(path); !errors.Is(err, ErrEmptyEntry) {
		t.Errorf("ReadFile() error = %v, want ErrEmptyEntry", err)
	}
}
