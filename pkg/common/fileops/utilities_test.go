package fileops

import (
	"os"
	"path/filepath"
	"testing"
)

func TestExists(t *testing.T) {
	tempDir := t.TempDir()

	t.Run("file exists", func(t *testing.T) {
		filePath := filepath.Join(tempDir, "test.txt")
		if err := os.WriteFile(filePath, []byte("test"), 0644); err != nil {
			t.Fatal(err)
		}

		exists, err := Exists(filePath)
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		if !exists {
			t.Error("expected file to exist")
		}
	})

	t.Run("file does not exist", func(t *testing.T) {
		filePath := filepath.Join(tempDir, "nonexistent.txt")

		exists, err := Exists(filePath)
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		if exists {
			t.Error("expected file to not exist")
		}
	})

	t.Run("directory exists", func(t *testing.T) {
		dirPath := filepath.Join(tempDir, "testdir")
		if err := os.Mkdir(dirPath, 0755); err != nil {
			t.Fatal(err)
		}

		exists, err := Exists(dirPath)
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		if !exists {
			t.Error("expected directory to exist")
		}
	})
}

func TestEnsureDir(t *testing.T) {
	tempDir := t.TempDir()

	t.Run("create new directory", func(t *testing.T) {
		target := filepath.Join(tempDir, "a", "b", "c")
		if err := EnsureDir(target); err != nil {
			t.Fatalf("EnsureDir failed: %v", err)
		}
		info, err := os.Stat(target)
		if err != nil {
			t.Fatalf("expected directory to exist: %v", err)
		}
		if !info.IsDir() {
			t.Error("expected path to be a directory")
		}
	})

	t.Run("existing directory is a no-op", func(t *testing.T) {
		if err := EnsureDir(tempDir); err != nil {
			t.Errorf("unexpected error for existing directory: %v", err)
		}
	})
}

func TestEnsureParentDir(t *testing.T) {
	tempDir := t.TempDir()
	target := filepath.Join(tempDir, "nested", "dir", "file.bin")

	if err := EnsureParentDir(target); err != nil {
		t.Fatalf("EnsureParentDir failed: %v", err)
	}

	info, err := os.Stat(filepath.Dir(target))
	if err != nil {
		t.Fatalf("expected parent directory to exist: %v", err)
	}
	if !info.IsDir() {
		t.Error("expected parent to be a directory")
	}
}

func TestReadBytes(t *testing.T) {
	tempDir := t.TempDir()

	t.Run("missing file returns no error and ok=false", func(t *testing.T) {
		data, ok, err := ReadBytes(filepath.Join(tempDir, "missing.bin"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ok {
			t.Error("expected ok=false for missing file")
		}
		if data != nil {
			t.Errorf("expected nil data, got %v", data)
		}
	})

	t.Run("existing file returns its bytes", func(t *testing.T) {
		path := filepath.Join(tempDir, "present.bin")
		want := []byte{0x01, 0x02, 0x03}
		if err := os.WriteFile(path, want, 0644); err != nil {
			t.Fatal(err)
		}

		data, ok, err := ReadBytes(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !ok {
			t.Fatal("expected ok=true")
		}
		if string(data) != string(want) {
			t.Errorf("data = %v, want %v", data, want)
		}
	})
}

func TestSafeRemove(t *testing.T) {
	tempDir := t.TempDir()

	t.Run("removes an existing file", func(t *testing.T) {
		path := filepath.Join(tempDir, "remove-me.txt")
		if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
		if err := SafeRemove(path); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := os.Stat(path); !os.IsNotExist(err) {
			t.Error("expected file to be removed")
		}
	})

	t.Run("missing file is not an error", func(t *testing.T) {
		path := filepath.Join(tempDir, "never-existed.txt")
		if err := SafeRemove(path); err != nil {
			t.Errorf("unexpected error for missing file: %v", err)
		}
	})
}
