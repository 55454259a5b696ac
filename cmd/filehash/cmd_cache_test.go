package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCacheValidateAndWriteCommands(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.txt")
	if err := os.WriteFile(a, []byte("hello"), 0644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	cachePath := filepath.Join(dir, "sidecar.bin")

	t.Run("validate on a fresh cache reports change", func(t *testing.T) {
		cmd := newCacheValidateCmd()
		cmd.SetArgs([]string{"--cache", cachePath, a})
		if err := cmd.Execute(); err != nil {
			t.Fatalf("validate command failed: %v", err)
		}
	})

	t.Run("write then dump round trips", func(t *testing.T) {
		write := newCacheWriteCmd()
		write.SetArgs([]string{"--cache", cachePath, a})
		if err := write.Execute(); err != nil {
			t.Fatalf("write command failed: %v", err)
		}

		dump := newCacheDumpCmd()
		dump.SetArgs([]string{"--cache", cachePath})
		if err := dump.Execute(); err != nil {
			t.Fatalf("dump command failed: %v", err)
		}
	})

	t.Run("validate -v prints diagnostics without error", func(t *testing.T) {
		cmd := newCacheValidateCmd()
		cmd.SetArgs([]string{"--cache", cachePath, "-v", a})
		if err := cmd.Execute(); err != nil {
			t.Fatalf("validate -v command failed: %v", err)
		}
	})

	t.Run("dump on a missing cache still succeeds", func(t *testing.T) {
		cmd := newCacheDumpCmd()
		cmd.SetArgs([]string{"--cache", filepath.Join(dir, "nope.bin")})
		if err := cmd.Execute(); err != nil {
			t.Fatalf("dump command failed: %v", err)
		}
	})
}
