package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestHashCommand(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.txt")
	if err := os.WriteFile(a, []byte("hello"), 0644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	t.Run("digest mode succeeds on a real file", func(t *testing.T) {
		cmd := newHashCmd()
		cmd.SetArgs([]string{a})
		if err := cmd.Execute(); err != nil {
			t.Fatalf("hash command failed: %v", err)
		}
	})

	t.Run("files mode succeeds", func(t *testing.T) {
		cmd := newHashCmd()
		cmd.SetArgs([]string{"--mode", "files", a})
		if err := cmd.Execute(); err != nil {
			t.Fatalf("hash command failed: %v", err)
		}
	})

	t.Run("unknown mode fails", func(t *testing.T) {
		cmd := newHashCmd()
		cmd.SetArgs([]string{"--mode", "bogus", a})
		if err := cmd.Execute(); err == nil {
			t.Fatal("expected error for unrecognized output mode")
		}
	})
}
