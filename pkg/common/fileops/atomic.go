// Package fileops provides small, dependency-free filesystem helpers used
// by the cache writer: existence checks, directory creation, and
// crash-safe atomic writes (temp file + fsync + rename).
package fileops

import (
	"fmt"
	"os"
	"path/filepath"
)

// AtomicWrite writes data to targetPath atomically: it writes into a
// sibling temporary file, fsyncs it, then renames it over the target.
// The file is never observed in a partially-written state.
func AtomicWrite(targetPath string, data []byte, mode os.FileMode) error {
	dir := filepath.Dir(targetPath)
	tmpFile, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	defer func() {
		tmpFile.Close()
		os.Remove(tmpFile.Name())
	}()

	if err := writeTempFile(data, tmpFile); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}

	return renameTempFile(tmpFile.Name(), targetPath, mode)
}

// AtomicWriteNamed behaves like AtomicWrite but writes to an explicit
// temporary path rather than one chosen by os.CreateTemp. Callers that need
// a specific naming convention (e.g. "<target>.tmp-<pid>") use this instead.
// If tmpPath already exists (a prior crashed writer, or pid reuse), the
// caller picks a fresh tmpPath and retries.
func AtomicWriteNamed(targetPath, tmpPath string, data []byte, mode os.FileMode) error {
	if err := EnsureParentDir(targetPath); err != nil {
		return err
	}

	flags := os.O_WRONLY | os.O_CREATE | os.O_EXCL
	tmpFile, err := os.OpenFile(tmpPath, flags, mode)
	if err != nil {
		return fmt.Errorf("create named temp file: %w", err)
	}

	defer func() {
		tmpFile.Close()
		os.Remove(tmpPath)
	}()

	if err := writeTempFile(data, tmpFile); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}

	return renameTempFile(tmpPath, targetPath, mode)
}

// writeTempFile writes data to the supplied temp file, fsyncs it to
// durable storage, and closes it.
func writeTempFile(data []byte, tmpFile *os.File) error {
	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("write data: %w", err)
	}

	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("sync: %w", err)
	}

	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("close: %w", err)
	}

	return nil
}

// renameTempFile applies mode to tmpPath and atomically renames it over
// targetPath.
func renameTempFile(tmpPath, targetPath string, mode os.FileMode) error {
	if err := os.Chmod(tmpPath, mode); err != nil {
		return fmt.Errorf("chmod: %w", err)
	}

	if err := os.Rename(tmpPath, targetPath); err != nil {
		return fmt.Errorf("rename: %w", err)
	}

	return nil
}
