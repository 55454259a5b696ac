//go:build unix

package fileengine

import (
	"os"

	"golang.org/x/sys/unix"
)

// openWithReadHint opens path for sequential reading and advises the OS
// accordingly. It first attempts O_NOATIME (skip updating the access
// time, since change detection never needs it); on EPERM — raised when
// the caller doesn't own the file and isn't privileged — it retries
// without the flag. Fadvise(FADV_SEQUENTIAL) failures are ignored: the
// hint is an optimization, never a correctness requirement.
func openWithReadHint(path string) (*os.File, error) {
	fd, err := unix.Open(path, unix.O_RDONLY|unix.O_NOATIME, 0)
	if err == unix.EPERM {
		fd, err = unix.Open(path, unix.O_RDONLY, 0)
	}
	if err != nil {
		return nil, err
	}

	_ = unix.Fadvise(fd, 0, 0, unix.FADV_SEQUENTIAL)
	return os.NewFile(uintptr(fd), path), nil
}
