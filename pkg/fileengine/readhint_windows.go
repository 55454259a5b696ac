//go:build windows

package fileengine

import (
	"os"

	"golang.org/x/sys/windows"
)

// openWithReadHint opens path via CreateFile with FILE_FLAG_SEQUENTIAL_SCAN,
// the Windows equivalent of POSIX's sequential-scan advisory. There is no
// Windows analogue to O_NOATIME worth chasing here.
func openWithReadHint(path string) (*os.File, error) {
	pathPtr, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return nil, err
	}

	handle, err := windows.CreateFile(
		pathPtr,
		windows.GENERIC_READ,
		windows.FILE_SHARE_READ,
		nil,
		windows.OPEN_EXISTING,
		windows.FILE_FLAG_SEQUENTIAL_SCAN,
		0,
	)
	if err != nil {
		return nil, err
	}

	return os.NewFile(uintptr(handle), path), nil
}
