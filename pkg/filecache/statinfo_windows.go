//go:build windows

package filecache

import "os"

// inodeOf has no cheap equivalent on Windows without reopening the file
// for a GetFileInformationByHandle call; the teacher's index package
// makes the same call for the same reason and returns zero. A zero
// inode still participates correctly in the reusable-entry check —
// mtime and size carry the discriminating signal on this platform.
func inodeOf(info os.FileInfo) uint64 {
	return 0
}
