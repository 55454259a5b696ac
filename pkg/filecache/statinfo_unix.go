//go:build unix

package filecache

import (
	"os"
	"syscall"
)

// inodeOf extracts the inode number from a Unix os.FileInfo, mirroring
// the teacher's index.extractSystemMetadata build-tag split.
func inodeOf(info os.FileInfo) uint64 {
	if stat, ok := info.Sys().(*syscall.Stat_t); ok {
		return uint64(stat.Ino)
	}
	return 0
}
