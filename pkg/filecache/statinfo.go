package filecache

import "os"

// statResult is the subset of file metadata validate compares against a
// stored Entry: inode-equivalent identity, modification time in
// milliseconds, and size. ok=false from statPath means the stat call
// itself failed — treated as "not reusable," never fatal.
type statResult struct {
	ino     uint64
	mtimeMs int64
	size    uint64
}

// statPath stats path and reduces the result to the three fields the
// cache persists. ok reports whether the stat succeeded; notExist
// further distinguishes "file is missing" from other stat failures,
// for the Cache.Validate diagnostics. The platform-specific inode
// extraction lives in statinfo_unix.go/statinfo_windows.go, following
// the same build-tag split the teacher uses for its index entry
// metadata.
func statPath(path string) (result statResult, ok bool, notExist bool) {
	info, err := os.Stat(path)
	if err != nil {
		return statResult{}, false, os.IsNotExist(err)
	}
	return statResult{
		ino:     inodeOf(info),
		mtimeMs: info.ModTime().UnixMilli(),
		size:    uint64(info.Size()),
	}, true, false
}
