package bulkhash

import (
	cerr "github.com/utkarsh5026/filehash/pkg/common/err"
	"github.com/utkarsh5026/filehash/pkg/fileengine"
	"github.com/utkarsh5026/filehash/pkg/pathcodec"
	"github.com/utkarsh5026/filehash/pkg/xxh3hash"
)

// pathBufferOf resolves the Files/PathBuffer precedence shared with Bulk.
func pathBufferOf(files []string, pathBuffer []byte) []byte {
	if pathBuffer != nil {
		return pathBuffer
	}
	return pathcodec.Encode(files)
}

// UpdateFilesBulk is the streaming instance companion to Bulk: it
// hashes files in parallel exactly as Bulk does, then feeds the
// resulting N×16-byte per-file block into h's own running digest via
// Update. Nothing is returned; callers that also want the per-file
// block use UpdateFilesBulkNew or UpdateFilesBulkInto instead.
//
// This lets a caller mix file content into a larger aggregate that
// also covers non-file data, by interleaving this call with other
// Update calls on the same hasher.
func UpdateFilesBulk(h *xxh3hash.Hasher, files []string, pathBuffer []byte, concurrency int) error {
	perFile, err := fileengine.Hash(pathBufferOf(files, pathBuffer), concurrency)
	if err != nil {
		return err
	}
	return h.Update(perFile, 0, len(perFile))
}

// UpdateFilesBulkNew behaves like UpdateFilesBulk but also returns the
// freshly allocated N×16-byte per-file block, handing ownership to the
// caller.
func UpdateFilesBulkNew(h *xxh3hash.Hasher, files []string, pathBuffer []byte, concurrency int) ([]byte, error) {
	perFile, err := fileengine.Hash(pathBufferOf(files, pathBuffer), concurrency)
	if err != nil {
		return nil, err
	}
	if err := h.Update(perFile, 0, len(perFile)); err != nil {
		return nil, err
	}
	return perFile, nil
}

// UpdateFilesBulkInto behaves like UpdateFilesBulk but writes the
// per-file block into a caller-supplied span instead of allocating.
func UpdateFilesBulkInto(h *xxh3hash.Hasher, files []string, pathBuffer []byte, concurrency int, out []byte, outOffset int) error {
	buf := pathBufferOf(files, pathBuffer)
	n := pathcodec.Count(buf)
	need := outOffset + n*xxh3hash.Size

	if need > len(out) {
		return cerr.New("bulkhash", cerr.CodeRange, "update_files_bulk_into",
			"output buffer too small for per-file digest block", nil).
			WithContext("need", need).
			WithContext("have", len(out))
	}

	if err := fileengine.HashInto(buf, concurrency, out[outOffset:outOffset+n*xxh3hash.Size]); err != nil {
		return err
	}
	return h.Update(out, outOffset, n*xxh3hash.Size)
}
