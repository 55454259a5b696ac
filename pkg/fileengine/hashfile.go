package fileengine

import (
	"io"

	"github.com/utkarsh5026/filehash/pkg/xxh3hash"
)

// hashFile computes the XXH3-128 (seed 0) digest of the file at path,
// using buf as the worker's reusable read window. An empty path (the
// encoded empty segment) and any I/O failure both yield the zero
// digest — per-file errors are swallowed, never propagated, per the
// engine's failure model.
func hashFile(path string, buf []byte) [xxh3hash.Size]byte {
	if path == "" {
		return [xxh3hash.Size]byte{}
	}

	f, err := openWithReadHint(path)
	if err != nil {
		return [xxh3hash.Size]byte{}
	}
	defer f.Close()

	n, err := io.ReadFull(f, buf)
	switch err {
	case nil:
		// The first read filled the whole buffer; more data may remain.
		return hashLargeFile(f, buf)
	case io.EOF, io.ErrUnexpectedEOF:
		// Fewer than len(buf) bytes total: the whole file is in hand.
		// n==0 (an empty, but readable, file) hashes as XXH3-128(""),
		// not a reserved all-zero digest — hashFile only returns the
		// zero digest to signal "couldn't read this file at all".
		return xxh3hash.Hash(buf[:n], 0, 0)
	default:
		return [xxh3hash.Size]byte{}
	}
}

// hashLargeFile streams the remainder of a file that didn't fit in a
// single read window. buf holds the first window (already full) and is
// reused for every subsequent read — no allocation beyond the shared
// worker slab. Kept out of hashFile so the common small-file path
// stays short and branch-predictable.
func hashLargeFile(f io.Reader, buf []byte) [xxh3hash.Size]byte {
	h := xxh3hash.New(0, 0)
	if err := h.Update(buf, 0, len(buf)); err != nil {
		return [xxh3hash.Size]byte{}
	}

	for {
		n, err := f.Read(buf)
		if n > 0 {
			if uerr := h.Update(buf, 0, n); uerr != nil {
				return [xxh3hash.Size]byte{}
			}
		}
		if err == io.EOF {
			return h.Digest()
		}
		if err != nil {
			return [xxh3hash.Size]byte{}
		}
	}
}
