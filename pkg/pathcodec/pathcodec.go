// Package pathcodec encodes and decodes path lists in the NUL-separated
// wire format used throughout the cache and the hashing engine: a flat
// UTF-8 byte buffer where each path is terminated by a single 0x00 byte.
//
// The format mirrors the null-terminated path fields in a Git index
// entry, generalized from "one path per record" to "one buffer holding
// every path the caller wants to hash in a single pass": the parallel
// engine slices directly into this buffer instead of allocating a
// []string, and the cache stores it verbatim as the paths section.
package pathcodec

import "bytes"

// Encode serializes paths into a single NUL-separated buffer.
//
// It is two-pass: the first pass computes the exact output size so the
// second pass writes into one allocation with no growth. A path that is
// empty, or that contains an internal NUL byte, is written as an empty
// segment — NUL is not a legal filesystem path byte, so any path
// containing one is lossified rather than rejected. An empty path list
// produces an empty buffer with no trailing separator.
func Encode(paths []string) []byte {
	size := 0
	for _, p := range paths {
		if isLossySegment(p) {
			size++
		} else {
			size += len(p) + 1
		}
	}

	buf := make([]byte, 0, size)
	for _, p := range paths {
		if isLossySegment(p) {
			buf = append(buf, 0)
			continue
		}
		buf = append(buf, p...)
		buf = append(buf, 0)
	}
	return buf
}

// isLossySegment reports whether p must be written as an empty segment:
// it is itself empty, or it contains a NUL byte that would otherwise be
// mistaken for the segment terminator.
func isLossySegment(p string) bool {
	return p == "" || bytes.IndexByte([]byte(p), 0) >= 0
}

// Decode splits a NUL-separated buffer back into a path list.
//
// Every 0x00 byte terminates a segment; runs of zero length produce
// empty strings. If buf does not end with a separator, the trailing
// partial run is still returned as a final segment — callers that
// write without a trailing NUL (permitted by the format) round-trip
// correctly. An empty buffer yields an empty, non-nil slice.
func Decode(buf []byte) []string {
	if len(buf) == 0 {
		return []string{}
	}

	paths := make([]string, 0, bytes.Count(buf, []byte{0})+1)
	start := 0
	for i, b := range buf {
		if b != 0 {
			continue
		}
		paths = append(paths, string(buf[start:i]))
		start = i + 1
	}
	if start < len(buf) {
		paths = append(paths, string(buf[start:]))
	}
	return paths
}

// Iterate walks the NUL-separated segments of buf in order, calling fn
// with a slice borrowed directly from buf for each one. Iteration stops
// early if fn returns false.
//
// Unlike Decode, Iterate never allocates a result slice: it walks the
// path segments without materializing a []string, at the cost of the
// borrowed slice becoming invalid once buf is reused or freed by the
// caller.
func Iterate(buf []byte, fn func(path []byte) bool) {
	start := 0
	for i, b := range buf {
		if b != 0 {
			continue
		}
		if !fn(buf[start:i]) {
			return
		}
		start = i + 1
	}
	if start < len(buf) {
		fn(buf[start:])
	}
}

// Count returns the number of path segments encoded in buf, equivalent
// to len(Decode(buf)) but without allocating the decoded strings.
func Count(buf []byte) int {
	if len(buf) == 0 {
		return 0
	}
	n := bytes.Count(buf, []byte{0})
	if buf[len(buf)-1] != 0 {
		n++
	}
	return n
}
