package filecache

import (
	"encoding/binary"
	"math"
)

// EntrySize is the fixed stride of one cache entry: three f64 stat
// fields (ino, mtimeMs, size) followed by a 16-byte digest, per spec §3.
const EntrySize = 40

// Entry is one fixed-stride record in the cache's entries section,
// parallel to the accompanying path list: entry i describes path i.
// Ino/MtimeMs/Size are carried as integers in memory but serialize as
// IEEE-754 float64, per spec §3 — values at or above 2^53 silently
// lose precision on disk, which the spec accepts for this format
// version (see SPEC_FULL.md resolved Open Question #2).
type Entry struct {
	Ino     uint64
	MtimeMs int64
	Size    uint64
	Hash    [16]byte
}

// zeroEntry is the record stored for a path whose stat failed: zero
// metadata, zero hash, never reusable on a future validate.
var zeroEntry Entry

func (e Entry) encode() [EntrySize]byte {
	var buf [EntrySize]byte
	binary.LittleEndian.PutUint64(buf[0:8], math.Float64bits(float64(e.Ino)))
	binary.LittleEndian.PutUint64(buf[8:16], math.Float64bits(float64(e.MtimeMs)))
	binary.LittleEndian.PutUint64(buf[16:24], math.Float64bits(float64(e.Size)))
	copy(buf[24:40], e.Hash[:])
	return buf
}

func decodeEntry(buf []byte) Entry {
	var e Entry
	e.Ino = uint64(math.Float64frombits(binary.LittleEndian.Uint64(buf[0:8])))
	e.MtimeMs = int64(math.Float64frombits(binary.LittleEndian.Uint64(buf[8:16])))
	e.Size = uint64(math.Float64frombits(binary.LittleEndian.Uint64(buf[16:24])))
	copy(e.Hash[:], buf[24:40])
	return e
}

// encodeEntries serializes entries in order, one EntrySize stride each.
func encodeEntries(entries []Entry) []byte {
	buf := make([]byte, len(entries)*EntrySize)
	for i, e := range entries {
		enc := e.encode()
		copy(buf[i*EntrySize:(i+1)*EntrySize], enc[:])
	}
	return buf
}

// decodeEntries parses count fixed-stride records from buf.
func decodeEntries(buf []byte, count int) []Entry {
	entries := make([]Entry, count)
	for i := range entries {
		start := i * EntrySize
		entries[i] = decodeEntry(buf[start : start+EntrySize])
	}
	return entries
}

// matches reports whether a freshly observed stat result is identical
// to this entry's stored metadata — the fast-reject check a "reusable
// entry" (per the GLOSSARY) must pass.
func (e Entry) matches(s statResult) bool {
	return e.Ino == s.ino && e.MtimeMs == s.mtimeMs && e.Size == s.size
}
