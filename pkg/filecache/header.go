package filecache

import (
	"encoding/binary"

	cerr "github.com/utkarsh5026/filehash/pkg/common/err"
)

// Magic identifies a cache file: bytes 'F', 'S', 'H', 0x06.
const Magic uint32 = 0x06485346

// HeaderSize is the fixed, cache-line-aligned size of the header.
const HeaderSize = 64

// Header is the 64-byte binary header, version 6 of the format. All
// multi-byte integers are little-endian, matching the on-disk layout
// in spec §6.1.
type Header struct {
	Version             uint32 // 24-bit
	Flags               uint8
	EntryCount          uint32
	AggregateDigest     [16]byte
	Fingerprint         [16]byte
	PathsLen            uint32
	RawDataLen          uint32
	GzipDataLen         uint32
	GzipUncompressedLen uint32
	RawItemCount        uint16
	GzipItemCount       uint16
}

// encode serializes h into its 64-byte on-disk form.
func (h Header) encode() [HeaderSize]byte {
	var buf [HeaderSize]byte

	binary.LittleEndian.PutUint32(buf[0:4], Magic)

	var versionAndFlags [4]byte
	versionAndFlags[0] = byte(h.Version)
	versionAndFlags[1] = byte(h.Version >> 8)
	versionAndFlags[2] = byte(h.Version >> 16)
	versionAndFlags[3] = h.Flags
	copy(buf[4:8], versionAndFlags[:])

	binary.LittleEndian.PutUint32(buf[8:12], h.EntryCount)
	copy(buf[12:28], h.AggregateDigest[:])
	copy(buf[28:44], h.Fingerprint[:])
	binary.LittleEndian.PutUint32(buf[44:48], h.PathsLen)
	binary.LittleEndian.PutUint32(buf[48:52], h.RawDataLen)
	binary.LittleEndian.PutUint32(buf[52:56], h.GzipDataLen)
	binary.LittleEndian.PutUint32(buf[56:60], h.GzipUncompressedLen)
	binary.LittleEndian.PutUint16(buf[60:62], h.RawItemCount)
	binary.LittleEndian.PutUint16(buf[62:64], h.GzipItemCount)

	return buf
}

// decodeHeader parses a 64-byte buffer into a Header. It does not
// itself check magic/version/fingerprint against a Manager — callers
// do that fast-reject comparison, since "mismatch" here just means
// "treat as no previous cache," never an error.
func decodeHeader(buf []byte) (Header, error) {
	if len(buf) < HeaderSize {
		return Header{}, cerr.New("filecache", cerr.CodeCorruptCache, "decode_header",
			"buffer shorter than header size", nil).
			WithContext("have", len(buf)).WithContext("want", HeaderSize)
	}

	magic := binary.LittleEndian.Uint32(buf[0:4])
	if magic != Magic {
		return Header{}, cerr.New("filecache", cerr.CodeCorruptCache, "decode_header",
			"bad magic", nil).WithContext("magic", magic)
	}

	version := uint32(buf[4]) | uint32(buf[5])<<8 | uint32(buf[6])<<16
	flags := buf[7]

	var h Header
	h.Version = version
	h.Flags = flags
	h.EntryCount = binary.LittleEndian.Uint32(buf[8:12])
	copy(h.AggregateDigest[:], buf[12:28])
	copy(h.Fingerprint[:], buf[28:44])
	h.PathsLen = binary.LittleEndian.Uint32(buf[44:48])
	h.RawDataLen = binary.LittleEndian.Uint32(buf[48:52])
	h.GzipDataLen = binary.LittleEndian.Uint32(buf[52:56])
	h.GzipUncompressedLen = binary.LittleEndian.Uint32(buf[56:60])
	h.RawItemCount = binary.LittleEndian.Uint16(buf[60:62])
	h.GzipItemCount = binary.LittleEndian.Uint16(buf[62:64])
	return h, nil
}

// entriesOffset, pathsOffset, rawOffset, and gzipOffset compute each
// section's byte offset from header fields alone — no re-derivation
// from section contents at read time, per spec §3.
func (h Header) entriesOffset() int64 { return HeaderSize }
func (h Header) pathsOffset() int64   { return h.entriesOffset() + int64(h.EntryCount)*EntrySize }
func (h Header) rawOffset() int64     { return h.pathsOffset() + int64(h.PathsLen) }
func (h Header) gzipOffset() int64    { return h.rawOffset() + int64(h.RawDataLen) }
