package filecache

import "fmt"

// hexdump renders b as lowercase hex. It exists purely for String()
// methods and the dump CLI — §6.3 keeps this out of the binary
// contract, so nothing in Validate/Write/Read ever calls it.
func hexdump(b []byte) string {
	const digits = "0123456789abcdef"
	out := make([]byte, len(b)*2)
	for i, c := range b {
		out[i*2] = digits[c>>4]
		out[i*2+1] = digits[c&0xF]
	}
	return string(out)
}

// String renders the header's fixed fields and digest/fingerprint in
// hex, for `cache dump` and debugging.
func (h Header) String() string {
	return fmt.Sprintf(
		"version=%d flags=%#x entries=%d paths_len=%d raw_len=%d gzip_len=%d gzip_uncompressed_len=%d raw_items=%d gzip_items=%d digest=%s fingerprint=%s",
		h.Version, h.Flags, h.EntryCount, h.PathsLen, h.RawDataLen, h.GzipDataLen,
		h.GzipUncompressedLen, h.RawItemCount, h.GzipItemCount,
		hexdump(h.AggregateDigest[:]), hexdump(h.Fingerprint[:]),
	)
}

// String renders an entry's stat fields and hash in hex, for `cache
// dump` row rendering and debugging.
func (e Entry) String() string {
	return fmt.Sprintf("ino=%d mtime_ms=%d size=%d hash=%s", e.Ino, e.MtimeMs, e.Size, hexdump(e.Hash[:]))
}
