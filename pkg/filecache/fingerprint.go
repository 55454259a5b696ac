package filecache

import "github.com/utkarsh5026/filehash/pkg/xxh3hash"

// Fingerprint is the cache's 16-byte fast-reject key: a raw value or a
// hashed one, never mixed into any content digest.
type Fingerprint [16]byte

// ZeroFingerprint is the default fingerprint a caller gets by supplying
// none.
var ZeroFingerprint Fingerprint

// FingerprintFromBytes stores 16 raw bytes as-is.
func FingerprintFromBytes(b [16]byte) Fingerprint {
	return Fingerprint(b)
}

// FingerprintFromString hashes s with XXH3-128 (seed 0) and stores the
// result as the fingerprint.
func FingerprintFromString(s string) Fingerprint {
	return Fingerprint(xxh3hash.Hash([]byte(s), 0, 0))
}
