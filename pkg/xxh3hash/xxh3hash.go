// Package xxh3hash wraps github.com/zeebo/xxh3 behind the project's
// streaming-hasher contract: a seeded, resettable, incrementally
// updatable XXH3-128 state that serializes its digest as canonical
// big-endian bytes (high 64 bits first, then low), matching the
// reference XXH128_canonicalFromHash layout rather than the library's
// native little-endian Bytes() encoding.
//
// The package mirrors the teacher's objects.ObjectHash design —
// canonical-bytes-first, with the digest computed once and read many
// times — generalized from a fixed SHA-1/20-byte hash to a seeded
// XXH3-128/16-byte one.
package xxh3hash

import (
	"encoding/binary"
	"sync"
	"sync/atomic"

	"github.com/zeebo/xxh3"

	cerr "github.com/utkarsh5026/filehash/pkg/common/err"
)

// Size is the length in bytes of a canonical XXH3-128 digest.
const Size = 16

// Backend names the implementation actually in use. Both values route
// through the same github.com/zeebo/xxh3 module today — see DESIGN.md
// for why a second, textually distinct implementation was not
// hand-rolled — but the enum is part of the public contract so callers
// can observe which one initialized.
type Backend int

const (
	// NotInitialized is the zero value, before Init has run.
	NotInitialized Backend = iota
	// Native indicates the platform-accelerated backend initialized.
	Native
	// Portable indicates the pure-Go fallback initialized.
	Portable
)

func (b Backend) String() string {
	switch b {
	case Native:
		return "native"
	case Portable:
		return "portable"
	default:
		return "not_initialized"
	}
}

var (
	initOnce    sync.Once
	initBackend atomic.Int32
)

// Init probes for a native backend and falls back to the portable one
// on failure. It is idempotent: concurrent and repeated callers share
// a single initialization guarded by a package-level sync.Once.
//
// zeebo/xxh3 is pure Go with no cgo/asm probe to fail, so this always
// resolves to Native; the probe exists so a future platform-specific
// backend can be slotted in without changing the public contract.
func Init() Backend {
	initOnce.Do(func() {
		initBackend.Store(int32(Native))
	})
	return Status()
}

// Status reports the current backend without triggering initialization.
func Status() Backend {
	return Backend(initBackend.Load())
}

// Hasher is a seeded, incremental XXH3-128 state.
//
// Hasher is not safe for concurrent use by multiple goroutines; the
// parallel engine gives each worker thread its own instance.
type Hasher struct {
	seed  uint64
	inner *xxh3.Hasher
}

// New constructs a Hasher seeded from (seedLow, seedHigh), reassembled
// as (seedHigh<<32)|seedLow per the project's seed convention. The
// seed is fixed for the lifetime of the Hasher; Reset restores the
// state without forgetting it.
func New(seedLow, seedHigh uint32) *Hasher {
	Init()
	seed := uint64(seedHigh)<<32 | uint64(seedLow)
	return &Hasher{
		seed:  seed,
		inner: xxh3.NewSeed(seed),
	}
}

// Reset restores the hasher to its freshly constructed state, keeping
// the original seed.
func (h *Hasher) Reset() {
	h.inner.Reset()
}

// Update advances the hash state over bytes[offset : offset+length].
// length=0 is a no-op. Returns a Range error if the span falls outside
// bytes.
func (h *Hasher) Update(bytes []byte, offset, length int) error {
	if length == 0 {
		return nil
	}
	if offset < 0 || length < 0 || offset+length > len(bytes) {
		return cerr.New("xxh3hash", cerr.CodeRange, "update",
			"byte span exceeds input length", nil).
			WithContext("offset", offset).
			WithContext("length", length).
			WithContext("bytesLen", len(bytes))
	}
	_, _ = h.inner.Write(bytes[offset : offset+length])
	return nil
}

// Digest returns the current canonical 16-byte XXH3-128 digest.
// Idempotent: repeated calls with no intervening Update return the
// same value and do not mutate state.
func (h *Hasher) Digest() [Size]byte {
	return canonicalBytes(h.inner.Sum128())
}

// DigestTo writes the canonical 16-byte digest into out[offset:offset+16].
// Returns a Range error if the span does not fit.
func (h *Hasher) DigestTo(out []byte, offset int) error {
	if offset < 0 || offset+Size > len(out) {
		return cerr.New("xxh3hash", cerr.CodeRange, "digest_to",
			"output span too small for 16-byte digest", nil).
			WithContext("offset", offset).
			WithContext("outLen", len(out))
	}
	d := h.Digest()
	copy(out[offset:offset+Size], d[:])
	return nil
}

// Hash computes the one-shot XXH3-128 digest of bytes under the given
// seed components, returned as canonical big-endian bytes.
func Hash(bytes []byte, seedLow, seedHigh uint32) [Size]byte {
	Init()
	seed := uint64(seedHigh)<<32 | uint64(seedLow)
	return canonicalBytes(xxh3.HashSeed128(bytes, seed))
}

// canonicalBytes serializes a zeebo/xxh3 Uint128 as the reference
// XXH3-128 canonical form: the high 64 bits, big-endian, followed by
// the low 64 bits, big-endian. This is deliberately not the library's
// own Bytes() method, which encodes low-then-high in its own byte
// order; callers outside Go (and the spec's known-value vectors)
// expect the canonical layout.
func canonicalBytes(u xxh3.Uint128) [Size]byte {
	var out [Size]byte
	binary.BigEndian.PutUint64(out[0:8], u.Hi)
	binary.BigEndian.PutUint64(out[8:16], u.Lo)
	return out
}
