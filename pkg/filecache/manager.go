// Package filecache implements the persistent binary file-hash cache
// sidecar: a Manager holding immutable per-cache configuration, and a
// Cache that opens, validates against the filesystem, reads, and
// rewrites one cache file through a small state machine.
//
// Manager follows the teacher's pkg/config convention of a validated,
// immutable options object built once at construction — here
// normalizing the 24-bit version and the seed components — and never
// mutated afterward.
package filecache

// versionMask keeps the stored version within the header's 24-bit field.
const versionMask = 0xFFFFFF

// Manager holds the configuration a Cache is opened against: the
// caller's schema version, the aggregate-digest seed, and the
// fast-reject fingerprint. All three are normalized once here and
// immutable thereafter.
type Manager struct {
	version     uint32
	seedLow     uint32
	seedHigh    uint32
	fingerprint Fingerprint
}

// NewManager constructs a Manager, masking version to 24 bits.
func NewManager(version uint32, seedLow, seedHigh uint32, fingerprint Fingerprint) *Manager {
	return &Manager{
		version:     version & versionMask,
		seedLow:     seedLow,
		seedHigh:    seedHigh,
		fingerprint: fingerprint,
	}
}

// Version returns the normalized 24-bit version.
func (m *Manager) Version() uint32 { return m.version }

// Seed returns the aggregate-digest seed components.
func (m *Manager) Seed() (low, high uint32) { return m.seedLow, m.seedHigh }

// Fingerprint returns the fast-reject fingerprint.
func (m *Manager) Fingerprint() Fingerprint { return m.fingerprint }
