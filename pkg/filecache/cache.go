package filecache

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/google/uuid"
	"github.com/klauspost/compress/gzip"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	cerr "github.com/utkarsh5026/filehash/pkg/common/err"
	"github.com/utkarsh5026/filehash/pkg/common/fileops"
	"github.com/utkarsh5026/filehash/pkg/common/logger"
	"github.com/utkarsh5026/filehash/pkg/fileengine"
	"github.com/utkarsh5026/filehash/pkg/pathcodec"
	"github.com/utkarsh5026/filehash/pkg/xxh3hash"
)

// state names the points in the Cache lifecycle diagram of spec §4.E.
type state int

const (
	stateCreated state = iota
	stateOpened
	stateValidated
	stateClosed
)

// defaultStatConcurrency bounds the fan-out of concurrent stat(2) calls
// validate issues, per spec §4.E step 3.
const defaultStatConcurrency = 64

// ReuseReason names why a path's cached hash was or wasn't reused
// during validate, the `filecache.Cache.Stat`-level diagnostics
// SPEC_FULL.md supplements beyond the bare spec.
type ReuseReason string

const (
	ReasonReused       ReuseReason = "reused"
	ReasonMissing      ReuseReason = "missing"
	ReasonStatError    ReuseReason = "stat-error"
	ReasonNoPriorEntry ReuseReason = "no-prior-entry"
	ReasonInoChanged   ReuseReason = "ino-changed"
	ReasonMtimeChanged ReuseReason = "mtime-changed"
	ReasonSizeChanged  ReuseReason = "size-changed"
)

// ReuseDecision records, for one path, why validate did or didn't reuse
// its previously cached hash.
type ReuseDecision struct {
	Path   string
	Reason ReuseReason
}

// ValidateOptions configures one Cache.Validate call.
type ValidateOptions struct {
	// Files is the path list to validate. If nil, the paths from the
	// opened cache (if any) are reused.
	Files []string
	// Concurrency overrides the default 64-lane stat fan-out bound; 0
	// selects the default.
	Concurrency int
	// WithDiagnostics requests a per-path ReuseDecision breakdown.
	WithDiagnostics bool
}

// ValidateResult is the outcome of one Validate call.
type ValidateResult struct {
	Changed     bool
	Digest      [16]byte
	Rehashed    int
	Diagnostics []ReuseDecision
}

// WriteOptions configures one Cache.Write call.
type WriteOptions struct {
	Raw  []Item
	Gzip []Item
	// GzipLevel selects the gzip level (1-9) for the Gzip items; nil
	// selects the default, level 1. An explicit value outside 1..9 —
	// including 0 — fails with CodeRange, per spec testable property
	// "gzipLevel=0 or 10 → Range failure".
	GzipLevel *int
}

// Cache is a per-file stateful reader/validator/writer over one binary
// sidecar, per spec §4.E. The zero value is not usable; construct with
// NewCache.
type Cache struct {
	mgr *Manager

	mu    sync.Mutex
	st    state
	path  string
	file  *os.File

	headerValid bool
	oldHeader   Header
	oldEntries  []Entry
	oldPaths    []string

	validPaths   []string
	validEntries []Entry
	validDigest  [16]byte
	rehashed     int
	diagnostics  []ReuseDecision
}

// NewCache constructs a Cache bound to mgr, in the Created state.
func NewCache(mgr *Manager) *Cache {
	return &Cache{mgr: mgr, st: stateCreated}
}

// Open transitions the cache to Opened: it closes any prior handle,
// opens path read-only, and — if the header's magic/version/fingerprint
// all match mgr — loads the entries and paths sections into memory. A
// missing file, or any header mismatch, is not an error: the cache
// simply records "no previous cache" and continues, per spec §4.E.
func (c *Cache) Open(path string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closeLocked()
	c.resetOldState()
	c.path = path

	f, err := os.Open(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("filecache: open failed, treating as no previous cache",
				"path", path, "err", err)
		}
		c.st = stateOpened
		return nil
	}

	if c.loadFromFile(f) {
		c.file = f
		c.headerValid = true
	} else {
		f.Close()
	}
	c.st = stateOpened
	return nil
}

// resetOldState clears everything Open/loadFromFile would otherwise
// leave stale from a previous Open call on the same Cache value.
func (c *Cache) resetOldState() {
	c.headerValid = false
	c.oldHeader = Header{}
	c.oldEntries = nil
	c.oldPaths = nil
	c.validPaths = nil
	c.validEntries = nil
	c.rehashed = 0
	c.diagnostics = nil
}

// loadFromFile reads and validates the header, and on a full match of
// magic/version/fingerprint loads the entries and paths sections into
// c.oldEntries/c.oldPaths. Returns false on any mismatch or corruption
// — the caller then discards f and proceeds with no previous cache.
func (c *Cache) loadFromFile(f *os.File) bool {
	headerBuf := make([]byte, HeaderSize)
	if _, err := io.ReadFull(f, headerBuf); err != nil {
		return false
	}

	h, err := decodeHeader(headerBuf)
	if err != nil {
		return false
	}
	if h.Version != c.mgr.version || h.Fingerprint != c.mgr.fingerprint {
		return false
	}

	entriesBuf := make([]byte, int(h.EntryCount)*EntrySize)
	if _, err := f.ReadAt(entriesBuf, h.entriesOffset()); err != nil {
		return false
	}

	pathsBuf := make([]byte, h.PathsLen)
	if h.PathsLen > 0 {
		if _, err := f.ReadAt(pathsBuf, h.pathsOffset()); err != nil {
			return false
		}
	}

	paths := pathcodec.Decode(pathsBuf)
	if len(paths) != int(h.EntryCount) {
		return false
	}

	c.oldHeader = h
	c.oldEntries = decodeEntries(entriesBuf, int(h.EntryCount))
	c.oldPaths = paths
	return true
}

// Header returns the previously opened cache's header, if its magic,
// version, and fingerprint all matched mgr — otherwise (nil, false).
func (c *Cache) Header() (*Header, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.headerValid {
		return nil, false
	}
	h := c.oldHeader
	return &h, true
}

// Validate runs the fast-path of spec §4.E: resolve the file list,
// stat every path concurrently, reuse hashes whose (ino, mtimeMs, size)
// exactly match the prior entry, rehash everything else in parallel,
// and fold the results into a new seeded aggregate digest.
func (c *Cache) Validate(opts ValidateOptions) (ValidateResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	files := opts.Files
	if files == nil {
		files = c.oldPaths
	}

	seedLow, seedHigh := c.mgr.Seed()

	if len(files) == 0 {
		return c.validateEmpty(seedLow, seedHigh), nil
	}

	statResults, statOK, statNotExist := statAll(files, opts.Concurrency)

	oldMap := make(map[string]Entry, len(c.oldPaths))
	if c.headerValid {
		for i, p := range c.oldPaths {
			oldMap[p] = c.oldEntries[i]
		}
	}

	entries := make([]Entry, len(files))
	var diag []ReuseDecision
	if opts.WithDiagnostics {
		diag = make([]ReuseDecision, len(files))
	}

	var rehashPaths []string
	var rehashSlots []int
	for i, p := range files {
		reason, reusable := classifyReuse(p, c.headerValid, statOK[i], statNotExist[i], statResults[i], oldMap)
		if opts.WithDiagnostics {
			diag[i] = ReuseDecision{Path: p, Reason: reason}
		}

		if reusable {
			old := oldMap[p]
			entries[i] = Entry{Ino: old.Ino, MtimeMs: old.MtimeMs, Size: old.Size, Hash: old.Hash}
			continue
		}

		if statOK[i] {
			entries[i] = Entry{Ino: statResults[i].ino, MtimeMs: statResults[i].mtimeMs, Size: statResults[i].size}
		}
		rehashSlots = append(rehashSlots, i)
		rehashPaths = append(rehashPaths, p)
	}

	if len(rehashPaths) > 0 {
		pathBuf := pathcodec.Encode(rehashPaths)
		digests, err := fileengine.Hash(pathBuf, opts.Concurrency)
		if err != nil {
			return ValidateResult{}, err
		}
		for j, slot := range rehashSlots {
			copy(entries[slot].Hash[:], digests[j*xxh3hash.Size:(j+1)*xxh3hash.Size])
		}
	}

	allHashes := make([]byte, len(entries)*xxh3hash.Size)
	for i, e := range entries {
		copy(allHashes[i*xxh3hash.Size:(i+1)*xxh3hash.Size], e.Hash[:])
	}
	digest := xxh3hash.Hash(allHashes, seedLow, seedHigh)

	changed := true
	if c.headerValid {
		changed = c.oldHeader.AggregateDigest != digest
	}

	c.validPaths = files
	c.validEntries = entries
	c.validDigest = digest
	c.rehashed = len(rehashPaths)
	c.diagnostics = diag
	c.st = stateValidated

	return ValidateResult{
		Changed:     changed,
		Digest:      digest,
		Rehashed:    c.rehashed,
		Diagnostics: diag,
	}, nil
}

// validateEmpty handles the N=0 degenerate case: per spec §4.E step 2,
// the aggregate is still XXH3-128_withSeed("", seed), not zero.
func (c *Cache) validateEmpty(seedLow, seedHigh uint32) ValidateResult {
	digest := xxh3hash.Hash(nil, seedLow, seedHigh)

	changed := true
	if c.headerValid {
		changed = c.oldHeader.AggregateDigest != digest
	}

	c.validPaths = []string{}
	c.validEntries = []Entry{}
	c.validDigest = digest
	c.rehashed = 0
	c.diagnostics = nil
	c.st = stateValidated

	return ValidateResult{Changed: changed, Digest: digest, Rehashed: 0}
}

// classifyReuse decides whether path's prior entry can be reused
// without rehashing, and names the ReuseDecision reason either way.
func classifyReuse(
	path string,
	headerValid, statOK, statNotExist bool,
	stat statResult,
	oldMap map[string]Entry,
) (ReuseReason, bool) {
	if !statOK {
		if statNotExist {
			return ReasonMissing, false
		}
		return ReasonStatError, false
	}
	if !headerValid {
		return ReasonNoPriorEntry, false
	}
	old, found := oldMap[path]
	if !found {
		return ReasonNoPriorEntry, false
	}
	if old.Ino != stat.ino {
		return ReasonInoChanged, false
	}
	if old.MtimeMs != stat.mtimeMs {
		return ReasonMtimeChanged, false
	}
	if old.Size != stat.size {
		return ReasonSizeChanged, false
	}
	return ReasonReused, true
}

// statAll stats every path in files with a bounded number of concurrent
// lanes (concurrency, or defaultStatConcurrency when 0), following the
// teacher's errgroup+semaphore idiom for bounded fan-out (see DESIGN.md).
func statAll(files []string, concurrency int) ([]statResult, []bool, []bool) {
	n := len(files)
	results := make([]statResult, n)
	ok := make([]bool, n)
	notExist := make([]bool, n)

	lanes := defaultStatConcurrency
	if concurrency > 0 {
		lanes = concurrency
	}
	if lanes > n {
		lanes = n
	}

	sem := semaphore.NewWeighted(int64(lanes))
	g, ctx := errgroup.WithContext(context.Background())

	for i, p := range files {
		i, p := i, p
		g.Go(func() error {
			if err := sem.Acquire(ctx, 1); err != nil {
				return nil
			}
			defer sem.Release(1)
			results[i], ok[i], notExist[i] = statPath(p)
			return nil
		})
	}
	_ = g.Wait()

	return results, ok, notExist
}

// ReadFiles returns the path list validate used most recently, or the
// paths loaded from a previously written cache, or an empty slice.
func (c *Cache) ReadFiles() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.validPaths != nil {
		return c.validPaths
	}
	if c.oldPaths != nil {
		return c.oldPaths
	}
	return []string{}
}

// Entries returns the path/entry pairs loaded from a previously
// written cache, for diagnostic rendering (the `cache dump` command).
// It reflects what Open loaded, or what the most recent Write wrote,
// not the result of a Validate call that has not been written.
func (c *Cache) Entries() (paths []string, entries []Entry, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.headerValid {
		return nil, nil, false
	}
	return c.oldPaths, c.oldEntries, true
}

// ReadRawData parses and returns the raw-item section, or an empty
// slice if the cache has no valid header or the section is empty.
func (c *Cache) ReadRawData() ([]Item, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.headerValid || c.oldHeader.RawDataLen == 0 {
		return []Item{}, nil
	}

	buf := make([]byte, c.oldHeader.RawDataLen)
	if _, err := c.file.ReadAt(buf, c.oldHeader.rawOffset()); err != nil {
		return []Item{}, nil
	}

	return decodeItems(buf, int(c.oldHeader.RawItemCount))
}

// ReadGzipData decompresses and parses the gzip-item section, bounding
// inflation output at the header's recorded uncompressed length, or
// returns an empty slice if the cache has no valid header or the
// section is empty.
func (c *Cache) ReadGzipData() ([]Item, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.headerValid || c.oldHeader.GzipDataLen == 0 {
		return []Item{}, nil
	}

	compressed := make([]byte, c.oldHeader.GzipDataLen)
	if _, err := c.file.ReadAt(compressed, c.oldHeader.gzipOffset()); err != nil {
		return []Item{}, nil
	}

	gz, err := gzip.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return []Item{}, nil
	}
	defer gz.Close()

	bound := int64(c.oldHeader.GzipUncompressedLen) + 1
	inflated, err := io.ReadAll(io.LimitReader(gz, bound))
	if err != nil {
		return []Item{}, nil
	}
	if int64(len(inflated)) != int64(c.oldHeader.GzipUncompressedLen) {
		return nil, cerr.New("filecache", cerr.CodeCorruptCache, "read_gzip_data",
			"inflated length differs from the recorded uncompressed length", nil).
			WithContext("bound", c.oldHeader.GzipUncompressedLen)
	}

	return decodeItems(inflated, int(c.oldHeader.GzipItemCount))
}

// Write serializes the validated state and opts' raw/gzip items to
// filePath.tmp-<pid> and atomically renames it over filePath. Requires
// a prior Validate call in this Cache's lifetime; otherwise fails with
// CodePrecondViolation.
func (c *Cache) Write(opts WriteOptions) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.st != stateValidated {
		return cerr.New("filecache", cerr.CodePrecondViolation, "write",
			"write called before validate", nil)
	}

	level := 1
	if opts.GzipLevel != nil {
		level = *opts.GzipLevel
		if level < 1 || level > 9 {
			return cerr.New("filecache", cerr.CodeRange, "write",
				"gzipLevel outside 1..=9", nil).WithContext("gzipLevel", level)
		}
	}

	rawBuf, err := encodeItems(opts.Raw)
	if err != nil {
		return err
	}
	gzipItemBuf, err := encodeItems(opts.Gzip)
	if err != nil {
		return err
	}

	gzipCompressed, err := compressGzip(gzipItemBuf, level)
	if err != nil {
		return cerr.Wrap(err, "filecache", "write")
	}

	pathsBuf := pathcodec.Encode(c.validPaths)
	entriesBuf := encodeEntries(c.validEntries)

	header := Header{
		Version:             c.mgr.version,
		EntryCount:          uint32(len(c.validEntries)),
		AggregateDigest:     c.validDigest,
		Fingerprint:         c.mgr.fingerprint,
		PathsLen:            uint32(len(pathsBuf)),
		RawDataLen:          uint32(len(rawBuf)),
		GzipDataLen:         uint32(len(gzipCompressed)),
		GzipUncompressedLen: uint32(len(gzipItemBuf)),
		RawItemCount:        uint16(len(opts.Raw)),
		GzipItemCount:       uint16(len(opts.Gzip)),
	}
	encodedHeader := header.encode()

	full := make([]byte, 0, HeaderSize+len(entriesBuf)+len(pathsBuf)+len(rawBuf)+len(gzipCompressed))
	full = append(full, encodedHeader[:]...)
	full = append(full, entriesBuf...)
	full = append(full, pathsBuf...)
	full = append(full, rawBuf...)
	full = append(full, gzipCompressed...)

	if err := c.writeAtomic(full); err != nil {
		return err
	}

	if c.file != nil {
		c.file.Close()
		c.file = nil
	}
	f, err := os.Open(c.path)
	if err != nil {
		return cerr.Wrap(err, "filecache", "write")
	}
	c.file = f

	c.oldHeader = header
	c.oldEntries = c.validEntries
	c.oldPaths = c.validPaths
	c.headerValid = true

	logger.Info("filecache: wrote cache", "path", c.path, "entries", header.EntryCount)
	return nil
}

// writeAtomic picks a .tmp-<pid> sibling path and atomically renames it
// over c.path, retrying once with a uuid suffix if the candidate temp
// path already exists (a prior crashed writer, or pid reuse — resolved
// Open Question #4 in SPEC_FULL.md).
func (c *Cache) writeAtomic(data []byte) error {
	tmpPath := fmt.Sprintf("%s.tmp-%d", c.path, os.Getpid())
	err := fileops.AtomicWriteNamed(c.path, tmpPath, data, 0o644)
	if err != nil && errors.Is(err, os.ErrExist) {
		tmpPath = fmt.Sprintf("%s-%s", tmpPath, uuid.NewString())
		err = fileops.AtomicWriteNamed(c.path, tmpPath, data, 0o644)
	}
	return err
}

// compressGzip gzips data at the given level using klauspost's
// DEFLATE-compatible implementation (see DESIGN.md for why this
// replaces stdlib compress/gzip here).
func compressGzip(data []byte, level int) ([]byte, error) {
	var buf bytes.Buffer
	w, err := gzip.NewWriterLevel(&buf, level)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(data); err != nil {
		w.Close()
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Close releases the open file handle, if any. Idempotent: calling
// Close on an already-closed or never-opened Cache is a no-op.
func (c *Cache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closeLocked()
	c.st = stateClosed
	return nil
}

func (c *Cache) closeLocked() {
	if c.file != nil {
		c.file.Close()
		c.file = nil
	}
}
