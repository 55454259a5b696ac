// Package fileengine implements the work-stealing parallel file-hash
// engine: given a NUL-separated buffer of paths, it computes the
// XXH3-128 digest of every file's contents and writes the N×16-byte
// result block, spreading the work across a bounded pool of worker
// goroutines sized to the host and to what the rest of the process is
// already doing.
//
// The design follows the teacher's pkg/index build-tag split for
// platform-specific behavior (here, read hints instead of stat
// metadata) generalized to a lock-free work-stealing scheduler in
// place of the teacher's mutex-guarded index manager, per the
// specification's concurrency model.
package fileengine

import (
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/utkarsh5026/filehash/pkg/pathcodec"
	"github.com/utkarsh5026/filehash/pkg/xxh3hash"

	cerr "github.com/utkarsh5026/filehash/pkg/common/err"
)

const (
	// MaxThreads bounds the worker pool regardless of hardware or
	// caller-requested concurrency.
	MaxThreads = 16

	// BufferSize is the size of each worker's reusable read window.
	BufferSize = 256 * 1024

	// maxBatch and minBatch bound the work-stealing batch size.
	maxBatch = 32
	minBatch = 1
)

// activeThreads is a global, best-effort budget shared across every
// concurrent call into this package: it lets a caller that launches
// several hashing operations at once avoid massively oversubscribing
// the host. Relaxed atomics only — exact accounting is not required,
// just backpressure.
var activeThreads atomic.Int64

// pathSpan is a byte range within a NUL-separated path buffer,
// precomputed once so the work-stealing loop gets O(1) indexed access
// to path i without re-scanning the buffer or allocating a []string.
type pathSpan struct{ start, end int }

func collectSpans(buf []byte) []pathSpan {
	n := pathcodec.Count(buf)
	spans := make([]pathSpan, 0, n)
	start := 0
	for i, b := range buf {
		if b != 0 {
			continue
		}
		spans = append(spans, pathSpan{start, i})
		start = i + 1
	}
	if start < len(buf) {
		spans = append(spans, pathSpan{start, len(buf)})
	}
	return spans
}

// threadCount resolves the caller's concurrency hint and the global
// active-thread budget into a final worker count, per spec §4.C: an
// explicit positive hint wins, otherwise hardware parallelism (floored
// at 2) is used; both are capped by MaxThreads, by the number of
// batches the work actually decomposes into, and by what the active
// budget has left (never below 1). The value returned is exactly the
// amount reserved in activeThreads, so the caller's release balances
// the reservation regardless of how small the batch count is.
func threadCount(concurrency, fileCount int) int {
	hw := max(runtime.NumCPU(), 2)
	t := hw
	if concurrency > 0 {
		t = concurrency
	}
	if t > MaxThreads {
		t = MaxThreads
	}

	batch := batchSize(fileCount, t)
	batches := (fileCount + batch - 1) / batch
	t = min(t, batches)

	for {
		active := activeThreads.Load()
		budget := max(1, hw-int(active))
		capped := min(t, budget)
		if activeThreads.CompareAndSwap(active, active+int64(capped)) {
			return capped
		}
	}
}

// batchSize implements clamp(N/(T*4), 1, 32): each worker processes
// roughly four batches before the phase drains, balancing load against
// atomic fetch-add contention on the shared cursor.
func batchSize(fileCount, threads int) int {
	b := fileCount / (threads * 4)
	return min(max(b, minBatch), maxBatch)
}

// Hash computes the N×16-byte digest block for the files named in
// pathBuf (a NUL-separated path list) and returns a freshly allocated
// result. concurrency is a hint; 0 selects hardware parallelism.
func Hash(pathBuf []byte, concurrency int) ([]byte, error) {
	spans := collectSpans(pathBuf)
	out := make([]byte, len(spans)*xxh3hash.Size)
	if err := hashInto(pathBuf, spans, concurrency, out); err != nil {
		return nil, err
	}
	return out, nil
}

// HashInto behaves like Hash but writes into a caller-provided buffer,
// avoiding the allocation. Returns a Range error if out is too small.
func HashInto(pathBuf []byte, concurrency int, out []byte) error {
	spans := collectSpans(pathBuf)
	need := len(spans) * xxh3hash.Size
	if len(out) < need {
		return cerr.New("fileengine", cerr.CodeRange, "hash_into",
			"output buffer too small for per-file digest block", nil).
			WithContext("need", need).
			WithContext("have", len(out))
	}
	return hashInto(pathBuf, spans, concurrency, out)
}

// hashInto runs the work-stealing scheduler described in spec §4.C
// over spans, writing each file's 16-byte digest into its disjoint
// output slot in out.
func hashInto(pathBuf []byte, spans []pathSpan, concurrency int, out []byte) error {
	n := len(spans)
	if n == 0 {
		return nil
	}

	threads := threadCount(concurrency, n)
	defer activeThreads.Add(-int64(threads))

	batch := batchSize(n, threads)
	buffers := newSlab(threads, BufferSize)

	var nextIndex atomic.Int64
	var wg sync.WaitGroup
	wg.Add(threads)

	for w := 0; w < threads; w++ {
		buf := buffers[w]
		go func() {
			defer wg.Done()
			for {
				base := int(nextIndex.Add(int64(batch))) - batch
				if base >= n {
					return
				}
				end := min(base+batch, n)
				for i := base; i < end; i++ {
					span := spans[i]
					path := string(pathBuf[span.start:span.end])
					digest := hashFile(path, buf)
					copy(out[i*xxh3hash.Size:(i+1)*xxh3hash.Size], digest[:])
				}
			}
		}()
	}

	wg.Wait()
	return nil
}
