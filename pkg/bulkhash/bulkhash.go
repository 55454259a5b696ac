// Package bulkhash is the façade over pkg/fileengine and pkg/xxh3hash:
// given a list of files (or a pre-encoded path buffer), it hashes all
// of them in parallel and folds the per-file digests into a single
// seeded aggregate, in whichever of three output layouts the caller
// asks for.
//
// The options-record shape follows the teacher's index.Manager
// construction pattern (a small struct of recognized, mostly-optional
// fields with documented defaults) generalized from "how to open an
// index" to "how to hash a file set."
package bulkhash

import (
	"github.com/utkarsh5026/filehash/pkg/pathcodec"
	"github.com/utkarsh5026/filehash/pkg/xxh3hash"

	cerr "github.com/utkarsh5026/filehash/pkg/common/err"
	"github.com/utkarsh5026/filehash/pkg/fileengine"
)

// OutputMode selects the layout Bulk returns.
type OutputMode string

const (
	// OutputDigest returns only the aggregate digest (16 bytes). Default.
	OutputDigest OutputMode = "digest"
	// OutputFiles returns only the concatenated per-file digests (16N bytes).
	OutputFiles OutputMode = "files"
	// OutputAll returns the aggregate followed by the per-file digests
	// (16 + 16N bytes).
	OutputAll OutputMode = "all"
)

// Options configures a Bulk call. Exactly one of Files or PathBuffer
// should be set; PathBuffer, if non-nil, is used as-is and takes
// precedence (this is the pre-encoded-buffer path callers use to avoid
// re-encoding a path list they already hold in NUL-separated form).
type Options struct {
	Files      []string
	PathBuffer []byte

	OutputMode  OutputMode
	Concurrency int

	SeedLow  uint32
	SeedHigh uint32

	// OutputBuffer, if non-nil, receives the result at OutputOffset
	// instead of a freshly allocated slice being returned.
	OutputBuffer []byte
	OutputOffset int
}

// Bulk hashes every file named by opts and returns the digest block in
// the requested OutputMode. When opts.OutputBuffer is supplied, the
// result is copied into it at opts.OutputOffset and the same slice is
// returned; otherwise the freshly allocated result is returned and
// owned by the caller.
func Bulk(opts Options) ([]byte, error) {
	pathBuf := opts.PathBuffer
	if pathBuf == nil {
		pathBuf = pathcodec.Encode(opts.Files)
	}

	perFile, err := fileengine.Hash(pathBuf, opts.Concurrency)
	if err != nil {
		return nil, err
	}

	aggregate := xxh3hash.Hash(perFile, opts.SeedLow, opts.SeedHigh)

	mode := opts.OutputMode
	if mode == "" {
		mode = OutputDigest
	}

	var result []byte
	switch mode {
	case OutputDigest:
		result = aggregate[:]
	case OutputFiles:
		result = perFile
	case OutputAll:
		result = make([]byte, xxh3hash.Size+len(perFile))
		copy(result, aggregate[:])
		copy(result[xxh3hash.Size:], perFile)
	default:
		return nil, cerr.New("bulkhash", cerr.CodeInvalidInput, "bulk",
			"unrecognized output mode", nil).WithContext("outputMode", string(mode))
	}

	if opts.OutputBuffer == nil {
		return result, nil
	}

	need := opts.OutputOffset + len(result)
	if need > len(opts.OutputBuffer) {
		return nil, cerr.New("bulkhash", cerr.CodeRange, "bulk",
			"output buffer too small for requested layout", nil).
			WithContext("need", need).
			WithContext("have", len(opts.OutputBuffer))
	}
	copy(opts.OutputBuffer[opts.OutputOffset:], result)
	return opts.OutputBuffer, nil
}
