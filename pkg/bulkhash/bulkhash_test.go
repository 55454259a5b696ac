package bulkhash

import (
	"bytes"
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"

	"github.com/utkarsh5026/filehash/pkg/xxh3hash"
)

func setupFixtures(t *testing.T) (dir, aPath, bPath string) {
	t.Helper()
	dir = t.TempDir()
	aPath = filepath.Join(dir, "a.txt")
	bPath = filepath.Join(dir, "b.txt")
	if err := os.WriteFile(aPath, []byte("hello world\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(bPath, []byte("goodbye world\n"), 0644); err != nil {
		t.Fatal(err)
	}
	return
}

func TestBulk_AggregateDigestKnownValues(t *testing.T) {
	_, a, b := setupFixtures(t)

	got, err := Bulk(Options{Files: []string{a, b}})
	if err != nil {
		t.Fatalf("Bulk: %v", err)
	}
	want, _ := hex.DecodeString("14cb7b529dbb3358999291d5315f9ec8")
	if !bytes.Equal(got, want) {
		t.Errorf("bulk([a,b]).digest = %x, want %x", got, want)
	}
}

func TestBulk_OrderMatters(t *testing.T) {
	_, a, b := setupFixtures(t)

	got, err := Bulk(Options{Files: []string{b, a}})
	if err != nil {
		t.Fatalf("Bulk: %v", err)
	}
	want, _ := hex.DecodeString("b96712ebc4252558f427015fab836b59")
	if !bytes.Equal(got, want) {
		t.Errorf("bulk([b,a]).digest = %x, want %x", got, want)
	}
}

func TestBulk_AllModeWithMissingFile(t *testing.T) {
	_, a, _ := setupFixtures(t)

	got, err := Bulk(Options{Files: []string{a, "/no/such"}, OutputMode: OutputAll})
	if err != nil {
		t.Fatalf("Bulk: %v", err)
	}

	wantAggregate, _ := hex.DecodeString("3bd4a3acde4c43af41d10b55b7dcc098")
	wantFileA, _ := hex.DecodeString("eefac9d87100cd1336b2e733a5484425")
	wantZero := make([]byte, xxh3hash.Size)

	if !bytes.Equal(got[:xxh3hash.Size], wantAggregate) {
		t.Errorf("aggregate = %x, want %x", got[:xxh3hash.Size], wantAggregate)
	}
	if !bytes.Equal(got[xxh3hash.Size:2*xxh3hash.Size], wantFileA) {
		t.Errorf("file[0] = %x, want %x", got[xxh3hash.Size:2*xxh3hash.Size], wantFileA)
	}
	if !bytes.Equal(got[2*xxh3hash.Size:], wantZero) {
		t.Errorf("file[1] = %x, want zero digest", got[2*xxh3hash.Size:])
	}
}

func TestBulk_EmptyFileListDigestMode(t *testing.T) {
	got, err := Bulk(Options{Files: nil, OutputMode: OutputDigest})
	if err != nil {
		t.Fatalf("Bulk: %v", err)
	}
	want := xxh3hash.Hash(nil, 0, 0)
	if !bytes.Equal(got, want[:]) {
		t.Errorf("bulk([]).digest = %x, want %x (XXH3-128 of empty string)", got, want)
	}
}

func TestBulk_EmptyFileListFilesMode(t *testing.T) {
	got, err := Bulk(Options{Files: nil, OutputMode: OutputFiles})
	if err != nil {
		t.Fatalf("Bulk: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("bulk([]).files = %x, want empty", got)
	}
}

func TestBulk_EmptyFileListAllModeDegeneratesToDigest(t *testing.T) {
	got, err := Bulk(Options{Files: nil, OutputMode: OutputAll})
	if err != nil {
		t.Fatalf("Bulk: %v", err)
	}
	want := xxh3hash.Hash(nil, 0, 0)
	if !bytes.Equal(got, want[:]) {
		t.Errorf("bulk([]).all = %x, want %x (just the aggregate)", got, want)
	}
}

func TestBulk_WritesIntoCallerBuffer(t *testing.T) {
	_, a, b := setupFixtures(t)

	buf := make([]byte, 4+xxh3hash.Size)
	got, err := Bulk(Options{
		Files:        []string{a, b},
		OutputBuffer: buf,
		OutputOffset: 4,
	})
	if err != nil {
		t.Fatalf("Bulk: %v", err)
	}
	if &got[0] != &buf[0] {
		t.Error("Bulk did not return the caller-supplied buffer")
	}

	want, _ := hex.DecodeString("14cb7b529dbb3358999291d5315f9ec8")
	if !bytes.Equal(buf[4:], want) {
		t.Errorf("buffer[4:] = %x, want %x", buf[4:], want)
	}
}

func TestBulk_OutputBufferTooSmall(t *testing.T) {
	_, a, b := setupFixtures(t)

	buf := make([]byte, 4)
	_, err := Bulk(Options{Files: []string{a, b}, OutputBuffer: buf})
	if err == nil {
		t.Fatal("expected Range error for undersized output buffer")
	}
}

func TestUpdateFilesBulk_FeedsHasherState(t *testing.T) {
	_, a, b := setupFixtures(t)

	h1 := xxh3hash.New(0, 0)
	if err := UpdateFilesBulk(h1, []string{a, b}, nil, 0); err != nil {
		t.Fatalf("UpdateFilesBulk: %v", err)
	}

	perFile, err := UpdateFilesBulkNew(xxh3hash.New(0, 0), []string{a, b}, nil, 0)
	if err != nil {
		t.Fatalf("UpdateFilesBulkNew: %v", err)
	}
	h2 := xxh3hash.New(0, 0)
	if err := h2.Update(perFile, 0, len(perFile)); err != nil {
		t.Fatalf("update: %v", err)
	}

	if h1.Digest() != h2.Digest() {
		t.Error("UpdateFilesBulk and UpdateFilesBulkNew produced different hasher states")
	}
}

func TestUpdateFilesBulkInto_MatchesNew(t *testing.T) {
	_, a, b := setupFixtures(t)

	wantBuf, err := UpdateFilesBulkNew(xxh3hash.New(7, 3), []string{a, b}, nil, 0)
	if err != nil {
		t.Fatalf("UpdateFilesBulkNew: %v", err)
	}

	out := make([]byte, len(wantBuf)+2)
	if err := UpdateFilesBulkInto(xxh3hash.New(7, 3), []string{a, b}, nil, 0, out, 2); err != nil {
		t.Fatalf("UpdateFilesBulkInto: %v", err)
	}

	if !bytes.Equal(out[2:], wantBuf) {
		t.Errorf("UpdateFilesBulkInto wrote %x, want %x", out[2:], wantBuf)
	}
}
