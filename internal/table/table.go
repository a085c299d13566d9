// Package table builds and reads precomputed digest tables.
//
// A table file is a Header followed by one 16-byte MD5 digest per candidate,
// in index order: the digest of candidate i sits at Header.Size() + i*16.
// The file length is fixed by the header, and any other length means the
// table is corrupt.
package table

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/zeebo/xxh3"

	"github.com/lth/htcrack/internal/digest"
)

// Table is an opened, validated table file.
type Table struct {
	Path    string
	Header  Header
	Entries uint64

	f *os.File
}

// Open reads and validates the table at path. A missing file wraps
// ErrNotFound; a bad header or a length that disagrees with the header wraps
// ErrCorrupt.
func Open(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, stageErr("open", path, fmt.Errorf("%w: %w", ErrNotFound, err))
		}
		return nil, stageErr("open", path, err)
	}

	t, err := validate(f, path)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	return t, nil
}

func validate(f *os.File, path string) (*Table, error) {
	hdr, err := ReadHeader(f)
	if err != nil {
		return nil, stageErr("header", path, err)
	}
	entries, err := hdr.Entries()
	if err != nil {
		return nil, stageErr("header", path, fmt.Errorf("%w: %w", ErrCorrupt, err))
	}
	want, err := hdr.FileSize()
	if err != nil {
		return nil, stageErr("header", path, fmt.Errorf("%w: %w", ErrCorrupt, err))
	}

	st, err := f.Stat()
	if err != nil {
		return nil, stageErr("size", path, err)
	}
	if st.Size() != want {
		return nil, stageErr("size", path,
			fmt.Errorf("%w: file is %d bytes, header implies %d", ErrCorrupt, st.Size(), want))
	}

	return &Table{Path: path, Header: hdr, Entries: entries, f: f}, nil
}

func (t *Table) Close() error {
	if t.f == nil {
		return nil
	}
	err := t.f.Close()
	t.f = nil
	return err
}

// Windows walks the digest array in read-only windows of at most chunkBytes
// bytes, calling fn with the index of the first digest in each window.
// Windows are released before the next one is mapped.
func (t *Table) Windows(ctx context.Context, chunkBytes int64, fn func(first uint64, v DigestView) error) error {
	perChunk := BuildOptions{ChunkBytes: chunkBytes}.perChunk()
	base := t.Header.Size()

	for first := uint64(0); first < t.Entries; first += perChunk {
		if err := ctx.Err(); err != nil {
			return err
		}

		n := min(perChunk, t.Entries-first)
		w, err := mapWindow(t.f, base+int64(first)*digest.Size, int64(n)*digest.Size, false)
		if err != nil {
			return stageErr("map", t.Path, err)
		}
		view, err := NewDigestView(w.Bytes())
		if err == nil {
			err = fn(first, view)
		}
		if cerr := w.Close(); err == nil && cerr != nil {
			err = stageErr("unmap", t.Path, cerr)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// Fingerprint returns the hex xxh3-128 hash of the whole file at path.
// Two builds with the same inputs have the same fingerprint.
func Fingerprint(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := xxh3.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	sum := h.Sum128().Bytes()
	return hex.EncodeToString(sum[:]), nil
}
