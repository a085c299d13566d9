package table

import (
	"context"
	"fmt"
	"math"
	"os"

	"github.com/lth/htcrack/internal/charset"
	"github.com/lth/htcrack/internal/digest"
	"github.com/lth/htcrack/internal/parallel"
)

// DefaultChunkBytes keeps one mapped window at 2 GiB.
const DefaultChunkBytes int64 = 2 << 30

type BuildOptions struct {
	Charset charset.Charset
	Length  int
	// ChunkBytes bounds the size of the window written at once.
	ChunkBytes int64
	Workers    int
	// Progress, when set, is called before each chunk and once at the end
	// with the number of digests written so far.
	Progress func(done, total uint64)
}

func (o BuildOptions) perChunk() uint64 {
	chunk := o.ChunkBytes
	if chunk <= 0 {
		chunk = DefaultChunkBytes
	}
	n := uint64(chunk / digest.Size)
	if n == 0 {
		n = 1
	}
	return n
}

// Build writes the digest of every candidate of opts.Length over
// opts.Charset to path, in index order.
//
// The file is sized to its final length before any digest is written and is
// then filled one chunk at a time, so peak memory is one chunk regardless of
// the table size. A failed build leaves a full-size file with unwritten
// (zero) slots; nothing in the format marks it incomplete.
func Build(ctx context.Context, path string, opts BuildOptions) error {
	if len(opts.Charset) == 0 {
		return charset.ErrEmpty
	}
	if opts.Length < 0 || uint64(opts.Length) > math.MaxUint32 {
		return fmt.Errorf("table: invalid candidate length %d", opts.Length)
	}

	hdr := Header{Length: uint32(opts.Length), Charset: opts.Charset}
	total, err := hdr.Entries()
	if err != nil {
		return err
	}
	size, err := hdr.FileSize()
	if err != nil {
		return err
	}
	raw, err := hdr.MarshalBinary()
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return stageErr("create", path, err)
	}
	defer f.Close()

	if _, err := f.Write(raw); err != nil {
		return stageErr("header", path, err)
	}
	if err := f.Truncate(size); err != nil {
		return stageErr("resize", path, err)
	}

	perChunk := opts.perChunk()
	for first := uint64(0); first < total; first += perChunk {
		if err := ctx.Err(); err != nil {
			return err
		}
		if opts.Progress != nil {
			opts.Progress(first, total)
		}

		n := min(perChunk, total-first)
		if err := buildChunk(ctx, f, hdr.Size(), first, n, opts); err != nil {
			return stageErr("chunk", path, err)
		}
	}

	if opts.Progress != nil {
		opts.Progress(total, total)
	}
	if err := f.Close(); err != nil {
		return stageErr("close", path, err)
	}
	return nil
}

// buildChunk fills the n slots starting at index first. Each index writes
// only its own slot, so workers need no coordination.
func buildChunk(ctx context.Context, f *os.File, base int64, first, n uint64, opts BuildOptions) error {
	w, err := mapWindow(f, base+int64(first)*digest.Size, int64(n)*digest.Size, true)
	if err != nil {
		return err
	}

	view, err := NewDigestView(w.Bytes())
	if err != nil {
		_ = w.Close()
		return err
	}

	err = parallel.Ranges(ctx, opts.Workers, n, func(lo, hi uint64) error {
		buf := make([]byte, opts.Length)
		for j := lo; j < hi; j++ {
			opts.Charset.Decode(first+j, buf)
			view.Set(int(j), digest.Sum(buf))
		}
		return nil
	})
	if cerr := w.Close(); err == nil {
		err = cerr
	}
	return err
}
