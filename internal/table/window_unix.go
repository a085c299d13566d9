//go:build unix

package table

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// window is a mapping of one byte range of a table file.
type window struct {
	data     []byte // whole mapping, starting on a page boundary
	buf      []byte // the requested range inside data
	writable bool
}

// mapWindow maps [off, off+length) of f. mmap offsets must be page aligned,
// so the mapping starts at the enclosing page and buf is re-sliced past it.
func mapWindow(f *os.File, off, length int64, writable bool) (*window, error) {
	if length == 0 {
		return &window{buf: []byte{}}, nil
	}

	page := int64(os.Getpagesize())
	aligned := off - off%page
	delta := off - aligned
	if length+delta > int64(^uint(0)>>1) {
		return nil, fmt.Errorf("window of %d bytes too large to map", length)
	}

	prot := unix.PROT_READ
	if writable {
		prot |= unix.PROT_WRITE
	}
	data, err := unix.Mmap(int(f.Fd()), aligned, int(length+delta), prot, unix.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("mmap failed: %w", err)
	}

	return &window{
		data:     data,
		buf:      data[delta : delta+length],
		writable: writable,
	}, nil
}

func (w *window) Bytes() []byte {
	return w.buf
}

// Close flushes a writable window and unmaps it.
func (w *window) Close() error {
	if w.data == nil {
		return nil
	}
	var err error
	if w.writable {
		err = unix.Msync(w.data, unix.MS_SYNC)
	}
	if uerr := unix.Munmap(w.data); err == nil {
		err = uerr
	}
	w.data, w.buf = nil, nil
	return err
}
