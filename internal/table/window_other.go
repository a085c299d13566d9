//go:build !unix

package table

import (
	"fmt"
	"io"
	"os"
)

// window holds one byte range of a table file in memory where mmap is not
// available. Writable windows are written back on Close.
type window struct {
	f        *os.File
	off      int64
	buf      []byte
	writable bool
}

func mapWindow(f *os.File, off, length int64, writable bool) (*window, error) {
	if length > int64(^uint(0)>>1) {
		return nil, fmt.Errorf("window of %d bytes too large to load", length)
	}
	buf := make([]byte, length)
	if !writable {
		if _, err := f.ReadAt(buf, off); err != nil && err != io.EOF {
			return nil, err
		}
	}
	return &window{f: f, off: off, buf: buf, writable: writable}, nil
}

func (w *window) Bytes() []byte {
	return w.buf
}

func (w *window) Close() error {
	if w.buf == nil {
		return nil
	}
	var err error
	if w.writable {
		_, err = w.f.WriteAt(w.buf, w.off)
	}
	w.buf = nil
	return err
}
