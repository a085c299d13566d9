package table

import (
	"fmt"

	"github.com/lth/htcrack/internal/digest"
)

// DigestView is a bounds-checked array of digests over a byte region.
type DigestView struct {
	b []byte
}

func NewDigestView(b []byte) (DigestView, error) {
	if len(b)%digest.Size != 0 {
		return DigestView{}, fmt.Errorf("digest view: %d bytes is not a multiple of %d", len(b), digest.Size)
	}
	return DigestView{b: b}, nil
}

func (v DigestView) Len() int {
	return len(v.b) / digest.Size
}

func (v DigestView) At(i int) digest.Digest {
	var d digest.Digest
	copy(d[:], v.slot(i))
	return d
}

func (v DigestView) Set(i int, d digest.Digest) {
	copy(v.slot(i), d[:])
}

func (v DigestView) slot(i int) []byte {
	off := i * digest.Size
	return v.b[off : off+digest.Size : off+digest.Size]
}
