package table

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/lth/htcrack/internal/charset"
	"github.com/lth/htcrack/internal/digest"
)

// Header layout, little-endian:
//
//	u32 candidate length
//	u64 alphabet length
//	alphabet bytes
const headerFixedSize = 4 + 8

// maxAlphabet bounds the alphabet length on both sides of the codec so a
// corrupt header cannot request an arbitrary allocation.
const maxAlphabet = 1 << 16

var ErrAlphabetTooLong = fmt.Errorf("table: alphabet longer than %d bytes", maxAlphabet)

type Header struct {
	Length  uint32
	Charset charset.Charset
}

// Size is the encoded size of the header, which is also the file offset of
// the first digest.
func (h Header) Size() int64 {
	return headerFixedSize + int64(len(h.Charset))
}

// Entries returns the number of digests a table with this header holds.
func (h Header) Entries() (uint64, error) {
	return h.Charset.Space(int(h.Length))
}

// FileSize returns the exact byte length of a complete table.
func (h Header) FileSize() (int64, error) {
	n, err := h.Entries()
	if err != nil {
		return 0, err
	}
	if n > uint64(math.MaxInt64-h.Size())/digest.Size {
		return 0, fmt.Errorf("%w: %d entries do not fit a file", charset.ErrOverflow, n)
	}
	return h.Size() + int64(n)*digest.Size, nil
}

func (h Header) MarshalBinary() ([]byte, error) {
	if len(h.Charset) == 0 {
		return nil, charset.ErrEmpty
	}
	if len(h.Charset) > maxAlphabet {
		return nil, fmt.Errorf("%w: %d", ErrAlphabetTooLong, len(h.Charset))
	}
	out := make([]byte, h.Size())
	binary.LittleEndian.PutUint32(out[0:4], h.Length)
	binary.LittleEndian.PutUint64(out[4:12], uint64(len(h.Charset)))
	copy(out[headerFixedSize:], h.Charset)
	return out, nil
}

// ReadHeader decodes a header from r. Every failure wraps ErrCorrupt.
func ReadHeader(r io.Reader) (Header, error) {
	var fixed [headerFixedSize]byte
	if _, err := io.ReadFull(r, fixed[:]); err != nil {
		return Header{}, fmt.Errorf("%w: short header: %v", ErrCorrupt, err)
	}

	length := binary.LittleEndian.Uint32(fixed[0:4])
	alen := binary.LittleEndian.Uint64(fixed[4:12])
	if alen == 0 || alen > maxAlphabet {
		return Header{}, fmt.Errorf("%w: alphabet length %d", ErrCorrupt, alen)
	}

	alphabet := make([]byte, alen)
	if _, err := io.ReadFull(r, alphabet); err != nil {
		return Header{}, fmt.Errorf("%w: short alphabet: %v", ErrCorrupt, err)
	}

	return Header{Length: length, Charset: charset.Charset(alphabet)}, nil
}
