// Package charset maps integer indices to fixed-length candidate strings
// over an ordered alphabet.
//
// Index i decodes as a base-n number with the least significant digit first:
// i mod n selects the first byte, i / n carries into the next position. The
// enumeration order is therefore not alphabetical. For alphabet "ab" and
// length 2 the indices 0..3 decode to "aa", "ba", "ab", "bb".
package charset

import (
	"errors"
	"fmt"
	"math/bits"
	"strings"
	"unicode/utf8"
)

var (
	CharsetLower    = "abcdefghijklmnopqrstuvwxyz"
	CharsetUpper    = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	CharsetDigits   = "0123456789"
	CharsetSpecial  = "!@#$%^&*()_+-=[]{}|;':\",./<>?"
	CharsetAlpha    = CharsetLower + CharsetUpper
	CharsetAlphaNum = CharsetAlpha + CharsetDigits
	CharsetAll      = CharsetAlphaNum + CharsetSpecial
	CharsetDefault  = CharsetLower + CharsetDigits
)

// NotUTF8 is shown in place of candidates that are not valid text.
const NotUTF8 = "<not utf-8>"

var (
	ErrEmpty        = errors.New("charset: empty alphabet")
	ErrOverflow     = errors.New("charset: candidate space overflows uint64")
	ErrNotInCharset = errors.New("charset: byte not in alphabet")
	ErrLength       = errors.New("charset: negative length")
)

// Charset is an ordered alphabet. Duplicates are allowed but make the
// mapping non-injective.
type Charset []byte

func New(s string) (Charset, error) {
	return FromBytes([]byte(s))
}

// FromBytes copies b into a new Charset.
func FromBytes(b []byte) (Charset, error) {
	if len(b) == 0 {
		return nil, ErrEmpty
	}
	cs := make(Charset, len(b))
	copy(cs, b)
	return cs, nil
}

// Resolve turns a named alphabet into its characters. Unknown names are
// returned unchanged so callers can pass a literal alphabet.
func Resolve(name string) string {
	switch strings.ToLower(name) {
	case "", "default":
		return CharsetDefault
	case "lower":
		return CharsetLower
	case "upper":
		return CharsetUpper
	case "digits", "numbers":
		return CharsetDigits
	case "alpha":
		return CharsetAlpha
	case "alnum", "alphanumeric":
		return CharsetAlphaNum
	case "all", "full":
		return CharsetAll
	case "special":
		return CharsetSpecial
	default:
		return name
	}
}

// Space returns len(cs)^length, the number of candidates of that length.
func (cs Charset) Space(length int) (uint64, error) {
	if length < 0 {
		return 0, ErrLength
	}
	base := uint64(len(cs))
	switch {
	case length == 0 || base == 1:
		return 1, nil
	case base == 0:
		return 0, nil
	}
	total := uint64(1)
	for i := 0; i < length; i++ {
		hi, lo := bits.Mul64(total, base)
		if hi != 0 {
			return 0, fmt.Errorf("%w: %d^%d", ErrOverflow, base, length)
		}
		total = lo
	}
	return total, nil
}

// Decode writes the candidate for index i into buf. The length of buf is the
// candidate length; i must be below cs.Space(len(buf)). An empty Charset,
// which New and FromBytes never return, leaves buf untouched.
func (cs Charset) Decode(i uint64, buf []byte) {
	n := uint64(len(cs))
	if n == 0 {
		return
	}
	for p := range buf {
		buf[p] = cs[i%n]
		i /= n
	}
}

// Index is the inverse of Decode.
func (cs Charset) Index(candidate []byte) (uint64, error) {
	n := uint64(len(cs))
	var idx uint64
	for p := len(candidate) - 1; p >= 0; p-- {
		d := cs.position(candidate[p])
		if d < 0 {
			return 0, fmt.Errorf("%w: %q at position %d", ErrNotInCharset, candidate[p], p)
		}
		hi, lo := bits.Mul64(idx, n)
		if hi != 0 {
			return 0, ErrOverflow
		}
		sum, carry := bits.Add64(lo, uint64(d), 0)
		if carry != 0 {
			return 0, ErrOverflow
		}
		idx = sum
	}
	return idx, nil
}

func (cs Charset) position(b byte) int {
	for i, c := range cs {
		if c == b {
			return i
		}
	}
	return -1
}

// String prints the alphabet with non-graphic bytes escaped as \xNN.
func (cs Charset) String() string {
	var sb strings.Builder
	for _, c := range cs {
		if c > ' ' && c < 0x7f {
			sb.WriteByte(c)
		} else {
			fmt.Fprintf(&sb, "\\x%02x", c)
		}
	}
	return sb.String()
}

// EstimateCombinations sums the space of every length in [minLen, maxLen].
func EstimateCombinations(cs Charset, minLen, maxLen int) (uint64, error) {
	var total uint64
	for length := minLen; length <= maxLen; length++ {
		n, err := cs.Space(length)
		if err != nil {
			return 0, err
		}
		sum, carry := bits.Add64(total, n, 0)
		if carry != 0 {
			return 0, fmt.Errorf("%w: lengths %d-%d", ErrOverflow, minLen, maxLen)
		}
		total = sum
	}
	return total, nil
}

// Display returns the candidate as a string, or NotUTF8.
func Display(candidate []byte) string {
	if !utf8.Valid(candidate) {
		return NotUTF8
	}
	return string(candidate)
}
