package charset

import (
	"errors"
	"testing"
)

func mustNew(t testing.TB, s string) Charset {
	t.Helper()
	cs, err := New(s)
	if err != nil {
		t.Fatalf("New(%q): %v", s, err)
	}
	return cs
}

func TestDecodeOrder(t *testing.T) {
	cs := mustNew(t, "ab")

	expected := []string{"aa", "ba", "ab", "bb"}
	buf := make([]byte, 2)
	for i, exp := range expected {
		cs.Decode(uint64(i), buf)
		if string(buf) != exp {
			t.Errorf("Decode(%d) = %q, want %q", i, buf, exp)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		alphabet string
		length   int
	}{
		{"ab", 1},
		{"ab", 5},
		{"abc", 4},
		{"0123456789", 3},
		{CharsetDefault, 3},
	}

	for _, tt := range tests {
		cs := mustNew(t, tt.alphabet)
		space, err := cs.Space(tt.length)
		if err != nil {
			t.Fatalf("Space(%d): %v", tt.length, err)
		}

		seen := make(map[string]bool, space)
		buf := make([]byte, tt.length)
		for i := uint64(0); i < space; i++ {
			cs.Decode(i, buf)
			if seen[string(buf)] {
				t.Fatalf("%q/%d: candidate %q produced twice", tt.alphabet, tt.length, buf)
			}
			seen[string(buf)] = true

			got, err := cs.Index(buf)
			if err != nil {
				t.Fatalf("Index(%q): %v", buf, err)
			}
			if got != i {
				t.Fatalf("Index(Decode(%d)) = %d", i, got)
			}
		}
		if uint64(len(seen)) != space {
			t.Errorf("%q/%d: %d distinct candidates, want %d", tt.alphabet, tt.length, len(seen), space)
		}
	}
}

func TestSpace(t *testing.T) {
	tests := []struct {
		alphabet string
		length   int
		expected uint64
	}{
		{"ab", 0, 1},
		{"ab", 2, 4},
		{"abc", 2, 9},
		{"0123456789", 4, 10000},
		{CharsetDefault, 6, 2176782336},
	}

	for _, tt := range tests {
		got, err := mustNew(t, tt.alphabet).Space(tt.length)
		if err != nil {
			t.Errorf("Space(%q, %d): %v", tt.alphabet, tt.length, err)
			continue
		}
		if got != tt.expected {
			t.Errorf("Space(%q, %d) = %d, want %d", tt.alphabet, tt.length, got, tt.expected)
		}
	}
}

func TestSpaceOverflow(t *testing.T) {
	cs := mustNew(t, CharsetAll)
	if _, err := cs.Space(20); !errors.Is(err, ErrOverflow) {
		t.Errorf("Space(20) error = %v, want ErrOverflow", err)
	}
	if _, err := cs.Space(-1); !errors.Is(err, ErrLength) {
		t.Errorf("Space(-1) error = %v, want ErrLength", err)
	}

	bin := mustNew(t, "01")
	if n, err := bin.Space(63); err != nil || n != 1<<63 {
		t.Errorf("Space(63) = %d, %v", n, err)
	}
	if _, err := bin.Space(64); !errors.Is(err, ErrOverflow) {
		t.Errorf("Space(64) error = %v, want ErrOverflow", err)
	}
}

func TestSpaceDegenerateAlphabets(t *testing.T) {
	one := mustNew(t, "z")
	if n, err := one.Space(1 << 30); err != nil || n != 1 {
		t.Errorf("single byte Space(1<<30) = %d, %v, want 1", n, err)
	}

	var empty Charset
	if n, err := empty.Space(1 << 30); err != nil || n != 0 {
		t.Errorf("empty Space(1<<30) = %d, %v, want 0", n, err)
	}
	if n, err := empty.Space(0); err != nil || n != 1 {
		t.Errorf("empty Space(0) = %d, %v, want 1", n, err)
	}
}

func TestEmpty(t *testing.T) {
	if _, err := New(""); !errors.Is(err, ErrEmpty) {
		t.Errorf("New(\"\") error = %v, want ErrEmpty", err)
	}

	buf := []byte("xy")
	Charset(nil).Decode(5, buf)
	if string(buf) != "xy" {
		t.Errorf("empty Decode changed buf to %q", buf)
	}
}

func TestIndexRejectsForeignByte(t *testing.T) {
	cs := mustNew(t, "ab")
	if _, err := cs.Index([]byte("ac")); !errors.Is(err, ErrNotInCharset) {
		t.Errorf("Index(\"ac\") error = %v, want ErrNotInCharset", err)
	}
}

func TestEstimateCombinations(t *testing.T) {
	tests := []struct {
		alphabet string
		min, max int
		expected uint64
	}{
		{"ab", 1, 1, 2},
		{"ab", 1, 2, 6},
		{"abc", 2, 2, 9},
		{"0123456789", 4, 4, 10000},
		{"ab", 3, 2, 0},
	}

	for _, tt := range tests {
		result, err := EstimateCombinations(mustNew(t, tt.alphabet), tt.min, tt.max)
		if err != nil {
			t.Fatalf("EstimateCombinations: %v", err)
		}
		if result != tt.expected {
			t.Errorf("EstimateCombinations(%q, %d, %d) = %d, want %d", tt.alphabet, tt.min, tt.max, result, tt.expected)
		}
	}
}

func TestResolve(t *testing.T) {
	if Resolve("lower") != CharsetLower {
		t.Error("Resolve(lower) mismatch")
	}
	if Resolve("") != CharsetDefault {
		t.Error("Resolve(\"\") should give the default alphabet")
	}
	if Resolve("xyz") != "xyz" {
		t.Error("Resolve should pass literal alphabets through")
	}
}

func TestDisplayAndString(t *testing.T) {
	if got := Display([]byte("ab")); got != "ab" {
		t.Errorf("Display = %q", got)
	}
	if got := Display([]byte{0xff, 0xfe}); got != NotUTF8 {
		t.Errorf("Display(invalid) = %q, want %q", got, NotUTF8)
	}

	cs, _ := FromBytes([]byte{'a', 0x00, ' '})
	if got := cs.String(); got != `a\x00\x20` {
		t.Errorf("String() = %q", got)
	}
}

func BenchmarkDecode(b *testing.B) {
	cs := mustNew(b, CharsetAlphaNum)
	buf := make([]byte, 8)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		cs.Decode(uint64(i), buf)
	}
}
