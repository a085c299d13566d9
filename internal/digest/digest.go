// Package digest holds the fixed-size MD5 digest used for credentials and
// table entries, and a lookup index from digest to identities.
package digest

import (
	"crypto/md5"
	"encoding/hex"
	"sort"
)

// Size is the length of a Digest in bytes.
const Size = md5.Size

type Digest [Size]byte

func Sum(b []byte) Digest {
	return md5.Sum(b)
}

func SumString(s string) Digest {
	return md5.Sum([]byte(s))
}

func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// Index maps a digest to every identity that carries it. Identities sharing
// a password share a digest, so the value is a list.
type Index map[Digest][]string

// NewIndex builds an Index from identity → digest records. Identities under
// one digest are sorted so lookups are deterministic.
func NewIndex(records map[string]Digest) Index {
	idx := make(Index, len(records))
	for user, d := range records {
		idx[d] = append(idx[d], user)
	}
	for _, users := range idx {
		sort.Strings(users)
	}
	return idx
}

// Lookup returns the identities whose digest equals d.
func (idx Index) Lookup(d Digest) []string {
	return idx[d]
}
