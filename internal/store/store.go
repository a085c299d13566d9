// Package store persists the credential store: a mapping from user name to
// the MD5 digest of that user's password.
//
// On disk the store is a CBOR record set, in core deterministic encoding,
// inside a snappy framed stream. A missing file is an empty store. Read-modify-write cycles go
// through Update, which holds an advisory lock on a sibling ".lock" file for
// the whole cycle so concurrent invocations do not lose each other's writes.
package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/fxamacker/cbor/v2"
	"github.com/golang/snappy"

	"github.com/lth/htcrack/internal/digest"
)

var ErrMalformed = errors.New("store: malformed credential store")

// encMode sorts map keys so equal stores encode to equal bytes.
var encMode = mustEncMode()

func mustEncMode() cbor.EncMode {
	em, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	return em
}

type AuthResult int

const (
	AuthNoSuchUser AuthResult = iota
	AuthBadPassword
	AuthOK
)

func (r AuthResult) String() string {
	switch r {
	case AuthOK:
		return "ok"
	case AuthBadPassword:
		return "bad password"
	default:
		return "no such user"
	}
}

type Store struct {
	Records map[string]digest.Digest `cbor:"records"`
}

func New() *Store {
	return &Store{Records: make(map[string]digest.Digest)}
}

// Load reads the store at path. A missing file yields an empty store.
func Load(path string) (*Store, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	defer f.Close()

	s := New()
	if err := cbor.NewDecoder(snappy.NewReader(f)).Decode(s); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, path, err)
	}
	if s.Records == nil {
		s.Records = make(map[string]digest.Digest)
	}
	return s, nil
}

// Save writes the store to a temporary file next to path and renames it
// into place.
func (s *Store) Save(path string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create store: %w", err)
	}
	defer os.Remove(tmp.Name())

	w := snappy.NewBufferedWriter(tmp)
	if err := encMode.NewEncoder(w).Encode(s); err != nil {
		tmp.Close()
		return fmt.Errorf("encode store: %w", err)
	}
	if err := w.Close(); err != nil {
		tmp.Close()
		return fmt.Errorf("flush store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close store: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace store: %w", err)
	}
	return nil
}

// Update loads the store under an exclusive lock, applies fn and saves the
// result. Nothing is written when fn fails.
func Update(path string, fn func(*Store) error) error {
	unlock, err := lock(path, true)
	if err != nil {
		return err
	}
	defer unlock()

	s, err := Load(path)
	if err != nil {
		return err
	}
	if err := fn(s); err != nil {
		return err
	}
	return s.Save(path)
}

// Snapshot returns a point-in-time copy of the records, read under a shared
// lock.
func Snapshot(path string) (map[string]digest.Digest, error) {
	unlock, err := lock(path, false)
	if err != nil {
		return nil, err
	}
	defer unlock()

	s, err := Load(path)
	if err != nil {
		return nil, err
	}
	return s.Clone(), nil
}

func (s *Store) Add(user, password string) {
	s.Records[user] = digest.SumString(password)
}

// Users returns the user names in sorted order.
func (s *Store) Users() []string {
	users := make([]string, 0, len(s.Records))
	for u := range s.Records {
		users = append(users, u)
	}
	sort.Strings(users)
	return users
}

func (s *Store) Authenticate(user, password string) AuthResult {
	stored, ok := s.Records[user]
	if !ok {
		return AuthNoSuchUser
	}
	if stored != digest.SumString(password) {
		return AuthBadPassword
	}
	return AuthOK
}

func (s *Store) Clone() map[string]digest.Digest {
	out := make(map[string]digest.Digest, len(s.Records))
	for u, d := range s.Records {
		out[u] = d
	}
	return out
}
