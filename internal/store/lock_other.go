//go:build !unix

package store

// lock is a no-op where flock is unavailable; callers must not run
// concurrent mutations there.
func lock(string, bool) (func() error, error) {
	return func() error { return nil }, nil
}
