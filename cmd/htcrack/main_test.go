package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lth/htcrack/internal/table"
)

type env struct {
	store, table string
}

func newEnv(t *testing.T) env {
	dir := t.TempDir()
	return env{store: filepath.Join(dir, "users.db"), table: filepath.Join(dir, "table.db")}
}

func (e env) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{
		"--store", e.store,
		"--table", e.table,
		"--charset", "ab",
		"--length", "2",
		"--lengths", "1-3",
		"--workers", "2",
		"--log-level", "error",
	}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestUserCommands(t *testing.T) {
	e := newEnv(t)

	_, err := e.run(t, "add-user", "alice", "ab")
	require.NoError(t, err)
	_, err = e.run(t, "add-user", "bob", "hunter2")
	require.NoError(t, err)

	out, err := e.run(t, "list-users")
	require.NoError(t, err)
	assert.Equal(t, "users:\n - alice\n - bob\n", out)

	out, err = e.run(t, "auth", "alice", "ab")
	require.NoError(t, err)
	assert.Contains(t, out, "Authentication successful!")

	out, err = e.run(t, "auth", "alice", "ba")
	require.NoError(t, err)
	assert.Contains(t, out, "Bad password.")

	out, err = e.run(t, "auth", "mallory", "ab")
	require.NoError(t, err)
	assert.Contains(t, out, "No such user")
}

func TestPromptedPassword(t *testing.T) {
	e := newEnv(t)

	old := readPassword
	readPassword = func(int) ([]byte, error) { return []byte("ab"), nil }
	defer func() { readPassword = old }()

	_, err := e.run(t, "add-user", "alice")
	require.NoError(t, err)

	out, err := e.run(t, "auth", "alice", "ab")
	require.NoError(t, err)
	assert.Contains(t, out, "Authentication successful!")
}

func TestTableRoundTrip(t *testing.T) {
	e := newEnv(t)

	_, err := e.run(t, "add-user", "alice", "ab")
	require.NoError(t, err)

	_, err = e.run(t, "gen-htable")
	require.NoError(t, err)

	out, err := e.run(t, "htable-info", "--fingerprint")
	require.NoError(t, err)
	assert.Contains(t, out, "Entries:    4")
	assert.Contains(t, out, "XXH3-128:")

	out, err = e.run(t, "use-htable")
	require.NoError(t, err)
	assert.Contains(t, out, "Cracked 1 account(s).")

	out, err = e.run(t, "bruteforce")
	require.NoError(t, err)
	assert.Contains(t, out, "Cracked 1 account(s).")
}

func TestUseHtableErrors(t *testing.T) {
	e := newEnv(t)

	_, err := e.run(t, "use-htable")
	require.Error(t, err)
	assert.True(t, errors.Is(err, table.ErrNotFound))
	assert.Contains(t, err.Error(), "no table built yet")

	require.NoError(t, os.WriteFile(e.table, []byte("garbage"), 0o644))
	out, err := e.run(t, "use-htable")
	require.Error(t, err)
	assert.True(t, errors.Is(err, table.ErrCorrupt))
	assert.Contains(t, out, "table failed validation")
}

func TestBadFlags(t *testing.T) {
	e := newEnv(t)
	_, err := e.run(t, "--lengths", "5-1", "bruteforce")
	assert.Error(t, err)
}
