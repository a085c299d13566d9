package table

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound means no table exists at the given path yet.
	ErrNotFound = errors.New("table not found")
	// ErrCorrupt covers unreadable headers and size mismatches.
	ErrCorrupt = errors.New("corrupt table")
)

// StageError records which step of a build or scan failed.
type StageError struct {
	Stage string
	Path  string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("table %s: %s: %v", e.Path, e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

func stageErr(stage, path string, err error) error {
	return &StageError{Stage: stage, Path: path, Err: err}
}
