package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrSourceMissing indicates the source directory does not exist.
	ErrSourceMissing = errors.New("source directory does not exist")

	// ErrNothingToOrganize indicates the source directory has no files to move.
	ErrNothingToOrganize = errors.New("nothing to organize")

	// ErrWatchInProgress indicates a watcher is already running.
	ErrWatchInProgress = errors.New("watch in progress")

	// ErrBatchUndone indicates a batch has already been reversed.
	// A batch can be undone at most once.
	ErrBatchUndone = errors.New("batch already undone")
)
