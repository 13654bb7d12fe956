package model

import "errors"

var (
	// ErrNotFound represents the error for the cases when some entity is not found.
	ErrNotFound = errors.New("not found")
	// ErrBadInput represents the error for the cases when the user input is invalid.
	ErrBadInput = errors.New("bad input")
	// ErrLockTimeout represents the error for the case when the repository lock was not acquired in time.
	ErrLockTimeout = errors.New("lock acquisition timed out")
	// ErrParse represents the error for the case when the translation files are malformed.
	ErrParse = errors.New("translation files cannot be parsed")
	// ErrNoRemote represents the error for the case when the component has no upstream repository.
	ErrNoRemote = errors.New("component has no remote")
	// ErrUnknownTaskKind represents the error for the case when a task carries an unsupported kind.
	ErrUnknownTaskKind = errors.New("unknown task kind")
)
