package task

import (
	"time"

	"github.com/beldeveloper/go-errors-context"
	"github.com/beldeveloper/repo-keeper/model"
)

// Class is the reaction category of a task error.
type Class int

const (
	// ClassNone means the task succeeded.
	ClassNone Class = iota
	// ClassTransient means the task must be retried with backoff.
	ClassTransient
	// ClassDomain means the failure is recorded as an alert and the task terminates successfully.
	ClassDomain
	// ClassNotFound means the target entity is gone and the task terminates silently.
	ClassNotFound
	// ClassFatal means the task is broken and must not be retried.
	ClassFatal
)

const (
	// RetryBackoffInitial is the delay before the first retry of a transient failure.
	RetryBackoffInitial = 600 * time.Second
	// RetryBackoffMax caps the retry delay.
	RetryBackoffMax = 3600 * time.Second
)

// Classify maps an error to its reaction category. It separates what went
// wrong from how to react, so the executor stays free of error-type knowledge.
func Classify(err error) Class {
	switch {
	case err == nil:
		return ClassNone
	case errors.Is(err, model.ErrLockTimeout):
		return ClassTransient
	case errors.Is(err, model.ErrParse), errors.Is(err, model.ErrNoRemote):
		return ClassDomain
	case errors.Is(err, model.ErrNotFound):
		return ClassNotFound
	default:
		return ClassFatal
	}
}

// Backoff returns the retry delay after the given number of failed attempts:
// 600s doubling per attempt, capped at 3600s, never decreasing.
func Backoff(attempts int) time.Duration {
	if attempts < 1 {
		attempts = 1
	}
	if attempts > 3 {
		return RetryBackoffMax
	}
	d := RetryBackoffInitial << (attempts - 1)
	if d > RetryBackoffMax {
		return RetryBackoffMax
	}
	return d
}
