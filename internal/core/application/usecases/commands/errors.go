package commands

import "errors"

var (
	// ErrJobNotFound is returned when the queued id has no row. Nothing is written.
	ErrJobNotFound = errors.New("job not found")

	// ErrJobNotPending is returned when a job is delivered again after it
	// already left PENDING. Nothing is written so status never moves backward.
	ErrJobNotPending = errors.New("job is not pending")

	// ErrPersistenceFailed wraps every error raised by the job store.
	ErrPersistenceFailed = errors.New("job store failure")
)
