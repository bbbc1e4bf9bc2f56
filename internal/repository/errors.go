package repository

import "errors"

var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrIllegalTransition is returned when a status update would move a
	// notification backwards in its lifecycle. The dispatcher treats it
	// as "already handled elsewhere", never as a failure to retry.
	ErrIllegalTransition = errors.New("illegal status transition")
)
