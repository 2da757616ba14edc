package repository

import "errors"

var (
	// ErrRecordNotFound is returned when an id resolves to nothing.
	ErrRecordNotFound = errors.New("record not found")

	// ErrOrderNotFound is the order-specific variant surfaced to customers.
	ErrOrderNotFound = errors.New("order not found")

	// ErrStaleStatus is returned by compare-and-set status writes when a
	// concurrent admin session changed the record after it was read.
	ErrStaleStatus = errors.New("status changed since it was read")

	// ErrWatchUnsupported is returned by backends without live push;
	// callers fall back to periodic reloads.
	ErrWatchUnsupported = errors.New("backend does not support live updates")
)
