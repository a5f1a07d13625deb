package store

import "errors"

var (
	// ErrSoupNotFound is returned for operations on an unregistered soup.
	ErrSoupNotFound = errors.New("soup not found")

	// ErrEntryNotFound is returned when a soup entry id addresses no row.
	ErrEntryNotFound = errors.New("soup entry not found")

	// ErrPathNotIndexed is returned when a query or upsert references a
	// path the soup was not registered with.
	ErrPathNotIndexed = errors.New("path not indexed in soup")
)
