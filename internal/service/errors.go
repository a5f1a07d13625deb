package service

import "errors"

var (
	// ErrUnknownTargetType is returned when a serialized target carries a
	// query-type or custom tag no constructor is registered for. Raised at
	// target deserialization, before any network activity: it indicates a
	// configuration bug, not a runtime sync failure.
	ErrUnknownTargetType = errors.New("unknown sync target type")

	// ErrSyncNotFound is returned when a sync id addresses no persisted
	// sync state.
	ErrSyncNotFound = errors.New("sync not found")

	// ErrSyncStillRunning is returned by ReSync when the previous run of
	// the same sync has not reached a terminal status yet.
	ErrSyncStillRunning = errors.New("sync still running")
)
