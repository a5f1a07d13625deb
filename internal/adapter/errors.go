package adapter

import "errors"

var (
	// ErrUnauthorized maps a 401 response. Token refresh is the
	// authentication layer's job; the engine only surfaces the condition.
	ErrUnauthorized = errors.New("client unauthorized")

	// ErrNotFound maps a 404 response. Sync-up treats it as "the remote
	// record is already gone" and reconciles the local row instead of
	// failing the record.
	ErrNotFound = errors.New("remote record not found")
)
