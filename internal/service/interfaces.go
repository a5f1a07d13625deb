// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Viktor Martynenko

// Package service implements the synchronization engine: sync-down targets
// that describe what to fetch and how to page through it, the sync-up target
// that pushes dirty local records, and the sync manager that orchestrates
// both against the local smartstore.
package service

import (
	"context"

	"github.com/vmartynenko/go-soupsync/internal/store"
	"github.com/vmartynenko/go-soupsync/models"
)

// Page is one ordered batch of raw server records. TotalSize is the
// server-reported count for the whole fetch, read from the first page.
type Page struct {
	Records   []models.Record
	TotalSize int
}

// SyncDownTarget describes what a sync-down fetches and how it pages
// through the result. Implementations are stateful across one fetch cycle:
// StartFetch begins it, ContinueFetch advances it.
type SyncDownTarget interface {
	// QueryType returns the serialization tag of the target variant.
	QueryType() string

	// StartFetch runs the first round-trip. maxTimeStamp is the high-water
	// mark of the previous run (unix ms, zero on the first run); variants
	// that support incremental fetching restrict themselves to newer
	// records, the rest ignore it.
	StartFetch(ctx context.Context, maxTimeStamp int64) (*Page, error)

	// ContinueFetch returns the next page, or (nil, nil) when the previous
	// page was the last one.
	ContinueFetch(ctx context.Context) (*Page, error)
}

// SyncUpTarget describes how a single dirty local record is pushed to the
// server and how dirty records are discovered. The engine ships one REST
// implementation; the type is an extension point for servers with other
// write surfaces.
type SyncUpTarget interface {
	// CreateOnServer creates the record remotely and returns the
	// server-assigned id.
	CreateOnServer(ctx context.Context, objectType string, fields models.Record) (string, error)

	// UpdateOnServer applies a partial update to the remote record.
	UpdateOnServer(ctx context.Context, objectType, id string, fields models.Record) error

	// DeleteOnServer removes the remote record.
	DeleteOnServer(ctx context.Context, objectType, id string) error

	// IDsOfRecordsToSyncUp returns the soup entry ids of records whose
	// local flag is set, bounded by the engine's sync-up page size.
	IDsOfRecordsToSyncUp(ctx context.Context, st *store.Store, soupName string) ([]int64, error)
}

// Callback observes sync state transitions. It is invoked synchronously
// from the sync loop on every status or progress change and must stay cheap;
// marshal to another goroutine before doing real work.
type Callback func(state models.SyncState)
