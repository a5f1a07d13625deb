// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Viktor Martynenko

// Package adapter provides the transport layer between the sync engine and
// the remote record server.
//
// The primary abstraction is [RestClient], which decouples sync targets and
// the sync manager from the underlying protocol. The package ships an
// HTTP/REST implementation ([NewHTTPRestClient]) built on resty.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic
// error handling (e.g. [ErrNotFound] for 404, [ErrUnauthorized] for 401).
package adapter

import (
	"context"

	"github.com/vmartynenko/go-soupsync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/rest_client_mock.go -package=mock

// RestClient defines transport-agnostic communication with the remote record
// server. Implementations are responsible for serialisation, bearer-token
// header management, and mapping transport-level errors to the sentinel
// values defined in this package. Token refresh and retry-on-401 live below
// this interface and are transparent to the engine.
type RestClient interface {
	// SetToken stores the bearer token attached to all subsequent
	// requests.
	SetToken(token string)

	// Token returns the bearer token currently stored in the client, or an
	// empty string if none has been set yet.
	Token() string

	// Query executes a structured query and returns the first result page,
	// including the server-reported total size and the continuation URL
	// when more rows exist.
	Query(ctx context.Context, query string) (models.QueryResponse, error)

	// QueryMore follows a continuation URL handed out by a previous Query
	// or QueryMore response and returns the next page.
	QueryMore(ctx context.Context, nextRecordsURL string) (models.QueryResponse, error)

	// Search executes a full-text-search expression. Search results arrive
	// in a single bounded page.
	Search(ctx context.Context, search string) ([]models.Record, error)

	// RecentItems fetches the ids of recently-used records for an object
	// type from the object-metadata endpoint.
	RecentItems(ctx context.Context, objectType string) ([]string, error)

	// Create creates a record of the given object type on the server and
	// returns the server-assigned id.
	Create(ctx context.Context, objectType string, fields models.Record) (string, error)

	// Update applies a partial field update to the record addressed by
	// objectType and id. Returns [ErrNotFound] (wrapped) on 404.
	Update(ctx context.Context, objectType, id string, fields models.Record) error

	// Delete removes the record addressed by objectType and id. Returns
	// [ErrNotFound] (wrapped) on 404.
	Delete(ctx context.Context, objectType, id string) error
}
