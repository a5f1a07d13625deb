// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Viktor Martynenko

package models

// QueryResponse is the wire shape of a structured-query result page.
type QueryResponse struct {
	TotalSize int  `json:"totalSize"`
	Done      bool `json:"done"`
	// NextRecordsURL is the opaque continuation the server hands out when
	// more rows exist beyond the page size. Empty on the final page.
	NextRecordsURL string   `json:"nextRecordsUrl,omitempty"`
	Records        []Record `json:"records"`
}

// SearchResponse is the wire shape of a full-text-search result. Search
// results arrive in a single bounded page.
type SearchResponse struct {
	SearchRecords []Record `json:"searchRecords"`
}

// RecentItemsResponse carries the recently-used record stubs returned by the
// object-metadata endpoint.
type RecentItemsResponse struct {
	RecentItems []Record `json:"recentItems"`
}

// CreateResponse is the wire shape of a create-record result.
type CreateResponse struct {
	ID      string `json:"id"`
	Success bool   `json:"success"`
	Errors  []any  `json:"errors,omitempty"`
}
