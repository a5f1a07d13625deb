// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Viktor Martynenko

package models

import (
	"fmt"
	"strings"
	"time"
)

// Soup record bookkeeping fields. Every record living in a soup carries these
// in addition to its business fields; the sync engine is the only writer.
const (
	// SoupEntryID is the local row identifier injected into every record
	// read from a soup.
	SoupEntryID = "_soupEntryId"

	// LocalFlag marks a record that has unsynced local edits.
	LocalFlag = "__local__"
	// LocallyCreatedFlag marks a record created locally and never pushed.
	LocallyCreatedFlag = "__locally_created__"
	// LocallyUpdatedFlag marks a record with pending local field edits.
	LocallyUpdatedFlag = "__locally_updated__"
	// LocallyDeletedFlag marks a record scheduled for remote deletion.
	LocallyDeletedFlag = "__locally_deleted__"
)

// Server-side record fields the engine relies on.
const (
	// FieldID is the server-assigned primary identifier field.
	FieldID = "Id"
	// FieldLastModifiedDate is the server last-modified timestamp field,
	// used to advance the incremental-sync high-water mark.
	FieldLastModifiedDate = "LastModifiedDate"
	// FieldAttributes holds the record's object metadata ("type", "url").
	FieldAttributes = "attributes"

	// LocalIDPrefix prefixes placeholder ids assigned to locally-created
	// records until the create round-trip returns a server id.
	LocalIDPrefix = "local_"
)

// Record is a schema-flexible soup record. Values follow encoding/json
// conventions (string, float64, bool, nested map, slice).
type Record = map[string]any

// RecordID returns the record's primary identifier, or "" when absent.
func RecordID(rec Record) string {
	id, _ := rec[FieldID].(string)
	return id
}

// RecordIsLocallyCreated reports whether the record id is a client-generated
// placeholder rather than a server-assigned id.
func RecordIsLocallyCreated(id string) bool {
	return strings.HasPrefix(id, LocalIDPrefix)
}

// RecordBool reads a bookkeeping flag tolerating both JSON booleans and
// their string renderings, which is what index-column projections store.
func RecordBool(rec Record, field string) bool {
	switch v := rec[field].(type) {
	case bool:
		return v
	case string:
		return strings.EqualFold(v, "true")
	default:
		return false
	}
}

// RecordIsDirty reports whether the record has pending unsynced changes.
func RecordIsDirty(rec Record) bool {
	return RecordBool(rec, LocalFlag)
}

// StampClean clears all sync bookkeeping flags on the record. A record is
// stamped clean after every successful server round-trip for it, and every
// freshly downloaded record is clean by definition.
func StampClean(rec Record) {
	rec[LocalFlag] = false
	rec[LocallyCreatedFlag] = false
	rec[LocallyUpdatedFlag] = false
	rec[LocallyDeletedFlag] = false
}

// StampDirty marks the record with the given pending action flag.
func StampDirty(rec Record, actionFlag string) {
	rec[LocalFlag] = true
	rec[actionFlag] = true
}

// RecordObjectType extracts the server object type from the record's
// attributes map.
func RecordObjectType(rec Record) (string, error) {
	attrs, ok := rec[FieldAttributes].(map[string]any)
	if !ok {
		return "", fmt.Errorf("record %q has no attributes", RecordID(rec))
	}
	objectType, ok := attrs["type"].(string)
	if !ok || objectType == "" {
		return "", fmt.Errorf("record %q has no object type", RecordID(rec))
	}
	return objectType, nil
}

// RecordTimestamp parses the record's last-modified field into unix
// milliseconds. Accepts RFC3339 and the API's zone suffix without a colon.
// Returns 0 when the field is absent or unparseable.
func RecordTimestamp(rec Record) int64 {
	raw, ok := rec[FieldLastModifiedDate].(string)
	if !ok || raw == "" {
		return 0
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05.000-0700"} {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts.UnixMilli()
		}
	}
	return 0
}

// TimestampLiteral renders a unix-millisecond timestamp as an UTC datetime
// literal suitable for an incremental query filter.
func TimestampLiteral(unixMilli int64) string {
	return time.UnixMilli(unixMilli).UTC().Format("2006-01-02T15:04:05.000Z")
}
