// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Viktor Martynenko

package models

import (
	"encoding/json"
	"fmt"
)

// SyncType distinguishes the two sync directions. Immutable after creation.
type SyncType string

const (
	SyncTypeDown SyncType = "syncDown"
	SyncTypeUp   SyncType = "syncUp"
)

// SyncStatus is the lifecycle state of one sync run. Transitions move
// forward within a run; a re-run rotates a terminal status back to RUNNING.
type SyncStatus string

const (
	SyncStatusNew     SyncStatus = "NEW"
	SyncStatusRunning SyncStatus = "RUNNING"
	SyncStatusDone    SyncStatus = "DONE"
	SyncStatusFailed  SyncStatus = "FAILED"
)

// TotalSizeUnknown is the TotalSize value before the first page of a
// sync-down run has reported a server count.
const TotalSizeUnknown = -1

// SyncState is the durable record of one configured synchronization. It is
// persisted to the syncs soup after every status or progress change so a
// crash leaves a consistent last-known state. The ID never changes; only the
// sync manager mutates Status and Progress while running the sync.
type SyncState struct {
	// ID is the soup entry id of the state in the syncs soup, assigned on
	// creation. Stable for the life of the sync, which is what makes
	// re-running by id possible.
	ID int64 `json:"_soupEntryId"`

	Type     SyncType    `json:"type"`
	Target   TargetSpec  `json:"target,omitzero"`
	Options  SyncOptions `json:"options"`
	SoupName string      `json:"soupName"`

	Status SyncStatus `json:"status"`

	// Progress is an integer percentage, monotonically non-decreasing
	// within one run. Only the final DONE transition sets it to 100.
	Progress int `json:"progress"`

	// TotalSize is the record count discovered for the current run, or
	// TotalSizeUnknown until the first page reports it.
	TotalSize int `json:"totalSize"`

	// MaxTimeStamp is the high-water mark in unix milliseconds: the maximum
	// last-modified value observed across all runs of this sync. Zero until
	// a record with a parsable timestamp has been applied.
	MaxTimeStamp int64 `json:"maxTimeStamp"`
}

// IsDone reports whether the last run finished successfully.
func (s SyncState) IsDone() bool { return s.Status == SyncStatusDone }

// IsRunning reports whether a run is currently in flight.
func (s SyncState) IsRunning() bool { return s.Status == SyncStatusRunning }

// ToRecord renders the state as a soup record for persistence.
func (s SyncState) ToRecord() (Record, error) {
	payload, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode sync state: %w", err)
	}
	var rec Record
	if err = json.Unmarshal(payload, &rec); err != nil {
		return nil, fmt.Errorf("decode sync state record: %w", err)
	}
	return rec, nil
}

// SyncStateFromRecord reconstructs a SyncState from its soup record.
func SyncStateFromRecord(rec Record) (SyncState, error) {
	payload, err := json.Marshal(rec)
	if err != nil {
		return SyncState{}, fmt.Errorf("encode sync state record: %w", err)
	}
	var st SyncState
	if err = json.Unmarshal(payload, &st); err != nil {
		return SyncState{}, fmt.Errorf("decode sync state: %w", err)
	}
	return st, nil
}
