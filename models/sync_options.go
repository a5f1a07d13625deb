// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Viktor Martynenko

package models

// MergeMode governs whether a locally-modified record may be overwritten by
// an incoming sync-down record.
type MergeMode string

const (
	// MergeModeOverwrite always replaces local content.
	MergeModeOverwrite MergeMode = "OVERWRITE"
	// MergeModeLeaveIfChanged skips incoming records whose local
	// counterpart is currently dirty, so offline edits survive a
	// concurrent download.
	MergeModeLeaveIfChanged MergeMode = "LEAVE_IF_CHANGED"
	// MergeModeNone disables the check entirely (same effect as
	// MergeModeOverwrite).
	MergeModeNone MergeMode = "NONE"
)

// SyncOptions is an immutable value object attached to a SyncState.
type SyncOptions struct {
	// FieldList names the record fields eligible for push. Sync-up only.
	FieldList []string `json:"fieldlist,omitempty"`

	MergeMode MergeMode `json:"mergeMode,omitempty"`
}

// Overwrites reports whether incoming records replace dirty local ones.
func (o SyncOptions) Overwrites() bool {
	return o.MergeMode != MergeModeLeaveIfChanged
}
