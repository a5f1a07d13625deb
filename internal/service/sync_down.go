// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Viktor Martynenko

package service

import (
	"context"
	"fmt"

	"github.com/vmartynenko/go-soupsync/internal/store"
	"github.com/vmartynenko/go-soupsync/models"
)

// syncDown drives one sync-down run: fetch pages from the target, apply each
// page inside its own transaction, advance progress and the incremental
// high-water mark. The state is mutated in place; the caller persists the
// terminal status.
func (m *SyncManager) syncDown(ctx context.Context, state *models.SyncState, cb Callback) error {
	target, err := m.targets.FromSpec(state.Target, m.client)
	if err != nil {
		return err
	}

	page, err := target.StartFetch(ctx, state.MaxTimeStamp)
	if err != nil {
		return fmt.Errorf("start fetch: %w", err)
	}
	if page == nil {
		// A custom target may report an empty result as no page at all.
		state.TotalSize = 0
		if err = m.saveSync(ctx, m.store, *state); err != nil {
			return err
		}
		m.notify(cb, *state)
		return nil
	}

	state.TotalSize = page.TotalSize
	if err = m.saveSync(ctx, m.store, *state); err != nil {
		return err
	}
	m.notify(cb, *state)

	applied := 0
	newMaxTS := state.MaxTimeStamp
	for page != nil {
		if err = m.applyPage(ctx, state, page.Records); err != nil {
			return err
		}
		applied += len(page.Records)
		for _, rec := range page.Records {
			if ts := models.RecordTimestamp(rec); ts > newMaxTS {
				newMaxTS = ts
			}
		}

		if progress := pagedProgress(applied, state.TotalSize); progress > state.Progress {
			state.Progress = progress
			if err = m.saveSync(ctx, m.store, *state); err != nil {
				return err
			}
			m.notify(cb, *state)
		}

		if page, err = target.ContinueFetch(ctx); err != nil {
			return fmt.Errorf("continue fetch: %w", err)
		}
	}

	state.MaxTimeStamp = newMaxTS
	return nil
}

// applyPage upserts one page of downloaded records atomically. Every record
// lands clean; under LEAVE_IF_CHANGED a record whose local counterpart is
// dirty is skipped so offline edits survive the download.
func (m *SyncManager) applyPage(ctx context.Context, state *models.SyncState, records []models.Record) error {
	return m.store.InTransaction(ctx, func(tx *store.Store) error {
		for _, rec := range records {
			id := models.RecordID(rec)

			if !state.Options.Overwrites() && id != "" {
				dirty, err := m.localIsDirty(ctx, tx, state.SoupName, id)
				if err != nil {
					return err
				}
				if dirty {
					m.log.Debug().
						Str("soup", state.SoupName).
						Str("id", id).
						Msg("skipping download over dirty local record")
					continue
				}
			}

			models.StampClean(rec)
			if _, err := tx.Upsert(ctx, state.SoupName, rec, models.FieldID); err != nil {
				return fmt.Errorf("upsert %q into %q: %w", id, state.SoupName, err)
			}
		}
		return nil
	})
}

// localIsDirty reports whether the soup already holds a record with the
// given server id and pending local changes.
func (m *SyncManager) localIsDirty(ctx context.Context, st *store.Store, soupName, id string) (bool, error) {
	spec := store.ExactQuerySpec(soupName, models.FieldID, id, store.SortAscending, 1)
	records, err := st.Query(ctx, spec, 0)
	if err != nil {
		return false, fmt.Errorf("lookup local %q in %q: %w", id, soupName, err)
	}
	return len(records) > 0 && models.RecordIsDirty(records[0]), nil
}

// pagedProgress maps applied-of-total onto a percentage, holding back 100
// so only the terminal DONE transition reports completion.
func pagedProgress(applied, total int) int {
	if total <= 0 {
		return 0
	}
	progress := applied * 100 / total
	if progress >= 100 {
		progress = 99
	}
	return progress
}
