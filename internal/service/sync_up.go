// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Viktor Martynenko

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/vmartynenko/go-soupsync/internal/adapter"
	"github.com/vmartynenko/go-soupsync/internal/store"
	"github.com/vmartynenko/go-soupsync/models"
)

// syncUp drives one sync-up run: collect the dirty records of the soup and
// push each one to the server. The whole batch runs in a single transaction
// so a store failure rolls every local change back; transport failures are
// record-scoped and leave the record dirty for the next run.
func (m *SyncManager) syncUp(ctx context.Context, state *models.SyncState, cb Callback) error {
	entryIDs, err := m.upTarget.IDsOfRecordsToSyncUp(ctx, m.store, state.SoupName)
	if err != nil {
		return err
	}

	state.TotalSize = len(entryIDs)
	if err = m.saveSync(ctx, m.store, *state); err != nil {
		return err
	}
	m.notify(cb, *state)

	if len(entryIDs) == 0 {
		return nil
	}

	return m.store.InTransaction(ctx, func(tx *store.Store) error {
		for i, entryID := range entryIDs {
			records, err := tx.Retrieve(ctx, state.SoupName, entryID)
			if err != nil {
				return fmt.Errorf("retrieve entry %d from %q: %w", entryID, state.SoupName, err)
			}
			if len(records) == 0 {
				continue
			}

			if err = m.pushRecord(ctx, tx, state, records[0], entryID); err != nil {
				return err
			}

			if progress := pagedProgress(i+1, state.TotalSize); progress > state.Progress {
				state.Progress = progress
				if err = m.saveSync(ctx, tx, *state); err != nil {
					return err
				}
				m.notify(cb, *state)
			}
		}
		return nil
	})
}

// pushRecord reconciles one dirty record with the server. Flag priority is
// deleted over created over updated; a record carrying none of the action
// flags is stamped clean without a round-trip. Transport errors are logged
// and swallowed so the rest of the batch still runs; only store errors
// propagate and abort the transaction.
func (m *SyncManager) pushRecord(ctx context.Context, tx *store.Store, state *models.SyncState, rec models.Record, entryID int64) error {
	id := models.RecordID(rec)
	locallyCreated := models.RecordBool(rec, models.LocallyCreatedFlag)

	switch {
	case models.RecordBool(rec, models.LocallyDeletedFlag):
		if !locallyCreated {
			objectType, err := models.RecordObjectType(rec)
			if err != nil {
				m.log.Warn().Err(err).Int64("entryId", entryID).Msg("cannot push delete")
				return nil
			}
			err = m.upTarget.DeleteOnServer(ctx, objectType, id)
			if err != nil && !errors.Is(err, adapter.ErrNotFound) {
				m.log.Warn().Err(err).Str("id", id).Msg("delete on server failed")
				return nil
			}
		}
		if err := tx.Delete(ctx, state.SoupName, entryID); err != nil {
			return fmt.Errorf("delete entry %d from %q: %w", entryID, state.SoupName, err)
		}

	case locallyCreated:
		objectType, err := models.RecordObjectType(rec)
		if err != nil {
			m.log.Warn().Err(err).Int64("entryId", entryID).Msg("cannot push create")
			return nil
		}
		serverID, err := m.upTarget.CreateOnServer(ctx, objectType, fieldsToPush(rec, state.Options.FieldList))
		if err != nil {
			m.log.Warn().Err(err).Str("id", id).Msg("create on server failed")
			return nil
		}
		rec[models.FieldID] = serverID
		models.StampClean(rec)
		if _, err = tx.Update(ctx, state.SoupName, rec, entryID); err != nil {
			return fmt.Errorf("update entry %d in %q: %w", entryID, state.SoupName, err)
		}

	case models.RecordBool(rec, models.LocallyUpdatedFlag):
		objectType, err := models.RecordObjectType(rec)
		if err != nil {
			m.log.Warn().Err(err).Int64("entryId", entryID).Msg("cannot push update")
			return nil
		}
		err = m.upTarget.UpdateOnServer(ctx, objectType, id, fieldsToPush(rec, state.Options.FieldList))
		switch {
		case errors.Is(err, adapter.ErrNotFound):
			// Record vanished remotely; the local copy follows it.
			if err = tx.Delete(ctx, state.SoupName, entryID); err != nil {
				return fmt.Errorf("delete entry %d from %q: %w", entryID, state.SoupName, err)
			}
			return nil
		case err != nil:
			m.log.Warn().Err(err).Str("id", id).Msg("update on server failed")
			return nil
		}
		models.StampClean(rec)
		if _, err = tx.Update(ctx, state.SoupName, rec, entryID); err != nil {
			return fmt.Errorf("update entry %d in %q: %w", entryID, state.SoupName, err)
		}

	default:
		// Dirty flag set with no action flag: repair the inconsistency.
		m.log.Warn().Int64("entryId", entryID).Str("id", id).Msg("dirty record carries no action flag")
		models.StampClean(rec)
		if _, err := tx.Update(ctx, state.SoupName, rec, entryID); err != nil {
			return fmt.Errorf("update entry %d in %q: %w", entryID, state.SoupName, err)
		}
	}
	return nil
}

// syncBookkeepingFields are never pushed to the server.
var syncBookkeepingFields = map[string]struct{}{
	models.SoupEntryID:        {},
	models.FieldID:            {},
	models.FieldAttributes:    {},
	models.LocalFlag:          {},
	models.LocallyCreatedFlag: {},
	models.LocallyUpdatedFlag: {},
	models.LocallyDeletedFlag: {},
}

// fieldsToPush projects the record onto the fields sent in a create or
// update body. A configured field list wins; otherwise every business field
// goes. The id travels in the URL, never in the body.
func fieldsToPush(rec models.Record, fieldList []string) models.Record {
	fields := models.Record{}
	if len(fieldList) > 0 {
		for _, name := range fieldList {
			if name == models.FieldID {
				continue
			}
			if value, ok := rec[name]; ok {
				fields[name] = value
			}
		}
		return fields
	}
	for name, value := range rec {
		if _, skip := syncBookkeepingFields[name]; skip {
			continue
		}
		fields[name] = value
	}
	return fields
}
