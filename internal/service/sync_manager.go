// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Viktor Martynenko

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/vmartynenko/go-soupsync/internal/adapter"
	"github.com/vmartynenko/go-soupsync/internal/logger"
	"github.com/vmartynenko/go-soupsync/internal/store"
	"github.com/vmartynenko/go-soupsync/models"
)

// SyncsSoupName is the soup holding the persisted SyncState records.
const SyncsSoupName = "syncs"

// SyncManager orchestrates sync-down and sync-up runs against one local
// store and one REST client. All state lives in the store: the manager
// itself is stateless between runs, so any number of goroutines may share
// one instance.
type SyncManager struct {
	store    *store.Store
	client   adapter.RestClient
	targets  *TargetRegistry
	upTarget SyncUpTarget
	log      *logger.Logger
}

// NewSyncManager wires a manager over the given store and client. The
// registry may be shared across managers; pass nil to get a fresh one with
// only the built-in target variants.
func NewSyncManager(st *store.Store, client adapter.RestClient, targets *TargetRegistry, log *logger.Logger) *SyncManager {
	if targets == nil {
		targets = NewTargetRegistry()
	}
	if log == nil {
		log = logger.Nop()
	}
	return &SyncManager{
		store:    st,
		client:   client,
		targets:  targets,
		upTarget: NewRestSyncUpTarget(client),
		log:      log,
	}
}

// SetupSyncsSoupIfNeeded registers the syncs soup. Idempotent; called once
// when a manager is handed out for an identity.
func (m *SyncManager) SetupSyncsSoupIfNeeded(ctx context.Context) error {
	return m.store.RegisterSoup(ctx, SyncsSoupName, []store.IndexSpec{
		{Path: "type", Type: store.IndexString},
		{Path: "status", Type: store.IndexString},
	})
}

// SyncDown creates a sync-down state and runs it on a background goroutine.
// The returned state is the freshly persisted NEW record; progress arrives
// through the callback. Target deserialization failures are returned
// immediately so a misconfigured sync never reaches the store.
func (m *SyncManager) SyncDown(ctx context.Context, target models.TargetSpec, soupName string, options models.SyncOptions, cb Callback) (models.SyncState, error) {
	if _, err := m.targets.FromSpec(target, m.client); err != nil {
		return models.SyncState{}, err
	}

	state := models.SyncState{
		Type:      models.SyncTypeDown,
		Target:    target,
		Options:   options,
		SoupName:  soupName,
		Status:    models.SyncStatusNew,
		TotalSize: models.TotalSizeUnknown,
	}
	state, err := m.createSync(ctx, state)
	if err != nil {
		return models.SyncState{}, err
	}

	go m.RunSync(context.WithoutCancel(ctx), state, cb)
	return state, nil
}

// SyncUp creates a sync-up state and runs it on a background goroutine.
func (m *SyncManager) SyncUp(ctx context.Context, soupName string, options models.SyncOptions, cb Callback) (models.SyncState, error) {
	state := models.SyncState{
		Type:      models.SyncTypeUp,
		Options:   options,
		SoupName:  soupName,
		Status:    models.SyncStatusNew,
		TotalSize: models.TotalSizeUnknown,
	}
	state, err := m.createSync(ctx, state)
	if err != nil {
		return models.SyncState{}, err
	}

	go m.RunSync(context.WithoutCancel(ctx), state, cb)
	return state, nil
}

// ReSync re-runs an existing sync by id, reusing its persisted target,
// options and high-water mark. Fails with ErrSyncStillRunning when the
// previous run has not reached a terminal status.
func (m *SyncManager) ReSync(ctx context.Context, syncID int64, cb Callback) (models.SyncState, error) {
	state, err := m.GetSyncStatus(ctx, syncID)
	if err != nil {
		return models.SyncState{}, err
	}
	if state.IsRunning() {
		return models.SyncState{}, fmt.Errorf("%w: sync %d", ErrSyncStillRunning, syncID)
	}

	go m.RunSync(context.WithoutCancel(ctx), state, cb)
	return state, nil
}

// GetSyncStatus loads the persisted state of a sync by id.
func (m *SyncManager) GetSyncStatus(ctx context.Context, syncID int64) (models.SyncState, error) {
	records, err := m.store.Retrieve(ctx, SyncsSoupName, syncID)
	if err != nil {
		return models.SyncState{}, fmt.Errorf("retrieve sync %d: %w", syncID, err)
	}
	if len(records) == 0 {
		return models.SyncState{}, fmt.Errorf("%w: %d", ErrSyncNotFound, syncID)
	}
	return models.SyncStateFromRecord(records[0])
}

// RunSync executes one run of the given sync to completion. Failures are
// data, not errors: the run ends with the state persisted as DONE or FAILED
// and the callback told about it, never with a value returned to the caller.
// Blocking; SyncDown/SyncUp/ReSync spawn it on a goroutine.
func (m *SyncManager) RunSync(ctx context.Context, state models.SyncState, cb Callback) {
	state.Status = models.SyncStatusRunning
	state.Progress = 0
	if err := m.saveSync(ctx, m.store, state); err != nil {
		// The run still has to end observably: callers only watch the
		// state and the callback, so a dead store must not strand them.
		m.log.Error().Err(err).Int64("syncId", state.ID).Msg("persist running sync state")
		state.Status = models.SyncStatusFailed
		if err = m.saveSync(ctx, m.store, state); err != nil {
			m.log.Error().Err(err).Int64("syncId", state.ID).Msg("persist terminal sync state")
		}
		m.notify(cb, state)
		return
	}
	m.notify(cb, state)

	var runErr error
	switch state.Type {
	case models.SyncTypeDown:
		runErr = m.syncDown(ctx, &state, cb)
	case models.SyncTypeUp:
		runErr = m.syncUp(ctx, &state, cb)
	default:
		runErr = fmt.Errorf("unknown sync type %q", state.Type)
	}

	if runErr != nil {
		m.log.Error().Err(runErr).
			Int64("syncId", state.ID).
			Str("soup", state.SoupName).
			Msg("sync run failed")
		state.Status = models.SyncStatusFailed
	} else {
		state.Status = models.SyncStatusDone
		state.Progress = 100
	}
	if err := m.saveSync(ctx, m.store, state); err != nil {
		m.log.Error().Err(err).Int64("syncId", state.ID).Msg("persist terminal sync state")
	}
	m.notify(cb, state)
}

// createSync persists a fresh sync state and stamps its assigned id back
// into the returned copy.
func (m *SyncManager) createSync(ctx context.Context, state models.SyncState) (models.SyncState, error) {
	rec, err := state.ToRecord()
	if err != nil {
		return models.SyncState{}, err
	}
	delete(rec, models.SoupEntryID)

	rec, err = m.store.Create(ctx, SyncsSoupName, rec)
	if err != nil {
		return models.SyncState{}, fmt.Errorf("create sync state: %w", err)
	}
	entryID, ok := store.EntryID(rec)
	if !ok {
		return models.SyncState{}, errors.New("created sync state has no entry id")
	}
	state.ID = entryID
	return state, nil
}

// saveSync writes the state back through the given store handle, which is
// the transaction store while a run holds one open.
func (m *SyncManager) saveSync(ctx context.Context, st *store.Store, state models.SyncState) error {
	rec, err := state.ToRecord()
	if err != nil {
		return err
	}
	if _, err = st.Update(ctx, SyncsSoupName, rec, state.ID); err != nil {
		return fmt.Errorf("save sync %d: %w", state.ID, err)
	}
	return nil
}

func (m *SyncManager) notify(cb Callback, state models.SyncState) {
	if cb != nil {
		cb(state)
	}
}
