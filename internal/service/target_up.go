package service

import (
	"context"
	"fmt"

	"github.com/vmartynenko/go-soupsync/internal/adapter"
	"github.com/vmartynenko/go-soupsync/internal/store"
	"github.com/vmartynenko/go-soupsync/models"
)

// syncUpPageSize bounds how many dirty records one sync-up run picks up.
// Callers with more dirty records run the sync again.
const syncUpPageSize = 2000

// restSyncUpTarget is the default sync-up variant: create/update/delete
// through the REST client, dirty-record discovery through an exact-match
// query on the local flag.
type restSyncUpTarget struct {
	client adapter.RestClient
}

// NewRestSyncUpTarget builds the default REST sync-up target.
func NewRestSyncUpTarget(client adapter.RestClient) SyncUpTarget {
	return &restSyncUpTarget{client: client}
}

func (t *restSyncUpTarget) CreateOnServer(ctx context.Context, objectType string, fields models.Record) (string, error) {
	return t.client.Create(ctx, objectType, fields)
}

func (t *restSyncUpTarget) UpdateOnServer(ctx context.Context, objectType, id string, fields models.Record) error {
	return t.client.Update(ctx, objectType, id, fields)
}

func (t *restSyncUpTarget) DeleteOnServer(ctx context.Context, objectType, id string) error {
	return t.client.Delete(ctx, objectType, id)
}

func (t *restSyncUpTarget) IDsOfRecordsToSyncUp(ctx context.Context, st *store.Store, soupName string) ([]int64, error) {
	spec := store.ExactQuerySpec(soupName, models.LocalFlag, "true", store.SortAscending, syncUpPageSize)
	records, err := st.Query(ctx, spec, 0)
	if err != nil {
		return nil, fmt.Errorf("query dirty records in %q: %w", soupName, err)
	}

	ids := make([]int64, 0, len(records))
	for _, rec := range records {
		if entryID, ok := store.EntryID(rec); ok {
			ids = append(ids, entryID)
		}
	}
	return ids, nil
}
