package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/vmartynenko/go-soupsync/internal/adapter"
	"github.com/vmartynenko/go-soupsync/models"
)

// soslSyncDownTarget fetches the result of a stored full-text-search
// expression. Search results arrive in one bounded round-trip, so there is
// no continuation and the high-water mark is ignored.
type soslSyncDownTarget struct {
	client adapter.RestClient
	search string
}

// NewSoslSyncDownTarget builds the full-text-search target variant.
func NewSoslSyncDownTarget(client adapter.RestClient, search string) (SyncDownTarget, error) {
	if search == "" {
		return nil, errors.New("sosl target requires a search expression")
	}
	return &soslSyncDownTarget{client: client, search: search}, nil
}

func (t *soslSyncDownTarget) QueryType() string { return models.QueryTypeSosl }

func (t *soslSyncDownTarget) StartFetch(ctx context.Context, _ int64) (*Page, error) {
	records, err := t.client.Search(ctx, t.search)
	if err != nil {
		return nil, fmt.Errorf("sosl fetch: %w", err)
	}
	return &Page{Records: records, TotalSize: len(records)}, nil
}

func (t *soslSyncDownTarget) ContinueFetch(context.Context) (*Page, error) {
	return nil, nil
}
