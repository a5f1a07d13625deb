package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/vmartynenko/go-soupsync/internal/adapter"
	"github.com/vmartynenko/go-soupsync/models"
)

// soqlSyncDownTarget fetches the result of a stored structured query,
// following server-supplied continuation URLs until the result set is
// exhausted. The total size is read once from the first page and never
// re-queried. The high-water mark is not applied to the literal query text;
// callers wanting incremental fetches embed the filter in the query itself.
type soqlSyncDownTarget struct {
	client adapter.RestClient
	query  string

	nextRecordsURL string
	totalSize      int
}

// NewSoqlSyncDownTarget builds the structured-query target variant.
func NewSoqlSyncDownTarget(client adapter.RestClient, query string) (SyncDownTarget, error) {
	if query == "" {
		return nil, errors.New("soql target requires a query")
	}
	return &soqlSyncDownTarget{client: client, query: query}, nil
}

func (t *soqlSyncDownTarget) QueryType() string { return models.QueryTypeSoql }

func (t *soqlSyncDownTarget) StartFetch(ctx context.Context, _ int64) (*Page, error) {
	resp, err := t.client.Query(ctx, t.query)
	if err != nil {
		return nil, fmt.Errorf("soql fetch: %w", err)
	}

	t.nextRecordsURL = resp.NextRecordsURL
	t.totalSize = resp.TotalSize
	return &Page{Records: resp.Records, TotalSize: resp.TotalSize}, nil
}

func (t *soqlSyncDownTarget) ContinueFetch(ctx context.Context) (*Page, error) {
	if t.nextRecordsURL == "" {
		return nil, nil
	}

	resp, err := t.client.QueryMore(ctx, t.nextRecordsURL)
	if err != nil {
		return nil, fmt.Errorf("soql continuation fetch: %w", err)
	}

	t.nextRecordsURL = resp.NextRecordsURL
	return &Page{Records: resp.Records, TotalSize: t.totalSize}, nil
}
