package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/vmartynenko/go-soupsync/internal/adapter"
	"github.com/vmartynenko/go-soupsync/internal/soql"
	"github.com/vmartynenko/go-soupsync/models"
)

// mruSyncDownTarget fetches the most-recently-used records of one object
// type: a bounded recent-ids round-trip, then a structured query restricted
// to those ids, returned as a single page. A non-zero high-water mark
// narrows the query to records modified since the previous run.
type mruSyncDownTarget struct {
	client     adapter.RestClient
	objectType string
	fieldList  []string
}

// NewMruSyncDownTarget builds the most-recently-used target variant.
func NewMruSyncDownTarget(client adapter.RestClient, objectType string, fieldList []string) (SyncDownTarget, error) {
	if objectType == "" {
		return nil, errors.New("mru target requires an object type")
	}
	if len(fieldList) == 0 {
		return nil, errors.New("mru target requires a field list")
	}
	return &mruSyncDownTarget{client: client, objectType: objectType, fieldList: fieldList}, nil
}

func (t *mruSyncDownTarget) QueryType() string { return models.QueryTypeMRU }

func (t *mruSyncDownTarget) StartFetch(ctx context.Context, maxTimeStamp int64) (*Page, error) {
	ids, err := t.client.RecentItems(ctx, t.objectType)
	if err != nil {
		return nil, fmt.Errorf("mru recent ids: %w", err)
	}
	if len(ids) == 0 {
		return &Page{}, nil
	}

	builder := soql.NewBuilder(t.objectType).
		Fields(append([]string{models.FieldID}, t.fieldList...)...).
		WhereIn(models.FieldID, ids)
	if maxTimeStamp > 0 {
		builder.Where(models.FieldLastModifiedDate + " > " + models.TimestampLiteral(maxTimeStamp))
	}

	resp, err := t.client.Query(ctx, builder.Build())
	if err != nil {
		return nil, fmt.Errorf("mru fetch: %w", err)
	}
	return &Page{Records: resp.Records, TotalSize: len(resp.Records)}, nil
}

func (t *mruSyncDownTarget) ContinueFetch(context.Context) (*Page, error) {
	return nil, nil
}
