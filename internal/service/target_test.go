// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Viktor Martynenko

package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/vmartynenko/go-soupsync/internal/adapter"
	"github.com/vmartynenko/go-soupsync/internal/mock"
	"github.com/vmartynenko/go-soupsync/models"
)

func TestSoqlTarget_FollowsContinuations(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	client := mock.NewMockRestClient(ctrl)
	ctx := context.Background()

	client.EXPECT().
		Query(gomock.Any(), "SELECT Id FROM Account").
		Return(models.QueryResponse{
			TotalSize:      3,
			NextRecordsURL: "/q/next",
			Records:        []models.Record{{"Id": "001A"}, {"Id": "001B"}},
		}, nil)
	client.EXPECT().
		QueryMore(gomock.Any(), "/q/next").
		Return(models.QueryResponse{
			TotalSize: 3,
			Done:      true,
			Records:   []models.Record{{"Id": "001C"}},
		}, nil)

	target, err := NewSoqlSyncDownTarget(client, "SELECT Id FROM Account")
	require.NoError(t, err)

	page, err := target.StartFetch(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, page.TotalSize)
	assert.Len(t, page.Records, 2)

	page, err = target.ContinueFetch(ctx)
	require.NoError(t, err)
	require.NotNil(t, page)
	assert.Equal(t, 3, page.TotalSize)
	assert.Len(t, page.Records, 1)

	// after the final page the target reports exhaustion
	page, err = target.ContinueFetch(ctx)
	require.NoError(t, err)
	assert.Nil(t, page)
}

func TestSoqlTarget_RequiresQuery(t *testing.T) {
	_, err := NewSoqlSyncDownTarget(nil, "")
	require.Error(t, err)
}

func TestSoslTarget_SinglePage(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	client := mock.NewMockRestClient(ctrl)
	ctx := context.Background()

	client.EXPECT().
		Search(gomock.Any(), "FIND {Acme} IN NAME FIELDS RETURNING Account(Id, Name)").
		Return([]models.Record{{"Id": "001A"}}, nil)

	target, err := NewSoslSyncDownTarget(client, "FIND {Acme} IN NAME FIELDS RETURNING Account(Id, Name)")
	require.NoError(t, err)

	page, err := target.StartFetch(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, page.TotalSize)

	page, err = target.ContinueFetch(ctx)
	require.NoError(t, err)
	assert.Nil(t, page)
}

func TestMruTarget_QueriesRecentIDs(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	client := mock.NewMockRestClient(ctrl)
	ctx := context.Background()

	client.EXPECT().
		RecentItems(gomock.Any(), "Account").
		Return([]string{"001A", "001B"}, nil)
	client.EXPECT().
		Query(gomock.Any(), "SELECT Id, Name FROM Account WHERE Id IN ('001A', '001B')").
		Return(models.QueryResponse{Records: []models.Record{{"Id": "001A"}, {"Id": "001B"}}}, nil)

	target, err := NewMruSyncDownTarget(client, "Account", []string{"Name"})
	require.NoError(t, err)

	page, err := target.StartFetch(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, page.TotalSize)
	assert.Len(t, page.Records, 2)
}

func TestMruTarget_IncrementalFilter(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	client := mock.NewMockRestClient(ctrl)
	ctx := context.Background()

	// 2026-08-23T10:00:00Z
	const maxTS = int64(1787479200000)

	client.EXPECT().RecentItems(gomock.Any(), "Account").Return([]string{"001A"}, nil)
	client.EXPECT().
		Query(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, query string) (models.QueryResponse, error) {
			assert.Contains(t, query, "Id IN ('001A')")
			assert.Contains(t, query, "LastModifiedDate > "+models.TimestampLiteral(maxTS))
			return models.QueryResponse{}, nil
		})

	target, err := NewMruSyncDownTarget(client, "Account", []string{"Name"})
	require.NoError(t, err)

	_, err = target.StartFetch(ctx, maxTS)
	require.NoError(t, err)
}

func TestMruTarget_NoRecentItems(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	client := mock.NewMockRestClient(ctrl)

	client.EXPECT().RecentItems(gomock.Any(), "Account").Return(nil, nil)

	target, err := NewMruSyncDownTarget(client, "Account", []string{"Name"})
	require.NoError(t, err)

	page, err := target.StartFetch(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, page.Records)
	assert.Zero(t, page.TotalSize)
}

func TestTargetRegistry_BuiltinsAndCustom(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	client := mock.NewMockRestClient(ctrl)
	registry := NewTargetRegistry()

	spec, err := models.NewTargetSpec(models.QueryTypeSoql, map[string]any{"query": "SELECT Id FROM Account"})
	require.NoError(t, err)
	target, err := registry.FromSpec(spec, client)
	require.NoError(t, err)
	assert.Equal(t, models.QueryTypeSoql, target.QueryType())

	spec, err = models.NewTargetSpec(models.QueryTypeMRU, map[string]any{
		"sobjectType": "Account",
		"fieldlist":   []any{"Name"},
	})
	require.NoError(t, err)
	target, err = registry.FromSpec(spec, client)
	require.NoError(t, err)
	assert.Equal(t, models.QueryTypeMRU, target.QueryType())

	// custom tags resolve through registered constructors only
	spec, err = models.NewTargetSpec(models.QueryTypeCustom, map[string]any{models.CustomTypeField: "briefcase"})
	require.NoError(t, err)
	_, err = registry.FromSpec(spec, client)
	require.ErrorIs(t, err, ErrUnknownTargetType)

	registry.Register("briefcase", func(s models.TargetSpec, c adapter.RestClient) (SyncDownTarget, error) {
		return NewSoqlSyncDownTarget(c, "SELECT Id FROM Briefcase")
	})
	target, err = registry.FromSpec(spec, client)
	require.NoError(t, err)
	assert.Equal(t, models.QueryTypeSoql, target.QueryType())
}

func TestTargetRegistry_UnknownQueryType(t *testing.T) {
	registry := NewTargetRegistry()
	_, err := registry.FromSpec(models.TargetSpec{QueryType: "telepathy"}, nil)
	require.ErrorIs(t, err, ErrUnknownTargetType)
}
