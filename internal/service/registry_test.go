// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Viktor Martynenko

package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/vmartynenko/go-soupsync/internal/logger"
	"github.com/vmartynenko/go-soupsync/internal/mock"
	"github.com/vmartynenko/go-soupsync/internal/store"
	"github.com/vmartynenko/go-soupsync/migrations"
)

func newRegistryWithFactory(t *testing.T, ctrl *gomock.Controller, created *int) *Registry {
	t.Helper()
	return NewRegistry(func(ctx context.Context, identity, communityID string) (*SyncManager, error) {
		*created++
		s, err := store.New(ctx, ":memory:", logger.Nop())
		if err != nil {
			return nil, err
		}
		t.Cleanup(func() { s.Close() })
		if err = migrations.Migrate(s.DB()); err != nil {
			return nil, err
		}
		return NewSyncManager(s, mock.NewMockRestClient(ctrl), nil, logger.Nop()), nil
	})
}

func TestRegistry_OneManagerPerIdentity(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	ctx := context.Background()

	created := 0
	registry := newRegistryWithFactory(t, ctrl, &created)

	first, err := registry.GetInstance(ctx, "user@example.org", "")
	require.NoError(t, err)
	second, err := registry.GetInstance(ctx, "user@example.org", "")
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, 1, created)

	// a different community gets its own manager
	other, err := registry.GetInstance(ctx, "user@example.org", "community-1")
	require.NoError(t, err)
	assert.NotSame(t, first, other)
	assert.Equal(t, 2, created)

	// the syncs soup was registered before the manager was handed out
	has, err := first.store.HasSoup(ctx, SyncsSoupName)
	require.NoError(t, err)
	assert.True(t, has)
}

func TestRegistry_Reset(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	ctx := context.Background()

	created := 0
	registry := newRegistryWithFactory(t, ctrl, &created)

	first, err := registry.GetInstance(ctx, "user@example.org", "")
	require.NoError(t, err)
	other, err := registry.GetInstance(ctx, "user@example.org", "community-1")
	require.NoError(t, err)

	registry.Reset("user@example.org", "")

	// only the reset pair is rebuilt
	second, err := registry.GetInstance(ctx, "user@example.org", "")
	require.NoError(t, err)
	assert.NotSame(t, first, second)
	sameOther, err := registry.GetInstance(ctx, "user@example.org", "community-1")
	require.NoError(t, err)
	assert.Same(t, other, sameOther)
	assert.Equal(t, 3, created)

	registry.ResetAll()
	_, err = registry.GetInstance(ctx, "user@example.org", "community-1")
	require.NoError(t, err)
	assert.Equal(t, 4, created)
}

func TestRegistry_FactoryError(t *testing.T) {
	registry := NewRegistry(func(context.Context, string, string) (*SyncManager, error) {
		return nil, errors.New("no database")
	})

	_, err := registry.GetInstance(context.Background(), "user@example.org", "")
	require.Error(t, err)
}
