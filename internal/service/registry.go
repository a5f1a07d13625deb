// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Viktor Martynenko

package service

import (
	"context"
	"fmt"
	"sync"
)

// ManagerFactory builds the manager backing one identity/community pair.
// The application supplies it so the registry stays ignorant of stores,
// clients and credentials.
type ManagerFactory func(ctx context.Context, identity, communityID string) (*SyncManager, error)

// Registry hands out one shared SyncManager per identity/community pair.
// Managers are created lazily on first request and kept until Reset.
type Registry struct {
	factory ManagerFactory

	mu       sync.Mutex
	managers map[string]*SyncManager
}

func NewRegistry(factory ManagerFactory) *Registry {
	return &Registry{
		factory:  factory,
		managers: make(map[string]*SyncManager),
	}
}

// GetInstance returns the manager for the pair, creating and initializing
// it on first use. communityID may be empty. The syncs soup of a fresh
// manager is registered before the manager is published.
func (r *Registry) GetInstance(ctx context.Context, identity, communityID string) (*SyncManager, error) {
	key := identity + "|" + communityID

	r.mu.Lock()
	if manager, ok := r.managers[key]; ok {
		r.mu.Unlock()
		return manager, nil
	}
	r.mu.Unlock()

	manager, err := r.factory(ctx, identity, communityID)
	if err != nil {
		return nil, fmt.Errorf("create sync manager for %q: %w", key, err)
	}
	if err = manager.SetupSyncsSoupIfNeeded(ctx); err != nil {
		return nil, fmt.Errorf("setup syncs soup for %q: %w", key, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	// Another goroutine may have won the race while we were initializing.
	if existing, ok := r.managers[key]; ok {
		return existing, nil
	}
	r.managers[key] = manager
	return manager, nil
}

// Reset drops the cached manager for one identity/community pair, so the
// next GetInstance builds a fresh one. Stores and clients owned by the
// manager are the application's to close.
func (r *Registry) Reset(identity, communityID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.managers, identity+"|"+communityID)
}

// ResetAll discards every cached manager, typically on logout.
func (r *Registry) ResetAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.managers = make(map[string]*SyncManager)
}
