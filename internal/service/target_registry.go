package service

import (
	"fmt"
	"sync"

	"github.com/vmartynenko/go-soupsync/internal/adapter"
	"github.com/vmartynenko/go-soupsync/models"
)

// TargetFactory constructs a sync-down target from its serialized spec.
type TargetFactory func(spec models.TargetSpec, client adapter.RestClient) (SyncDownTarget, error)

// TargetRegistry resolves serialized sync-down targets. Built-in variants
// (soql, sosl, mru) are always available; custom variants are a mapping from
// a string tag to a constructor, populated at startup by the application.
// There is no dynamic type loading: an unregistered tag is a configuration
// error surfaced as ErrUnknownTargetType.
type TargetRegistry struct {
	mu     sync.RWMutex
	custom map[string]TargetFactory
}

func NewTargetRegistry() *TargetRegistry {
	return &TargetRegistry{custom: make(map[string]TargetFactory)}
}

// Register installs a constructor for a custom target tag. Registering the
// same tag twice replaces the previous constructor.
func (r *TargetRegistry) Register(tag string, factory TargetFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.custom[tag] = factory
}

// FromSpec reconstructs a target from persisted JSON. Fails fast on an
// unknown query type or custom tag so misconfigured syncs die at creation
// time, before any network activity.
func (r *TargetRegistry) FromSpec(spec models.TargetSpec, client adapter.RestClient) (SyncDownTarget, error) {
	switch spec.QueryType {
	case models.QueryTypeSoql:
		return NewSoqlSyncDownTarget(client, spec.Field("query"))
	case models.QueryTypeSosl:
		return NewSoslSyncDownTarget(client, spec.Field("query"))
	case models.QueryTypeMRU:
		return NewMruSyncDownTarget(client, spec.Field("sobjectType"), spec.StringSliceField("fieldlist"))
	case models.QueryTypeCustom:
		tag := spec.CustomType()
		r.mu.RLock()
		factory, ok := r.custom[tag]
		r.mu.RUnlock()
		if !ok {
			return nil, fmt.Errorf("%w: custom tag %q", ErrUnknownTargetType, tag)
		}
		return factory(spec, client)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownTargetType, spec.QueryType)
	}
}
