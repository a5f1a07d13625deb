// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Viktor Martynenko

package http

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vmartynenko/go-soupsync/models"
)

// queryPageSize is the page the mock hands out before switching to
// continuation locators, deliberately small so paging paths get exercised.
const queryPageSize = 200

// maxRecentItems caps the most-recently-used list kept per object type.
const maxRecentItems = 200

// objectStore is the in-memory record storage behind the mock API. Records
// are grouped by object type and addressed by server id.
type objectStore struct {
	mu      sync.RWMutex
	objects map[string]map[string]models.Record
	recent  map[string][]string

	// cursors holds the remainder of paged query results keyed by locator.
	cursors map[string][]models.Record
}

func newObjectStore() *objectStore {
	return &objectStore{
		objects: make(map[string]map[string]models.Record),
		recent:  make(map[string][]string),
		cursors: make(map[string][]models.Record),
	}
}

func (s *objectStore) create(objectType string, fields models.Record) models.Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	rec := models.Record{
		models.FieldID: id,
		"attributes":   map[string]any{"type": objectType},
	}
	for name, value := range fields {
		if name == models.FieldID || name == "attributes" {
			continue
		}
		rec[name] = value
	}
	rec[models.FieldLastModifiedDate] = nowStamp()

	if s.objects[objectType] == nil {
		s.objects[objectType] = make(map[string]models.Record)
	}
	s.objects[objectType][id] = rec
	s.touch(objectType, id)
	return rec
}

func (s *objectStore) update(objectType, id string, fields models.Record) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.objects[objectType][id]
	if !ok {
		return false
	}
	for name, value := range fields {
		if name == models.FieldID || name == "attributes" {
			continue
		}
		rec[name] = value
	}
	rec[models.FieldLastModifiedDate] = nowStamp()
	s.touch(objectType, id)
	return true
}

func (s *objectStore) delete(objectType, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.objects[objectType][id]; !ok {
		return false
	}
	delete(s.objects[objectType], id)

	recent := s.recent[objectType]
	for i, recentID := range recent {
		if recentID == id {
			s.recent[objectType] = append(recent[:i], recent[i+1:]...)
			break
		}
	}
	return true
}

// recentIDs returns the most-recently-touched ids of the type, newest first.
func (s *objectStore) recentIDs(objectType string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.recent[objectType]...)
}

func (s *objectStore) get(objectType, id string) (models.Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.objects[objectType][id]
	return rec, ok
}

// touch moves id to the front of the type's recent list. Caller holds mu.
func (s *objectStore) touch(objectType, id string) {
	recent := s.recent[objectType]
	for i, recentID := range recent {
		if recentID == id {
			recent = append(recent[:i], recent[i+1:]...)
			break
		}
	}
	recent = append([]string{id}, recent...)
	if len(recent) > maxRecentItems {
		recent = recent[:maxRecentItems]
	}
	s.recent[objectType] = recent
}

var (
	fromClause  = regexp.MustCompile(`(?i)\bFROM\s+(\w+)`)
	idInClause  = regexp.MustCompile(`(?i)\bId\s+IN\s+\(([^)]+)\)`)
	sinceClause = regexp.MustCompile(`(?i)\bLastModifiedDate\s*>\s*([0-9T:.+Z-]+)`)
	findClause  = regexp.MustCompile(`(?i)\bFIND\s+\{([^}]*)\}`)
	retClause   = regexp.MustCompile(`(?i)\bRETURNING\s+(\w+)`)
)

// query evaluates the subset of the query language the sync engine emits:
// a FROM clause, an optional "Id IN (...)" filter and an optional
// "LastModifiedDate > <literal>" filter. The first page is returned inline;
// the remainder is parked behind a locator.
func (s *objectStore) query(soql string) (models.QueryResponse, error) {
	m := fromClause.FindStringSubmatch(soql)
	if m == nil {
		return models.QueryResponse{}, fmt.Errorf("malformed query: %q", soql)
	}
	objectType := m[1]

	var idFilter map[string]struct{}
	if m = idInClause.FindStringSubmatch(soql); m != nil {
		idFilter = make(map[string]struct{})
		for _, raw := range strings.Split(m[1], ",") {
			idFilter[strings.Trim(strings.TrimSpace(raw), "'")] = struct{}{}
		}
	}

	var since time.Time
	if m = sinceClause.FindStringSubmatch(soql); m != nil {
		parsed, err := time.Parse("2006-01-02T15:04:05.000Z", m[1])
		if err != nil {
			return models.QueryResponse{}, fmt.Errorf("malformed datetime literal %q", m[1])
		}
		since = parsed
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var matches []models.Record
	for id, rec := range s.objects[objectType] {
		if idFilter != nil {
			if _, ok := idFilter[id]; !ok {
				continue
			}
		}
		if !since.IsZero() {
			stamp, _ := rec[models.FieldLastModifiedDate].(string)
			ts, err := time.Parse("2006-01-02T15:04:05.000-0700", stamp)
			if err != nil || !ts.After(since) {
				continue
			}
		}
		matches = append(matches, rec)
	}
	sort.Slice(matches, func(i, j int) bool {
		return models.RecordID(matches[i]) < models.RecordID(matches[j])
	})

	return s.pageOut(matches, len(matches)), nil
}

// queryMore resumes a paged query by locator. A locator is good for exactly
// one call; the next page re-parks the remainder under a fresh one.
func (s *objectStore) queryMore(locator string) (models.QueryResponse, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rest, ok := s.cursors[locator]
	if !ok {
		return models.QueryResponse{}, false
	}
	delete(s.cursors, locator)

	return s.pageOut(rest, len(rest)), true
}

// pageOut returns the first page inline and parks the remainder behind a
// fresh locator placed in NextRecordsURL; the transport layer rewrites it
// into a full continuation path. Caller holds mu.
func (s *objectStore) pageOut(matches []models.Record, totalSize int) models.QueryResponse {
	resp := models.QueryResponse{TotalSize: totalSize}
	if len(matches) > queryPageSize {
		locator := uuid.NewString()
		s.cursors[locator] = matches[queryPageSize:]
		resp.Records = matches[:queryPageSize]
		resp.NextRecordsURL = locator
	} else {
		resp.Records = matches
		resp.Done = true
	}
	return resp
}

// search evaluates a FIND expression: a case-insensitive substring match
// over the string fields of the RETURNING type.
func (s *objectStore) search(sosl string) ([]models.Record, error) {
	found := findClause.FindStringSubmatch(sosl)
	returning := retClause.FindStringSubmatch(sosl)
	if found == nil || returning == nil {
		return nil, fmt.Errorf("malformed search: %q", sosl)
	}
	term := strings.ToLower(found[1])
	objectType := returning[1]

	s.mu.RLock()
	defer s.mu.RUnlock()

	var matches []models.Record
	for _, rec := range s.objects[objectType] {
		for name, value := range rec {
			text, ok := value.(string)
			if !ok || name == models.FieldID {
				continue
			}
			if strings.Contains(strings.ToLower(text), term) {
				matches = append(matches, rec)
				break
			}
		}
	}
	sort.Slice(matches, func(i, j int) bool {
		return models.RecordID(matches[i]) < models.RecordID(matches[j])
	})
	return matches, nil
}

func nowStamp() string {
	return time.Now().UTC().Format("2006-01-02T15:04:05.000-0700")
}
