// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Viktor Martynenko

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/vmartynenko/go-soupsync/models"
)

// EntryID extracts the soup entry id from a record, tolerating the numeric
// types a JSON round-trip may produce.
func EntryID(rec models.Record) (int64, bool) {
	switch v := rec[models.SoupEntryID].(type) {
	case int64:
		return v, true
	case int:
		return int64(v), true
	case float64:
		return int64(v), true
	case json.Number:
		id, err := v.Int64()
		return id, err == nil
	default:
		return 0, false
	}
}

// Create inserts a new record into the soup and returns it with its assigned
// soup entry id injected.
func (s *Store) Create(ctx context.Context, soupName string, rec models.Record) (models.Record, error) {
	info, err := s.getSoup(ctx, soupName)
	if err != nil {
		return nil, err
	}

	var created models.Record
	err = s.InTransaction(ctx, func(tx *Store) error {
		now := time.Now().UnixMilli()
		res, txErr := tx.db.ExecContext(ctx,
			fmt.Sprintf(`INSERT INTO %s (soup, created, last_modified) VALUES ('{}', ?, ?)`, info.table), now, now)
		if txErr != nil {
			return fmt.Errorf("insert into soup %q: %w", soupName, txErr)
		}
		entryID, txErr := res.LastInsertId()
		if txErr != nil {
			return fmt.Errorf("soup %q entry id: %w", soupName, txErr)
		}

		rec[models.SoupEntryID] = entryID
		if txErr = tx.writeEntry(ctx, info, rec, entryID); txErr != nil {
			return txErr
		}
		created = rec
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Update rewrites the record stored at entryID.
func (s *Store) Update(ctx context.Context, soupName string, rec models.Record, entryID int64) (models.Record, error) {
	info, err := s.getSoup(ctx, soupName)
	if err != nil {
		return nil, err
	}

	rec[models.SoupEntryID] = entryID
	err = s.InTransaction(ctx, func(tx *Store) error {
		return tx.writeEntry(ctx, info, rec, entryID)
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// Upsert writes the record into the soup, matching an existing row first by
// soup entry id when the record carries one, then by the indexed idPath.
// Records matched neither way are created.
func (s *Store) Upsert(ctx context.Context, soupName string, rec models.Record, idPath string) (models.Record, error) {
	if entryID, ok := EntryID(rec); ok {
		return s.Update(ctx, soupName, rec, entryID)
	}

	info, err := s.getSoup(ctx, soupName)
	if err != nil {
		return nil, err
	}
	col, ok := info.columnFor(idPath)
	if !ok {
		return nil, fmt.Errorf("%w: %s.%s", ErrPathNotIndexed, soupName, idPath)
	}

	key := projectString(rec, idPath)
	if key == "" {
		return s.Create(ctx, soupName, rec)
	}

	var result models.Record
	err = s.InTransaction(ctx, func(tx *Store) error {
		query, args, txErr := builder.Select("id").From(info.table).Where(sq.Eq{col: key}).Limit(1).ToSql()
		if txErr != nil {
			return fmt.Errorf("build upsert lookup: %w", txErr)
		}

		var entryID int64
		txErr = tx.db.QueryRowContext(ctx, query, args...).Scan(&entryID)
		switch {
		case txErr == sql.ErrNoRows:
			result, txErr = tx.Create(ctx, soupName, rec)
			return txErr
		case txErr != nil:
			return fmt.Errorf("upsert lookup in soup %q: %w", soupName, txErr)
		default:
			result, txErr = tx.Update(ctx, soupName, rec, entryID)
			return txErr
		}
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Retrieve loads records by soup entry id, in id order. Missing ids are
// silently skipped.
func (s *Store) Retrieve(ctx context.Context, soupName string, entryIDs ...int64) ([]models.Record, error) {
	info, err := s.getSoup(ctx, soupName)
	if err != nil {
		return nil, err
	}
	if len(entryIDs) == 0 {
		return nil, nil
	}

	query, args, err := builder.Select("id", "soup").From(info.table).Where(sq.Eq{"id": entryIDs}).OrderBy("id ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build retrieve query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("retrieve from soup %q: %w", soupName, err)
	}
	defer rows.Close()

	return scanEntries(rows, soupName)
}

// Delete removes rows by soup entry id. Deleting absent ids is not an error.
func (s *Store) Delete(ctx context.Context, soupName string, entryIDs ...int64) error {
	info, err := s.getSoup(ctx, soupName)
	if err != nil {
		return err
	}
	if len(entryIDs) == 0 {
		return nil
	}

	return s.InTransaction(ctx, func(tx *Store) error {
		query, args, txErr := builder.Delete(info.table).Where(sq.Eq{"id": entryIDs}).ToSql()
		if txErr != nil {
			return fmt.Errorf("build delete query: %w", txErr)
		}
		if _, txErr = tx.db.ExecContext(ctx, query, args...); txErr != nil {
			return fmt.Errorf("delete from soup %q: %w", soupName, txErr)
		}
		return nil
	})
}

// Query returns one page of records matching the spec, ordered over the
// spec's indexed path. pageIndex is zero-based.
func (s *Store) Query(ctx context.Context, spec QuerySpec, pageIndex int) ([]models.Record, error) {
	info, col, err := s.resolveSpec(ctx, spec)
	if err != nil {
		return nil, err
	}

	q := builder.Select("id", "soup").From(info.table).
		OrderBy(fmt.Sprintf("%s %s", col, spec.Order)).
		Limit(uint64(spec.PageSize)).
		Offset(uint64(pageIndex * spec.PageSize))
	q = applyFilter(q, col, spec)

	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build soup query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query soup %q: %w", spec.SoupName, err)
	}
	defer rows.Close()

	return scanEntries(rows, spec.SoupName)
}

// CountQuery returns the total number of records matching the spec,
// disregarding pagination.
func (s *Store) CountQuery(ctx context.Context, spec QuerySpec) (int, error) {
	info, col, err := s.resolveSpec(ctx, spec)
	if err != nil {
		return 0, err
	}

	q := applyFilter(builder.Select("COUNT(*)").From(info.table), col, spec)
	query, args, err := q.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build soup count query: %w", err)
	}

	var count int
	if err = s.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count soup %q: %w", spec.SoupName, err)
	}
	return count, nil
}

func (s *Store) resolveSpec(ctx context.Context, spec QuerySpec) (*soupInfo, string, error) {
	info, err := s.getSoup(ctx, spec.SoupName)
	if err != nil {
		return nil, "", err
	}
	col, ok := info.columnFor(spec.Path)
	if !ok {
		return nil, "", fmt.Errorf("%w: %s.%s", ErrPathNotIndexed, spec.SoupName, spec.Path)
	}
	return info, col, nil
}

func applyFilter(q sq.SelectBuilder, col string, spec QuerySpec) sq.SelectBuilder {
	switch spec.Type {
	case QueryExact:
		return q.Where(sq.Eq{col: spec.MatchKey})
	case QueryRange:
		return q.Where(sq.And{sq.GtOrEq{col: spec.BeginKey}, sq.LtOrEq{col: spec.EndKey}})
	case QueryLike:
		return q.Where(sq.Like{col: spec.LikeKey})
	default:
		return q
	}
}

// writeEntry serializes the record and rewrites the row's JSON plus all
// projected index columns. Callers hold the write transaction.
func (s *Store) writeEntry(ctx context.Context, info *soupInfo, rec models.Record, entryID int64) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode soup entry %d: %w", entryID, err)
	}

	values := map[string]any{
		"soup":          string(payload),
		"last_modified": time.Now().UnixMilli(),
	}
	for _, col := range info.indexes {
		values[col.column] = projectColumn(rec, col)
	}

	query, args, err := builder.Update(info.table).SetMap(values).Where(sq.Eq{"id": entryID}).ToSql()
	if err != nil {
		return fmt.Errorf("build soup entry update: %w", err)
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("write soup entry %d: %w", entryID, err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf("%w: %s/%d", ErrEntryNotFound, info.name, entryID)
	}
	return nil
}

func scanEntries(rows *sql.Rows, soupName string) ([]models.Record, error) {
	var records []models.Record
	for rows.Next() {
		var entryID int64
		var payload string
		if err := rows.Scan(&entryID, &payload); err != nil {
			return nil, fmt.Errorf("scan soup %q row: %w", soupName, err)
		}

		var rec models.Record
		if err := json.Unmarshal([]byte(payload), &rec); err != nil {
			return nil, fmt.Errorf("decode soup %q entry %d: %w", soupName, entryID, err)
		}
		rec[models.SoupEntryID] = entryID
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate soup %q rows: %w", soupName, err)
	}
	return records, nil
}

// projectValue walks a dotted path through nested maps.
func projectValue(rec models.Record, path string) any {
	parts := strings.Split(path, ".")
	var current any = map[string]any(rec)
	for _, part := range parts {
		m, ok := current.(map[string]any)
		if !ok {
			return nil
		}
		current, ok = m[part]
		if !ok {
			return nil
		}
	}
	return current
}

// projectString renders the value at path the way string index columns
// store it.
func projectString(rec models.Record, path string) string {
	v := projectValue(rec, path)
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%v", v)
}

// projectColumn converts the value at the index path into the column's SQL
// representation. Absent values project to NULL.
func projectColumn(rec models.Record, col indexColumn) any {
	v := projectValue(rec, col.path)
	if v == nil {
		return nil
	}

	switch col.colType {
	case IndexInteger:
		switch n := v.(type) {
		case float64:
			return int64(n)
		case int64:
			return n
		case int:
			return int64(n)
		default:
			return nil
		}
	case IndexFloating:
		switch n := v.(type) {
		case float64:
			return n
		case int64:
			return float64(n)
		case int:
			return float64(n)
		default:
			return nil
		}
	default:
		return fmt.Sprintf("%v", v)
	}
}
