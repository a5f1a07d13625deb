// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Viktor Martynenko

// Package store implements the smartstore: a schema-flexible local document
// store backed by SQLite. Records live in named soups as opaque JSON with
// declared indexed paths projected into queryable columns.
//
// The registry backbone (soup_registry, soup_index_specs) is created by the
// migrations package; per-soup tables are created lazily by RegisterSoup.
// All mutations run through InTransaction, which serializes writers on a
// single mutex the way a mobile-grade SQLite deployment requires.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"sync"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3"

	"github.com/vmartynenko/go-soupsync/internal/logger"
)

// dbtx abstracts *sql.DB and *sql.Tx so soup operations run unchanged inside
// and outside a transaction.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type indexColumn struct {
	path    string
	column  string
	colType IndexType
}

type soupInfo struct {
	name    string
	table   string
	indexes []indexColumn
}

func (s *soupInfo) columnFor(path string) (string, bool) {
	for _, idx := range s.indexes {
		if idx.path == path {
			return idx.column, true
		}
	}
	return "", false
}

type soupCache struct {
	mu     sync.RWMutex
	byName map[string]*soupInfo
}

func (c *soupCache) get(name string) (*soupInfo, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	info, ok := c.byName[name]
	return info, ok
}

func (c *soupCache) put(info *soupInfo) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.byName[info.name] = info
}

// Store is the smartstore handle. A Store obtained from New wraps the
// connection; the Store passed to an InTransaction callback is a shadow
// bound to the open transaction.
type Store struct {
	conn *sql.DB // nil inside a transaction shadow
	db   dbtx
	log  *logger.Logger

	// writeMu serializes writing transactions. SQLite allows one writer at
	// a time; queueing here avoids SQLITE_BUSY churn under concurrent syncs.
	writeMu *sync.Mutex
	soups   *soupCache
}

// New opens (creating if necessary) the SQLite database at path and returns
// a Store. ":memory:" opens an in-memory store. The caller is expected to
// run migrations.Migrate on DB() before first use.
func New(ctx context.Context, path string, log *logger.Logger) (*Store, error) {
	if path == "" {
		path = ":memory:"
	}
	if path != ":memory:" {
		if err := createDBFileIfNotExists(path); err != nil {
			log.Err(err).Str("func", "store.New").Msg("error creating database file")
			return nil, fmt.Errorf("error creating database file: %w", err)
		}
	}

	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		log.Err(err).Str("func", "store.New").Msg("error opening database")
		return nil, fmt.Errorf("error opening connection to DB: %w", err)
	}
	// A single connection keeps the in-memory database alive and sidesteps
	// writer contention on file databases.
	conn.SetMaxOpenConns(1)

	if err = conn.PingContext(ctx); err != nil {
		log.Err(err).Str("func", "store.New").Msg("error connecting database (ping)")
		return nil, err
	}
	log.Debug().Str("func", "store.New").Str("path", path).Msg("connected to local store")

	return &Store{
		conn:    conn,
		db:      conn,
		log:     log,
		writeMu: &sync.Mutex{},
		soups:   &soupCache{byName: make(map[string]*soupInfo)},
	}, nil
}

// DB exposes the underlying connection for migrations and shutdown.
func (s *Store) DB() *sql.DB { return s.conn }

// Close closes the underlying connection. No-op on a transaction shadow.
func (s *Store) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

// InTransaction runs fn against a Store bound to one transaction, committing
// on nil return and rolling back otherwise. Nested calls join the already
// open transaction.
func (s *Store) InTransaction(ctx context.Context, fn func(tx *Store) error) error {
	if s.conn == nil {
		return fn(s)
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	shadow := &Store{db: tx, log: s.log, writeMu: s.writeMu, soups: s.soups}
	if err = fn(shadow); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			s.log.Err(rbErr).Str("func", "Store.InTransaction").Msg("rollback failed")
		}
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// HasSoup reports whether a soup with the given name is registered.
func (s *Store) HasSoup(ctx context.Context, name string) (bool, error) {
	if _, ok := s.soups.get(name); ok {
		return true, nil
	}

	var id int64
	err := s.db.QueryRowContext(ctx, `SELECT id FROM soup_registry WHERE soup_name = ?`, name).Scan(&id)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check soup %q: %w", name, err)
	}
	return true, nil
}

// RegisterSoup creates the soup's table and records its index specs.
// Idempotent: registering an existing soup reloads it and returns nil.
func (s *Store) RegisterSoup(ctx context.Context, name string, specs []IndexSpec) error {
	if name == "" {
		return fmt.Errorf("register soup: empty soup name")
	}

	exists, err := s.HasSoup(ctx, name)
	if err != nil {
		return err
	}
	if exists {
		_, err = s.getSoup(ctx, name)
		return err
	}

	err = s.InTransaction(ctx, func(tx *Store) error {
		res, txErr := tx.db.ExecContext(ctx, `INSERT INTO soup_registry (soup_name) VALUES (?)`, name)
		if txErr != nil {
			return fmt.Errorf("insert soup registry row: %w", txErr)
		}
		registryID, txErr := res.LastInsertId()
		if txErr != nil {
			return fmt.Errorf("soup registry id: %w", txErr)
		}

		info := &soupInfo{name: name, table: fmt.Sprintf("soup_%d", registryID)}
		columns := `id INTEGER PRIMARY KEY AUTOINCREMENT, soup TEXT NOT NULL, created INTEGER NOT NULL, last_modified INTEGER NOT NULL`
		for i, spec := range specs {
			col := indexColumn{path: spec.Path, column: fmt.Sprintf("idx_%d", i), colType: spec.Type}
			info.indexes = append(info.indexes, col)
			columns += fmt.Sprintf(", %s %s", col.column, sqlColumnType(spec.Type))

			if _, txErr = tx.db.ExecContext(ctx,
				`INSERT INTO soup_index_specs (soup_name, path, column_name, column_type) VALUES (?, ?, ?, ?)`,
				name, spec.Path, col.column, string(spec.Type)); txErr != nil {
				return fmt.Errorf("insert index spec %q: %w", spec.Path, txErr)
			}
		}

		if _, txErr = tx.db.ExecContext(ctx, fmt.Sprintf(`CREATE TABLE %s (%s)`, info.table, columns)); txErr != nil {
			return fmt.Errorf("create soup table: %w", txErr)
		}
		for _, col := range info.indexes {
			stmt := fmt.Sprintf(`CREATE INDEX %s_%s ON %s (%s)`, info.table, col.column, info.table, col.column)
			if _, txErr = tx.db.ExecContext(ctx, stmt); txErr != nil {
				return fmt.Errorf("create soup index %s: %w", col.column, txErr)
			}
		}

		s.soups.put(info)
		return nil
	})
	if err != nil {
		return err
	}

	s.log.Debug().Str("func", "Store.RegisterSoup").Str("soup", name).Int("indexes", len(specs)).Msg("registered soup")
	return nil
}

// getSoup resolves soup metadata, loading it from the registry on a cache miss.
func (s *Store) getSoup(ctx context.Context, name string) (*soupInfo, error) {
	if info, ok := s.soups.get(name); ok {
		return info, nil
	}

	var registryID int64
	err := s.db.QueryRowContext(ctx, `SELECT id FROM soup_registry WHERE soup_name = ?`, name).Scan(&registryID)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", ErrSoupNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("load soup %q: %w", name, err)
	}

	info := &soupInfo{name: name, table: fmt.Sprintf("soup_%d", registryID)}
	rows, err := s.db.QueryContext(ctx,
		`SELECT path, column_name, column_type FROM soup_index_specs WHERE soup_name = ? ORDER BY column_name`, name)
	if err != nil {
		return nil, fmt.Errorf("load index specs for %q: %w", name, err)
	}
	defer rows.Close()

	for rows.Next() {
		var col indexColumn
		var colType string
		if err = rows.Scan(&col.path, &col.column, &colType); err != nil {
			return nil, fmt.Errorf("scan index spec for %q: %w", name, err)
		}
		col.colType = IndexType(colType)
		info.indexes = append(info.indexes, col)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate index specs for %q: %w", name, err)
	}

	s.soups.put(info)
	return info, nil
}

func sqlColumnType(t IndexType) string {
	switch t {
	case IndexInteger:
		return "INTEGER"
	case IndexFloating:
		return "REAL"
	default:
		return "TEXT"
	}
}

// builder is the squirrel statement builder shared by soup operations.
// SQLite uses question-mark placeholders, squirrel's default.
var builder = sq.StatementBuilder

func createDBFileIfNotExists(dbFile string) error {
	if _, err := os.Stat(dbFile); os.IsNotExist(err) {
		f, err := os.Create(dbFile)
		if err != nil {
			return fmt.Errorf("error creating DB file: %w", err)
		}
		f.Close()
	}

	return nil
}
