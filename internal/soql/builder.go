// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Viktor Martynenko

// Package soql builds declarative fetch expressions understood by the remote
// API: structured queries (SOQL) and full-text searches (SOSL). Builders are
// plain value types with no state beyond the expression under construction.
package soql

import (
	"fmt"
	"strings"
)

// Builder assembles a structured query expression.
type Builder struct {
	fields  []string
	from    string
	where   []string
	orderBy string
	limit   int
}

// NewBuilder starts a query over the given object type.
func NewBuilder(objectType string) *Builder {
	return &Builder{from: objectType}
}

// Fields sets the selected field list. Duplicates are dropped, order kept.
func (b *Builder) Fields(fields ...string) *Builder {
	seen := make(map[string]struct{}, len(fields))
	b.fields = b.fields[:0]
	for _, f := range fields {
		if f == "" {
			continue
		}
		if _, dup := seen[f]; dup {
			continue
		}
		seen[f] = struct{}{}
		b.fields = append(b.fields, f)
	}
	return b
}

// Where appends a filter condition; conditions are ANDed together.
func (b *Builder) Where(condition string) *Builder {
	if condition != "" {
		b.where = append(b.where, condition)
	}
	return b
}

// WhereIn appends an "IN (...)" filter over quoted string values.
func (b *Builder) WhereIn(field string, values []string) *Builder {
	if len(values) == 0 {
		return b
	}
	quoted := make([]string, 0, len(values))
	for _, v := range values {
		quoted = append(quoted, QuoteLiteral(v))
	}
	return b.Where(fmt.Sprintf("%s IN (%s)", field, strings.Join(quoted, ", ")))
}

// OrderBy sets the ordering clause, e.g. "LastModifiedDate ASC".
func (b *Builder) OrderBy(clause string) *Builder {
	b.orderBy = clause
	return b
}

// Limit caps the number of returned rows. Zero means no limit clause.
func (b *Builder) Limit(n int) *Builder {
	b.limit = n
	return b
}

// Build renders the expression.
func (b *Builder) Build() string {
	var sb strings.Builder
	sb.WriteString("SELECT ")
	if len(b.fields) == 0 {
		sb.WriteString("Id")
	} else {
		sb.WriteString(strings.Join(b.fields, ", "))
	}
	sb.WriteString(" FROM ")
	sb.WriteString(b.from)
	if len(b.where) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(b.where, " AND "))
	}
	if b.orderBy != "" {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(b.orderBy)
	}
	if b.limit > 0 {
		fmt.Fprintf(&sb, " LIMIT %d", b.limit)
	}
	return sb.String()
}

// QuoteLiteral renders a string value as a single-quoted query literal,
// escaping embedded quotes and backslashes.
func QuoteLiteral(v string) string {
	v = strings.ReplaceAll(v, `\`, `\\`)
	v = strings.ReplaceAll(v, `'`, `\'`)
	return "'" + v + "'"
}
