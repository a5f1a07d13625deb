// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Viktor Martynenko

package soql

import (
	"fmt"
	"strings"
)

// SearchBuilder assembles a full-text-search expression.
type SearchBuilder struct {
	term      string
	in        string
	returning []string
	limit     int
}

// NewSearchBuilder starts a search for the given term.
func NewSearchBuilder(term string) *SearchBuilder {
	return &SearchBuilder{term: term, in: "ALL FIELDS"}
}

// In restricts the search scope, e.g. "NAME FIELDS".
func (b *SearchBuilder) In(scope string) *SearchBuilder {
	if scope != "" {
		b.in = scope
	}
	return b
}

// Returning adds an object-type projection, e.g. "Account(Id, Name)".
func (b *SearchBuilder) Returning(projection string) *SearchBuilder {
	if projection != "" {
		b.returning = append(b.returning, projection)
	}
	return b
}

// Limit caps the number of returned rows. Zero means no limit clause.
func (b *SearchBuilder) Limit(n int) *SearchBuilder {
	b.limit = n
	return b
}

// Build renders the expression.
func (b *SearchBuilder) Build() string {
	var sb strings.Builder
	sb.WriteString("FIND {")
	sb.WriteString(escapeSearchTerm(b.term))
	sb.WriteString("} IN ")
	sb.WriteString(b.in)
	if len(b.returning) > 0 {
		sb.WriteString(" RETURNING ")
		sb.WriteString(strings.Join(b.returning, ", "))
	}
	if b.limit > 0 {
		fmt.Fprintf(&sb, " LIMIT %d", b.limit)
	}
	return sb.String()
}

// escapeSearchTerm escapes the characters that are reserved inside a braced
// search term.
func escapeSearchTerm(term string) string {
	replacer := strings.NewReplacer(
		`\`, `\\`,
		`{`, `\{`,
		`}`, `\}`,
		`"`, `\"`,
		`'`, `\'`,
	)
	return replacer.Replace(term)
}
