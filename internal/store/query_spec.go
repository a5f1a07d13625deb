// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Viktor Martynenko

package store

// IndexType selects the SQL column type an indexed path is projected into.
type IndexType string

const (
	IndexString   IndexType = "string"
	IndexInteger  IndexType = "integer"
	IndexFloating IndexType = "floating"
)

// IndexSpec declares one indexed path of a soup. Records are stored as
// opaque JSON; only indexed paths are queryable.
type IndexSpec struct {
	Path string    `json:"path"`
	Type IndexType `json:"type"`
}

// QueryType selects the filter shape of a QuerySpec.
type QueryType string

const (
	QueryAll   QueryType = "all"
	QueryExact QueryType = "exact"
	QueryRange QueryType = "range"
	QueryLike  QueryType = "like"
)

// SortOrder is the ordering direction over the spec's path.
type SortOrder string

const (
	SortAscending  SortOrder = "ASC"
	SortDescending SortOrder = "DESC"
)

// QuerySpec is a declarative filter over one indexed path of a soup. Match
// keys are compared against the projected column value, which is always the
// string rendering of the indexed JSON value.
type QuerySpec struct {
	SoupName string
	Type     QueryType
	Path     string

	// MatchKey is the exact-match value (QueryExact only).
	MatchKey string
	// BeginKey/EndKey bound an inclusive range (QueryRange only).
	BeginKey string
	EndKey   string
	// LikeKey is a SQL LIKE pattern (QueryLike only).
	LikeKey string

	Order    SortOrder
	PageSize int
}

const defaultPageSize = 10

// AllQuerySpec matches every record in the soup, ordered by path.
func AllQuerySpec(soupName, path string, order SortOrder, pageSize int) QuerySpec {
	return normalize(QuerySpec{SoupName: soupName, Type: QueryAll, Path: path, Order: order, PageSize: pageSize})
}

// ExactQuerySpec matches records whose indexed path equals matchKey.
func ExactQuerySpec(soupName, path, matchKey string, order SortOrder, pageSize int) QuerySpec {
	return normalize(QuerySpec{SoupName: soupName, Type: QueryExact, Path: path, MatchKey: matchKey, Order: order, PageSize: pageSize})
}

// RangeQuerySpec matches records whose indexed path lies in [beginKey, endKey].
func RangeQuerySpec(soupName, path, beginKey, endKey string, order SortOrder, pageSize int) QuerySpec {
	return normalize(QuerySpec{SoupName: soupName, Type: QueryRange, Path: path, BeginKey: beginKey, EndKey: endKey, Order: order, PageSize: pageSize})
}

// LikeQuerySpec matches records whose indexed path matches a LIKE pattern.
func LikeQuerySpec(soupName, path, likeKey string, order SortOrder, pageSize int) QuerySpec {
	return normalize(QuerySpec{SoupName: soupName, Type: QueryLike, Path: path, LikeKey: likeKey, Order: order, PageSize: pageSize})
}

func normalize(spec QuerySpec) QuerySpec {
	if spec.Order == "" {
		spec.Order = SortAscending
	}
	if spec.PageSize <= 0 {
		spec.PageSize = defaultPageSize
	}
	return spec
}
