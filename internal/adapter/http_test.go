// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Viktor Martynenko

package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vmartynenko/go-soupsync/models"
)

func newTestClient(t *testing.T, serverURL string) *httpRestClient {
	t.Helper()
	c := NewHTTPRestClient(HTTPClientConfig{BaseURL: serverURL, APIVersion: "60.0", AccessToken: "tok-1"})
	return c.(*httpRestClient)
}

// ── Query ────────────────────────────────────────────────────────────────────

func TestQuery_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/services/data/v60.0/query", r.URL.Path)
		assert.Equal(t, "SELECT Id FROM Account", r.URL.Query().Get("q"))
		assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(models.QueryResponse{
			TotalSize: 2,
			Done:      false,
			NextRecordsURL: "/services/data/v60.0/query/cursor-1",
			Records:        []models.Record{{"Id": "001A"}},
		})
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	qr, err := c.Query(context.Background(), "SELECT Id FROM Account")

	require.NoError(t, err)
	assert.Equal(t, 2, qr.TotalSize)
	assert.False(t, qr.Done)
	assert.Equal(t, "/services/data/v60.0/query/cursor-1", qr.NextRecordsURL)
	require.Len(t, qr.Records, 1)
	assert.Equal(t, "001A", models.RecordID(qr.Records[0]))
}

func TestQueryMore_FollowsContinuationURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/services/data/v60.0/query/cursor-1", r.URL.Path)
		_ = json.NewEncoder(w).Encode(models.QueryResponse{TotalSize: 2, Done: true, Records: []models.Record{{"Id": "001B"}}})
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	qr, err := c.QueryMore(context.Background(), "/services/data/v60.0/query/cursor-1")

	require.NoError(t, err)
	assert.True(t, qr.Done)
	assert.Empty(t, qr.NextRecordsURL)
}

func TestQuery_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.Query(context.Background(), "SELECT Id FROM Account")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

// ── Search / RecentItems ─────────────────────────────────────────────────────

func TestSearch_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/services/data/v60.0/search", r.URL.Path)
		_ = json.NewEncoder(w).Encode(models.SearchResponse{SearchRecords: []models.Record{{"Id": "001A"}, {"Id": "001B"}}})
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	records, err := c.Search(context.Background(), "FIND {acme} IN ALL FIELDS")

	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestRecentItems_CollectsIDs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/services/data/v60.0/sobjects/Account", r.URL.Path)
		_ = json.NewEncoder(w).Encode(models.RecentItemsResponse{
			RecentItems: []models.Record{{"Id": "001A"}, {"Name": "no id, skipped"}, {"Id": "001B"}},
		})
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	ids, err := c.RecentItems(context.Background(), "Account")

	require.NoError(t, err)
	assert.Equal(t, []string{"001A", "001B"}, ids)
}

// ── Create / Update / Delete ─────────────────────────────────────────────────

func TestCreate_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/services/data/v60.0/sobjects/Account", r.URL.Path)

		var fields models.Record
		require.NoError(t, json.NewDecoder(r.Body).Decode(&fields))
		assert.Equal(t, "Acme", fields["Name"])
		assert.NotContains(t, fields, "Id")

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(models.CreateResponse{ID: "001NEW", Success: true})
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	id, err := c.Create(context.Background(), "Account", models.Record{"Name": "Acme"})

	require.NoError(t, err)
	assert.Equal(t, "001NEW", id)
}

func TestUpdate_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("entity deleted"))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	err := c.Update(context.Background(), "Account", "001GONE", models.Record{"Name": "x"})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDelete_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/services/data/v60.0/sobjects/Account/001A", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	require.NoError(t, c.Delete(context.Background(), "Account", "001A"))
}

func TestDelete_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	err := c.Delete(context.Background(), "Account", "001GONE")

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSetToken_ReplacesHeader(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode(models.QueryResponse{Done: true})
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	c.SetToken("  tok-2  ")
	_, err := c.Query(context.Background(), "SELECT Id FROM Account")

	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-2", gotAuth)
	assert.Equal(t, "tok-2", c.Token())
}
