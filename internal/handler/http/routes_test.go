// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Viktor Martynenko

package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vmartynenko/go-soupsync/internal/logger"
	"github.com/vmartynenko/go-soupsync/models"
)

func newTestServer(t *testing.T) (*httptest.Server, string) {
	t.Helper()

	h := NewHandler(Settings{
		TokenSignKey:  "test-sign-key",
		TokenIssuer:   "mockserver",
		TokenDuration: time.Hour,
		Version:       "0.1.0",
	}, logger.Nop())

	srv := httptest.NewServer(h.Init())
	t.Cleanup(srv.Close)

	// obtain a token the data API will accept
	resp, err := http.Post(srv.URL+"/services/oauth2/token", "application/json",
		bytes.NewBufferString(`{"username":"user@example.org"}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var tr tokenResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&tr))
	require.NotEmpty(t, tr.AccessToken)

	return srv, tr.AccessToken
}

func doAuthed(t *testing.T, token, method, url string, body []byte) *http.Response {
	t.Helper()
	var reader *bytes.Buffer
	if body != nil {
		reader = bytes.NewBuffer(body)
	} else {
		reader = &bytes.Buffer{}
	}
	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func createAccount(t *testing.T, srv *httptest.Server, token, name string) string {
	t.Helper()
	resp := doAuthed(t, token, http.MethodPost, srv.URL+"/services/data/v60.0/sobjects/Account",
		[]byte(fmt.Sprintf(`{"Name":%q}`, name)))
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var cr models.CreateResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&cr))
	require.True(t, cr.Success)
	require.NotEmpty(t, cr.ID)
	return cr.ID
}

func TestDataAPI_RequiresToken(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/services/data/v60.0/query?q=SELECT+Id+FROM+Account")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestDataAPI_RejectsForeignToken(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := doAuthed(t, "not-a-jwt", http.MethodGet, srv.URL+"/services/data/v60.0/query?q=SELECT+Id+FROM+Account", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestDataAPI_CreateQueryUpdateDelete(t *testing.T) {
	srv, token := newTestServer(t)

	id := createAccount(t, srv, token, "Acme")

	// query sees the record
	resp := doAuthed(t, token, http.MethodGet, srv.URL+"/services/data/v60.0/query?q=SELECT+Id,Name+FROM+Account", nil)
	var qr models.QueryResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&qr))
	resp.Body.Close()
	require.Equal(t, 1, qr.TotalSize)
	assert.True(t, qr.Done)
	assert.Equal(t, "Acme", qr.Records[0]["Name"])
	assert.NotEmpty(t, qr.Records[0][models.FieldLastModifiedDate])

	// update changes the field and bumps the stamp
	resp = doAuthed(t, token, http.MethodPatch, srv.URL+"/services/data/v60.0/sobjects/Account/"+id,
		[]byte(`{"Name":"Acme Corp"}`))
	resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = doAuthed(t, token, http.MethodGet, srv.URL+"/services/data/v60.0/query?q=SELECT+Id,Name+FROM+Account", nil)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&qr))
	resp.Body.Close()
	assert.Equal(t, "Acme Corp", qr.Records[0]["Name"])

	// delete removes it; a second delete is a 404
	resp = doAuthed(t, token, http.MethodDelete, srv.URL+"/services/data/v60.0/sobjects/Account/"+id, nil)
	resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = doAuthed(t, token, http.MethodDelete, srv.URL+"/services/data/v60.0/sobjects/Account/"+id, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDataAPI_UpdateMissingRecord(t *testing.T) {
	srv, token := newTestServer(t)

	resp := doAuthed(t, token, http.MethodPatch, srv.URL+"/services/data/v60.0/sobjects/Account/001missing",
		[]byte(`{"Name":"ghost"}`))
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDataAPI_QueryPagination(t *testing.T) {
	srv, token := newTestServer(t)

	total := queryPageSize + 3
	for i := 0; i < total; i++ {
		createAccount(t, srv, token, fmt.Sprintf("Account %04d", i))
	}

	resp := doAuthed(t, token, http.MethodGet, srv.URL+"/services/data/v60.0/query?q=SELECT+Id+FROM+Account", nil)
	var first models.QueryResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&first))
	resp.Body.Close()

	require.Equal(t, total, first.TotalSize)
	assert.False(t, first.Done)
	assert.Len(t, first.Records, queryPageSize)
	require.NotEmpty(t, first.NextRecordsURL)

	resp = doAuthed(t, token, http.MethodGet, srv.URL+first.NextRecordsURL, nil)
	var second models.QueryResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&second))
	resp.Body.Close()

	assert.True(t, second.Done)
	assert.Len(t, second.Records, 3)

	// the locator is single-use
	resp = doAuthed(t, token, http.MethodGet, srv.URL+first.NextRecordsURL, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDataAPI_QueryIdFilter(t *testing.T) {
	srv, token := newTestServer(t)

	wanted := createAccount(t, srv, token, "Wanted")
	createAccount(t, srv, token, "Unwanted")

	q := fmt.Sprintf("SELECT Id, Name FROM Account WHERE Id IN ('%s')", wanted)
	req, err := http.NewRequest(http.MethodGet, srv.URL+"/services/data/v60.0/query", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)
	query := req.URL.Query()
	query.Set("q", q)
	req.URL.RawQuery = query.Encode()

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var qr models.QueryResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&qr))
	require.Equal(t, 1, qr.TotalSize)
	assert.Equal(t, wanted, models.RecordID(qr.Records[0]))
}

func TestDataAPI_Search(t *testing.T) {
	srv, token := newTestServer(t)

	createAccount(t, srv, token, "Globex International")
	createAccount(t, srv, token, "Initech")

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/services/data/v60.0/search", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)
	query := req.URL.Query()
	query.Set("q", "FIND {globex} IN ALL FIELDS RETURNING Account(Id, Name)")
	req.URL.RawQuery = query.Encode()

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var sr models.SearchResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&sr))
	require.Len(t, sr.SearchRecords, 1)
	assert.Equal(t, "Globex International", sr.SearchRecords[0]["Name"])
}

func TestDataAPI_RecentItems(t *testing.T) {
	srv, token := newTestServer(t)

	first := createAccount(t, srv, token, "First")
	second := createAccount(t, srv, token, "Second")

	resp := doAuthed(t, token, http.MethodGet, srv.URL+"/services/data/v60.0/sobjects/Account", nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var rr models.RecentItemsResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&rr))
	require.Len(t, rr.RecentItems, 2)

	// newest first
	assert.Equal(t, second, models.RecordID(rr.RecentItems[0]))
	assert.Equal(t, first, models.RecordID(rr.RecentItems[1]))
}

func TestVersionEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/version")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestIssueToken_RequiresUsername(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Post(srv.URL+"/services/oauth2/token", "application/json",
		bytes.NewBufferString(`{}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
