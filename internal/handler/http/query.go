// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Viktor Martynenko

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vmartynenko/go-soupsync/internal/logger"
	"github.com/vmartynenko/go-soupsync/models"
)

func (h *Handler) query(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	soql := r.URL.Query().Get("q")
	if soql == "" {
		http.Error(w, "missing q parameter", http.StatusBadRequest)
		return
	}

	resp, err := h.objects.query(soql)
	if err != nil {
		log.Err(err).Msg("query rejected")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, h.withContinuationURL(r, resp))
}

func (h *Handler) queryMore(w http.ResponseWriter, r *http.Request) {
	locator := chi.URLParam(r, "locator")

	resp, ok := h.objects.queryMore(locator)
	if !ok {
		http.Error(w, "unknown query locator", http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, h.withContinuationURL(r, resp))
}

func (h *Handler) search(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	sosl := r.URL.Query().Get("q")
	if sosl == "" {
		http.Error(w, "missing q parameter", http.StatusBadRequest)
		return
	}

	records, err := h.objects.search(sosl)
	if err != nil {
		log.Err(err).Msg("search rejected")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, models.SearchResponse{SearchRecords: records})
}

// withContinuationURL rewrites the bare locator the object store leaves in
// NextRecordsURL into the full versioned continuation path the client GETs.
func (h *Handler) withContinuationURL(r *http.Request, resp models.QueryResponse) models.QueryResponse {
	if resp.NextRecordsURL != "" {
		apiVersion := chi.URLParam(r, "apiVersion")
		resp.NextRecordsURL = "/services/data/v" + apiVersion + "/query/" + resp.NextRecordsURL
	}
	return resp
}
