// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Viktor Martynenko

package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vmartynenko/go-soupsync/internal/logger"
	"github.com/vmartynenko/go-soupsync/models"
)

func (h *Handler) recentItems(w http.ResponseWriter, r *http.Request) {
	objectType := chi.URLParam(r, "objectType")

	items := make([]models.Record, 0)
	for _, id := range h.objects.recentIDs(objectType) {
		if rec, ok := h.objects.get(objectType, id); ok {
			items = append(items, models.Record{
				models.FieldID: models.RecordID(rec),
				"attributes":   map[string]any{"type": objectType},
			})
		}
	}

	writeJSON(w, http.StatusOK, models.RecentItemsResponse{RecentItems: items})
}

func (h *Handler) createObject(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	objectType := chi.URLParam(r, "objectType")

	var fields models.Record
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	rec := h.objects.create(objectType, fields)
	log.Debug().Str("object", objectType).Str("id", models.RecordID(rec)).Msg("object created")

	writeJSON(w, http.StatusCreated, models.CreateResponse{
		ID:      models.RecordID(rec),
		Success: true,
	})
}

func (h *Handler) updateObject(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	objectType := chi.URLParam(r, "objectType")
	id := chi.URLParam(r, "id")

	var fields models.Record
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if !h.objects.update(objectType, id, fields) {
		http.Error(w, "record not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) deleteObject(w http.ResponseWriter, r *http.Request) {
	objectType := chi.URLParam(r, "objectType")
	id := chi.URLParam(r, "id")

	if !h.objects.delete(objectType, id) {
		http.Error(w, "record not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
