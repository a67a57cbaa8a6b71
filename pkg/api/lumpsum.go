package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shunichi-ikebuchi/sppd/pkg/models"
	"github.com/shunichi-ikebuchi/sppd/pkg/repository"
	"github.com/shunichi-ikebuchi/sppd/pkg/validation"
)

// LumpsumHandler handles lumpsum endpoints. Totals are always recomputed
// from the cost components before storing.
type LumpsumHandler struct {
	repo *repository.Repository
}

// NewLumpsumHandler creates a new LumpsumHandler.
func NewLumpsumHandler(repo *repository.Repository) *LumpsumHandler {
	return &LumpsumHandler{repo: repo}
}

// LumpsumListResponse represents the response for GET /api/lumpsum.
type LumpsumListResponse struct {
	Lumpsum []models.LumpsumEntry `json:"lumpsum"`
}

// LumpsumResponse wraps a single lumpsum entry.
type LumpsumResponse struct {
	Lumpsum models.LumpsumEntry `json:"lumpsum"`
}

// List handles GET /api/lumpsum.
func (h *LumpsumHandler) List(w http.ResponseWriter, r *http.Request) {
	entries := h.repo.AllLumpsum()
	if entries == nil {
		entries = []models.LumpsumEntry{}
	}
	writeJSON(w, http.StatusOK, LumpsumListResponse{Lumpsum: entries})
}

// Get handles GET /api/lumpsum/{id}.
func (h *LumpsumHandler) Get(w http.ResponseWriter, r *http.Request) {
	entry := h.repo.GetLumpsumByID(chi.URLParam(r, "id"))
	if entry == nil {
		writeJSONError(w, http.StatusNotFound, "not_found", "Lumpsum not found")
		return
	}
	writeJSON(w, http.StatusOK, LumpsumResponse{Lumpsum: *entry})
}

// GetBySPPD handles GET /api/sppd/{id}/lumpsum.
func (h *LumpsumHandler) GetBySPPD(w http.ResponseWriter, r *http.Request) {
	entry := h.repo.GetLumpsumBySPPD(chi.URLParam(r, "id"))
	if entry == nil {
		writeJSONError(w, http.StatusNotFound, "not_found", "Lumpsum not found")
		return
	}
	writeJSON(w, http.StatusOK, LumpsumResponse{Lumpsum: *entry})
}

// Create handles POST /api/lumpsum.
func (h *LumpsumHandler) Create(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	var entry models.LumpsumEntry
	if err := json.Unmarshal(body, &entry); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON")
		return
	}
	if err := validation.Lumpsum(entry); err != nil {
		writeValidationError(w, err)
		return
	}
	if h.repo.GetSPPDByID(entry.SPPDID) == nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_parameter", "Referenced SPPD does not exist")
		return
	}

	saved, err := h.repo.SaveLumpsum(entry.WithComputedTotal())
	if err != nil {
		slog.Error("failed to save lumpsum", "error", err)
		writeJSONError(w, storeErrorStatus(err), "server_error", err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, LumpsumResponse{Lumpsum: *saved})
}

// Update handles PUT /api/lumpsum/{id}.
func (h *LumpsumHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	current := h.repo.GetLumpsumByID(id)
	if current == nil {
		writeJSONError(w, http.StatusNotFound, "not_found", "Lumpsum not found")
		return
	}

	body, err := readBody(w, r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	merged, patch, err := decodePatch[models.LumpsumEntry, models.LumpsumPatch](body, *current)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON")
		return
	}
	if err := validation.Lumpsum(merged); err != nil {
		writeValidationError(w, err)
		return
	}
	total := merged.WithComputedTotal().Total
	patch.Total = &total

	updated, err := h.repo.UpdateLumpsum(id, patch)
	if err != nil {
		slog.Error("failed to update lumpsum", "id", id, "error", err)
		writeJSONError(w, storeErrorStatus(err), "server_error", err.Error())
		return
	}
	if updated == nil {
		writeJSONError(w, http.StatusNotFound, "not_found", "Lumpsum not found")
		return
	}
	writeJSON(w, http.StatusOK, LumpsumResponse{Lumpsum: *updated})
}

// Delete handles DELETE /api/lumpsum/{id}.
func (h *LumpsumHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.repo.DeleteLumpsum(id); err != nil {
		slog.Error("failed to delete lumpsum", "id", id, "error", err)
		writeJSONError(w, storeErrorStatus(err), "server_error", err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
