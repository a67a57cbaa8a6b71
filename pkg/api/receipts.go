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

// ReceiptsHandler handles kuitansi endpoints.
type ReceiptsHandler struct {
	repo *repository.Repository
}

// NewReceiptsHandler creates a new ReceiptsHandler.
func NewReceiptsHandler(repo *repository.Repository) *ReceiptsHandler {
	return &ReceiptsHandler{repo: repo}
}

// ReceiptsListResponse represents the response for GET /api/kuitansi.
type ReceiptsListResponse struct {
	Kuitansi []models.Receipt `json:"kuitansi"`
}

// ReceiptResponse wraps a single receipt.
type ReceiptResponse struct {
	Kuitansi models.Receipt `json:"kuitansi"`
}

// List handles GET /api/kuitansi.
func (h *ReceiptsHandler) List(w http.ResponseWriter, r *http.Request) {
	receipts := h.repo.AllKuitansi()
	if receipts == nil {
		receipts = []models.Receipt{}
	}
	writeJSON(w, http.StatusOK, ReceiptsListResponse{Kuitansi: receipts})
}

// Get handles GET /api/kuitansi/{id}.
func (h *ReceiptsHandler) Get(w http.ResponseWriter, r *http.Request) {
	receipt := h.repo.GetKuitansiByID(chi.URLParam(r, "id"))
	if receipt == nil {
		writeJSONError(w, http.StatusNotFound, "not_found", "Kuitansi not found")
		return
	}
	writeJSON(w, http.StatusOK, ReceiptResponse{Kuitansi: *receipt})
}

// Create handles POST /api/kuitansi.
func (h *ReceiptsHandler) Create(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	var receipt models.Receipt
	if err := json.Unmarshal(body, &receipt); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON")
		return
	}
	if err := validation.Receipt(receipt); err != nil {
		writeValidationError(w, err)
		return
	}

	saved, err := h.repo.SaveKuitansi(receipt)
	if err != nil {
		slog.Error("failed to save kuitansi", "error", err)
		writeJSONError(w, storeErrorStatus(err), "server_error", err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, ReceiptResponse{Kuitansi: *saved})
}

// Update handles PUT /api/kuitansi/{id}.
func (h *ReceiptsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	current := h.repo.GetKuitansiByID(id)
	if current == nil {
		writeJSONError(w, http.StatusNotFound, "not_found", "Kuitansi not found")
		return
	}

	body, err := readBody(w, r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	merged, patch, err := decodePatch[models.Receipt, models.ReceiptPatch](body, *current)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON")
		return
	}
	if err := validation.Receipt(merged); err != nil {
		writeValidationError(w, err)
		return
	}

	updated, err := h.repo.UpdateKuitansi(id, patch)
	if err != nil {
		slog.Error("failed to update kuitansi", "id", id, "error", err)
		writeJSONError(w, storeErrorStatus(err), "server_error", err.Error())
		return
	}
	if updated == nil {
		writeJSONError(w, http.StatusNotFound, "not_found", "Kuitansi not found")
		return
	}
	writeJSON(w, http.StatusOK, ReceiptResponse{Kuitansi: *updated})
}

// Delete handles DELETE /api/kuitansi/{id}.
func (h *ReceiptsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.repo.DeleteKuitansi(id); err != nil {
		slog.Error("failed to delete kuitansi", "id", id, "error", err)
		writeJSONError(w, storeErrorStatus(err), "server_error", err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
