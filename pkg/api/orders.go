package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"regexp"

	"github.com/go-chi/chi/v5"
	"github.com/shunichi-ikebuchi/sppd/pkg/models"
	"github.com/shunichi-ikebuchi/sppd/pkg/repository"
	"github.com/shunichi-ikebuchi/sppd/pkg/validation"
)

var monthPattern = regexp.MustCompile(`^\d{4}-\d{2}$`)

// OrdersHandler handles travel order endpoints.
type OrdersHandler struct {
	repo *repository.Repository
}

// NewOrdersHandler creates a new OrdersHandler.
func NewOrdersHandler(repo *repository.Repository) *OrdersHandler {
	return &OrdersHandler{repo: repo}
}

// OrdersListResponse represents the response for GET /api/sppd.
type OrdersListResponse struct {
	SPPD []models.TravelOrder `json:"sppd"`
}

// OrderResponse wraps a single travel order.
type OrderResponse struct {
	SPPD models.TravelOrder `json:"sppd"`
}

// List handles GET /api/sppd, newest issue date first.
// An optional month=YYYY-MM narrows the list to one month.
func (h *OrdersHandler) List(w http.ResponseWriter, r *http.Request) {
	month := r.URL.Query().Get("month")
	if month != "" && !monthPattern.MatchString(month) {
		writeJSONError(w, http.StatusBadRequest, "invalid_parameter", "month must be YYYY-MM")
		return
	}

	orders := h.repo.ListSPPD(month)
	if orders == nil {
		orders = []models.TravelOrder{}
	}
	writeJSON(w, http.StatusOK, OrdersListResponse{SPPD: orders})
}

// Get handles GET /api/sppd/{id}.
func (h *OrdersHandler) Get(w http.ResponseWriter, r *http.Request) {
	order := h.repo.GetSPPDByID(chi.URLParam(r, "id"))
	if order == nil {
		writeJSONError(w, http.StatusNotFound, "not_found", "SPPD not found")
		return
	}
	writeJSON(w, http.StatusOK, OrderResponse{SPPD: *order})
}

// Create handles POST /api/sppd.
func (h *OrdersHandler) Create(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	var order models.TravelOrder
	if err := json.Unmarshal(body, &order); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON")
		return
	}
	if err := validation.Order(order); err != nil {
		writeValidationError(w, err)
		return
	}

	saved, err := h.repo.SaveSPPD(order)
	if err != nil {
		slog.Error("failed to save SPPD", "error", err)
		writeJSONError(w, storeErrorStatus(err), "server_error", err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, OrderResponse{SPPD: *saved})
}

// Update handles PUT /api/sppd/{id}. Only the fields present in the body change.
func (h *OrdersHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	current := h.repo.GetSPPDByID(id)
	if current == nil {
		writeJSONError(w, http.StatusNotFound, "not_found", "SPPD not found")
		return
	}

	body, err := readBody(w, r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	merged, patch, err := decodePatch[models.TravelOrder, models.TravelOrderPatch](body, *current)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON")
		return
	}
	if err := validation.Order(merged); err != nil {
		writeValidationError(w, err)
		return
	}

	updated, err := h.repo.UpdateSPPD(id, patch)
	if err != nil {
		slog.Error("failed to update SPPD", "id", id, "error", err)
		writeJSONError(w, storeErrorStatus(err), "server_error", err.Error())
		return
	}
	if updated == nil {
		writeJSONError(w, http.StatusNotFound, "not_found", "SPPD not found")
		return
	}
	writeJSON(w, http.StatusOK, OrderResponse{SPPD: *updated})
}

// Delete handles DELETE /api/sppd/{id}. Lumpsum entries of the order go with it.
func (h *OrdersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.repo.DeleteSPPD(id); err != nil {
		slog.Error("failed to delete SPPD", "id", id, "error", err)
		writeJSONError(w, storeErrorStatus(err), "server_error", err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
