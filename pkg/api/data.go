package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/shunichi-ikebuchi/sppd/pkg/models"
	"github.com/shunichi-ikebuchi/sppd/pkg/pathutil"
	"github.com/shunichi-ikebuchi/sppd/pkg/repository"
	"github.com/shunichi-ikebuchi/sppd/pkg/validation"
)

// SettingsHandler handles the institution settings endpoints.
type SettingsHandler struct {
	repo *repository.Repository
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(repo *repository.Repository) *SettingsHandler {
	return &SettingsHandler{repo: repo}
}

// SettingsResponse wraps the institution settings.
type SettingsResponse struct {
	Settings models.Settings `json:"settings"`
}

// Get handles GET /api/settings. Defaults are returned when nothing is stored.
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, SettingsResponse{Settings: h.repo.GetSettings()})
}

// Put handles PUT /api/settings. The body replaces the stored settings.
func (h *SettingsHandler) Put(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	var settings models.Settings
	if err := json.Unmarshal(body, &settings); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON")
		return
	}
	if err := validation.Settings(settings); err != nil {
		writeValidationError(w, err)
		return
	}

	if err := h.repo.SaveSettings(settings); err != nil {
		slog.Error("failed to save settings", "error", err)
		writeJSONError(w, storeErrorStatus(err), "server_error", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, SettingsResponse{Settings: settings})
}

// DataHandler handles backup, restore, reset and statistics endpoints.
type DataHandler struct {
	repo *repository.Repository
	now  func() time.Time
}

// NewDataHandler creates a new DataHandler.
func NewDataHandler(repo *repository.Repository) *DataHandler {
	return &DataHandler{repo: repo, now: time.Now}
}

// StatsResponse wraps the dashboard statistics.
type StatsResponse struct {
	Stats models.Stats `json:"stats"`
}

// Stats handles GET /api/stats.
func (h *DataHandler) Stats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, StatsResponse{Stats: h.repo.GetStats()})
}

// Export handles GET /api/export as a downloadable backup file.
func (h *DataHandler) Export(w http.ResponseWriter, r *http.Request) {
	data, err := h.repo.ExportJSON()
	if err != nil {
		slog.Error("failed to export data", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "server_error", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", pathutil.BackupFileName(h.now())))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// Import handles POST /api/import. A malformed backup leaves the store untouched.
func (h *DataHandler) Import(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	if err := h.repo.ImportJSON(body); err != nil {
		if errors.Is(err, repository.ErrInvalidImport) {
			writeJSONError(w, http.StatusBadRequest, "invalid_import", err.Error())
			return
		}
		slog.Error("failed to import data", "error", err)
		writeJSONError(w, storeErrorStatus(err), "server_error", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, StatsResponse{Stats: h.repo.GetStats()})
}

// Clear handles DELETE /api/data.
func (h *DataHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.repo.ClearAll(); err != nil {
		slog.Error("failed to clear data", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "server_error", err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
