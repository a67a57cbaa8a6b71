package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/shunichi-ikebuchi/sppd/pkg/storage"
	"github.com/shunichi-ikebuchi/sppd/pkg/validation"
)

// ErrorResponse represents an API error response.
type ErrorResponse struct {
	Error            string                  `json:"error"`
	ErrorDescription string                  `json:"error_description,omitempty"`
	Fields           []validation.FieldError `json:"fields,omitempty"`
}

// writeJSON writes v as a JSON response.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeJSONError writes a JSON error response.
func writeJSONError(w http.ResponseWriter, status int, error, description string) {
	writeJSON(w, status, ErrorResponse{
		Error:            error,
		ErrorDescription: description,
	})
}

// writeValidationError writes a 400 response listing the invalid fields of err.
func writeValidationError(w http.ResponseWriter, err error) {
	resp := ErrorResponse{
		Error:            "invalid_parameter",
		ErrorDescription: err.Error(),
	}
	var verr *validation.Error
	if errors.As(err, &verr) {
		resp.Fields = verr.Fields
	}
	writeJSON(w, http.StatusBadRequest, resp)
}

// storeErrorStatus maps a repository write error to an HTTP status.
func storeErrorStatus(err error) int {
	if errors.Is(err, storage.ErrQuotaExceeded) {
		return http.StatusInsufficientStorage
	}
	return http.StatusInternalServerError
}
