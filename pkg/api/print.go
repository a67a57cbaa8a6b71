package api

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shunichi-ikebuchi/sppd/pkg/printer"
	"github.com/shunichi-ikebuchi/sppd/pkg/renderer"
	"github.com/shunichi-ikebuchi/sppd/pkg/repository"
)

// PrintHandler serves printable documents.
type PrintHandler struct {
	repo   *repository.Repository
	engine printer.Engine
}

// NewPrintHandler creates a new PrintHandler.
func NewPrintHandler(repo *repository.Repository, engine printer.Engine) *PrintHandler {
	return &PrintHandler{repo: repo, engine: engine}
}

// Print handles GET /api/print/{kind}/{id}.
// format is html (default), md or pdf.
func (h *PrintHandler) Print(w http.ResponseWriter, r *http.Request) {
	kind, err := renderer.ParseKind(chi.URLParam(r, "kind"))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_parameter", err.Error())
		return
	}

	doc, err := renderer.Preview(h.repo, kind, chi.URLParam(r, "id"))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_parameter", err.Error())
		return
	}
	if doc == nil {
		writeJSONError(w, http.StatusNotFound, "not_found", "Document not found")
		return
	}

	switch format := r.URL.Query().Get("format"); format {
	case "", "html":
		page, err := renderer.HTML(doc)
		if err != nil {
			slog.Error("failed to render HTML", "kind", kind, "error", err)
			writeJSONError(w, http.StatusInternalServerError, "server_error", err.Error())
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(page)

	case "md", "markdown":
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(renderer.Markdown(doc)))

	case "pdf":
		pdf, err := h.engine.Render(r.Context(), doc)
		if err != nil {
			slog.Error("failed to render PDF", "kind", kind, "error", err)
			writeJSONError(w, http.StatusInternalServerError, "server_error", err.Error())
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", doc.Filename("pdf")))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(pdf)

	default:
		writeJSONError(w, http.StatusBadRequest, "invalid_parameter", "format must be html, md or pdf")
	}
}
