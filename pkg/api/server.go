// Package api exposes the repository and the document renderer as a local JSON HTTP API.
package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/shunichi-ikebuchi/sppd/pkg/printer"
	"github.com/shunichi-ikebuchi/sppd/pkg/repository"
)

// maxBodyBytes limits request bodies, imports included.
const maxBodyBytes = 10 << 20

// Server routes API requests to the resource handlers.
type Server struct {
	router chi.Router
}

// NewServer creates the API server. A nil engine prints PDFs with FPDF.
func NewServer(repo *repository.Repository, engine printer.Engine) *Server {
	if engine == nil {
		engine = printer.NewFPDF()
	}

	orders := NewOrdersHandler(repo)
	lumpsum := NewLumpsumHandler(repo)
	receipts := NewReceiptsHandler(repo)
	settings := NewSettingsHandler(repo)
	data := NewDataHandler(repo)
	prints := NewPrintHandler(repo, engine)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Route("/api", func(r chi.Router) {
		r.Route("/sppd", func(r chi.Router) {
			r.Get("/", orders.List)
			r.Post("/", orders.Create)
			r.Get("/{id}", orders.Get)
			r.Put("/{id}", orders.Update)
			r.Delete("/{id}", orders.Delete)
			r.Get("/{id}/lumpsum", lumpsum.GetBySPPD)
		})

		r.Route("/lumpsum", func(r chi.Router) {
			r.Get("/", lumpsum.List)
			r.Post("/", lumpsum.Create)
			r.Get("/{id}", lumpsum.Get)
			r.Put("/{id}", lumpsum.Update)
			r.Delete("/{id}", lumpsum.Delete)
		})

		r.Route("/kuitansi", func(r chi.Router) {
			r.Get("/", receipts.List)
			r.Post("/", receipts.Create)
			r.Get("/{id}", receipts.Get)
			r.Put("/{id}", receipts.Update)
			r.Delete("/{id}", receipts.Delete)
		})

		r.Get("/settings", settings.Get)
		r.Put("/settings", settings.Put)

		r.Get("/stats", data.Stats)
		r.Get("/export", data.Export)
		r.Post("/import", data.Import)
		r.Delete("/data", data.Clear)

		r.Get("/print/{kind}/{id}", prints.Print)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	return &Server{router: r}
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// readBody reads a request body up to maxBodyBytes.
func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read request body: %w", err)
	}
	return body, nil
}

// decodePatch decodes an update body twice: into the patch, and over a copy
// of the current record so the merged result can be validated.
func decodePatch[T, P any](body []byte, current T) (merged T, patch P, err error) {
	if err := json.Unmarshal(body, &patch); err != nil {
		return merged, patch, err
	}
	merged = current
	if err := json.Unmarshal(body, &merged); err != nil {
		return merged, patch, err
	}
	return merged, patch, nil
}
