// Package printer turns assembled documents into PDF files.
package printer

import (
	"context"
	"fmt"

	"github.com/shunichi-ikebuchi/sppd/pkg/renderer"
)

// Engine renders a document to PDF bytes.
type Engine interface {
	Render(ctx context.Context, doc *renderer.Document) ([]byte, error)
}

// Engine names accepted by New.
const (
	EngineFPDF   = "fpdf"
	EngineChrome = "chrome"
)

// New returns the engine with the given name. An empty name selects FPDF.
func New(name string) (Engine, error) {
	switch name {
	case "", EngineFPDF:
		return NewFPDF(), nil
	case EngineChrome:
		return NewChrome(), nil
	}
	return nil, fmt.Errorf("unknown PDF engine %q", name)
}
