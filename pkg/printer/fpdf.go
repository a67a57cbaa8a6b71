package printer

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"codeberg.org/go-pdf/fpdf"
	"github.com/shunichi-ikebuchi/sppd/pkg/renderer"
)

const (
	fontFamily = "Times"
	lineHeight = 6.0
)

// costColumns are the widths in mm of the cost table columns.
var costColumns = []float64{10, 60, 30, 35, 35}

// FPDF lays documents out on A4 paper with the core Times font. It needs no
// external tools.
type FPDF struct {
	Margin float64 // page margin in mm
}

// NewFPDF returns an FPDF engine with 20 mm margins.
func NewFPDF() *FPDF {
	return &FPDF{Margin: 20}
}

// Render lays doc out and returns the PDF bytes.
func (f *FPDF) Render(ctx context.Context, doc *renderer.Document) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(f.Margin, f.Margin, f.Margin)
	pdf.SetAutoPageBreak(true, f.Margin)
	pdf.SetTitle(doc.Title, true)
	pdf.SetCreator("sppd", true)
	pdf.AddPage()

	pageWidth, _ := pdf.GetPageSize()
	l := &layout{
		pdf:   pdf,
		tr:    pdf.UnicodeTranslatorFromDescriptor(""),
		left:  f.Margin,
		width: pageWidth - 2*f.Margin,
	}

	if doc.Letterhead != nil {
		l.letterhead(doc.Letterhead)
	}
	l.title(doc.Title, doc.Number)
	l.fields(doc)
	if doc.Costs != nil {
		l.costs(doc.Costs)
	}
	if doc.InWords != "" {
		l.pdf.SetFont(fontFamily, "I", 12)
		l.pdf.MultiCell(l.width, lineHeight, l.tr("Terbilang: "+doc.InWords), "", "L", false)
	}
	if doc.Amount != "" {
		l.amountBox(doc.Amount)
	}
	l.notes(doc.Notes)
	l.signatures(doc.Signatures)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to write PDF: %w", err)
	}
	return buf.Bytes(), nil
}

type layout struct {
	pdf   *fpdf.Fpdf
	tr    func(string) string
	left  float64
	width float64
}

func (l *layout) line(text, style string, size float64, align string) {
	l.pdf.SetFont(fontFamily, style, size)
	l.pdf.CellFormat(l.width, lineHeight, l.tr(text), "", 1, align, false, 0, "")
}

func (l *layout) letterhead(lh *renderer.Letterhead) {
	l.line(strings.ToUpper(lh.Institution), "B", 14, "C")
	l.line(lh.Address, "", 10, "C")

	y := l.pdf.GetY() + 2
	l.pdf.SetLineWidth(0.6)
	l.pdf.Line(l.left, y, l.left+l.width, y)
	l.pdf.SetLineWidth(0.2)
	l.pdf.Line(l.left, y+1, l.left+l.width, y+1)
	l.pdf.SetY(y + 6)
}

func (l *layout) title(title, number string) {
	l.pdf.Ln(4)
	l.line(title, "BU", 14, "C")
	l.line(number, "", 12, "C")
	l.pdf.Ln(6)
}

func (l *layout) fields(doc *renderer.Document) {
	labelWidth := 45.0
	switch doc.Kind {
	case renderer.KindOrder:
		labelWidth = 80
	case renderer.KindLumpsum:
		labelWidth = 25
	}

	l.pdf.SetFont(fontFamily, "", 12)
	for _, f := range doc.Fields {
		l.pdf.SetX(l.left)
		l.pdf.CellFormat(labelWidth, lineHeight, l.tr(f.Label), "", 0, "L", false, 0, "")
		l.pdf.CellFormat(5, lineHeight, ":", "", 0, "C", false, 0, "")
		l.pdf.MultiCell(l.width-labelWidth-5, lineHeight, l.tr(f.Value), "", "L", false)
	}
	if len(doc.Fields) > 0 {
		l.pdf.Ln(4)
	}
}

func (l *layout) costs(table *renderer.CostTable) {
	header := []string{"No", "Uraian", "Qty", "Satuan (Rp)", "Jumlah (Rp)"}
	aligns := []string{"C", "L", "L", "R", "R"}

	l.pdf.SetFont(fontFamily, "B", 11)
	l.pdf.SetFillColor(240, 240, 240)
	for i, h := range header {
		l.pdf.CellFormat(costColumns[i], 7, h, "1", 0, aligns[i], true, 0, "")
	}
	l.pdf.Ln(-1)

	l.pdf.SetFont(fontFamily, "", 11)
	for _, r := range table.Rows {
		cells := []string{fmt.Sprint(r.No), r.Description, r.Quantity, r.UnitPrice, r.Amount}
		for i, c := range cells {
			l.pdf.CellFormat(costColumns[i], 7, l.tr(c), "1", 0, aligns[i], false, 0, "")
		}
		l.pdf.Ln(-1)
	}

	var labelWidth float64
	for _, w := range costColumns[:len(costColumns)-1] {
		labelWidth += w
	}
	l.pdf.SetFont(fontFamily, "B", 11)
	l.pdf.CellFormat(labelWidth, 7, "TOTAL", "1", 0, "R", false, 0, "")
	l.pdf.CellFormat(costColumns[len(costColumns)-1], 7, renderer.FormatRupiah(table.Total), "1", 1, "R", false, 0, "")
	l.pdf.Ln(4)
}

func (l *layout) amountBox(amount string) {
	l.pdf.Ln(6)
	l.pdf.SetFont(fontFamily, "B", 16)
	l.pdf.SetX(l.left + l.width/4)
	l.pdf.CellFormat(l.width/2, 12, l.tr(amount), "1", 1, "C", false, 0, "")
	l.pdf.Ln(6)
}

func (l *layout) notes(notes []string) {
	if len(notes) == 0 {
		return
	}
	l.pdf.Ln(4)
	for _, n := range notes {
		l.line(n, "", 12, "L")
	}
}

// signatures places up to two blocks side by side. A single block goes on the right.
func (l *layout) signatures(sigs []renderer.Signature) {
	if len(sigs) == 0 {
		return
	}
	l.pdf.Ln(10)

	colWidth := l.width / 2
	top := l.pdf.GetY()
	bottom := top
	offset := 2 - min(len(sigs), 2)

	for i, sig := range sigs[:min(len(sigs), 2)] {
		x := l.left + colWidth*float64(i+offset)
		y := top
		cell := func(text, style string) {
			l.pdf.SetFont(fontFamily, style, 12)
			l.pdf.SetXY(x, y)
			l.pdf.CellFormat(colWidth, lineHeight, l.tr(text), "", 0, "C", false, 0, "")
			y += lineHeight
		}

		for _, h := range sig.Heading {
			cell(h, "")
		}
		y += 20
		cell(sig.Name, "BU")
		if sig.Footer != "" {
			cell(sig.Footer, "")
		}
		bottom = max(bottom, y)
	}
	l.pdf.SetY(bottom)
}
