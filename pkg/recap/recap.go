// Package recap builds the spreadsheet summary of all stored travel orders,
// lumpsum entries and receipts.
package recap

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/shunichi-ikebuchi/sppd/pkg/models"
	"github.com/shunichi-ikebuchi/sppd/pkg/renderer"
	"github.com/xuri/excelize/v2"
)

// Sheet names.
const (
	SheetSPPD     = "SPPD"
	SheetLumpsum  = "Lumpsum"
	SheetKuitansi = "Kuitansi"
)

// HeaderRow is the row holding the column titles. Data starts on the next row.
const HeaderRow = 3

// numFmtThousands is the built-in "#,##0" number format.
const numFmtThousands = 3

var (
	orderColumns = []string{
		"No", "Nomor", "Tanggal", "Nama", "NIP", "Pangkat/Golongan", "Jabatan",
		"Maksud", "Tujuan", "Berangkat", "Kembali", "Transportasi", "Anggaran",
	}
	lumpsumColumns = []string{
		"No", "SPPD Nomor", "Nama", "Hari", "Uang Harian", "Transport", "Malam",
		"Penginapan", "Representasi", "Lain-lain", "Total",
	}
	receiptColumns = []string{
		"No", "Nomor", "Tanggal", "Penerima", "Keperluan", "SPPD Nomor", "Jumlah",
	}
)

type sheetWriter struct {
	f      *excelize.File
	name   string
	row    int
	bold   int
	amount int
}

// Build creates the recap workbook. Lumpsum totals are recomputed from their
// components. The caller closes the returned file.
func Build(orders []models.TravelOrder, lumpsums []models.LumpsumEntry, receipts []models.Receipt, settings models.Settings) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetSPPD); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}

	if err := build(f, orders, lumpsums, receipts, settings); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

func build(f *excelize.File, orders []models.TravelOrder, lumpsums []models.LumpsumEntry, receipts []models.Receipt, settings models.Settings) error {
	for _, name := range []string{SheetLumpsum, SheetKuitansi} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("failed to create sheet %s: %w", name, err)
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create style: %w", err)
	}
	amount, err := f.NewStyle(&excelize.Style{NumFmt: numFmtThousands})
	if err != nil {
		return fmt.Errorf("failed to create style: %w", err)
	}

	byID := make(map[string]models.TravelOrder, len(orders))
	for _, o := range orders {
		byID[o.ID] = o
	}
	orderNumber := func(id string) string {
		if o, ok := byID[id]; ok && o.Nomor != "" {
			return o.Nomor
		}
		return renderer.Placeholder
	}

	// SPPD
	w := &sheetWriter{f: f, name: SheetSPPD, bold: bold, amount: amount}
	if err := w.header(settings, "Rekap Surat Perintah Perjalanan Dinas", orderColumns); err != nil {
		return err
	}
	for i, o := range orders {
		if err := w.append(i+1, o.Nomor, o.Tanggal, o.Nama, o.NIP, o.Pangkat, o.Jabatan,
			o.Maksud, o.Tujuan, o.TglBerangkat, o.TglKembali, o.Transportasi, o.Anggaran); err != nil {
			return err
		}
	}

	// Lumpsum
	w = &sheetWriter{f: f, name: SheetLumpsum, bold: bold, amount: amount}
	if err := w.header(settings, "Rekap Rincian Biaya Perjalanan Dinas", lumpsumColumns); err != nil {
		return err
	}
	lumpsumTotal := decimal.Zero
	for i, l := range lumpsums {
		total := renderer.LumpsumTotal(l)
		lumpsumTotal = lumpsumTotal.Add(total)
		name := renderer.Placeholder
		if o, ok := byID[l.SPPDID]; ok {
			name = o.Nama
		}
		if err := w.append(i+1, orderNumber(l.SPPDID), name, l.Hari, l.UangHarian, l.Transport,
			l.Malam, l.Penginapan, l.Representasi, l.Lainnya, total.InexactFloat64()); err != nil {
			return err
		}
	}
	if err := w.total(len(lumpsumColumns), lumpsumTotal); err != nil {
		return err
	}
	if err := w.formatAmounts("E", "K"); err != nil {
		return err
	}

	// Kuitansi
	w = &sheetWriter{f: f, name: SheetKuitansi, bold: bold, amount: amount}
	if err := w.header(settings, "Rekap Kuitansi", receiptColumns); err != nil {
		return err
	}
	receiptTotal := decimal.Zero
	for i, r := range receipts {
		receiptTotal = receiptTotal.Add(models.Amount(r.Jumlah))
		ref := ""
		if id := r.OrderID(); id != "" {
			ref = orderNumber(id)
		}
		if err := w.append(i+1, r.Nomor, r.Tanggal, r.Penerima, r.Keperluan, ref, r.Jumlah); err != nil {
			return err
		}
	}
	if err := w.total(len(receiptColumns), receiptTotal); err != nil {
		return err
	}
	return w.formatAmounts("G", "G")
}

// header writes the institution, the sheet title and the column titles.
func (w *sheetWriter) header(settings models.Settings, title string, columns []string) error {
	if err := w.f.SetCellValue(w.name, "A1", settings.Instansi); err != nil {
		return fmt.Errorf("failed to write %s header: %w", w.name, err)
	}
	if err := w.f.SetCellValue(w.name, "A2", title); err != nil {
		return fmt.Errorf("failed to write %s header: %w", w.name, err)
	}

	w.row = HeaderRow
	cells := make([]any, len(columns))
	for i, c := range columns {
		cells[i] = c
	}
	if err := w.f.SetSheetRow(w.name, cell(1, w.row), &cells); err != nil {
		return fmt.Errorf("failed to write %s header: %w", w.name, err)
	}
	if err := w.f.SetCellStyle(w.name, "A1", cell(len(columns), w.row), w.bold); err != nil {
		return fmt.Errorf("failed to style %s header: %w", w.name, err)
	}

	last, _ := excelize.ColumnNumberToName(len(columns))
	if err := w.f.SetColWidth(w.name, "B", last, 18); err != nil {
		return fmt.Errorf("failed to size %s columns: %w", w.name, err)
	}
	return nil
}

func (w *sheetWriter) append(values ...any) error {
	w.row++
	if err := w.f.SetSheetRow(w.name, cell(1, w.row), &values); err != nil {
		return fmt.Errorf("failed to write %s row %d: %w", w.name, w.row, err)
	}
	return nil
}

// total writes a bold TOTAL row with the sum in the last column.
func (w *sheetWriter) total(columns int, sum decimal.Decimal) error {
	w.row++
	if err := w.f.SetCellValue(w.name, cell(1, w.row), "TOTAL"); err != nil {
		return fmt.Errorf("failed to write %s total: %w", w.name, err)
	}
	if err := w.f.SetCellValue(w.name, cell(columns, w.row), sum.InexactFloat64()); err != nil {
		return fmt.Errorf("failed to write %s total: %w", w.name, err)
	}
	if err := w.f.SetCellStyle(w.name, cell(1, w.row), cell(columns, w.row), w.bold); err != nil {
		return fmt.Errorf("failed to style %s total: %w", w.name, err)
	}
	return nil
}

// formatAmounts applies the thousands format to the data rows of columns from..to.
func (w *sheetWriter) formatAmounts(from, to string) error {
	if w.row <= HeaderRow+1 {
		return nil
	}
	first := fmt.Sprintf("%s%d", from, HeaderRow+1)
	last := fmt.Sprintf("%s%d", to, w.row-1)
	if err := w.f.SetCellStyle(w.name, first, last, w.amount); err != nil {
		return fmt.Errorf("failed to format %s amounts: %w", w.name, err)
	}
	return nil
}

func cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}
