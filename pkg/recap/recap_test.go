package recap

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shunichi-ikebuchi/sppd/pkg/models"
	"github.com/xuri/excelize/v2"
)

func TestBuild(t *testing.T) {
	ref := "id_order"
	dangling := "id_gone"
	orders := []models.TravelOrder{{ID: ref, Nomor: "090/1/2024", Nama: "Budi", Tanggal: "2024-03-15"}}
	lumpsums := []models.LumpsumEntry{
		{SPPDID: ref, Hari: 3, UangHarian: 100000, Transport: 50000, Penginapan: 80000, Malam: 2, Total: 1},
		{SPPDID: "id_gone", Transport: 40000},
	}
	receipts := []models.Receipt{
		{Nomor: "KW-1", SPPDID: &ref, Jumlah: 250000},
		{Nomor: "KW-2", SPPDID: &dangling, Jumlah: 1000},
		{Nomor: "KW-3", Jumlah: 500},
	}

	f, err := Build(orders, lumpsums, receipts, models.Settings{Instansi: "DINAS"})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	defer f.Close()

	if diff := cmp.Diff([]string{SheetSPPD, SheetLumpsum, SheetKuitansi}, f.GetSheetList()); diff != "" {
		t.Errorf("sheets mismatch (-expected +got):\n%s", diff)
	}

	raw := excelize.Options{RawCellValue: true}

	rows, err := f.GetRows(SheetSPPD, raw)
	if err != nil {
		t.Fatalf("GetRows(SPPD) error = %v", err)
	}
	if rows[0][0] != "DINAS" {
		t.Errorf("A1 = %q, expected institution", rows[0][0])
	}
	if rows[HeaderRow-1][1] != "Nomor" || rows[HeaderRow][1] != "090/1/2024" {
		t.Errorf("SPPD rows = %v", rows)
	}

	rows, err = f.GetRows(SheetLumpsum, raw)
	if err != nil {
		t.Fatalf("GetRows(Lumpsum) error = %v", err)
	}
	first := rows[HeaderRow]
	if first[1] != "090/1/2024" || first[2] != "Budi" || first[10] != "510000" {
		t.Errorf("first lumpsum row = %v", first)
	}
	second := rows[HeaderRow+1]
	if second[1] != "-" || second[10] != "40000" {
		t.Errorf("second lumpsum row = %v", second)
	}
	total := rows[HeaderRow+2]
	if total[0] != "TOTAL" || total[10] != "550000" {
		t.Errorf("lumpsum total row = %v", total)
	}

	rows, err = f.GetRows(SheetKuitansi, raw)
	if err != nil {
		t.Fatalf("GetRows(Kuitansi) error = %v", err)
	}
	refs := []string{rows[HeaderRow][5], rows[HeaderRow+1][5]}
	if diff := cmp.Diff([]string{"090/1/2024", "-"}, refs); diff != "" {
		t.Errorf("receipt order references mismatch (-expected +got):\n%s", diff)
	}
	if got := rows[HeaderRow+3]; got[0] != "TOTAL" || got[6] != "251500" {
		t.Errorf("receipt total row = %v", got)
	}
}

func TestBuildEmpty(t *testing.T) {
	f, err := Build(nil, nil, nil, models.DefaultSettings())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(SheetLumpsum)
	if err != nil {
		t.Fatalf("GetRows() error = %v", err)
	}
	if len(rows) != HeaderRow+1 {
		t.Errorf("len(rows) = %d, expected header and total only", len(rows))
	}
}
