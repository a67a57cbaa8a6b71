package printer

import (
	"bytes"
	"context"
	"os/exec"
	"testing"

	"github.com/shunichi-ikebuchi/sppd/pkg/models"
	"github.com/shunichi-ikebuchi/sppd/pkg/renderer"
)

func testDocuments() map[string]*renderer.Document {
	settings := models.Settings{Instansi: "DINAS PENDIDIKAN", Alamat: "Jl. Sudirman 5", Kota: "Padang"}
	order := models.TravelOrder{
		Nomor:        "800/12/2024",
		Tanggal:      "2024-05-02",
		Nama:         "Rina Marlina",
		Maksud:       "Monitoring sekolah",
		Asal:         "Padang",
		Tujuan:       "Bukittinggi",
		TglBerangkat: "2024-05-06",
		TglKembali:   "2024-05-07",
	}
	entry := models.LumpsumEntry{Hari: 2, UangHarian: 150000, Transport: 75000, Penginapan: 300000, Malam: 1}
	receipt := models.Receipt{Nomor: "KW-3", Tanggal: "2024-05-08", Jumlah: 675000, Keperluan: "Biaya perjalanan", Penerima: "Rina Marlina"}

	return map[string]*renderer.Document{
		"order":   renderer.OrderDocument(order, settings),
		"lumpsum": renderer.LumpsumDocument(entry, &order, settings),
		"receipt": renderer.ReceiptDocument(receipt, nil, settings),
	}
}

func TestFPDFRender(t *testing.T) {
	engine := NewFPDF()
	for name, doc := range testDocuments() {
		t.Run(name, func(t *testing.T) {
			out, err := engine.Render(context.Background(), doc)
			if err != nil {
				t.Fatalf("Render() error = %v", err)
			}
			if !bytes.HasPrefix(out, []byte("%PDF-")) {
				t.Errorf("Render() output does not start with a PDF header: %.20q", out)
			}
		})
	}
}

func TestFPDFRenderCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewFPDF().Render(ctx, testDocuments()["order"]); err == nil {
		t.Error("Render() with canceled context error = nil")
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		wantErr bool
	}{
		{name: "", wantErr: false},
		{name: EngineFPDF, wantErr: false},
		{name: EngineChrome, wantErr: false},
		{name: "latex", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine, err := New(tt.name)
			if (err != nil) != tt.wantErr {
				t.Fatalf("New(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			}
			if !tt.wantErr && engine == nil {
				t.Errorf("New(%q) returned nil engine", tt.name)
			}
		})
	}
}

func TestChromeRender(t *testing.T) {
	var found bool
	for _, name := range []string{"google-chrome", "chromium", "chromium-browser"} {
		if _, err := exec.LookPath(name); err == nil {
			found = true
			break
		}
	}
	if !found {
		t.Skip("no Chrome installation found")
	}

	out, err := NewChrome().Render(context.Background(), testDocuments()["receipt"])
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF-")) {
		t.Errorf("Render() output does not start with a PDF header: %.20q", out)
	}
}
