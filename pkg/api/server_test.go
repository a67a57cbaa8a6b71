package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shunichi-ikebuchi/sppd/pkg/models"
	"github.com/shunichi-ikebuchi/sppd/pkg/repository"
	"github.com/shunichi-ikebuchi/sppd/pkg/storage"
)

type testClient struct {
	server *httptest.Server
	repo   *repository.Repository
}

func setupTestServer(t *testing.T) *testClient {
	t.Helper()

	backend := storage.NewMemory(0)
	t.Cleanup(func() {
		_ = backend.Close()
	})

	repo := repository.New(backend)
	server := httptest.NewServer(NewServer(repo, nil))
	t.Cleanup(server.Close)

	return &testClient{server: server, repo: repo}
}

func (c *testClient) request(t *testing.T, method, path string, body any) *http.Response {
	t.Helper()

	var reqBody io.Reader
	switch b := body.(type) {
	case nil:
	case []byte:
		reqBody = bytes.NewReader(b)
	default:
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to marshal request body: %v", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.server.URL+path, reqBody)
	if err != nil {
		t.Fatalf("Failed to create request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("Failed to send request: %v", err)
	}
	t.Cleanup(func() {
		_ = resp.Body.Close()
	})
	return resp
}

func decodeResponse[T any](t *testing.T, resp *http.Response) T {
	t.Helper()

	var v T
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	return v
}

func expectStatus(t *testing.T, resp *http.Response, want int) {
	t.Helper()

	if resp.StatusCode != want {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("Expected status %d, got %d: %s", want, resp.StatusCode, body)
	}
}

func orderBody(nomor, tanggal string) map[string]any {
	return map[string]any{
		"nomor":        nomor,
		"tanggal":      tanggal,
		"nama":         "Budi Santoso",
		"nip":          "198001012005011001",
		"pangkat":      "Penata / III.c",
		"jabatan":      "Analis",
		"maksud":       "Rapat koordinasi",
		"asal":         "Bandung",
		"tujuan":       "Jakarta",
		"tglBerangkat": tanggal,
		"tglKembali":   tanggal,
		"transportasi": "Kereta Api",
		"anggaran":     "DIPA 2024",
	}
}

func createOrder(t *testing.T, c *testClient, nomor, tanggal string) models.TravelOrder {
	t.Helper()

	resp := c.request(t, http.MethodPost, "/api/sppd", orderBody(nomor, tanggal))
	expectStatus(t, resp, http.StatusCreated)
	return decodeResponse[OrderResponse](t, resp).SPPD
}

func TestHealth(t *testing.T) {
	c := setupTestServer(t)

	resp := c.request(t, http.MethodGet, "/health", nil)
	expectStatus(t, resp, http.StatusOK)
}

func TestOrderLifecycle(t *testing.T) {
	c := setupTestServer(t)

	created := createOrder(t, c, "090/001/2024", "2024-03-04")
	if created.ID == "" {
		t.Fatal("Expected generated id")
	}
	createOrder(t, c, "090/002/2024", "2024-04-01")

	t.Run("Get", func(t *testing.T) {
		resp := c.request(t, http.MethodGet, "/api/sppd/"+created.ID, nil)
		expectStatus(t, resp, http.StatusOK)
		got := decodeResponse[OrderResponse](t, resp).SPPD
		if diff := cmp.Diff(created, got); diff != "" {
			t.Errorf("order mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("List by month", func(t *testing.T) {
		resp := c.request(t, http.MethodGet, "/api/sppd?month=2024-03", nil)
		expectStatus(t, resp, http.StatusOK)
		got := decodeResponse[OrdersListResponse](t, resp).SPPD
		if len(got) != 1 || got[0].Nomor != "090/001/2024" {
			t.Errorf("Expected only the March order, got %+v", got)
		}
	})

	t.Run("List rejects malformed month", func(t *testing.T) {
		resp := c.request(t, http.MethodGet, "/api/sppd?month=March", nil)
		expectStatus(t, resp, http.StatusBadRequest)
	})

	t.Run("Partial update", func(t *testing.T) {
		resp := c.request(t, http.MethodPut, "/api/sppd/"+created.ID, map[string]any{"tujuan": "Surabaya"})
		expectStatus(t, resp, http.StatusOK)
		got := decodeResponse[OrderResponse](t, resp).SPPD
		if got.Tujuan != "Surabaya" || got.Nama != created.Nama || got.ID != created.ID {
			t.Errorf("Unexpected update result %+v", got)
		}
		if got.UpdatedAt == nil {
			t.Error("Expected updatedAt to be set")
		}
	})

	t.Run("Update rejects return before departure", func(t *testing.T) {
		resp := c.request(t, http.MethodPut, "/api/sppd/"+created.ID, map[string]any{"tglKembali": "2024-03-01"})
		expectStatus(t, resp, http.StatusBadRequest)
		got := decodeResponse[ErrorResponse](t, resp)
		if len(got.Fields) != 1 || got.Fields[0].Field != "tglKembali" {
			t.Errorf("Expected tglKembali field error, got %+v", got.Fields)
		}
		if stored := c.repo.GetSPPDByID(created.ID); stored.TglKembali != "2024-03-04" {
			t.Errorf("Rejected update was stored: %q", stored.TglKembali)
		}
	})

	t.Run("Update missing", func(t *testing.T) {
		resp := c.request(t, http.MethodPut, "/api/sppd/id_missing", map[string]any{"tujuan": "Medan"})
		expectStatus(t, resp, http.StatusNotFound)
	})
}

func TestCreateOrderValidation(t *testing.T) {
	c := setupTestServer(t)

	tests := []struct {
		name string
		body any
		want int
	}{
		{name: "missing fields", body: map[string]any{"nomor": "1"}, want: http.StatusBadRequest},
		{name: "invalid json", body: []byte("{"), want: http.StatusBadRequest},
		{name: "valid", body: orderBody("1", "2024-01-02"), want: http.StatusCreated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := c.request(t, http.MethodPost, "/api/sppd", tt.body)
			expectStatus(t, resp, tt.want)
		})
	}
}

func TestLumpsumTotalIsRecomputed(t *testing.T) {
	c := setupTestServer(t)
	order := createOrder(t, c, "090/001/2024", "2024-03-04")

	resp := c.request(t, http.MethodPost, "/api/lumpsum", map[string]any{
		"sppdId":     order.ID,
		"hari":       2,
		"uangHarian": 150000,
		"transport":  100000,
		"penginapan": 50000,
		"malam":      1,
		"lainnya":    10000,
		"total":      1,
	})
	expectStatus(t, resp, http.StatusCreated)
	entry := decodeResponse[LumpsumResponse](t, resp).Lumpsum
	if entry.Total != 460000 {
		t.Errorf("Expected total 460000, got %v", entry.Total)
	}

	resp = c.request(t, http.MethodPut, "/api/lumpsum/"+entry.ID, map[string]any{"hari": 3})
	expectStatus(t, resp, http.StatusOK)
	if got := decodeResponse[LumpsumResponse](t, resp).Lumpsum.Total; got != 610000 {
		t.Errorf("Expected total 610000 after update, got %v", got)
	}

	resp = c.request(t, http.MethodGet, "/api/sppd/"+order.ID+"/lumpsum", nil)
	expectStatus(t, resp, http.StatusOK)
	if got := decodeResponse[LumpsumResponse](t, resp).Lumpsum.ID; got != entry.ID {
		t.Errorf("Expected lumpsum %s for order, got %s", entry.ID, got)
	}
}

func TestLumpsumRequiresExistingOrder(t *testing.T) {
	c := setupTestServer(t)

	resp := c.request(t, http.MethodPost, "/api/lumpsum", map[string]any{
		"sppdId": "id_missing",
		"hari":   1,
	})
	expectStatus(t, resp, http.StatusBadRequest)
}

func TestDeleteOrderCascadesLumpsum(t *testing.T) {
	c := setupTestServer(t)
	order := createOrder(t, c, "090/001/2024", "2024-03-04")

	resp := c.request(t, http.MethodPost, "/api/lumpsum", map[string]any{"sppdId": order.ID, "hari": 1})
	expectStatus(t, resp, http.StatusCreated)

	resp = c.request(t, http.MethodDelete, "/api/sppd/"+order.ID, nil)
	expectStatus(t, resp, http.StatusNoContent)

	resp = c.request(t, http.MethodGet, "/api/lumpsum", nil)
	expectStatus(t, resp, http.StatusOK)
	if got := decodeResponse[LumpsumListResponse](t, resp).Lumpsum; len(got) != 0 {
		t.Errorf("Expected lumpsum to be cascaded, got %+v", got)
	}

	// Deleting again is not an error.
	resp = c.request(t, http.MethodDelete, "/api/sppd/"+order.ID, nil)
	expectStatus(t, resp, http.StatusNoContent)
}

func TestReceiptLifecycle(t *testing.T) {
	c := setupTestServer(t)

	resp := c.request(t, http.MethodPost, "/api/kuitansi", map[string]any{
		"nomor":     "KW/001",
		"tanggal":   "2024-03-05",
		"sppdId":    nil,
		"jumlah":    1500000,
		"keperluan": "Biaya perjalanan dinas",
		"penerima":  "Budi Santoso",
	})
	expectStatus(t, resp, http.StatusCreated)
	receipt := decodeResponse[ReceiptResponse](t, resp).Kuitansi

	resp = c.request(t, http.MethodPut, "/api/kuitansi/"+receipt.ID, map[string]any{"jumlah": 0})
	expectStatus(t, resp, http.StatusBadRequest)

	resp = c.request(t, http.MethodPut, "/api/kuitansi/"+receipt.ID, map[string]any{"jumlah": 1750000})
	expectStatus(t, resp, http.StatusOK)
	if got := decodeResponse[ReceiptResponse](t, resp).Kuitansi.Jumlah; got != 1750000 {
		t.Errorf("Expected jumlah 1750000, got %v", got)
	}

	resp = c.request(t, http.MethodDelete, "/api/kuitansi/"+receipt.ID, nil)
	expectStatus(t, resp, http.StatusNoContent)

	resp = c.request(t, http.MethodGet, "/api/kuitansi/"+receipt.ID, nil)
	expectStatus(t, resp, http.StatusNotFound)
}

func TestReceiptUnlinkOrder(t *testing.T) {
	c := setupTestServer(t)
	order := createOrder(t, c, "090/001/2024", "2024-03-01")

	resp := c.request(t, http.MethodPost, "/api/kuitansi", map[string]any{
		"nomor":     "KW/002",
		"tanggal":   "2024-03-05",
		"sppdId":    order.ID,
		"jumlah":    500000,
		"keperluan": "Uang harian",
		"penerima":  "Budi Santoso",
	})
	expectStatus(t, resp, http.StatusCreated)
	receipt := decodeResponse[ReceiptResponse](t, resp).Kuitansi

	resp = c.request(t, http.MethodPut, "/api/kuitansi/"+receipt.ID, map[string]any{"jumlah": 600000})
	expectStatus(t, resp, http.StatusOK)
	if got := decodeResponse[ReceiptResponse](t, resp).Kuitansi.OrderID(); got != order.ID {
		t.Errorf("Expected sppdId %q to survive an unrelated update, got %q", order.ID, got)
	}

	resp = c.request(t, http.MethodPut, "/api/kuitansi/"+receipt.ID, []byte(`{"sppdId": null}`))
	expectStatus(t, resp, http.StatusOK)
	if got := decodeResponse[ReceiptResponse](t, resp).Kuitansi.SPPDID; got != nil {
		t.Errorf("Expected sppdId to be null, got %q", *got)
	}

	resp = c.request(t, http.MethodGet, "/api/kuitansi/"+receipt.ID, nil)
	expectStatus(t, resp, http.StatusOK)
	if got := decodeResponse[ReceiptResponse](t, resp).Kuitansi.SPPDID; got != nil {
		t.Errorf("Expected stored sppdId to be null, got %q", *got)
	}
}

func TestSettings(t *testing.T) {
	c := setupTestServer(t)

	resp := c.request(t, http.MethodGet, "/api/settings", nil)
	expectStatus(t, resp, http.StatusOK)
	if diff := cmp.Diff(models.DefaultSettings(), decodeResponse[SettingsResponse](t, resp).Settings); diff != "" {
		t.Errorf("default settings mismatch (-want +got):\n%s", diff)
	}

	resp = c.request(t, http.MethodPut, "/api/settings", map[string]any{"alamat": "Jl. Merdeka 1"})
	expectStatus(t, resp, http.StatusBadRequest)

	want := models.Settings{
		Instansi:   "DINAS PERHUBUNGAN",
		Alamat:     "Jl. Merdeka 1",
		Kota:       "Bandung",
		TtdNama:    "Siti Aminah",
		TtdJabatan: "Kepala Dinas",
	}
	resp = c.request(t, http.MethodPut, "/api/settings", want)
	expectStatus(t, resp, http.StatusOK)
	if diff := cmp.Diff(want, c.repo.GetSettings()); diff != "" {
		t.Errorf("stored settings mismatch (-want +got):\n%s", diff)
	}
}

func TestExportImport(t *testing.T) {
	c := setupTestServer(t)
	createOrder(t, c, "090/001/2024", "2024-03-04")

	resp := c.request(t, http.MethodGet, "/api/export", nil)
	expectStatus(t, resp, http.StatusOK)
	if cd := resp.Header.Get("Content-Disposition"); !strings.Contains(cd, "sppd_backup_") {
		t.Errorf("Unexpected Content-Disposition %q", cd)
	}
	backup, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("Failed to read export: %v", err)
	}

	resp = c.request(t, http.MethodDelete, "/api/data", nil)
	expectStatus(t, resp, http.StatusNoContent)
	if got := c.repo.GetStats().TotalSPPD; got != 0 {
		t.Fatalf("Expected empty store after clear, got %d orders", got)
	}

	resp = c.request(t, http.MethodPost, "/api/import", []byte("[1, 2]"))
	expectStatus(t, resp, http.StatusBadRequest)
	if got := decodeResponse[ErrorResponse](t, resp).Error; got != "invalid_import" {
		t.Errorf("Expected invalid_import, got %q", got)
	}

	resp = c.request(t, http.MethodPost, "/api/import", backup)
	expectStatus(t, resp, http.StatusOK)
	if got := decodeResponse[StatsResponse](t, resp).Stats.TotalSPPD; got != 1 {
		t.Errorf("Expected 1 order after import, got %d", got)
	}
}

func TestStats(t *testing.T) {
	c := setupTestServer(t)
	order := createOrder(t, c, "090/001/2024", "2024-03-04")
	resp := c.request(t, http.MethodPost, "/api/lumpsum", map[string]any{"sppdId": order.ID, "hari": 2, "uangHarian": 150000})
	expectStatus(t, resp, http.StatusCreated)

	resp = c.request(t, http.MethodGet, "/api/stats", nil)
	expectStatus(t, resp, http.StatusOK)
	want := models.Stats{TotalSPPD: 1, TotalLumpsum: 300000}
	if diff := cmp.Diff(want, decodeResponse[StatsResponse](t, resp).Stats); diff != "" {
		t.Errorf("stats mismatch (-want +got):\n%s", diff)
	}
}

func TestPrint(t *testing.T) {
	c := setupTestServer(t)
	order := createOrder(t, c, "090/001/2024", "2024-03-04")

	tests := []struct {
		name        string
		path        string
		wantStatus  int
		contentType string
		contains    string
	}{
		{
			name:        "html",
			path:        "/api/print/sppd/" + order.ID,
			wantStatus:  http.StatusOK,
			contentType: "text/html; charset=utf-8",
			contains:    "SURAT PERINTAH PERJALANAN DINAS",
		},
		{
			name:        "markdown",
			path:        "/api/print/order/" + order.ID + "?format=md",
			wantStatus:  http.StatusOK,
			contentType: "text/markdown; charset=utf-8",
			contains:    "090/001/2024",
		},
		{
			name:        "pdf",
			path:        "/api/print/sppd/" + order.ID + "?format=pdf",
			wantStatus:  http.StatusOK,
			contentType: "application/pdf",
			contains:    "%PDF-",
		},
		{name: "unknown kind", path: "/api/print/memo/" + order.ID, wantStatus: http.StatusBadRequest},
		{name: "missing record", path: "/api/print/kuitansi/id_missing", wantStatus: http.StatusNotFound},
		{name: "unknown format", path: "/api/print/sppd/" + order.ID + "?format=docx", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := c.request(t, http.MethodGet, tt.path, nil)
			expectStatus(t, resp, tt.wantStatus)
			if tt.contentType == "" {
				return
			}
			if got := resp.Header.Get("Content-Type"); got != tt.contentType {
				t.Errorf("Expected Content-Type %q, got %q", tt.contentType, got)
			}
			body, err := io.ReadAll(resp.Body)
			if err != nil {
				t.Fatalf("Failed to read body: %v", err)
			}
			if !bytes.Contains(body, []byte(tt.contains)) {
				t.Errorf("Expected body to contain %q", tt.contains)
			}
		})
	}
}
