package validation

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shunichi-ikebuchi/sppd/pkg/models"
)

func validOrder() models.TravelOrder {
	return models.TravelOrder{
		Nomor:        "090/1/2024",
		Tanggal:      "2024-03-15",
		Nama:         "Budi",
		Maksud:       "Rapat",
		Asal:         "Bandung",
		Tujuan:       "Jakarta",
		TglBerangkat: "2024-03-18",
		TglKembali:   "2024-03-20",
	}
}

func fieldsOf(t *testing.T, err error) []string {
	t.Helper()
	if err == nil {
		return nil
	}
	var verr *Error
	if !errors.As(err, &verr) {
		t.Fatalf("error %v is not a *validation.Error", err)
	}
	fields := make([]string, 0, len(verr.Fields))
	for _, f := range verr.Fields {
		fields = append(fields, f.Field)
	}
	return fields
}

func TestOrder(t *testing.T) {
	tests := []struct {
		name     string
		modify   func(*models.TravelOrder)
		expected []string
	}{
		{name: "valid", modify: func(*models.TravelOrder) {}},
		{name: "same day trip", modify: func(o *models.TravelOrder) { o.TglKembali = o.TglBerangkat }},
		{name: "missing name", modify: func(o *models.TravelOrder) { o.Nama = "" }, expected: []string{"nama"}},
		{name: "return before departure", modify: func(o *models.TravelOrder) { o.TglKembali = "2024-03-17" }, expected: []string{"tglKembali"}},
		{name: "bad date", modify: func(o *models.TravelOrder) { o.Tanggal = "15/03/2024" }, expected: []string{"tanggal"}},
		{
			name:     "several",
			modify:   func(o *models.TravelOrder) { o.Nomor, o.Tujuan = "", "" },
			expected: []string{"nomor", "tujuan"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := validOrder()
			tt.modify(&o)
			got := fieldsOf(t, Order(o))
			if diff := cmp.Diff(tt.expected, got); diff != "" {
				t.Errorf("Order() invalid fields mismatch (-expected +got):\n%s", diff)
			}
		})
	}
}

func TestLumpsum(t *testing.T) {
	valid := models.LumpsumEntry{SPPDID: "id_1", Hari: 2, UangHarian: 100000, Malam: 1}
	if err := Lumpsum(valid); err != nil {
		t.Errorf("Lumpsum(valid) error = %v", err)
	}

	invalid := valid
	invalid.Transport = -1
	invalid.SPPDID = ""
	if diff := cmp.Diff([]string{"sppdId", "transport"}, fieldsOf(t, Lumpsum(invalid))); diff != "" {
		t.Errorf("Lumpsum() invalid fields mismatch (-expected +got):\n%s", diff)
	}
}

func TestReceipt(t *testing.T) {
	valid := models.Receipt{Nomor: "KW-1", Tanggal: "2024-03-21", Jumlah: 1000, Keperluan: "Transport", Penerima: "Budi"}
	if err := Receipt(valid); err != nil {
		t.Errorf("Receipt(valid) error = %v", err)
	}

	invalid := valid
	invalid.Jumlah = 0
	err := Receipt(invalid)
	if diff := cmp.Diff([]string{"jumlah"}, fieldsOf(t, err)); diff != "" {
		t.Errorf("Receipt() invalid fields mismatch (-expected +got):\n%s", diff)
	}
	if err.Error() != "invalid input: jumlah: harus lebih dari 0" {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestSettings(t *testing.T) {
	if err := Settings(models.DefaultSettings()); err != nil {
		t.Errorf("Settings(defaults) error = %v", err)
	}
	if diff := cmp.Diff([]string{"instansi"}, fieldsOf(t, Settings(models.Settings{Kota: "Bandung"}))); diff != "" {
		t.Errorf("Settings() invalid fields mismatch (-expected +got):\n%s", diff)
	}
}
