package models

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestReceiptPatchJSON(t *testing.T) {
	id := "sppd-1"
	empty := ""

	tests := []struct {
		name  string
		patch ReceiptPatch
		json  string
	}{
		{name: "absent", patch: ReceiptPatch{}, json: `{}`},
		{name: "linked", patch: ReceiptPatch{SPPDID: &id}, json: `{"sppdId":"sppd-1"}`},
		{name: "unlinked", patch: ReceiptPatch{SPPDID: &empty}, json: `{"sppdId":null}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.patch)
			if err != nil {
				t.Fatalf("Marshal() error = %v", err)
			}
			if diff := cmp.Diff(tt.json, string(data)); diff != "" {
				t.Errorf("Marshal() mismatch (-want +got):\n%s", diff)
			}

			var got ReceiptPatch
			if err := json.Unmarshal([]byte(tt.json), &got); err != nil {
				t.Fatalf("Unmarshal() error = %v", err)
			}
			if diff := cmp.Diff(tt.patch, got); diff != "" {
				t.Errorf("Unmarshal() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestReceiptPatchNullKeepsOtherFields(t *testing.T) {
	var got ReceiptPatch
	if err := json.Unmarshal([]byte(`{"sppdId": null, "jumlah": 2500}`), &got); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if got.SPPDID == nil || *got.SPPDID != "" {
		t.Errorf("SPPDID = %v, expected pointer to empty string", got.SPPDID)
	}
	if got.Jumlah == nil || *got.Jumlah != 2500 {
		t.Errorf("Jumlah = %v, expected 2500", got.Jumlah)
	}
}
