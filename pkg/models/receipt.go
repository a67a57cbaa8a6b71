package models

import (
	"encoding/json"
	"time"
)

// Receipt represents a payment receipt (kuitansi), optionally tied to a travel order.
type Receipt struct {
	ID              string     `json:"id,omitempty"`
	Nomor           string     `json:"nomor"`           // receipt number
	Tanggal         string     `json:"tanggal"`         // YYYY-MM-DD
	SPPDID          *string    `json:"sppdId"`          // referenced TravelOrder.ID, null when unrelated
	Jumlah          float64    `json:"jumlah"`          // amount
	Keperluan       string     `json:"keperluan"`       // purpose of payment
	Penerima        string     `json:"penerima"`        // payee name
	JabatanPenerima string     `json:"jabatanPenerima"` // payee position
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       *time.Time `json:"updatedAt,omitempty"`
}

// ReceiptPatch carries the fields to change on a Receipt.
type ReceiptPatch struct {
	Nomor           *string  `json:"nomor,omitempty"`
	Tanggal         *string  `json:"tanggal,omitempty"`
	SPPDID          *string  `json:"sppdId,omitempty"` // "" or JSON null unlinks the receipt
	Jumlah          *float64 `json:"jumlah,omitempty"`
	Keperluan       *string  `json:"keperluan,omitempty"`
	Penerima        *string  `json:"penerima,omitempty"`
	JabatanPenerima *string  `json:"jabatanPenerima,omitempty"`
}

type receiptPatchJSON ReceiptPatch

// MarshalJSON writes an empty SPPDID as "sppdId": null.
func (p ReceiptPatch) MarshalJSON() ([]byte, error) {
	if p.SPPDID == nil || *p.SPPDID != "" {
		return json.Marshal(receiptPatchJSON(p))
	}
	return json.Marshal(struct {
		receiptPatchJSON
		SPPDID *string `json:"sppdId"`
	}{receiptPatchJSON: receiptPatchJSON(p)})
}

// UnmarshalJSON reads "sppdId": null as an empty SPPDID, keeping it apart
// from an absent key.
func (p *ReceiptPatch) UnmarshalJSON(data []byte) error {
	if err := json.Unmarshal(data, (*receiptPatchJSON)(p)); err != nil {
		return err
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	if raw, ok := fields["sppdId"]; ok && string(raw) == "null" {
		unlinked := ""
		p.SPPDID = &unlinked
	}
	return nil
}

// OrderID returns the referenced order id, or "" when the receipt is unrelated.
func (r Receipt) OrderID() string {
	if r.SPPDID == nil {
		return ""
	}
	return *r.SPPDID
}
