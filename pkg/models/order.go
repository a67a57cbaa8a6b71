// Package models defines the records persisted by the SPPD repository.
package models

import "time"

// TravelOrder represents an official travel order (Surat Perintah Perjalanan Dinas).
type TravelOrder struct {
	ID           string     `json:"id,omitempty"`
	Nomor        string     `json:"nomor"`        // order number
	Tanggal      string     `json:"tanggal"`      // issue date, YYYY-MM-DD
	Nama         string     `json:"nama"`         // traveler name
	NIP          string     `json:"nip"`          // traveler ID number
	Pangkat      string     `json:"pangkat"`      // rank / grade
	Jabatan      string     `json:"jabatan"`      // position
	Maksud       string     `json:"maksud"`       // purpose of travel
	Asal         string     `json:"asal"`         // origin
	Tujuan       string     `json:"tujuan"`       // destination
	TglBerangkat string     `json:"tglBerangkat"` // departure date, YYYY-MM-DD
	TglKembali   string     `json:"tglKembali"`   // return date, YYYY-MM-DD
	Transportasi string     `json:"transportasi"` // transportation mode
	Anggaran     string     `json:"anggaran"`     // budget source
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    *time.Time `json:"updatedAt,omitempty"`
}

// TravelOrderPatch carries the fields to change on a TravelOrder.
// Nil fields are left untouched.
type TravelOrderPatch struct {
	Nomor        *string `json:"nomor,omitempty"`
	Tanggal      *string `json:"tanggal,omitempty"`
	Nama         *string `json:"nama,omitempty"`
	NIP          *string `json:"nip,omitempty"`
	Pangkat      *string `json:"pangkat,omitempty"`
	Jabatan      *string `json:"jabatan,omitempty"`
	Maksud       *string `json:"maksud,omitempty"`
	Asal         *string `json:"asal,omitempty"`
	Tujuan       *string `json:"tujuan,omitempty"`
	TglBerangkat *string `json:"tglBerangkat,omitempty"`
	TglKembali   *string `json:"tglKembali,omitempty"`
	Transportasi *string `json:"transportasi,omitempty"`
	Anggaran     *string `json:"anggaran,omitempty"`
}

// Month returns the YYYY-MM part of the issue date, or "" when the date is too short.
func (o TravelOrder) Month() string {
	if len(o.Tanggal) < 7 {
		return ""
	}
	return o.Tanggal[:7]
}
