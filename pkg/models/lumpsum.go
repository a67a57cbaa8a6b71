package models

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// LumpsumEntry represents the per-diem, lodging and transport cost breakdown of a travel order.
type LumpsumEntry struct {
	ID           string     `json:"id,omitempty"`
	SPPDID       string     `json:"sppdId"`       // referenced TravelOrder.ID
	Hari         int        `json:"hari"`         // number of days
	UangHarian   float64    `json:"uangHarian"`   // daily allowance rate
	Transport    float64    `json:"transport"`    // transport cost
	Penginapan   float64    `json:"penginapan"`   // lodging rate per night
	Malam        int        `json:"malam"`        // number of nights
	Representasi float64    `json:"representasi"` // representation allowance
	Lainnya      float64    `json:"lainnya"`      // miscellaneous cost
	Total        float64    `json:"total"`        // stored total, computed by the caller
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    *time.Time `json:"updatedAt,omitempty"`
}

// LumpsumPatch carries the fields to change on a LumpsumEntry.
type LumpsumPatch struct {
	SPPDID       *string  `json:"sppdId,omitempty"`
	Hari         *int     `json:"hari,omitempty"`
	UangHarian   *float64 `json:"uangHarian,omitempty"`
	Transport    *float64 `json:"transport,omitempty"`
	Penginapan   *float64 `json:"penginapan,omitempty"`
	Malam        *int     `json:"malam,omitempty"`
	Representasi *float64 `json:"representasi,omitempty"`
	Lainnya      *float64 `json:"lainnya,omitempty"`
	Total        *float64 `json:"total,omitempty"`
}

// DailyTotal returns the daily allowance multiplied by the number of days.
func (l LumpsumEntry) DailyTotal() decimal.Decimal {
	return Amount(l.UangHarian).Mul(decimal.NewFromInt(int64(l.Hari)))
}

// LodgingTotal returns the lodging rate multiplied by the number of nights.
func (l LumpsumEntry) LodgingTotal() decimal.Decimal {
	return Amount(l.Penginapan).Mul(decimal.NewFromInt(int64(l.Malam)))
}

// ComputeTotal recomputes the total from the component fields:
// daily rate × days + transport + lodging rate × nights + representation + miscellaneous.
func (l LumpsumEntry) ComputeTotal() decimal.Decimal {
	return l.DailyTotal().
		Add(Amount(l.Transport)).
		Add(l.LodgingTotal()).
		Add(Amount(l.Representasi)).
		Add(Amount(l.Lainnya))
}

// WithComputedTotal returns a copy of l whose Total matches its components.
func (l LumpsumEntry) WithComputedTotal() LumpsumEntry {
	l.Total = l.ComputeTotal().InexactFloat64()
	return l
}

// Amount converts a stored money value to a decimal, treating NaN and infinities as zero.
func Amount(v float64) decimal.Decimal {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(v)
}
