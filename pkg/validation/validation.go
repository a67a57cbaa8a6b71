// Package validation checks travel orders, lumpsum entries and receipts
// submitted through the CLI or the HTTP API. The repository stores whatever it
// is given.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shunichi-ikebuchi/sppd/pkg/models"
	"github.com/shunichi-ikebuchi/sppd/pkg/renderer"
)

// FieldError describes one invalid field by its JSON name.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error lists every invalid field of a submission.
type Error struct {
	Fields []FieldError
}

func (e *Error) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "invalid input: " + strings.Join(parts, "; ")
}

// orderRules carries the required fields of the travel order form.
type orderRules struct {
	Nomor        string `json:"nomor" validate:"required"`
	Tanggal      string `json:"tanggal" validate:"required,isodate"`
	Nama         string `json:"nama" validate:"required"`
	Maksud       string `json:"maksud" validate:"required"`
	Asal         string `json:"asal" validate:"required"`
	Tujuan       string `json:"tujuan" validate:"required"`
	TglBerangkat string `json:"tglBerangkat" validate:"required,isodate"`
	TglKembali   string `json:"tglKembali" validate:"required,isodate,notbefore=TglBerangkat"`
}

type lumpsumRules struct {
	SPPDID       string  `json:"sppdId" validate:"required"`
	Hari         int     `json:"hari" validate:"gte=1"`
	UangHarian   float64 `json:"uangHarian" validate:"gte=0"`
	Transport    float64 `json:"transport" validate:"gte=0"`
	Penginapan   float64 `json:"penginapan" validate:"gte=0"`
	Malam        int     `json:"malam" validate:"gte=0"`
	Representasi float64 `json:"representasi" validate:"gte=0"`
	Lainnya      float64 `json:"lainnya" validate:"gte=0"`
}

type receiptRules struct {
	Nomor     string  `json:"nomor" validate:"required"`
	Tanggal   string  `json:"tanggal" validate:"required,isodate"`
	Jumlah    float64 `json:"jumlah" validate:"gt=0"`
	Keperluan string  `json:"keperluan" validate:"required"`
	Penerima  string  `json:"penerima" validate:"required"`
}

type settingsRules struct {
	Instansi string `json:"instansi" validate:"required"`
	Kota     string `json:"kota" validate:"required"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	must(v.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		_, err := renderer.ParseDate(fl.Field().String())
		return err == nil
	}))
	// notbefore passes when either date is unparseable; isodate reports those.
	must(v.RegisterValidation("notbefore", func(fl validator.FieldLevel) bool {
		other, _, _, ok := fl.GetStructFieldOKAdvanced2(fl.Parent(), fl.Param())
		if !ok {
			return true
		}
		to, err := renderer.ParseDate(fl.Field().String())
		if err != nil {
			return true
		}
		from, err := renderer.ParseDate(other.String())
		if err != nil {
			return true
		}
		return !to.Before(from)
	}))
	return v
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

// Order validates a travel order.
func Order(o models.TravelOrder) error {
	return check(orderRules{
		Nomor:        o.Nomor,
		Tanggal:      o.Tanggal,
		Nama:         o.Nama,
		Maksud:       o.Maksud,
		Asal:         o.Asal,
		Tujuan:       o.Tujuan,
		TglBerangkat: o.TglBerangkat,
		TglKembali:   o.TglKembali,
	})
}

// Lumpsum validates a lumpsum entry.
func Lumpsum(l models.LumpsumEntry) error {
	return check(lumpsumRules{
		SPPDID:       l.SPPDID,
		Hari:         l.Hari,
		UangHarian:   l.UangHarian,
		Transport:    l.Transport,
		Penginapan:   l.Penginapan,
		Malam:        l.Malam,
		Representasi: l.Representasi,
		Lainnya:      l.Lainnya,
	})
}

// Receipt validates a receipt.
func Receipt(r models.Receipt) error {
	return check(receiptRules{
		Nomor:     r.Nomor,
		Tanggal:   r.Tanggal,
		Jumlah:    r.Jumlah,
		Keperluan: r.Keperluan,
		Penerima:  r.Penerima,
	})
}

// Settings validates the institution settings.
func Settings(s models.Settings) error {
	return check(settingsRules{Instansi: s.Instansi, Kota: s.Kota})
}

func check(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("failed to validate input: %w", err)
	}

	out := &Error{Fields: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{Field: fe.Field(), Message: message(fe)})
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "wajib diisi"
	case "isodate":
		return "tanggal harus berformat YYYY-MM-DD"
	case "notbefore":
		return "tidak boleh sebelum tanggal berangkat"
	case "gte":
		return "minimal " + fe.Param()
	case "gt":
		return "harus lebih dari " + fe.Param()
	}
	return "tidak valid"
}
