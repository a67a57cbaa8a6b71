// Package renderer turns stored records into printable documents.
//
// Every function in this package is pure: it reads only its arguments and
// never touches the repository.
package renderer

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
	"github.com/shunichi-ikebuchi/sppd/pkg/models"
)

// Placeholder is printed in place of a missing value.
const Placeholder = "-"

// DateLayout is the stored calendar date format.
const DateLayout = "2006-01-02"

// rupiah formats whole rupiah with id-ID grouping: "Rp 1.500.000".
var rupiah = money.NewFormatter(0, ",", ".", "Rp", "$ 1")

var monthNames = [...]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

var shortMonthNames = [...]string{
	"Jan", "Feb", "Mar", "Apr", "Mei", "Jun",
	"Jul", "Agu", "Sep", "Okt", "Nov", "Des",
}

// FormatCurrency formats amount as rupiah without decimals.
// Negative and non-finite amounts are printed as zero.
func FormatCurrency(amount float64) string {
	return FormatRupiah(models.Amount(amount))
}

// FormatRupiah formats a decimal amount as rupiah without decimals.
func FormatRupiah(amount decimal.Decimal) string {
	if whole := amount.Round(0); whole.GreaterThan(maxWhole) {
		return "Rp " + groupThousands(whole.String())
	}
	return rupiah.Format(WholeRupiah(amount))
}

var maxWhole = decimal.NewFromInt(math.MaxInt64)

// WholeRupiah rounds amount half away from zero to whole rupiah, clamping
// negatives to zero and amounts beyond int64 to math.MaxInt64.
func WholeRupiah(amount decimal.Decimal) int64 {
	if amount.IsNegative() {
		return 0
	}
	whole := amount.Round(0)
	if whole.GreaterThan(maxWhole) {
		return math.MaxInt64
	}
	return whole.IntPart()
}

// groupThousands inserts "." between every three digits of a non-negative integer.
func groupThousands(digits string) string {
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ParseDate parses a stored date. Both YYYY-MM-DD and RFC 3339 timestamps are accepted.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", s)
	}
	return t, nil
}

// FormatDate formats a stored date as "2 Januari 2024".
func FormatDate(s string) string {
	t, err := ParseDate(s)
	if err != nil {
		return Placeholder
	}
	return fmt.Sprintf("%d %s %d", t.Day(), monthNames[t.Month()-1], t.Year())
}

// FormatShortDate formats a stored date as "2 Jan 2024".
func FormatShortDate(s string) string {
	t, err := ParseDate(s)
	if err != nil {
		return Placeholder
	}
	return fmt.Sprintf("%d %s %d", t.Day(), shortMonthNames[t.Month()-1], t.Year())
}

// SuggestDuration derives the number of days and nights of a trip from its
// departure and return dates. Both bounds count as travel days.
func SuggestDuration(order models.TravelOrder) (days, nights int, ok bool) {
	from, err := ParseDate(order.TglBerangkat)
	if err != nil {
		return 0, 0, false
	}
	to, err := ParseDate(order.TglKembali)
	if err != nil {
		return 0, 0, false
	}

	days = int(math.Ceil(math.Abs(to.Sub(from).Hours())/24)) + 1
	return days, max(days-1, 0), true
}

// LumpsumTotal recomputes the total of a lumpsum entry from its components.
// The stored Total is ignored.
func LumpsumTotal(entry models.LumpsumEntry) decimal.Decimal {
	return entry.ComputeTotal()
}

func orDash(s string) string {
	if s == "" {
		return Placeholder
	}
	return s
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
