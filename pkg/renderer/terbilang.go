package renderer

import (
	"strconv"
	"strings"
)

var ones = [...]string{
	"", "Satu", "Dua", "Tiga", "Empat", "Lima", "Enam",
	"Tujuh", "Delapan", "Sembilan", "Sepuluh", "Sebelas",
}

// maxTerbilang is the first value that has no name.
const maxTerbilang = 1_000_000_000_000

// Terbilang spells n out in Indonesian words, e.g. 1500 -> "Seribu Lima Ratus".
// Zero yields "". Negative values and values of a trillion or more are
// returned as plain numerals.
func Terbilang(n int64) string {
	if n < 0 || n >= maxTerbilang {
		return strconv.FormatInt(n, 10)
	}
	return strings.Join(strings.Fields(spell(n)), " ")
}

// spell concatenates the words of n. The result may carry stray spaces.
func spell(n int64) string {
	switch {
	case n < 12:
		return ones[n]
	case n < 20:
		return spell(n-10) + " Belas"
	case n < 100:
		return spell(n/10) + " Puluh " + spell(n%10)
	case n < 200:
		return "Seratus " + spell(n-100)
	case n < 1000:
		return spell(n/100) + " Ratus " + spell(n%100)
	case n < 2000:
		return "Seribu " + spell(n-1000)
	case n < 1_000_000:
		return spell(n/1000) + " Ribu " + spell(n%1000)
	case n < 1_000_000_000:
		return spell(n/1_000_000) + " Juta " + spell(n%1_000_000)
	default:
		return spell(n/1_000_000_000) + " Miliar " + spell(n%1_000_000_000)
	}
}

// AmountInWords spells out a rupiah amount, e.g. "Dua Juta Rupiah".
func AmountInWords(rupiah int64) string {
	return strings.TrimSpace(Terbilang(rupiah) + " Rupiah")
}
