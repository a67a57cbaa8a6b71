package renderer

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/shunichi-ikebuchi/sppd/pkg/models"
)

// Kind identifies a printable document.
type Kind string

const (
	KindOrder   Kind = "sppd"
	KindLumpsum Kind = "lumpsum"
	KindReceipt Kind = "kuitansi"
)

// Signature defaults used when the signatory is not configured.
const (
	DefaultSignatoryTitle = "Kepala"
	BlankLine             = "........................"
)

// Document is an assembled document, ready to be encoded.
type Document struct {
	Kind       Kind
	Reference  string      // number or id of the primary record
	Letterhead *Letterhead // nil for receipts
	Title      string
	Number     string
	Fields     []Field
	Costs      *CostTable
	InWords    string // amount in words, lumpsum only
	Amount     string // boxed amount, receipt only
	Notes      []string
	Signatures []Signature
}

// Letterhead is the institution heading printed above a document.
type Letterhead struct {
	Institution string
	Address     string
}

// Field is a labelled line of a document.
type Field struct {
	Label string
	Value string
}

// CostTable is the cost breakdown of a lumpsum document.
type CostTable struct {
	Rows  []CostRow
	Total decimal.Decimal
}

// CostRow is one line of a CostTable. Amounts are formatted.
type CostRow struct {
	No          int
	Description string
	Quantity    string
	UnitPrice   string
	Amount      string
}

// Signature is a signing block: heading lines, the signer's name and a footer line.
type Signature struct {
	Heading []string
	Name    string
	Footer  string
}

// Filename returns a file name for the document with the given extension.
func (d *Document) Filename(ext string) string {
	ref := d.Reference
	if ref == "" {
		ref = "dokumen"
	}
	return fmt.Sprintf("%s_%s.%s", d.Kind, sanitize(ref), ext)
}

func letterhead(s models.Settings) *Letterhead {
	return &Letterhead{Institution: s.Instansi, Address: s.Alamat}
}

func officialSignature(s models.Settings, heading ...string) Signature {
	return Signature{
		Heading: append(heading, orDefault(s.TtdJabatan, DefaultSignatoryTitle)),
		Name:    orDefault(s.TtdNama, BlankLine),
		Footer:  "NIP. " + orDefault(s.TtdNIP, BlankLine),
	}
}

// OrderDocument assembles the travel order (Surat Perintah Perjalanan Dinas).
func OrderDocument(order models.TravelOrder, s models.Settings) *Document {
	return &Document{
		Kind:       KindOrder,
		Reference:  order.Nomor,
		Letterhead: letterhead(s),
		Title:      "SURAT PERINTAH PERJALANAN DINAS",
		Number:     "Nomor: " + order.Nomor,
		Fields: []Field{
			{"1. Pejabat yang memberi perintah", orDash(s.TtdJabatan)},
			{"2. Nama Pegawai yang diperintah", orDash(order.Nama)},
			{"3. NIP", orDash(order.NIP)},
			{"4. Pangkat/Golongan", orDash(order.Pangkat)},
			{"5. Jabatan", orDash(order.Jabatan)},
			{"6. Maksud Perjalanan Dinas", orDash(order.Maksud)},
			{"7. Alat angkutan yang digunakan", orDash(order.Transportasi)},
			{"8. Tempat berangkat", orDash(order.Asal)},
			{"9. Tempat tujuan", orDash(order.Tujuan)},
			{"10. Tanggal berangkat", FormatDate(order.TglBerangkat)},
			{"11. Tanggal harus kembali", FormatDate(order.TglKembali)},
			{"12. Pengikut", Placeholder},
			{"13. Pembebanan Anggaran", orDash(order.Anggaran)},
			{"14. Keterangan lain-lain", Placeholder},
		},
		Notes: []string{
			"Dikeluarkan di: " + s.Kota,
			"Pada tanggal: " + FormatDate(order.Tanggal),
		},
		Signatures: []Signature{officialSignature(s)},
	}
}

// LumpsumDocument assembles the cost breakdown (Rincian Biaya Perjalanan Dinas).
// The total is recomputed from the components. A nil order prints placeholders.
func LumpsumDocument(entry models.LumpsumEntry, order *models.TravelOrder, s models.Settings) *Document {
	transport := models.Amount(entry.Transport)
	representation := models.Amount(entry.Representasi)
	other := models.Amount(entry.Lainnya)
	total := LumpsumTotal(entry)

	doc := &Document{
		Kind:       KindLumpsum,
		Reference:  entry.ID,
		Letterhead: letterhead(s),
		Title:      "RINCIAN BIAYA PERJALANAN DINAS",
		Number:     "SPPD Nomor: " + Placeholder,
		Costs: &CostTable{
			Rows: []CostRow{
				{1, "Uang Harian", fmt.Sprintf("%d hari", entry.Hari), FormatCurrency(entry.UangHarian), FormatRupiah(entry.DailyTotal())},
				{2, "Biaya Transport", "1 paket", FormatRupiah(transport), FormatRupiah(transport)},
				{3, "Biaya Penginapan", fmt.Sprintf("%d malam", entry.Malam), FormatCurrency(entry.Penginapan), FormatRupiah(entry.LodgingTotal())},
				{4, "Uang Representasi", "1 kali", FormatRupiah(representation), FormatRupiah(representation)},
				{5, "Biaya Lain-lain", "1 paket", FormatRupiah(other), FormatRupiah(other)},
			},
			Total: total,
		},
		InWords: AmountInWords(WholeRupiah(total)),
	}

	receiver := Signature{Heading: []string{"Yang Menerima,", ""}, Name: BlankLine, Footer: "NIP. " + BlankLine}
	if order != nil {
		doc.Number = "SPPD Nomor: " + orDash(order.Nomor)
		doc.Fields = []Field{
			{"Nama", orDash(order.Nama)},
			{"NIP", orDash(order.NIP)},
			{"Tujuan", orDash(order.Tujuan)},
			{"Tanggal", FormatDate(order.TglBerangkat) + " s/d " + FormatDate(order.TglKembali)},
		}
		receiver.Name = orDefault(order.Nama, BlankLine)
		receiver.Footer = "NIP. " + orDefault(order.NIP, BlankLine)
	}
	doc.Signatures = []Signature{officialSignature(s, "Mengetahui,"), receiver}
	return doc
}

// ReceiptDocument assembles the payment receipt (Kuitansi). A nil order omits
// the travel order reference.
func ReceiptDocument(receipt models.Receipt, order *models.TravelOrder, s models.Settings) *Document {
	amount := models.Amount(receipt.Jumlah)

	doc := &Document{
		Kind:      KindReceipt,
		Reference: receipt.Nomor,
		Title:     "KUITANSI",
		Number:    "No: " + receipt.Nomor,
		Fields: []Field{
			{"Sudah Terima dari", orDash(s.Instansi)},
			{"Uang Sejumlah", AmountInWords(WholeRupiah(amount))},
			{"Untuk Pembayaran", orDash(receipt.Keperluan)},
		},
		Amount: FormatRupiah(amount),
		Signatures: []Signature{
			officialSignature(s, "Mengetahui,"),
			{
				Heading: []string{s.Kota + ", " + FormatDate(receipt.Tanggal), "Yang Menerima,"},
				Name:    orDefault(receipt.Penerima, BlankLine),
				Footer:  receipt.JabatanPenerima,
			},
		},
	}
	if order != nil {
		doc.Fields = append(doc.Fields, Field{"SPPD Nomor", orDash(order.Nomor)})
	}
	return doc
}

// sanitize keeps letters, digits, dots and dashes for use in file names.
func sanitize(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '.':
			out = append(out, r)
		default:
			out = append(out, '_')
		}
	}
	return string(out)
}
