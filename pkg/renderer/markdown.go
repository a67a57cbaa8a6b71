package renderer

import (
	"bytes"
	"regexp"
	"strconv"
	"strings"

	md "github.com/nao1215/markdown"
)

// Markdown encodes doc as GitHub flavored Markdown.
func Markdown(doc *Document) string {
	var buf bytes.Buffer
	m := md.NewMarkdown(&buf)

	if doc.Letterhead != nil {
		m.H1(escape(doc.Letterhead.Institution))
		m.PlainText(escape(doc.Letterhead.Address))
		m.PlainText("")
		m.HorizontalRule()
	}

	m.H2(escape(doc.Title))
	m.PlainText(escape(doc.Number))
	m.PlainText("")

	if len(doc.Fields) > 0 {
		rows := make([][]string, 0, len(doc.Fields))
		for _, f := range doc.Fields {
			rows = append(rows, []string{cell(f.Label), cell(f.Value)})
		}
		m.Table(md.TableSet{
			Header:    []string{"Uraian", "Keterangan"},
			Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft},
			Rows:      rows,
		})
		m.PlainText("")
	}

	if doc.Costs != nil {
		rows := make([][]string, 0, len(doc.Costs.Rows)+1)
		for _, r := range doc.Costs.Rows {
			rows = append(rows, []string{strconv.Itoa(r.No), cell(r.Description), cell(r.Quantity), cell(r.UnitPrice), cell(r.Amount)})
		}
		rows = append(rows, []string{"", md.Bold("TOTAL"), "", "", md.Bold(cell(FormatRupiah(doc.Costs.Total)))})
		m.Table(md.TableSet{
			Header: []string{"No", "Uraian", "Qty", "Satuan (Rp)", "Jumlah (Rp)"},
			Alignment: []md.TableAlignment{
				md.AlignRight,
				md.AlignLeft,
				md.AlignLeft,
				md.AlignRight,
				md.AlignRight,
			},
			Rows: rows,
		})
		m.PlainText("")
	}

	if doc.InWords != "" {
		m.PlainText(md.Bold("Terbilang:") + " " + md.Italic(escape(doc.InWords)))
		m.PlainText("")
	}
	if doc.Amount != "" {
		m.PlainText(md.Bold(escape(doc.Amount)))
		m.PlainText("")
	}
	if len(doc.Notes) > 0 {
		notes := make([]string, 0, len(doc.Notes))
		for _, n := range doc.Notes {
			notes = append(notes, escape(n))
		}
		m.PlainText(strings.Join(notes, hardBreak))
		m.PlainText("")
	}

	for _, sig := range doc.Signatures {
		lines := make([]string, 0, len(sig.Heading)+2)
		for _, h := range sig.Heading {
			if h != "" {
				lines = append(lines, escape(h))
			}
		}
		lines = append(lines, "", md.Bold(escape(sig.Name)))
		if sig.Footer != "" {
			lines = append(lines, escape(sig.Footer))
		}
		m.PlainText(strings.Join(lines, hardBreak))
		m.PlainText("")
	}

	return m.String()
}

// hardBreak ends a line inside a paragraph.
const hardBreak = "  \n"

// inlineEscaper backslash-escapes the characters that start inline markup,
// raw HTML or entities, and the table column separator.
var inlineEscaper = strings.NewReplacer(
	`\`, `\\`,
	"`", "\\`",
	"*", `\*`,
	"_", `\_`,
	"[", `\[`,
	"]", `\]`,
	"<", `\<`,
	">", `\>`,
	"!", `\!`,
	"&", `\&`,
	"~", `\~`,
	"|", `\|`,
)

// blockMarker matches what would open a heading, list, setext underline or
// ordered list item at the start of a line.
var blockMarker = regexp.MustCompile(`^[ \t]*(?:[#+=-]|\d+[.)])`)

// escape makes s render as the literal text it holds.
func escape(s string) string {
	lines := strings.Split(inlineEscaper.Replace(s), "\n")
	for i, line := range lines {
		lines[i] = blockMarker.ReplaceAllStringFunc(line, func(m string) string {
			return m[:len(m)-1] + `\` + m[len(m)-1:]
		})
	}
	return strings.Join(lines, hardBreak)
}

// cell escapes a table cell. Cells hold inline content only, so block
// markers need no escaping, but a line break would end the row.
func cell(s string) string {
	return inlineEscaper.Replace(strings.ReplaceAll(s, "\n", " "))
}
