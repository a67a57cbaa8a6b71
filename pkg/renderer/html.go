package renderer

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

//go:embed templates/print.html
var templatesFS embed.FS

var (
	printPage = template.Must(template.ParseFS(templatesFS, "templates/print.html"))

	markdownToHTML = goldmark.New(goldmark.WithExtensions(extension.GFM))
)

type printPageData struct {
	Title string
	Kind  Kind
	Body  template.HTML
}

// HTMLFragment converts the Markdown encoding of doc to HTML. Raw HTML in
// record fields is not passed through.
func HTMLFragment(doc *Document) (string, error) {
	var buf bytes.Buffer
	if err := markdownToHTML.Convert([]byte(Markdown(doc)), &buf); err != nil {
		return "", fmt.Errorf("failed to convert document to HTML: %w", err)
	}
	return buf.String(), nil
}

// HTML renders doc as a standalone printable page.
func HTML(doc *Document) ([]byte, error) {
	body, err := HTMLFragment(doc)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	err = printPage.Execute(&buf, printPageData{
		Title: doc.Title,
		Kind:  doc.Kind,
		Body:  template.HTML(body),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to render print page: %w", err)
	}
	return buf.Bytes(), nil
}
