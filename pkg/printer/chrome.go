package printer

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/shunichi-ikebuchi/sppd/pkg/renderer"
)

// Chrome prints the HTML rendering of a document with headless Chrome.
type Chrome struct {
	Timeout  time.Duration
	ExecPath string // empty to let chromedp locate the browser
}

// NewChrome returns a Chrome engine with a 30 second timeout.
func NewChrome() *Chrome {
	return &Chrome{Timeout: 30 * time.Second}
}

// Render converts doc to HTML and prints it to PDF.
func (c *Chrome) Render(ctx context.Context, doc *renderer.Document) ([]byte, error) {
	body, err := renderer.HTML(doc)
	if err != nil {
		return nil, err
	}
	pdf, err := c.htmlToPDF(ctx, string(body))
	if err != nil {
		return nil, fmt.Errorf("failed to print %s with chrome: %w", doc.Kind, err)
	}
	return pdf, nil
}

// htmlToPDF loads content into a blank page and prints it on A4 paper.
func (c *Chrome) htmlToPDF(ctx context.Context, content string) ([]byte, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
	)
	if c.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(c.ExecPath))
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)
	defer cancel()

	chromedpCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	timeout := c.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	chromedpCtx, cancel = context.WithTimeout(chromedpCtx, timeout)
	defer cancel()

	var pdfData []byte
	err := chromedp.Run(chromedpCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, content).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdfData, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).
				WithPaperHeight(11.69).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, err
	}
	return pdfData, nil
}
