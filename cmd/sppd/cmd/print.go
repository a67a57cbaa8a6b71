package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/shunichi-ikebuchi/sppd/pkg/archive"
	"github.com/shunichi-ikebuchi/sppd/pkg/printer"
	"github.com/shunichi-ikebuchi/sppd/pkg/renderer"
	"github.com/spf13/cobra"
)

var (
	printFormat  string
	printOut     string
	printPreview bool
	printStyle   string
	printWidth   int
	printArchive bool
)

// printCmd represents the print command.
var printCmd = &cobra.Command{
	Use:   "print <sppd|lumpsum|kuitansi> <id>",
	Short: "Print a travel order, cost breakdown or receipt",
	Long: `Print a document for a stored record.

The document is written to --out, or to its default file name in the current
directory ("-" writes to stdout). With --archive it is filed under the archive
directory by year and month instead. --preview renders it in the terminal.

Example:
  sppd print sppd id_0190f... --format pdf
  sppd print kuitansi id_0190f... --format html --out kuitansi.html
  sppd print lumpsum id_0190f... --preview`,
	Args: cobra.ExactArgs(2),
	Run:  runPrint,
}

func init() {
	printCmd.Flags().StringVar(&printFormat, "format", "pdf", "Output format: pdf, html or md")
	printCmd.Flags().StringVarP(&printOut, "out", "o", "", "Output file (default is the document file name)")
	printCmd.Flags().BoolVar(&printPreview, "preview", false, "Render the document in the terminal")
	printCmd.Flags().StringVar(&printStyle, "style", "", "Terminal preview style: dark, light, notty (default auto)")
	printCmd.Flags().IntVar(&printWidth, "width", 100, "Terminal preview word wrap width")
	printCmd.Flags().BoolVar(&printArchive, "archive", false, "File the document in the archive")
}

func runPrint(cmd *cobra.Command, args []string) {
	kind, err := renderer.ParseKind(args[0])
	exitOnError(err, "invalid document kind")

	s := openSession()
	defer s.Close()

	doc, err := renderer.Preview(s.repo, kind, args[1])
	exitOnError(err, "failed to assemble document")
	if doc == nil {
		exitOnError(errors.New(args[1]), "record not found")
	}

	if printPreview {
		out, err := renderer.Terminal(doc, printStyle, printWidth)
		exitOnError(err, "failed to render preview")
		fmt.Print(out)
		return
	}

	var (
		data []byte
		ext  string
	)
	switch printFormat {
	case "pdf":
		engine, err := printer.New(s.cfg.Printer.Engine)
		exitOnError(err, "invalid PDF engine")
		slog.Debug("Rendering PDF", "engine", s.cfg.Printer.Engine)
		data, err = engine.Render(cmd.Context(), doc)
		exitOnError(err, "failed to render PDF")
		ext = "pdf"
	case "html":
		data, err = renderer.HTML(doc)
		exitOnError(err, "failed to render HTML")
		ext = "html"
	case "md", "markdown":
		data = []byte(renderer.Markdown(doc))
		ext = "md"
	default:
		exitOnError(fmt.Errorf("unknown format %q", printFormat), "invalid format")
	}

	name := doc.Filename(ext)

	if printArchive {
		a := archive.NewFileSystemArchive(s.paths)
		path, err := a.Save(time.Now().Format(time.DateOnly), name, data)
		exitOnError(err, "failed to archive document")
		slog.Info("Document archived", "path", path)
		fmt.Println(path)
		return
	}

	out := printOut
	if out == "" {
		out = name
	}
	if out == "-" {
		_, err := os.Stdout.Write(data)
		exitOnError(err, "failed to write document")
		return
	}

	exitOnError(os.WriteFile(out, data, 0o644), "failed to write document")
	slog.Info("Document written", "path", out, "bytes", len(data))
	fmt.Println(out)
}
