package cmd

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/shunichi-ikebuchi/sppd/pkg/models"
	"github.com/shunichi-ikebuchi/sppd/pkg/recap"
	"github.com/spf13/cobra"
)

var (
	recapOut   string
	recapMonth string
)

// recapCmd represents the recap command.
var recapCmd = &cobra.Command{
	Use:   "recap",
	Short: "Export an XLSX recap of orders, cost breakdowns and receipts",
	Long: `Export an XLSX workbook with one sheet each for travel orders, cost
breakdowns and receipts. With --month only orders issued in that month, their
cost breakdowns and the receipts dated in that month are included.

Example:
  sppd recap --out rekap_2024-03.xlsx --month 2024-03`,
	Args: cobra.NoArgs,
	Run:  runRecap,
}

func init() {
	recapCmd.Flags().StringVarP(&recapOut, "out", "o", "rekap_sppd.xlsx", "Output file")
	recapCmd.Flags().StringVar(&recapMonth, "month", "", "Only include this month (YYYY-MM)")
}

func runRecap(cmd *cobra.Command, args []string) {
	s := openSession()
	defer s.Close()

	orders := s.repo.ListSPPD(recapMonth)
	lumpsums := s.repo.AllLumpsum()
	receipts := s.repo.AllKuitansi()

	if recapMonth != "" {
		included := make(map[string]bool, len(orders))
		for _, o := range orders {
			included[o.ID] = true
		}
		lumpsums = filter(lumpsums, func(l models.LumpsumEntry) bool { return included[l.SPPDID] })
		receipts = filter(receipts, func(r models.Receipt) bool { return strings.HasPrefix(r.Tanggal, recapMonth) })
	}

	f, err := recap.Build(orders, lumpsums, receipts, s.repo.GetSettings())
	exitOnError(err, "failed to build recap")
	defer f.Close()

	exitOnError(f.SaveAs(recapOut), "failed to save recap")

	slog.Info("Recap written",
		"path", recapOut,
		"sppd", len(orders),
		"lumpsum", len(lumpsums),
		"kuitansi", len(receipts),
	)
	fmt.Println(recapOut)
}

func filter[T any](items []T, keep func(T) bool) []T {
	var out []T
	for _, item := range items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}
