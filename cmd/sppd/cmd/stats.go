package cmd

import (
	"fmt"
	"log/slog"

	"github.com/shunichi-ikebuchi/sppd/pkg/renderer"
	"github.com/spf13/cobra"
)

// statsCmd represents the stats command.
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Display record statistics",
	Long: `Display statistics about the stored records.

Shows:
- Total number of travel orders
- Sum of all cost breakdown totals
- Total number of receipts

Example:
  sppd stats`,
	Args: cobra.NoArgs,
	Run:  runStats,
}

func runStats(cmd *cobra.Command, args []string) {
	s := openSession()
	defer s.Close()

	stats := s.repo.GetStats()

	// Display statistics
	fmt.Println("\n=== SPPD Statistics ===")
	fmt.Printf("Total SPPD:       %d\n", stats.TotalSPPD)
	fmt.Printf("Total lumpsum:    %s\n", renderer.FormatCurrency(stats.TotalLumpsum))
	fmt.Printf("Total kuitansi:   %d\n", stats.TotalKuitansi)
	fmt.Println()

	slog.Debug("Statistics displayed", "store", s.cfg.Storage.Backend)
}
