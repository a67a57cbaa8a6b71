package cmd

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/shunichi-ikebuchi/sppd/pkg/models"
	"github.com/shunichi-ikebuchi/sppd/pkg/renderer"
	"github.com/shunichi-ikebuchi/sppd/pkg/validation"
	"github.com/spf13/cobra"
)

var (
	lumpsumInput  models.LumpsumEntry
	lumpsumBySPPD bool
)

// lumpsumCmd groups the cost breakdown commands.
var lumpsumCmd = &cobra.Command{
	Use:   "lumpsum",
	Short: "Manage travel cost breakdowns",
}

var lumpsumAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Record the cost breakdown of a travel order",
	Long: `Record the cost breakdown of a travel order. The total is computed from the
components. When --hari is omitted, days and nights are suggested from the
order's travel dates.`,
	Example: `  sppd lumpsum add --sppd id_0190f... --uang-harian 150000 --transport 200000 \
    --penginapan 350000`,
	Args: cobra.NoArgs,
	Run:  runLumpsumAdd,
}

var lumpsumShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a cost breakdown as JSON",
	Args:  cobra.ExactArgs(1),
	Run:   runLumpsumShow,
}

var lumpsumUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Change the given components of a cost breakdown and recompute its total",
	Args:  cobra.ExactArgs(1),
	Run:   runLumpsumUpdate,
}

var lumpsumDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a cost breakdown",
	Args:  cobra.ExactArgs(1),
	Run:   runLumpsumDelete,
}

func init() {
	for _, c := range []*cobra.Command{lumpsumAddCmd, lumpsumUpdateCmd} {
		f := c.Flags()
		f.StringVar(&lumpsumInput.SPPDID, "sppd", "", "Travel order id")
		f.IntVar(&lumpsumInput.Hari, "hari", 0, "Number of days")
		f.Float64Var(&lumpsumInput.UangHarian, "uang-harian", 0, "Daily allowance rate")
		f.Float64Var(&lumpsumInput.Transport, "transport", 0, "Transport cost")
		f.Float64Var(&lumpsumInput.Penginapan, "penginapan", 0, "Lodging rate per night")
		f.IntVar(&lumpsumInput.Malam, "malam", 0, "Number of nights")
		f.Float64Var(&lumpsumInput.Representasi, "representasi", 0, "Representation allowance")
		f.Float64Var(&lumpsumInput.Lainnya, "lainnya", 0, "Miscellaneous cost")
	}
	_ = lumpsumAddCmd.MarkFlagRequired("sppd")

	lumpsumShowCmd.Flags().BoolVar(&lumpsumBySPPD, "by-sppd", false, "Treat the argument as a travel order id")

	lumpsumCmd.AddCommand(lumpsumAddCmd, lumpsumShowCmd, lumpsumUpdateCmd, lumpsumDeleteCmd)
}

func runLumpsumAdd(cmd *cobra.Command, args []string) {
	s := openSession()
	defer s.Close()

	order := s.repo.GetSPPDByID(lumpsumInput.SPPDID)
	if order == nil {
		exitOnError(errors.New(lumpsumInput.SPPDID), "travel order not found")
	}

	entry := lumpsumInput
	if !cmd.Flags().Changed("hari") {
		if days, nights, ok := renderer.SuggestDuration(*order); ok {
			entry.Hari = days
			if !cmd.Flags().Changed("malam") {
				entry.Malam = nights
			}
			slog.Debug("Suggested duration from travel dates", "hari", days, "malam", nights)
		}
	}
	exitOnError(validation.Lumpsum(entry), "invalid cost breakdown")

	saved, err := s.repo.SaveLumpsum(entry.WithComputedTotal())
	exitOnError(err, "failed to save cost breakdown")

	slog.Info("Cost breakdown saved", "id", saved.ID, "total", renderer.FormatCurrency(saved.Total))
	fmt.Println(saved.ID)
}

func runLumpsumShow(cmd *cobra.Command, args []string) {
	s := openSession()
	defer s.Close()

	var entry *models.LumpsumEntry
	if lumpsumBySPPD {
		entry = s.repo.GetLumpsumBySPPD(args[0])
	} else {
		entry = s.repo.GetLumpsumByID(args[0])
	}
	if entry == nil {
		exitOnError(errors.New(args[0]), "cost breakdown not found")
	}
	printJSON(entry)
}

func runLumpsumUpdate(cmd *cobra.Command, args []string) {
	patch := models.LumpsumPatch{
		SPPDID:       changedString(cmd, "sppd", lumpsumInput.SPPDID),
		Hari:         changedInt(cmd, "hari", lumpsumInput.Hari),
		UangHarian:   changedFloat(cmd, "uang-harian", lumpsumInput.UangHarian),
		Transport:    changedFloat(cmd, "transport", lumpsumInput.Transport),
		Penginapan:   changedFloat(cmd, "penginapan", lumpsumInput.Penginapan),
		Malam:        changedInt(cmd, "malam", lumpsumInput.Malam),
		Representasi: changedFloat(cmd, "representasi", lumpsumInput.Representasi),
		Lainnya:      changedFloat(cmd, "lainnya", lumpsumInput.Lainnya),
	}

	s := openSession()
	defer s.Close()

	current := s.repo.GetLumpsumByID(args[0])
	if current == nil {
		exitOnError(errors.New(args[0]), "cost breakdown not found")
	}
	merged, err := mergePatch(*current, patch)
	exitOnError(err, "failed to apply changes")
	exitOnError(validation.Lumpsum(merged), "invalid cost breakdown")

	total := merged.WithComputedTotal().Total
	patch.Total = &total

	_, err = s.repo.UpdateLumpsum(args[0], patch)
	exitOnError(err, "failed to update cost breakdown")

	slog.Info("Cost breakdown updated", "id", args[0], "total", renderer.FormatCurrency(total))
}

func runLumpsumDelete(cmd *cobra.Command, args []string) {
	s := openSession()
	defer s.Close()

	exitOnError(s.repo.DeleteLumpsum(args[0]), "failed to delete cost breakdown")
	slog.Info("Cost breakdown deleted", "id", args[0])
}
