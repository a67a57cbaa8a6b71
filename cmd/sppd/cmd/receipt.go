package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/shunichi-ikebuchi/sppd/pkg/models"
	"github.com/shunichi-ikebuchi/sppd/pkg/renderer"
	"github.com/shunichi-ikebuchi/sppd/pkg/validation"
	"github.com/spf13/cobra"
)

var (
	receiptInput models.Receipt
	receiptSPPD  string
)

// receiptCmd groups the kuitansi commands.
var receiptCmd = &cobra.Command{
	Use:     "receipt",
	Aliases: []string{"kuitansi"},
	Short:   "Manage payment receipts (kuitansi)",
}

var receiptAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a payment receipt",
	Example: `  sppd receipt add --nomor KW/001/2024 --tanggal 2024-03-08 --jumlah 1500000 \
    --keperluan "Biaya perjalanan dinas" --penerima "Budi Santoso"`,
	Args: cobra.NoArgs,
	Run:  runReceiptAdd,
}

var receiptListCmd = &cobra.Command{
	Use:   "list",
	Short: "List payment receipts",
	Args:  cobra.NoArgs,
	Run:   runReceiptList,
}

var receiptUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Change the given fields of a payment receipt",
	Args:  cobra.ExactArgs(1),
	Run:   runReceiptUpdate,
}

var receiptDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a payment receipt",
	Args:  cobra.ExactArgs(1),
	Run:   runReceiptDelete,
}

func init() {
	for _, c := range []*cobra.Command{receiptAddCmd, receiptUpdateCmd} {
		f := c.Flags()
		f.StringVar(&receiptInput.Nomor, "nomor", "", "Receipt number")
		f.StringVar(&receiptInput.Tanggal, "tanggal", "", "Receipt date (YYYY-MM-DD)")
		f.StringVar(&receiptSPPD, "sppd", "", "Related travel order id (optional, empty unlinks on update)")
		f.Float64Var(&receiptInput.Jumlah, "jumlah", 0, "Amount")
		f.StringVar(&receiptInput.Keperluan, "keperluan", "", "Purpose of payment")
		f.StringVar(&receiptInput.Penerima, "penerima", "", "Payee name")
		f.StringVar(&receiptInput.JabatanPenerima, "jabatan-penerima", "", "Payee position")
	}

	receiptCmd.AddCommand(receiptAddCmd, receiptListCmd, receiptUpdateCmd, receiptDeleteCmd)
}

func runReceiptAdd(cmd *cobra.Command, args []string) {
	receipt := receiptInput
	if receiptSPPD != "" {
		receipt.SPPDID = &receiptSPPD
	}
	exitOnError(validation.Receipt(receipt), "invalid receipt")

	s := openSession()
	defer s.Close()

	if receiptSPPD != "" && s.repo.GetSPPDByID(receiptSPPD) == nil {
		slog.Warn("Related travel order does not exist", "sppd_id", receiptSPPD)
	}

	saved, err := s.repo.SaveKuitansi(receipt)
	exitOnError(err, "failed to save receipt")

	slog.Info("Receipt saved", "id", saved.ID, "nomor", saved.Nomor)
	fmt.Println(saved.ID)
}

func runReceiptList(cmd *cobra.Command, args []string) {
	s := openSession()
	defer s.Close()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNOMOR\tTANGGAL\tPENERIMA\tJUMLAH")
	for _, r := range s.repo.AllKuitansi() {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", r.ID, r.Nomor, r.Tanggal, r.Penerima, renderer.FormatCurrency(r.Jumlah))
	}
	exitOnError(w.Flush(), "failed to write output")
}

func runReceiptUpdate(cmd *cobra.Command, args []string) {
	patch := models.ReceiptPatch{
		Nomor:           changedString(cmd, "nomor", receiptInput.Nomor),
		Tanggal:         changedString(cmd, "tanggal", receiptInput.Tanggal),
		SPPDID:          changedString(cmd, "sppd", receiptSPPD),
		Jumlah:          changedFloat(cmd, "jumlah", receiptInput.Jumlah),
		Keperluan:       changedString(cmd, "keperluan", receiptInput.Keperluan),
		Penerima:        changedString(cmd, "penerima", receiptInput.Penerima),
		JabatanPenerima: changedString(cmd, "jabatan-penerima", receiptInput.JabatanPenerima),
	}

	s := openSession()
	defer s.Close()

	current := s.repo.GetKuitansiByID(args[0])
	if current == nil {
		exitOnError(errors.New(args[0]), "receipt not found")
	}
	merged, err := mergePatch(*current, patch)
	exitOnError(err, "failed to apply changes")
	exitOnError(validation.Receipt(merged), "invalid receipt")

	_, err = s.repo.UpdateKuitansi(args[0], patch)
	exitOnError(err, "failed to update receipt")

	slog.Info("Receipt updated", "id", args[0])
}

func runReceiptDelete(cmd *cobra.Command, args []string) {
	s := openSession()
	defer s.Close()

	exitOnError(s.repo.DeleteKuitansi(args[0]), "failed to delete receipt")
	slog.Info("Receipt deleted", "id", args[0])
}
