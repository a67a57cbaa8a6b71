package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/shunichi-ikebuchi/sppd/pkg/models"
	"github.com/shunichi-ikebuchi/sppd/pkg/validation"
	"github.com/spf13/cobra"
)

var (
	orderInput models.TravelOrder
	orderMonth string
)

// orderCmd groups the travel order commands.
var orderCmd = &cobra.Command{
	Use:     "order",
	Aliases: []string{"sppd"},
	Short:   "Manage travel orders (SPPD)",
}

var orderAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a new travel order",
	Example: `  sppd order add --nomor 090/001/2024 --tanggal 2024-03-04 --nama "Budi Santoso" \
    --maksud "Rapat koordinasi" --asal Bandung --tujuan Jakarta \
    --berangkat 2024-03-05 --kembali 2024-03-07`,
	Args: cobra.NoArgs,
	Run:  runOrderAdd,
}

var orderListCmd = &cobra.Command{
	Use:   "list",
	Short: "List travel orders, newest first",
	Args:  cobra.NoArgs,
	Run:   runOrderList,
}

var orderShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a travel order as JSON",
	Args:  cobra.ExactArgs(1),
	Run:   runOrderShow,
}

var orderUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Change the given fields of a travel order",
	Args:  cobra.ExactArgs(1),
	Run:   runOrderUpdate,
}

var orderDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a travel order and its cost breakdowns",
	Long: `Delete a travel order. Cost breakdowns (lumpsum) of the order are deleted
with it; receipts that mention the order are kept.`,
	Args: cobra.ExactArgs(1),
	Run:  runOrderDelete,
}

func init() {
	for _, c := range []*cobra.Command{orderAddCmd, orderUpdateCmd} {
		f := c.Flags()
		f.StringVar(&orderInput.Nomor, "nomor", "", "Order number")
		f.StringVar(&orderInput.Tanggal, "tanggal", "", "Issue date (YYYY-MM-DD)")
		f.StringVar(&orderInput.Nama, "nama", "", "Traveler name")
		f.StringVar(&orderInput.NIP, "nip", "", "Traveler ID number")
		f.StringVar(&orderInput.Pangkat, "pangkat", "", "Rank / grade")
		f.StringVar(&orderInput.Jabatan, "jabatan", "", "Position")
		f.StringVar(&orderInput.Maksud, "maksud", "", "Purpose of travel")
		f.StringVar(&orderInput.Asal, "asal", "", "Origin")
		f.StringVar(&orderInput.Tujuan, "tujuan", "", "Destination")
		f.StringVar(&orderInput.TglBerangkat, "berangkat", "", "Departure date (YYYY-MM-DD)")
		f.StringVar(&orderInput.TglKembali, "kembali", "", "Return date (YYYY-MM-DD)")
		f.StringVar(&orderInput.Transportasi, "transportasi", "", "Transportation mode")
		f.StringVar(&orderInput.Anggaran, "anggaran", "", "Budget source")
	}

	orderListCmd.Flags().StringVar(&orderMonth, "month", "", "Only orders issued in this month (YYYY-MM)")

	orderCmd.AddCommand(orderAddCmd, orderListCmd, orderShowCmd, orderUpdateCmd, orderDeleteCmd)
}

func runOrderAdd(cmd *cobra.Command, args []string) {
	exitOnError(validation.Order(orderInput), "invalid travel order")

	s := openSession()
	defer s.Close()

	saved, err := s.repo.SaveSPPD(orderInput)
	exitOnError(err, "failed to save travel order")

	slog.Info("Travel order saved", "id", saved.ID, "nomor", saved.Nomor)
	fmt.Println(saved.ID)
}

func runOrderList(cmd *cobra.Command, args []string) {
	s := openSession()
	defer s.Close()

	orders := s.repo.ListSPPD(orderMonth)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNOMOR\tTANGGAL\tNAMA\tTUJUAN")
	for _, o := range orders {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", o.ID, o.Nomor, o.Tanggal, o.Nama, o.Tujuan)
	}
	exitOnError(w.Flush(), "failed to write output")

	slog.Debug("Listed travel orders", "count", len(orders), "month", orderMonth)
}

func runOrderShow(cmd *cobra.Command, args []string) {
	s := openSession()
	defer s.Close()

	order := s.repo.GetSPPDByID(args[0])
	if order == nil {
		exitOnError(errors.New(args[0]), "travel order not found")
	}
	printJSON(order)
}

func runOrderUpdate(cmd *cobra.Command, args []string) {
	patch := models.TravelOrderPatch{
		Nomor:        changedString(cmd, "nomor", orderInput.Nomor),
		Tanggal:      changedString(cmd, "tanggal", orderInput.Tanggal),
		Nama:         changedString(cmd, "nama", orderInput.Nama),
		NIP:          changedString(cmd, "nip", orderInput.NIP),
		Pangkat:      changedString(cmd, "pangkat", orderInput.Pangkat),
		Jabatan:      changedString(cmd, "jabatan", orderInput.Jabatan),
		Maksud:       changedString(cmd, "maksud", orderInput.Maksud),
		Asal:         changedString(cmd, "asal", orderInput.Asal),
		Tujuan:       changedString(cmd, "tujuan", orderInput.Tujuan),
		TglBerangkat: changedString(cmd, "berangkat", orderInput.TglBerangkat),
		TglKembali:   changedString(cmd, "kembali", orderInput.TglKembali),
		Transportasi: changedString(cmd, "transportasi", orderInput.Transportasi),
		Anggaran:     changedString(cmd, "anggaran", orderInput.Anggaran),
	}

	s := openSession()
	defer s.Close()

	current := s.repo.GetSPPDByID(args[0])
	if current == nil {
		exitOnError(errors.New(args[0]), "travel order not found")
	}
	merged, err := mergePatch(*current, patch)
	exitOnError(err, "failed to apply changes")
	exitOnError(validation.Order(merged), "invalid travel order")

	_, err = s.repo.UpdateSPPD(args[0], patch)
	exitOnError(err, "failed to update travel order")

	slog.Info("Travel order updated", "id", args[0])
}

func runOrderDelete(cmd *cobra.Command, args []string) {
	s := openSession()
	defer s.Close()

	exitOnError(s.repo.DeleteSPPD(args[0]), "failed to delete travel order")
	slog.Info("Travel order deleted", "id", args[0])
}
