package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/shunichi-ikebuchi/sppd/pkg/archive"
	"github.com/shunichi-ikebuchi/sppd/pkg/pathutil"
	"github.com/spf13/cobra"
)

var (
	exportOut  string
	clearForce bool
)

// dataCmd groups the backup and reset commands.
var dataCmd = &cobra.Command{
	Use:   "data",
	Short: "Back up, restore or clear all stored data",
}

var dataExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write a JSON backup of all data",
	Long: `Write a JSON backup of all orders, cost breakdowns, receipts and settings.

Without --out the backup is filed in the archive as sppd_backup_YYYY-MM-DD.json.`,
	Args: cobra.NoArgs,
	Run:  runDataExport,
}

var dataImportCmd = &cobra.Command{
	Use:   "import <backup.json>",
	Short: "Restore data from a JSON backup",
	Long: `Restore data from a JSON backup ("-" reads stdin). Collections present in
the backup replace the stored ones; absent collections are kept. A malformed
backup leaves the store untouched.`,
	Args: cobra.ExactArgs(1),
	Run:  runDataImport,
}

var dataClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all orders, cost breakdowns, receipts and settings",
	Args:  cobra.NoArgs,
	Run:   runDataClear,
}

func init() {
	dataExportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Output file (\"-\" for stdout)")
	dataClearCmd.Flags().BoolVar(&clearForce, "yes", false, "Confirm deleting all data")

	dataCmd.AddCommand(dataExportCmd, dataImportCmd, dataClearCmd)
}

func runDataExport(cmd *cobra.Command, args []string) {
	s := openSession()
	defer s.Close()

	data, err := s.repo.ExportJSON()
	exitOnError(err, "failed to export data")

	switch exportOut {
	case "":
		now := time.Now()
		a := archive.NewFileSystemArchive(s.paths)
		path, err := a.Save(now.Format(time.DateOnly), pathutil.BackupFileName(now), data)
		exitOnError(err, "failed to archive backup")
		slog.Info("Backup archived", "path", path)
		fmt.Println(path)
	case "-":
		_, err := os.Stdout.Write(data)
		exitOnError(err, "failed to write backup")
	default:
		exitOnError(os.WriteFile(exportOut, data, 0o644), "failed to write backup")
		slog.Info("Backup written", "path", exportOut)
	}
}

func runDataImport(cmd *cobra.Command, args []string) {
	var (
		data []byte
		err  error
	)
	if args[0] == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(args[0])
	}
	exitOnError(err, "failed to read backup")

	s := openSession()
	defer s.Close()

	exitOnError(s.repo.ImportJSON(data), "failed to import backup")

	stats := s.repo.GetStats()
	slog.Info("Backup imported",
		"sppd", stats.TotalSPPD,
		"kuitansi", stats.TotalKuitansi,
	)
}

func runDataClear(cmd *cobra.Command, args []string) {
	if !clearForce {
		exitOnError(errors.New("pass --yes to confirm"), "refusing to delete all data")
	}

	s := openSession()
	defer s.Close()

	exitOnError(s.repo.ClearAll(), "failed to clear data")
	slog.Info("All data cleared")
}
