// Package cmd provides CLI commands for sppd.
package cmd

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"slices"

	"github.com/shunichi-ikebuchi/sppd/pkg/config"
	"github.com/shunichi-ikebuchi/sppd/pkg/pathutil"
	"github.com/shunichi-ikebuchi/sppd/pkg/repository"
	"github.com/shunichi-ikebuchi/sppd/pkg/storage"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	debug   bool
)

// exit terminates the process. Tests replace it.
var exit = os.Exit

// openSessions are closed by exitOnError before the process exits.
var openSessions []*session

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "sppd",
	Short: "Manage official travel order paperwork",
	Long: `sppd keeps travel orders (SPPD), their cost breakdowns (lumpsum) and
payment receipts (kuitansi) in a local store and prints them as documents.

It supports:
- Recording, updating and deleting orders, cost breakdowns and receipts
- Printing documents as PDF, HTML or Markdown, or previewing them in the terminal
- Backing up and restoring all data as a single JSON file
- Exporting an XLSX recap
- Serving a local JSON API for a browser UI

Example:
  sppd order add --nomor 090/001/2024 --tanggal 2024-03-04 ...
  sppd print sppd id_0190f... --format pdf
  sppd serve`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Setup logging
		logLevel := slog.LevelInfo
		if debug || os.Getenv("DEBUG") == "true" {
			logLevel = slog.LevelDebug
		}

		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: logLevel,
		}))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .env)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	// Add subcommands
	rootCmd.AddCommand(orderCmd)
	rootCmd.AddCommand(lumpsumCmd)
	rootCmd.AddCommand(receiptCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(printCmd)
	rootCmd.AddCommand(dataCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(recapCmd)
	rootCmd.AddCommand(serveCmd)
}

// Helper function to get config file path.
func getConfigFile() string {
	if cfgFile != "" {
		return cfgFile
	}
	return "" // Will use default .env loading
}

// Helper function to handle errors and exit.
func exitOnError(err error, msg string) {
	if err != nil {
		slog.Error(msg, "error", err)
		fmt.Fprintf(os.Stderr, "Error: %s: %v\n", msg, err)
		closeSessions()
		exit(1)
	}
}

// session holds the configuration and the opened store of one command run.
type session struct {
	cfg     *config.Config
	paths   *pathutil.PathResolver
	backend storage.Backend
	repo    *repository.Repository
	closed  bool
}

// openSession loads the configuration and opens the configured store.
func openSession() *session {
	cfg, err := config.Load(getConfigFile())
	exitOnError(err, "failed to load configuration")

	// Validate required fields
	err = cfg.Validate([]string{"storage", "dataDir"}, []string{"storage", "backend"})
	exitOnError(err, "invalid configuration")

	paths := pathutil.New(pathutil.Config{
		DataDir:      cfg.Storage.DataDir,
		DatabasePath: cfg.Storage.DBPath,
		ArchiveDir:   cfg.Archive.Dir,
	})

	dbPath := paths.GetDatabasePath()
	slog.Debug("Opening store", "backend", cfg.Storage.Backend, "path", dbPath)

	backend, err := storage.Open(storage.Kind(cfg.Storage.Backend), dbPath, cfg.Storage.MaxBytes)
	exitOnError(err, "failed to open store")

	s := &session{
		cfg:     cfg,
		paths:   paths,
		backend: backend,
		repo:    repository.New(backend),
	}
	openSessions = append(openSessions, s)
	return s
}

// Close closes the store. Closing twice is a no-op.
func (s *session) Close() {
	if s.closed {
		return
	}
	s.closed = true
	openSessions = slices.DeleteFunc(openSessions, func(o *session) bool { return o == s })
	if err := s.backend.Close(); err != nil {
		slog.Error("failed to close store", "error", err)
	}
}

func closeSessions() {
	for _, s := range slices.Clone(openSessions) {
		s.Close()
	}
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	exitOnError(err, "failed to encode output")
	fmt.Println(string(data))
}

// mergePatch applies the set fields of patch over a copy of current.
func mergePatch[T any](current T, patch any) (T, error) {
	data, err := json.Marshal(patch)
	if err != nil {
		return current, fmt.Errorf("failed to encode patch: %w", err)
	}
	if err := json.Unmarshal(data, &current); err != nil {
		return current, fmt.Errorf("failed to apply patch: %w", err)
	}
	return current, nil
}

// changedString returns a pointer to value when the flag was set on the command line.
func changedString(cmd *cobra.Command, name, value string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	return &value
}

// changedInt returns a pointer to value when the flag was set on the command line.
func changedInt(cmd *cobra.Command, name string, value int) *int {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	return &value
}

// changedFloat returns a pointer to value when the flag was set on the command line.
func changedFloat(cmd *cobra.Command, name string, value float64) *float64 {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	return &value
}
