package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shunichi-ikebuchi/sppd/pkg/api"
	"github.com/shunichi-ikebuchi/sppd/pkg/printer"
	"github.com/spf13/cobra"
)

var serveAddr string

// serveCmd represents the serve command.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the local JSON API",
	Long: `Serve the JSON API used by the browser UI.

Routes live under /api (sppd, lumpsum, kuitansi, settings, stats, export,
import, data, print) and /health reports liveness.

Example:
  sppd serve --addr 127.0.0.1:8080`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from SPPD_LISTEN_ADDR)")
}

func runServe(cmd *cobra.Command, args []string) {
	s := openSession()
	defer s.Close()

	engine, err := printer.New(s.cfg.Printer.Engine)
	exitOnError(err, "invalid PDF engine")

	addr := serveAddr
	if addr == "" {
		addr = s.cfg.Server.ListenAddr
	}

	server := &http.Server{
		Addr:         addr,
		Handler:      api.NewServer(s.repo, engine),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		<-ctx.Done()

		slog.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown error", "error", err)
		}
	}()

	slog.Info("starting sppd API", "addr", addr, "store", s.cfg.Storage.Backend, "pdf_engine", s.cfg.Printer.Engine)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		exitOnError(err, "server error")
	}
	<-stopped

	slog.Info("server stopped")
}
