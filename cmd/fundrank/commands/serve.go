package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ishankgp/MF-return-tracker/internal/api"
	"github.com/ishankgp/MF-return-tracker/internal/api/handlers"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the read-only ranking API",
	Long: `Starts the HTTP API. Every request fetches the snapshot (through the
cache when Redis is enabled) and runs the engine.

Endpoints:
  GET /health
  GET /api/formulas
  GET /api/rankings?years=1,2,3,4,5
  GET /api/rankings/{formula}?years=...
  GET /api/composite?years=...

Example:
  go run ./cmd/fundrank serve
  go run ./cmd/fundrank serve --port 8090`,
	RunE: runServe,
}

var servePort string

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&servePort, "port", "", "API port (default from PORT)")
}

func runServe(cmd *cobra.Command, args []string) error {
	d, err := newDeps(cmd.Context(), true)
	if err != nil {
		return err
	}
	defer d.Close()

	if servePort != "" {
		d.cfg.Port = servePort
	}

	years, err := d.years("")
	if err != nil {
		return err
	}

	harness, err := d.newHarness(harnessOptions{})
	if err != nil {
		return err
	}

	rankingHandler := handlers.NewRankingHandler(d.funds, harness, years, d.log)
	server := api.New(d.cfg, d.log, api.NewRouter(rankingHandler, d.log))

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	fmt.Fprintf(cmd.OutOrStdout(), "✅ Server running on http://localhost%s\n", server.Addr())
	fmt.Fprintln(cmd.OutOrStdout(), "Press Ctrl+C to stop")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-quit:
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	d.log.Info("Server stopped")
	return nil
}
