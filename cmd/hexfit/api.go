package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/hexfit/internal/platform/httpapi"
	"github.com/vovakirdan/hexfit/internal/storage"
)

var flagHTTPAddr string

var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Serve the leaderboard over HTTP",
	Long: `Start a read-only JSON API over the scores database.

Routes:
  GET /health
  GET /games
  GET /scores/{mode}?limit=N
  GET /stats
  GET /stats/{mode}

Examples:
  hexfit api
  hexfit api --http :9090 --db ./scores.db`,
	Run: runAPI,
}

func init() {
	apiCmd.Flags().StringVar(&flagHTTPAddr, "http", ":8080", "HTTP listen address (host:port)")
}

func runAPI(cmd *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening scores database: %v", err)
	}
	defer closeStore(store)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := httpapi.New(store, logger.WithPrefix("hexfit-api"))
	if err := srv.ListenAndServe(ctx, flagHTTPAddr); err != nil {
		closeStore(store)
		fail("server: %v", err)
	}
}
