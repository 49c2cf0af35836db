package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "stock-signal",
	Short: "A CLI for the stock signal services",
	Long: `stock-signal computes technical trading signals over stored price history.

Run the services with their own binaries:
  scheduling-service serve   HTTP API and cron publisher
  execution-service serve    redis stream consumer (price ingestion and signal runs)
  migrate up|down|version    database migrations`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Whoops. There was an error while executing your CLI '%s'", err)
		os.Exit(1)
	}
}
