package commands

import (
	"context"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configFile string
	env        string
	verbose    bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "fundrank",
	Short: "Fund formula ranking engine",
	Long: `fundrank ranks mutual funds by composite scores built from yearly
returns and drawdowns, and compares candidate scoring formulas against
two target funds.

Usage:
  go run ./cmd/fundrank [command]

Examples:
  go run ./cmd/fundrank compare
  go run ./cmd/fundrank compare --years 3,4,5 --top 3
  go run ./cmd/fundrank composite --legacy-drawdown
  go run ./cmd/fundrank formulas
  go run ./cmd/fundrank serve --port 8090
  go run ./cmd/fundrank watch --schedule "@every 10m"`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "env file to load (default is .env)")
	rootCmd.PersistentFlags().StringVar(&env, "env", "", "environment override (development|staging|production)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
}
