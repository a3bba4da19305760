package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ishankgp/MF-return-tracker/internal/report"
)

// compositeCmd represents the composite command
var compositeCmd = &cobra.Command{
	Use:   "composite",
	Short: "Rank funds by composite scores A and B",
	Long: `Ranks funds by raw score under two composites:
  A: 70% mean return - 30% drawdown
  B: 70% mean return - 30% gap to the best compounded total return
and prints where the target funds land.

Example:
  go run ./cmd/fundrank composite
  go run ./cmd/fundrank composite --years 4,5 --legacy-drawdown`,
	RunE: runComposite,
}

var (
	compositeYears  string
	compositeLegacy bool
)

func init() {
	rootCmd.AddCommand(compositeCmd)

	compositeCmd.Flags().StringVar(&compositeYears, "years", "", "selected years (default from SELECTED_YEARS)")
	compositeCmd.Flags().BoolVar(&compositeLegacy, "legacy-drawdown", false, "always use the 5-year aggregate drawdown")
}

func runComposite(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	d, err := newDeps(ctx, true)
	if err != nil {
		return err
	}
	defer d.Close()

	years, err := d.years(compositeYears)
	if err != nil {
		return err
	}

	harness, err := d.newHarness(harnessOptions{legacyDrawdown: compositeLegacy})
	if err != nil {
		return err
	}

	funds, err := d.funds.FetchFunds(ctx)
	if err != nil {
		return fmt.Errorf("fetch funds: %w", err)
	}

	cmp, err := harness.Composite(funds, years)
	if err != nil {
		return fmt.Errorf("composite analysis: %w", err)
	}

	report.New(cmd.OutOrStdout()).Composite(cmp)
	return nil
}
