package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ishankgp/MF-return-tracker/internal/report"
)

// compareCmd represents the compare command
var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare every scoring formula against the target funds",
	Long: `Fetches the fund snapshot once, scores it with every registered formula,
normalizes each run to 0-100 and reports which formulas put both target
funds in the top K.

Example:
  go run ./cmd/fundrank compare
  go run ./cmd/fundrank compare --years 3,4,5 --top 3 --targets Bandhan,Motilal
  go run ./cmd/fundrank compare --no-cache --json`,
	RunE: runCompare,
}

var (
	compareYears   string
	compareTopK    int
	compareTargets []string
	compareNoCache bool
	compareJSON    bool
)

func init() {
	rootCmd.AddCommand(compareCmd)

	compareCmd.Flags().StringVar(&compareYears, "years", "", "selected years, e.g. 1,2,3,4,5 (default from SELECTED_YEARS)")
	compareCmd.Flags().IntVar(&compareTopK, "top", 0, "rank cut-off for the targets (default from TOP_K)")
	compareCmd.Flags().StringSliceVar(&compareTargets, "targets", nil, "two fund name fragments (default from TARGET_FUNDS)")
	compareCmd.Flags().BoolVar(&compareNoCache, "no-cache", false, "bypass the provider payload cache")
	compareCmd.Flags().BoolVar(&compareJSON, "json", false, "print the comparison as JSON")
}

func runCompare(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	d, err := newDeps(ctx, !compareNoCache)
	if err != nil {
		return err
	}
	defer d.Close()

	years, err := d.years(compareYears)
	if err != nil {
		return err
	}

	harness, err := d.newHarness(harnessOptions{
		targets: compareTargets,
		topK:    compareTopK,
	})
	if err != nil {
		return err
	}

	funds, err := d.funds.FetchFunds(ctx)
	if err != nil {
		return fmt.Errorf("fetch funds: %w", err)
	}

	cmp, err := harness.Compare(funds, years)
	if err != nil {
		return fmt.Errorf("compare formulas: %w", err)
	}

	if compareJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(cmp)
	}

	report.New(cmd.OutOrStdout()).Comparison(cmp)
	return nil
}
